// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/camp-relief/auth"
	"github.com/danielhkuo/camp-relief/cliparse"
	"github.com/danielhkuo/camp-relief/middleware"
	"github.com/danielhkuo/camp-relief/models"
	"github.com/danielhkuo/camp-relief/store"
)

type AccountHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewAccountHandler(st store.Store, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{store: st, cfg: cfg}
}

// Register handles POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "valid email is required")
		return
	}
	if len(req.Password) < 6 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if req.Role != models.RoleVolunteer && req.Role != models.RoleRefugee {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role must be volunteer or refugee")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		Address:      req.Address,
		Needs:        req.Needs,
		Skills:       req.Skills,
		Availability: req.Availability,
		CreatedAt:    time.Now(),
	}

	if err := h.store.InsertUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := auth.IssueToken(user, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		User:  user,
		Token: token,
	})
}

// Login handles POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.store.UserByEmail(r.Context(), strings.ToLower(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(user, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		User:  user,
		Token: token,
	})
}

// Verify handles GET /verify
func (h *AccountHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)

	user, err := h.store.UserByID(r.Context(), claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}
