// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/camp-relief/allocation"
	"github.com/danielhkuo/camp-relief/cliparse"
	"github.com/danielhkuo/camp-relief/middleware"
	"github.com/danielhkuo/camp-relief/models"
)

type CampHandler struct {
	engine *allocation.Engine
	cfg    cliparse.Config
}

func NewCampHandler(engine *allocation.Engine, cfg cliparse.Config) *CampHandler {
	return &CampHandler{engine: engine, cfg: cfg}
}

// List handles GET /camps
func (h *CampHandler) List(w http.ResponseWriter, r *http.Request) {
	camps, err := h.engine.ListCamps(r.Context())
	if err != nil {
		slog.Error("failed to list camps", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, camps)
}

// Add handles POST /camps
func (h *CampHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)

	var req models.AddCampRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	camp, err := h.engine.AddCamp(r.Context(), claims.UserID, req.Name, req.Beds, req.Resources, req.Contact, req.Ambulance)
	switch {
	case errors.Is(err, allocation.ErrInvalidInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, allocation.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only volunteers can add camps")
		return
	case err != nil:
		slog.Error("failed to add camp", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("camp added", "camp_id", camp.ID, "creator", claims.UserID, "beds", camp.OriginalBeds)

	middleware.JSONResponse(w, http.StatusCreated, camp)
}

// Delete handles DELETE /camps/{id}
func (h *CampHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)

	campID := r.PathValue("id")
	if campID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "camp id is required")
		return
	}

	err := h.engine.DeleteCamp(r.Context(), claims.UserID, campID)
	switch {
	case errors.Is(err, allocation.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Camp not found")
		return
	case errors.Is(err, allocation.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Default camps cannot be deleted, and only volunteers may delete camps")
		return
	case err != nil:
		slog.Error("failed to delete camp", "error", err, "camp_id", campID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("camp deleted", "camp_id", campID, "by", claims.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Camp deleted",
	})
}
