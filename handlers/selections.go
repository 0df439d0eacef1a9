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

type SelectionHandler struct {
	engine *allocation.Engine
	cfg    cliparse.Config
}

func NewSelectionHandler(engine *allocation.Engine, cfg cliparse.Config) *SelectionHandler {
	return &SelectionHandler{engine: engine, cfg: cfg}
}

// Select handles POST /camps/{id}/select
func (h *SelectionHandler) Select(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)

	campID := r.PathValue("id")
	if campID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "camp id is required")
		return
	}

	sel, err := h.engine.SelectCamp(r.Context(), claims.UserID, campID)
	switch {
	case errors.Is(err, allocation.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Camp not found")
		return
	case errors.Is(err, allocation.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only refugees can select a camp")
		return
	case errors.Is(err, allocation.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "You already have a camp selection")
		return
	case errors.Is(err, allocation.ErrCapacityExhausted):
		middleware.ErrorResponse(w, http.StatusConflict, "No beds available at this camp")
		return
	case err != nil:
		slog.Error("failed to select camp", "error", err, "camp_id", campID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("camp selected", "camp_id", campID, "user_id", claims.UserID)

	middleware.JSONResponse(w, http.StatusOK, sel)
}

// GetMine handles GET /selections/my
func (h *SelectionHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)

	sel, err := h.engine.SelectionFor(r.Context(), claims.UserID)
	switch {
	case errors.Is(err, allocation.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "No active selection")
		return
	case err != nil:
		slog.Error("failed to query selection", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sel)
}

// CancelMine handles DELETE /selections/my
func (h *SelectionHandler) CancelMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r)

	err := h.engine.CancelSelection(r.Context(), claims.UserID)
	switch {
	case errors.Is(err, allocation.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "No active selection")
		return
	case err != nil:
		slog.Error("failed to cancel selection", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("selection cancelled", "user_id", claims.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Selection cancelled",
	})
}
