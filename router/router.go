// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/camp-relief/allocation"
	"github.com/danielhkuo/camp-relief/cliparse"
	"github.com/danielhkuo/camp-relief/handlers"
	"github.com/danielhkuo/camp-relief/middleware"
	"github.com/danielhkuo/camp-relief/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Wire store -> engine -> handlers
	st := store.NewSQL(db)
	engine := allocation.New(st)

	accountHandler := handlers.NewAccountHandler(st, cfg)
	campHandler := handlers.NewCampHandler(engine, cfg)
	selectionHandler := handlers.NewSelectionHandler(engine, cfg)

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts (public)
	mux.HandleFunc("POST /register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("GET /verify", authed(accountHandler.Verify))

	// Camps
	mux.HandleFunc("GET /camps", authed(campHandler.List))
	mux.HandleFunc("POST /camps", authed(campHandler.Add))
	mux.HandleFunc("DELETE /camps/{id}", authed(campHandler.Delete))

	// Selections
	mux.HandleFunc("POST /camps/{id}/select", authed(selectionHandler.Select))
	mux.HandleFunc("GET /selections/my", authed(selectionHandler.GetMine))
	mux.HandleFunc("DELETE /selections/my", authed(selectionHandler.CancelMine))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("camp-relief API v1"))
	})

	return mux
}
