// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/kzhou57/stagevote/active"
	"github.com/kzhou57/stagevote/cliparse"
	"github.com/kzhou57/stagevote/middleware"
)

type WorksHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	active *active.Controller
}

func NewWorksHandler(db *sql.DB, cfg cliparse.Config, active *active.Controller) *WorksHandler {
	return &WorksHandler{db: db, cfg: cfg, active: active}
}

// ListWorks handles GET /api/works
func (h *WorksHandler) ListWorks(w http.ResponseWriter, r *http.Request) {
	works, err := listWorks(h.db)
	if err != nil {
		slog.Error("failed to list works", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.OK(w, works)
}

// GetActiveWork handles GET /api/default_work
// This is the reconciliation read: a client that (re)connects pulls the
// pointer here instead of waiting for a broadcast it may have missed.
func (h *WorksHandler) GetActiveWork(w http.ResponseWriter, r *http.Request) {
	middleware.OK(w, h.active.Get())
}
