// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kzhou57/stagevote/auth"
	"github.com/kzhou57/stagevote/cliparse"
	"github.com/kzhou57/stagevote/middleware"
	"github.com/kzhou57/stagevote/models"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Login handles POST /api/login
// Success returns the userId, which doubles as the voter token for
// subsequent requests.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" {
		middleware.Fail(w, http.StatusBadRequest, "username is required")
		return
	}

	var userID, password string
	err := h.db.QueryRow(`
		SELECT user_id, password FROM account WHERE username = $1
	`, req.Username).Scan(&userID, &password)

	if errors.Is(err, sql.ErrNoRows) {
		middleware.Fail(w, http.StatusUnauthorized, "Username does not exist")
		return
	}
	if err != nil {
		slog.Error("failed to query account", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !h.cfg.SkipPasswordCheck && password != req.Password {
		middleware.Fail(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	slog.Info("login", "username", req.Username)
	middleware.OK(w, userID)
}

// UserInfo handles GET /api/user_info?userId=...
func (h *UserHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if err := auth.Authenticate(h.db, userID); err != nil {
		if errors.Is(err, auth.ErrUnknownUser) {
			middleware.Fail(w, http.StatusUnauthorized, "User not found")
			return
		}
		slog.Error("failed to authenticate user", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	var username string
	err := h.db.QueryRow(`
		SELECT username FROM account WHERE user_id = $1
	`, userID).Scan(&username)
	if err != nil {
		slog.Error("failed to query username", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.OK(w, username)
}

// UserCount handles GET /api/user_count
func (h *UserHandler) UserCount(w http.ResponseWriter, r *http.Request) {
	var count int
	err := h.db.QueryRow(`SELECT COUNT(*) FROM account`).Scan(&count)
	if err != nil {
		slog.Error("failed to count accounts", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.OK(w, count)
}
