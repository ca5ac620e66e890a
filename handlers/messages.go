// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/kzhou57/stagevote/auth"
	"github.com/kzhou57/stagevote/cliparse"
	"github.com/kzhou57/stagevote/middleware"
	"github.com/kzhou57/stagevote/models"
)

type MessageHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMessageHandler(db *sql.DB, cfg cliparse.Config) *MessageHandler {
	return &MessageHandler{db: db, cfg: cfg}
}

// PostMessage handles POST /api/message
func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req models.PostMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := auth.Authenticate(h.db, req.UserID); err != nil {
		if errors.Is(err, auth.ErrUnknownUser) {
			middleware.Fail(w, http.StatusUnauthorized, "Authentication failed")
			return
		}
		slog.Error("failed to authenticate user", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Characters, not bytes: a multibyte message is not over-length just
	// for encoding wide.
	if utf8.RuneCountInString(req.Message) > models.MaxMessageLen {
		middleware.Fail(w, http.StatusBadRequest, "Message too long")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO message (user_id, work_id, body, created_at)
		VALUES ($1, $2, $3, $4)
	`, req.UserID, req.WorkID, req.Message, time.Now().Unix())
	if err != nil {
		slog.Error("failed to insert message", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Failed to record message")
		return
	}

	middleware.OK(w, "Message recorded")
}
