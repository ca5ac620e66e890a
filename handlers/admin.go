// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kzhou57/stagevote/active"
	"github.com/kzhou57/stagevote/auth"
	"github.com/kzhou57/stagevote/cliparse"
	"github.com/kzhou57/stagevote/middleware"
	"github.com/kzhou57/stagevote/models"
)

// AdminHandler serves the operator surface. Every endpoint requires the
// X-API-Key header to match the configured operator key.
type AdminHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	active *active.Controller
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, active *active.Controller) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, active: active}
}

func (h *AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.ValidateAPIKey(r.Header.Get("X-API-Key"), h.cfg.AdminKey); err != nil {
		middleware.Fail(w, http.StatusUnauthorized, "Invalid API Key")
		return false
	}
	return true
}

// Register handles POST /admin/register
// Accounts are operator-created; there is no self-service signup.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" {
		middleware.Fail(w, http.StatusBadRequest, "username is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM account WHERE username = $1)
	`, req.Username).Scan(&exists)
	if err != nil {
		slog.Error("failed to query account", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		middleware.Fail(w, http.StatusConflict, "Username already exists")
		return
	}

	userID, err := auth.NewID()
	if err != nil {
		slog.Error("failed to generate user id", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	var weight any
	if req.Weight != "" {
		weight = req.Weight
	}
	_, err = h.db.Exec(`
		INSERT INTO account (user_id, username, password, weight)
		VALUES ($1, $2, $3, $4)
	`, userID, req.Username, req.Password, weight)
	if err != nil {
		slog.Error("failed to insert account", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	slog.Info("user registered", "username", req.Username)
	middleware.OK(w, userID)
}

// NewWork handles POST /admin/new_work
func (h *AdminHandler) NewWork(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req models.NewWorkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" {
		middleware.Fail(w, http.StatusBadRequest, "title is required")
		return
	}

	workID, err := auth.NewID()
	if err != nil {
		slog.Error("failed to generate work id", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Failed to create work")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO work (work_id, title) VALUES ($1, $2)
	`, workID, req.Title)
	if err != nil {
		slog.Error("failed to insert work", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Failed to create work")
		return
	}

	slog.Info("work created", "work_id", workID, "title", req.Title)
	middleware.OK(w, workID)
}

// SetDefaultWork handles POST /admin/set_default_work
// Redirects every connected voter to the given work.
func (h *AdminHandler) SetDefaultWork(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req models.SetActiveWorkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.WorkID == "" {
		middleware.Fail(w, http.StatusBadRequest, "workId is required")
		return
	}

	h.active.Set(req.WorkID)
	middleware.OK(w, "Default work set to "+req.WorkID)
}

// ListUsers handles GET /admin/list_users (passwords stripped)
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	rows, err := h.db.Query(`
		SELECT user_id, username, COALESCE(weight, '') FROM account ORDER BY user_id
	`)
	if err != nil {
		slog.Error("failed to query accounts", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.UserID, &a.Username, &a.Weight); err != nil {
			slog.Error("failed to scan account", "error", err)
			middleware.Fail(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, a)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read accounts", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.OK(w, users)
}

// ListWorks handles GET /admin/list_works
func (h *AdminHandler) ListWorks(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	works, err := listWorks(h.db)
	if err != nil {
		slog.Error("failed to list works", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.OK(w, works)
}

// ListVotes handles GET /admin/list_votes
// Returns the raw append-only log, superseded votes included.
func (h *AdminHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	rows, err := h.db.Query(`
		SELECT work_id, user_id, points, ts FROM vote ORDER BY seq
	`)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.WorkID, &v.UserID, &v.Points, &v.Timestamp); err != nil {
			slog.Error("failed to scan vote", "error", err)
			middleware.Fail(w, http.StatusInternalServerError, "Database error")
			return
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read votes", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.OK(w, votes)
}

// ListMessages handles GET /admin/list_messages
func (h *AdminHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	rows, err := h.db.Query(`
		SELECT user_id, work_id, body, created_at FROM message ORDER BY created_at
	`)
	if err != nil {
		slog.Error("failed to query messages", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.UserID, &m.WorkID, &m.Body, &m.CreatedAt); err != nil {
			slog.Error("failed to scan message", "error", err)
			middleware.Fail(w, http.StatusInternalServerError, "Database error")
			return
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read messages", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.OK(w, messages)
}

// RemoveUsers, RemoveWorks, RemoveVotes, RemoveMessages handle the
// POST /admin/remove_* family: wipe one table between contest rounds.
func (h *AdminHandler) RemoveUsers(w http.ResponseWriter, r *http.Request) {
	h.removeAll(w, r, "account", "All users removed")
}

func (h *AdminHandler) RemoveWorks(w http.ResponseWriter, r *http.Request) {
	h.removeAll(w, r, "work", "All works removed")
}

func (h *AdminHandler) RemoveVotes(w http.ResponseWriter, r *http.Request) {
	h.removeAll(w, r, "vote", "All votes removed")
}

func (h *AdminHandler) RemoveMessages(w http.ResponseWriter, r *http.Request) {
	h.removeAll(w, r, "message", "All messages removed")
}

func (h *AdminHandler) removeAll(w http.ResponseWriter, r *http.Request, table, confirmation string) {
	if !h.authorized(w, r) {
		return
	}

	if _, err := h.db.Exec(fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
		slog.Error("failed to clear table", "table", table, "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("table cleared", "table", table)
	middleware.OK(w, confirmation)
}
