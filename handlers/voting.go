// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/kzhou57/stagevote/auth"
	"github.com/kzhou57/stagevote/cliparse"
	"github.com/kzhou57/stagevote/coalesce"
	"github.com/kzhou57/stagevote/middleware"
	"github.com/kzhou57/stagevote/models"
	"github.com/kzhou57/stagevote/scoring"
)

type VotingHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	policy    scoring.Policy
	coalescer *coalesce.Coalescer
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, coalescer *coalesce.Coalescer) *VotingHandler {
	return &VotingHandler{
		db:        db,
		cfg:       cfg,
		policy:    scoring.PolicyFor(cfg.Policy, cfg.IgnoreMin, cfg.IgnoreMax),
		coalescer: coalescer,
	}
}

// SubmitVote handles POST /api/vote
//
// The vote is acknowledged and the leaderboard refresh triggered only after
// the append has committed, so a client re-query prompted by the broadcast
// always observes its own vote.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Fail(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := auth.Authenticate(h.db, req.UserID); err != nil {
		if errors.Is(err, auth.ErrUnknownUser) {
			middleware.Fail(w, http.StatusUnauthorized, "Authentication failed")
			return
		}
		slog.Error("failed to authenticate voter", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Points != math.Trunc(req.Points) {
		middleware.Fail(w, http.StatusBadRequest, "Points must be an integer")
		return
	}
	points := int(req.Points)
	if points < h.cfg.MinPoints || points > h.cfg.MaxPoints {
		middleware.Fail(w, http.StatusBadRequest,
			fmt.Sprintf("Points must be between %d and %d", h.cfg.MinPoints, h.cfg.MaxPoints))
		return
	}

	exists, err := workExists(h.db, req.WorkID)
	if err != nil {
		slog.Error("failed to check work", "error", err, "work_id", req.WorkID)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.Fail(w, http.StatusBadRequest, "Unknown work")
		return
	}

	// Append-only: a re-vote inserts a new row and supersedes the old one
	// at read time via its timestamp.
	_, err = h.db.Exec(`
		INSERT INTO vote (work_id, user_id, points, ts)
		VALUES ($1, $2, $3, $4)
	`, req.WorkID, req.UserID, points, time.Now().Unix())
	if err != nil {
		slog.Error("failed to insert vote", "error", err, "work_id", req.WorkID)
		middleware.Fail(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	h.coalescer.Trigger()

	slog.Info("vote recorded", "work_id", req.WorkID, "user_id", req.UserID, "points", points)
	middleware.OK(w, "Vote recorded")
}

// QueryScore handles GET /api/query_vote?workId=...
//
// Always computed fresh from the log, unlike /api/leaderboard which serves
// the coalescer's cached snapshot.
func (h *VotingHandler) QueryScore(w http.ResponseWriter, r *http.Request) {
	workID := r.URL.Query().Get("workId")
	if workID == "" {
		middleware.Fail(w, http.StatusBadRequest, "workId is required")
		return
	}

	exists, err := workExists(h.db, workID)
	if err != nil {
		slog.Error("failed to check work", "error", err, "work_id", workID)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.Fail(w, http.StatusNotFound, "Work not found")
		return
	}

	votes, err := fetchVotes(h.db, workID)
	if err != nil {
		slog.Error("failed to fetch votes", "error", err, "work_id", workID)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	weights, err := fetchWeights(h.db)
	if err != nil {
		slog.Error("failed to fetch weights", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.OK(w, scoring.Compute(votes, weights, h.policy))
}
