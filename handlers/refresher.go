// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/kzhou57/stagevote/broadcast"
	"github.com/kzhou57/stagevote/cliparse"
	"github.com/kzhou57/stagevote/middleware"
	"github.com/kzhou57/stagevote/models"
	"github.com/kzhou57/stagevote/scoring"
)

// Refresher is the coalesced update pass: recompute every work's aggregate,
// cache the snapshot, and nudge the leaderboard channel. It also serves the
// snapshot over GET /api/leaderboard as the client reconciliation pull.
type Refresher struct {
	db     *sql.DB
	hub    *broadcast.Hub
	policy scoring.Policy

	snapshot atomic.Value // []models.WorkScore
}

func NewRefresher(db *sql.DB, cfg cliparse.Config, hub *broadcast.Hub) *Refresher {
	return &Refresher{
		db:     db,
		hub:    hub,
		policy: scoring.PolicyFor(cfg.Policy, cfg.IgnoreMin, cfg.IgnoreMax),
	}
}

// Run executes one update pass. Wired into the coalescer, so bursts of
// votes cost at most one in-flight pass plus one follow-up.
func (f *Refresher) Run() error {
	scores, totalVotes, err := f.compute()
	if err != nil {
		return err
	}
	f.snapshot.Store(scores)

	slog.Info("leaderboard recomputed",
		"works", len(scores),
		"votes", humanize.Comma(int64(totalVotes)),
		"subscribers", f.hub.Members(broadcast.ChannelLeaderboard),
	)

	// Voter identity is meaningless for a coalesced pass, so data stays
	// empty; clients re-query instead of trusting the event payload.
	f.hub.Publish(broadcast.ChannelLeaderboard, broadcast.Event{Type: broadcast.EventVote})
	return nil
}

// Leaderboard handles GET /api/leaderboard
func (f *Refresher) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if snap, ok := f.snapshot.Load().([]models.WorkScore); ok {
		middleware.OK(w, snap)
		return
	}

	// Cold start: no vote has triggered a pass yet.
	scores, _, err := f.compute()
	if err != nil {
		slog.Error("failed to compute leaderboard", "error", err)
		middleware.Fail(w, http.StatusInternalServerError, "Database error")
		return
	}
	f.snapshot.Store(scores)
	middleware.OK(w, scores)
}

func (f *Refresher) compute() ([]models.WorkScore, int, error) {
	works, err := listWorks(f.db)
	if err != nil {
		return nil, 0, err
	}
	weights, err := fetchWeights(f.db)
	if err != nil {
		return nil, 0, err
	}

	scores := make([]models.WorkScore, 0, len(works))
	totalVotes := 0
	for _, work := range works {
		votes, err := fetchVotes(f.db, work.WorkID)
		if err != nil {
			return nil, 0, err
		}
		totalVotes += len(votes)
		scores = append(scores, models.WorkScore{
			Work:   work,
			Result: scoring.Compute(votes, weights, f.policy),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Result.Average != scores[j].Result.Average {
			return scores[i].Result.Average > scores[j].Result.Average
		}
		return scores[i].Work.WorkID < scores[j].Work.WorkID
	})

	return scores, totalVotes, nil
}
