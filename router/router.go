// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/kzhou57/stagevote/active"
	"github.com/kzhou57/stagevote/broadcast"
	"github.com/kzhou57/stagevote/cliparse"
	"github.com/kzhou57/stagevote/coalesce"
	"github.com/kzhou57/stagevote/handlers"
	"github.com/kzhou57/stagevote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Shared realtime state
	hub := broadcast.NewHub()
	activeCtl := active.NewController(hub)
	refresher := handlers.NewRefresher(db, cfg, hub)
	coalescer := coalesce.New(refresher.Run)

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(db, cfg, coalescer)
	worksHandler := handlers.NewWorksHandler(db, cfg, activeCtl)
	userHandler := handlers.NewUserHandler(db, cfg)
	messageHandler := handlers.NewMessageHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg, activeCtl)
	wsHandler := handlers.NewWSHandler(hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public API
	mux.HandleFunc("POST /api/login", middleware.WithLogging(userHandler.Login))
	mux.HandleFunc("GET /api/works", middleware.WithLogging(worksHandler.ListWorks))
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("GET /api/query_vote", middleware.WithLogging(votingHandler.QueryScore))
	mux.HandleFunc("GET /api/leaderboard", middleware.WithLogging(refresher.Leaderboard))
	mux.HandleFunc("GET /api/default_work", middleware.WithLogging(worksHandler.GetActiveWork))
	mux.HandleFunc("POST /api/message", middleware.WithLogging(messageHandler.PostMessage))
	mux.HandleFunc("GET /api/user_info", middleware.WithLogging(userHandler.UserInfo))
	mux.HandleFunc("GET /api/user_count", middleware.WithLogging(userHandler.UserCount))

	// Broadcast subscriptions (no logging wrapper: connections are
	// long-lived and would log completion only on disconnect)
	mux.HandleFunc("GET /ws/leaderboard", wsHandler.Leaderboard)
	mux.HandleFunc("GET /ws/active_work", wsHandler.ActiveWork)

	// Operator API (X-API-Key)
	mux.HandleFunc("POST /admin/register", middleware.WithLogging(adminHandler.Register))
	mux.HandleFunc("POST /admin/new_work", middleware.WithLogging(adminHandler.NewWork))
	mux.HandleFunc("POST /admin/set_default_work", middleware.WithLogging(adminHandler.SetDefaultWork))
	mux.HandleFunc("GET /admin/list_users", middleware.WithLogging(adminHandler.ListUsers))
	mux.HandleFunc("GET /admin/list_works", middleware.WithLogging(adminHandler.ListWorks))
	mux.HandleFunc("GET /admin/list_votes", middleware.WithLogging(adminHandler.ListVotes))
	mux.HandleFunc("GET /admin/list_messages", middleware.WithLogging(adminHandler.ListMessages))
	mux.HandleFunc("POST /admin/remove_users", middleware.WithLogging(adminHandler.RemoveUsers))
	mux.HandleFunc("POST /admin/remove_works", middleware.WithLogging(adminHandler.RemoveWorks))
	mux.HandleFunc("POST /admin/remove_votes", middleware.WithLogging(adminHandler.RemoveVotes))
	mux.HandleFunc("POST /admin/remove_messages", middleware.WithLogging(adminHandler.RemoveMessages))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("stagevote API v1"))
	})

	return mux
}
