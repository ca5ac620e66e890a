// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the stagevote server.

stagevote runs live contest scoring: operators register competing works,
authenticated voters submit one integer score each (latest vote wins), and
any number of viewers follow the leaderboard over WebSocket while an
operator can redirect all voters to a different work in real time.

# Starting the Server

The server reads configuration from flags, environment variables, or an
optional .env file:

	ADMIN_KEY=secret go run . -d contest.db

Or against postgres:

	go run . -t postgres -d "postgres://..." -admin-key secret

# Configuration

Required settings:

  - DATABASE_URL (-d): postgres DSN or sqlite file path
  - ADMIN_KEY (-admin-key): operator API key for the /admin surface

Optional settings:

  - PORT (-p): server port (default: 44555)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MIN_POINTS / MAX_POINTS: inclusive vote bounds (default: 0..100)
  - VOTE_POLICY (-policy): weighted or trimmed (default: weighted)
  - IGNORE_MIN / IGNORE_MAX: trim counts for the trimmed policy
  - SKIP_PASSWORD_CHECK: accept any password at login (dev only)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - scoring: pure aggregation engine (live-set dedup, policies, stats)
  - broadcast: websocket hub with named channels, best-effort fan-out
  - coalesce: debounces vote bursts into bounded recompute passes
  - active: the operator-owned "currently active work" pointer
  - handlers: HTTP request handlers over the above
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON envelope helpers
  - models: request/response types
  - auth: id generation, API key and voter token checks
*/
package main
