// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP surface of the scoring server.

Public API (JSON, {success, data} envelope):

  - POST /api/vote         - append a vote, trigger the coalesced refresh
  - GET  /api/query_vote   - fresh aggregate for one work
  - GET  /api/leaderboard  - cached snapshot across all works
  - GET  /api/works        - list competing entries
  - GET  /api/default_work - current active work pointer
  - POST /api/login, GET /api/user_info, GET /api/user_count
  - POST /api/message      - audience messages

WebSocket endpoints (/ws/leaderboard, /ws/active_work) subscribe viewers
to the broadcast hub; delivery is best-effort, so clients pull the two
GET endpoints above on every (re)connect.

The /admin family (work and account management, table resets, active-work
switching) requires the X-API-Key header.
*/
package handlers
