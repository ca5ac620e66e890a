// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/kzhou57/stagevote/broadcast"
)

// WSHandler upgrades viewer connections and parks them in the hub.
type WSHandler struct {
	hub *broadcast.Hub
}

func NewWSHandler(hub *broadcast.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Viewers connect from arbitrary origins (projector screens, phones)
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Leaderboard handles GET /ws/leaderboard
func (h *WSHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, broadcast.ChannelLeaderboard)
}

// ActiveWork handles GET /ws/active_work
func (h *WSHandler) ActiveWork(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, broadcast.ChannelActiveWork)
}

// serve blocks for the lifetime of the connection. The socket is
// server-to-client only: reads exist solely to notice the peer going away.
func (h *WSHandler) serve(w http.ResponseWriter, r *http.Request, channel string) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "channel", channel, "error", err)
		return
	}

	c := broadcast.NewConn(ws)
	h.hub.Subscribe(channel, c)
	slog.Info("client subscribed",
		"channel", channel,
		"remote", ws.RemoteAddr(),
		"members", h.hub.Members(channel),
	)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	h.hub.Drop(c)
	slog.Info("client disconnected", "channel", channel, "remote", ws.RemoteAddr())
}
