// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub is the channel registry plus fan-out. Channels are named,
// independent sets of live connections; membership is connection-scoped
// and never persisted. Missed events are gone for good - reconnecting
// clients pull current state instead of replaying.
type Hub struct {
	mu       sync.Mutex
	channels map[string]map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*Conn]struct{}),
	}
}

// Subscribe adds c to the channel's member set. Idempotent.
func (h *Hub) Subscribe(channel string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.channels[channel]
	if !ok {
		members = make(map[*Conn]struct{})
		h.channels[channel] = members
	}
	members[c] = struct{}{}
}

// Unsubscribe removes c from the channel's member set. A no-op when c was
// never subscribed.
func (h *Hub) Unsubscribe(channel string, c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.channels[channel], c)
}

// Publish serializes ev once and enqueues it to every current member of
// the channel. Delivery is best-effort and per-member independent: a full
// queue or dead peer costs that member the event, never the others, and
// never the publisher.
func (h *Hub) Publish(channel string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to encode event", "channel", channel, "type", ev.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.channels[channel] {
		select {
		case c.send <- payload:
		default:
			slog.Warn("dropping event for slow connection",
				"channel", channel,
				"type", ev.Type,
				"remote", c.ws.RemoteAddr(),
			)
		}
	}
}

// Drop removes c from every channel and tears the connection down. Called
// by the connection's read loop on close or error; safe to call twice.
func (h *Hub) Drop(c *Conn) {
	h.mu.Lock()
	for _, members := range h.channels {
		delete(members, c)
	}
	c.closeSend()
	h.mu.Unlock()

	c.ws.Close()
}

// Members reports the current size of a channel's member set.
func (h *Hub) Members(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels[channel])
}
