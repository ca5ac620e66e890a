// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package active

import (
	"log/slog"
	"sync"

	"github.com/kzhou57/stagevote/broadcast"
	"github.com/kzhou57/stagevote/models"
)

// Controller owns the single "currently active work" pointer. There is no
// history: the pointer is the whole state, and a freshly connected client
// recovers it with Get rather than replaying missed broadcasts.
type Controller struct {
	hub *broadcast.Hub

	mu     sync.Mutex
	workID string
}

func NewController(hub *broadcast.Hub) *Controller {
	return &Controller{
		hub:    hub,
		workID: models.ActiveWorkNone,
	}
}

// Set commits the new pointer and notifies the active_work channel. Both
// happen under the lock so no Get can observe the pointer and the
// broadcast out of order.
func (c *Controller) Set(workID string) {
	c.mu.Lock()
	c.workID = workID
	c.hub.Publish(broadcast.ChannelActiveWork, broadcast.Event{
		Type: broadcast.EventDefaultWork,
		Data: workID,
	})
	c.mu.Unlock()

	slog.Info("active work switched", "work_id", workID)
}

// Get returns the current pointer, models.ActiveWorkNone if never set.
func (c *Controller) Get() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.workID
}
