// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coalesce

import (
	"log/slog"
	"sync"
)

// Coalescer collapses bursts of trigger requests into a bounded number of
// runs of a single update pass. At most one pass runs at a time; any number
// of triggers arriving while a pass is in flight collapse into exactly one
// follow-up pass.
type Coalescer struct {
	run func() error

	mu       sync.Mutex
	updating bool
	pending  bool
}

// New wraps run in a coalescer. run must be safe to call repeatedly; its
// errors are logged and never stop future passes.
func New(run func() error) *Coalescer {
	return &Coalescer{run: run}
}

// Trigger requests an update pass. If a pass is already running the request
// is folded into a single pending re-run; otherwise a pass starts in its
// own goroutine and Trigger returns immediately.
func (c *Coalescer) Trigger() {
	c.mu.Lock()
	if c.updating {
		c.pending = true
		c.mu.Unlock()
		return
	}
	c.updating = true
	c.mu.Unlock()

	go c.loop()
}

func (c *Coalescer) loop() {
	for {
		if err := c.run(); err != nil {
			// A failed pass leaves the leaderboard stale until the
			// next trigger; clients recover by re-querying.
			slog.Error("update pass failed", "error", err)
		}

		c.mu.Lock()
		if c.pending {
			c.pending = false
			c.mu.Unlock()
			continue
		}
		c.updating = false
		c.mu.Unlock()
		return
	}
}
