// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coalesce

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// blockingRun builds a run func whose passes block until released, so the
// test controls exactly when each pass finishes.
func blockingRun(passes *atomic.Int32, started chan struct{}, release chan struct{}, fail *atomic.Bool) func() error {
	return func() error {
		passes.Add(1)
		started <- struct{}{}
		<-release
		if fail != nil && fail.Load() {
			return errors.New("transient fetch error")
		}
		return nil
	}
}

func TestBurstCollapsesIntoOneFollowUp(t *testing.T) {
	var passes atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	c := New(blockingRun(&passes, started, release, nil))

	c.Trigger()
	<-started // first pass is in flight

	// Thundering herd while the pass runs
	for i := 0; i < 10; i++ {
		c.Trigger()
	}

	release <- struct{}{} // finish first pass
	<-started             // exactly one follow-up starts
	release <- struct{}{} // finish it

	select {
	case <-started:
		t.Fatal("Expected no third pass")
	case <-time.After(200 * time.Millisecond):
	}

	if got := passes.Load(); got != 2 {
		t.Errorf("Expected 2 passes total, got %d", got)
	}
}

func TestTriggerWithNoPassInFlightRunsOnce(t *testing.T) {
	var passes atomic.Int32
	done := make(chan struct{})

	c := New(func() error {
		passes.Add(1)
		done <- struct{}{}
		return nil
	})

	c.Trigger()
	<-done

	select {
	case <-done:
		t.Fatal("Expected exactly one pass")
	case <-time.After(100 * time.Millisecond):
	}

	if got := passes.Load(); got != 1 {
		t.Errorf("Expected 1 pass, got %d", got)
	}
}

func TestFailedPassDoesNotWedge(t *testing.T) {
	var passes atomic.Int32
	var fail atomic.Bool
	started := make(chan struct{})
	release := make(chan struct{})

	c := New(blockingRun(&passes, started, release, &fail))

	// First pass fails while a retrigger is pending
	fail.Store(true)
	c.Trigger()
	<-started
	c.Trigger()
	release <- struct{}{}

	// Pending retrigger still fires despite the failure
	fail.Store(false)
	<-started
	release <- struct{}{}

	// And the coalescer stays usable afterwards
	c.Trigger()
	<-started
	release <- struct{}{}

	waitFor(t, func() bool { return passes.Load() == 3 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Condition not reached before deadline")
}
