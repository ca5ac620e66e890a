// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package coalesce debounces bursts of recompute triggers: many votes
// landing at once cost at most one in-flight update pass plus one
// follow-up, never one pass per vote.
package coalesce
