// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

// Logical channel names.
const (
	ChannelLeaderboard = "leaderboard"
	ChannelActiveWork  = "active_work"
)

// Event types.
const (
	// EventVote signals that the leaderboard should refresh. Data
	// optionally names the voter for a UI toast; coalesced passes leave
	// it empty.
	EventVote = "vote"
	// EventDefaultWork signals an active-work switch. Data is the new
	// work identifier.
	EventDefaultWork = "default_work"
)

// Event is the envelope sent to every channel member.
type Event struct {
	Type string `json:"type"`
	Data string `json:"data"`
}
