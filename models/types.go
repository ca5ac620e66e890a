// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Aggregation policy constants
const (
	PolicyWeighted = "weighted"
	PolicyTrimmed  = "trimmed"
)

// ActiveWorkNone is the sentinel returned before an operator has ever
// designated an active work.
const ActiveWorkNone = "none"

// MaxMessageLen bounds audience message bodies.
const MaxMessageLen = 500

// Res is the wire envelope for every API response.
type Res struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Optional voter weight for the weighted aggregation policy; stored
	// as-is, interpreted at read time.
	Weight string `json:"weight,omitempty"`
}

// Points is a float64 on the wire so a fractional submission can be
// detected and rejected rather than silently truncated.
type SubmitVoteRequest struct {
	WorkID string  `json:"workId"`
	UserID string  `json:"userId"`
	Points float64 `json:"points"`
}

type NewWorkRequest struct {
	Title string `json:"title"`
}

type SetActiveWorkRequest struct {
	WorkID string `json:"workId"`
}

type PostMessageRequest struct {
	UserID  string `json:"userId"`
	WorkID  string `json:"workId"`
	Message string `json:"message"`
}

// Domain types

type Work struct {
	WorkID string `json:"workId"`
	Title  string `json:"title"`
}

type Account struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Password string `json:"-"` // never expose in JSON
	Weight   string `json:"weight,omitempty"`
}

type Vote struct {
	WorkID    string `json:"workId"`
	UserID    string `json:"userId"`
	Points    int    `json:"points"`
	Timestamp int64  `json:"timestamp"`
}

type Message struct {
	UserID    string `json:"userId"`
	WorkID    string `json:"workId"`
	Body      string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
}

// AggregateResult is the derived view for one work. It is never stored;
// field names mirror the public API.
type AggregateResult struct {
	Average  float64 `json:"avg"`
	Variance float64 `json:"vari"`
	Std      float64 `json:"std"`
	Count    int     `json:"count"`
	Detail   []Vote  `json:"detail"`
}

// WorkScore pairs a work with its current aggregate for leaderboard
// snapshots.
type WorkScore struct {
	Work   Work            `json:"work"`
	Result AggregateResult `json:"result"`
}
