// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package models defines the request, response, and domain types shared
// across handlers, plus the {success, data} wire envelope used by the
// public and admin APIs.
package models
