// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package auth provides identifier generation, operator API key checks,
// and voter token authentication.
package auth
