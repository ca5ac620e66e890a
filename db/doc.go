// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package db owns the SQL schema. Queries live next to the handlers that
// issue them; this package only guarantees the tables exist.
package db
