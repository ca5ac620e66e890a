// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package middleware provides request logging, CORS, and helpers for the
// {success, data} JSON envelope.
package middleware
