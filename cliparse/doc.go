// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package cliparse parses server configuration from CLI flags with
// environment variable fallbacks.
package cliparse
