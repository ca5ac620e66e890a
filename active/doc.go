// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package active holds the operator-controlled pointer to the work all
// voters should currently be scoring.
package active
