// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router wires handlers, the broadcast hub, the active-work
// controller, and the update coalescer into one http.ServeMux using
// Go 1.22+ method+path routing.
package router
