// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package broadcast keeps long-lived websocket connections synchronized with
server-side state through named channels.

A Hub tracks which connections belong to which channel and fans events out
to current members only. Each Conn has a buffered outbound queue drained by
its own write goroutine, so one slow client cannot stall a publish. There
is no replay: a client that misses an event reconciles by re-querying the
API on reconnect.
*/
package broadcast
