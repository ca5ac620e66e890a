// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write one event to a peer.
	writeWait = 10 * time.Second

	// Events queued per connection before deliveries are dropped.
	sendBuffer = 32
)

// Conn wraps one websocket connection with a buffered outbound queue. A
// dedicated write goroutine owns all socket writes, so a slow or dead peer
// never blocks a Publish.
type Conn struct {
	ws        *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

// NewConn wraps ws and starts its write pump. The caller keeps ownership
// of the read side; it should call Hub.Drop when reads fail.
func NewConn(ws *websocket.Conn) *Conn {
	c := &Conn{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
	}
	go c.writePump()
	return c
}

func (c *Conn) writePump() {
	for msg := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			slog.Warn("websocket write failed", "remote", c.ws.RemoteAddr(), "error", err)
			return
		}
	}
}

// closeSend is only called by the hub, with the hub lock held, so it never
// races a Publish enqueue.
func (c *Conn) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
