// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package transport adapts real-world connection types into the
// chanwire.Reader/Writer and chanwire.AsyncReader/AsyncWriter traits.
package transport

import (
	"bytes"
	"context"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brevict/chanwire"
)

// WSConn adapts a *websocket.Conn into chanwire.Reader, chanwire.Writer,
// chanwire.AsyncReader and chanwire.AsyncWriter. Each websocket message
// becomes a byte stream for chanwire's own framing to run over, so one
// chanwire message may span multiple websocket frames or vice versa,
// exactly as chanwire expects of any stream transport.
type WSConn struct {
	conn *websocket.Conn
	rbuf bytes.Reader
	have bool
}

// NewWSConn returns a WSConn wrapping conn.
func NewWSConn(conn *websocket.Conn) *WSConn { return &WSConn{conn: conn} }

// ReadSlice implements chanwire.Reader.
func (c *WSConn) ReadSlice(p []byte) (int, error) {
	for {
		if c.have {
			n, _ := c.rbuf.Read(p)
			if n > 0 {
				if c.rbuf.Len() == 0 {
					c.have = false
				}
				return n, nil
			}
			c.have = false
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		c.rbuf.Reset(data)
		c.have = true
	}
}

// WriteSlice implements chanwire.Writer. Every call is sent as one
// websocket binary message; chanwire's own length-prefixed framing makes
// this safe to reassemble on the far side regardless of how the transport
// chooses to chunk it.
func (c *WSConn) WriteSlice(p []byte) (int, error) {
	if err := c.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// FlushOnce implements chanwire.Writer. gorilla/websocket has no separate
// flush step: WriteMessage already writes a complete frame to the socket.
func (c *WSConn) FlushOnce() error { return nil }

// PollReadSlice implements chanwire.AsyncReader by setting a near-zero read
// deadline and translating the resulting timeout into ErrWouldBlock,
// honoring ctx's deadline when present.
func (c *WSConn) PollReadSlice(ctx context.Context, p []byte) (int, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(time.Millisecond)
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}
	n, err := c.ReadSlice(p)
	if isTimeout(err) {
		return n, chanwire.ErrWouldBlock
	}
	return n, err
}

// PollWriteSlice implements chanwire.AsyncWriter the same way as
// PollReadSlice, using a write deadline.
func (c *WSConn) PollWriteSlice(ctx context.Context, p []byte) (int, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(time.Millisecond)
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return 0, err
	}
	n, err := c.WriteSlice(p)
	if isTimeout(err) {
		return n, chanwire.ErrWouldBlock
	}
	return n, err
}

// PollFlushOnce implements chanwire.AsyncWriter.
func (c *WSConn) PollFlushOnce(ctx context.Context) error { return nil }

type timeouter interface{ Timeout() bool }

func isTimeout(err error) bool {
	te, ok := err.(timeouter)
	return ok && te.Timeout()
}
