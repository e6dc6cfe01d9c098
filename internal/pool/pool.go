// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pool centralizes byte-buffer reuse for the framed I/O drivers (the
// FramedWrite scratch buffer and the FramedRead raw input buffer), via a
// shared pool usable across many concurrent Sender/Receiver pairs. The
// Decoder's accumulation buffer is not pooled and is allocated afresh for
// each message, so steady-state Recv calls still allocate.
package pool

import "github.com/valyala/bytebufferpool"

var shared bytebufferpool.Pool

// Get returns a pooled *bytebufferpool.ByteBuffer with length 0.
func Get() *bytebufferpool.ByteBuffer { return shared.Get() }

// Put resets and returns b to the pool.
func Put(b *bytebufferpool.ByteBuffer) {
	b.Reset()
	shared.Put(b)
}
