// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

import "math"

// FrameCap is the largest payload, in bytes, that a single wire frame may
// carry (65535 - HeaderSize). Messages longer than FrameCap are split into
// multiple frames by the Encoder; see §3.2.
const FrameCap = 1<<16 - 1 - HeaderSize

// maxMessageLen is the largest payload, in bytes, that fits in a single
// frame's 32-bit data_len field. Typed uint64 (not int) so the overflow
// check in Encoder.Encode compiles and behaves identically on 32-bit
// platforms, where this constant would not fit in int.
const maxMessageLen uint64 = math.MaxUint32

// Frame pairs a parsed Header with the payload bytes that followed it on
// the wire. Payload is a view into caller-owned memory; Frame never copies.
type Frame struct {
	Header  Header
	Payload []byte
}
