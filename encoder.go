// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

// Encoder splits a fully serialized message into one or more wire frames.
// It owns its frame-number sequence counter and never performs I/O or owns
// a destination buffer itself (§3.4, §4.3).
//
// The zero value is ready to use, starting its frame-number sequence at 0.
type Encoder struct {
	seq            frameSeq
	useHeaderCksum bool
}

// NewEncoder returns an Encoder whose frame-number sequence starts at 0.
func NewEncoder() *Encoder {
	return &Encoder{useHeaderCksum: true}
}

// DisableHeaderChecksum configures the encoder to transmit a zero checksum
// field instead of a computed one, mirroring Config.UseHeaderChecksum=false
// (§6.2). Peers with checksum verification disabled still accept the
// result.
func (e *Encoder) DisableHeaderChecksum() { e.useHeaderCksum = false }

// EmitFunc receives one frame's header bytes and payload bytes, in that
// order, for every frame Encode produces. Implementations must not retain
// body after returning unless they copy it: it is a view into the Encode
// caller's buffer.
type EmitFunc func(header [HeaderSize]byte, body []byte) error

// Encode fragments buf into frames of at most FrameCap payload bytes each
// and calls emit once per frame, in order. A zero-length buf still produces
// exactly one frame (data_len=0, MORE_DATA clear), per §3.2.
//
// Returns an *EncodeError wrapping ErrTooLarge if buf is too long to
// represent (longer than maxMessageLen); no frames are emitted in that
// case.
func (e *Encoder) Encode(buf []byte, emit EmitFunc) error {
	if uint64(len(buf)) > maxMessageLen {
		return newEncodeError(ErrTooLarge)
	}

	emitted := 0
	for {
		remaining := len(buf) - emitted
		n := remaining
		if n > FrameCap {
			n = FrameCap
		}

		hdr := Header{
			FrameNum: e.seq.advance(),
			DataLen:  uint32(n),
			MoreData: remaining > n,
		}

		var body []byte
		if n > 0 {
			body = buf[emitted : emitted+n]
		}
		if err := emit(hdr.encodeWith(e.useHeaderCksum), body); err != nil {
			return err
		}

		emitted += n
		if remaining <= n {
			return nil
		}
	}
}
