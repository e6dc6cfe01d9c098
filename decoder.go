// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

import "math/bits"

// maxInt is the largest value representable by the platform's int, used to
// guard against overflow when a 32-bit data_len is added to HeaderSize on
// 32-bit architectures (§4.4 step 4).
const maxInt = 1<<(bits.UintSize-1) - 1

// Decoder consumes bytes and reassembles the frames of one multi-frame
// message at a time. It owns the expected-next sequence number and the
// in-progress accumulation buffer (§3.4, §4.4); the byte-arrival buffer
// itself is owned by the caller (typically a FramedRead) and passed in on
// every call, exactly mirroring the channels-rs Decoder::decode signature
// this package is grounded on.
type Decoder struct {
	seq     frameSeq
	partial []byte
	midMsg  bool // true once the first frame of the current message has been consumed

	maxSize        int // 0 = unlimited
	verifyOrder    bool
	verifyChecksum bool
}

// NewDecoder returns a Decoder configured per cfg, with its sequence
// counter starting at 0 and an empty accumulation buffer.
func NewDecoder(cfg Config) *Decoder {
	d := &Decoder{
		maxSize:        cfg.MaxSize,
		verifyOrder:    cfg.VerifyOrder,
		verifyChecksum: cfg.VerifyHeaderChecksum,
	}
	if cfg.SizeEstimate > 0 {
		d.partial = make([]byte, 0, cfg.SizeEstimate)
	}
	return d
}

// Decode implements the algorithm of §4.4. It consumes complete frames from
// the front of *buf, accumulating their payloads, until either:
//   - a message completes (MORE_DATA clear on the final frame): returns the
//     concatenated payload and ok=true;
//   - buf holds less than a full frame: returns ok=false, err=nil, asking
//     the caller for more bytes;
//   - a frame fails validation: returns a fatal *DecodeError. The sequence
//     counter is left unadvanced so a peer retry at the same frame number
//     can still succeed.
//
// *buf is drained in place (consumed bytes are removed from its front) as
// frames are accepted.
//
// frames reports how many wire frames were consumed on this call, including
// any consumed before a fatal error was hit; it is meant for statistics
// (§6.4), not for control flow.
func (d *Decoder) Decode(buf *[]byte) (payload []byte, frames int, ok bool, err error) {
	for {
		if len(*buf) < HeaderSize {
			return nil, frames, false, nil
		}

		hdr, parsed, perr := parseHeaderWith(*buf, d.verifyChecksum)
		if perr != nil {
			return nil, frames, false, newDecodeError(perr)
		}
		if !parsed {
			return nil, frames, false, nil
		}

		if d.verifyOrder && hdr.FrameNum != d.seq.peek() {
			return nil, frames, false, newDecodeError(ErrOutOfOrder)
		}

		if hdr.DataLen > uint32(maxInt-HeaderSize) {
			return nil, frames, false, newDecodeError(ErrTooLarge)
		}
		dataLen := int(hdr.DataLen)
		if d.maxSize > 0 && dataLen > d.maxSize {
			return nil, frames, false, newDecodeError(ErrTooLarge)
		}

		frameLen := HeaderSize + dataLen
		if len(*buf) < frameLen {
			return nil, frames, false, nil
		}

		d.partial = append(d.partial, (*buf)[HeaderSize:frameLen]...)
		if d.maxSize > 0 && len(d.partial) > d.maxSize {
			return nil, frames, false, newDecodeError(ErrTooLarge)
		}

		remaining := copy(*buf, (*buf)[frameLen:])
		*buf = (*buf)[:remaining]
		d.seq.advance()
		frames++
		d.midMsg = true

		if !hdr.MoreData {
			out := d.partial
			d.partial = nil
			d.midMsg = false
			return out, frames, true, nil
		}
	}
}

// MidMessage reports whether a prior call to Decode has consumed at least
// one frame of the current message without yet completing it (MORE_DATA was
// set on the last frame seen). A caller whose transport hits EOF while this
// is true knows the stream was truncated mid-message, even if the decoder's
// own accumulation buffer happens to be empty between frames (e.g. the last
// frame consumed had a zero-length payload).
func (d *Decoder) MidMessage() bool { return d.midMsg }
