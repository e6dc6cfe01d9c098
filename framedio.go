// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

import (
	"io"

	"github.com/valyala/bytebufferpool"

	"github.com/brevict/chanwire/internal/pool"
)

// FramedWrite drives an Encoder against a Writer, turning whole item
// payloads into wire frames (§4.5). It keeps all state needed to resume a
// partially-written message across repeated non-blocking calls, picking up
// from the last recorded offset after an ErrWouldBlock.
type FramedWrite struct {
	w      Writer
	enc    *Encoder
	policy retryPolicy
	cfg    Config

	scratch *bytebufferpool.ByteBuffer
	chunks  []chunkRange

	inProgress bool
	lastLen    int
	chunkIdx   int
	chunkOff   int
	frames     int
}

type chunkRange struct{ start, end int }

// NewFramedWrite returns a FramedWrite that writes to w per cfg.
func NewFramedWrite(w Writer, cfg Config) *FramedWrite {
	enc := NewEncoder()
	if !cfg.UseHeaderChecksum {
		enc.DisableHeaderChecksum()
	}
	return &FramedWrite{
		w:       w,
		enc:     enc,
		policy:  retryPolicy{delay: cfg.RetryDelay},
		cfg:     cfg,
		scratch: pool.Get(),
	}
}

// Close returns fw's pooled scratch buffer.
func (fw *FramedWrite) Close() error {
	if fw.scratch != nil {
		pool.Put(fw.scratch)
		fw.scratch = nil
	}
	return nil
}

// SendFrame writes payload as one possibly-multi-frame message (§4.5).
//
// On ErrWouldBlock (non-blocking policy), SendFrame returns with its
// progress recorded internally; the caller MUST call SendFrame again with
// the exact same payload slice to resume. Passing a differently-sized
// payload mid-message is a programming error and returns io.ErrShortWrite,
// guarding against the caller swapping buffers mid-write.
func (fw *FramedWrite) SendFrame(payload []byte) error {
	if !fw.inProgress {
		fw.scratch.Reset()
		fw.chunks = fw.chunks[:0]
		fw.frames = 0
		fw.chunkIdx = 0
		fw.chunkOff = 0

		err := fw.enc.Encode(payload, func(hdr [HeaderSize]byte, body []byte) error {
			start := len(fw.scratch.B)
			fw.scratch.B = append(fw.scratch.B, hdr[:]...)
			mid := len(fw.scratch.B)
			fw.scratch.B = append(fw.scratch.B, body...)
			end := len(fw.scratch.B)
			fw.frames++
			if !fw.cfg.CoalesceWrites {
				fw.chunks = append(fw.chunks, chunkRange{start, mid}, chunkRange{mid, end})
			}
			return nil
		})
		if err != nil {
			return err
		}
		if fw.cfg.CoalesceWrites {
			fw.chunks = append(fw.chunks, chunkRange{0, len(fw.scratch.B)})
		}

		fw.inProgress = true
		fw.lastLen = len(payload)
	} else if fw.lastLen != len(payload) {
		return io.ErrShortWrite
	}

	for fw.chunkIdx < len(fw.chunks) {
		c := fw.chunks[fw.chunkIdx]
		off, werr := writeAll(fw.w, fw.scratch.B[c.start:c.end], fw.chunkOff, fw.policy)
		fw.chunkOff = off
		if werr != nil {
			return werr
		}
		fw.chunkIdx++
		fw.chunkOff = 0
	}

	if fw.cfg.FlushOnSend {
		if err := flushLoop(fw.w, fw.policy); err != nil {
			return err
		}
	}

	fw.cfg.Stats.recordMessage(len(payload), fw.frames)
	fw.cfg.Stats.recordOp()
	fw.inProgress = false
	return nil
}

// FramedRead drives a Decoder against a Reader, accumulating bytes from the
// transport until one complete item payload is available (§4.6). Its raw
// input buffer is a pooled bytebufferpool.ByteBuffer, reused across calls
// instead of being reallocated per message. The Decoder's accumulation
// buffer is not pooled: each returned payload is a newly allocated slice.
type FramedRead struct {
	r      Reader
	dec    *Decoder
	policy retryPolicy
	cfg    Config

	in     *bytebufferpool.ByteBuffer
	stride int
	frames int // wire frames of the current message consumed so far
}

// defaultReadStride is how many bytes FramedRead asks the transport for at
// a time when its input buffer has no leftover tail to parse.
const defaultReadStride = 4096

// NewFramedRead returns a FramedRead that reads from r per cfg.
func NewFramedRead(r Reader, cfg Config) *FramedRead {
	return &FramedRead{
		r:      r,
		dec:    NewDecoder(cfg),
		policy: retryPolicy{delay: cfg.RetryDelay},
		cfg:    cfg,
		in:     pool.Get(),
		stride: defaultReadStride,
	}
}

// Close returns fr's pooled input buffer.
func (fr *FramedRead) Close() error {
	if fr.in != nil {
		pool.Put(fr.in)
		fr.in = nil
	}
	return nil
}

// NextFrame returns the next complete item payload (§4.6). The returned
// slice is owned by fr and is only valid until the next call.
//
// On ErrWouldBlock, the caller should retry later; fr's accumulated bytes
// and decoder state are preserved, so no data is lost.
func (fr *FramedRead) NextFrame() ([]byte, error) {
	for {
		payload, frames, ok, err := fr.dec.Decode(&fr.in.B)
		fr.frames += frames
		if err != nil {
			return nil, err
		}
		if ok {
			fr.cfg.Stats.recordMessage(len(payload), fr.frames)
			fr.frames = 0
			fr.cfg.Stats.recordOp()
			return payload, nil
		}

		grow := fr.stride
		at := len(fr.in.B)
		fr.in.B = append(fr.in.B, make([]byte, grow)...)
		n, rerr := readOnce(fr.r, fr.in.B[at:at+grow], fr.policy)
		fr.in.B = fr.in.B[:at+n]
		if rerr != nil {
			if rerr == io.EOF {
				// A clean end of stream is only "clean" between messages: no
				// bytes left to parse and no frame of the next message
				// consumed yet. Otherwise the stream was truncated either
				// mid-frame (bytes left in fr.in.B that never formed a full
				// frame) or between frames of one multi-frame message
				// (fr.in.B drained to empty, but MORE_DATA was still set).
				if len(fr.in.B) == 0 && !fr.dec.MidMessage() {
					return nil, io.EOF
				}
				return nil, io.ErrUnexpectedEOF
			}
			return nil, rerr
		}
	}
}
