// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

// Relay forwards whole messages from a source Reader to a destination
// Writer, preserving message boundaries without interpreting the payload.
// Its phases are plain FramedRead/FramedWrite calls, so it composes with
// any Reader/Writer this package already supports (TCP, the transport
// package's WSConn, an in-memory pipe, ...).
type Relay struct {
	fr *FramedRead
	fw *FramedWrite

	state   uint8 // 0: reading a message, 1: writing it to dst
	payload []byte
}

// NewRelay returns a Relay reading from src and writing to dst per cfg.
func NewRelay(src Reader, dst Writer, cfg Config) *Relay {
	return &Relay{
		fr: NewFramedRead(src, cfg),
		fw: NewFramedWrite(dst, cfg),
	}
}

// Close releases the Relay's pooled buffers.
func (r *Relay) Close() error {
	rerr := r.fr.Close()
	werr := r.fw.Close()
	if rerr != nil {
		return rerr
	}
	return werr
}

// RelayOnce forwards at most one message.
//
// On ErrWouldBlock in either phase, the caller must call RelayOnce again on
// the same Relay to resume; the in-flight message's bytes are retained
// internally, so retrying never loses progress.
func (r *Relay) RelayOnce() error {
	if r.state == 0 {
		payload, err := r.fr.NextFrame()
		if err != nil {
			return err
		}
		r.payload = payload
		r.state = 1
	}

	if err := r.fw.SendFrame(r.payload); err != nil {
		return err
	}

	r.state = 0
	r.payload = nil
	return nil
}
