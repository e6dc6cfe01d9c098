// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

// Serializer turns a value of type T into bytes for Sender to frame. A
// Serializer may reuse its returned slice's backing array across calls only
// if it documents that it does so; Sender treats the slice as borrowed
// until SendFrame returns.
type Serializer[T any] interface {
	Serialize(v T) ([]byte, error)
}

// SerializerFunc adapts a plain function to a Serializer.
type SerializerFunc[T any] func(v T) ([]byte, error)

// Serialize calls f.
func (f SerializerFunc[T]) Serialize(v T) ([]byte, error) { return f(v) }

// Sender frames values of type T and writes them to an underlying Writer W,
// using an external Serializer S to turn each value into bytes: a typed item
// sits on top of the raw byte-message framing layer.
type Sender[T any, W Writer, S Serializer[T]] struct {
	w     W
	fw    *FramedWrite
	serde S
}

// NewSender returns a Sender writing to w via serde, configured by opts.
func NewSender[T any, W Writer, S Serializer[T]](w W, serde S, opts ...Option) *Sender[T, W, S] {
	cfg := build(opts)
	return &Sender[T, W, S]{
		w:     w,
		fw:    NewFramedWrite(w, cfg),
		serde: serde,
	}
}

// Close releases the Sender's pooled buffers. It does not close the
// underlying writer.
func (s *Sender[T, W, S]) Close() error { return s.fw.Close() }

// Get returns the underlying writer.
func (s *Sender[T, W, S]) Get() W { return s.w }

// Send serializes v and writes it as one (possibly multi-frame) message.
//
// On ErrWouldBlock, the caller must call Send again with the same v to
// resume; Send is not cancel-safe mid-message (§5), since a peer may
// already have observed a partial frame.
func (s *Sender[T, W, S]) Send(v T) error {
	body, err := s.serde.Serialize(v)
	if err != nil {
		return &SendError{Serde: err}
	}
	if err := s.fw.SendFrame(body); err != nil {
		return &SendError{Io: err}
	}
	s.fw.cfg.Stats.recordItem()
	return nil
}
