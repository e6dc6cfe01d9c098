// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

// Deserializer turns bytes produced by a matching Serializer back into a
// value of type T.
type Deserializer[T any] interface {
	Deserialize(b []byte) (T, error)
}

// DeserializerFunc adapts a plain function to a Deserializer.
type DeserializerFunc[T any] func(b []byte) (T, error)

// Deserialize calls f.
func (f DeserializerFunc[T]) Deserialize(b []byte) (T, error) { return f(b) }

// Receiver reassembles frames from an underlying Reader R into values of
// type T, using an external Deserializer D (§4.2).
type Receiver[T any, R Reader, D Deserializer[T]] struct {
	r     R
	fr    *FramedRead
	serde D
}

// NewReceiver returns a Receiver reading from r via serde, configured by opts.
func NewReceiver[T any, R Reader, D Deserializer[T]](r R, serde D, opts ...Option) *Receiver[T, R, D] {
	cfg := build(opts)
	return &Receiver[T, R, D]{
		r:     r,
		fr:    NewFramedRead(r, cfg),
		serde: serde,
	}
}

// Close releases the Receiver's pooled buffers. It does not close the
// underlying reader.
func (r *Receiver[T, R, D]) Close() error { return r.fr.Close() }

// Get returns the underlying reader.
func (r *Receiver[T, R, D]) Get() R { return r.r }

// Recv reads and reassembles the next message, then deserializes it.
//
// On ErrWouldBlock, no bytes are lost: the partially-read frame stays in
// the Receiver's internal buffer and the next Recv call continues from
// there, making Recv safe to call again after a cancellation (§5's
// cancel-safety property; unlike Send, Recv never needs the caller to
// remember what it last passed in).
func (r *Receiver[T, R, D]) Recv() (T, error) {
	var zero T
	body, err := r.fr.NextFrame()
	if err != nil {
		if _, ok := err.(*DecodeError); ok {
			return zero, &RecvError{Verify: err}
		}
		return zero, &RecvError{Io: err}
	}
	v, err := r.serde.Deserialize(body)
	if err != nil {
		return zero, &RecvError{Serde: err}
	}
	r.fr.cfg.Stats.recordItem()
	return v, nil
}
