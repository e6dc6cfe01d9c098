// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package chanwire

import "errors"

// Sentinel errors produced by the header codec and the decoder state machine.
//
// These are never retried: once returned, the stream is considered corrupt
// or desynchronized and the connection should be torn down by the caller.
var (
	// ErrVersionMismatch reports that a header's version field did not equal
	// the protocol version this package implements.
	ErrVersionMismatch = errors.New("chanwire: header version mismatch")

	// ErrInvalidChecksum reports that a header's internet checksum did not
	// verify, meaning at least one header byte was corrupted in flight.
	ErrInvalidChecksum = errors.New("chanwire: header checksum invalid")

	// ErrOutOfOrder reports that a frame's sequence number did not match the
	// receiver's expected next number. Only returned when order verification
	// is enabled (the default).
	ErrOutOfOrder = errors.New("chanwire: frame out of order")

	// ErrTooLarge reports that a frame or an accumulated message exceeds a
	// configured or wire-format size limit.
	ErrTooLarge = errors.New("chanwire: message too large")

	// ErrInvalidArgument names a nil reader/writer or other programmer error
	// in how a Sender/Receiver was constructed. No function in this package
	// returns it: the constructors do not check their arguments.
	ErrInvalidArgument = errors.New("chanwire: invalid argument")
)

// DecodeError is returned by Decoder.Decode and wraps one of the fatal
// sentinel errors above. All DecodeError values are fatal to the stream:
// the sequence counter is never advanced when one is returned, so a peer
// that retries at the same frame number can still succeed against a fresh
// Decoder.
type DecodeError struct {
	err error
}

func (e *DecodeError) Error() string { return "chanwire: decode: " + e.err.Error() }

func (e *DecodeError) Unwrap() error { return e.err }

func newDecodeError(err error) *DecodeError { return &DecodeError{err: err} }

// EncodeError is returned by Encoder.Encode when a payload cannot be framed,
// e.g. because it overflows the wire-format length field. Unlike
// DecodeError, an EncodeError does not invalidate the stream: subsequent,
// representable messages can still be sent.
type EncodeError struct {
	err error
}

func (e *EncodeError) Error() string { return "chanwire: encode: " + e.err.Error() }

func (e *EncodeError) Unwrap() error { return e.err }

func newEncodeError(err error) *EncodeError { return &EncodeError{err: err} }

// SendError is the single error type returned from Sender.Send. Exactly one
// of its fields is non-nil.
type SendError struct {
	// Serde holds an error from the user-supplied Serializer.
	Serde error
	// Io holds an error from the underlying transport or from framing
	// (an *EncodeError, an I/O error, or ErrWouldBlock/ErrMore).
	Io error
}

func (e *SendError) Error() string {
	if e.Serde != nil {
		return "chanwire: send: serialize: " + e.Serde.Error()
	}
	return "chanwire: send: " + e.Io.Error()
}

func (e *SendError) Unwrap() error {
	if e.Serde != nil {
		return e.Serde
	}
	return e.Io
}

// RecvError is the single error type returned from Receiver.Recv. Exactly
// one of its fields is non-nil.
type RecvError struct {
	// Serde holds an error from the user-supplied Deserializer.
	Serde error
	// Io holds a plain I/O error (including ErrWouldBlock/ErrMore) that is
	// not one of the framing-verification failures below.
	Io error
	// Verify holds a *DecodeError's non-IO, fatal verification failure.
	Verify error
}

func (e *RecvError) Error() string {
	switch {
	case e.Serde != nil:
		return "chanwire: recv: deserialize: " + e.Serde.Error()
	case e.Verify != nil:
		return "chanwire: recv: " + e.Verify.Error()
	default:
		return "chanwire: recv: " + e.Io.Error()
	}
}

func (e *RecvError) Unwrap() error {
	switch {
	case e.Serde != nil:
		return e.Serde
	case e.Verify != nil:
		return e.Verify
	default:
		return e.Io
	}
}
