// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package compress wraps a chanwire.Serializer/Deserializer pair with a
// compression codec, so the bytes chanwire frames are the compressed form
// rather than the serializer's raw output. Both codecs are opaque to the
// framing layer: the item boundary that matters to chanwire is still one
// serialized (now compressed) value per message, exactly as §9's design
// notes describe compression/encryption as serializer middleware rather
// than a core concern.
package compress

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"

	"github.com/brevict/chanwire"
)

// Zstd wraps an inner Serializer/Deserializer pair with zstd compression
// (github.com/klauspost/compress), implementing both chanwire.Serializer[T]
// and chanwire.Deserializer[T] itself so it can be dropped in anywhere an
// uncompressed serdes pair was used.
type Zstd[T any] struct {
	ser   chanwire.Serializer[T]
	de    chanwire.Deserializer[T]
	level zstd.EncoderLevel
}

// NewZstd returns a Zstd middleware wrapping ser/de at the given level.
func NewZstd[T any](ser chanwire.Serializer[T], de chanwire.Deserializer[T], level zstd.EncoderLevel) *Zstd[T] {
	return &Zstd[T]{ser: ser, de: de, level: level}
}

// Serialize implements chanwire.Serializer[T].
func (z *Zstd[T]) Serialize(v T) ([]byte, error) {
	raw, err := z.ser.Serialize(v)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(z.level))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// Deserialize implements chanwire.Deserializer[T].
func (z *Zstd[T]) Deserialize(b []byte) (T, error) {
	var zero T
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return zero, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(b, nil)
	if err != nil {
		return zero, err
	}
	return z.de.Deserialize(raw)
}

// Brotli wraps an inner Serializer/Deserializer pair with brotli
// compression (github.com/andybalholm/brotli).
type Brotli[T any] struct {
	ser     chanwire.Serializer[T]
	de      chanwire.Deserializer[T]
	quality int
}

// NewBrotli returns a Brotli middleware wrapping ser/de at the given
// quality (0-11, per brotli.WriterOptions).
func NewBrotli[T any](ser chanwire.Serializer[T], de chanwire.Deserializer[T], quality int) *Brotli[T] {
	return &Brotli[T]{ser: ser, de: de, quality: quality}
}

// Serialize implements chanwire.Serializer[T].
func (b *Brotli[T]) Serialize(v T) ([]byte, error) {
	raw, err := b.ser.Serialize(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := brotli.NewWriterOptions(&buf, brotli.WriterOptions{Quality: b.quality})
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize implements chanwire.Deserializer[T].
func (b *Brotli[T]) Deserialize(raw []byte) (T, error) {
	var zero T
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return zero, err
	}
	return b.de.Deserialize(out)
}
