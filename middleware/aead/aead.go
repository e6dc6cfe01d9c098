// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package aead wraps a chanwire.Serializer/Deserializer pair with
// authenticated encryption (golang.org/x/crypto/chacha20poly1305), the same
// "serializer middleware" shape as middleware/compress.
package aead

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/brevict/chanwire"
)

// ChaCha20Poly1305 wraps an inner Serializer/Deserializer pair, encrypting
// each serialized value with a fresh random nonce prepended to the
// ciphertext.
type ChaCha20Poly1305[T any] struct {
	ser   chanwire.Serializer[T]
	de    chanwire.Deserializer[T]
	aead  interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
		NonceSize() int
		Overhead() int
	}
}

// NewChaCha20Poly1305 returns a middleware wrapping ser/de with a 256-bit
// key. key must be chacha20poly1305.KeySize (32) bytes.
func NewChaCha20Poly1305[T any](ser chanwire.Serializer[T], de chanwire.Deserializer[T], key []byte) (*ChaCha20Poly1305[T], error) {
	a, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return &ChaCha20Poly1305[T]{ser: ser, de: de, aead: a}, nil
}

// Serialize implements chanwire.Serializer[T].
func (c *ChaCha20Poly1305[T]) Serialize(v T) ([]byte, error) {
	raw, err := c.ser.Serialize(v)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(raw)+c.aead.Overhead())
	out = append(out, nonce...)
	return c.aead.Seal(out, nonce, raw, nil), nil
}

// Deserialize implements chanwire.Deserializer[T].
func (c *ChaCha20Poly1305[T]) Deserialize(b []byte) (T, error) {
	var zero T
	n := c.aead.NonceSize()
	if len(b) < n {
		return zero, fmt.Errorf("chanwire/aead: ciphertext shorter than nonce")
	}
	nonce, ciphertext := b[:n], b[n:]
	raw, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return zero, err
	}
	return c.de.Deserialize(raw)
}
