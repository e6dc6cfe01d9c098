// Copyright (c) chanwire contributors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package serdes provides chanwire.Serializer/Deserializer implementations
// for common encodings. No third-party generic (type-parameterized) codec
// appears anywhere in the example corpus this module is grounded on, so
// these wrap the standard library's encoding/json and encoding/gob rather
// than introducing a dependency that has no grounding (see DESIGN.md).
package serdes

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
)

// JSON serializes/deserializes values of T using encoding/json.
type JSON[T any] struct{}

// Serialize implements chanwire.Serializer[T].
func (JSON[T]) Serialize(v T) ([]byte, error) { return json.Marshal(v) }

// Deserialize implements chanwire.Deserializer[T].
func (JSON[T]) Deserialize(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}

// Gob serializes/deserializes values of T using encoding/gob. Each call
// creates a fresh encoder/decoder, since gob's stream format is not
// self-delimiting across independently framed messages.
type Gob[T any] struct{}

// Serialize implements chanwire.Serializer[T].
func (Gob[T]) Serialize(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize implements chanwire.Deserializer[T].
func (Gob[T]) Deserialize(b []byte) (T, error) {
	var v T
	err := gob.NewDecoder(bytes.NewReader(b)).Decode(&v)
	return v, err
}
