// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package detrand provides a seeded, reproducible stream of random-looking
// bytes, to be injected wherever the library consumes randomness so that key
// generation, blinding and padding become deterministic under test.
package detrand

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/chacha20"
)

// Reader is a ChaCha20 keystream keyed by a seed.
type Reader struct {
	cipher *chacha20.Cipher
}

// New creates a reader whose output is fully determined by seed.
func New(seed string) *Reader {
	key := sha256.Sum256([]byte(seed))
	nonce := make([]byte, chacha20.NonceSize)

	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		panic("detrand: " + err.Error()) // cannot fail, be loud if it does
	}
	return &Reader{cipher: cipher}
}

// Read fills p with the next bytes of the keystream. It never fails.
func (r *Reader) Read(p []byte) (int, error) {
	clear(p)
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}

var _ io.Reader = (*Reader)(nil)
