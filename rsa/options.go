// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"crypto/rand"
	"io"

	"github.com/dark-bio/bigrsa-go/digest"
)

// SaltLengthNone requests an empty PSS salt.
const SaltLengthNone = -1

// Options configures the padding schemes. A nil *Options, like the zero value,
// selects SHA-256 for both the message and the mask generation hash, an empty
// label, a salt as long as the hash and crypto/rand for randomness.
type Options struct {
	Hash    digest.Algorithm // Message (and label) hash
	MGFHash digest.Algorithm // MGF1 hash, defaults to Hash
	Label   []byte           // OAEP label

	// SaltLength is the PSS salt length in bytes; 0 means the hash length and
	// SaltLengthNone an empty salt.
	SaltLength int

	Random io.Reader // Entropy for padding and blinding
}

func (o *Options) hash() digest.Algorithm {
	if o == nil || o.Hash == 0 {
		return digest.SHA256
	}
	return o.Hash
}

func (o *Options) mgfHash() digest.Algorithm {
	if o == nil || o.MGFHash == 0 {
		return o.hash()
	}
	return o.MGFHash
}

func (o *Options) label() []byte {
	if o == nil {
		return nil
	}
	return o.Label
}

func (o *Options) saltLength() int {
	switch {
	case o == nil || o.SaltLength == 0:
		return o.hash().Size()
	case o.SaltLength == SaltLengthNone:
		return 0
	}
	return o.SaltLength
}

func (o *Options) random() io.Reader {
	if o == nil || o.Random == nil {
		return rand.Reader
	}
	return o.Random
}
