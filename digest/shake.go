// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package digest

import (
	"hash"

	"github.com/cloudflare/circl/xof"
)

// shake adapts an extendable output function to hash.Hash by fixing the
// output length.
type shake struct {
	id    xof.ID
	state xof.XOF
	size  int
	block int
}

func newShake(id xof.ID, size, block int) hash.Hash {
	return &shake{id: id, state: id.New(), size: size, block: block}
}

func (s *shake) Write(p []byte) (int, error) { return s.state.Write(p) }
func (s *shake) Size() int                   { return s.size }
func (s *shake) BlockSize() int              { return s.block }
func (s *shake) Reset()                      { s.state.Reset() }

// Sum squeezes from a clone so the running state stays writable.
func (s *shake) Sum(b []byte) []byte {
	out := make([]byte, s.size)
	if _, err := s.state.Clone().Read(out); err != nil {
		panic(err) // cannot fail, be loud if it does
	}
	return append(b, out...)
}
