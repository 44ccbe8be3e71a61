// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandomRange returns a uniformly distributed integer in [lo, hi], reading
// entropy from random (crypto/rand.Reader if nil).
//
// With n = hi - lo + 1 values and L the byte length of hi - lo, it draws
// L-byte numbers and rejects those at or above the largest multiple of n that
// fits in 256^L, so the final reduction modulo n is unbiased. Every draw is
// accepted with probability above one half.
func RandomRange(random io.Reader, lo, hi *Int) (*Int, error) {
	if random == nil {
		random = rand.Reader
	}
	switch lo.Cmp(hi) {
	case 1:
		return nil, ErrInvalidRange
	case 0:
		return lo, nil
	}
	span := hi.Sub(lo).abs
	size := span.add(natOne)

	length := len(span.bytes())
	q, _ := natOne.lsh(uint(8 * length)).div(size)
	limit := q.mul(size)

	buf := make([]byte, length)
	for {
		if _, err := io.ReadFull(random, buf); err != nil {
			return nil, fmt.Errorf("bigint: failed to read randomness: %w", err)
		}
		if v := natFromBytes(buf); v.cmp(limit) < 0 {
			_, r := v.div(size)
			return lo.Add(newInt(r, false, 0)), nil
		}
	}
}
