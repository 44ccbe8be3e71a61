// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

import "math/bits"

// Word is a single limb of a magnitude, as wide as the host's native unsigned
// integer.
type Word uint

const (
	_S = bits.UintSize / 8 // word size in bytes
	_W = bits.UintSize     // word size in bits
	_M = 1<<_W - 1         // word mask
)

// The double-word results of math/bits act as the two-limb accumulator for
// every carry and borrow chain below.

func mulWW(x, y Word) (z1, z0 Word) {
	hi, lo := bits.Mul(uint(x), uint(y))
	return Word(hi), Word(lo)
}

// z1<<_W + z0 = x*y + c
func mulAddWWW(x, y, c Word) (z1, z0 Word) {
	hi, lo := bits.Mul(uint(x), uint(y))
	var cc uint
	lo, cc = bits.Add(lo, uint(c), 0)
	return Word(hi + cc), Word(lo)
}

// q = (x1<<_W + x0) / y, r = (x1<<_W + x0) % y, requires x1 < y.
func divWW(x1, x0, y Word) (q, r Word) {
	qq, rr := bits.Div(uint(x1), uint(x0), uint(y))
	return Word(qq), Word(rr)
}

// The resulting carry c is either 0 or 1.
func addVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Add(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// The resulting borrow c is either 0 or 1.
func subVV(z, x, y []Word) (c Word) {
	for i := 0; i < len(z) && i < len(x) && i < len(y); i++ {
		zi, cc := bits.Sub(uint(x[i]), uint(y[i]), uint(c))
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

func addVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Add(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

func subVW(z, x []Word, y Word) (c Word) {
	c = y
	for i := 0; i < len(z) && i < len(x); i++ {
		zi, cc := bits.Sub(uint(x[i]), uint(c), 0)
		z[i] = Word(zi)
		c = Word(cc)
	}
	return
}

// shlVU sets z = x << s for 0 <= s < _W and returns the bits shifted out. z and
// x may alias.
func shlVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if len(z) == 0 {
		return
	}
	s &= _W - 1
	r := _W - s
	c = x[len(z)-1] >> r
	for i := len(z) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>r
	}
	z[0] = x[0] << s
	return
}

// shrVU sets z = x >> s for 0 <= s < _W and returns the bits shifted out, at
// the top of c. z and x may alias.
func shrVU(z, x []Word, s uint) (c Word) {
	if s == 0 {
		copy(z, x)
		return
	}
	if len(z) == 0 {
		return
	}
	s &= _W - 1
	r := _W - s
	c = x[0] << r
	for i := 0; i < len(z)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<r
	}
	z[len(z)-1] = x[len(z)-1] >> s
	return
}

// mulAddVWW sets z = x*y + r and returns the carry word.
func mulAddVWW(z, x []Word, y, r Word) (c Word) {
	c = r
	for i := 0; i < len(z) && i < len(x); i++ {
		c, z[i] = mulAddWWW(x[i], y, c)
	}
	return
}

// addMulVVW sets z += x*y and returns the carry word.
func addMulVVW(z, x []Word, y Word) (c Word) {
	for i := 0; i < len(z) && i < len(x); i++ {
		z1, z0 := mulAddWWW(x[i], y, z[i])
		lo, cc := bits.Add(uint(z0), uint(c), 0)
		c, z[i] = Word(cc)+z1, Word(lo)
	}
	return
}

// divWVW sets z = (xn<<(len(x)*_W) + x) / y and returns the remainder. It
// requires xn < y.
func divWVW(z []Word, xn Word, x []Word, y Word) (r Word) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = divWW(r, x[i], y)
	}
	return
}

func greaterThan(x1, x2, y1, y2 Word) bool {
	return x1 > y1 || x1 == y1 && x2 > y2
}
