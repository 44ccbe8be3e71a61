// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

// Bitwise operations have two modes. Without precision they act on the
// magnitudes and always yield non-negative results. With precision they act
// on the receiver's bits-wide two's-complement representation, so the second
// operand is first reduced into that width.

// operand returns y as a bit pattern compatible with x.
func (x *Int) operand(y *Int) nat {
	if x.prec == 0 {
		return y.abs
	}
	return newInt(y.abs, y.neg, x.prec).abs
}

// And returns x & y.
func (x *Int) And(y *Int) *Int {
	return newInt(x.abs.and(x.operand(y)), false, x.prec)
}

// Or returns x | y.
func (x *Int) Or(y *Int) *Int {
	return newInt(x.abs.or(x.operand(y)), false, x.prec)
}

// Xor returns x ^ y.
func (x *Int) Xor(y *Int) *Int {
	return newInt(x.abs.xor(x.operand(y)), false, x.prec)
}

// Not returns the bitwise complement of x: within the precision if one is set,
// otherwise of the bits below BitLen.
func (x *Int) Not() *Int {
	width := x.prec
	if width == 0 {
		width = uint(x.abs.bitLen())
	}
	return newInt(x.abs.xor(mask(width)), false, x.prec)
}
