// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bigint implements immutable arbitrary-precision signed integers on
// machine word limbs, together with the modular arithmetic public-key
// cryptography is built on: Montgomery, Barrett and power-of-two reduction,
// sliding-window exponentiation, binary extended GCD and unbiased random
// sampling.
//
// Every operation returns a fresh value; an *Int is never modified once
// constructed and may be shared freely between goroutines.
package bigint

import "errors"

var (
	// ErrDivisionByZero is the panic value of divisions by zero.
	ErrDivisionByZero = errors.New("bigint: division by zero")

	// ErrNoInverse is returned when a modular inverse does not exist.
	ErrNoInverse = errors.New("bigint: no modular inverse")

	// ErrInvalidModulus is returned for non-positive moduli.
	ErrInvalidModulus = errors.New("bigint: modulus must be positive")

	// ErrInvalidBase is returned for unsupported text bases.
	ErrInvalidBase = errors.New("bigint: unsupported base")

	// ErrInvalidString is returned for malformed number strings.
	ErrInvalidString = errors.New("bigint: invalid number string")

	// ErrInvalidRange is returned when a random range is empty.
	ErrInvalidRange = errors.New("bigint: invalid random range")
)

// Int is an arbitrary-precision signed integer in sign-magnitude form.
//
// An Int may carry a bit precision. Such values are kept as their
// two's-complement residue modulo 2^precision, so they are never negative,
// and every result computed from them inherits the precision.
//
// The zero value is 0.
type Int struct {
	abs  nat
	neg  bool
	prec uint
}

var (
	intZero = &Int{}
	intOne  = &Int{abs: natOne}
)

// newInt normalizes a raw sign-magnitude pair into an Int of the given
// precision.
func newInt(abs nat, neg bool, prec uint) *Int {
	abs = abs.norm()
	if prec > 0 {
		if neg && len(abs) > 0 {
			if t := abs.trunc(prec); len(t) > 0 {
				abs = natOne.lsh(prec).sub(t)
			} else {
				abs = nil
			}
		} else {
			abs = abs.trunc(prec)
		}
		neg = false
	}
	if len(abs) == 0 {
		neg = false
	}
	return &Int{abs: abs, neg: neg, prec: prec}
}

// New creates an Int holding x.
func New(x int64) *Int {
	if x < 0 {
		return newInt(natFromUint64(uint64(-x)), true, 0)
	}
	return newInt(natFromUint64(uint64(x)), false, 0)
}

// FromUint64 creates an Int holding x.
func FromUint64(x uint64) *Int {
	return newInt(natFromUint64(x), false, 0)
}

// WithPrecision returns x reduced to a bits-wide two's-complement value. A
// precision of zero removes any bound.
func (x *Int) WithPrecision(bits uint) *Int {
	return newInt(x.abs, x.neg, bits)
}

// Precision returns the bit precision of x, zero if unbounded.
func (x *Int) Precision() uint {
	return x.prec
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x *Int) Sign() int {
	switch {
	case len(x.abs) == 0:
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsZero reports whether x is 0.
func (x *Int) IsZero() bool {
	return len(x.abs) == 0
}

// IsOdd reports whether x is odd.
func (x *Int) IsOdd() bool {
	return len(x.abs) > 0 && x.abs[0]&1 == 1
}

// Cmp compares x and y, returning -1, 0 or +1.
func (x *Int) Cmp(y *Int) int {
	switch {
	case x.neg == y.neg:
		r := x.abs.cmp(y.abs)
		if x.neg {
			r = -r
		}
		return r
	case x.neg:
		return -1
	}
	return 1
}

// CmpAbs compares the absolute values of x and y.
func (x *Int) CmpAbs(y *Int) int {
	return x.abs.cmp(y.abs)
}

// Equal reports whether x and y hold the same value, ignoring precision.
func (x *Int) Equal(y *Int) bool {
	return x.Cmp(y) == 0
}

// Abs returns |x|.
func (x *Int) Abs() *Int {
	return newInt(x.abs, false, x.prec)
}

// Neg returns -x.
func (x *Int) Neg() *Int {
	return newInt(x.abs, !x.neg, x.prec)
}

// addSigned adds two sign-magnitude values, turning opposite signs into a
// magnitude subtraction.
func addSigned(xa nat, xn bool, ya nat, yn bool) (nat, bool) {
	if xn == yn {
		return xa.add(ya), xn
	}
	if xa.cmp(ya) >= 0 {
		return xa.sub(ya), xn
	}
	return ya.sub(xa), yn
}

// Add returns x + y.
func (x *Int) Add(y *Int) *Int {
	abs, neg := addSigned(x.abs, x.neg, y.abs, y.neg)
	return newInt(abs, neg, x.prec)
}

// Sub returns x - y.
func (x *Int) Sub(y *Int) *Int {
	abs, neg := addSigned(x.abs, x.neg, y.abs, !y.neg)
	return newInt(abs, neg, x.prec)
}

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int {
	return newInt(x.abs.mul(y.abs), x.neg != y.neg, x.prec)
}

// Square returns x * x using the dedicated squaring routines.
func (x *Int) Square() *Int {
	return newInt(x.abs.sqr(), false, x.prec)
}

// DivMod returns the Euclidean quotient and remainder of x / y, such that
// x = q*y + r and 0 <= r < |y|. It panics if y is zero.
func (x *Int) DivMod(y *Int) (q, r *Int) {
	qa, ra := x.abs.div(y.abs)
	if x.neg && len(ra) > 0 {
		qa = qa.add(natOne)
		ra = y.abs.sub(ra)
	}
	return newInt(qa, x.neg != y.neg, x.prec), newInt(ra, false, x.prec)
}

// Quo returns the Euclidean quotient of x / y. It panics if y is zero.
func (x *Int) Quo(y *Int) *Int {
	q, _ := x.DivMod(y)
	return q
}

// Mod returns the Euclidean remainder of x / y, always in [0, |y|). It panics
// if y is zero.
func (x *Int) Mod(y *Int) *Int {
	_, r := x.DivMod(y)
	return r
}

// ModWord returns |x| mod d. It panics if d is zero.
func (x *Int) ModWord(d Word) Word {
	if d == 0 {
		panic(ErrDivisionByZero)
	}
	return x.abs.modW(d)
}

// Lsh returns x shifted left by n bits. The shift applies to the magnitude and
// keeps the sign.
func (x *Int) Lsh(n uint) *Int {
	return newInt(x.abs.lsh(n), x.neg, x.prec)
}

// Rsh returns x shifted right by n bits. The shift applies to the magnitude and
// keeps the sign, so it truncates towards zero.
func (x *Int) Rsh(n uint) *Int {
	return newInt(x.abs.rsh(n), x.neg, x.prec)
}

// BitLen returns the length of |x| in bits; zero has length 0.
func (x *Int) BitLen() int {
	return x.abs.bitLen()
}

// Bit returns the value of bit i of |x|.
func (x *Int) Bit(i uint) uint {
	return x.abs.bit(i)
}

// TrailingZeroBits returns the number of consecutive zero bits at the bottom
// of |x|.
func (x *Int) TrailingZeroBits() uint {
	return x.abs.trailingZeroBits()
}

// Uint64 returns the low 64 bits of |x|, truncating larger magnitudes.
func (x *Int) Uint64() uint64 {
	var v uint64
	for i := 0; i < len(x.abs) && i*_W < 64; i++ {
		v |= uint64(x.abs[i]) << (i * _W)
	}
	return v
}

// Int64 returns x as an int64. It panics if x is outside the int64 range.
func (x *Int) Int64() int64 {
	if x.abs.bitLen() > 64 {
		panic("bigint: value overflows int64")
	}
	u := x.Uint64()
	if x.neg {
		if u > 1<<63 {
			panic("bigint: value overflows int64")
		}
		return int64(-u)
	}
	if u >= 1<<63 {
		panic("bigint: value overflows int64")
	}
	return int64(u)
}
