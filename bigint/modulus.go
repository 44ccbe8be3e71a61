// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

import "sync"

// Reduction selects the reduction strategy used by Modulus.ExpWith.
type Reduction int

const (
	// Auto picks Montgomery for odd moduli and the power-of-two split with a
	// CRT recombination for even ones.
	Auto Reduction = iota

	// Montgomery is Auto under its more descriptive name.
	Montgomery

	// Barrett reduces every product with the precomputed μ.
	Barrett

	// Classic reduces every product by long division.
	Classic
)

// Modulus is a positive modulus together with lazily computed, memoized
// reduction constants. Holding on to a Modulus lets repeated operations under
// the same modulus (key operations, primality rounds) skip the setup cost.
//
// A Modulus is safe for concurrent use and must not be copied.
type Modulus struct {
	m nat

	montOnce sync.Once
	mont     *montgomeryReducer

	barrettOnce sync.Once
	barrett     *barrettReducer

	splitOnce sync.Once
	split     *evenSplit
}

// evenSplit holds the factorization m = 2^k * odd of an even modulus and the
// CRT weights used to recombine residues modulo both factors.
type evenSplit struct {
	k   uint
	odd *Modulus // nil if m is a power of two
	c1  nat      // 2^k * (2^k)⁻¹ mod odd
	c2  nat      // odd * odd⁻¹ mod 2^k
}

// NewModulus creates a Modulus for m, which must be positive.
func NewModulus(m *Int) (*Modulus, error) {
	if m.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	return &Modulus{m: m.abs}, nil
}

// MustNewModulus creates a Modulus for m. It panics if m is not positive.
func MustNewModulus(m *Int) *Modulus {
	mod, err := NewModulus(m)
	if err != nil {
		panic(err)
	}
	return mod
}

// Int returns the modulus value.
func (m *Modulus) Int() *Int {
	return newInt(m.m, false, 0)
}

// BitLen returns the length of the modulus in bits.
func (m *Modulus) BitLen() int {
	return m.m.bitLen()
}

// IsOdd reports whether the modulus is odd.
func (m *Modulus) IsOdd() bool {
	return m.m[0]&1 == 1
}

func (m *Modulus) montgomery() *montgomeryReducer {
	m.montOnce.Do(func() {
		m.mont = newMontgomeryReducer(m.m)
	})
	return m.mont
}

func (m *Modulus) barrettReduction() *barrettReducer {
	m.barrettOnce.Do(func() {
		m.barrett = newBarrettReducer(m.m)
	})
	return m.barrett
}

func (m *Modulus) splitEven() *evenSplit {
	m.splitOnce.Do(func() {
		k := m.m.trailingZeroBits()
		sp := &evenSplit{k: k}

		odd := m.m.rsh(k)
		if odd.cmp(natOne) != 0 {
			sp.odd = &Modulus{m: odd}

			pow2 := newInt(natOne.lsh(k), false, 0)
			oddInt := newInt(odd, false, 0)

			// Both inverses exist as 2^k and odd are coprime
			inv1, err := pow2.ModInverse(oddInt)
			if err != nil {
				panic("bigint: " + err.Error())
			}
			inv2, err := oddInt.ModInverse(pow2)
			if err != nil {
				panic("bigint: " + err.Error())
			}
			sp.c1 = pow2.abs.mul(inv1.abs)
			sp.c2 = odd.mul(inv2.abs)
		}
		m.split = sp
	})
	return m.split
}

// reduce returns x mod m for a magnitude x.
func (m *Modulus) reduce(x nat) nat {
	if x.cmp(m.m) < 0 {
		return x
	}
	return m.barrettReduction().reduce(x)
}

// Reduce returns x mod m in [0, m).
func (m *Modulus) Reduce(x *Int) *Int {
	r := m.reduce(x.abs)
	if x.neg && len(r) > 0 {
		r = m.m.sub(r)
	}
	return newInt(r, false, 0)
}

// Mul returns x*y mod m.
func (m *Modulus) Mul(x, y *Int) *Int {
	return m.Reduce(x.Mul(y))
}

// Add returns x+y mod m.
func (m *Modulus) Add(x, y *Int) *Int {
	return m.Reduce(x.Add(y))
}

// Sub returns x-y mod m.
func (m *Modulus) Sub(x, y *Int) *Int {
	return m.Reduce(x.Sub(y))
}

// Inverse returns x⁻¹ mod m, or ErrNoInverse if gcd(x, m) != 1.
func (m *Modulus) Inverse(x *Int) (*Int, error) {
	return x.ModInverse(m.Int())
}
