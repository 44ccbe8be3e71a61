// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

// windowRanges are the exponent bit lengths up to which each window size is
// used; longer exponents get a window one wider than the table.
var windowRanges = []int{7, 25, 81, 241, 673, 1793}

// windowSize returns the sliding window width for an exponent of the given bit
// length.
func windowSize(bitLen int) int {
	w := 1
	for _, r := range windowRanges {
		if bitLen <= r {
			break
		}
		w++
	}
	return w
}

// slidingWindow computes x^e under r with left-to-right sliding windows (HAC
// 14.85). x must already be reduced and e must be non-zero. Only the odd
// powers x, x^3, ..., x^(2^w - 1) are tabulated.
func slidingWindow(r reducer, x, e nat) nat {
	w := windowSize(e.bitLen())

	powers := make([]nat, 1<<(w-1))
	powers[0] = r.enter(x)
	if len(powers) > 1 {
		x2 := r.sqr(powers[0])
		for i := 1; i < len(powers); i++ {
			powers[i] = r.mul(powers[i-1], x2)
		}
	}
	z := r.one()
	for i := e.bitLen() - 1; i >= 0; {
		if e.bit(uint(i)) == 0 {
			z = r.sqr(z)
			i--
			continue
		}
		// Longest window of at most w bits starting at i and ending in a one
		l := max(i-w+1, 0)
		for e.bit(uint(l)) == 0 {
			l++
		}
		var v uint
		for j := i; j >= l; j-- {
			v = v<<1 | e.bit(uint(j))
			z = r.sqr(z)
		}
		z = r.mul(z, powers[v>>1])
		i = l - 1
	}
	return r.leave(z)
}

// Exp returns x^e mod m. The exponent must not be negative; use Int.ModPow for
// negative exponents.
func (m *Modulus) Exp(x, e *Int) *Int {
	return m.ExpWith(x, e, Auto)
}

// ExpWith returns x^e mod m using the requested reduction strategy. Every
// strategy yields the same result; Barrett and Classic exist to cross-check
// the default.
func (m *Modulus) ExpWith(x, e *Int, red Reduction) *Int {
	if e.neg {
		panic("bigint: negative exponent")
	}
	if m.m.cmp(natOne) == 0 {
		return intZero
	}
	if len(e.abs) == 0 {
		return intOne
	}
	base := m.Reduce(x).abs
	if len(base) == 0 {
		return intZero
	}
	var z nat
	switch red {
	case Auto, Montgomery:
		z = m.exp(base, e.abs)
	case Barrett:
		z = slidingWindow(m.barrettReduction(), base, e.abs)
	case Classic:
		z = slidingWindow(classicReducer{m: m.m}, base, e.abs)
	default:
		panic("bigint: unknown reduction")
	}
	return newInt(z, false, 0)
}

// exp dispatches on the parity of the modulus. Even moduli m = 2^k * odd are
// exponentiated separately modulo both factors and recombined with the CRT.
func (m *Modulus) exp(x, e nat) nat {
	if m.IsOdd() {
		return slidingWindow(m.montgomery(), x, e)
	}
	sp := m.splitEven()

	z2 := slidingWindow(powerOfTwoReducer{bits: sp.k}, x, e)
	if sp.odd == nil {
		return z2
	}
	z1 := slidingWindow(sp.odd.montgomery(), sp.odd.reduce(x), e)

	return m.reduce(z1.mul(sp.c1).add(z2.mul(sp.c2)))
}

// ModPow returns x^e mod m for a positive modulus m. A negative exponent
// inverts x first and fails with ErrNoInverse if x is not invertible.
//
// Each call sets up fresh reduction constants; hold a Modulus to reuse them.
func (x *Int) ModPow(e, m *Int) (*Int, error) {
	mod, err := NewModulus(m)
	if err != nil {
		return nil, err
	}
	base := x
	if e.neg {
		if base, err = x.ModInverse(m); err != nil {
			return nil, err
		}
	}
	return mod.Exp(base, e.Abs()).WithPrecision(x.prec), nil
}
