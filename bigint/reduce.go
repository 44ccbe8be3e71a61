// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

// reducer is a modular multiplication strategy. Values handed to mul and sqr
// are in the reducer's internal representation: enter converts a residue
// below the modulus into it and leave converts back to a normalized residue.
type reducer interface {
	enter(x nat) nat
	leave(x nat) nat
	mul(x, y nat) nat
	sqr(x nat) nat
	one() nat
}

// montgomeryInverse returns -m0⁻¹ mod 2^_W for odd m0 by Newton iteration,
// doubling the number of correct low bits each step: 2, 4, 8, 16, 32, 64.
func montgomeryInverse(m0 Word) Word {
	if m0&1 == 0 {
		panic("bigint: montgomery modulus must be odd")
	}
	// For odd m0, m0 is its own inverse modulo 4
	x := m0 & 3
	for b := 2; b < _W; b *= 2 {
		x *= 2 - m0*x
	}
	return -x
}

// montMul returns x*y*R⁻¹ mod m with R = 2^(_W*len(m)), interleaving one limb
// of reduction after each limb of the product. x and y must both have len(m)
// limbs and be below R; the result has len(m) limbs and is below R but not
// necessarily below m.
func montMul(x, y, m nat, k0 Word) nat {
	n := len(m)
	if len(x) != n || len(y) != n {
		panic("bigint: mismatched montgomery operand lengths")
	}
	z := make(nat, 2*n)

	var c Word
	for i := 0; i < n; i++ {
		c2 := addMulVVW(z[i:n+i], x, y[i])
		t := z[i] * k0
		c3 := addMulVVW(z[i:n+i], m, t)
		cx := c + c2
		cy := cx + c3
		z[n+i] = cy
		if cx < c2 || cy < c3 {
			c = 1
		} else {
			c = 0
		}
	}
	if c != 0 {
		subVV(z[:n], z[n:], m)
	} else {
		copy(z[:n], z[n:])
	}
	return z[:n]
}

// montgomeryReducer works on fixed-width values x*R mod m.
type montgomeryReducer struct {
	m   nat
	k0  Word
	rr  nat // R² mod m, padded to len(m)
	rm  nat // R mod m, padded to len(m)
	pad nat // 1, padded to len(m)
}

func newMontgomeryReducer(m nat) *montgomeryReducer {
	n := len(m)
	_, rr := natOne.shlWords(2 * n).div(m)

	r := &montgomeryReducer{
		m:   m,
		k0:  montgomeryInverse(m[0]),
		rr:  rr.pad(n),
		pad: natOne.pad(n),
	}
	r.rm = montMul(r.pad, r.rr, m, r.k0)
	return r
}

func (r *montgomeryReducer) enter(x nat) nat {
	return montMul(x.pad(len(r.m)), r.rr, r.m, r.k0)
}

func (r *montgomeryReducer) leave(x nat) nat {
	z := montMul(x, r.pad, r.m, r.k0).norm()
	if z.cmp(r.m) >= 0 {
		z = z.sub(r.m)
	}
	return z
}

func (r *montgomeryReducer) mul(x, y nat) nat {
	return montMul(x, y, r.m, r.k0)
}

func (r *montgomeryReducer) sqr(x nat) nat {
	return montMul(x, x, r.m, r.k0)
}

func (r *montgomeryReducer) one() nat {
	return r.rm
}

// barrettReducer uses the precomputed μ = ⌊B^2k / m⌋ to replace division by
// two multiplications (HAC 14.42).
type barrettReducer struct {
	m  nat
	mu nat
	k  int
}

func newBarrettReducer(m nat) *barrettReducer {
	k := len(m)
	mu, _ := natOne.shlWords(2 * k).div(m)
	return &barrettReducer{m: m, mu: mu, k: k}
}

// reduce returns x mod m. Inputs wider than 2k limbs fall back to division.
func (r *barrettReducer) reduce(x nat) nat {
	k := r.k
	if x.cmp(r.m) < 0 {
		return x
	}
	if len(x) > 2*k {
		_, rem := x.div(r.m)
		return rem
	}
	q := x.shrWords(k - 1).mul(r.mu).shrWords(k + 1)

	r1 := x.truncWords(k + 1)
	r2 := q.mul(r.m).truncWords(k + 1)

	var z nat
	if r1.cmp(r2) >= 0 {
		z = r1.sub(r2)
	} else {
		z = r1.add(natOne.shlWords(k + 1)).sub(r2)
	}
	// The estimate is off by at most two
	for i := 0; z.cmp(r.m) >= 0; i++ {
		if i == 2 {
			panic("bigint: barrett estimate out of bounds")
		}
		z = z.sub(r.m)
	}
	return z
}

func (r *barrettReducer) enter(x nat) nat { return x }
func (r *barrettReducer) leave(x nat) nat { return x }
func (r *barrettReducer) mul(x, y nat) nat { return r.reduce(x.mul(y)) }
func (r *barrettReducer) sqr(x nat) nat { return r.reduce(x.sqr()) }
func (r *barrettReducer) one() nat { return natOne }

// classicReducer reduces every product by long division.
type classicReducer struct {
	m nat
}

func (r classicReducer) reduce(x nat) nat {
	_, rem := x.div(r.m)
	return rem
}

func (r classicReducer) enter(x nat) nat { return x }
func (r classicReducer) leave(x nat) nat { return x }
func (r classicReducer) mul(x, y nat) nat { return r.reduce(x.mul(y)) }
func (r classicReducer) sqr(x nat) nat { return r.reduce(x.sqr()) }
func (r classicReducer) one() nat { return natOne }

// powerOfTwoReducer reduces modulo 2^bits by masking.
type powerOfTwoReducer struct {
	bits uint
}

func (r powerOfTwoReducer) enter(x nat) nat { return x.trunc(r.bits) }
func (r powerOfTwoReducer) leave(x nat) nat { return x }
func (r powerOfTwoReducer) mul(x, y nat) nat { return x.mul(y).trunc(r.bits) }
func (r powerOfTwoReducer) sqr(x nat) nat { return x.sqr().trunc(r.bits) }
func (r powerOfTwoReducer) one() nat { return natOne.trunc(r.bits) }
