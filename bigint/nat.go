// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

import "math/bits"

// nat is an unsigned magnitude stored as little-endian limbs. A normalized nat
// has no leading zero limbs, and zero is the empty slice.
//
// A nat reachable from an Int is never written to again: every operation here
// allocates its result. Only the Montgomery and division internals write into
// scratch buffers they own.
type nat []Word

// karatsubaThreshold is the number of limbs per half below which schoolbook
// multiplication wins over splitting.
const karatsubaThreshold = 25

var natOne = nat{1}

func (z nat) norm() nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[0:i]
}

func natFromWord(x Word) nat {
	if x == 0 {
		return nil
	}
	return nat{x}
}

func natFromUint64(x uint64) nat {
	if x == 0 {
		return nil
	}
	if _W == 32 && x>>32 != 0 {
		return nat{Word(x), Word(x >> 32)}
	}
	return nat{Word(x)}
}

// pad returns a copy of x extended with zero limbs to length n.
func (x nat) pad(n int) nat {
	z := make(nat, n)
	copy(z, x)
	return z
}

func (x nat) cmp(y nat) int {
	m, n := len(x), len(y)
	if m != n {
		if m < n {
			return -1
		}
		return 1
	}
	for i := m - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

func (x nat) add(y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	m, n := len(x), len(y)
	if n == 0 {
		return x
	}
	z := make(nat, m+1)
	c := addVV(z[:n], x[:n], y)
	if m > n {
		c = addVW(z[n:m], x[n:], c)
	}
	z[m] = c
	return z.norm()
}

// sub returns x - y and panics if y > x.
func (x nat) sub(y nat) nat {
	m, n := len(x), len(y)
	switch {
	case m < n:
		panic("bigint: nat subtraction underflow")
	case n == 0:
		return x
	}
	z := make(nat, m)
	c := subVV(z[:n], x[:n], y)
	if m > n {
		c = subVW(z[n:], x[n:], c)
	}
	if c != 0 {
		panic("bigint: nat subtraction underflow")
	}
	return z.norm()
}

// mulAddWW returns x*y + r.
func (x nat) mulAddWW(y, r Word) nat {
	m := len(x)
	if m == 0 || y == 0 {
		return natFromWord(r)
	}
	z := make(nat, m+1)
	z[m] = mulAddVWW(z[:m], x, y, r)
	return z.norm()
}

func (x nat) mul(y nat) nat {
	m, n := len(x), len(y)
	if m < n {
		x, y = y, x
		m, n = n, m
	}
	switch {
	case n == 0:
		return nil
	case n == 1:
		return x.mulAddWW(y[0], 0)
	case n < 2*karatsubaThreshold:
		return basicMul(x, y)
	}
	return karatsuba(x, y)
}

// basicMul is the schoolbook product, one row per limb of y.
func basicMul(x, y nat) nat {
	z := make(nat, len(x)+len(y))
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = addMulVVW(z[i:i+len(x)], x, d)
		}
	}
	return z.norm()
}

// karatsuba splits both operands at half the length of the shorter one, y:
//
//	x*y = z2*B^2h + z1*B^h + z0
//
// with z1 = (x1+x0)(y1+y0) - z2 - z0, trading one recursive product for a few
// additions.
func karatsuba(x, y nat) nat {
	h := len(y) / 2
	x0, x1 := x[:h].norm(), x[h:]
	y0, y1 := y[:h].norm(), y[h:]

	z0 := x0.mul(y0)
	z2 := x1.mul(y1)
	z1 := x0.add(x1).mul(y0.add(y1)).sub(z0).sub(z2)

	return z2.shlWords(2 * h).add(z1.shlWords(h)).add(z0)
}

func (x nat) sqr() nat {
	n := len(x)
	switch {
	case n == 0:
		return nil
	case n == 1:
		z1, z0 := mulWW(x[0], x[0])
		return nat{z0, z1}.norm()
	case n < 2*karatsubaThreshold:
		return basicSqr(x)
	}
	h := n / 2
	x0, x1 := x[:h].norm(), x[h:]

	z0 := x0.sqr()
	z2 := x1.sqr()
	z1 := x0.add(x1).sqr().sub(z0).sub(z2)

	return z2.shlWords(2 * h).add(z1.shlWords(h)).add(z0)
}

// basicSqr computes every cross product x[i]*x[j] (i < j) once, doubles the
// sum and then adds the diagonal squares.
func basicSqr(x nat) nat {
	n := len(x)
	z := make(nat, 2*n)
	for i := 0; i < n-1; i++ {
		z[n+i] = addMulVVW(z[2*i+1:n+i], x[i+1:], x[i])
	}
	shlVU(z, z, 1)

	d := make(nat, 2*n)
	for i, xi := range x {
		d[2*i+1], d[2*i] = mulWW(xi, xi)
	}
	addVV(z, z, d)
	return z.norm()
}

// shlWords returns x * B^k.
func (x nat) shlWords(k int) nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, len(x)+k)
	copy(z[k:], x)
	return z
}

// shrWords returns x / B^k. The result may share storage with x.
func (x nat) shrWords(k int) nat {
	if len(x) <= k {
		return nil
	}
	return x[k:]
}

// truncWords returns x mod B^k. The result may share storage with x.
func (x nat) truncWords(k int) nat {
	if len(x) <= k {
		return x
	}
	return x[:k].norm()
}

func (x nat) lsh(s uint) nat {
	m := len(x)
	if m == 0 {
		return nil
	}
	n := m + int(s/_W)
	z := make(nat, n+1)
	z[n] = shlVU(z[n-m:n], x, s%_W)
	return z.norm()
}

func (x nat) rsh(s uint) nat {
	m := len(x)
	n := m - int(s/_W)
	if n <= 0 {
		return nil
	}
	z := make(nat, n)
	shrVU(z, x[m-n:], s%_W)
	return z.norm()
}

func (x nat) bitLen() int {
	if i := len(x) - 1; i >= 0 {
		return i*_W + bits.Len(uint(x[i]))
	}
	return 0
}

func (x nat) trailingZeroBits() uint {
	for i, w := range x {
		if w != 0 {
			return uint(i)*_W + uint(bits.TrailingZeros(uint(w)))
		}
	}
	return 0
}

func (x nat) bit(i uint) uint {
	j := i / _W
	if j >= uint(len(x)) {
		return 0
	}
	return uint(x[j]>>(i%_W)) & 1
}

// trunc returns x mod 2^n.
func (x nat) trunc(n uint) nat {
	if x.bitLen() <= int(n) {
		return x
	}
	words := int((n + _W - 1) / _W)
	z := make(nat, words)
	copy(z, x)
	if r := n % _W; r != 0 {
		z[words-1] &= 1<<r - 1
	}
	return z.norm()
}

// mask returns 2^n - 1.
func mask(n uint) nat {
	if n == 0 {
		return nil
	}
	return natOne.lsh(n).sub(natOne)
}

func (x nat) modW(d Word) Word {
	if len(x) == 0 {
		return 0
	}
	q := make(nat, len(x))
	return divWVW(q, 0, x, d)
}

func (x nat) and(y nat) nat {
	z := make(nat, min(len(x), len(y)))
	for i := range z {
		z[i] = x[i] & y[i]
	}
	return z.norm()
}

func (x nat) or(y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(nat, len(x))
	copy(z, x)
	for i, w := range y {
		z[i] |= w
	}
	return z.norm()
}

func (x nat) xor(y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(nat, len(x))
	copy(z, x)
	for i, w := range y {
		z[i] ^= w
	}
	return z.norm()
}

// bytes returns the minimal big-endian encoding of x; zero encodes as empty.
func (x nat) bytes() []byte {
	buf := make([]byte, len(x)*_S)
	i := len(buf)
	for _, d := range x {
		for j := 0; j < _S; j++ {
			i--
			buf[i] = byte(d)
			d >>= 8
		}
	}
	for i < len(buf) && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

// natFromBytes interprets buf as a big-endian unsigned integer.
func natFromBytes(buf []byte) nat {
	z := make(nat, (len(buf)+_S-1)/_S)
	for k, i := 0, len(buf); i > 0; k++ {
		var d Word
		for j := 0; j < _S && i > 0; j++ {
			i--
			d |= Word(buf[i]) << (8 * j)
		}
		z[k] = d
	}
	return z.norm()
}
