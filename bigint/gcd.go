// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

// ExtendedGCD returns g = gcd(x, y) >= 0 together with Bézout coefficients s
// and t such that x*s + y*t = g. It uses the binary algorithm (HAC 14.61), so
// only shifts, additions and subtractions are involved.
func (x *Int) ExtendedGCD(y *Int) (g, s, t *Int) {
	ux, uy := x.abs, y.abs
	switch {
	case len(ux) == 0 && len(uy) == 0:
		return intZero, intZero, intZero
	case len(uy) == 0:
		return newInt(ux, false, 0), New(int64(x.Sign())), intZero
	case len(ux) == 0:
		return newInt(uy, false, 0), intZero, New(int64(y.Sign()))
	}
	// Strip the common power of two, it is multiplied back into g at the end
	shift := min(ux.trailingZeroBits(), uy.trailingZeroBits())
	a := newInt(ux.rsh(shift), false, 0)
	b := newInt(uy.rsh(shift), false, 0)

	u, v := a, b
	A, B, C, D := intOne, intZero, intZero, intOne
	for {
		for !u.IsOdd() {
			u = u.Rsh(1)
			if A.IsOdd() || B.IsOdd() {
				A, B = A.Add(b), B.Sub(a)
			}
			A, B = A.Rsh(1), B.Rsh(1)
		}
		for !v.IsOdd() {
			v = v.Rsh(1)
			if C.IsOdd() || D.IsOdd() {
				C, D = C.Add(b), D.Sub(a)
			}
			C, D = C.Rsh(1), D.Rsh(1)
		}
		if u.Cmp(v) >= 0 {
			u, A, B = u.Sub(v), A.Sub(C), B.Sub(D)
		} else {
			v, C, D = v.Sub(u), C.Sub(A), D.Sub(B)
		}
		if u.IsZero() {
			break
		}
	}
	g, s, t = v.Lsh(shift), C, D
	if x.neg {
		s = s.Neg()
	}
	if y.neg {
		t = t.Neg()
	}
	return g, s, t
}

// GCD returns the greatest common divisor of |x| and |y|.
func (x *Int) GCD(y *Int) *Int {
	g, _, _ := x.ExtendedGCD(y)
	return g
}

// LCM returns the least common multiple of |x| and |y|, zero if either is.
func (x *Int) LCM(y *Int) *Int {
	if x.IsZero() || y.IsZero() {
		return intZero
	}
	return x.Mul(y).Abs().Quo(x.GCD(y))
}

// ModInverse returns the inverse of x modulo n in [0, n). It fails with
// ErrNoInverse if n is not positive or gcd(x, n) != 1.
func (x *Int) ModInverse(n *Int) (*Int, error) {
	if n.Sign() <= 0 {
		return nil, ErrNoInverse
	}
	if n.abs.cmp(natOne) == 0 {
		return intZero, nil
	}
	g, s, _ := x.Mod(n).ExtendedGCD(n)
	if g.abs.cmp(natOne) != 0 {
		return nil, ErrNoInverse
	}
	return s.Mod(n), nil
}
