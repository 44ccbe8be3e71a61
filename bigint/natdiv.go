// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

import "math/bits"

// divW returns x / y and x % y for a single limb divisor.
func (x nat) divW(y Word) (q nat, r Word) {
	m := len(x)
	switch {
	case y == 0:
		panic(ErrDivisionByZero)
	case y == 1:
		return x, 0
	case m == 0:
		return nil, 0
	}
	q = make(nat, m)
	r = divWVW(q, 0, x, y)
	return q.norm(), r
}

// div returns the quotient and remainder of u / v.
func (u nat) div(v nat) (q, r nat) {
	if len(v) == 0 {
		panic(ErrDivisionByZero)
	}
	if u.cmp(v) < 0 {
		return nil, u
	}
	if len(v) == 1 {
		q, r := u.divW(v[0])
		return q, natFromWord(r)
	}
	return divKnuth(u, v)
}

// divKnuth implements Knuth's Algorithm D (TAOCP vol. 2, 4.3.1) for divisors of
// at least two limbs and u >= v.
func divKnuth(uIn, vIn nat) (q, r nat) {
	n := len(vIn)
	m := len(uIn) - n

	// D1: normalize so the divisor's top limb has its high bit set
	s := uint(bits.LeadingZeros(uint(vIn[n-1])))
	v := make(nat, n)
	shlVU(v, vIn, s)
	u := make(nat, len(uIn)+1)
	u[len(uIn)] = shlVU(u[:len(uIn)], uIn, s)

	q = make(nat, m+1)
	qhatv := make(nat, n+1)

	vn1, vn2 := v[n-1], v[n-2]
	for j := m; j >= 0; j-- {
		// D3: estimate from the top two remainder limbs, refine with vn2
		qhat := Word(_M)
		if ujn := u[j+n]; ujn != vn1 {
			var rhat Word
			qhat, rhat = divWW(ujn, u[j+n-1], vn1)

			x1, x2 := mulWW(qhat, vn2)
			ujn2 := u[j+n-2]
			for greaterThan(x1, x2, rhat, ujn2) {
				qhat--
				prev := rhat
				rhat += vn1
				if rhat < prev {
					break
				}
				x1, x2 = mulWW(qhat, vn2)
			}
		}
		// D4: multiply and subtract
		qhatv[n] = mulAddVWW(qhatv[:n], v, qhat, 0)
		if c := subVV(u[j:j+n+1], u[j:j+n+1], qhatv); c != 0 {
			// D6: the estimate was one too large, add back
			c := addVV(u[j:j+n], u[j:j+n], v)
			u[j+n] += c
			qhat--
		}
		q[j] = qhat
	}
	// D8: un-normalize the remainder
	r = make(nat, n)
	shrVU(r, u[:n], s)

	return q.norm(), r.norm()
}
