// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"io"

	"github.com/dark-bio/bigrsa-go/bigint"
)

// EncryptPrimitive computes m^e mod n (RSAEP, also RSAVP1).
func (k *PublicKey) EncryptPrimitive(m *bigint.Int) (*bigint.Int, error) {
	if m.Sign() < 0 || m.Cmp(k.Modulus()) >= 0 {
		return nil, ErrOutOfRange
	}
	return k.n.Exp(m, k.e), nil
}

// DecryptPrimitive computes c^d mod n (RSADP, also RSASP1). The ciphertext is
// blinded with fresh factors from random (crypto/rand.Reader if nil), and the
// result is re-encrypted to detect faults in the CRT computation.
func (k *SecretKey) DecryptPrimitive(random io.Reader, c *bigint.Int) (*bigint.Int, error) {
	if c.Sign() < 0 || c.Cmp(k.pub.Modulus()) >= 0 {
		return nil, ErrOutOfRange
	}
	var (
		m   *bigint.Int
		err error
	)
	if len(k.primes) == 0 {
		m, err = k.decryptDirect(random, c)
	} else {
		m, err = k.decryptCRT(random, c)
	}
	if err != nil {
		return nil, err
	}
	if !k.pub.n.Exp(m, k.pub.e).Equal(c) {
		return nil, ErrFault
	}
	return m, nil
}

// decryptDirect blinds modulo n and exponentiates with d.
func (k *SecretKey) decryptDirect(random io.Reader, c *bigint.Int) (*bigint.Int, error) {
	n := k.pub.n

	r, rinv, err := blindingPair(random, n)
	if err != nil {
		return nil, err
	}
	blinded := n.Mul(c, n.Exp(r, k.pub.e))
	return n.Mul(n.Exp(blinded, k.d), rinv), nil
}

// decryptCRT exponentiates modulo every prime with its own blinding factor and
// recombines the residues with Garner's algorithm.
func (k *SecretKey) decryptCRT(random io.Reader, c *bigint.Int) (*bigint.Int, error) {
	residues := make([]*bigint.Int, len(k.primes))
	for i, p := range k.primes {
		r, rinv, err := blindingPair(random, p)
		if err != nil {
			return nil, err
		}
		blinded := p.Mul(p.Reduce(c), p.Exp(r, k.pub.e))
		residues[i] = p.Mul(p.Exp(blinded, k.exps[i]), rinv)
	}
	// m = m2 + p2 * ((m1 - m2) * coeff mod p1)
	p1, p2 := k.primes[0], k.primes[1]
	h := p1.Mul(p1.Sub(residues[0], residues[1]), k.coeffs[0])
	m := residues[1].Add(p2.Int().Mul(h))

	r := p1.Int().Mul(p2.Int())
	for i := 2; i < len(k.primes); i++ {
		p := k.primes[i]
		h := p.Mul(p.Sub(residues[i], m), k.coeffs[i-1])
		m = m.Add(r.Mul(h))
		r = r.Mul(p.Int())
	}
	return m, nil
}

// blindingPair draws r uniformly from [1, m-1] together with its inverse. A
// non-invertible draw (only possible for composite m) is redrawn.
func blindingPair(random io.Reader, m *bigint.Modulus) (r, rinv *bigint.Int, err error) {
	for {
		if r, err = bigint.RandomRange(random, one, m.Int().Sub(one)); err != nil {
			return nil, nil, err
		}
		if rinv, err = m.Inverse(r); err == nil {
			return r, rinv, nil
		}
	}
}
