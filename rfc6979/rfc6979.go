// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rfc6979 derives deterministic DSA and ECDSA nonces from the private
// key and the message hash using HMAC-DRBG.
//
// https://datatracker.ietf.org/doc/html/rfc6979#section-3.2
package rfc6979

import (
	"github.com/dark-bio/bigrsa-go/bigint"
	"github.com/dark-bio/bigrsa-go/digest"
)

// Generator produces the sequence of candidate nonces for a single signing
// operation. The first value is the nonce; later values are only needed when
// a signature scheme rejects a candidate (e.g. r = 0).
type Generator struct {
	alg  digest.Algorithm
	q    *bigint.Int
	qlen int

	k []byte
	v []byte

	started bool
}

// NewGenerator seeds an HMAC-DRBG from the private key x and the message hash
// h1 for the group order q.
func NewGenerator(alg digest.Algorithm, q, x *bigint.Int, h1 []byte) *Generator {
	if q.Sign() <= 0 {
		panic("rfc6979: group order must be positive")
	}
	g := &Generator{
		alg:  alg,
		q:    q,
		qlen: q.BitLen(),
		k:    make([]byte, alg.Size()),
		v:    make([]byte, alg.Size()),
	}
	for i := range g.v {
		g.v[i] = 0x01
	}
	key := g.int2octets(x)
	msg := g.bits2octets(h1)

	g.k = alg.HMAC(g.k, g.v, []byte{0x00}, key, msg)
	g.v = alg.HMAC(g.k, g.v)
	g.k = alg.HMAC(g.k, g.v, []byte{0x01}, key, msg)
	g.v = alg.HMAC(g.k, g.v)

	return g
}

// Nonce returns the deterministic nonce k in [1, q-1].
func Nonce(alg digest.Algorithm, q, x *bigint.Int, h1 []byte) *bigint.Int {
	return NewGenerator(alg, q, x, h1).Next()
}

// Next returns the next candidate nonce in [1, q-1].
func (g *Generator) Next() *bigint.Int {
	if g.started {
		g.k = g.alg.HMAC(g.k, g.v, []byte{0x00})
		g.v = g.alg.HMAC(g.k, g.v)
	}
	g.started = true

	for {
		var t []byte
		for len(t)*8 < g.qlen {
			g.v = g.alg.HMAC(g.k, g.v)
			t = append(t, g.v...)
		}
		if k := g.bits2int(t); k.Sign() > 0 && k.Cmp(g.q) < 0 {
			return k
		}
		g.k = g.alg.HMAC(g.k, g.v, []byte{0x00})
		g.v = g.alg.HMAC(g.k, g.v)
	}
}

// bits2int takes the leftmost qlen bits of b as an integer.
func (g *Generator) bits2int(b []byte) *bigint.Int {
	x := bigint.FromBytes(b, false)
	if blen := 8 * len(b); blen > g.qlen {
		x = x.Rsh(uint(blen - g.qlen))
	}
	return x
}

// int2octets encodes x as ceil(qlen/8) big-endian bytes.
func (g *Generator) int2octets(x *bigint.Int) []byte {
	return x.FillBytes(make([]byte, (g.qlen+7)/8))
}

// bits2octets reduces the hash modulo q and encodes it like int2octets.
func (g *Generator) bits2octets(b []byte) []byte {
	z := g.bits2int(b)
	if z.Cmp(g.q) >= 0 {
		z = z.Sub(g.q)
	}
	return g.int2octets(z)
}
