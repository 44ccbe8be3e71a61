// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prime implements probabilistic primality testing and random prime
// search over bigint values.
//
// https://cacr.uwaterloo.ca/hac/about/chap4.pdf
package prime

import (
	"errors"
	"io"
	"time"

	"github.com/dark-bio/bigrsa-go/bigint"
)

var (
	// ErrTimeout is returned when a prime search passes its deadline.
	ErrTimeout = errors.New("prime: search deadline exceeded")

	// ErrExhausted is returned when a range holds no prime.
	ErrExhausted = errors.New("prime: no prime in range")

	// ErrTooSmall is returned for prime sizes below two bits.
	ErrTooSmall = errors.New("prime: bit size too small")
)

// smallPrimes are the odd primes below 1000, used for trial division.
var smallPrimes = []bigint.Word{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59,
	61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137,
	139, 149, 151, 157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227,
	229, 233, 239, 241, 251, 257, 263, 269, 271, 277, 281, 283, 293, 307, 311, 313,
	317, 331, 337, 347, 349, 353, 359, 367, 373, 379, 383, 389, 397, 401, 409, 419,
	421, 431, 433, 439, 443, 449, 457, 461, 463, 467, 479, 487, 491, 499, 503, 509,
	521, 523, 541, 547, 557, 563, 569, 571, 577, 587, 593, 599, 601, 607, 613, 617,
	619, 631, 641, 643, 647, 653, 659, 661, 673, 677, 683, 691, 701, 709, 719, 727,
	733, 739, 743, 751, 757, 761, 769, 773, 787, 797, 809, 811, 821, 823, 827, 829,
	839, 853, 857, 859, 863, 877, 881, 883, 887, 907, 911, 919, 929, 937, 941, 947,
	953, 967, 971, 977, 983, 991, 997,
}

var (
	one = bigint.New(1)
	two = bigint.New(2)

	largestSmallPrime = bigint.New(997)
)

// rounds returns the number of Miller-Rabin rounds for n, keyed by its byte
// length, keeping the error probability below 2^-80 (HAC 4.49).
func rounds(n *bigint.Int) int {
	length := (n.BitLen() + 7) / 8
	switch {
	case length >= 163:
		return 2
	case length >= 106:
		return 3
	case length >= 81:
		return 4
	case length >= 68:
		return 5
	case length >= 56:
		return 6
	case length >= 50:
		return 7
	case length >= 43:
		return 8
	case length >= 37:
		return 9
	case length >= 31:
		return 12
	case length >= 25:
		return 15
	case length >= 18:
		return 18
	}
	return 27
}

// IsProbable reports whether n is prime. Values up to 997 are looked up,
// larger ones are trial divided by the small primes and then put through
// Miller-Rabin with witnesses drawn from random (crypto/rand.Reader if nil).
// A composite is reported prime with probability below 2^-80.
func IsProbable(random io.Reader, n *bigint.Int) (bool, error) {
	if n.Cmp(two) < 0 {
		return false, nil
	}
	if n.Cmp(largestSmallPrime) <= 0 {
		v := bigint.Word(n.Uint64())
		if v == 2 {
			return true, nil
		}
		for _, p := range smallPrimes {
			if p == v {
				return true, nil
			}
		}
		return false, nil
	}
	if !n.IsOdd() {
		return false, nil
	}
	for _, p := range smallPrimes {
		if n.ModWord(p) == 0 {
			return false, nil
		}
	}
	return millerRabin(random, n, rounds(n))
}

// millerRabin runs t rounds of the Miller-Rabin test on an odd n > 3. All
// rounds share one Modulus so the Montgomery constants are computed once.
func millerRabin(random io.Reader, n *bigint.Int, t int) (bool, error) {
	mod := bigint.MustNewModulus(n)

	nm1 := n.Sub(one)
	nm2 := n.Sub(two)
	s := nm1.TrailingZeroBits()
	r := nm1.Rsh(s)

	for i := 0; i < t; i++ {
		a, err := bigint.RandomRange(random, two, nm2)
		if err != nil {
			return false, err
		}
		y := mod.Exp(a, r)
		if y.Equal(one) || y.Equal(nm1) {
			continue
		}
		witness := true
		for j := uint(1); j < s; j++ {
			y = mod.Mul(y, y)
			if y.Equal(nm1) {
				witness = false
				break
			}
			if y.Equal(one) {
				return false, nil
			}
		}
		if witness {
			return false, nil
		}
	}
	return true, nil
}

// Random returns a random odd prime in [lo, hi].
//
// A uniformly random candidate is forced odd and then walked upwards in steps
// of two, wrapping around to lo past hi, until a prime is found. The search
// fails with ErrExhausted once it comes back to its starting point, and with
// ErrTimeout when the deadline passes. A zero deadline never expires.
func Random(random io.Reader, lo, hi *bigint.Int, deadline time.Time) (*bigint.Int, error) {
	if lo.Cmp(two) <= 0 {
		lo = bigint.New(3)
	}
	if lo.Cmp(hi) > 0 {
		return nil, ErrExhausted
	}
	first := lo
	if !first.IsOdd() {
		first = first.Add(one)
	}
	if first.Cmp(hi) > 0 {
		return nil, ErrExhausted
	}
	x, err := bigint.RandomRange(random, lo, hi)
	if err != nil {
		return nil, err
	}
	if !x.IsOdd() {
		x = x.Add(one)
	}
	if x.Cmp(hi) > 0 {
		x = first
	}
	start := x
	for {
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil, ErrTimeout
		}
		ok, err := IsProbable(random, x)
		if err != nil {
			return nil, err
		}
		if ok {
			return x, nil
		}
		if x = x.Add(two); x.Cmp(hi) > 0 {
			x = first
		}
		if x.Equal(start) {
			return nil, ErrExhausted
		}
	}
}

// RandomBits returns a random prime of exactly bits bits.
func RandomBits(random io.Reader, bits int, deadline time.Time) (*bigint.Int, error) {
	if bits < 2 {
		return nil, ErrTooSmall
	}
	lo := one.Lsh(uint(bits - 1))
	hi := one.Lsh(uint(bits)).Sub(one)
	return Random(random, lo, hi, deadline)
}
