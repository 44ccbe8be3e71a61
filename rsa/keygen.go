// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dark-bio/bigrsa-go/bigint"
	"github.com/dark-bio/bigrsa-go/prime"
)

const (
	// DefaultSmallestPrimeBits is the size of the non-final primes of
	// multi-prime keys. Keys shorter than twice this use two primes.
	DefaultSmallestPrimeBits = 4096

	// MinKeyBits is the smallest modulus GenerateKey accepts.
	MinKeyBits = 32

	// MinPrimeBits is the smallest SmallestPrimeBits GenerateKey accepts.
	MinPrimeBits = MinKeyBits / 2
)

// defaultExponent is the public exponent of every generated key.
var defaultExponent = bigint.New(65537)

var (
	// ErrKeyTooSmall is returned when the requested modulus is too short.
	ErrKeyTooSmall = errors.New("rsa: key size too small")

	// ErrInvalidPartial is returned when a keygen snapshot is inconsistent
	// or does not match the requested key size.
	ErrInvalidPartial = errors.New("rsa: invalid partial key")

	// ErrInvalidOptions is returned when the keygen options describe a layout
	// that cannot be filled with distinct primes.
	ErrInvalidOptions = errors.New("rsa: invalid keygen options")
)

// KeygenOptions configures key generation. A nil *KeygenOptions uses the
// defaults.
type KeygenOptions struct {
	// SmallestPrimeBits is the size of the non-final primes; keys of at
	// least twice this size get floor(bits/SmallestPrimeBits) primes. Zero
	// means DefaultSmallestPrimeBits; values below MinPrimeBits, or too small
	// to supply that many distinct primes, fail with ErrInvalidOptions.
	SmallestPrimeBits int

	// Timeout bounds the wall-clock time of this call; zero means unbounded.
	// On expiry the result carries a PartialKey instead of keys.
	Timeout time.Duration

	// Resume continues a search captured by an earlier timed out call.
	Resume *PartialKey
}

// KeygenResult is the outcome of GenerateKey: either a complete key pair or,
// if the time budget ran out, the partial state to resume from.
type KeygenResult struct {
	SecretKey *SecretKey
	PublicKey *PublicKey
	Partial   *PartialKey
}

// PartialKey is a snapshot of an interrupted key generation. It holds the
// primes found so far together with everything derived from them, and can be
// serialized to resume the search later, possibly in another process.
type PartialKey struct {
	Bits      int `cbor:"1,keyasint"` // Requested modulus size
	PrimeBits int `cbor:"2,keyasint"` // Size of the non-final primes
	Count     int `cbor:"3,keyasint"` // Number of primes

	Primes       []*bigint.Int `cbor:"4,keyasint"` // Primes found so far
	Exponents    []*bigint.Int `cbor:"5,keyasint"` // e⁻¹ mod (p_i - 1) per prime
	Coefficients []*bigint.Int `cbor:"6,keyasint"` // Garner coefficients so far

	Product   *bigint.Int `cbor:"7,keyasint"` // Product of the primes
	LCMTop    *bigint.Int `cbor:"8,keyasint"` // Product of p_i - 1
	LCMBottom *bigint.Int `cbor:"9,keyasint"` // Product of the running GCDs
}

// keyLayout returns the prime count and the size of the non-final primes for
// a bits-sized key.
func keyLayout(bits, smallest int) (count, primeBits int) {
	count = max(2, bits/smallest)
	if count == 2 {
		return count, bits / 2
	}
	return count, smallest
}

// layoutFeasible reports whether count primes, all but the last of primeBits
// bits, can be drawn without exhausting the primes of that size. There are
// more than 2^(b-1)/b primes of b bits; at most a quarter of them may be
// needed.
func layoutFeasible(count, primeBits int) bool {
	if primeBits < MinPrimeBits {
		return false
	}
	if primeBits >= 31 {
		return true
	}
	return 4*(count-1)*primeBits <= 1<<(primeBits-1)
}

// newPartialKey creates an empty search state.
func newPartialKey(bits, count, primeBits int) *PartialKey {
	return &PartialKey{
		Bits:      bits,
		PrimeBits: primeBits,
		Count:     count,
		Product:   one,
		LCMTop:    one,
		LCMBottom: one,
	}
}

// ParsePartialKey decodes and validates a keygen snapshot.
func ParsePartialKey(data []byte) (*PartialKey, error) {
	var st PartialKey
	if err := decMode.Unmarshal(data, (*partialKey)(&st)); err != nil {
		return nil, err
	}
	if err := st.validate(); err != nil {
		return nil, err
	}
	return &st, nil
}

// partialKey strips the methods of PartialKey so the CBOR codec encodes its
// fields instead of recursing into MarshalBinary.
type partialKey PartialKey

// MarshalBinary encodes the snapshot as deterministic CBOR.
func (st *PartialKey) MarshalBinary() ([]byte, error) {
	return encMode.Marshal((*partialKey)(st))
}

// validate checks that the derived fields match the primes.
func (st *PartialKey) validate() error {
	if st.Bits < MinKeyBits || st.Count < 2 || st.PrimeBits < 2 || len(st.Primes) >= st.Count {
		return ErrInvalidPartial
	}
	if len(st.Exponents) != len(st.Primes) || len(st.Coefficients) != max(0, len(st.Primes)-1) {
		return ErrInvalidPartial
	}
	if st.Product == nil || st.LCMTop == nil || st.LCMBottom == nil {
		return ErrInvalidPartial
	}
	if !layoutFeasible(st.Count, st.PrimeBits) {
		return ErrInvalidPartial
	}
	if count, primeBits := keyLayout(st.Bits, st.PrimeBits); st.Count == 2 {
		if st.PrimeBits != st.Bits/2 {
			return ErrInvalidPartial
		}
	} else if count != st.Count || primeBits != st.PrimeBits {
		return ErrInvalidPartial
	}
	want := newPartialKey(st.Bits, st.Count, st.PrimeBits)
	for _, p := range st.Primes {
		if p == nil || p.BitLen() != st.PrimeBits {
			return ErrInvalidPartial
		}
		if err := want.push(p); err != nil {
			return ErrInvalidPartial
		}
	}
	if !equalInts(st.Exponents, want.Exponents) || !equalInts(st.Coefficients, want.Coefficients) {
		return ErrInvalidPartial
	}
	if !st.Product.Equal(want.Product) || !st.LCMTop.Equal(want.LCMTop) || !st.LCMBottom.Equal(want.LCMBottom) {
		return ErrInvalidPartial
	}
	return nil
}

// clone returns a copy not sharing slices with st.
func (st *PartialKey) clone() *PartialKey {
	cpy := *st
	cpy.Primes = append([]*bigint.Int(nil), st.Primes...)
	cpy.Exponents = append([]*bigint.Int(nil), st.Exponents...)
	cpy.Coefficients = append([]*bigint.Int(nil), st.Coefficients...)
	return &cpy
}

// push records a new prime, extending the product, the CRT values and the
// LCM of the p_i - 1.
func (st *PartialKey) push(p *bigint.Int) error {
	pm1 := p.Sub(one)
	exp, err := defaultExponent.ModInverse(pm1)
	if err != nil {
		return err
	}
	if len(st.Primes) > 0 {
		coeff, err := coefficient(st.Primes, p)
		if err != nil {
			return err
		}
		st.Coefficients = append(st.Coefficients, coeff)
	}
	// lcm(l, p-1) = l * (p-1) / gcd(l, p-1) with l = top / bottom
	lcm := st.LCMTop.Quo(st.LCMBottom)
	st.LCMBottom = st.LCMBottom.Mul(lcm.GCD(pm1))
	st.LCMTop = st.LCMTop.Mul(pm1)

	st.Primes = append(st.Primes, p)
	st.Exponents = append(st.Exponents, exp)
	st.Product = st.Product.Mul(p)
	return nil
}

// pop drops the last prime, rebuilding the derived values from the rest.
func (st *PartialKey) pop() {
	primes := st.Primes[:len(st.Primes)-1]

	fresh := newPartialKey(st.Bits, st.Count, st.PrimeBits)
	for _, p := range primes {
		if err := fresh.push(p); err != nil {
			panic(err) // accepted before, cannot fail now
		}
	}
	*st = *fresh
}

// reset discards every prime found so far.
func (st *PartialKey) reset() {
	*st = *newPartialKey(st.Bits, st.Count, st.PrimeBits)
}

// GenerateKey creates a random RSA key whose modulus has exactly bits bits
// and whose public exponent is 65537, reading entropy from random
// (crypto/rand.Reader if nil).
//
// All but the last prime are drawn at a fixed size; the last one is drawn
// from the range that makes the product exactly bits long. If the timeout in
// opts expires first, the result holds only a PartialKey, which can be passed
// back through KeygenOptions.Resume.
func GenerateKey(random io.Reader, bits int, opts *KeygenOptions) (*KeygenResult, error) {
	if bits < MinKeyBits {
		return nil, ErrKeyTooSmall
	}
	if opts == nil {
		opts = new(KeygenOptions)
	}
	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = time.Now().Add(opts.Timeout)
	}
	var st *PartialKey
	if opts.Resume != nil {
		if opts.Resume.Bits != bits {
			return nil, ErrInvalidPartial
		}
		if err := opts.Resume.validate(); err != nil {
			return nil, err
		}
		st = opts.Resume.clone()
	} else {
		smallest := opts.SmallestPrimeBits
		if smallest == 0 {
			smallest = DefaultSmallestPrimeBits
		}
		if smallest < MinPrimeBits {
			return nil, ErrInvalidOptions
		}
		count, primeBits := keyLayout(bits, smallest)
		if !layoutFeasible(count, primeBits) {
			return nil, ErrInvalidOptions
		}
		st = newPartialKey(bits, count, primeBits)
	}
	for {
		if err := fill(random, st, deadline); err != nil {
			if errors.Is(err, prime.ErrTimeout) {
				return &KeygenResult{Partial: st.clone()}, nil
			}
			return nil, err
		}
		lcm := st.LCMTop.Quo(st.LCMBottom)
		if !defaultExponent.GCD(lcm).Equal(one) {
			st.pop()
			continue
		}
		d, err := defaultExponent.ModInverse(lcm)
		if err != nil {
			return nil, fmt.Errorf("rsa: failed to derive private exponent: %w", err)
		}
		pub, err := NewPublicKey(st.Product, defaultExponent)
		if err != nil {
			return nil, err
		}
		key := newSecretKey(pub, d, st.Primes, st.Exponents, st.Coefficients)
		return &KeygenResult{SecretKey: key, PublicKey: pub}, nil
	}
}

// fill draws primes until the state holds all of them. It returns
// prime.ErrTimeout when the deadline passes, leaving st at a consistent
// boundary.
func fill(random io.Reader, st *PartialKey, deadline time.Time) error {
	for len(st.Primes) < st.Count {
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return prime.ErrTimeout
		}
		var (
			p   *bigint.Int
			err error
		)
		if len(st.Primes) < st.Count-1 {
			p, err = prime.RandomBits(random, st.PrimeBits, deadline)
		} else {
			// The final prime makes the product exactly Bits long
			lo := one.Lsh(uint(st.Bits - 1)).Quo(st.Product).Add(one)
			hi := one.Lsh(uint(st.Bits)).Sub(one).Quo(st.Product)

			p, err = prime.Random(random, lo, hi, deadline)
			if errors.Is(err, prime.ErrExhausted) {
				st.reset()
				continue
			}
		}
		if err != nil {
			return err
		}
		if contains(st.Primes, p) {
			continue
		}
		// A prime with gcd(e, p-1) != 1 cannot carry a CRT exponent, redraw
		if !defaultExponent.GCD(p.Sub(one)).Equal(one) {
			continue
		}
		if err := st.push(p); err != nil {
			return err
		}
	}
	return nil
}

func contains(primes []*bigint.Int, p *bigint.Int) bool {
	for _, q := range primes {
		if q.Equal(p) {
			return true
		}
	}
	return false
}
