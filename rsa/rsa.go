// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rsa implements multi-prime RSA on top of the bigint engine: the key
// model with CRT decryption, time-boxed key generation and the PKCS#1 v2.2
// padding schemes.
//
// https://datatracker.ietf.org/doc/html/rfc8017
package rsa

import (
	"crypto/sha256"
	"errors"

	"github.com/dark-bio/bigrsa-go/bigint"
	"github.com/fxamacker/cbor/v2"
)

var (
	// ErrMessageTooLong is returned when a message does not fit the padding
	// capacity of the key, or the key is too small for the chosen hash.
	ErrMessageTooLong = errors.New("rsa: message too long")

	// ErrOutOfRange is returned when an integer representative is not in
	// [0, n).
	ErrOutOfRange = errors.New("rsa: value out of range")

	// ErrDecryption is returned for any decryption failure. It is deliberately
	// vague to avoid adaptive attacks.
	ErrDecryption = errors.New("rsa: decryption error")

	// ErrVerification is returned for any signature verification failure.
	ErrVerification = errors.New("rsa: verification error")

	// ErrInvalidKey is returned when key components are inconsistent.
	ErrInvalidKey = errors.New("rsa: invalid key")

	// ErrFault is returned when a private key operation fails its
	// re-encryption check.
	ErrFault = errors.New("rsa: internal computation fault")
)

var one = bigint.New(1)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err) // cannot fail, be loud if it does
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err) // cannot fail, be loud if it does
	}
}

// Components is the plain component view of a key, as exchanged with
// serializers. Primes, Exponents and Coefficients follow the PKCS#1 layout:
// Coefficients[0] is Primes[1]⁻¹ mod Primes[0] and Coefficients[i-1] for
// i >= 2 is (Primes[0]⋯Primes[i-1])⁻¹ mod Primes[i].
type Components struct {
	Modulus         *bigint.Int   `cbor:"1,keyasint"`
	PublicExponent  *bigint.Int   `cbor:"2,keyasint"`
	PrivateExponent *bigint.Int   `cbor:"3,keyasint,omitempty"`
	Primes          []*bigint.Int `cbor:"4,keyasint,omitempty"`
	Exponents       []*bigint.Int `cbor:"5,keyasint,omitempty"`
	Coefficients    []*bigint.Int `cbor:"6,keyasint,omitempty"`
}

// PublicKey is an RSA public key (n, e).
type PublicKey struct {
	n *bigint.Modulus
	e *bigint.Int
}

// NewPublicKey creates a public key from its modulus and exponent. The
// modulus must be odd and larger than the exponent, which must be odd and
// at least 3.
func NewPublicKey(n, e *bigint.Int) (*PublicKey, error) {
	if n.Sign() <= 0 || !n.IsOdd() {
		return nil, errors.New("rsa: modulus must be odd and positive")
	}
	if e.Cmp(bigint.New(3)) < 0 || !e.IsOdd() || e.Cmp(n) >= 0 {
		return nil, errors.New("rsa: invalid public exponent")
	}
	return &PublicKey{n: bigint.MustNewModulus(n), e: e}, nil
}

// MustNewPublicKey creates a public key from its modulus and exponent.
// It panics if the components are invalid.
func MustNewPublicKey(n, e *bigint.Int) *PublicKey {
	key, err := NewPublicKey(n, e)
	if err != nil {
		panic(err)
	}
	return key
}

// ParsePublicKey decodes a public key from its CBOR encoding.
func ParsePublicKey(data []byte) (*PublicKey, error) {
	var c Components
	if err := decMode.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c.Modulus == nil || c.PublicExponent == nil {
		return nil, errors.New("rsa: missing public key component")
	}
	if c.PrivateExponent != nil || len(c.Primes) != 0 || len(c.Exponents) != 0 || len(c.Coefficients) != 0 {
		return nil, errors.New("rsa: private components in public key")
	}
	return NewPublicKey(c.Modulus, c.PublicExponent)
}

// MustParsePublicKey decodes a public key from its CBOR encoding.
// It panics if the parsing fails.
func MustParsePublicKey(data []byte) *PublicKey {
	key, err := ParsePublicKey(data)
	if err != nil {
		panic(err)
	}
	return key
}

// MarshalBinary encodes the public key as deterministic CBOR.
func (k *PublicKey) MarshalBinary() ([]byte, error) {
	return encMode.Marshal(Components{Modulus: k.Modulus(), PublicExponent: k.e})
}

// Modulus returns n.
func (k *PublicKey) Modulus() *bigint.Int {
	return k.n.Int()
}

// Exponent returns e.
func (k *PublicKey) Exponent() *bigint.Int {
	return k.e
}

// Size returns the modulus length in bytes, which is also the length of
// every ciphertext and signature block.
func (k *PublicKey) Size() int {
	return (k.n.BitLen() + 7) / 8
}

// Equal reports whether two public keys have the same components.
func (k *PublicKey) Equal(other *PublicKey) bool {
	return k.Modulus().Equal(other.Modulus()) && k.e.Equal(other.e)
}

// Fingerprint returns a 256-bit unique identifier for this key. For RSA, that
// is the SHA256 hash of the raw (le modulus || le exponent) public key, the
// modulus padded to the key size and the exponent to 8 bytes.
func (k *PublicKey) Fingerprint() [32]byte {
	modLE := reverseBytes(k.Modulus().FillBytes(make([]byte, k.Size())))

	expLE := reverseBytes(k.e.Bytes(false))
	for len(expLE) < 8 {
		expLE = append(expLE, 0)
	}
	return sha256.Sum256(append(modLE, expLE...))
}

// SecretKey is an RSA private key. Keys carrying their primes decrypt via the
// CRT; keys with only a private exponent exponentiate modulo n directly.
type SecretKey struct {
	pub *PublicKey
	d   *bigint.Int

	primes []*bigint.Modulus
	exps   []*bigint.Int
	coeffs []*bigint.Int
}

// FromComponents assembles a secret key, validating the supplied components
// and deriving the missing ones. At least the private exponent or two primes
// are required; CRT exponents and coefficients, if given, must match the
// primes.
func FromComponents(c Components) (*SecretKey, error) {
	if c.Modulus == nil || c.PublicExponent == nil {
		return nil, errors.New("rsa: missing public key component")
	}
	pub, err := NewPublicKey(c.Modulus, c.PublicExponent)
	if err != nil {
		return nil, err
	}
	d := c.PrivateExponent
	if len(c.Primes) == 0 {
		if d == nil || len(c.Exponents) != 0 || len(c.Coefficients) != 0 {
			return nil, ErrInvalidKey
		}
		if d.Sign() <= 0 || d.Cmp(c.Modulus) >= 0 {
			return nil, ErrInvalidKey
		}
		return &SecretKey{pub: pub, d: d}, nil
	}
	if len(c.Primes) < 2 {
		return nil, ErrInvalidKey
	}
	// The primes must multiply up to the modulus and admit an inverse of e
	product, lcm := one, one
	for _, p := range c.Primes {
		if p == nil || p.Cmp(one) <= 0 {
			return nil, ErrInvalidKey
		}
		product = product.Mul(p)
		lcm = lcm.LCM(p.Sub(one))
	}
	if !product.Equal(c.Modulus) {
		return nil, ErrInvalidKey
	}
	if d == nil {
		if d, err = c.PublicExponent.ModInverse(lcm); err != nil {
			return nil, ErrInvalidKey
		}
	}
	exps, coeffs, err := crtValues(c.PublicExponent, c.Primes)
	if err != nil {
		return nil, ErrInvalidKey
	}
	for i, p := range c.Primes {
		if !d.Mod(p.Sub(one)).Equal(exps[i]) {
			return nil, ErrInvalidKey
		}
	}
	if len(c.Exponents) != 0 && !equalInts(c.Exponents, exps) {
		return nil, ErrInvalidKey
	}
	if len(c.Coefficients) != 0 && !equalInts(c.Coefficients, coeffs) {
		return nil, ErrInvalidKey
	}
	return newSecretKey(pub, d, c.Primes, exps, coeffs), nil
}

// MustFromComponents assembles a secret key from its components.
// It panics if the components are invalid.
func MustFromComponents(c Components) *SecretKey {
	key, err := FromComponents(c)
	if err != nil {
		panic(err)
	}
	return key
}

// newSecretKey assembles a key from already validated components.
func newSecretKey(pub *PublicKey, d *bigint.Int, primes, exps, coeffs []*bigint.Int) *SecretKey {
	key := &SecretKey{
		pub:    pub,
		d:      d,
		primes: make([]*bigint.Modulus, len(primes)),
		exps:   append([]*bigint.Int(nil), exps...),
		coeffs: append([]*bigint.Int(nil), coeffs...),
	}
	for i, p := range primes {
		key.primes[i] = bigint.MustNewModulus(p)
	}
	return key
}

// crtValues computes the CRT exponents e⁻¹ mod (p_i - 1), which equal
// d mod (p_i - 1), and the Garner coefficients of the primes.
func crtValues(e *bigint.Int, primes []*bigint.Int) (exps, coeffs []*bigint.Int, err error) {
	exps = make([]*bigint.Int, len(primes))
	for i, p := range primes {
		if exps[i], err = e.ModInverse(p.Sub(one)); err != nil {
			return nil, nil, err
		}
	}
	coeffs = make([]*bigint.Int, 0, len(primes)-1)
	for i := 1; i < len(primes); i++ {
		c, err := coefficient(primes[:i], primes[i])
		if err != nil {
			return nil, nil, err
		}
		coeffs = append(coeffs, c)
	}
	return exps, coeffs, nil
}

// coefficient returns the Garner coefficient for adding p after the given
// primes: p⁻¹ mod prev[0] for the second prime, (prev[0]⋯prev[i-1])⁻¹ mod p
// after that.
func coefficient(prev []*bigint.Int, p *bigint.Int) (*bigint.Int, error) {
	if len(prev) == 1 {
		return p.ModInverse(prev[0])
	}
	r := one
	for _, q := range prev {
		r = r.Mul(q)
	}
	return r.ModInverse(p)
}

// ParseSecretKey decodes a secret key from its CBOR encoding.
func ParseSecretKey(data []byte) (*SecretKey, error) {
	var c Components
	if err := decMode.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return FromComponents(c)
}

// MustParseSecretKey decodes a secret key from its CBOR encoding.
// It panics if the parsing fails.
func MustParseSecretKey(data []byte) *SecretKey {
	key, err := ParseSecretKey(data)
	if err != nil {
		panic(err)
	}
	return key
}

// MarshalBinary encodes every component of the secret key as deterministic
// CBOR.
func (k *SecretKey) MarshalBinary() ([]byte, error) {
	return encMode.Marshal(k.Components())
}

// Components returns the full component view of the key.
func (k *SecretKey) Components() Components {
	return Components{
		Modulus:         k.pub.Modulus(),
		PublicExponent:  k.pub.e,
		PrivateExponent: k.d,
		Primes:          k.Primes(),
		Exponents:       k.Exponents(),
		Coefficients:    k.Coefficients(),
	}
}

// PublicKey returns the public counterpart of the secret key.
func (k *SecretKey) PublicKey() *PublicKey {
	return k.pub
}

// Fingerprint returns a 256-bit unique identifier for this key, identical to
// that of its public key.
func (k *SecretKey) Fingerprint() [32]byte {
	return k.pub.Fingerprint()
}

// Size returns the modulus length in bytes.
func (k *SecretKey) Size() int {
	return k.pub.Size()
}

// PrivateExponent returns d.
func (k *SecretKey) PrivateExponent() *bigint.Int {
	return k.d
}

// Primes returns the prime factors of n, nil for keys without them.
func (k *SecretKey) Primes() []*bigint.Int {
	if len(k.primes) == 0 {
		return nil
	}
	out := make([]*bigint.Int, len(k.primes))
	for i, p := range k.primes {
		out[i] = p.Int()
	}
	return out
}

// Exponents returns the CRT exponents d mod (p_i - 1).
func (k *SecretKey) Exponents() []*bigint.Int {
	if len(k.exps) == 0 {
		return nil
	}
	return append([]*bigint.Int(nil), k.exps...)
}

// Coefficients returns the CRT coefficients in the layout of Components.
func (k *SecretKey) Coefficients() []*bigint.Int {
	if len(k.coeffs) == 0 {
		return nil
	}
	return append([]*bigint.Int(nil), k.coeffs...)
}

func equalInts(a, b []*bigint.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
