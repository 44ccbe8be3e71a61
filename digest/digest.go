// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package digest provides the closed set of hash functions the padding schemes
// and nonce derivation may be configured with, together with HMAC over them
// and their PKCS#1 DigestInfo encodings.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-9.2
package digest

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"errors"
	"hash"
	"strconv"
	"strings"

	"github.com/cloudflare/circl/xof"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/crypto/sha3"
)

// ErrUnknownAlgorithm is returned when a hash name cannot be resolved.
var ErrUnknownAlgorithm = errors.New("digest: unknown hash algorithm")

// Algorithm identifies a hash function. The zero value is invalid; every
// method panics on values outside the declared constants.
type Algorithm int

const (
	MD5 Algorithm = iota + 1
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
	SHA512_224
	SHA512_256
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
	SHAKE128 // fixed 256-bit output
	SHAKE256 // fixed 512-bit output
)

// Algorithms lists every supported algorithm in declaration order.
var Algorithms = []Algorithm{
	MD5, SHA1, SHA224, SHA256, SHA384, SHA512, SHA512_224, SHA512_256,
	SHA3_224, SHA3_256, SHA3_384, SHA3_512, SHAKE128, SHAKE256,
}

// Parse resolves a hash name such as "sha256", "SHA-256", "sha512/224" or
// "shake128" into an Algorithm.
func Parse(name string) (Algorithm, error) {
	key := canonicalName(name)
	for _, a := range Algorithms {
		if canonicalName(a.String()) == key {
			return a, nil
		}
	}
	return 0, ErrUnknownAlgorithm
}

// canonicalName lowercases a hash name and strips separators.
func canonicalName(name string) string {
	return strings.NewReplacer("-", "", "_", "", "/", "").Replace(strings.ToLower(name))
}

// String returns the canonical name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "MD5"
	case SHA1:
		return "SHA-1"
	case SHA224:
		return "SHA-224"
	case SHA256:
		return "SHA-256"
	case SHA384:
		return "SHA-384"
	case SHA512:
		return "SHA-512"
	case SHA512_224:
		return "SHA-512/224"
	case SHA512_256:
		return "SHA-512/256"
	case SHA3_224:
		return "SHA3-224"
	case SHA3_256:
		return "SHA3-256"
	case SHA3_384:
		return "SHA3-384"
	case SHA3_512:
		return "SHA3-512"
	case SHAKE128:
		return "SHAKE128"
	case SHAKE256:
		return "SHAKE256"
	}
	panic(unknown(a))
}

// Size returns the output length in bytes.
func (a Algorithm) Size() int {
	switch a {
	case MD5:
		return md5.Size
	case SHA1:
		return sha1.Size
	case SHA224, SHA512_224, SHA3_224:
		return 28
	case SHA256, SHA512_256, SHA3_256, SHAKE128:
		return 32
	case SHA384, SHA3_384:
		return 48
	case SHA512, SHA3_512, SHAKE256:
		return 64
	}
	panic(unknown(a))
}

// BlockSize returns the underlying block (or sponge rate) size in bytes.
func (a Algorithm) BlockSize() int {
	return a.New().BlockSize()
}

// New creates a fresh hash state.
func (a Algorithm) New() hash.Hash {
	switch a {
	case MD5:
		return md5.New()
	case SHA1:
		return sha1.New()
	case SHA224:
		return sha256.New224()
	case SHA256:
		return sha256.New()
	case SHA384:
		return sha512.New384()
	case SHA512:
		return sha512.New()
	case SHA512_224:
		return sha512.New512_224()
	case SHA512_256:
		return sha512.New512_256()
	case SHA3_224:
		return sha3.New224()
	case SHA3_256:
		return sha3.New256()
	case SHA3_384:
		return sha3.New384()
	case SHA3_512:
		return sha3.New512()
	case SHAKE128:
		return newShake(xof.SHAKE128, 32, 168)
	case SHAKE256:
		return newShake(xof.SHAKE256, 64, 136)
	}
	panic(unknown(a))
}

// Sum hashes the concatenation of the given chunks.
func (a Algorithm) Sum(chunks ...[]byte) []byte {
	h := a.New()
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}

// HMAC computes the keyed MAC of the concatenated chunks.
func (a Algorithm) HMAC(key []byte, chunks ...[]byte) []byte {
	mac := hmac.New(a.New, key)
	for _, c := range chunks {
		mac.Write(c)
	}
	return mac.Sum(nil)
}

// OID returns the algorithm's object identifier.
func (a Algorithm) OID() asn1.ObjectIdentifier {
	nist := func(n int) asn1.ObjectIdentifier {
		return asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, n}
	}
	switch a {
	case MD5:
		return asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 5}
	case SHA1:
		return asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}
	case SHA224:
		return nist(4)
	case SHA256:
		return nist(1)
	case SHA384:
		return nist(2)
	case SHA512:
		return nist(3)
	case SHA512_224:
		return nist(5)
	case SHA512_256:
		return nist(6)
	case SHA3_224:
		return nist(7)
	case SHA3_256:
		return nist(8)
	case SHA3_384:
		return nist(9)
	case SHA3_512:
		return nist(10)
	case SHAKE128:
		return nist(11)
	case SHAKE256:
		return nist(12)
	}
	panic(unknown(a))
}

// DigestInfo returns the DER encoding of
//
//	DigestInfo ::= SEQUENCE {
//	    digestAlgorithm AlgorithmIdentifier,  -- parameters NULL
//	    digest OCTET STRING
//	}
//
// as embedded into PKCS#1 v1.5 signatures.
func (a Algorithm) DigestInfo(sum []byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(a.OID())
			b.AddASN1NULL()
		})
		b.AddASN1OctetString(sum)
	})
	der, err := b.Bytes()
	if err != nil {
		panic(err) // cannot fail, be loud if it does
	}
	return der
}

func unknown(a Algorithm) string {
	return "digest: unknown algorithm " + strconv.Itoa(int(a))
}
