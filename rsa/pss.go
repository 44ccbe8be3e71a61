// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"crypto/subtle"
	"errors"

	"github.com/dark-bio/bigrsa-go/bigint"
)

// errInvalidSaltLength is returned for negative salt lengths other than
// SaltLengthNone.
var errInvalidSaltLength = errors.New("rsa: invalid PSS salt length")

// SignPSS hashes the message and signs it with RSASSA-PSS.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-8.1.1
func (k *SecretKey) SignPSS(message []byte, opts *Options) ([]byte, error) {
	return k.SignHashPSS(opts.hash().Sum(message), opts)
}

// SignHashPSS signs an already hashed message with RSASSA-PSS.
func (k *SecretKey) SignHashPSS(hashed []byte, opts *Options) ([]byte, error) {
	saltLen := opts.saltLength()
	if saltLen < 0 {
		return nil, errInvalidSaltLength
	}
	salt := make([]byte, saltLen)
	if err := readRandom(opts.random(), salt); err != nil {
		return nil, err
	}
	em, err := encodePSS(opts, hashed, salt, k.pub.n.BitLen()-1)
	if err != nil {
		return nil, err
	}
	m, err := k.DecryptPrimitive(opts.random(), bigint.FromBytes(em, false))
	if err != nil {
		return nil, err
	}
	return m.FillBytes(make([]byte, k.Size())), nil
}

// VerifyPSS hashes the message and checks an RSASSA-PSS signature over it.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-8.1.2
func (k *PublicKey) VerifyPSS(message, signature []byte, opts *Options) error {
	return k.VerifyHashPSS(opts.hash().Sum(message), signature, opts)
}

// VerifyHashPSS checks an RSASSA-PSS signature over an already hashed message.
func (k *PublicKey) VerifyHashPSS(hashed, signature []byte, opts *Options) error {
	if len(signature) != k.Size() {
		return ErrVerification
	}
	m, err := k.EncryptPrimitive(bigint.FromBytes(signature, false))
	if err != nil {
		return ErrVerification
	}
	emBits := k.n.BitLen() - 1
	emLen := (emBits + 7) / 8
	if m.BitLen() > 8*emLen {
		return ErrVerification
	}
	return verifyPSS(opts, hashed, m.FillBytes(make([]byte, emLen)), emBits)
}

// encodePSS implements EMSA-PSS-ENCODE:
//
//	M'  = 0x00 * 8 || mHash || salt
//	DB  = PS || 0x01 || salt
//	EM  = (DB xor MGF1(Hash(M'))) || Hash(M') || 0xbc
//
// with the top 8*emLen - emBits bits of EM cleared.
func encodePSS(opts *Options, mHash, salt []byte, emBits int) ([]byte, error) {
	var (
		hash  = opts.hash()
		hLen  = hash.Size()
		emLen = (emBits + 7) / 8
	)
	if len(mHash) != hLen || emLen < hLen+len(salt)+2 {
		return nil, ErrMessageTooLong
	}
	em := make([]byte, emLen)
	db := em[:emLen-hLen-1]
	h := em[emLen-hLen-1 : emLen-1]

	var prefix [8]byte
	copy(h, hash.Sum(prefix[:], mHash, salt))

	db[len(db)-len(salt)-1] = 0x01
	copy(db[len(db)-len(salt):], salt)
	mgf1XOR(db, opts.mgfHash(), h)

	db[0] &= 0xff >> (8*emLen - emBits)
	em[emLen-1] = 0xbc
	return em, nil
}

// verifyPSS implements EMSA-PSS-VERIFY for the expected salt length.
func verifyPSS(opts *Options, mHash, em []byte, emBits int) error {
	var (
		hash    = opts.hash()
		hLen    = hash.Size()
		emLen   = len(em)
		saltLen = opts.saltLength()
	)
	if saltLen < 0 || len(mHash) != hLen || emLen < hLen+saltLen+2 {
		return ErrVerification
	}
	if em[emLen-1] != 0xbc {
		return ErrVerification
	}
	db := em[:emLen-hLen-1]
	h := em[emLen-hLen-1 : emLen-1]

	topMask := byte(0xff >> (8*emLen - emBits))
	if db[0]&^topMask != 0 {
		return ErrVerification
	}
	mgf1XOR(db, opts.mgfHash(), h)
	db[0] &= topMask

	// DB = PS (zeros) || 0x01 || salt
	psLen := emLen - hLen - saltLen - 2
	for _, b := range db[:psLen] {
		if b != 0 {
			return ErrVerification
		}
	}
	if db[psLen] != 0x01 {
		return ErrVerification
	}
	salt := db[len(db)-saltLen:]

	var prefix [8]byte
	if subtle.ConstantTimeCompare(h, hash.Sum(prefix[:], mHash, salt)) != 1 {
		return ErrVerification
	}
	return nil
}
