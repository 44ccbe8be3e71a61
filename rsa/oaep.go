// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import "crypto/subtle"

// EncryptOAEP encrypts a message with RSAES-OAEP.
//
// Messages longer than the k - 2*hLen - 2 byte capacity of one block are
// split into chunks, each encrypted independently and concatenated.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-7.1.1
func (k *PublicKey) EncryptOAEP(message []byte, opts *Options) ([]byte, error) {
	var (
		hash = opts.hash()
		mgf  = opts.mgfHash()
		size = k.Size()
		hLen = hash.Size()
	)
	capacity := size - 2*hLen - 2
	if capacity <= 0 {
		return nil, ErrMessageTooLong
	}
	lHash := hash.Sum(opts.label())

	out := make([]byte, 0, size*((len(message)+capacity-1)/capacity+1))
	for _, chunk := range split(message, capacity) {
		// EM = 0x00 || maskedSeed || maskedDB, DB = lHash || PS || 0x01 || M
		em := make([]byte, size)
		seed := em[1 : 1+hLen]
		db := em[1+hLen:]

		copy(db, lHash)
		db[len(db)-len(chunk)-1] = 0x01
		copy(db[len(db)-len(chunk):], chunk)

		if err := readRandom(opts.random(), seed); err != nil {
			return nil, err
		}
		mgf1XOR(db, mgf, seed)
		mgf1XOR(seed, mgf, db)

		block, err := k.encryptBlock(em)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

// DecryptOAEP decrypts an RSAES-OAEP ciphertext made of one or more k-byte
// blocks. Every failure is reported as ErrDecryption.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-7.1.2
func (k *SecretKey) DecryptOAEP(ciphertext []byte, opts *Options) ([]byte, error) {
	var (
		hash = opts.hash()
		mgf  = opts.mgfHash()
		size = k.Size()
		hLen = hash.Size()
	)
	if size < 2*hLen+2 || len(ciphertext) == 0 || len(ciphertext)%size != 0 {
		return nil, ErrDecryption
	}
	lHash := hash.Sum(opts.label())

	var out []byte
	for i := 0; i < len(ciphertext); i += size {
		em, err := k.decryptBlock(opts.random(), ciphertext[i:i+size])
		if err != nil {
			return nil, ErrDecryption
		}
		firstByteIsZero := subtle.ConstantTimeByteEq(em[0], 0)

		seed := em[1 : 1+hLen]
		db := em[1+hLen:]
		mgf1XOR(seed, mgf, db)
		mgf1XOR(db, mgf, seed)

		lHashGood := subtle.ConstantTimeCompare(lHash, db[:hLen])

		// The rest must be zero or more 0x00 bytes, a 0x01 and the message.
		// The scan touches every byte regardless of where the 0x01 sits.
		var (
			lookingForIndex = 1
			index, invalid  int
			rest            = db[hLen:]
		)
		for j := range rest {
			equals0 := subtle.ConstantTimeByteEq(rest[j], 0)
			equals1 := subtle.ConstantTimeByteEq(rest[j], 1)
			index = subtle.ConstantTimeSelect(lookingForIndex&equals1, j, index)
			lookingForIndex = subtle.ConstantTimeSelect(equals1, 0, lookingForIndex)
			invalid = subtle.ConstantTimeSelect(lookingForIndex&^equals0, 1, invalid)
		}
		if firstByteIsZero&lHashGood&^invalid&^lookingForIndex != 1 {
			return nil, ErrDecryption
		}
		out = append(out, rest[index+1:]...)
	}
	return out, nil
}
