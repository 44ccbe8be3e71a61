// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"crypto/subtle"
	"io"

	"github.com/dark-bio/bigrsa-go/bigint"
)

// EncryptPKCS1v15 encrypts a message with RSAES-PKCS1-v1_5.
//
// Messages longer than the k - 11 byte capacity of one block are split into
// chunks, each encrypted independently and concatenated.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-7.2.1
func (k *PublicKey) EncryptPKCS1v15(message []byte, opts *Options) ([]byte, error) {
	size := k.Size()
	capacity := size - 11
	if capacity <= 0 {
		return nil, ErrMessageTooLong
	}
	out := make([]byte, 0, size*((len(message)+capacity-1)/capacity+1))
	for _, chunk := range split(message, capacity) {
		// EM = 0x00 || 0x02 || PS || 0x00 || M
		em := make([]byte, size)
		em[1] = 0x02
		if err := nonZeroRandomBytes(opts.random(), em[2:size-len(chunk)-1]); err != nil {
			return nil, err
		}
		copy(em[size-len(chunk):], chunk)

		block, err := k.encryptBlock(em)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

// DecryptPKCS1v15 decrypts an RSAES-PKCS1-v1_5 ciphertext made of one or more
// k-byte blocks. Only block type 2 is accepted and every failure is reported
// as ErrDecryption.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-7.2.2
func (k *SecretKey) DecryptPKCS1v15(ciphertext []byte, opts *Options) ([]byte, error) {
	size := k.Size()
	if size < 11 || len(ciphertext) == 0 || len(ciphertext)%size != 0 {
		return nil, ErrDecryption
	}
	var out []byte
	for i := 0; i < len(ciphertext); i += size {
		em, err := k.decryptBlock(opts.random(), ciphertext[i:i+size])
		if err != nil {
			return nil, ErrDecryption
		}
		firstByteIsZero := subtle.ConstantTimeByteEq(em[0], 0)
		secondByteIsTwo := subtle.ConstantTimeByteEq(em[1], 2)

		// The first zero byte after the padding string marks the message
		lookingForIndex, index := 1, 0
		for j := 2; j < len(em); j++ {
			equals0 := subtle.ConstantTimeByteEq(em[j], 0)
			index = subtle.ConstantTimeSelect(lookingForIndex&equals0, j, index)
			lookingForIndex = subtle.ConstantTimeSelect(equals0, 0, lookingForIndex)
		}
		// The padding string must be at least eight bytes
		validPS := subtle.ConstantTimeLessOrEq(2+8, index)

		if firstByteIsZero&secondByteIsTwo&^lookingForIndex&validPS != 1 {
			return nil, ErrDecryption
		}
		out = append(out, em[index+1:]...)
	}
	return out, nil
}

// SignPKCS1v15 hashes the message and signs it with RSASSA-PKCS1-v1_5.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-8.2.1
func (k *SecretKey) SignPKCS1v15(message []byte, opts *Options) ([]byte, error) {
	return k.SignHashPKCS1v15(opts.hash().Sum(message), opts)
}

// SignHashPKCS1v15 signs an already hashed message with RSASSA-PKCS1-v1_5.
func (k *SecretKey) SignHashPKCS1v15(hashed []byte, opts *Options) ([]byte, error) {
	em, err := encodePKCS1v15(opts, hashed, k.Size())
	if err != nil {
		return nil, err
	}
	return k.decryptBlock(opts.random(), em)
}

// VerifyPKCS1v15 hashes the message and checks an RSASSA-PKCS1-v1_5
// signature over it.
//
// https://datatracker.ietf.org/doc/html/rfc8017#section-8.2.2
func (k *PublicKey) VerifyPKCS1v15(message, signature []byte, opts *Options) error {
	return k.VerifyHashPKCS1v15(opts.hash().Sum(message), signature, opts)
}

// VerifyHashPKCS1v15 checks an RSASSA-PKCS1-v1_5 signature over an already
// hashed message.
func (k *PublicKey) VerifyHashPKCS1v15(hashed, signature []byte, opts *Options) error {
	want, err := encodePKCS1v15(opts, hashed, k.Size())
	if err != nil {
		return ErrVerification
	}
	em, err := k.openSignature(signature)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(em, want) != 1 {
		return ErrVerification
	}
	return nil
}

// encodePKCS1v15 builds EM = 0x00 || 0x01 || 0xFF... || 0x00 || DigestInfo.
func encodePKCS1v15(opts *Options, hashed []byte, size int) ([]byte, error) {
	hash := opts.hash()
	if len(hashed) != hash.Size() {
		return nil, ErrMessageTooLong
	}
	info := hash.DigestInfo(hashed)
	if size < len(info)+11 {
		return nil, ErrMessageTooLong
	}
	em := make([]byte, size)
	em[1] = 0x01
	for i := 2; i < size-len(info)-1; i++ {
		em[i] = 0xff
	}
	copy(em[size-len(info):], info)
	return em, nil
}

// openSignature applies the public primitive to a k-byte signature.
func (k *PublicKey) openSignature(signature []byte) ([]byte, error) {
	if len(signature) != k.Size() {
		return nil, ErrVerification
	}
	m, err := k.EncryptPrimitive(bigint.FromBytes(signature, false))
	if err != nil {
		return nil, ErrVerification
	}
	return m.FillBytes(make([]byte, k.Size())), nil
}

// nonZeroRandomBytes fills buf with random bytes that are all non-zero.
func nonZeroRandomBytes(random io.Reader, buf []byte) error {
	if err := readRandom(random, buf); err != nil {
		return err
	}
	for i := range buf {
		for buf[i] == 0 {
			if err := readRandom(random, buf[i:i+1]); err != nil {
				return err
			}
		}
	}
	return nil
}
