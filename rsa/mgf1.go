// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dark-bio/bigrsa-go/bigint"
	"github.com/dark-bio/bigrsa-go/digest"
)

// MGF1 derives a mask of the requested length from seed by hashing it with a
// 32-bit big-endian counter.
//
// https://datatracker.ietf.org/doc/html/rfc8017#appendix-B.2.1
func MGF1(hash digest.Algorithm, seed []byte, length int) []byte {
	out := make([]byte, length)
	mgf1XOR(out, hash, seed)
	return out
}

// mgf1XOR XORs the MGF1 mask of seed into out.
func mgf1XOR(out []byte, hash digest.Algorithm, seed []byte) {
	var (
		counter [4]byte
		h       = hash.New()
		sum     []byte
	)
	for done := 0; done < len(out); {
		h.Reset()
		h.Write(seed)
		h.Write(counter[:])
		sum = h.Sum(sum[:0])

		done += subtle.XORBytes(out[done:], out[done:], sum)
		binary.BigEndian.PutUint32(counter[:], binary.BigEndian.Uint32(counter[:])+1)
	}
}

// split cuts a message into chunks of at most size bytes. An empty message is
// a single empty chunk.
func split(message []byte, size int) [][]byte {
	if len(message) == 0 {
		return [][]byte{message}
	}
	var chunks [][]byte
	for len(message) > 0 {
		n := min(size, len(message))
		chunks = append(chunks, message[:n])
		message = message[n:]
	}
	return chunks
}

// encryptBlock runs the public primitive over one encoded block.
func (k *PublicKey) encryptBlock(em []byte) ([]byte, error) {
	c, err := k.EncryptPrimitive(bigint.FromBytes(em, false))
	if err != nil {
		return nil, err
	}
	return c.FillBytes(make([]byte, k.Size())), nil
}

// decryptBlock runs the private primitive over one ciphertext block.
func (k *SecretKey) decryptBlock(random io.Reader, block []byte) ([]byte, error) {
	m, err := k.DecryptPrimitive(random, bigint.FromBytes(block, false))
	if err != nil {
		return nil, err
	}
	return m.FillBytes(make([]byte, k.Size())), nil
}

// readRandom fills buf from random, wrapping failures.
func readRandom(random io.Reader, buf []byte) error {
	if _, err := io.ReadFull(random, buf); err != nil {
		return fmt.Errorf("rsa: failed to read randomness: %w", err)
	}
	return nil
}
