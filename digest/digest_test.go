// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package digest

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// Tests the hash functions against published known answers.
func TestSumKnownAnswers(t *testing.T) {
	tests := []struct {
		alg   Algorithm
		input string
		want  string
	}{
		{MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{SHA3_256, "", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{SHAKE128, "", "7f9c2ba4e88f827d616045507605853ed73b8093f6efbc88eb1a6eacfa66ef26"},
		{SHAKE256, "", "" +
			"46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762f" +
			"d75dc4ddd8c0f200cb05019d67b592f6fc821c49479ab48640292eacb3b7c4be"},
	}
	for _, tt := range tests {
		if have := hex.EncodeToString(tt.alg.Sum([]byte(tt.input))); have != tt.want {
			t.Errorf("%v(%q) mismatch: have %s, want %s", tt.alg, tt.input, have, tt.want)
		}
	}
}

// Tests that every algorithm reports consistent sizes and that summing does
// not disturb the running state.
func TestHashInterface(t *testing.T) {
	for _, alg := range Algorithms {
		h := alg.New()
		if h.Size() != alg.Size() {
			t.Errorf("%v: size mismatch: have %d, want %d", alg, h.Size(), alg.Size())
		}
		h.Write([]byte("hello "))
		mid := h.Sum(nil)
		if len(mid) != alg.Size() {
			t.Errorf("%v: output length mismatch: have %d, want %d", alg, len(mid), alg.Size())
		}
		h.Write([]byte("world"))
		if have, want := h.Sum(nil), alg.Sum([]byte("hello "), []byte("world")); !bytes.Equal(have, want) {
			t.Errorf("%v: incremental mismatch: have %x, want %x", alg, have, want)
		}
		h.Reset()
		if have, want := h.Sum(nil), alg.Sum(); !bytes.Equal(have, want) {
			t.Errorf("%v: reset mismatch: have %x, want %x", alg, have, want)
		}
	}
}

// Tests HMAC against the RFC 2202 and RFC 4231 "Jefe" vectors.
func TestHMAC(t *testing.T) {
	key := []byte("Jefe")
	data := []byte("what do ya want for nothing?")

	tests := []struct {
		alg  Algorithm
		want string
	}{
		{SHA1, "effcdf6ae5eb2fa2d27416d5f184df9c259a7c79"},
		{SHA256, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"},
	}
	for _, tt := range tests {
		if have := hex.EncodeToString(tt.alg.HMAC(key, data)); have != tt.want {
			t.Errorf("%v HMAC mismatch: have %s, want %s", tt.alg, have, tt.want)
		}
	}
}

// Tests that the DigestInfo encodings produce the well known PKCS#1 prefixes.
func TestDigestInfo(t *testing.T) {
	tests := []struct {
		alg    Algorithm
		prefix string
	}{
		{MD5, "3020300c06082a864886f70d020505000410"},
		{SHA1, "3021300906052b0e03021a05000414"},
		{SHA224, "302d300d06096086480165030402040500041c"},
		{SHA256, "3031300d060960864801650304020105000420"},
		{SHA384, "3041300d060960864801650304020205000430"},
		{SHA512, "3051300d060960864801650304020305000440"},
		{SHA512_224, "302d300d06096086480165030402050500041c"},
		{SHA512_256, "3031300d060960864801650304020605000420"},
	}
	for _, tt := range tests {
		sum := tt.alg.Sum([]byte("abc"))
		info := tt.alg.DigestInfo(sum)

		want, _ := hex.DecodeString(tt.prefix)
		want = append(want, sum...)
		if !bytes.Equal(info, want) {
			t.Errorf("%v DigestInfo mismatch: have %x, want %x", tt.alg, info, want)
		}
	}
}

// Tests that hash names resolve in their common spellings.
func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Algorithm
	}{
		{"md5", MD5},
		{"SHA1", SHA1},
		{"sha-1", SHA1},
		{"sha256", SHA256},
		{"SHA-512/224", SHA512_224},
		{"sha512_256", SHA512_256},
		{"sha3-384", SHA3_384},
		{"shake256", SHAKE256},
	}
	for _, tt := range tests {
		have, err := Parse(tt.name)
		if err != nil {
			t.Errorf("%q: failed to parse: %v", tt.name, err)
			continue
		}
		if have != tt.want {
			t.Errorf("%q: algorithm mismatch: have %v, want %v", tt.name, have, tt.want)
		}
	}
	if _, err := Parse("whirlpool"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("unknown name error mismatch: have %v, want %v", err, ErrUnknownAlgorithm)
	}
	for _, alg := range Algorithms {
		if have, err := Parse(alg.String()); err != nil || have != alg {
			t.Errorf("%v: round trip mismatch: have %v, %v", alg, have, err)
		}
	}
}

// Tests that invalid enum values are treated as programming errors.
func TestUnknownAlgorithmPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("unknown algorithm did not panic")
		}
	}()
	Algorithm(0).New()
}
