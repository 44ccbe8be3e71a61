// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rsa

import (
	"bytes"
	"crypto"
	"crypto/rand"
	stdrsa "crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/dark-bio/bigrsa-go/bigint"
	"github.com/dark-bio/bigrsa-go/digest"
	"github.com/dark-bio/bigrsa-go/internal/detrand"
)

// Tests MGF1 against the published examples.
func TestMGF1(t *testing.T) {
	tests := []struct {
		hash   digest.Algorithm
		seed   string
		length int
		want   string
	}{
		{digest.SHA1, "foo", 3, "1ac907"},
		{digest.SHA1, "foo", 5, "1ac9075cd4"},
		{digest.SHA1, "bar", 5, "bc0c655e01"},
		{digest.SHA1, "bar", 50, "bc0c655e016bc2931d85a2e675181adcef7f581f76df2739da74faac41627be2f7f415c89e983fd0ce80ced9878641cb4876"},
		{digest.SHA256, "bar", 50, "382576a7841021cc28fc4c0948753fb8312090cea942ea4c4e735d10dc724b155f9f6069f289d61daca0cb814502ef04eae1"},
	}
	for _, tt := range tests {
		if have := hex.EncodeToString(MGF1(tt.hash, []byte(tt.seed), tt.length)); have != tt.want {
			t.Errorf("MGF1-%v(%q, %d) mismatch: have %s, want %s", tt.hash, tt.seed, tt.length, have, tt.want)
		}
	}
}

// Tests that PKCS#1 v1.5 signatures are byte identical to crypto/rsa's and
// verify in both directions.
func TestSignPKCS1v15Interop(t *testing.T) {
	key, std := testKey(t)
	message := []byte("message to authenticate")

	for _, hash := range []struct {
		alg digest.Algorithm
		std crypto.Hash
	}{
		{digest.SHA1, crypto.SHA1},
		{digest.SHA256, crypto.SHA256},
		{digest.SHA512, crypto.SHA512},
	} {
		opts := &Options{Hash: hash.alg}

		have, err := key.SignPKCS1v15(message, opts)
		if err != nil {
			t.Fatalf("%v: failed to sign: %v", hash.alg, err)
		}
		want, err := stdrsa.SignPKCS1v15(nil, std, hash.std, hash.alg.Sum(message))
		if err != nil {
			t.Fatalf("%v: failed to sign with reference: %v", hash.alg, err)
		}
		if !bytes.Equal(have, want) {
			t.Errorf("%v: signature mismatch: have %x, want %x", hash.alg, have, want)
		}
		if err := key.PublicKey().VerifyPKCS1v15(message, want, opts); err != nil {
			t.Errorf("%v: failed to verify reference signature: %v", hash.alg, err)
		}
		if err := stdrsa.VerifyPKCS1v15(&std.PublicKey, hash.std, hash.alg.Sum(message), have); err != nil {
			t.Errorf("%v: reference failed to verify: %v", hash.alg, err)
		}
	}
}

// Tests a fixed SHA-1 PKCS#1 v1.5 signature made with a 512-bit key.
func TestSignPKCS1v15KnownAnswer(t *testing.T) {
	p := bigint.MustFromString("fb44eba717eddec9dfc972842e07740ecbdff26e5c6c55ccfabf483e0f67f527", 16)
	q := bigint.MustFromString("a92018440810e0081efe0de3498c83c828dd773dfb8e4bd81f682e9fa904a7ff", 16)

	key, err := FromComponents(Components{
		Modulus:        p.Mul(q),
		PublicExponent: bigint.New(65537),
		Primes:         []*bigint.Int{p, q},
	})
	if err != nil {
		t.Fatalf("failed to assemble key: %v", err)
	}
	want, _ := hex.DecodeString("609c96ab23a45d6cdf7b479ce16131f0d7fef925296ab2adf2ad54e231cc85c0" +
		"dc79b3eef080f4f845aa5e2b876cbc7f6b64f600b7e47e448ca5449706b7d4ba")

	opts := &Options{Hash: digest.SHA1}
	have, err := key.SignPKCS1v15([]byte("zzzz"), opts)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	if !bytes.Equal(have, want) {
		t.Errorf("signature mismatch: have %x, want %x", have, want)
	}
	if err := key.PublicKey().VerifyPKCS1v15([]byte("zzzz"), want, opts); err != nil {
		t.Errorf("failed to verify: %v", err)
	}
}

// Tests that PSS signatures verify in both directions with crypto/rsa.
func TestSignPSSInterop(t *testing.T) {
	key, std := testKey(t)
	message := []byte("message to authenticate")
	hashed := sha256.Sum256(message)

	opts := &Options{Random: detrand.New("pss")}
	have, err := key.SignPSS(message, opts)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	stdOpts := &stdrsa.PSSOptions{SaltLength: stdrsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}
	if err := stdrsa.VerifyPSS(&std.PublicKey, crypto.SHA256, hashed[:], have, stdOpts); err != nil {
		t.Errorf("reference failed to verify: %v", err)
	}
	want, err := stdrsa.SignPSS(rand.Reader, std, crypto.SHA256, hashed[:], stdOpts)
	if err != nil {
		t.Fatalf("failed to sign with reference: %v", err)
	}
	if err := key.PublicKey().VerifyPSS(message, want, nil); err != nil {
		t.Errorf("failed to verify reference signature: %v", err)
	}
}

// Tests PSS with salt length variations and odd-sized moduli, where the
// encoded message is one byte shorter than the modulus.
func TestSignPSSSaltLengths(t *testing.T) {
	random := detrand.New("pss-salts")

	for _, bits := range []int{512, 521} {
		res, err := GenerateKey(random, bits, nil)
		if err != nil {
			t.Fatalf("%d bits: failed to generate key: %v", bits, err)
		}
		key := res.SecretKey

		for _, salt := range []int{SaltLengthNone, 0, 1, 20} {
			opts := &Options{Hash: digest.SHA1, SaltLength: salt, Random: random}
			sig, err := key.SignPSS([]byte("salted"), opts)
			if err != nil {
				t.Fatalf("%d bits, salt %d: failed to sign: %v", bits, salt, err)
			}
			if err := key.PublicKey().VerifyPSS([]byte("salted"), sig, opts); err != nil {
				t.Errorf("%d bits, salt %d: failed to verify: %v", bits, salt, err)
			}
			if err := key.PublicKey().VerifyPSS([]byte("peppered"), sig, opts); !errors.Is(err, ErrVerification) {
				t.Errorf("%d bits, salt %d: wrong message error mismatch: have %v, want %v", bits, salt, err, ErrVerification)
			}
		}
		// A salt too long for the key must be refused
		if _, err := key.SignPSS([]byte("salted"), &Options{SaltLength: key.Size()}); !errors.Is(err, ErrMessageTooLong) {
			t.Errorf("%d bits: oversized salt error mismatch: have %v, want %v", bits, err, ErrMessageTooLong)
		}
	}
}

// Tests that OAEP ciphertexts decrypt in both directions with crypto/rsa.
func TestOAEPInterop(t *testing.T) {
	key, std := testKey(t)
	message := []byte("secret message")
	label := []byte("context")

	ct, err := key.PublicKey().EncryptOAEP(message, &Options{Label: label})
	if err != nil {
		t.Fatalf("failed to encrypt: %v", err)
	}
	pt, err := stdrsa.DecryptOAEP(sha256.New(), nil, std, ct, label)
	if err != nil {
		t.Fatalf("reference failed to decrypt: %v", err)
	}
	if !bytes.Equal(pt, message) {
		t.Errorf("reference plaintext mismatch: have %q, want %q", pt, message)
	}
	ct, err = stdrsa.EncryptOAEP(sha1.New(), rand.Reader, &std.PublicKey, message, nil)
	if err != nil {
		t.Fatalf("failed to encrypt with reference: %v", err)
	}
	pt, err = key.DecryptOAEP(ct, &Options{Hash: digest.SHA1})
	if err != nil {
		t.Fatalf("failed to decrypt: %v", err)
	}
	if !bytes.Equal(pt, message) {
		t.Errorf("plaintext mismatch: have %q, want %q", pt, message)
	}
}

// Tests that PKCS#1 v1.5 ciphertexts decrypt in both directions with
// crypto/rsa.
func TestPKCS1v15EncryptInterop(t *testing.T) {
	key, std := testKey(t)
	message := []byte("secret message")

	ct, err := key.PublicKey().EncryptPKCS1v15(message, nil)
	if err != nil {
		t.Fatalf("failed to encrypt: %v", err)
	}
	pt, err := stdrsa.DecryptPKCS1v15(nil, std, ct)
	if err != nil {
		t.Fatalf("reference failed to decrypt: %v", err)
	}
	if !bytes.Equal(pt, message) {
		t.Errorf("reference plaintext mismatch: have %q, want %q", pt, message)
	}
	ct, err = stdrsa.EncryptPKCS1v15(rand.Reader, &std.PublicKey, message)
	if err != nil {
		t.Fatalf("failed to encrypt with reference: %v", err)
	}
	pt, err = key.DecryptPKCS1v15(ct, nil)
	if err != nil {
		t.Fatalf("failed to decrypt: %v", err)
	}
	if !bytes.Equal(pt, message) {
		t.Errorf("plaintext mismatch: have %q, want %q", pt, message)
	}
}

// Tests that messages beyond one block are chunked and reassembled, and that
// an empty message still yields a block.
func TestEncryptionChunking(t *testing.T) {
	key, _ := testKey(t)
	random := detrand.New("chunking")
	opts := &Options{Random: random}

	schemes := []struct {
		name     string
		capacity int
		encrypt  func([]byte) ([]byte, error)
		decrypt  func([]byte) ([]byte, error)
	}{
		{
			"oaep", key.Size() - 2*32 - 2,
			func(m []byte) ([]byte, error) { return key.PublicKey().EncryptOAEP(m, opts) },
			func(c []byte) ([]byte, error) { return key.DecryptOAEP(c, opts) },
		},
		{
			"pkcs1v15", key.Size() - 11,
			func(m []byte) ([]byte, error) { return key.PublicKey().EncryptPKCS1v15(m, opts) },
			func(c []byte) ([]byte, error) { return key.DecryptPKCS1v15(c, opts) },
		},
	}
	for _, s := range schemes {
		for _, size := range []int{0, 1, s.capacity, s.capacity + 1, 3*s.capacity + 7} {
			message := make([]byte, size)
			random.Read(message)

			ct, err := s.encrypt(message)
			if err != nil {
				t.Fatalf("%s/%d: failed to encrypt: %v", s.name, size, err)
			}
			blocks := max(1, (size+s.capacity-1)/s.capacity)
			if len(ct) != blocks*key.Size() {
				t.Errorf("%s/%d: ciphertext length mismatch: have %d, want %d", s.name, size, len(ct), blocks*key.Size())
			}
			pt, err := s.decrypt(ct)
			if err != nil {
				t.Fatalf("%s/%d: failed to decrypt: %v", s.name, size, err)
			}
			if !bytes.Equal(pt, message) {
				t.Errorf("%s/%d: plaintext mismatch", s.name, size)
			}
		}
	}
}

// Tests that malformed ciphertexts fail with the generic decryption error.
func TestDecryptionFailures(t *testing.T) {
	key, _ := testKey(t)
	pub := key.PublicKey()

	oaep, _ := pub.EncryptOAEP([]byte("hello"), &Options{Label: []byte("a")})
	pkcs, _ := pub.EncryptPKCS1v15([]byte("hello"), nil)

	flip := func(b []byte) []byte {
		out := bytes.Clone(b)
		out[len(out)/2] ^= 0x40
		return out
	}
	// A signature-style (block type 1) encoding must not pass as ciphertext
	sig, _ := key.SignPKCS1v15([]byte("hello"), nil)

	tests := []struct {
		name    string
		decrypt func() ([]byte, error)
	}{
		{"oaep tampered", func() ([]byte, error) { return key.DecryptOAEP(flip(oaep), &Options{Label: []byte("a")}) }},
		{"oaep wrong label", func() ([]byte, error) { return key.DecryptOAEP(oaep, &Options{Label: []byte("b")}) }},
		{"oaep wrong hash", func() ([]byte, error) { return key.DecryptOAEP(oaep, &Options{Hash: digest.SHA1, Label: []byte("a")}) }},
		{"oaep truncated", func() ([]byte, error) { return key.DecryptOAEP(oaep[1:], nil) }},
		{"oaep empty", func() ([]byte, error) { return key.DecryptOAEP(nil, nil) }},
		{"pkcs tampered", func() ([]byte, error) { return key.DecryptPKCS1v15(flip(pkcs), nil) }},
		{"pkcs truncated", func() ([]byte, error) { return key.DecryptPKCS1v15(pkcs[:len(pkcs)-1], nil) }},
		{"pkcs block type 1", func() ([]byte, error) { return key.DecryptPKCS1v15(sig, nil) }},
		{"pkcs out of range", func() ([]byte, error) { return key.DecryptPKCS1v15(bytes.Repeat([]byte{0xff}, key.Size()), nil) }},
	}
	for _, tt := range tests {
		if _, err := tt.decrypt(); !errors.Is(err, ErrDecryption) {
			t.Errorf("%s: error mismatch: have %v, want %v", tt.name, err, ErrDecryption)
		}
	}
}

// Tests that malformed signatures fail with the generic verification error.
func TestVerificationFailures(t *testing.T) {
	key, _ := testKey(t)
	pub := key.PublicKey()
	message := []byte("message to authenticate")

	pkcs, _ := key.SignPKCS1v15(message, nil)
	pss, _ := key.SignPSS(message, nil)

	tests := []struct {
		name   string
		verify func() error
	}{
		{"pkcs wrong message", func() error { return pub.VerifyPKCS1v15([]byte("wrong message"), pkcs, nil) }},
		{"pkcs wrong hash", func() error { return pub.VerifyPKCS1v15(message, pkcs, &Options{Hash: digest.SHA384}) }},
		{"pkcs truncated", func() error { return pub.VerifyPKCS1v15(message, pkcs[1:], nil) }},
		{"pkcs out of range", func() error { return pub.VerifyPKCS1v15(message, bytes.Repeat([]byte{0xff}, key.Size()), nil) }},
		{"pss wrong message", func() error { return pub.VerifyPSS([]byte("wrong message"), pss, nil) }},
		{"pss wrong salt length", func() error { return pub.VerifyPSS(message, pss, &Options{SaltLength: 16}) }},
		{"pss as pkcs", func() error { return pub.VerifyPKCS1v15(message, pss, nil) }},
		{"pkcs as pss", func() error { return pub.VerifyPSS(message, pkcs, nil) }},
	}
	for _, tt := range tests {
		if err := tt.verify(); !errors.Is(err, ErrVerification) {
			t.Errorf("%s: error mismatch: have %v, want %v", tt.name, err, ErrVerification)
		}
	}
}

// Tests that flipping any single bit of the message or of a PSS signature
// fails verification.
func TestSignPSSBitFlips(t *testing.T) {
	res, err := GenerateKey(detrand.New("pss-flips"), 768, nil)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	key, pub := res.SecretKey, res.PublicKey
	message := []byte("flip me")

	opts := &Options{Random: detrand.New("pss-flips-salt")}
	sig, err := key.SignPSS(message, opts)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	for i := 0; i < 8*len(message); i++ {
		bad := bytes.Clone(message)
		bad[i/8] ^= 1 << (i % 8)
		if err := pub.VerifyPSS(bad, sig, opts); !errors.Is(err, ErrVerification) {
			t.Errorf("message bit %d: error mismatch: have %v, want %v", i, err, ErrVerification)
		}
	}
	for i := 0; i < 8*len(sig); i++ {
		bad := bytes.Clone(sig)
		bad[i/8] ^= 1 << (i % 8)
		if err := pub.VerifyPSS(message, bad, opts); !errors.Is(err, ErrVerification) {
			t.Errorf("signature bit %d: error mismatch: have %v, want %v", i, err, ErrVerification)
		}
	}
	if err := pub.VerifyPSS(message, sig, opts); err != nil {
		t.Errorf("failed to verify: %v", err)
	}
}

// Tests OAEP round trips over freshly generated keys, at the empty and the
// maximum single-block message lengths as well as in between.
func TestOAEPRoundTripKeys(t *testing.T) {
	random := detrand.New("oaep-keys")

	keys := 100
	if testing.Short() {
		keys = 5
	}
	for i := 0; i < keys; i++ {
		bits := 576 + 64*(i%8)
		res, err := GenerateKey(random, bits, nil)
		if err != nil {
			t.Fatalf("key %d: failed to generate %d bits: %v", i, bits, err)
		}
		key := res.SecretKey
		opts := &Options{Random: random}

		capacity := key.Size() - 2*digest.SHA256.Size() - 2
		for _, length := range []int{0, 1, capacity / 2, capacity} {
			message := make([]byte, length)
			random.Read(message)

			ct, err := res.PublicKey.EncryptOAEP(message, opts)
			if err != nil {
				t.Fatalf("key %d, length %d: failed to encrypt: %v", i, length, err)
			}
			if len(ct) != key.Size() {
				t.Errorf("key %d, length %d: ciphertext spans %d bytes, want one block", i, length, len(ct))
			}
			pt, err := key.DecryptOAEP(ct, opts)
			if err != nil {
				t.Fatalf("key %d, length %d: failed to decrypt: %v", i, length, err)
			}
			if !bytes.Equal(pt, message) {
				t.Errorf("key %d, length %d: plaintext mismatch: have %x, want %x", i, length, pt, message)
			}
		}
	}
}

// Tests that keys too small for the padding overhead are refused.
func TestKeyTooSmallForPadding(t *testing.T) {
	res, err := GenerateKey(detrand.New("tiny"), 256, nil)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	key := res.SecretKey

	if _, err := key.PublicKey().EncryptOAEP([]byte("x"), &Options{Hash: digest.SHA512}); !errors.Is(err, ErrMessageTooLong) {
		t.Errorf("OAEP error mismatch: have %v, want %v", err, ErrMessageTooLong)
	}
	if _, err := key.SignPKCS1v15([]byte("x"), &Options{Hash: digest.SHA512}); !errors.Is(err, ErrMessageTooLong) {
		t.Errorf("PKCS#1 v1.5 signing error mismatch: have %v, want %v", err, ErrMessageTooLong)
	}
}
