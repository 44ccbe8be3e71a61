// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package detrand

import (
	"bytes"
	"io"
	"testing"
)

// Tests that the same seed yields the same stream, regardless of how reads are
// split, and different seeds diverge.
func TestReaderDeterminism(t *testing.T) {
	whole := make([]byte, 100)
	if _, err := io.ReadFull(New("seed"), whole); err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	split := make([]byte, 100)
	r := New("seed")
	for i := 0; i < len(split); i += 7 {
		if _, err := r.Read(split[i:min(i+7, len(split))]); err != nil {
			t.Fatalf("failed to read: %v", err)
		}
	}
	if !bytes.Equal(whole, split) {
		t.Errorf("split reads mismatch: have %x, want %x", split, whole)
	}
	other := make([]byte, 100)
	if _, err := io.ReadFull(New("other"), other); err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if bytes.Equal(whole, other) {
		t.Errorf("different seeds produced identical streams")
	}
}
