// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// decDigits is the number of decimal digits that always fit in a Word: 19 on
// 64-bit hosts, 9 on 32-bit ones.
const decDigits = 9 + 10*(_W/64)

var decBase = pow10(decDigits)

func pow10(n int) Word {
	w := Word(1)
	for range n {
		w *= 10
	}
	return w
}

// decimal formats x in base 10, peeling off decDigits digits per division.
func (x nat) decimal() string {
	if len(x) == 0 {
		return "0"
	}
	var chunks []Word
	for q := x; len(q) > 0; {
		var r Word
		q, r = q.divW(decBase)
		chunks = append(chunks, r)
	}
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(chunks[len(chunks)-1]), 10))
	for i := len(chunks) - 2; i >= 0; i-- {
		s := strconv.FormatUint(uint64(chunks[i]), 10)
		sb.WriteString(strings.Repeat("0", decDigits-len(s)))
		sb.WriteString(s)
	}
	return sb.String()
}

func parseDecimal(s string) (nat, bool) {
	if s == "" {
		return nil, false
	}
	var z nat
	for len(s) > 0 {
		n := min(len(s), decDigits)
		for _, c := range s[:n] {
			if c < '0' || c > '9' {
				return nil, false
			}
		}
		chunk, err := strconv.ParseUint(s[:n], 10, 64)
		if err != nil {
			return nil, false
		}
		z = z.mulAddWW(pow10(n), Word(chunk))
		s = s[n:]
	}
	return z, true
}

func (x nat) hex() string {
	if len(x) == 0 {
		return "0"
	}
	return strings.TrimPrefix(hex.EncodeToString(x.bytes()), "0")
}

func parseHex(s string) (nat, bool) {
	if s == "" {
		return nil, false
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return natFromBytes(b), true
}

func (x nat) binary() string {
	if len(x) == 0 {
		return "0"
	}
	var sb strings.Builder
	for _, b := range x.bytes() {
		s := strconv.FormatUint(uint64(b), 2)
		sb.WriteString(strings.Repeat("0", 8-len(s)))
		sb.WriteString(s)
	}
	return strings.TrimLeft(sb.String(), "0")
}

func parseBinary(s string) (nat, bool) {
	if s == "" {
		return nil, false
	}
	if r := len(s) % 8; r != 0 {
		s = strings.Repeat("0", 8-r) + s
	}
	b := make([]byte, len(s)/8)
	for i := range b {
		v, err := strconv.ParseUint(s[8*i:8*i+8], 2, 8)
		if err != nil {
			return nil, false
		}
		b[i] = byte(v)
	}
	return natFromBytes(b), true
}
