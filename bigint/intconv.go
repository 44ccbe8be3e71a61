// bigrsa-go: arbitrary-precision integers and RSA primitives
// Copyright 2026 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigint

import "strings"

// FromBytes interprets b as a big-endian integer. If signed is set, b is read
// as two's complement and a set top bit yields a negative value.
func FromBytes(b []byte, signed bool) *Int {
	abs := natFromBytes(b)
	if signed && len(b) > 0 && b[0]&0x80 != 0 {
		return newInt(natOne.lsh(uint(8*len(b))).sub(abs), true, 0)
	}
	return newInt(abs, false, 0)
}

// Bytes returns the big-endian encoding of x.
//
// Without twosComplement, it encodes |x| minimally and zero encodes as an
// empty slice. With twosComplement, it produces the shortest two's-complement
// encoding, or exactly ceil(precision/8) bytes when x carries a precision.
func (x *Int) Bytes(twosComplement bool) []byte {
	if !twosComplement {
		return x.abs.bytes()
	}
	if x.prec > 0 {
		out := make([]byte, (x.prec+7)/8)
		b := x.abs.bytes()
		copy(out[len(out)-len(b):], b)
		return out
	}
	return x.signedBytes()
}

// FillBytes writes |x| into buf as a zero-extended big-endian integer and
// returns buf. It panics if the value does not fit.
func (x *Int) FillBytes(buf []byte) []byte {
	b := x.abs.bytes()
	if len(b) > len(buf) {
		panic("bigint: value does not fit into buffer")
	}
	clear(buf[:len(buf)-len(b)])
	copy(buf[len(buf)-len(b):], b)
	return buf
}

// signedBytes returns the minimal two's-complement encoding of the value,
// ignoring any precision.
func (x *Int) signedBytes() []byte {
	b := x.abs.bytes()
	if !x.neg {
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	n := len(b)
	t := natOne.lsh(uint(8 * n)).sub(x.abs)
	if t.bit(uint(8*n-1)) == 0 {
		n++
		t = natOne.lsh(uint(8 * n)).sub(x.abs)
	}
	out := make([]byte, n)
	tb := t.bytes()
	copy(out[n-len(tb):], tb)
	return out
}

// FromString parses s in the given base. Bases 2, 10 and 16 accept an optional
// leading '-', and bases 2 and 16 an optional "0b" or "0x" prefix. Base 256
// reads s as raw big-endian magnitude bytes.
func FromString(s string, base int) (*Int, error) {
	if base == 256 {
		return newInt(natFromBytes([]byte(s)), false, 0), nil
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var (
		abs nat
		ok  bool
	)
	switch base {
	case 2:
		abs, ok = parseBinary(strings.TrimPrefix(strings.TrimPrefix(s, "0b"), "0B"))
	case 10:
		abs, ok = parseDecimal(s)
	case 16:
		abs, ok = parseHex(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	default:
		return nil, ErrInvalidBase
	}
	if !ok {
		return nil, ErrInvalidString
	}
	return newInt(abs, neg, 0), nil
}

// MustFromString parses s in the given base. It panics if the parsing fails.
func MustFromString(s string, base int) *Int {
	x, err := FromString(s, base)
	if err != nil {
		panic(err)
	}
	return x
}

// Text returns x formatted in base 2, 10, 16 (lowercase) or 256. Base 256
// yields the raw magnitude bytes. Any other base panics.
func (x *Int) Text(base int) string {
	var s string
	switch base {
	case 2:
		s = x.abs.binary()
	case 10:
		s = x.abs.decimal()
	case 16:
		s = x.abs.hex()
	case 256:
		return string(x.abs.bytes())
	default:
		panic(ErrInvalidBase)
	}
	if x.neg {
		s = "-" + s
	}
	return s
}

// String returns the decimal representation of x.
func (x *Int) String() string {
	return x.Text(10)
}

// MarshalBinary encodes x as minimal two's complement. Precision is not
// carried.
func (x *Int) MarshalBinary() ([]byte, error) {
	return x.signedBytes(), nil
}

// UnmarshalBinary decodes a two's-complement value produced by MarshalBinary.
func (x *Int) UnmarshalBinary(data []byte) error {
	*x = *FromBytes(data, true)
	return nil
}
