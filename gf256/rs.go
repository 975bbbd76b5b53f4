// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

// An RSEncoder implements Reed-Solomon encoding over a given field
// using a given number of error correction bytes.  An RSEncoder is
// immutable and safe for concurrent use.
type RSEncoder struct {
	f    *Field
	c    int
	lgen []byte
}

// NewRSEncoder returns a new Reed-Solomon encoder over the given
// field and number of error correction bytes.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	return &RSEncoder{f: f, c: c, lgen: f.Gen(c)}
}

// NewRSEncoderGen returns a new Reed-Solomon encoder over the given
// field using the generator polynomial lgen, in the form returned by
// Field.Gen.  The encoder keeps a reference to lgen.
func NewRSEncoderGen(f *Field, lgen []byte) *RSEncoder {
	return &RSEncoder{f: f, c: len(lgen), lgen: lgen}
}

// Check returns the number of error correction bytes.
func (rs *RSEncoder) Check() int { return rs.c }

// ECC writes to check the error correction bytes
// for data using the given Reed-Solomon parameters.
// len(check) must be at least the number of error correction bytes.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) < rs.c {
		panic("gf256: invalid check byte length")
	}
	if rs.c == 0 {
		return
	}

	// The check bytes are the remainder after dividing
	// data padded with c zeros by the generator polynomial.
	f := rs.f
	p := make([]byte, len(data)+rs.c)
	copy(p, data)
	for i := 0; i < len(data); i++ {
		c := p[i]
		if c == 0 {
			continue
		}
		q := p[i+1:]
		lc := int(f.log[c])
		for j, lg := range rs.lgen {
			q[j] ^= f.exp[lc+int(lg)]
		}
	}
	copy(check, p[len(data):])
}

// Syndromes returns the c syndromes of the codeword msg (data
// followed by check bytes): the values of msg, read as a polynomial,
// at α⁰..α^(c-1).  A codeword produced by ECC has all syndromes zero.
func (rs *RSEncoder) Syndromes(msg []byte) []byte {
	f := rs.f
	s := make([]byte, rs.c)
	for i := range s {
		var v byte
		for _, b := range msg {
			v = f.Mul(v, f.exp[i]) ^ b
		}
		s[i] = v
	}
	return s
}
