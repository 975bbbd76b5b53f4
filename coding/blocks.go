// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/unixdj/qrenc/gf256"

// ECC returns the error correction codewords for a single data block
// of a code of version v and level l.
func ECC(t Tables, data []byte, v Version, l Level) []byte {
	n := t.Blocks(v, l).Check
	check := make([]byte, n)
	gf256.NewRSEncoderGen(t.Field(), t.Generator(n)).ECC(data, check)
	return check
}

// Assemble splits data into the blocks of a code of version v and
// level l, computes their error correction codewords and returns the
// final codeword sequence: data codewords interleaved across blocks,
// followed by check codewords interleaved across blocks.  len(data)
// must be Blocks(v, l).DataBytes().
func Assemble(t Tables, data []byte, v Version, l Level) []byte {
	bl := t.Blocks(v, l)
	if len(data) != bl.DataBytes() {
		panic("qr: wrong data length")
	}
	nblock := bl.Count()
	rs := gf256.NewRSEncoderGen(t.Field(), t.Generator(bl.Check))
	dblocks := make([][]byte, 0, nblock)
	check := make([]byte, nblock*bl.Check)
	cblocks := make([][]byte, 0, nblock)
	for i := 0; i < nblock; i++ {
		db := bl.Len1
		if i >= bl.N1 {
			db = bl.Len2
		}
		c := check[i*bl.Check : (i+1)*bl.Check]
		rs.ECC(data[:db], c)
		dblocks = append(dblocks, data[:db])
		cblocks = append(cblocks, c)
		data = data[db:]
	}
	out := make([]byte, 0, bl.TotalBytes())
	out = interleave(out, dblocks, max(bl.Len1, bl.Len2))
	out = interleave(out, cblocks, bl.Check)
	if len(out) != bl.TotalBytes() {
		panic("qr: internal error")
	}
	return out
}

// interleave appends to dst the i-th byte of every block in turn for
// i from 0 to n-1, skipping blocks shorter than i+1.
func interleave(dst []byte, blocks [][]byte, n int) []byte {
	for i := 0; i < n; i++ {
		for _, b := range blocks {
			if i < len(b) {
				dst = append(dst, b[i])
			}
		}
	}
	return dst
}

// AssembleText encodes text at level l in the most compact mode and
// the smallest version that holds it and returns the final codeword
// sequence and the version.
func AssembleText(t Tables, text string, l Level) ([]byte, Version, error) {
	seg, v, err := Select(t, text, l)
	if err != nil {
		return nil, 0, err
	}
	data, err := EncodeData(t, seg, v, l)
	if err != nil {
		return nil, 0, err
	}
	return Assemble(t, data, v, l), v, nil
}
