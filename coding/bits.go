// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Bits is a bit stream written MSB first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with capacity for n bytes.
func NewBits(n int) *Bits {
	return &Bits{b: make([]byte, 0, n)}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the written data.  It panics if the number of bits
// written is not a multiple of 8.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the nbit low order bits of v to b, MSB first.
// nbit must not exceed 32.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit == 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// Encode writes seg encoded for a code of version v to b:
// mode indicator, character count and data.
func (seg Segment) Encode(b *Bits, v Version) error {
	if !seg.IsValid() {
		return SegmentError(seg)
	}
	s := seg.Text
	b.Write(seg.Mode.Indicator(), 4)
	b.Write(uint32(seg.Count()), seg.Mode.CountLength(v))
	switch seg.Mode {
	case Numeric:
		for ; len(s) >= 3; s = s[3:] {
			b.Write(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+
				uint32(s[2]-'0'), 10)
		}
		switch len(s) {
		case 2:
			b.Write(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
		case 1:
			b.Write(uint32(s[0]-'0'), 4)
		}
	case Alphanumeric:
		for ; len(s) >= 2; s = s[2:] {
			b.Write(uint32(alpha[s[0]&0x3f])*45+
				uint32(alpha[s[1]&0x3f]), 11)
		}
		if len(s) == 1 {
			b.Write(uint32(alpha[s[0]&0x3f]), 6)
		}
	default:
		if b.nbit&7 == 0 {
			b.b = append(b.b, s...)
			b.nbit += len(s) * 8
		} else {
			for i := 0; i < len(s); i++ {
				b.Write(uint32(s[i]), 8)
			}
		}
	}
	return nil
}

// PadTo adds up to 4 terminator bits to b, pads it with zeros to a
// byte boundary and then with alternating 0xec, 0x11 bytes to n bits.
// n must be a multiple of 8 and not less than b.Bits().
func (b *Bits) PadTo(n int) {
	if b.nbit > n || n%8 != 0 {
		panic("qr: invalid padding")
	}
	b.Write(0, min(n-b.nbit, 4))
	b.nbit = len(b.b) * 8
	for pad := byte(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
		b.nbit += 8
	}
}

// EncodeData returns the data codewords of seg in a code of version v
// and level l: the encoded segment, terminator and padding, exactly
// Blocks(v, l).DataBytes() long.  If seg does not fit, EncodeData
// returns a CapacityError.
func EncodeData(t Tables, seg Segment, v Version, l Level) ([]byte, error) {
	if !v.IsValid() {
		return nil, ErrVersion
	}
	if !l.IsValid() {
		return nil, ErrLevel
	}
	bl := t.Blocks(v, l)
	b := NewBits(bl.TotalBytes())
	if err := seg.Encode(b, v); err != nil {
		return nil, err
	}
	if b.Bits() > bl.DataBits() {
		return nil, CapacityError{seg.Mode, l, seg.Count(), v}
	}
	b.PadTo(bl.DataBits())
	return b.Bytes(), nil
}
