// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// Is reports whether the byte c is encodable in mode m.
func Is(c byte, m Mode) bool {
	switch m {
	case Numeric:
		return c-'0' < 10
	case Alphanumeric:
		return c >= ' ' && c < 0x60 && alphamask>>(c-' ')&1 != 0
	case Byte:
		return true
	}
	return false
}

// IsValid reports whether seg is encodable.
func (seg Segment) IsValid() bool {
	if !seg.Mode.IsValid() {
		return false
	}
	if seg.Mode != Byte {
		for i := 0; i < len(seg.Text); i++ {
			if !Is(seg.Text[i], seg.Mode) {
				return false
			}
		}
	}
	return true
}

// Count returns the value of the character count field of seg:
// the number of digits or characters in numeric and alphanumeric
// mode, the number of bytes in byte mode.
func (seg Segment) Count() int {
	return len(seg.Text)
}

// EncodedLength returns the encoded length in bits of seg, including
// the mode indicator and character count, in a code of version v.
// The segment is not validated.
func (seg Segment) EncodedLength(v Version) int {
	n := len(seg.Text)
	var d int
	switch seg.Mode {
	case Numeric:
		d = (10*n + 2) / 3
	case Alphanumeric:
		d = (11*n + 1) / 2
	default:
		d = 8 * n
	}
	return 4 + seg.Mode.CountLength(v) + d
}

// SelectMode returns the most compact mode that can encode text:
// Numeric if text consists of digits, Alphanumeric if it consists of
// characters of the alphanumeric set, Byte otherwise.  Empty text is
// encoded in Byte mode.
func SelectMode(text string) Mode {
	if text == "" {
		return Byte
	}
	m := Numeric
	for i := 0; i < len(text); i++ {
		for !Is(text[i], m) {
			if m++; m == Byte {
				return m
			}
		}
	}
	return m
}

// SelectVersion returns the smallest version not below min that can
// hold n characters of mode m at level l.  If min is 0, the search
// starts at version 1.  If no version is large enough, SelectVersion
// returns a CapacityError.
func SelectVersion(t Tables, l Level, m Mode, n int, min Version) (Version, error) {
	if !l.IsValid() {
		return 0, ErrLevel
	}
	if !m.IsValid() {
		return 0, ErrMode
	}
	if min == 0 {
		min = MinVersion
	} else if !min.IsValid() {
		return 0, ErrVersion
	}
	for v := min; v <= MaxVersion; v++ {
		if t.Capacity(v, l, m) >= n {
			return v, nil
		}
	}
	return 0, CapacityError{Mode: m, Level: l, Count: n, Version: MaxVersion}
}

// Select returns the segment and version used to encode text at
// level l: text in the most compact mode and the smallest version
// that holds it.
func Select(t Tables, text string, l Level) (Segment, Version, error) {
	seg := Segment{text, SelectMode(text)}
	v, err := SelectVersion(t, l, seg.Mode, seg.Count(), 0)
	return seg, v, err
}
