// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: mode and
// version selection, bit encoding, Reed-Solomon error correction,
// block interleaving, matrix drawing and masking.
package coding // import "github.com/unixdj/qrenc/coding"

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrMode    = errors.New("qr: invalid mode")
	ErrTooLong = errors.New("qr: text too long")
)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// The larger the version, the more information the code can store.
type Version int

// Version bounds.
const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string {
	return strconv.Itoa(int(v))
}

// IsValid reports whether v is a QR version.
func (v Version) IsValid() bool {
	return MinVersion <= v && v <= MaxVersion
}

// Size returns the number of modules on a side of a version v code.
func (v Version) Size() int {
	return int(v)*4 + 17
}

// QR version size classes.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
// The size class determines the length of the character count field.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 7% of codewords can be restored
	M              // 15% of codewords can be restored
	Q              // 25% of codewords can be restored
	H              // 30% of codewords can be restored
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// IsValid reports whether l is an error correction level.
func (l Level) IsValid() bool {
	return L <= l && l <= H
}

// ParseLevel returns the level named by the letter s, in either case.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "l", "L":
		return L, nil
	case "m", "M":
		return M, nil
	case "q", "Q":
		return Q, nil
	case "h", "H":
		return H, nil
	}
	return 0, ErrLevel
}

// formatBits returns the 2 bit level indicator used in format
// information: L=01, M=00, Q=11, H=10.
func (l Level) formatBits() int {
	return int(l) ^ 1
}

// Encoding modes, in order of preference.
const (
	Numeric      Mode = iota // digits 0-9
	Alphanumeric             // digits, uppercase letters and " $%*+-./:"
	Byte                     // any data, UTF-8 text is passed unchanged
)

// A Mode is a QR segment encoding mode.
type Mode int

var modeNames = [...]string{"numeric", "alphanumeric", "byte"}

func (m Mode) String() string {
	if m.IsValid() {
		return modeNames[m]
	}
	return strconv.Itoa(int(m))
}

// IsValid reports whether m is one of the supported modes.
func (m Mode) IsValid() bool {
	return Numeric <= m && m <= Byte
}

// Indicator returns the 4 bit mode indicator.
func (m Mode) Indicator() uint32 {
	return 1 << m
}

// countLength lists lengths of the character count field
// per mode in the three size classes.
var countLength = [3][3]byte{
	Numeric:      {10, 12, 14},
	Alphanumeric: {9, 11, 13},
	Byte:         {8, 16, 16},
}

// CountLength returns the length in bits of the character count field
// of mode m in a code of version v.
func (m Mode) CountLength(v Version) int {
	return int(countLength[m][v.SizeClass()])
}

// A Segment describes a string encoded in a single mode.
type Segment struct {
	Text string // data to encode
	Mode Mode   // encoding mode
}

// SegmentError represents a Segment whose text is not encodable in
// its mode.
type SegmentError Segment

func (e SegmentError) Error() string {
	if e.Mode.IsValid() {
		return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
	}
	return fmt.Sprintf("qr: invalid mode %d", e.Mode)
}

// CapacityError is returned when data does not fit in any allowed
// version at the requested level.
type CapacityError struct {
	Mode    Mode    // encoding mode
	Level   Level   // error correction level
	Count   int     // character count
	Version Version // largest version tried
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("qr: %d %s characters exceed the capacity "+
		"of version %s at level %s", e.Count, e.Mode, e.Version, e.Level)
}

// Unwrap returns ErrTooLong.
func (e CapacityError) Unwrap() error { return ErrTooLong }
