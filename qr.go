// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

Encode chooses the most compact of numeric, alphanumeric and byte
mode for the text, the smallest version that holds it and the mask
with the lowest penalty.  The resulting Code can be rendered as an
image or written as PNG, PBM, BMP or TIFF, or as text.
*/
package qr // import "github.com/unixdj/qrenc"

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/unixdj/qrenc/coding"
	"golang.org/x/image/draw"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// Default rendering parameters.
const (
	DefaultScale  = 4 // image pixels per module
	DefaultBorder = 4 // quiet zone modules
)

// ErrArgs is returned when rendering a Code with invalid parameters.
var ErrArgs = errors.New("qr: invalid arguments")

// A Code is a QR code with rendering parameters.
type Code struct {
	coding.Code
	Scale   int  // number of image pixels per module
	Border  int  // quiet zone width in modules
	Reverse bool // light modules on dark background
}

// NewCode returns c with default rendering parameters.
func NewCode(c *coding.Code) *Code {
	return &Code{Code: *c, Scale: DefaultScale, Border: DefaultBorder}
}

// Encode returns an encoding of text at the given error correction
// level.
func Encode(text string, level Level) (*Code, error) {
	c, err := coding.Encode(text, level)
	if err != nil {
		return nil, err
	}
	return NewCode(c), nil
}

// isValid reports whether c can be rendered.
func (c *Code) isValid() bool {
	return c.Size > 0 && len(c.Modules) == c.Size*c.Size &&
		c.Scale > 0 && c.Border >= 0
}

// pixels returns the side of the rendered image in modules.
func (c *Code) pixels() int {
	return c.Size + 2*c.Border
}

var palette = color.Palette{color.Gray{0xff}, color.Gray{0x00}}

// Image returns an Image displaying the code, Scale pixels per module
// with a quiet zone of Border modules.  It panics if the rendering
// parameters are invalid.
func (c *Code) Image() *image.Paletted {
	if !c.isValid() {
		panic(ErrArgs)
	}
	p := palette
	if c.Reverse {
		p = color.Palette{palette[1], palette[0]}
	}
	pix := c.pixels()
	img := image.NewPaletted(image.Rect(0, 0, pix, pix), p)
	for y := 0; y < c.Size; y++ {
		row := img.Pix[(y+c.Border)*img.Stride+c.Border:]
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				row[x] = 1
			}
		}
	}
	if c.Scale == 1 {
		return img
	}
	d := pix * c.Scale
	dst := image.NewPaletted(image.Rect(0, 0, d, d), p)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(),
		draw.Src, nil)
	return dst
}

// String returns the code as UTF-8 text, two modules per line using
// half block characters, with a quiet zone of Border modules.
func (c *Code) String() string {
	var b strings.Builder
	bord := c.Border
	blocks := [4]string{"█", "▀", "▄", " "}
	if c.Reverse {
		blocks = [4]string{" ", "▄", "▀", "█"}
	}
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			n := 0
			if c.Black(x, y) {
				n = 2
			}
			if c.Black(x, y+1) {
				n++
			}
			b.WriteString(blocks[n])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
