// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// EncodePNG writes a PNG image displaying the code to w.
func (c *Code) EncodePNG(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	return pngEncoder.Encode(w, c.Image())
}

// EncodeBMP writes a BMP image displaying the code to w.
func (c *Code) EncodeBMP(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	return bmp.Encode(w, c.Image())
}

// EncodeTIFF writes a Deflate compressed TIFF image displaying the
// code to w.
func (c *Code) EncodeTIFF(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	return tiff.Encode(w, c.Image(), &tiff.Options{Compression: tiff.Deflate})
}
