// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr_test

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/unixdj/qrenc"
)

func ExampleEncode() {
	c, err := qr.Encode("HELLO WORLD", qr.Q)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("%v-%v %v %dx%d mask %d\n",
		c.Version, c.Level, c.Mode, c.Size, c.Size, c.Mask)
	// Output:
	// 1-Q alphanumeric 21x21 mask 0
}

func ExampleCode_String() {
	c, err := qr.Encode("1", qr.L)
	if err != nil {
		log.Fatalln(err)
	}
	c.Border = 1
	fmt.Print(c)
	// Output:
	// █▀▀▀▀▀▀▀██▀█▀▀█▀▀▀▀▀▀▀█
	// █ █▀▀▀█ █▀ ▄ ▀█ █▀▀▀█ █
	// █ █   █ ██▄▀▄▀█ █   █ █
	// █ ▀▀▀▀▀ █▀█▀█ █ ▀▀▀▀▀ █
	// █▀▀▀█▀▀▀▀  ▀ ▄▀▀███▀███
	// █▀▀█ █▄▀▀ ▀▄█▀█▄█▀█▄▄▀█
	// ███ ▄▀ ▀ █▄██▀█ █▀█  ▀█
	// █▀▀▀▀▀▀▀█ █▄ █ ▀ █ ▀ ▀█
	// █ █▀▀▀█ █ ██ ▄ ▀ ▄ ▀▄▀█
	// █ █   █ █▀▄██▀█▄█▀█▄▄▀█
	// █ ▀▀▀▀▀ █ ▄▀█▀█ █▀█ █▀█
	// ███████████████████████
}

func ExampleCode_EncodePBM() {
	c, err := qr.Encode("https://example.com/", qr.M)
	if err != nil {
		log.Fatalln(err)
	}
	c.Scale = 1
	var b bytes.Buffer
	if err := c.EncodePBM(&b); err != nil {
		log.Fatalln(err)
	}
	header, _, _ := strings.Cut(b.String(), "\n33 33\n")
	fmt.Printf("version %v, magic %s, %d bytes\n", c.Version, header, b.Len())
	// Output:
	// version 2, magic P4, 174 bytes
}
