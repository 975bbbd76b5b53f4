// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/unixdj/qrenc"
	"github.com/unixdj/qrenc/coding"
)

func TestReadInput(t *testing.T) {
	for _, tt := range []struct{ in, out string }{
		{"", ""},
		{"hello\n", "hello"},
		{"hello\r\n", "hello"},
		{"a\r\nb\n\n", "a\nb\n"},
		{"no newline", "no newline"},
	} {
		got, err := readInput(strings.NewReader(tt.in))
		if err != nil || got != tt.out {
			t.Errorf("readInput(%q) = %q, %v, want %q", tt.in, got, err, tt.out)
		}
	}
}

func TestSegment(t *testing.T) {
	for _, tt := range []struct {
		in                      string
		upper, byteOnly, latin1 bool
		seg                     coding.Segment
	}{
		{"12345", false, false, false, coding.Segment{Text: "12345", Mode: coding.Numeric}},
		{"12345", false, true, false, coding.Segment{Text: "12345", Mode: coding.Byte}},
		{"hello world", false, false, false, coding.Segment{Text: "hello world", Mode: coding.Byte}},
		{"hello world", true, false, false, coding.Segment{Text: "HELLO WORLD", Mode: coding.Alphanumeric}},
		{"café", false, false, true, coding.Segment{Text: "caf\xe9", Mode: coding.Byte}},
		{"café", false, false, false, coding.Segment{Text: "café", Mode: coding.Byte}},
		{"ABC", false, false, true, coding.Segment{Text: "ABC", Mode: coding.Alphanumeric}},
	} {
		seg, err := segment(tt.in, tt.upper, tt.byteOnly, tt.latin1)
		if err != nil {
			t.Errorf("segment(%q): %v", tt.in, err)
			continue
		}
		if seg != tt.seg {
			t.Errorf("segment(%q) = %+v, want %+v", tt.in, seg, tt.seg)
		}
	}
	_, err := segment("Љ", false, false, true)
	var se coding.SegmentError
	if !errors.As(err, &se) {
		t.Errorf("segment(Љ, latin1): got %v, want SegmentError", err)
	}
}

func TestPickFormat(t *testing.T) {
	for _, tt := range []struct {
		format, fn string
		tty        bool
		want       string
	}{
		{"eps", "x.png", true, "eps"},
		{"", "x.pbm", false, "pbm"},
		{"", "x.tif", false, "tiff"},
		{"", "x.jpg", false, "png"},
		{"", "-", true, "utf8"},
		{"", "-", false, "png"},
	} {
		if got := pickFormat(tt.format, tt.fn, tt.tty); got != tt.want {
			t.Errorf("pickFormat(%q, %q, %v) = %q, want %q",
				tt.format, tt.fn, tt.tty, got, tt.want)
		}
	}
}

func TestPrompt(t *testing.T) {
	for _, tt := range []struct {
		in                string
		askFile, askLevel bool
		text, fn, level   string
	}{
		{"hello\nout.png\nq\n", true, true, "hello", "out.png", "Q"},
		{"hello\n\nx\n", true, true, "hello", "", "m"},
		{"hello\n\n", false, true, "hello", "", "m"},
		{"hello\r\n", false, false, "hello", "", "m"},
		{"hello", false, false, "hello", "", "m"},
	} {
		var w bytes.Buffer
		p := prompt{
			r:        bufio.NewReader(strings.NewReader(tt.in)),
			w:        &w,
			askFile:  tt.askFile,
			askLevel: tt.askLevel,
		}
		text, fn, level, err := p.run("m")
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		got := []string{text, fn, level}
		if diff := cmp.Diff([]string{tt.text, tt.fn, tt.level}, got); diff != "" {
			t.Errorf("%q: mismatch (-want +got):\n%s", tt.in, diff)
		}
		if !strings.HasPrefix(w.String(), "Text to encode: ") {
			t.Errorf("%q: prompt %q", tt.in, w.String())
		}
	}
	p := prompt{r: bufio.NewReader(strings.NewReader("")), w: &bytes.Buffer{}}
	if _, _, _, err := p.run("L"); err != errNoInput {
		t.Errorf("empty input: got %v, want errNoInput", err)
	}
}

func TestASCII(t *testing.T) {
	c, err := qr.Encode("1", qr.L)
	if err != nil {
		t.Fatal(err)
	}
	c.Border = 1
	var b bytes.Buffer
	if err := ascii(c, &b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 23 {
		t.Fatalf("got %d lines, want 23", len(lines))
	}
	if want := strings.Repeat(" ", 46); lines[0] != want {
		t.Errorf("line 0 = %q, want blank", lines[0])
	}
	if want := "  ##############  "; !strings.HasPrefix(lines[1], want) {
		t.Errorf("line 1 = %q, want prefix %q", lines[1], want)
	}
	c.Reverse = true
	b.Reset()
	ascii(c, &b)
	if want := "##  "; !strings.HasPrefix(strings.Split(b.String(), "\n")[1], want) {
		t.Errorf("reversed line 1 does not start with %q", want)
	}
}

func TestWrite(t *testing.T) {
	c, err := qr.Encode("HELLO", qr.M)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, f := range []string{"png", "pbm", "bmp", "tiff", "eps", "utf8", "ascii"} {
		fn := filepath.Join(dir, "qr."+f)
		if err := write(fn, f, c); err != nil {
			t.Errorf("%s: %v", f, err)
			continue
		}
		b, err := os.ReadFile(fn)
		if err != nil || len(b) == 0 {
			t.Errorf("%s: read %d bytes, %v", f, len(b), err)
		}
		if f != "eps" {
			continue
		}
		if !bytes.HasPrefix(b, []byte("%!PS-Adobe-2.0 EPSF-2.0\n")) {
			t.Errorf("eps: bad header %q", b[:min(len(b), 24)])
		}
		if want := "stroke grestore\nend\n%%Trailer\n"; !bytes.HasSuffix(b, []byte(want)) {
			t.Errorf("eps: trailer %q, want %q", b[max(len(b)-len(want), 0):], want)
		}
	}
	if err := write(filepath.Join(dir, "x"), "gif", c); err == nil {
		t.Error("gif: no error")
	}
}
