// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qr encodes text as a QR code.
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/unixdj/qrenc"
	"github.com/unixdj/qrenc/coding"
	"github.com/unixdj/qrenc/internal/config"
	"github.com/unixdj/qrenc/internal/logging"
)

var g = struct {
	fn       string         // filename
	cfgFile  string         // configuration file
	ver      coding.Version // minimum QR version
	rev      bool           // reverse colours
	latin1   bool           // Latin-1 byte mode
	byteOnly bool           // byte mode only
	upper    bool           // uppercase
	debug    bool           // debug logging
	parallel bool           // concurrent mask trials
}{}

// set records the flags given on the command line, applied over the
// configuration file and environment.
var set = struct {
	lev, format   string
	scale, margin int
}{scale: -1, margin: -1}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given and standard input is a terminal, the text, the
output file and the error correction level are prompted for.
Otherwise data is read from standard input and the final newline is
stripped.  Settings not given as flags are read from the configuration
file and the QR_* environment variables.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 1.0.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.latin1, '1',
		"convert byte mode data to Latin-1")
	getopt.Flag(&g.byteOnly, '8', "encode entire data in byte mode")
	getopt.Flag(&g.upper, 'i', `ignore case, convert input to uppercase`)
	getopt.Flag(&g.rev, 'r', "reverse colours, light on dark")
	getopt.Flag(&g.debug, 'd', "log mode, version and mask penalties")
	getopt.Flag(&g.parallel, 'P', "evaluate masks concurrently")
	getopt.Flag(&g.cfgFile, 'c', `configuration file [$QR_CONFIG]`, "file")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	ver := getopt.Unsigned('v', 1, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"minimum QR code version", "ver")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	scale := getopt.Unsigned('s', 4,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 28}),
		`image pixels (type eps: points) per QR module ("pixel"); `+
			`ignored for types utf8 and ascii`, "scale")
	margin := getopt.Unsigned('m', 4,
		&(getopt.UnsignedLimit{Base: 0, Bits: 16, Min: 0, Max: 1 << 16}),
		"quiet zone modules", "margin")
	ff := getopt.Enum('t', config.Formats, "", `output format, one of: `+
		strings.Join(config.Formats, ", ")+`; if not set, the `+
		`suffix of the output file is tried; if no -o is given and `+
		`standard output is a TTY, default is utf8, otherwise png`,
		"type")

	getopt.Parse()
	g.ver = coding.Version(*ver)
	if getopt.IsSet('l') {
		set.lev = *lev
	}
	if getopt.IsSet('s') {
		set.scale = int(*scale)
	}
	if getopt.IsSet('m') {
		set.margin = int(*margin)
	}
	set.format = *ff
	if !fno.Seen() {
		g.fn = "-"
	}
}

// loadConfig loads the configuration and applies the flags over it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.cfgFile)
	if err != nil {
		return nil, err
	}
	if set.lev != "" {
		cfg.Level = set.lev
	}
	if set.scale >= 0 {
		cfg.Scale = set.scale
	}
	if set.margin >= 0 {
		cfg.Margin = set.margin
	}
	if set.format != "" {
		cfg.Format = set.format
	}
	if g.parallel {
		cfg.Parallel = true
	}
	if g.debug {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("qr: ")
	parseFlags()
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalln(err)
	}
	defer logger.Sync()
	sl := logger.Sugar()

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else if isatty.IsTerminal(uintptr(syscall.Stdin)) {
		var fn string
		p := prompt{
			r:        bufio.NewReader(os.Stdin),
			w:        os.Stderr,
			askFile:  g.fn == "-",
			askLevel: set.lev == "",
		}
		if s, fn, cfg.Level, err = p.run(cfg.Level); err != nil {
			sl.Fatal(err)
		}
		if fn != "" {
			g.fn = fn
		}
	} else if s, err = readInput(os.Stdin); err != nil {
		sl.Fatal(err)
	}

	seg, err := segment(s, g.upper, g.byteOnly, g.latin1)
	if err != nil {
		sl.Fatal(err)
	}
	lev, err := coding.ParseLevel(cfg.Level)
	if err != nil {
		sl.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	e := coding.Encoder{
		Logger:     logger,
		Parallel:   cfg.Parallel,
		MinVersion: g.ver,
	}
	c, err := e.EncodeSegment(ctx, seg, lev)
	if err != nil {
		sl.Fatal(err)
	}
	sl.Debugw("encoded", "version", c.Version, "level", c.Level,
		"mode", c.Mode, "mask", c.Mask, "size", c.Size)

	qc := qr.NewCode(c)
	qc.Scale = cfg.Scale
	qc.Border = cfg.Margin
	qc.Reverse = g.rev
	tty := g.fn == "-" && isatty.IsTerminal(uintptr(syscall.Stdout))
	format := pickFormat(cfg.Format, g.fn, tty)
	if err := write(g.fn, format, qc); err != nil {
		sl.Fatal(err)
	}
	logger.Debug("wrote", zap.String("file", g.fn),
		zap.String("format", format))
}

// readInput reads all of r with CRLF line endings converted and the
// final newline stripped.
func readInput(r io.Reader) (string, error) {
	var b strings.Builder
	if _, err := io.Copy(&b, r); err != nil {
		return "", err
	}
	s, _ := strings.CutSuffix(
		strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	return s, nil
}

// segment returns the segment encoding s.  Byte mode text is
// converted to Latin-1 if latin1 is set.
func segment(s string, upper, byteOnly, latin1 bool) (coding.Segment, error) {
	if upper {
		s = strings.ToUpper(s)
	}
	seg := coding.Segment{Text: s, Mode: coding.Byte}
	if !byteOnly {
		seg.Mode = coding.SelectMode(s)
	}
	if latin1 && seg.Mode == coding.Byte {
		t, err := charmap.ISO8859_1.NewEncoder().String(s)
		if err != nil {
			return coding.Segment{}, coding.SegmentError(seg)
		}
		seg.Text = t
	}
	return seg, nil
}

// pickFormat returns the output type: format if set, else the suffix
// of fn if it names a type, else utf8 for a terminal and png
// otherwise.
func pickFormat(format, fn string, tty bool) string {
	if format != "" {
		return format
	}
	if ext := strings.TrimPrefix(filepath.Ext(fn), "."); ext != "" {
		if ext == "tif" {
			ext = "tiff"
		}
		if slices.Contains(config.Formats, ext) {
			return ext
		}
	}
	if tty {
		return "utf8"
	}
	return "png"
}

var encoders = map[string]func(*qr.Code, io.Writer) error{
	"png":  (*qr.Code).EncodePNG,
	"pbm":  (*qr.Code).EncodePBM,
	"bmp":  (*qr.Code).EncodeBMP,
	"tiff": (*qr.Code).EncodeTIFF,
	"eps":  eps,
	"utf8": func(c *qr.Code, w io.Writer) error {
		_, err := fmt.Fprint(w, c)
		return err
	},
	"ascii": ascii,
}

// write writes c to the file fn, or to standard output if fn is "-".
func write(fn, format string, c *qr.Code) error {
	enc, ok := encoders[format]
	if !ok {
		return fmt.Errorf("%q: unknown output type", format)
	}
	if fn == "-" {
		return enc(c, os.Stdout)
	}
	w, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	err = enc(c, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

// A prompt asks for the input interactively.
type prompt struct {
	r        *bufio.Reader
	w        io.Writer
	askFile  bool
	askLevel bool
}

var errNoInput = errors.New("no input")

func (p *prompt) ask(q string) (string, error) {
	fmt.Fprint(p.w, q)
	s, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		if err == io.EOF {
			err = errNoInput
		}
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// run asks for the text, the output file if askFile is set and the
// level if askLevel is set.  An empty file name means standard
// output.  An empty or unrecognised level is lev.
func (p *prompt) run(lev string) (text, fn, level string, err error) {
	if text, err = p.ask("Text to encode: "); err != nil {
		return
	}
	if p.askFile {
		if fn, err = p.ask("Output file [stdout]: "); err != nil {
			return
		}
	}
	level = lev
	if p.askLevel {
		var s string
		q := fmt.Sprintf("Error correction level (L, M, Q, H) [%s]: ",
			strings.ToUpper(lev))
		if s, err = p.ask(q); err != nil {
			return
		}
		s = strings.ToUpper(strings.TrimSpace(s))
		if _, perr := coding.ParseLevel(s); perr == nil {
			level = s
		}
	}
	return
}

func eps(c *qr.Code, w io.Writer) error {
	const midx, midy = 306, 396
	siz := c.Size
	scale := c.Scale
	bord := c.Border
	xorig := (midx*2 - (siz+2*bord)*scale) / 2
	yorig := (midy*2 - (siz+2*bord)*scale) / 2
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: QR https://github.com/unixdj/qrenc
%%%%Title: QR Code %v-%v
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		c.Version, c.Level, xorig-1, yorig-1, midx*2-xorig, midy*2-yorig,
		midx-float64(siz*scale)/2, midy+float64((siz-1)*scale)/2-1,
		scale)
	if c.Reverse {
		fmt.Fprintf(b, `gsave
newpath %d %d moveto
%d dup neg scale
0 setgray
1 0 rlineto stroke
grestore
1 setgray
`,
			-bord, siz/2, siz+2*bord)
	}
	fmt.Fprintln(b, "newpath 0 0 moveto")
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; {
			s := x
			for x < siz && !c.Black(x, y) {
				x++
			}
			if x == siz {
				break
			}
			d := x
			for x < siz && c.Black(x, y) {
				x++
			}
			fmt.Fprintf(b, "%d %d p ", x-d, d-s)
		}
		fmt.Fprintln(b, "r")
	}
	b.WriteString("stroke grestore\nend\n%%Trailer\n")
	return b.Flush()
}

func ascii(c *qr.Code, w io.Writer) error {
	siz := c.Size
	bord := c.Border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	dark, light := byte('#'), byte(' ')
	if c.Reverse {
		dark, light = light, dark
	}
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			p := light
			if c.Black(x, y) {
				p = dark
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
