// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A Module is the colour of a single cell of a QR code.
type Module byte

const (
	Unset Module = iota // not drawn yet
	Light               // light module, bit 0
	Dark                // dark module, bit 1
)

func (c Module) String() string {
	switch c {
	case Light:
		return "light"
	case Dark:
		return "dark"
	}
	return "unset"
}

func colour(dark bool) Module {
	if dark {
		return Dark
	}
	return Light
}

// A Matrix is a square grid of modules under construction.
// Cells holding data and check bits are tracked separately from
// function patterns, so that masking never touches the latter.
type Matrix struct {
	Version Version // QR code version
	Size    int     // number of modules on a side

	mods []Module // row major
	data []bool   // data cells; shared, never modified
}

func newMatrix(v Version) *Matrix {
	siz := v.Size()
	return &Matrix{Version: v, Size: siz, mods: make([]Module, siz*siz)}
}

// At returns the module at column x, row y.
// Coordinates outside the matrix are Light.
func (m *Matrix) At(x, y int) Module {
	if 0 <= x && x < m.Size && 0 <= y && y < m.Size {
		return m.mods[y*m.Size+x]
	}
	return Light
}

// IsData reports whether the module at x, y holds a data or check bit.
func (m *Matrix) IsData(x, y int) bool {
	return m.data != nil && 0 <= x && x < m.Size && 0 <= y && y < m.Size &&
		m.data[y*m.Size+x]
}

func (m *Matrix) set(x, y int, c Module) {
	m.mods[y*m.Size+x] = c
}

// setIn sets the module at x, y if it is inside the matrix.
func (m *Matrix) setIn(x, y int, c Module) {
	if 0 <= x && x < m.Size && 0 <= y && y < m.Size {
		m.mods[y*m.Size+x] = c
	}
}

// Modules returns a copy of the modules in row major order.
func (m *Matrix) Modules() []Module {
	return append([]Module(nil), m.mods...)
}

// Clone returns a copy of m.  The copy shares the data cell map.
func (m *Matrix) Clone() *Matrix {
	mm := *m
	mm.mods = append([]Module(nil), m.mods...)
	return &mm
}

// A Plan describes how to construct a QR code of a specific version:
// the function patterns common to all codes of the version and the
// cells left for data.  A Plan is immutable.
type Plan struct {
	Version Version // QR code version
	Size    int     // number of modules on a side
	Cells   int     // number of data cells

	t    Tables
	tmpl *Matrix
}

// Pre-allocated Plans for the standard tables.  A Plan is created the
// first time a version is used.
var plans [MaxVersion + 1]struct {
	once sync.Once
	p    *Plan
}

// NewPlan returns the Plan for version v.  It panics if v is not a
// valid version.  Plans for Std are cached.
func NewPlan(t Tables, v Version) *Plan {
	if !v.IsValid() {
		panic("qr: invalid version " + v.String())
	}
	if t != Std {
		return makePlan(t, v)
	}
	p := &plans[v]
	p.once.Do(func() { p.p = makePlan(t, v) })
	return p.p
}

// makePlan draws the function patterns of version v.  Later steps
// overwrite earlier ones where they overlap.
func makePlan(t Tables, v Version) *Plan {
	m := newMatrix(v)
	drawTiming(m)
	drawAlignment(m, t.Alignment(v))
	drawFinders(m)
	reserveFormat(m)
	if v >= 7 {
		drawVersion(m, t.VersionBits(v))
	}
	m.data = make([]bool, len(m.mods))
	n := 0
	for i, c := range m.mods {
		if c == Unset {
			m.data[i] = true
			n++
		}
	}
	return &Plan{Version: v, Size: m.Size, Cells: n, t: t, tmpl: m}
}

// Template returns a copy of the function patterns with all data
// cells Unset.
func (p *Plan) Template() *Matrix {
	return p.tmpl.Clone()
}

// drawTiming draws alternating modules along row 6 and column 6,
// starting with a dark module.
func drawTiming(m *Matrix) {
	for i := 0; i < m.Size; i++ {
		c := colour(i%2 == 0)
		m.set(i, 6, c)
		m.set(6, i, c)
	}
}

// drawAlignment draws 5×5 alignment patterns centred on each pair of
// coordinates in pos, except where they would overlap finder patterns.
func drawAlignment(m *Matrix, pos []int) {
	last := m.Size - 8
	for _, cy := range pos {
		for _, cx := range pos {
			if cx < 8 && (cy < 8 || cy >= last) || cx >= last && cy < 8 {
				continue
			}
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					m.set(cx+dx, cy+dy,
						colour(max(abs(dx), abs(dy)) != 1))
				}
			}
		}
	}
}

// drawFinders draws the three 7×7 finder patterns with the light
// separators facing the inside of the code.
func drawFinders(m *Matrix) {
	e := m.Size - 7
	for _, c := range [3][2]int{{0, 0}, {e, 0}, {0, e}} {
		for dy := -1; dy <= 7; dy++ {
			for dx := -1; dx <= 7; dx++ {
				d := max(abs(dx-3), abs(dy-3))
				m.setIn(c[0]+dx, c[1]+dy, colour(d != 2 && d != 4))
			}
		}
	}
}

// reserveFormat draws the dark module and reserves the format
// information cells, drawn per mask later.
func reserveFormat(m *Matrix) {
	siz := m.Size
	m.set(8, siz-8, Dark)
	for i := 0; i <= 8; i++ {
		if m.At(i, 8) == Unset {
			m.set(i, 8, Light)
		}
		if m.At(8, i) == Unset {
			m.set(8, i, Light)
		}
	}
	for i := 0; i < 8; i++ {
		if m.At(siz-1-i, 8) == Unset {
			m.set(siz-1-i, 8, Light)
		}
		if m.At(8, siz-1-i) == Unset {
			m.set(8, siz-1-i, Light)
		}
	}
}

// drawVersion draws the 18 bit version information twice: in a 6×3
// block above the bottom left finder and transposed left of the top
// right finder.  Bit 17 goes nearest the finders.
func drawVersion(m *Matrix, vb uint32) {
	for i := 0; i < 18; i++ {
		c := colour(vb>>i&1 != 0)
		a, b := i/3, m.Size-11+i%3
		m.set(a, b, c)
		m.set(b, a, c)
	}
}

// drawFormat draws the 15 bit format information fb around the top
// left finder and split between the other two finders.
func drawFormat(m *Matrix, fb uint16) {
	siz := m.Size
	bit := func(i int) Module { return colour(fb>>i&1 != 0) }
	for i := 0; i < 6; i++ {
		m.set(8, i, bit(i))
	}
	m.set(8, 7, bit(6))
	m.set(8, 8, bit(7))
	m.set(7, 8, bit(8))
	for i := 9; i < 15; i++ {
		m.set(14-i, 8, bit(i))
	}
	for i := 0; i < 8; i++ {
		m.set(siz-1-i, 8, bit(i))
	}
	for i := 8; i < 15; i++ {
		m.set(8, siz-15+i, bit(i))
	}
	m.set(8, siz-8, Dark)
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Next returns the next bit from s as 0 or 1.
// Past end of buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
	}
	s.pos++
	return b
}

// Place returns a new Matrix with the codewords in payload placed in
// the data cells in zigzag scan order, starting at the bottom right
// corner and moving up and down in two module wide columns, skipping
// the vertical timing pattern.  Cells left after payload is exhausted
// get remainder bits of 0.  Place panics if payload does not fill the
// data cells exactly, save for the remainder bits.
func (p *Plan) Place(payload []byte) *Matrix {
	if 8*len(payload)+p.t.Remainder(p.Version) != p.Cells {
		panic("qr: wrong payload length")
	}
	m := p.tmpl.Clone()
	siz := m.Size
	s := NewBitStream(payload)
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < siz; vert++ {
			y := vert
			if upward {
				y = siz - 1 - vert
			}
			for x := right; x > right-2; x-- {
				if m.data[y*siz+x] {
					m.set(x, y, colour(s.Next() != 0))
				}
			}
		}
	}
	if s.pos != p.Cells {
		panic("qr: internal error")
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
