// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"
	"testing"
)

// checkFinder checks the finder pattern and separator with the
// top left finder module at x, y.
func checkFinder(t *testing.T, m *Matrix, x, y int) {
	t.Helper()
	for dy := -1; dy <= 7; dy++ {
		for dx := -1; dx <= 7; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || yy < 0 || xx >= m.Size || yy >= m.Size {
				continue
			}
			d := max(abs(dx-3), abs(dy-3))
			want := colour(d <= 1 || d == 3)
			if c := m.At(xx, yy); c != want {
				t.Errorf("version %v finder at %d,%d: %d,%d is %v",
					m.Version, x, y, xx, yy, c)
			}
			if m.IsData(xx, yy) {
				t.Errorf("version %v: finder module %d,%d is data",
					m.Version, xx, yy)
			}
		}
	}
}

func TestPlan(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		p := NewPlan(Std, v)
		m := p.Template()
		siz := v.Size()
		if p.Size != siz || m.Size != siz {
			t.Fatalf("version %v: size %d, want %d", v, p.Size, siz)
		}
		bl := Std.Blocks(v, L)
		if p.Cells != bl.TotalBytes()*8+Std.Remainder(v) {
			t.Errorf("version %v: %d data cells, want %d", v, p.Cells,
				bl.TotalBytes()*8+Std.Remainder(v))
		}
		checkFinder(t, m, 0, 0)
		checkFinder(t, m, siz-7, 0)
		checkFinder(t, m, 0, siz-7)
		for i := 8; i < siz-8; i++ {
			want := colour(i%2 == 0)
			if m.At(i, 6) != want || m.At(6, i) != want {
				t.Errorf("version %v: bad timing module %d", v, i)
			}
		}
		if m.At(8, 4*int(v)+9) != Dark {
			t.Errorf("version %v: no dark module", v)
		}
		pos := Std.Alignment(v)
		for _, cy := range pos {
			for _, cx := range pos {
				if cx < 8 && (cy < 8 || cy > siz-8) || cx > siz-8 && cy < 8 {
					continue
				}
				for dy := -2; dy <= 2; dy++ {
					for dx := -2; dx <= 2; dx++ {
						want := colour(max(abs(dx), abs(dy)) != 1)
						if m.At(cx+dx, cy+dy) != want {
							t.Errorf("version %v: bad alignment "+
								"pattern at %d,%d", v, cx, cy)
						}
					}
				}
			}
		}
		n := 0
		for y := 0; y < siz; y++ {
			for x := 0; x < siz; x++ {
				if c := m.At(x, y); c == Unset {
					n++
					if !m.IsData(x, y) {
						t.Errorf("version %v: unset module %d,%d "+
							"is not data", v, x, y)
					}
				} else if m.IsData(x, y) {
					t.Errorf("version %v: data module %d,%d is %v",
						v, x, y, c)
				}
			}
		}
		if n != p.Cells {
			t.Errorf("version %v: %d unset modules, want %d", v, n, p.Cells)
		}
		if NewPlan(Std, v) != p {
			t.Errorf("version %v: plan not cached", v)
		}
	}
}

func TestVersionPlacement(t *testing.T) {
	for v := Version(7); v <= MaxVersion; v++ {
		m := NewPlan(Std, v).Template()
		siz := m.Size
		var lower, upper uint32
		// read MSB first: bit 17 is at 5, siz-9
		for x := 5; x >= 0; x-- {
			for y := siz - 9; y >= siz-11; y-- {
				lower = lower<<1 | uint32(m.At(x, y)>>1)
				upper = upper<<1 | uint32(m.At(y, x)>>1)
			}
		}
		want := Std.VersionBits(v)
		if lower != want || upper != want {
			t.Errorf("version %v: version information %#05x, %#05x; "+
				"want %#05x", v, lower, upper, want)
		}
	}
}

func TestFormatPlacement(t *testing.T) {
	for _, v := range []Version{1, 7, 40} {
		p := NewPlan(Std, v)
		m := p.Place(make([]byte, Std.Blocks(v, L).TotalBytes()))
		siz := m.Size
		for l := L; l <= H; l++ {
			for mask := 0; mask < NumMasks; mask++ {
				mm := m.Mask(Std, l, mask)
				bit := func(x, y int) uint16 { return uint16(mm.At(x, y) >> 1) }
				var a, b uint16
				// first copy, MSB first: row 8 left to right,
				// then column 8 bottom to top, skipping timing
				for x := 0; x <= 8; x++ {
					if x != 6 {
						a = a<<1 | bit(x, 8)
					}
				}
				for y := 7; y >= 0; y-- {
					if y != 6 {
						a = a<<1 | bit(8, y)
					}
				}
				// second copy: column 8 bottom up, row 8 left to right
				for y := siz - 1; y >= siz-7; y-- {
					b = b<<1 | bit(8, y)
				}
				for x := siz - 8; x < siz; x++ {
					b = b<<1 | bit(x, 8)
				}
				want := Std.FormatBits(l, mask)
				if a != want || b != want {
					t.Errorf("version %v level %v mask %d: format "+
						"%#04x, %#04x; want %#04x", v, l, mask, a, b, want)
				}
				if mm.At(8, siz-8) != Dark {
					t.Errorf("version %v: no dark module", v)
				}
			}
		}
	}
}

func TestPlace(t *testing.T) {
	payload, v, err := AssembleText(Std, "HELLO WORLD", Q)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlan(Std, v)
	m := p.Place(payload)
	// the first bits go up the two rightmost columns
	// from the bottom right corner
	siz := m.Size
	var first byte
	for i := 0; i < 8; i++ {
		x, y := siz-1-i%2, siz-1-i/2
		first = first<<1 | byte(m.At(x, y)>>1)
	}
	if first != payload[0] {
		t.Errorf("first codeword %#02x, want %#02x", first, payload[0])
	}
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			if m.At(x, y) == Unset {
				t.Fatalf("unset module %d,%d", x, y)
			}
		}
	}
	if tm := p.Template(); tm.At(siz-1, siz-1) != Unset {
		t.Errorf("Place modified the plan")
	}
}

func TestPlaceWrongLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Place did not panic")
		}
	}()
	NewPlan(Std, 2).Place(make([]byte, 43))
}

// HELLO WORLD at level Q, mask 0.
var helloWorld = []string{
	"#######.##....#######",
	"#.....#.#..#..#.....#",
	"#.###.#.#..##.#.###.#",
	"#.###.#.#.....#.###.#",
	"#.###.#.#.#...#.###.#",
	"#.....#...#...#.....#",
	"#######.#.#.#.#######",
	"........#............",
	".##.#.##....#.#.#####",
	".#......####....#...#",
	"..##.###.##...#.##...",
	".##.##.#..##.#.#.###.",
	"#...#.#.#.###.###.#.#",
	"........##.#..#...#.#",
	"#######.#.#....#.##..",
	"#.....#..#.##.##.#...",
	"#.###.#.#.#...#######",
	"#.###.#..#.#.#.#...#.",
	"#.###.#.#..#.###.#..#",
	"#.....#.#.####...#.##",
	"#######....#.###....#",
}

func TestGolden(t *testing.T) {
	c, err := Encode("HELLO WORLD", Q)
	if err != nil {
		t.Fatal(err)
	}
	if c.Version != 1 || c.Mode != Alphanumeric || c.Mask != 0 {
		t.Errorf("version %v mode %v mask %d, want 1 alphanumeric 0",
			c.Version, c.Mode, c.Mask)
	}
	var b strings.Builder
	for y := 0; y < c.Size; y++ {
		b.Reset()
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		if b.String() != helloWorld[y] {
			t.Errorf("row %2d: %s\n    want: %s", y, b.String(), helloWorld[y])
		}
	}
}
