// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
var maskFunc = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (y/2+x/3)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// NumMasks is the number of mask patterns.
const NumMasks = len(maskFunc)

// Mask returns a copy of m with mask pattern mask applied to the data
// cells and the format information for level l and mask drawn.
func (m *Matrix) Mask(t Tables, l Level, mask int) *Matrix {
	f := maskFunc[mask]
	mm := m.Clone()
	for y := 0; y < mm.Size; y++ {
		row := mm.mods[y*mm.Size : (y+1)*mm.Size]
		for x, c := range row {
			if mm.data[y*mm.Size+x] && f(x, y) {
				row[x] = c ^ Light ^ Dark
			}
		}
	}
	drawFormat(mm, t.FormatBits(l, mask))
	return mm
}

// A Score is the penalty of a masked matrix.  The mask with the
// lowest total penalty is used.
type Score struct {
	Run     int // 3+(n-5) for each run of n>=5 same colour modules
	Block   int // 3 for each, possibly overlapping, 2×2 block
	Finder  int // 40 for each finder-like pattern
	Balance int // 10 for each 5% deviation from 50% dark modules
}

// Total returns the total penalty.
func (s Score) Total() int {
	return s.Run + s.Block + s.Finder + s.Balance
}

// Finder-like patterns, dark is 1, with four light modules after or
// before the 1011101 core.
const (
	findA = 0b1011101_0000
	findB = 0b0000_1011101
)

// Penalty returns the penalty of the masked matrix m.
// Modules outside of m count as light for finder-like patterns.
func Penalty(m *Matrix) Score {
	var s Score
	siz := m.Size
	at := [2]func(i, j int) Module{
		func(i, j int) Module { return m.At(j, i) }, // rows
		func(i, j int) Module { return m.At(i, j) }, // columns
	}
	for _, at := range at {
		for i := 0; i < siz; i++ {
			// runs
			r := 1
			for j := 1; j <= siz; j++ {
				if j < siz && at(i, j) == at(i, j-1) {
					r++
					continue
				}
				if r >= 5 {
					s.Run += 3 + r - 5
				}
				r = 1
			}
			// finder-like patterns in 11 module windows
			// starting 11 modules before the edge
			var w uint32
			for j := -11; j < siz+11; j++ {
				w = w<<1&0x7ff | uint32(at(i, j)>>1)
				if j >= -11+10 && (w == findA || w == findB) {
					s.Finder += 40
				}
			}
		}
	}
	dark := 0
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			c := m.At(x, y)
			if c == Dark {
				dark++
			}
			if x+1 < siz && y+1 < siz && c == m.At(x+1, y) &&
				c == m.At(x, y+1) && c == m.At(x+1, y+1) {
				s.Block += 3
			}
		}
	}
	p := dark * 100 / (siz * siz) / 5 * 5
	s.Balance = 10 * min(abs(p-50), abs(p+5-50)) / 5
	return s
}

// ChooseMask applies each mask pattern to m, which must have its data
// placed, and returns the masked matrix with the lowest total penalty,
// its mask and the scores of all masks.  Ties go to the lowest mask.
func ChooseMask(t Tables, m *Matrix, l Level) (*Matrix, int, [NumMasks]Score) {
	var res [NumMasks]trial
	for mask := range res {
		res[mask] = try(t, m, l, mask)
	}
	return best(res)
}

// ChooseMaskParallel is like ChooseMask, but evaluates the masks
// concurrently.  The result is the same as ChooseMask's.
func ChooseMaskParallel(ctx context.Context, t Tables, m *Matrix, l Level) (*Matrix, int, [NumMasks]Score, error) {
	var res [NumMasks]trial
	g, ctx := errgroup.WithContext(ctx)
	for mask := range res {
		mask := mask
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res[mask] = try(t, m, l, mask)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, [NumMasks]Score{}, err
	}
	mm, mask, s := best(res)
	return mm, mask, s, nil
}

type trial struct {
	m *Matrix
	s Score
}

func try(t Tables, m *Matrix, l Level, mask int) trial {
	mm := m.Mask(t, l, mask)
	return trial{mm, Penalty(mm)}
}

func best(res [NumMasks]trial) (*Matrix, int, [NumMasks]Score) {
	var s [NumMasks]Score
	b := 0
	for i, r := range res {
		s[i] = r.s
		if r.s.Total() < res[b].s.Total() {
			b = i
		}
	}
	return res[b].m, b, s
}
