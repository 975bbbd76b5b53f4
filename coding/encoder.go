// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"context"

	"go.uber.org/zap"
)

// A Code is a finished QR code: a square grid of light and dark
// modules.
type Code struct {
	Version Version  // QR code version
	Level   Level    // error correction level
	Mode    Mode     // encoding mode of the data
	Mask    int      // mask pattern
	Penalty int      // penalty of the chosen mask
	Size    int      // number of modules on a side
	Modules []Module // row major, Light or Dark
}

// Black reports whether the module at column x, row y is dark.
// Coordinates outside the code are light.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Modules[y*c.Size+x] == Dark
}

// Encoder encodes QR codes.  The zero value uses the standard tables
// and no logging.  An Encoder is safe for concurrent use as long as
// its fields are not modified.
type Encoder struct {
	Tables     Tables      // tables; nil means Std
	Logger     *zap.Logger // debug log; nil means none
	Parallel   bool        // evaluate masks concurrently
	MinVersion Version     // smallest version to use; 0 means 1
}

func (e *Encoder) tables() Tables {
	if e.Tables == nil {
		return Std
	}
	return e.Tables
}

func (e *Encoder) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Encode encodes text at level l in the most compact mode.
func (e *Encoder) Encode(text string, l Level) (*Code, error) {
	return e.EncodeContext(context.Background(), text, l)
}

// EncodeContext is like Encode.  The context is only consulted when
// masks are evaluated concurrently.
func (e *Encoder) EncodeContext(ctx context.Context, text string, l Level) (*Code, error) {
	return e.EncodeSegment(ctx, Segment{text, SelectMode(text)}, l)
}

// EncodeSegment encodes seg at level l.  If the text of seg is not
// encodable in its mode, EncodeSegment returns a SegmentError.
func (e *Encoder) EncodeSegment(ctx context.Context, seg Segment, l Level) (*Code, error) {
	t := e.tables()
	log := e.logger()
	if !seg.IsValid() {
		return nil, SegmentError(seg)
	}
	v, err := SelectVersion(t, l, seg.Mode, seg.Count(), e.MinVersion)
	if err != nil {
		return nil, err
	}
	log.Debug("selected version",
		zap.Stringer("mode", seg.Mode),
		zap.Int("count", seg.Count()),
		zap.Stringer("level", l),
		zap.Stringer("version", v))

	data, err := EncodeData(t, seg, v, l)
	if err != nil {
		return nil, err
	}
	payload := Assemble(t, data, v, l)
	m := NewPlan(t, v).Place(payload)

	var (
		best  *Matrix
		mask  int
		score [NumMasks]Score
	)
	if e.Parallel {
		if best, mask, score, err = ChooseMaskParallel(ctx, t, m, l); err != nil {
			return nil, err
		}
	} else {
		best, mask, score = ChooseMask(t, m, l)
	}
	if log.Core().Enabled(zap.DebugLevel) {
		for i, s := range score {
			log.Debug("mask penalty", zap.Int("mask", i),
				zap.Int("penalty", s.Total()))
		}
	}
	s := score[mask]
	log.Debug("chose mask",
		zap.Int("mask", mask),
		zap.Int("run", s.Run),
		zap.Int("block", s.Block),
		zap.Int("finder", s.Finder),
		zap.Int("balance", s.Balance),
		zap.Int("penalty", s.Total()))

	return &Code{
		Version: v,
		Level:   l,
		Mode:    seg.Mode,
		Mask:    mask,
		Penalty: s.Total(),
		Size:    best.Size,
		Modules: best.Modules(),
	}, nil
}

// Encode encodes text at level l using an Encoder with default
// settings.
func Encode(text string, l Level) (*Code, error) {
	var e Encoder
	return e.Encode(text, l)
}
