// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A Plan describes how to construct a QR code
// with a specific version and level.
//
// Bitmaps are packed: the module at column x, row y is bit 7-x%8
// of byte y*Stride+x/8.
type Plan struct {
	Version Version // QR code version
	Level   Level   // QR error correction Level

	DataBits int            // number of data bits
	Blocks   BlockStructure // error correction blocks
	Size     int            // number of modules on a side
	Stride   int            // number of bytes per bitmap row

	Map     []byte    // module map: 0 is data or check, 1 is function
	Pattern [8][]byte // function modules, format info and mask, by mask
}

// NewPlan returns a Plan for a QR code with the given version and
// level.  The Plan is a copy and may be modified.
func NewPlan(version Version, level Level) (*Plan, error) {
	pp, err := makePlan(version, level)
	if err != nil {
		return nil, err
	}
	p := *pp
	n := len(pp.Map)
	bitmap := make([]byte, n*(len(p.Pattern)+1))
	p.Map = bitmap[:n:n]
	copy(p.Map, pp.Map)
	for i := range p.Pattern {
		bitmap = bitmap[n:]
		p.Pattern[i] = bitmap[:n:n]
		copy(p.Pattern[i], pp.Pattern[i])
	}
	return &p, nil
}

// Plans are created the first time a combination of version and level
// is used.  Each holds nine bitmaps, from 567 bytes for version 1 to
// 36 KB for version 40.
var plans [MaxVersion + 1][H + 1]struct {
	once sync.Once
	p    *Plan
	err  error
}

// makePlan returns plans[version][level], creating it if needed.
// The returned Plan is shared and must not be modified.
func makePlan(version Version, level Level) (*Plan, error) {
	if !version.Valid() {
		return nil, &ConfigError{Name: "version", Value: version.String(), Err: ErrVersion}
	}
	if !level.Valid() {
		return nil, &ConfigError{Name: "level", Value: level.String(), Err: ErrLevel}
	}
	p := &plans[version][level]
	p.once.Do(func() { p.p, p.err = vplan(version, level) })
	return p.p, p.err
}

func setBit(b []byte, stride, x, y int) {
	b[y*stride+x>>3] |= 0x80 >> (x & 7)
}

func getBit(b []byte, stride, x, y int) bool {
	return b[y*stride+x>>3]&(0x80>>(x&7)) != 0
}

// IsFunction reports whether the module at x, y belongs to a function
// pattern or the format or version information.
func (p *Plan) IsFunction(x, y int) bool {
	return 0 <= x && x < p.Size && 0 <= y && y < p.Size &&
		getBit(p.Map, p.Stride, x, y)
}

// A builder draws function modules into a Plan: every drawn module is
// marked in Map, dark ones also in the shared function bitmap.
type builder struct {
	p   *Plan
	fun []byte
}

func (b *builder) set(x, y int, dark bool) {
	setBit(b.p.Map, b.p.Stride, x, y)
	if dark {
		setBit(b.fun, b.p.Stride, x, y)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// finder draws a finder pattern centred at cx, cy with its separator.
func (b *builder) finder(cx, cy int) {
	siz := b.p.Size
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			x, y := cx+dx, cy+dy
			if x < 0 || x >= siz || y < 0 || y >= siz {
				continue
			}
			d := max(abs(dx), abs(dy))
			b.set(x, y, d != 2 && d != 4)
		}
	}
}

// align draws a 5×5 alignment pattern centred at cx, cy.
func (b *builder) align(cx, cy int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			b.set(cx+dx, cy+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// formatCoords returns the positions of format information bit i,
// least significant first, in both copies.
func formatCoords(siz, i int) (x1, y1, x2, y2 int) {
	switch {
	case i < 6:
		x1, y1 = 8, i
	case i < 8:
		x1, y1 = 8, i+1
	case i == 8:
		x1, y1 = 7, 8
	default:
		x1, y1 = 14-i, 8
	}
	if i < 8 {
		x2, y2 = siz-1-i, 8
	} else {
		x2, y2 = 8, siz-15+i
	}
	return
}

// vplan creates a Plan for the given version and level.
func vplan(v Version, l Level) (*Plan, error) {
	siz := v.Size()
	stride := (siz + 7) >> 3
	n := siz * stride
	p := &Plan{
		Version:  v,
		Level:    l,
		DataBits: v.DataBits(l),
		Blocks:   v.Blocks(l),
		Size:     siz,
		Stride:   stride,
	}
	bitmap := make([]byte, n*(len(p.Pattern)+1))
	p.Map, bitmap = bitmap[:n:n], bitmap[n:]
	for i := range p.Pattern {
		p.Pattern[i], bitmap = bitmap[:n:n], bitmap[n:]
	}
	b := &builder{p: p, fun: p.Pattern[0]}

	// Timing strips; the finders cover their ends.
	for i := 8; i < siz-8; i++ {
		b.set(i, 6, i%2 == 0)
		b.set(6, i, i%2 == 0)
	}

	b.finder(3, 3)
	b.finder(siz-4, 3)
	b.finder(3, siz-4)

	// Alignment patterns, except where finders are.
	pos := v.AlignmentCenters()
	last := len(pos) - 1
	for i, cy := range pos {
		for j, cx := range pos {
			if i == 0 && (j == 0 || j == last) || i == last && j == 0 {
				continue
			}
			b.align(cx, cy)
		}
	}

	// Reserve format information, filled in per mask below.
	for i := 0; i < 15; i++ {
		x1, y1, x2, y2 := formatCoords(siz, i)
		b.set(x1, y1, false)
		b.set(x2, y2, false)
	}

	// One lonely dark module
	b.set(8, siz-8, true)

	// Version information: 6×3 blocks at bottom left and top right.
	if v >= 7 {
		vb := VersionBits(v)
		for i := 0; i < 18; i++ {
			dark := vb>>i&1 != 0
			a, c := siz-11+i%3, i/3
			b.set(a, c, dark)
			b.set(c, a, dark)
		}
	}

	// Count data modules.
	cells := 0
	p.Walk(func(x, y int) { cells++ })
	if want := v.Codewords()*8 + v.RemainderBits(); cells != want {
		return nil, internalErr("plan", "version %s has %d data modules, want %d",
			v, cells, want)
	}

	for _, pat := range p.Pattern[1:] {
		copy(pat, p.Pattern[0])
	}
	for m := range p.Pattern {
		mplan(p, Mask(m))
	}
	return p, nil
}

// mplan adds the format information and mask m to Pattern[m].
func mplan(p *Plan, m Mask) {
	pat := p.Pattern[m]
	fb := FormatBits(p.Level, m)
	for i := 0; i < 15; i++ {
		if fb>>i&1 != 0 {
			x1, y1, x2, y2 := formatCoords(p.Size, i)
			setBit(pat, p.Stride, x1, y1)
			setBit(pat, p.Stride, x2, y2)
		}
	}
	p.Walk(func(x, y int) {
		if m.Invert(x, y) {
			setBit(pat, p.Stride, x, y)
		}
	})
}

// Walk calls fn for each data module in placement order: two columns
// at a time from the right edge, alternately upwards and downwards,
// right column first, skipping the vertical timing strip and function
// modules.
func (p *Plan) Walk(fn func(x, y int)) {
	siz := p.Size
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		up := (right+1)&2 == 0
		for i := 0; i < siz; i++ {
			y := i
			if up {
				y = siz - 1 - i
			}
			for x := right; x >= right-1; x-- {
				if !getBit(p.Map, p.Stride, x, y) {
					fn(x, y)
				}
			}
		}
	}
}

// Serialise writes bits from s to the bitmap in zigzag scan order.
// The remainder modules after the last codeword stay light.  It fails
// if s holds more bits than the data modules.
func (p *Plan) Serialise(s *BitStream, bitmap []byte) error {
	p.Walk(func(x, y int) {
		if s.Next() != 0 {
			setBit(bitmap, p.Stride, x, y)
		}
	})
	if n := s.Remaining(); n != 0 {
		return internalErr("Serialise", "%d bits left after placement", n)
	}
	return nil
}

// read returns the codewords of bitmap with mask m removed, in
// placement order.
func (p *Plan) read(bitmap []byte, m Mask) []byte {
	words := make([]byte, p.Version.Codewords())
	i := 0
	p.Walk(func(x, y int) {
		if i < len(words)*8 {
			if getBit(bitmap, p.Stride, x, y) != m.Invert(x, y) {
				words[i>>3] |= 0x80 >> (i & 7)
			}
			i++
		}
	})
	return words
}
