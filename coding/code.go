// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: byte mode
// segments, error correction blocks, symbol construction and masking.
package coding // import "github.com/qrgen/qr/coding"

// A Code is a square module grid.
type Code struct {
	Bitmap []byte // 1 is dark, 0 is light
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row

	Version Version
	Level   Level
	Mask    Mask
}

func (c *Code) black(x, y int) bool {
	return c.Bitmap[y*c.Stride+x>>3]&(0x80>>(x&7)) != 0
}

// Black reports whether the module at column x, row y is dark.
// Modules outside the grid are light.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size && c.black(x, y)
}

// Encoder encodes a QR code.
type Encoder struct {
	p    *Plan
	b    *Bits
	mask Mask

	// Penalty, if set, is called with the penalty of every mask tried.
	Penalty func(m Mask, penalty int)
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	p, err := makePlan(version, level)
	if err != nil {
		return nil, err
	}
	return &Encoder{p: p, b: NewBits(version), mask: AutoMask}, nil
}

// Plan returns the shared Plan of e, which must not be modified.
func (e *Encoder) Plan() *Plan { return e.p }

// SetMask forces mask m, or restores the penalty search for AutoMask.
func (e *Encoder) SetMask(m Mask) error {
	if m != AutoMask && !m.Valid() {
		return &ConfigError{Name: "mask", Value: m.String(), Err: ErrMask}
	}
	e.mask = m
	return nil
}

// Write adds segments to e.
func (e *Encoder) Write(segs ...Segment) error {
	for _, s := range segs {
		if err := s.Encode(e.b, e.p.Version); err != nil {
			return err
		}
	}
	return nil
}

// Reset discards data written to e.
func (e *Encoder) Reset() { e.b.Reset() }

// xor xors a and b into dst.  a and b may not be shorter than dst.
func xor(dst, a, b []byte) {
	a = a[:len(dst)]
	b = b[:len(dst)]
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// Code returns a QR code containing data written to e.  Call Reset
// before reusing e.
func (e *Encoder) Code() (*Code, error) {
	p := e.p
	if e.b.Bits() > p.DataBits {
		return nil, &CapacityError{Bits: e.b.Bits(), Capacity: p.DataBits,
			Min: p.Version, Max: p.Version, Level: p.Level}
	}
	if err := e.b.AddCheckBytes(p.Version, p.Level); err != nil {
		return nil, err
	}
	bits, err := e.b.Permute(p.Version, p.Level)
	if err != nil {
		return nil, err
	}
	// Now we have the check bytes and the data bytes.
	// Construct the bitmap consisting of data and check bits.
	data := make([]byte, p.Size*p.Stride)
	if err := p.Serialise(&bits, data); err != nil {
		return nil, err
	}

	c := &Code{
		Bitmap:  make([]byte, len(data)),
		Size:    p.Size,
		Stride:  p.Stride,
		Version: p.Version,
		Level:   p.Level,
		Mask:    e.mask,
	}
	if e.mask != AutoMask {
		xor(c.Bitmap, data, p.Pattern[e.mask])
		return c, nil
	}

	// Apply masks to the bitmap to construct the actual codes.
	// Choose the code with the smallest penalty, the first on ties.
	cand := *c
	cand.Bitmap = make([]byte, len(data))
	best := -1
	for m, pat := range p.Pattern {
		xor(cand.Bitmap, data, pat)
		pen := cand.Penalty()
		if e.Penalty != nil {
			e.Penalty(Mask(m), pen)
		}
		if best < 0 || pen < best {
			best = pen
			c.Mask = Mask(m)
			c.Bitmap, cand.Bitmap = cand.Bitmap, c.Bitmap
		}
	}
	return c, nil
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(segs ...Segment) (*Code, error) {
	if err := e.Write(segs...); err != nil {
		return nil, err
	}
	return e.Code()
}

// Encode encodes segments using an Encoder with the given version
// and level and the mask with the lowest penalty.
func Encode(version Version, level Level, segs ...Segment) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	return e.Encode(segs...)
}
