// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Symbol is the content read back from a module grid.
type Symbol struct {
	Version Version
	Level   Level
	Mask    Mask
	Data    []byte // byte mode payload as stored
}

// Decode reads the format and version information of c, then its
// codewords, checks each block against its error correction bytes and
// parses the byte mode segment.  Decode corrects no errors: it is
// meant for checking that a generated code reads back.
func Decode(c *Code) (*Symbol, error) {
	v := Version((c.Size - 17) / 4)
	if !v.Valid() || v.Size() != c.Size || len(c.Bitmap) < c.Size*c.Stride {
		return nil, ErrFormat
	}
	if v >= 7 {
		var b1, b2 uint32
		for i := 0; i < 18; i++ {
			a, b := c.Size-11+i%3, i/3
			if c.black(a, b) {
				b1 |= 1 << i
			}
			if c.black(b, a) {
				b2 |= 1 << i
			}
		}
		v1, ok1 := DecodeVersion(b1)
		v2, ok2 := DecodeVersion(b2)
		if !(ok1 && v1 == v || ok2 && v2 == v) {
			return nil, ErrFormat
		}
	}
	var f1, f2 uint16
	for i := 0; i < 15; i++ {
		x1, y1, x2, y2 := formatCoords(c.Size, i)
		if c.black(x1, y1) {
			f1 |= 1 << i
		}
		if c.black(x2, y2) {
			f2 |= 1 << i
		}
	}
	l, m, ok := DecodeFormat(f1)
	if !ok {
		if l, m, ok = DecodeFormat(f2); !ok {
			return nil, ErrFormat
		}
	}
	p, err := makePlan(v, l)
	if err != nil {
		return nil, err
	}
	data, err := p.Decode(c.Bitmap, m)
	if err != nil {
		return nil, err
	}
	return &Symbol{Version: v, Level: l, Mask: m, Data: data}, nil
}

// Decode returns the byte mode payload of bitmap, a code built from
// p with mask m.
func (p *Plan) Decode(bitmap []byte, m Mask) ([]byte, error) {
	if !m.Valid() {
		return nil, &ConfigError{Name: "mask", Value: m.String(), Err: ErrMask}
	}
	words := p.read(bitmap, m)
	v, bs := p.Version, p.Blocks
	nd := v.DataBytes(p.Level)
	buf := make([]byte, len(words))
	deinterleave(buf[:nd], words[:nd], bs.Blocks)
	deinterleave(buf[nd:], words[nd:], bs.Blocks)

	rs := RSEncoder(bs.CheckBytes)
	dat, check := buf[:nd], buf[nd:]
	for i := 0; i < bs.Blocks; i++ {
		n := bs.Len(i)
		if !rs.Check(dat[:n], check[:bs.CheckBytes]) {
			return nil, ErrChecksum
		}
		dat, check = dat[n:], check[bs.CheckBytes:]
	}

	s := NewBitStream(buf[:nd])
	if ind, ok := s.Read(4); !ok || ind != byteIndicator {
		return nil, ErrData
	}
	n, ok := s.Read(v.CountBits())
	if !ok || int(n)*8 > s.Remaining() {
		return nil, ErrData
	}
	out := make([]byte, n)
	for i := range out {
		b, _ := s.Read(8)
		out[i] = byte(b)
	}
	return out, nil
}
