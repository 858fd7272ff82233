// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Bits is a bit buffer filled most significant bit first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for a QR code of version
// v, including error correction and room for interleaving.
func NewBits(v Version) *Bits {
	return &Bits{b: make([]byte, 0, 2*vtab[v].words)}
}

// Reset empties b, keeping its storage.
func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int { return b.nbit }

// Bytes returns the buffer.  It panics if b does not end on a byte
// boundary.
func (b *Bits) Bytes() []byte {
	if b.nbit&7 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the low nbit bits of v, nbit <= 32.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit <= 0 {
		return
	}
	v <<= 32 - nbit
	// fill the partial last byte
	if free := -b.nbit & 7; free != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - free))
		if nbit <= free {
			b.nbit += nbit
			return
		}
		b.nbit += free
		nbit -= free
		v <<= free
	}
	b.nbit += nbit
	for ; nbit > 0; nbit -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
}

// WriteBytes appends p, 8 bits per byte.
func (b *Bits) WriteBytes(p []byte) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, p...)
		b.nbit += 8 * len(p)
		return
	}
	for _, c := range p {
		b.Write(uint32(c), 8)
	}
}

// add appends n zero bytes to an aligned b and returns them.
func (b *Bits) add(n int) []byte {
	start := len(b.b)
	b.b = append(b.b, make([]byte, n)...)
	b.nbit = 8 * len(b.b)
	return b.b[start:]
}

// PadTo adds up to t zero terminator bits to b, zero fills it to a byte
// boundary and appends alternating 0xec, 0x11 pad bytes until it
// holds n bits.  n must be a multiple of 8 not less than b.Bits().
func (b *Bits) PadTo(t, n int) {
	b.Write(0, min(t, n-b.nbit))
	b.Write(0, -b.nbit&7)
	for pad := byte(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
		b.nbit += 8
	}
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Remaining returns the number of unread bits.
func (s *BitStream) Remaining() int { return len(s.b)*8 - s.pos }

// Next returns the next bit from s as 0 or 1.
// Past end of buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}

// Read returns the next nbit bits as an integer, most significant
// first, and false if fewer than nbit bits remain.
func (s *BitStream) Read(nbit int) (uint32, bool) {
	if nbit > s.Remaining() {
		return 0, false
	}
	var v uint32
	for ; nbit > 0; nbit-- {
		v = v<<1 | uint32(s.Next())
	}
	return v, true
}
