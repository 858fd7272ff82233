// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"sync"

	"github.com/qrgen/qr/gf256"
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// Reed-Solomon encoders by number of check bytes, created on first use.
var rsenc [31]struct {
	once sync.Once
	rs   *gf256.RSEncoder
}

// RSEncoder returns the shared encoder producing c check bytes.
func RSEncoder(c int) *gf256.RSEncoder {
	if c < 0 || c >= len(rsenc) {
		return gf256.NewRSEncoder(Field, c)
	}
	e := &rsenc[c]
	e.once.Do(func() { e.rs = gf256.NewRSEncoder(Field, c) })
	return e.rs
}

// AddCheckBytes adds terminator, padding and error correction
// codewords to b for the given QR version and level.  Afterwards b
// holds the data codewords followed by the check bytes of each block
// in turn.
func (b *Bits) AddCheckBytes(v Version, l Level) error {
	nb := v.DataBits(l)
	if b.nbit > nb {
		return &CapacityError{Bits: b.nbit, Capacity: nb, Min: v, Max: v, Level: l}
	}
	b.PadTo(4, nb)

	bs := v.Blocks(l)
	rs := RSEncoder(bs.CheckBytes)
	dat := b.Bytes()
	check := b.add(bs.Blocks * bs.CheckBytes)
	for i := 0; i < bs.Blocks; i++ {
		n := bs.Len(i)
		rs.ECC(dat[:n], check[:bs.CheckBytes])
		dat, check = dat[n:], check[bs.CheckBytes:]
	}
	if n := len(b.b); n != v.Codewords() {
		return internalErr("AddCheckBytes", "%d codewords for version %s, want %d",
			n, v, v.Codewords())
	}
	return nil
}

// interleave copies nblock consecutive blocks from src to dst column
// by column.  If len(src) is not a multiple of nblock, the leading
// blocks are one byte shorter than the rest and skip the last column.
func interleave(dst, src []byte, nblock int) {
	db := len(src) / nblock
	first := nblock - len(src)%nblock // number of short blocks
	n := 0
	for col := 0; col <= db; col++ {
		off := col
		for i := 0; i < nblock; i++ {
			size := db
			if i >= first {
				size++
			}
			if col < size {
				dst[n] = src[off]
				n++
			}
			off += size
		}
	}
}

// deinterleave reverses interleave.
func deinterleave(dst, src []byte, nblock int) {
	db := len(src) / nblock
	first := nblock - len(src)%nblock
	n := 0
	for col := 0; col <= db; col++ {
		off := col
		for i := 0; i < nblock; i++ {
			size := db
			if i >= first {
				size++
			}
			if col < size {
				dst[off] = src[n]
				n++
			}
			off += size
		}
	}
}

// Permute returns a BitStream reading data and check bytes in b with
// blocks interleaved for the given QR code version and level: the
// data codewords of all blocks column-wise, then the check bytes
// column-wise.  The BitStream may use the same underlying buffer.
func (b *Bits) Permute(v Version, l Level) (BitStream, error) {
	src := b.Bytes()
	if len(src) != v.Codewords() {
		return BitStream{}, internalErr("Permute", "%d codewords for version %s, want %d",
			len(src), v, v.Codewords())
	}
	bs := v.Blocks(l)
	if bs.Blocks == 1 {
		return NewBitStream(src), nil
	}
	var dst []byte
	if n := len(src); cap(src) >= 2*n {
		dst = src[n : 2*n]
	} else {
		dst = make([]byte, n)
	}
	nd := v.DataBytes(l)
	interleave(dst[:nd], src[:nd], bs.Blocks)
	interleave(dst[nd:], src[nd:], bs.Blocks)
	return NewBitStream(dst), nil
}
