// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "math/bits"

// BCH code parameters of the format and version information.
const (
	formatPoly  = 0x537 // x¹⁰+x⁸+x⁵+x⁴+x²+x+1
	formatXOR   = 0x5412
	versionPoly = 0x1f25 // x¹²+x¹¹+x¹⁰+x⁹+x⁸+x⁵+x²+1
)

// bch returns data followed by the remainder of data·xᵈ divided by
// poly, where d is the degree of poly.
func bch(data, poly uint32) uint32 {
	deg := bits.Len32(poly) - 1
	r := data << deg
	for n := bits.Len32(r); n > deg; n = bits.Len32(r) {
		r ^= poly << (n - 1 - deg)
	}
	return data<<deg | r
}

// FormatBits returns the 15 bit format information for level l and
// mask m: two level bits and three mask bits, BCH(15,5) protected and
// xored with 0x5412.
func FormatBits(l Level, m Mask) uint16 {
	return uint16(bch(l.formatBits()<<3|uint32(m&7), formatPoly) ^ formatXOR)
}

// VersionBits returns the 18 bit version information for v: six
// version bits, BCH(18,6) protected.  Only versions 7 and up carry it.
func VersionBits(v Version) uint32 { return bch(uint32(v), versionPoly) }

// DecodeFormat returns the level and mask whose format information is
// nearest to f in Hamming distance.  It fails if more than 3 bits
// differ.
func DecodeFormat(f uint16) (Level, Mask, bool) {
	best, dist := 0, 16
	for i := 0; i < 32; i++ {
		l, m := Level(i>>3^1), Mask(i&7)
		if d := bits.OnesCount16(f ^ FormatBits(l, m)); d < dist {
			best, dist = i, d
		}
	}
	if dist > 3 {
		return 0, 0, false
	}
	return Level(best>>3 ^ 1), Mask(best & 7), true
}

// DecodeVersion returns the version whose version information is
// nearest to b in Hamming distance.  It fails if more than 3 bits
// differ.
func DecodeVersion(b uint32) (Version, bool) {
	best, dist := Version(0), 19
	for v := Version(7); v <= MaxVersion; v++ {
		if d := bits.OnesCount32(b ^ VersionBits(v)); d < dist {
			best, dist = v, d
		}
	}
	return best, dist <= 3
}
