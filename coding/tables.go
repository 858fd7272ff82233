// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strconv"
	"strings"
)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// The larger the version, the more information the code can store.
type Version int

// Version bounds.
const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// Valid reports whether v is between MinVersion and MaxVersion.
func (v Version) Valid() bool { return MinVersion <= v && v <= MaxVersion }

// Size returns the number of modules on a side.
func (v Version) Size() int { return int(v)*4 + 17 }

// Version size classes, which determine the width of the character
// count field.
const (
	Class0 = iota // versions 1 to 9
	Class1        // versions 10 to 26
	Class2        // versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	switch {
	case v <= 9:
		return Class0
	case v <= 26:
		return Class1
	}
	return Class2
}

// CountBits returns the width of the byte mode character count field.
func (v Version) CountBits() int {
	return [...]int{Class0: 8, Class1: 16, Class2: 16}[v.SizeClass()]
}

// Codewords returns the total number of codewords, data and error
// correction, in a code of version v.
func (v Version) Codewords() int { return vtab[v].words }

// RemainderBits returns the number of data modules left over after
// all codewords are placed.
func (v Version) RemainderBits() int { return vtab[v].rem }

// DataBytes returns the number of data codewords that can be
// stored in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.words - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// AlignmentCenters returns the row and column coordinates of
// alignment pattern centres, in increasing order.
func (v Version) AlignmentCenters() []int {
	a := vtab[v].align
	if a[0] == 0 {
		return nil
	}
	pos := []int{6, a[0]}
	if a[1] != 0 {
		for x, d := a[1], a[1]-a[0]; x <= v.Size()-7; x += d {
			pos = append(pos, x)
		}
	}
	return pos
}

// A BlockStructure describes how data codewords are split into
// error correction blocks.  The first Short blocks hold DataBytes
// codewords, the remaining Blocks-Short hold DataBytes+1.  Each
// block gets CheckBytes error correction codewords.
type BlockStructure struct {
	Blocks     int
	Short      int
	DataBytes  int
	CheckBytes int
}

// Blocks returns the block structure for version v at level l.
func (v Version) Blocks(l Level) BlockStructure {
	lev := vtab[v].level[l]
	nd := v.DataBytes(l)
	return BlockStructure{
		Blocks:     lev.nblock,
		Short:      lev.nblock - nd%lev.nblock,
		DataBytes:  nd / lev.nblock,
		CheckBytes: lev.check,
	}
}

// Len returns the number of data codewords in block i.
func (bs BlockStructure) Len(i int) int {
	if i < bs.Short {
		return bs.DataBytes
	}
	return bs.DataBytes + 1
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

func (l Level) String() string {
	if l.Valid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// Valid reports whether l is one of L, M, Q, H.
func (l Level) Valid() bool { return L <= l && l <= H }

// formatBits returns the 2-bit level indicator of function
// information: L=01, M=00, Q=11, H=10.
func (l Level) formatBits() uint32 { return uint32(l) ^ 1 }

// ParseLevel parses a level name, either a letter or one of "low",
// "medium", "quartile", "high", ignoring case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "l", "low":
		return L, nil
	case "m", "medium":
		return M, nil
	case "q", "quartile":
		return Q, nil
	case "h", "high":
		return H, nil
	}
	return 0, &ConfigError{Name: "level", Value: s, Err: ErrLevel}
}

// ParseVersion parses a decimal version number.
func ParseVersion(s string) (Version, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if v := Version(n); err == nil && v.Valid() {
		return v, nil
	}
	return 0, &ConfigError{Name: "version", Value: s, Err: ErrVersion}
}

// A version describes metadata associated with a version.
type version struct {
	words int    // total codewords
	rem   int    // remainder bits
	align [2]int // first two alignment centres after 6, 0 if absent
	level [4]level
}

type level struct {
	nblock int // number of blocks
	check  int // check bytes per block
}

// derived from ISO/IEC 18004:2015 tables 1, 9 and E.1
var vtab = [MaxVersion + 1]version{
	1: {26, 0, [2]int{0, 0}, [4]level{{1, 7}, {1, 10}, {1, 13}, {1, 17}}},
	2: {44, 7, [2]int{18, 0}, [4]level{{1, 10}, {1, 16}, {1, 22}, {1, 28}}},
	3: {70, 7, [2]int{22, 0}, [4]level{{1, 15}, {1, 26}, {2, 18}, {2, 22}}},
	4: {100, 7, [2]int{26, 0}, [4]level{{1, 20}, {2, 18}, {2, 26}, {4, 16}}},
	5: {134, 7, [2]int{30, 0}, [4]level{{1, 26}, {2, 24}, {4, 18}, {4, 22}}},
	6: {172, 7, [2]int{34, 0}, [4]level{{2, 18}, {4, 16}, {4, 24}, {4, 28}}},
	7: {196, 0, [2]int{22, 38}, [4]level{{2, 20}, {4, 18}, {6, 18}, {5, 26}}},
	8: {242, 0, [2]int{24, 42}, [4]level{{2, 24}, {4, 22}, {6, 22}, {6, 26}}},
	9: {292, 0, [2]int{26, 46}, [4]level{{2, 30}, {5, 22}, {8, 20}, {8, 24}}},
	10: {346, 0, [2]int{28, 50}, [4]level{{4, 18}, {5, 26}, {8, 24}, {8, 28}}},
	11: {404, 0, [2]int{30, 54}, [4]level{{4, 20}, {5, 30}, {8, 28}, {11, 24}}},
	12: {466, 0, [2]int{32, 58}, [4]level{{4, 24}, {8, 22}, {10, 26}, {11, 28}}},
	13: {532, 0, [2]int{34, 62}, [4]level{{4, 26}, {9, 22}, {12, 24}, {16, 22}}},
	14: {581, 3, [2]int{26, 46}, [4]level{{4, 30}, {9, 24}, {16, 20}, {16, 24}}},
	15: {655, 3, [2]int{26, 48}, [4]level{{6, 22}, {10, 24}, {12, 30}, {18, 24}}},
	16: {733, 3, [2]int{26, 50}, [4]level{{6, 24}, {10, 28}, {17, 24}, {16, 30}}},
	17: {815, 3, [2]int{30, 54}, [4]level{{6, 28}, {11, 28}, {16, 28}, {19, 28}}},
	18: {901, 3, [2]int{30, 56}, [4]level{{6, 30}, {13, 26}, {18, 28}, {21, 28}}},
	19: {991, 3, [2]int{30, 58}, [4]level{{7, 28}, {14, 26}, {21, 26}, {25, 26}}},
	20: {1085, 3, [2]int{34, 62}, [4]level{{8, 28}, {16, 26}, {20, 30}, {25, 28}}},
	21: {1156, 4, [2]int{28, 50}, [4]level{{8, 28}, {17, 26}, {23, 28}, {25, 30}}},
	22: {1258, 4, [2]int{26, 50}, [4]level{{9, 28}, {17, 28}, {23, 30}, {34, 24}}},
	23: {1364, 4, [2]int{30, 54}, [4]level{{9, 30}, {18, 28}, {25, 30}, {30, 30}}},
	24: {1474, 4, [2]int{28, 54}, [4]level{{10, 30}, {20, 28}, {27, 30}, {32, 30}}},
	25: {1588, 4, [2]int{32, 58}, [4]level{{12, 26}, {21, 28}, {29, 30}, {35, 30}}},
	26: {1706, 4, [2]int{30, 58}, [4]level{{12, 28}, {23, 28}, {34, 28}, {37, 30}}},
	27: {1828, 4, [2]int{34, 62}, [4]level{{12, 30}, {25, 28}, {34, 30}, {40, 30}}},
	28: {1921, 3, [2]int{26, 50}, [4]level{{13, 30}, {26, 28}, {35, 30}, {42, 30}}},
	29: {2051, 3, [2]int{30, 54}, [4]level{{14, 30}, {28, 28}, {38, 30}, {45, 30}}},
	30: {2185, 3, [2]int{26, 52}, [4]level{{15, 30}, {29, 28}, {40, 30}, {48, 30}}},
	31: {2323, 3, [2]int{30, 56}, [4]level{{16, 30}, {31, 28}, {43, 30}, {51, 30}}},
	32: {2465, 3, [2]int{34, 60}, [4]level{{17, 30}, {33, 28}, {45, 30}, {54, 30}}},
	33: {2611, 3, [2]int{30, 58}, [4]level{{18, 30}, {35, 28}, {48, 30}, {57, 30}}},
	34: {2761, 3, [2]int{34, 62}, [4]level{{19, 30}, {37, 28}, {51, 30}, {60, 30}}},
	35: {2876, 0, [2]int{30, 54}, [4]level{{19, 30}, {38, 28}, {53, 30}, {63, 30}}},
	36: {3034, 0, [2]int{24, 50}, [4]level{{20, 30}, {40, 28}, {56, 30}, {66, 30}}},
	37: {3196, 0, [2]int{28, 54}, [4]level{{21, 30}, {43, 28}, {59, 30}, {70, 30}}},
	38: {3362, 0, [2]int{32, 58}, [4]level{{22, 30}, {45, 28}, {62, 30}, {74, 30}}},
	39: {3532, 0, [2]int{26, 54}, [4]level{{24, 30}, {47, 28}, {65, 30}, {77, 30}}},
	40: {3706, 0, [2]int{30, 58}, [4]level{{25, 30}, {49, 28}, {68, 30}, {81, 30}}},
}
