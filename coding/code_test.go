// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference symbols, '#' is dark.
var golden1H = []string{
	"#######...###.#######",
	"#.....#....##.#.....#",
	"#.###.#....##.#.###.#",
	"#.###.#..#....#.###.#",
	"#.###.#.####..#.###.#",
	"#.....#...###.#.....#",
	"#######.#.#.#.#######",
	"........###.#........",
	"..##..###.#####.#....",
	"#..###.##........##.#",
	".#...##.#..###.....##",
	"....#....#.#...###.#.",
	"..#...#...##.#.#....#",
	"........#.##..#...#..",
	"#######.###.#.##.....",
	"#.....#....#.#######.",
	"#.###.#..##....######",
	"#.###.#.#.#.....####.",
	"#.###.#.#......#..#..",
	"#.....#..##...###...#",
	"#######..##.##.#..#..",
}

var golden7H = []string{
	"#######.##.#..#..###.#.#...#..##....#.#######",
	"#.....#......#...###...#...##..#...#..#.....#",
	"#.###.#.##.....####.#..##..##......#..#.###.#",
	"#.###.#..#.#.#.##..###.#####.###.#.##.#.###.#",
	"#.###.#.##..#..#..#.#####.##.##.#####.#.###.#",
	"#.....#..#.##...#.###...#......##.....#.....#",
	"#######.#.#.#.#.#.#.#.#.#.#.#.#.#.#.#.#######",
	"........#.####.#...##...##...###.###.........",
	".....##....#.##..#..#####.####...####.#.#.#.#",
	".#.#.#..###.##...#...##...#...###.#.#.####..#",
	"..#.#.#..#.#......#.#..#....##...#####.#.....",
	".##.#.....#.#.#..#.....##..###.####.#....#.#.",
	".#.##.#..#..#.##...#####.###.#.###.......###.",
	"#.#.#..#.##.#..##.....#..#...#..#...##..###.#",
	".#.####.#.#..#.##...###.#..##.##.##...#.#..#.",
	"####...###.##....#....######..##..#.##.#.###.",
	"##.#.##.##.#..#.###...#...##.###..#....#...##",
	".#..#..###..###......##.#.#.#.##...###....#.#",
	".##..######..#..##...#.#......###...##.######",
	"..#.##..###..#.##.###..##....#.######...###.#",
	"#...#####.###.##..########.#...#.##.#####..##",
	"..#.#...#...#.##...##...#..###.###.##...#.###",
	"...##.#.##...#.##.###.#.#.###.##.#.##.#.####.",
	"#####...#.....####..#...#.###..#....#...#####",
	"#..######..#.##...########..##.##.#.######..#",
	"##.#.#..#.##.#.##.#.....##...###...#...#.#.#.",
	"...##.#...#.#.#.######..#.#...#....#....#....",
	"#..##.....#...#.####..#..###..#.#.#.##.#.#.##",
	".#...##.#####.###..#..#.#......###......#.#..",
	".#...#....#....#.#.#....#.###...##..##.#..###",
	"##.#..#.#....#.##.#####....####....#####..###",
	"#...#...#...##.##....#.#...#...##....#....#..",
	"#.##.###......##.#..###..#.#..#..#.#####.##.#",
	".##.#...#...####....##.#..##.#.#####...#.##..",
	"....#.#..##...#.##..#.#.#.#..#.#..##.#######.",
	".####...##.#..##......#.##.#....##.##..####..",
	"#..##.####.#.#....#.######..#...#########....",
	"........##..#...##.##...#..#.......##...###.#",
	"#######..#.#.#..##.##.#.#..#..#...#.#.#.##.#.",
	"#.....#.#.#.#.###..##...#...##....#.#...#####",
	"#.###.#....#.#.##########...#..#....#####..#.",
	"#.###.#..#...##.#.####.#.##.#..##.....##.##.#",
	"#.###.#..###...#.##.#.##.#.##.###.#.#.#######",
	"#.....#...#.......#.##.##.###.#..##.##.#..#..",
	"#######..#.....#####.##.###...#######.##...#.",
}

func picture(c *Code) []string {
	rows := make([]string, c.Size)
	var sb strings.Builder
	for y := range rows {
		sb.Reset()
		for x := 0; x < c.Size; x++ {
			if c.Black(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func encodeMask(t *testing.T, text string, v Version, l Level, m Mask) *Code {
	t.Helper()
	e, err := NewEncoder(v, l)
	require.NoError(t, err)
	require.NoError(t, e.SetMask(m))
	c, err := e.Encode(Segment{Data: []byte(text)})
	require.NoError(t, err)
	return c
}

func TestGolden(t *testing.T) {
	for _, tt := range []struct {
		text string
		v    Version
		l    Level
		m    Mask
		want []string
	}{
		{"hello", 1, H, 3, golden1H},
		{"Version seven golden payload 0123456789", 7, H, 5, golden7H},
	} {
		t.Run(fmt.Sprintf("%d-%s-%d", tt.v, tt.l, tt.m), func(t *testing.T) {
			c := encodeMask(t, tt.text, tt.v, tt.l, tt.m)
			assert.Equal(t, tt.m, c.Mask)
			assert.Equal(t, tt.want, picture(c))
		})
	}
}

func TestMaskSelection(t *testing.T) {
	for _, tt := range []struct {
		text string
		v    Version
		l    Level
		want Mask
		pen  [8]int
	}{
		{"HELLO123", 1, M, 3, [8]int{1080, 1199, 1067, 1020, 1085, 1110, 1044, 1084}},
		{"hello", 1, H, 5, [8]int{1120, 1184, 1069, 1078, 1203, 1046, 1079, 1101}},
		{"https://example.com/", 2, Q, 7, [8]int{1244, 1283, 1247, 1192, 1227, 1194, 1198, 1121}},
		{"Version seven golden payload 0123456789", 7, H, 2,
			[8]int{2386, 2331, 2046, 2392, 2091, 2178, 2191, 2344}},
	} {
		t.Run(tt.text, func(t *testing.T) {
			e, err := NewEncoder(tt.v, tt.l)
			require.NoError(t, err)
			var pen [8]int
			e.Penalty = func(m Mask, p int) { pen[m] = p }
			c, err := e.Encode(Segment{Data: []byte(tt.text)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Mask)
			assert.Equal(t, tt.pen, pen)

			// The chosen symbol is the forced one and scores lowest.
			forced := encodeMask(t, tt.text, tt.v, tt.l, tt.want)
			assert.Equal(t, forced.Bitmap, c.Bitmap)
			assert.Equal(t, pen[tt.want], c.Penalty())
			for m, p := range pen {
				if Mask(m) < tt.want {
					assert.Greater(t, p, pen[tt.want])
				} else {
					assert.GreaterOrEqual(t, p, pen[tt.want])
				}
			}
		})
	}
}

func TestMaskedCandidates(t *testing.T) {
	// Each candidate differs from the mask 0 one exactly in the mask
	// pattern on data modules and in the format information.
	p, err := NewPlan(2, M)
	require.NoError(t, err)
	c0 := encodeMask(t, "candidates", 2, M, 0)
	for m := Mask(1); m < 8; m++ {
		c := encodeMask(t, "candidates", 2, M, m)
		for y := 0; y < c.Size; y++ {
			for x := 0; x < c.Size; x++ {
				diff := c.Black(x, y) != c0.Black(x, y)
				if p.IsFunction(x, y) {
					continue
				}
				assert.Equal(t, m.Invert(x, y) != Mask(0).Invert(x, y), diff,
					"mask %d at %d,%d", m, x, y)
			}
		}
	}
}

func TestPenaltyRules(t *testing.T) {
	mk := func(rows ...string) *Code {
		siz := len(rows)
		c := &Code{Size: siz, Stride: (siz + 7) >> 3}
		c.Bitmap = make([]byte, siz*c.Stride)
		for y, r := range rows {
			for x, ch := range r {
				if ch == '#' {
					setBit(c.Bitmap, c.Stride, x, y)
				}
			}
		}
		return c
	}
	// All light 5×5: five runs of 5 per direction, 16 boxes, 0% dark.
	light := mk(".....", ".....", ".....", ".....", ".....")
	assert.Equal(t, 10*3+16*3+100, light.Penalty())

	// Checkerboard: no runs or boxes, 13 of 25 dark is within 5%.
	board := mk("#.#.#", ".#.#.", "#.#.#", ".#.#.", "#.#.#")
	assert.Equal(t, 0, board.Penalty())

	assert.Equal(t, 40, linePenalty(bools("#.###.#")))
	assert.Equal(t, 40, linePenalty(bools("#.###.#....#")))
	assert.Equal(t, 40, linePenalty(bools("#...#.###.#")), "edge counts as light")
	assert.Equal(t, 0, linePenalty(bools("#.#.#.###.#.#.#")))
	assert.Equal(t, 5+40, linePenalty(bools(".......#.###.#")))
}

func bools(s string) []bool {
	b := make([]bool, len(s))
	for i := range s {
		b[i] = s[i] == '#'
	}
	return b
}

// TestRoundTrip encodes a full payload at every version and level and
// reads it back.
func TestRoundTrip(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		for l := L; l <= H; l++ {
			n := (v.DataBits(l) - HeaderBits(v) - 4) / 8
			data := make([]byte, n)
			for i := range data {
				data[i] = byte('a' + (i*7+int(v))%26)
			}
			m := Mask((int(v) + int(l)) % 8)
			c := encodeMask(t, string(data), v, l, m)
			require.Equal(t, v.Size(), c.Size)
			s, err := Decode(c)
			require.NoError(t, err, "%s-%s", v, l)
			assert.Equal(t, v, s.Version)
			assert.Equal(t, l, s.Level)
			assert.Equal(t, m, s.Mask)
			require.Equal(t, data, s.Data, "%s-%s", v, l)
		}
	}
}

func TestDecodeDamage(t *testing.T) {
	c := encodeMask(t, "damaged", 3, L, 4)
	p, err := NewPlan(3, L)
	require.NoError(t, err)
	// flip the first data module
	x, y := c.Size-1, c.Size-1
	require.False(t, p.IsFunction(x, y))
	c.Bitmap[y*c.Stride+x>>3] ^= 0x80 >> (x & 7)
	_, err = Decode(c)
	assert.ErrorIs(t, err, ErrChecksum)

	_, err = Decode(&Code{Size: 20, Stride: 3, Bitmap: make([]byte, 60)})
	assert.ErrorIs(t, err, ErrFormat)
}

func TestEmptyPayload(t *testing.T) {
	c, err := Encode(1, H, Segment{})
	require.NoError(t, err)
	s, err := Decode(c)
	require.NoError(t, err)
	assert.Empty(t, s.Data)
}

func TestCapacity(t *testing.T) {
	e, err := NewEncoder(1, H)
	require.NoError(t, err)
	_, err = e.Encode(Segment{Data: []byte("12345678")})
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 76, ce.Bits)
	assert.Equal(t, 72, ce.Capacity)

	e.Reset()
	_, err = e.Encode(Segment{Data: []byte("1234567")})
	assert.NoError(t, err)
}

func TestEncoderErrors(t *testing.T) {
	_, err := NewEncoder(0, L)
	assert.ErrorIs(t, err, ErrVersion)
	_, err = NewEncoder(41, L)
	assert.ErrorIs(t, err, ErrVersion)
	_, err = NewEncoder(1, Level(4))
	assert.ErrorIs(t, err, ErrLevel)

	e, err := NewEncoder(1, L)
	require.NoError(t, err)
	assert.ErrorIs(t, e.SetMask(8), ErrMask)
	assert.NoError(t, e.SetMask(AutoMask))

	_, err = e.Encode(Segment{Data: []byte{0xff}})
	var ee *EncodingError
	require.ErrorAs(t, err, &ee)
	assert.True(t, ee.Invalid)
}

func BenchmarkEncode(b *testing.B) {
	seg := Segment{Data: []byte("https://example.com/some/long/path?query=1")}
	for i := 0; i < b.N; i++ {
		if _, err := Encode(10, M, seg); err != nil {
			b.Fatal(err)
		}
	}
}
