// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"io"
	"strings"
)

// Half block characters indexed by top<<1|bottom, 1 being dark.
var halfBlocks = [4]string{" ", "▄", "▀", "█"}

// EncodeUTF8 writes m to w as text, two module rows per line using
// half block characters.  Scale and colours are ignored; a dark module
// is drawn with ink, so terminals with light text on a dark background
// want Reverse.
func EncodeUTF8(w io.Writer, m Matrix, o Options) error {
	siz := m.Side()
	bord := o.border()
	var flip int
	if o.Reverse {
		flip = 3
	}
	dark := func(x, y int) int {
		if m.Black(x, y) {
			return 1
		}
		return 0
	}
	var b strings.Builder
	b.Grow((siz + 2*bord + 1) * (siz/2 + bord + 1) * 3)
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			b.WriteString(halfBlocks[(dark(x, y)<<1|dark(x, y+1))^flip])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// EncodeASCII writes m to w as text, each module as two characters:
// "##" for dark and spaces for light.  Scale and colours are ignored.
func EncodeASCII(w io.Writer, m Matrix, o Options) error {
	siz := m.Side()
	bord := o.border()
	ink, blank := byte('#'), byte(' ')
	if o.Reverse {
		ink, blank = blank, ink
	}
	width := 2*(siz+2*bord) + 1
	quiet := bytes.Repeat([]byte{blank}, width)
	quiet[width-1] = '\n'
	out := bytes.Repeat(quiet, siz+2*bord)
	for y := 0; y < siz; y++ {
		line := out[(y+bord)*width:]
		darkRuns(m, y, func(x, n int) {
			i := 2 * (x + bord)
			for k := range line[i : i+2*n] {
				line[i+k] = ink
			}
		})
	}
	_, err := w.Write(out)
	return err
}
