// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying m to w, for use
// with netpbm.  EncodePBM disregards colours, as other PNM formats are
// not supported, but honours Reverse.
func EncodePBM(w io.Writer, m Matrix, o Options) error {
	b := bufio.NewWriter(w)
	siz := m.Side()
	scale := o.Scale(siz)
	bord := o.border()
	length := scale * (siz + bord*2)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	// In PBM 1 is black.
	var white byte
	if o.Reverse {
		white = 0xff
	}
	row := make([]byte, (length+7)/8)
	blank := func() {
		for i := range row {
			row[i] = white
		}
	}
	blank()
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	for y := 0; y < siz; y++ {
		blank()
		darkRuns(m, y, func(x, n int) {
			for px := (x + bord) * scale; px < (x+bord+n)*scale; px++ {
				row[px>>3] ^= 0x80 >> (px & 7)
			}
		})
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	blank()
	for i := 0; i < scale*bord; i++ {
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}
