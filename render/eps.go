// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
)

// Letter page.
const (
	pageX = 612
	pageY = 792
)

// EncodeEPS writes an Encapsulated PostScript drawing of m to w,
// centred on a letter page, one point per pixel.  Each row of modules
// is stroked as runs of dark modules.
func EncodeEPS(w io.Writer, m Matrix, o Options) error {
	b := bufio.NewWriter(w)
	siz := m.Side()
	scale := o.Scale(siz)
	bord := o.border()
	full := (siz + 2*bord) * scale
	xorig := (pageX - full) / 2
	yorig := (pageY - full) / 2
	fmt.Fprintf(b, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: qrgen
%%%%Title: QR Code
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		xorig-1, yorig-1, pageX-xorig, pageY-yorig,
		pageX/2-float64(siz*scale)/2, pageY/2+float64((siz-1)*scale)/2-1,
		scale)
	light, dark := o.palette()
	if o.Reverse || o.Foreground != nil || o.Background != nil {
		// Paint the background as one wide stroke of the quiet zone.
		fmt.Fprintf(b, `gsave
newpath %d %d moveto
%d dup neg scale
%s setrgbcolor
1 0 rlineto stroke
grestore
%s setrgbcolor
`,
			-bord, siz/2, siz+2*bord, psColor(light), psColor(dark))
	}
	b.WriteString("newpath 0 0 moveto\n")
	for y := 0; y < siz; y++ {
		// Each run is drawn as its length after the gap from the last.
		end := 0
		darkRuns(m, y, func(x, n int) {
			fmt.Fprintf(b, "%d %d p ", n, x-end)
			end = x + n
		})
		b.WriteString("r\n")
	}
	b.WriteString("stroke grestore\nend\n%%Trailer\n")
	return b.Flush()
}

func psColor(c color.Color) string {
	rgb := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("%.3g %.3g %.3g",
		float64(rgb.R)/0xff, float64(rgb.G)/0xff, float64(rgb.B)/0xff)
}
