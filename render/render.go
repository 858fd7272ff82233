// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws module matrices as images and text.
package render // import "github.com/qrgen/qr/render"

import (
	"errors"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"
)

// A Matrix is a square grid of light and dark modules.
type Matrix interface {
	Side() int           // modules on a side
	Black(x, y int) bool // dark module at column x, row y
}

// A FunctionMatrix also reports which modules are function patterns.
type FunctionMatrix interface {
	Matrix
	IsFunction(x, y int) bool
}

// A PathMatrix also visits its data modules in placement order.
type PathMatrix interface {
	Matrix
	Walk(fn func(x, y int))
}

// Options control rendering.  The zero value draws one pixel per
// module with no quiet zone in black on white.
type Options struct {
	Resolution int  // target image side in pixels
	MinModule  int  // minimum pixels per module
	Border     int  // quiet zone in modules
	Reverse    bool // swap foreground and background

	Foreground color.Color // dark modules, black if nil
	Background color.Color // light modules, white if nil

	// Functions marks function modules with a dot; the matrix must
	// implement FunctionMatrix.
	Functions bool

	// Path draws the order in which data modules are placed as a line
	// through their centres; the matrix must implement PathMatrix.
	Path bool
}

// Defaults returns the default options: 300 pixel resolution, at
// least 10 pixels per module and a 2 module quiet zone.
func Defaults() Options {
	return Options{Resolution: 300, MinModule: 10, Border: 2}
}

// ErrFunctions reports Options.Functions set for a matrix that does
// not implement FunctionMatrix.
var ErrFunctions = errors.New("render: matrix does not report function modules")

// ErrPath reports Options.Path set for a matrix that does not
// implement PathMatrix.
var ErrPath = errors.New("render: matrix does not report placement order")

// Scale returns the pixels per module for a matrix of the given side:
// Resolution divided by the side including the quiet zone, but no
// less than MinModule or 1.  The image may therefore come out larger
// than Resolution.
func (o *Options) Scale(side int) int {
	s := 0
	if pix := side + 2*o.border(); o.Resolution > 0 && pix > 0 {
		s = o.Resolution / pix
	}
	return max(s, o.MinModule, 1)
}

func (o *Options) border() int { return max(o.Border, 0) }

// darkRuns calls fn with the start and length of each run of dark
// modules in row y, left to right.
func darkRuns(m Matrix, y int, fn func(x, n int)) {
	siz := m.Side()
	for x := 0; x < siz; x++ {
		if !m.Black(x, y) {
			continue
		}
		s := x
		for x < siz && m.Black(x, y) {
			x++
		}
		fn(s, x-s)
	}
}

// palette returns the colours for light and dark modules.
func (o *Options) palette() (light, dark color.Color) {
	light, dark = o.Background, o.Foreground
	if light == nil {
		light = color.White
	}
	if dark == nil {
		dark = color.Black
	}
	if o.Reverse {
		light, dark = dark, light
	}
	return light, dark
}

var (
	markColor = color.RGBA{0xff, 0x00, 0x00, 0xff}
	pathColor = color.RGBA{0x00, 0x80, 0xff, 0xff}
)

// Image returns an image displaying m.
func Image(m Matrix, o Options) (image.Image, error) {
	var fm FunctionMatrix
	if o.Functions {
		var ok bool
		if fm, ok = m.(FunctionMatrix); !ok {
			return nil, ErrFunctions
		}
	}
	var pm PathMatrix
	if o.Path {
		var ok bool
		if pm, ok = m.(PathMatrix); !ok {
			return nil, ErrPath
		}
	}
	light, dark := o.palette()
	side := m.Side()
	scale := o.Scale(side)
	bord := o.border()
	d := (side + 2*bord) * scale
	pal := color.Palette{light, dark}
	var mark, path uint8
	if fm != nil {
		mark = uint8(len(pal))
		pal = append(pal, markColor)
	}
	if pm != nil {
		path = uint8(len(pal))
		pal = append(pal, pathColor)
	}
	img := image.NewPaletted(image.Rect(0, 0, d, d), pal)
	// Index 0 is light, the whole image starts as quiet zone.
	for y := 0; y < side; y++ {
		py := (y + bord) * scale
		for x := 0; x < side; x++ {
			if !m.Black(x, y) {
				continue
			}
			px := (x + bord) * scale
			for dy := 0; dy < scale; dy++ {
				row := img.Pix[(py+dy)*img.Stride+px:]
				for dx := range row[:scale] {
					row[dx] = 1
				}
			}
		}
	}
	if fm != nil {
		r := max(scale/5, 1)
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				if !fm.IsFunction(x, y) {
					continue
				}
				cx, cy := (x+bord)*scale+scale/2, (y+bord)*scale+scale/2
				for py := cy - r; py <= cy+r; py++ {
					for px := cx - r; px <= cx+r; px++ {
						img.SetColorIndex(px, py, mark)
					}
				}
			}
		}
	}
	if pm != nil {
		drawPath(img, pm, scale, bord, path)
	}
	return img, nil
}

// drawPath joins the centres of the data modules of m in placement
// order with a line in colour index c.
func drawPath(img *image.Paletted, m PathMatrix, scale, bord int, c uint8) {
	first := true
	var lx, ly int
	m.Walk(func(x, y int) {
		cx, cy := (x+bord)*scale+scale/2, (y+bord)*scale+scale/2
		if first {
			lx, ly, first = cx, cy, false
		}
		n := max(abs(cx-lx), abs(cy-ly), 1)
		for i := 0; i <= n; i++ {
			img.SetColorIndex(lx+(cx-lx)*i/n, ly+(cy-ly)*i/n, c)
		}
		lx, ly = cx, cy
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// A Format writes a matrix to w.
type Format struct {
	Name   string
	Ext    string // file name extension, with dot
	Encode func(w io.Writer, m Matrix, o Options) error
}

var formats = []*Format{
	{"png", ".png", encodePNG},
	{"gif", ".gif", encodeGIF},
	{"jpeg", ".jpg", encodeJPEG},
	{"bmp", ".bmp", encodeBMP},
	{"tiff", ".tiff", encodeTIFF},
	{"pbm", ".pbm", EncodePBM},
	{"eps", ".eps", EncodeEPS},
	{"utf8", ".txt", EncodeUTF8},
	{"ascii", ".txt", EncodeASCII},
}

var aliases = map[string]string{
	"jpg": "jpeg",
	"tif": "tiff",
	"txt": "utf8",
}

// Formats returns the format names.
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}
	return names
}

// FormatFor returns the format named s, which may also be a file name
// whose extension names the format.  It returns nil if there is none.
func FormatFor(s string) *Format {
	name := strings.ToLower(s)
	if ext := filepath.Ext(name); ext != "" {
		name = ext[1:]
	}
	if a, ok := aliases[name]; ok {
		name = a
	}
	for _, f := range formats {
		if f.Name == name {
			return f
		}
	}
	return nil
}
