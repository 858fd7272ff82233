// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrgen/qr"
)

// grid is a Matrix drawn from strings, '#' is dark.
type grid []string

func (g grid) Side() int { return len(g) }

func (g grid) Black(x, y int) bool {
	return 0 <= y && y < len(g) && 0 <= x && x < len(g[y]) && g[y][x] == '#'
}

// fgrid also reports function modules, marked 'f' (dark) or 'o' (light).
type fgrid struct{ grid }

func (g fgrid) Black(x, y int) bool {
	if 0 <= y && y < len(g.grid) && 0 <= x && x < len(g.grid[y]) {
		return g.grid[y][x] == '#' || g.grid[y][x] == 'f'
	}
	return false
}

func (g fgrid) IsFunction(x, y int) bool {
	c := g.grid[y][x]
	return c == 'f' || c == 'o'
}

// walkList visits its modules in order.
type walkList [][2]int

func (w walkList) Walk(fn func(x, y int)) {
	for _, p := range w {
		fn(p[0], p[1])
	}
}

type pgrid struct {
	grid
	walkList
}

var diag = grid{"#.", ".#"}

func TestScale(t *testing.T) {
	d := Defaults()
	assert.Equal(t, 12, d.Scale(21), "300/25")
	assert.Equal(t, 10, d.Scale(29), "300/33 clamped to minimum")
	assert.Equal(t, 10, d.Scale(177))
	var o Options
	assert.Equal(t, 1, o.Scale(21))
	o = Options{Resolution: 100, Border: -3}
	assert.Equal(t, 4, o.Scale(21), "negative border is none")
}

func TestImage(t *testing.T) {
	o := Options{MinModule: 2, Border: 1}
	img, err := Image(diag, o)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	black := color.Gray{0}
	white := color.Gray{0xff}
	gray := func(x, y int) color.Color { return color.GrayModel.Convert(img.At(x, y)) }
	for _, tc := range []struct {
		x, y int
		want color.Color
	}{
		{0, 0, white}, {1, 1, white}, // quiet zone
		{2, 2, black}, {3, 3, black},
		{4, 2, white}, {2, 4, white},
		{4, 4, black}, {5, 5, black},
		{6, 6, white}, {7, 7, white},
	} {
		assert.Equal(t, tc.want, gray(tc.x, tc.y), "pixel %d,%d", tc.x, tc.y)
	}

	o.Reverse = true
	img, err = Image(diag, o)
	require.NoError(t, err)
	assert.Equal(t, black, color.GrayModel.Convert(img.At(0, 0)))
	assert.Equal(t, white, color.GrayModel.Convert(img.At(2, 2)))
}

func TestImageColors(t *testing.T) {
	fg := color.RGBA{0x12, 0x34, 0x56, 0xff}
	bg := color.RGBA{0xfe, 0xdc, 0xba, 0xff}
	img, err := Image(diag, Options{Foreground: fg, Background: bg})
	require.NoError(t, err)
	assert.Equal(t, fg, color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, bg, color.RGBAModel.Convert(img.At(1, 0)))
}

func TestFunctionOverlay(t *testing.T) {
	_, err := Image(diag, Options{Functions: true})
	assert.ErrorIs(t, err, ErrFunctions)

	m := fgrid{grid{"fo", ".#"}}
	img, err := Image(m, Options{MinModule: 10, Functions: true})
	require.NoError(t, err)
	assert.Equal(t, markColor, color.RGBAModel.Convert(img.At(5, 5)), "dark function centre")
	assert.Equal(t, markColor, color.RGBAModel.Convert(img.At(15, 5)), "light function centre")
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, color.RGBAModel.Convert(img.At(0, 0)), "dot is in the centre only")
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, color.RGBAModel.Convert(img.At(15, 15)), "data module unmarked")
}

func TestPathOverlay(t *testing.T) {
	_, err := Image(diag, Options{Path: true})
	assert.ErrorIs(t, err, ErrPath)

	m := pgrid{grid{"..", ".#"}, walkList{{1, 1}, {0, 1}, {0, 0}}}
	img, err := Image(m, Options{MinModule: 10, Path: true})
	require.NoError(t, err)
	at := func(x, y int) color.Color { return color.RGBAModel.Convert(img.At(x, y)) }
	for _, p := range [][2]int{{15, 15}, {10, 15}, {5, 15}, {5, 10}, {5, 5}} {
		assert.Equal(t, pathColor, at(p[0], p[1]), "on path %v", p)
	}
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, at(15, 5), "module not visited")
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, at(11, 11), "dark module off the line")

	both := struct {
		fgrid
		walkList
	}{fgrid{grid{"f.", ".."}}, walkList{{1, 0}}}
	img, err = Image(both, Options{MinModule: 10, Functions: true, Path: true})
	require.NoError(t, err)
	assert.Equal(t, markColor, color.RGBAModel.Convert(img.At(5, 5)))
	assert.Equal(t, pathColor, color.RGBAModel.Convert(img.At(15, 5)))
}

func TestFormatFor(t *testing.T) {
	for s, want := range map[string]string{
		"png":           "png",
		"out.PNG":       "png",
		"dir/code.jpg":  "jpeg",
		"JPEG":          "jpeg",
		"tif":           "tiff",
		"a.tiff":        "tiff",
		"txt":           "utf8",
		"ascii":         "ascii",
		"x.eps":         "eps",
		"qrcode_1.pbm":  "pbm",
		"animation.gif": "gif",
		"b.bmp":         "bmp",
	} {
		f := FormatFor(s)
		if assert.NotNil(t, f, s) {
			assert.Equal(t, want, f.Name, s)
		}
	}
	assert.Nil(t, FormatFor("svg"))
	assert.Nil(t, FormatFor("code.webp"))
	assert.Len(t, Formats(), len(formats))
}

func TestPBM(t *testing.T) {
	m := grid{"#"}
	var b bytes.Buffer
	require.NoError(t, EncodePBM(&b, m, Options{Border: 1}))
	assert.Equal(t, "P4\n3 3\n\x00\x40\x00", b.String())

	b.Reset()
	require.NoError(t, EncodePBM(&b, m, Options{Border: 1, Reverse: true}))
	assert.Equal(t, "P4\n3 3\n\xff\xbf\xff", b.String())

	b.Reset()
	require.NoError(t, EncodePBM(&b, diag, Options{MinModule: 4, Border: 1}))
	p := b.Bytes()
	require.True(t, bytes.HasPrefix(p, []byte("P4\n16 16\n")), "%q", p[:10])
	rows := p[len("P4\n16 16\n"):]
	require.Len(t, rows, 16*2)
	for y := 0; y < 16; y++ {
		row := rows[y*2 : y*2+2]
		switch y / 4 {
		case 1:
			assert.Equal(t, []byte{0x0f, 0x00}, row, "row %d", y)
		case 2:
			assert.Equal(t, []byte{0x00, 0xf0}, row, "row %d", y)
		default:
			assert.Equal(t, []byte{0, 0}, row, "row %d", y)
		}
	}
}

func TestASCII(t *testing.T) {
	var b strings.Builder
	require.NoError(t, EncodeASCII(&b, diag, Options{Border: 1}))
	assert.Equal(t, ""+
		"        \n"+
		"  ##    \n"+
		"    ##  \n"+
		"        \n", b.String())

	b.Reset()
	require.NoError(t, EncodeASCII(&b, diag, Options{Reverse: true}))
	assert.Equal(t, "  ##\n##  \n", b.String())
}

func TestUTF8(t *testing.T) {
	var b strings.Builder
	require.NoError(t, EncodeUTF8(&b, diag, Options{}))
	assert.Equal(t, "▀▄\n", b.String())

	b.Reset()
	require.NoError(t, EncodeUTF8(&b, diag, Options{Border: 1}))
	assert.Equal(t, " ▄  \n  ▀ \n", b.String())

	b.Reset()
	require.NoError(t, EncodeUTF8(&b, diag, Options{Reverse: true}))
	assert.Equal(t, "▄▀\n", b.String())
}

func TestEPS(t *testing.T) {
	var b strings.Builder
	require.NoError(t, EncodeEPS(&b, diag, Options{MinModule: 10, Border: 2}))
	s := b.String()
	assert.True(t, strings.HasPrefix(s, "%!PS-Adobe-2.0 EPSF-2.0\n"))
	// 6 modules of 10 points centred on the page.
	assert.Contains(t, s, "%%BoundingBox: 275 365 336 426\n")
	assert.Contains(t, s, "newpath 0 0 moveto\n1 0 p r\n1 1 p r\nstroke")
	assert.NotContains(t, s, "setrgbcolor", "black on white needs no colours")
	assert.True(t, strings.HasSuffix(s, "stroke grestore\nend\n%%Trailer\n"))

	b.Reset()
	require.NoError(t, EncodeEPS(&b, grid{"##.#", "....", ".##.", "#..#"}, Options{}))
	assert.Contains(t, b.String(), "newpath 0 0 moveto\n2 0 p 1 1 p r\nr\n2 1 p r\n1 0 p 1 2 p r\nstroke")

	b.Reset()
	require.NoError(t, EncodeEPS(&b, diag, Options{Reverse: true}))
	assert.Contains(t, b.String(), "0 0 0 setrgbcolor\n1 0 rlineto stroke\ngrestore\n1 1 1 setrgbcolor\n")
}

// decode reads a QR code from img with an independent decoder.
func decode(t *testing.T, img image.Image) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	res, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)
	return res.GetText()
}

func TestRasterDecode(t *testing.T) {
	const text = "https://example.com/render?q=1"
	c, err := qr.EncodeText(text, 1, 40, qr.M)
	require.NoError(t, err)
	for _, name := range []string{"png", "gif", "jpeg", "bmp", "tiff"} {
		t.Run(name, func(t *testing.T) {
			f := FormatFor(name)
			require.NotNil(t, f)
			var b bytes.Buffer
			require.NoError(t, f.Encode(&b, c, Defaults()))
			img, format, err := image.Decode(&b)
			require.NoError(t, err)
			assert.Equal(t, name, format)
			assert.Equal(t, text, decode(t, img))
		})
	}
}

// fill returns exactly n bytes of UTF-8 text cycling through one, two
// and three byte runes.
func fill(n int) string {
	var b strings.Builder
	for _, r := range strings.Repeat("añ€", n) {
		if b.Len()+utf8.RuneLen(r) > n {
			break
		}
		b.WriteRune(r)
	}
	for b.Len() < n {
		b.WriteByte('a')
	}
	return b.String()
}

func TestDecodeAllVersions(t *testing.T) {
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_PURE_BARCODE:  true,
		gozxing.DecodeHintType_CHARACTER_SET: "UTF-8",
	}
	read := func(t *testing.T, c *qr.Code) string {
		img, err := Image(c, Options{MinModule: 2, Border: 4})
		require.NoError(t, err)
		bmp, err := gozxing.NewBinaryBitmapFromImage(img)
		require.NoError(t, err)
		res, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
		require.NoError(t, err)
		return res.GetText()
	}
	for v := qr.Version(1); v <= 40; v++ {
		for _, l := range []qr.Level{qr.L, qr.M, qr.Q, qr.H} {
			t.Run(fmt.Sprintf("%d-%v", v, l), func(t *testing.T) {
				text := fill(qr.Capacity(v, l))
				c, err := qr.EncodeText(text, v, v, l)
				require.NoError(t, err)
				assert.Equal(t, text, read(t, c))
			})
		}
	}
	t.Run("empty", func(t *testing.T) {
		c, err := qr.EncodeText("", 1, 40, qr.M)
		require.NoError(t, err)
		assert.Equal(t, qr.Version(1), c.Version())
		assert.Empty(t, read(t, c))
	})
}

func TestTextRoundTrip(t *testing.T) {
	c, err := qr.EncodeText("half blocks", 1, 40, qr.Q)
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, EncodeUTF8(&b, c, Options{}))
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	side := c.Side()
	require.Len(t, lines, (side+1)/2)
	for i, line := range lines {
		cells := []rune(line)
		require.Len(t, cells, side, "line %d", i)
		for x, r := range cells {
			top := r == '▀' || r == '█'
			bottom := r == '▄' || r == '█'
			assert.Equal(t, c.Black(x, 2*i), top, "module %d,%d", x, 2*i)
			assert.Equal(t, c.Black(x, 2*i+1), bottom, "module %d,%d", x, 2*i+1)
		}
	}
}

func TestCodeFunctions(t *testing.T) {
	c, err := qr.EncodeText("overlay", 1, 1, qr.L)
	require.NoError(t, err)
	img, err := Image(c, Options{MinModule: 10, Functions: true})
	require.NoError(t, err)
	// Centre of the top left finder corner module.
	assert.Equal(t, markColor, color.RGBAModel.Convert(img.At(5, 5)))

	img, err = Image(c, Options{MinModule: 10, Path: true})
	require.NoError(t, err)
	at := func(x, y int) color.Color { return color.RGBAModel.Convert(img.At(x, y)) }
	// Placement starts in the bottom right corner and moves left.
	assert.Equal(t, pathColor, at(205, 205))
	assert.Equal(t, pathColor, at(200, 205))
	assert.Equal(t, pathColor, at(195, 205))
	assert.NotEqual(t, pathColor, at(35, 35), "finder is not on the path")
}
