// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func raster(enc func(io.Writer, image.Image) error) func(io.Writer, Matrix, Options) error {
	return func(w io.Writer, m Matrix, o Options) error {
		img, err := Image(m, o)
		if err != nil {
			return err
		}
		return enc(w, img)
	}
}

var (
	encodePNG = raster(func(w io.Writer, img image.Image) error {
		e := png.Encoder{CompressionLevel: png.BestCompression}
		return e.Encode(w, img)
	})
	encodeGIF = raster(func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	})
	// Modules are large flat areas; high quality keeps edges sharp.
	encodeJPEG = raster(func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	})
	encodeBMP  = raster(bmp.Encode)
	encodeTIFF = raster(func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	})
)
