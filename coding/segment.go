// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// A Charset selects the byte form of payload text in byte mode.
type Charset int

// Predefined charsets.
const (
	UTF8     Charset = iota // bytes as given, validated as UTF-8
	Latin1                  // UTF-8 text encoded as ISO 8859-1
	ShiftJIS                // UTF-8 text encoded as Shift JIS
)

var charsetNames = [...]string{
	UTF8:     "utf-8",
	Latin1:   "iso-8859-1",
	ShiftJIS: "shift-jis",
}

func (c Charset) String() string {
	if c.Valid() {
		return charsetNames[c]
	}
	return "charset(" + strconv.Itoa(int(c)) + ")"
}

// Valid reports whether c is a predefined charset.
func (c Charset) Valid() bool { return UTF8 <= c && c <= ShiftJIS }

// ParseCharset parses a charset name, ignoring case.  Aliases
// "utf8", "latin1", "latin-1", "sjis" and "shiftjis" are accepted.
func ParseCharset(s string) (Charset, error) {
	switch strings.ToLower(s) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "iso-8859-1", "latin1", "latin-1":
		return Latin1, nil
	case "shift-jis", "shift_jis", "shiftjis", "sjis":
		return ShiftJIS, nil
	}
	return 0, &ConfigError{Name: "charset", Value: s, Err: ErrCharset}
}

// Transform returns text converted to the byte form of c.  It fails
// with an EncodingError if text is not valid UTF-8 or holds a rune c
// cannot represent.
func (c Charset) Transform(text []byte) ([]byte, error) {
	if !c.Valid() {
		return nil, &ConfigError{Name: "charset", Value: c.String(), Err: ErrCharset}
	}
	for i := 0; i < len(text); {
		r, sz := utf8.DecodeRune(text[i:])
		if r == utf8.RuneError && sz <= 1 {
			return nil, &EncodingError{Charset: c, Offset: i, Rune: r, Invalid: true}
		}
		i += sz
	}
	switch c {
	case Latin1:
		out := make([]byte, 0, len(text))
		for i, r := range string(text) {
			b, ok := charmap.ISO8859_1.EncodeRune(r)
			if !ok {
				return nil, &EncodingError{Charset: c, Offset: i, Rune: r}
			}
			out = append(out, b)
		}
		return out, nil
	case ShiftJIS:
		out, err := japanese.ShiftJIS.NewEncoder().Bytes(text)
		if err == nil {
			return out, nil
		}
		// locate the rune
		enc := japanese.ShiftJIS.NewEncoder()
		for i, r := range string(text) {
			if _, err := enc.String(string(r)); err != nil {
				return nil, &EncodingError{Charset: c, Offset: i, Rune: r}
			}
		}
		return nil, &EncodingError{Charset: c, Offset: len(text)}
	}
	return text, nil
}

// Decode returns b, the byte form of text in c, converted back to
// UTF-8.
func (c Charset) Decode(b []byte) ([]byte, error) {
	switch c {
	case Latin1:
		return charmap.ISO8859_1.NewDecoder().Bytes(b)
	case ShiftJIS:
		return japanese.ShiftJIS.NewDecoder().Bytes(b)
	case UTF8:
		return b, nil
	}
	return nil, &ConfigError{Name: "charset", Value: c.String(), Err: ErrCharset}
}

// A Segment describes a byte mode QR code segment.
type Segment struct {
	Data    []byte  // UTF-8 text to encode
	Charset Charset // byte form of Data in the symbol
}

// byteIndicator is the 4 bit mode indicator of byte mode.
const byteIndicator = 0b0100

// HeaderBits returns the length in bits of the mode indicator and
// character count field of a byte mode segment in version v.
func HeaderBits(v Version) int { return 4 + v.CountBits() }

// EncodedBits returns the length in bits of n payload bytes encoded
// as a byte mode segment in version v, header included.
func EncodedBits(n int, v Version) int { return HeaderBits(v) + 8*n }

// Transform returns the payload bytes of seg as they are stored.
func (seg Segment) Transform() ([]byte, error) {
	return seg.Charset.Transform(seg.Data)
}

// Encode writes seg encoded for version v to b: indicator, count and
// the transformed bytes.
func (seg Segment) Encode(b *Bits, v Version) error {
	data, err := seg.Transform()
	if err != nil {
		return err
	}
	// A count overflowing its field also overflows every level's
	// capacity, which Encoder.Code reports.
	b.Write(byteIndicator, 4)
	b.Write(uint32(len(data)), v.CountBits())
	b.WriteBytes(data)
	return nil
}
