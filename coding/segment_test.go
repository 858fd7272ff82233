// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsWrite(t *testing.T) {
	b := NewBits(1)
	b.Write(0b101, 3)
	b.Write(0xfff, 12)
	b.Write(0, 1)
	b.Write(0xdeadbeef, 32)
	assert.Equal(t, 48, b.Bits())
	assert.Equal(t, []byte{0xbf, 0xfe, 0xde, 0xad, 0xbe, 0xef}, b.Bytes())

	b.Reset()
	b.Write(1, 1)
	assert.Panics(t, func() { b.Bytes() })
	b.WriteBytes([]byte{0xff})
	b.Write(0, 7)
	assert.Equal(t, []byte{0xff, 0x80}, b.Bytes())
}

func TestBitStream(t *testing.T) {
	s := NewBitStream([]byte{0xa5, 0x0f})
	v, ok := s.Read(4)
	assert.True(t, ok)
	assert.Equal(t, uint32(0xa), v)
	v, _ = s.Read(8)
	assert.Equal(t, uint32(0x50), v)
	assert.Equal(t, 4, s.Remaining())
	_, ok = s.Read(5)
	assert.False(t, ok)
	assert.Equal(t, byte(1), s.Next())
}

func TestSegmentEncode(t *testing.T) {
	b := NewBits(10)
	require.NoError(t, Segment{Data: []byte("Hi")}.Encode(b, 10))
	// 0100, 16 bit count 2, 'H', 'i'
	assert.Equal(t, 4+16+16, b.Bits())
	assert.Equal(t, []byte{0x40, 0x00, 0x24, 0x86, 0x90}, b.b)
	assert.Equal(t, 36, EncodedBits(2, 10))
	assert.Equal(t, 12, HeaderBits(9))
}

func TestCharsets(t *testing.T) {
	for _, tt := range []struct {
		c    Charset
		in   string
		want []byte
	}{
		{UTF8, "café", []byte("café")},
		{Latin1, "café", []byte{'c', 'a', 'f', 0xe9}},
		{ShiftJIS, "日本", []byte{0x93, 0xfa, 0x96, 0x7b}},
		{Latin1, "", []byte{}},
	} {
		got, err := tt.c.Transform([]byte(tt.in))
		require.NoError(t, err, tt.c)
		assert.Equal(t, tt.want, got, tt.c)
		back, err := tt.c.Decode(got)
		require.NoError(t, err)
		assert.Equal(t, tt.in, string(back))
	}

	var ee *EncodingError
	_, err := Latin1.Transform([]byte("ab日"))
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.Offset)
	assert.Equal(t, '日', ee.Rune)
	assert.False(t, ee.Invalid)

	_, err = ShiftJIS.Transform([]byte("x😀"))
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 1, ee.Offset)
	assert.Equal(t, '😀', ee.Rune)

	_, err = UTF8.Transform([]byte("ok\xc3"))
	require.ErrorAs(t, err, &ee)
	assert.True(t, ee.Invalid)
	assert.Equal(t, 2, ee.Offset)

	_, err = Charset(9).Transform(nil)
	assert.ErrorIs(t, err, ErrCharset)
}
