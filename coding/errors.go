// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrMask    = errors.New("qr: invalid mask")
	ErrCharset = errors.New("qr: invalid charset")

	// Decoding errors.
	ErrFormat   = errors.New("qr: unreadable format information")
	ErrChecksum = errors.New("qr: error correction mismatch")
	ErrData     = errors.New("qr: malformed data segment")
)

// EncodingError reports payload text that cannot be represented in
// the byte form of a charset.
type EncodingError struct {
	Charset Charset
	Offset  int  // byte offset of the offending rune in the payload
	Rune    rune // utf8.RuneError for invalid UTF-8
	Invalid bool // payload is not valid UTF-8 at Offset
}

func (e *EncodingError) Error() string {
	if e.Invalid {
		return fmt.Sprintf("qr: invalid UTF-8 at byte %d", e.Offset)
	}
	return fmt.Sprintf("qr: %U at byte %d not encodable in %s",
		e.Rune, e.Offset, e.Charset)
}

// CapacityError reports data too long for every version in the
// allowed range at the requested level.
type CapacityError struct {
	Bits     int // required data bits
	Capacity int // data bits of Max at Level
	Min, Max Version
	Level    Level
}

func (e *CapacityError) Error() string {
	vs := "version " + e.Max.String()
	if e.Min != e.Max {
		vs = "versions " + e.Min.String() + "-" + e.Max.String()
	}
	return fmt.Sprintf("qr: %d bits do not fit %s at level %s (at most %d bits)",
		e.Bits, vs, e.Level, e.Capacity)
}

// ConfigError reports an invalid parameter.  Err is one of ErrVersion,
// ErrLevel, ErrMask or ErrCharset.
type ConfigError struct {
	Name  string // parameter name
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %q", e.Err, e.Name, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InternalError reports a broken invariant of the encoder.
// It indicates a bug, not bad input.
type InternalError struct {
	Op  string
	Msg string
}

func (e *InternalError) Error() string {
	return "qr: internal error in " + e.Op + ": " + e.Msg
}

func internalErr(op, format string, args ...any) error {
	return &InternalError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
