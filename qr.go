// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes byte mode QR codes.

Encode picks the smallest version in a range that holds the payload at
the requested error correction level, builds the symbol and applies
the mask with the lowest penalty:

	c, err := qr.EncodeText("https://example.com/", 1, 40, qr.M)

The Code returned reports its modules through Side and Black, which
is all package render needs to draw it.
*/
package qr // import "github.com/qrgen/qr"

import (
	"go.uber.org/zap"

	"github.com/qrgen/qr/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// A Version is a QR version, 1 to 40.
type Version = coding.Version

// Version bounds.
const (
	MinVersion = coding.MinVersion
	MaxVersion = coding.MaxVersion
)

// A Mask is a QR data mask pattern.
type Mask = coding.Mask

// AutoMask selects the mask with the lowest penalty.
const AutoMask = coding.AutoMask

// A Charset selects the byte form of payload text.
type Charset = coding.Charset

// Charsets.
const (
	UTF8     = coding.UTF8
	Latin1   = coding.Latin1
	ShiftJIS = coding.ShiftJIS
)

// Errors.
type (
	EncodingError = coding.EncodingError
	CapacityError = coding.CapacityError
	ConfigError   = coding.ConfigError
	InternalError = coding.InternalError
)

var (
	ErrVersion = coding.ErrVersion
	ErrLevel   = coding.ErrLevel
	ErrMask    = coding.ErrMask
	ErrCharset = coding.ErrCharset
)

type config struct {
	mask    Mask
	boost   bool
	charset Charset
	log     *zap.Logger
}

// An Option modifies encoding.
type Option func(*config)

// WithMask forces mask m instead of searching for the lowest penalty.
func WithMask(m Mask) Option { return func(c *config) { c.mask = m } }

// WithLevelBoost raises the error correction level, once the version
// is chosen, to the highest level at which the payload still fits.
// The level is never lowered.
func WithLevelBoost() Option { return func(c *config) { c.boost = true } }

// WithCharset selects the byte form of the payload, UTF-8 by default.
func WithCharset(cs Charset) Option { return func(c *config) { c.charset = cs } }

// WithLogger sets a logger for debug records of version selection
// and mask evaluation.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{mask: AutoMask, charset: UTF8, log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Encode returns a QR code holding payload, UTF-8 text, in byte mode.
// It uses the smallest version between min and max with room for the
// payload at the given level.
func Encode(payload []byte, min, max Version, level Level, opts ...Option) (*Code, error) {
	cfg := newConfig(opts)
	if err := checkArgs(min, max, level, cfg); err != nil {
		return nil, err
	}
	seg := coding.Segment{Data: payload, Charset: cfg.charset}
	data, err := seg.Transform()
	if err != nil {
		return nil, err
	}
	v, err := SelectVersion(len(data), min, max, level)
	if err != nil {
		return nil, err
	}
	log := cfg.log.With(zap.Stringer("version", v))
	log.Debug("version selected",
		zap.Int("bytes", len(data)),
		zap.Int("bits", RequiredBits(len(data), v)),
		zap.Int("capacity", v.DataBits(level)),
		zap.Stringer("level", level))
	if cfg.boost {
		if l := boostLevel(len(data), v, level); l != level {
			log.Debug("level boosted", zap.Stringer("from", level), zap.Stringer("to", l))
			level = l
		}
	}

	e, err := coding.NewEncoder(v, level)
	if err != nil {
		return nil, err
	}
	if err := e.SetMask(cfg.mask); err != nil {
		return nil, err
	}
	bs := v.Blocks(level)
	log.Debug("block layout",
		zap.Stringer("level", level),
		zap.Int("blocks", bs.Blocks),
		zap.Int("short", bs.Short),
		zap.Int("data", bs.DataBytes),
		zap.Int("check", bs.CheckBytes))
	if log.Core().Enabled(zap.DebugLevel) {
		e.Penalty = func(m Mask, p int) {
			log.Debug("mask penalty", zap.Int("mask", int(m)), zap.Int("penalty", p))
		}
	}
	cc, err := e.Encode(seg)
	if err != nil {
		return nil, err
	}
	log.Debug("mask selected", zap.Stringer("mask", cc.Mask), zap.Bool("forced", cfg.mask != AutoMask))
	return &Code{c: cc, plan: e.Plan(), charset: cfg.charset}, nil
}

// EncodeText is Encode for a string payload.
func EncodeText(text string, min, max Version, level Level, opts ...Option) (*Code, error) {
	return Encode([]byte(text), min, max, level, opts...)
}

func checkArgs(min, max Version, level Level, cfg *config) error {
	switch {
	case !min.Valid():
		return &ConfigError{Name: "min version", Value: min.String(), Err: ErrVersion}
	case !max.Valid():
		return &ConfigError{Name: "max version", Value: max.String(), Err: ErrVersion}
	case min > max:
		return &ConfigError{Name: "version range", Value: min.String() + "-" + max.String(), Err: ErrVersion}
	case !level.Valid():
		return &ConfigError{Name: "level", Value: level.String(), Err: ErrLevel}
	case cfg.mask != AutoMask && !cfg.mask.Valid():
		return &ConfigError{Name: "mask", Value: cfg.mask.String(), Err: ErrMask}
	case !cfg.charset.Valid():
		return &ConfigError{Name: "charset", Value: cfg.charset.String(), Err: ErrCharset}
	}
	return nil
}

// A Code is a finished QR symbol.
type Code struct {
	c       *coding.Code
	plan    *coding.Plan
	charset Charset
}

// Side returns the number of modules on a side.
func (c *Code) Side() int { return c.c.Size }

// Black reports whether the module at column x, row y is dark.
// Modules outside the symbol are light.
func (c *Code) Black(x, y int) bool { return c.c.Black(x, y) }

// IsFunction reports whether the module at x, y is part of a function
// pattern or the format or version information.
func (c *Code) IsFunction(x, y int) bool { return c.plan.IsFunction(x, y) }

// Walk calls fn for each data module of c in the order bits are
// placed.
func (c *Code) Walk(fn func(x, y int)) { c.plan.Walk(fn) }

func (c *Code) Version() Version { return c.c.Version }
func (c *Code) Level() Level     { return c.c.Level }
func (c *Code) Mask() Mask       { return c.c.Mask }

// Charset returns the byte form of the payload in c.
func (c *Code) Charset() Charset { return c.charset }

// Penalty returns the mask penalty of c.
func (c *Code) Penalty() int { return c.c.Penalty() }

// Bitmap returns the packed module bitmap of c and its row stride in
// bytes.  The bitmap must not be modified.
func (c *Code) Bitmap() ([]byte, int) { return c.c.Bitmap, c.c.Stride }
