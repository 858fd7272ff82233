// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/qrgen/qr"
	"github.com/qrgen/qr/coding"
	"github.com/qrgen/qr/render"
)

var (
	errFormat = errors.New("unknown output type")
	errRange  = errors.New("out of range")
)

// A job is settings resolved for encoding and writing symbols.
type job struct {
	min, max qr.Version
	level    qr.Level
	opts     []qr.Option
	format   *render.Format
	render   render.Options
	check    bool
	log      *zap.Logger
}

func configErr(name string, v any, err error) error {
	var s string
	switch v := v.(type) {
	case string:
		s = v
	case int:
		s = strconv.Itoa(v)
	}
	return &qr.ConfigError{Name: name, Value: s, Err: err}
}

// job validates s.  The output type is Type, else taken from the
// output file suffix, else utf8 for a terminal and png otherwise.
func (s *settings) job(log *zap.Logger, tty bool) (*job, error) {
	j := &job{
		min:   qr.Version(s.MinVersion),
		max:   qr.Version(s.MaxVersion),
		check: s.Check,
		log:   log,
	}
	switch {
	case !j.min.Valid():
		return nil, configErr("min version", s.MinVersion, qr.ErrVersion)
	case !j.max.Valid():
		return nil, configErr("max version", s.MaxVersion, qr.ErrVersion)
	case j.min > j.max:
		return nil, configErr("version range", s.MinVersion, qr.ErrVersion)
	case s.Resolution < 0:
		return nil, configErr("resolution", s.Resolution, errRange)
	case s.MinModule < 1:
		return nil, configErr("min module", s.MinModule, errRange)
	case s.Border < 0:
		return nil, configErr("border", s.Border, errRange)
	case s.Jobs < 1:
		return nil, configErr("jobs", s.Jobs, errRange)
	}
	var err error
	if j.level, err = coding.ParseLevel(s.Level); err != nil {
		return nil, err
	}
	mask, err := coding.ParseMask(s.Mask)
	if err != nil {
		return nil, err
	}
	cs, err := coding.ParseCharset(s.Charset)
	if err != nil {
		return nil, err
	}
	j.opts = []qr.Option{qr.WithMask(mask), qr.WithCharset(cs), qr.WithLogger(log)}
	if s.Boost {
		j.opts = append(j.opts, qr.WithLevelBoost())
	}

	j.render = render.Options{
		Resolution: s.Resolution,
		MinModule:  s.MinModule,
		Border:     s.Border,
		Reverse:    s.Reverse,
		Functions:  s.Functions,
		Path:       s.Path,
	}
	if j.render.Foreground, err = parseColour(s.Foreground); err != nil {
		return nil, configErr("foreground", s.Foreground, err)
	}
	if j.render.Background, err = parseColour(s.Background); err != nil {
		return nil, configErr("background", s.Background, err)
	}

	switch {
	case s.Type != "":
		j.format = render.FormatFor(s.Type)
	case s.File == "" && s.Output != "" && s.Output != "-":
		if j.format = render.FormatFor(s.Output); j.format == nil {
			j.format = render.FormatFor("png")
		}
	case s.File == "" && s.Output == "" && tty:
		j.format = render.FormatFor("utf8")
	default:
		j.format = render.FormatFor("png")
	}
	if j.format == nil {
		return nil, configErr("type", s.Type, errFormat)
	}
	return j, nil
}

// encode writes a symbol holding text to w.
func (j *job) encode(w io.Writer, text string) error {
	c, err := qr.EncodeText(text, j.min, j.max, j.level, j.opts...)
	if err != nil {
		return err
	}
	if j.check {
		if err := qr.Verify(c, []byte(text)); err != nil {
			return err
		}
		j.log.Debug("symbol verified")
	}
	if scale := j.render.Scale(c.Side()); j.render.Resolution > 0 &&
		scale*(c.Side()+2*j.render.Border) > j.render.Resolution {
		j.log.Debug("resolution raised",
			zap.Int("requested", j.render.Resolution),
			zap.Int("pixels", scale*(c.Side()+2*j.render.Border)))
	}
	return j.format.Encode(w, c, j.render)
}

// writeFile writes a symbol holding text to the file name.
func (j *job) writeFile(name, text string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := j.encode(f, text); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	return f.Close()
}
