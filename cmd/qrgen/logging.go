// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a console logger writing to w.  Verbosity 0 logs
// at Info, 1 at Debug, 2 and above also adds the caller.
func newLogger(w io.Writer, verbosity int) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = ""
	level := zapcore.InfoLevel
	if verbosity > 0 {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec),
		zapcore.Lock(zapcore.AddSync(w)), level)
	var opts []zap.Option
	if verbosity > 1 {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...)
}
