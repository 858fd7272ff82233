// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qrgen writes byte mode QR codes as images or text.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/qrgen/qr"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// A command is one invocation with its environment.
type command struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	environ        map[string]string
	tty            bool // stdout is a terminal
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := &command{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: env.ToMap(os.Environ()),
		tty:     isatty.IsTerminal(uintptr(syscall.Stdout)),
	}
	code := cmd.run(ctx, os.Args)
	stop()
	os.Exit(code)
}

// A usageError is a command line that does not parse.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// parse returns the settings: flags are parsed once to find the
// configuration file, then again over the file and environment.
func (c *command) parse(args []string) (*settings, []string, error) {
	var pre settings
	if err := newFlagSet(&pre).Getopt(args, nil); err != nil {
		return nil, nil, &usageError{err}
	}
	s, err := load(pre.Config, c.environ)
	if err != nil {
		return nil, nil, err
	}
	fs := newFlagSet(&s)
	if err := fs.Getopt(args, nil); err != nil {
		return nil, nil, &usageError{err}
	}
	if s.Help {
		printUsage(c.stdout, fs)
	}
	return &s, fs.Args(), nil
}

func (c *command) usage(err error) int {
	fmt.Fprintln(c.stderr, "qrgen:", err)
	var s settings
	printUsage(c.stderr, newFlagSet(&s))
	return exitUsage
}

func (c *command) run(ctx context.Context, args []string) int {
	s, rest, err := c.parse(args)
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		return c.usage(err)
	case err != nil:
		fmt.Fprintln(c.stderr, "qrgen:", err)
		return exitError
	case s.Help:
		return exitOK
	case s.Version:
		fmt.Fprintln(c.stdout, `qrgen version 0.1.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
		return exitOK
	}

	log := newLogger(c.stderr, s.Verbosity)
	defer log.Sync()

	j, err := s.job(log, c.tty)
	if err != nil {
		return c.usage(err)
	}
	if s.File != "" {
		if s.Data != "" || len(rest) != 0 {
			return c.usage(&usageError{errors.New("-f takes no data")})
		}
		err = c.bulk(ctx, j, s)
	} else {
		err = c.single(j, s, rest)
	}
	if err != nil {
		var ce *qr.ConfigError
		if errors.As(err, &ce) || errors.As(err, &ue) {
			return c.usage(err)
		}
		log.Error("failed", zap.Error(err))
		return exitError
	}
	return exitOK
}

func (c *command) bulk(ctx context.Context, j *job, s *settings) error {
	r := c.stdin
	if s.File != "-" {
		f, err := os.Open(s.File)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	dir := s.Output
	if dir == "" || dir == "-" {
		dir = "qrcodes"
	}
	return j.bulk(ctx, r, dir, s.Jobs)
}

func (c *command) single(j *job, s *settings, args []string) error {
	text := s.Data
	switch {
	case text != "":
		if len(args) != 0 {
			return &usageError{errors.New("both -d and arguments given")}
		}
	case len(args) != 0:
		text = strings.Join(args, " ")
	default:
		var b strings.Builder
		if _, err := io.Copy(&b, c.stdin); err != nil {
			return err
		}
		text, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if s.Output == "" || s.Output == "-" {
		return j.encode(c.stdout, text)
	}
	if err := j.writeFile(s.Output, text); err != nil {
		return err
	}
	j.log.Info("symbol written", zap.String("file", s.Output))
	return nil
}
