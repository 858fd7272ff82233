// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxLine bounds input lines; the largest symbol holds 2953 bytes.
const maxLine = 64 << 10

// bulk encodes each line of r into dir as qrcode_N.EXT, N counting
// lines from 0, with at most jobs symbols in progress.  Empty lines
// are skipped.  Lines that fail are logged and the run goes on; the
// error returned then counts them.  Cancelling ctx stops reading
// lines.
func (j *job) bulk(ctx context.Context, r io.Reader, dir string, jobs int) error {
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return err
	}
	var g errgroup.Group
	g.SetLimit(jobs)

	var done, failed atomic.Int64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), maxLine)
	n := 0
	for ; sc.Scan(); n++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			j.log.Debug("empty line skipped", zap.Int("line", n))
			continue
		}
		if ctx.Err() != nil {
			break
		}
		name := filepath.Join(dir, fmt.Sprintf("qrcode_%d%s", n, j.format.Ext))
		log := j.log.With(zap.Int("line", n))
		g.Go(func() error {
			log.Debug("encoding", zap.Int("bytes", len(line)))
			if err := j.writeFile(name, line); err != nil {
				log.Error("symbol failed", zap.Error(err))
				failed.Add(1)
				return nil
			}
			done.Add(1)
			log.Debug("written", zap.String("file", name))
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = sc.Err()
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return err
	}
	if f := failed.Load(); f != 0 {
		return fmt.Errorf("%d of %d symbols failed", f, f+done.Load())
	}
	j.log.Info("symbols written", zap.Int64("count", done.Load()), zap.String("dir", dir))
	return nil
}
