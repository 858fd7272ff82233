// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/qrgen/qr/coding"
)

// ErrMismatch reports a symbol that reads back differently from what
// was encoded.
var ErrMismatch = errors.New("qr: symbol does not read back")

// Verify decodes c from its modules alone and checks that it carries
// payload, with the version, level and mask c reports.
func Verify(c *Code, payload []byte) error {
	s, err := coding.Decode(c.c)
	if err != nil {
		return fmt.Errorf("qr: verify: %w", err)
	}
	switch {
	case s.Version != c.Version():
		return fmt.Errorf("%w: version %s, want %s", ErrMismatch, s.Version, c.Version())
	case s.Level != c.Level():
		return fmt.Errorf("%w: level %s, want %s", ErrMismatch, s.Level, c.Level())
	case s.Mask != c.Mask():
		return fmt.Errorf("%w: mask %s, want %s", ErrMismatch, s.Mask, c.Mask())
	}
	want, err := c.charset.Transform(payload)
	if err != nil {
		return err
	}
	if !bytes.Equal(s.Data, want) {
		return fmt.Errorf("%w: %d data bytes differ from the %d given",
			ErrMismatch, len(s.Data), len(want))
	}
	return nil
}
