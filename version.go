// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import "github.com/qrgen/qr/coding"

// terminatorBits is the full terminator counted when sizing.
const terminatorBits = 4

// RequiredBits returns the data bits needed for n payload bytes in
// version v: mode indicator, count field, the bytes and a full
// terminator.
func RequiredBits(n int, v Version) int {
	return coding.EncodedBits(n, v) + terminatorBits
}

// Capacity returns the largest payload in bytes that version v holds
// at level l.
func Capacity(v Version, l Level) int {
	n := (v.DataBits(l) - RequiredBits(0, v)) / 8
	if max := 1<<v.CountBits() - 1; n > max {
		n = max
	}
	return n
}

// SelectVersion returns the smallest version between min and max
// whose data capacity at level l fits n payload bytes.  It returns a
// CapacityError if none does.
func SelectVersion(n int, min, max Version, l Level) (Version, error) {
	if !min.Valid() || !max.Valid() || min > max {
		return 0, &ConfigError{Name: "version range", Value: min.String() + "-" + max.String(), Err: ErrVersion}
	}
	if !l.Valid() {
		return 0, &ConfigError{Name: "level", Value: l.String(), Err: ErrLevel}
	}
	for v := min; v <= max; v++ {
		if RequiredBits(n, v) <= v.DataBits(l) && n < 1<<v.CountBits() {
			return v, nil
		}
	}
	return 0, &CapacityError{
		Bits:     RequiredBits(n, max),
		Capacity: max.DataBits(l),
		Min:      min,
		Max:      max,
		Level:    l,
	}
}

// boostLevel returns the highest level, not below l, at which n
// payload bytes fit version v.
func boostLevel(n int, v Version, l Level) Level {
	for b := H; b > l; b-- {
		if RequiredBits(n, v) <= v.DataBits(b) {
			return b
		}
	}
	return l
}
