// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// A Mask is a QR data mask pattern, 0 to 7.
type Mask int

// AutoMask selects the mask with the lowest penalty.
const AutoMask Mask = -1

func (m Mask) String() string {
	if m == AutoMask {
		return "auto"
	}
	return strconv.Itoa(int(m))
}

// Valid reports whether m is a mask pattern.
func (m Mask) Valid() bool { return 0 <= m && m < 8 }

// ParseMask parses a mask number or "auto".
func ParseMask(s string) (Mask, error) {
	if s == "auto" || s == "" {
		return AutoMask, nil
	}
	n, err := strconv.Atoi(s)
	if m := Mask(n); err == nil && m.Valid() {
		return m, nil
	}
	return 0, &ConfigError{Name: "mask", Value: s, Err: ErrMask}
}

// Invert reports whether mask m flips the data module at column x,
// row y.
func (m Mask) Invert(x, y int) bool { return maskFuncs[m](x, y) }

// Mask conditions.  x is the column, y the row.
var maskFuncs = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}
