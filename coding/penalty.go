// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "math/bits"

// Penalty weights.
const (
	runMin   = 5  // N1: runs of at least 5 modules
	runDelta = -2 //     score run length minus 2
	boxP     = 3  // N2: each uniform 2×2 block
	finderP  = 40 // N3: each 1011101 with 4 light modules beside it
	balanceP = 10 // N4: per 5% step away from half dark
)

// Penalty returns the penalty value of c used for choosing the mask:
// the sum of
//
//   - for each row and column run of n ≥ 5 same-colour modules, n-2;
//   - for each 2×2 block of one colour, possibly overlapping, 3;
//   - for each dark-light-dark-dark-dark-light-dark sequence in a row or
//     column with 4 light modules before or after it, 40; modules
//     beyond the edge count as light;
//   - 10 for every full 5% the dark share is away from 50%.
func (c *Code) Penalty() int {
	siz := c.Size
	line := make([]bool, siz)
	p := 0
	for y := 0; y < siz; y++ {
		for x := range line {
			line[x] = c.black(x, y)
		}
		p += linePenalty(line)
	}
	for x := 0; x < siz; x++ {
		for y := range line {
			line[y] = c.black(x, y)
		}
		p += linePenalty(line)
	}

	// N2
	for y := 0; y+1 < siz; y++ {
		for x := 0; x+1 < siz; x++ {
			k := c.black(x, y)
			if c.black(x+1, y) == k && c.black(x, y+1) == k &&
				c.black(x+1, y+1) == k {
				p += boxP
			}
		}
	}

	// N4
	dark := 0
	for _, b := range c.Bitmap {
		dark += bits.OnesCount8(b)
	}
	total := siz * siz
	p += abs(2*dark-total) * 10 / total * balanceP
	return p
}

// linePenalty returns the run and finder-like penalties of one row or
// column.
func linePenalty(line []bool) int {
	p := 0
	run := 1
	for i := 1; i < len(line); i++ {
		if line[i] == line[i-1] {
			run++
			continue
		}
		if run >= runMin {
			p += run + runDelta
		}
		run = 1
	}
	if run >= runMin {
		p += run + runDelta
	}

	light := func(from, to int) bool {
		for i := max(from, 0); i < min(to, len(line)); i++ {
			if line[i] {
				return false
			}
		}
		return true
	}
	for i := 0; i+7 <= len(line); i++ {
		if line[i] && !line[i+1] && line[i+2] && line[i+3] && line[i+4] &&
			!line[i+5] && line[i+6] &&
			(light(i-4, i) || light(i+7, i+11)) {
			p += finderP
		}
	}
	return p
}
