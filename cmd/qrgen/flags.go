// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pborman/getopt/v2"

	"github.com/qrgen/qr/render"
)

// counter counts occurrences of a flag.
type counter struct{ n *int }

func (c counter) String() string                  { return strconv.Itoa(*c.n) }
func (c counter) Set(string, getopt.Option) error { *c.n++; return nil }

// newFlagSet returns the command line flags bound to s.  Values
// already in s are the defaults.
func newFlagSet(s *settings) *getopt.Set {
	fs := getopt.New()
	fs.SetProgram("qrgen")
	fs.FlagLong(&s.Help, "help", 'h', "show this help")
	fs.FlagLong(&s.Version, "version", 'V', "print version and copyright")
	fs.FlagLong(&s.Data, "data", 'd', "data to encode; "+
		"without -d the arguments, or else standard input, are encoded", "string")
	fs.FlagLong(&s.Output, "output", 'o', `output file, or "-" for `+
		`standard output; with -f, the output directory [qrcodes]`, "file")
	fs.FlagLong(&s.File, "file", 'f', `encode each line of file `+
		`("-" for standard input) as qrcode_N.EXT in the output directory`, "file")
	fs.FlagLong(&s.Config, "config", 'c', "TOML configuration file; "+
		envPrefix+"CONFIG if not given", "file")
	fs.FlagLong(&s.Type, "type", 't', `output format, one of: `+
		strings.Join(render.Formats(), ", ")+`; `+
		`default from the -o suffix, or utf8 if standard output `+
		`is a terminal, otherwise png`, "type")
	fs.FlagLong(&s.Resolution, "resolution", 'r',
		"target image side in pixels", "pixels")
	fs.FlagLong(&s.MinModule, "min-module", 's',
		"minimum pixels (type eps: points) per module", "pixels")
	fs.FlagLong(&s.Border, "border", 'z', "quiet zone in modules", "modules")
	fs.FlagLong(&s.MinVersion, "min-version", 'm', "smallest QR version", "1-40")
	fs.FlagLong(&s.MaxVersion, "max-version", 'M', "largest QR version", "1-40")
	fs.FlagLong(&s.Level, "level", 'l',
		"minimum error correction level, lowest to highest", "l|m|q|h")
	fs.FlagLong(&s.Boost, "boost", 'b',
		"raise the level as far as the chosen version allows")
	fs.FlagLong(&s.Mask, "mask", 'k', `mask pattern, or "auto" `+
		`for the lowest penalty`, "0-7|auto")
	fs.FlagLong(&s.Charset, "charset", 'e',
		"byte form of the data", "utf-8|latin1|shift-jis")
	fs.FlagLong(&s.Foreground, "foreground", 'F', `foreground colour `+
		`as 3, 4, 6 or 8 hex digits or SVG colour name; `+
		`not for types pbm, utf8 and ascii`, "RGB[A]|name")
	fs.FlagLong(&s.Background, "background", 'B', `background colour; see -F`,
		"RGB[A]|name")
	fs.FlagLong(&s.Reverse, "reverse", 'i', "swap foreground and background")
	fs.FlagLong(&s.Functions, "functions", 'x',
		"mark function modules; raster types only")
	fs.FlagLong(&s.Path, "path", 'P',
		"draw the data placement order; raster types only")
	fs.FlagLong(&s.Check, "check", 'C', "decode each symbol before writing it")
	fs.FlagLong(&s.Jobs, "jobs", 'j', "symbols generated at once with -f", "n")
	fs.FlagLong(counter{&s.Verbosity}, "verbose", 'v',
		"log more; -vv adds source locations").SetFlag()
	return fs
}

func printUsage(w io.Writer, fs *getopt.Set) {
	fmt.Fprint(w, "QR code generator\nUsage: ", fs.Program(), " ",
		fs.UsageLine(), " [string ...]", `
Data is taken from -d, the arguments, or standard input with the final
newline stripped.  Settings come from the configuration file, then
`+envPrefix+`* environment variables, then flags.

`)
	fs.PrintOptions(w)
}
