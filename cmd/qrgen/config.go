// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// envPrefix prefixes environment variables, QRGEN_LEVEL etc.
const envPrefix = "QRGEN_"

// settings hold everything the command line can set.  Later layers
// override earlier ones: defaults, the configuration file, the
// environment and finally flags.
type settings struct {
	Output     string `toml:"output" env:"OUTPUT"`
	Type       string `toml:"type" env:"TYPE"`
	Resolution int    `toml:"resolution" env:"RESOLUTION"`
	MinModule  int    `toml:"min_module" env:"MIN_MODULE"`
	Border     int    `toml:"border" env:"BORDER"`
	MinVersion int    `toml:"min_version" env:"MIN_VERSION"`
	MaxVersion int    `toml:"max_version" env:"MAX_VERSION"`
	Level      string `toml:"level" env:"LEVEL"`
	Boost      bool   `toml:"boost" env:"BOOST"`
	Mask       string `toml:"mask" env:"MASK"`
	Charset    string `toml:"charset" env:"CHARSET"`
	Foreground string `toml:"foreground" env:"FOREGROUND"`
	Background string `toml:"background" env:"BACKGROUND"`
	Reverse    bool   `toml:"reverse" env:"REVERSE"`
	Functions  bool   `toml:"functions" env:"FUNCTIONS"`
	Path       bool   `toml:"path" env:"PATH"`
	Check      bool   `toml:"check" env:"CHECK"`
	Jobs       int    `toml:"jobs" env:"JOBS"`
	Verbosity  int    `toml:"verbosity" env:"VERBOSITY"`

	// Command line only.
	Data    string `toml:"-"`
	File    string `toml:"-"`
	Config  string `toml:"-"`
	Help    bool   `toml:"-"`
	Version bool   `toml:"-"`
}

func defaults() settings {
	return settings{
		Resolution: 300,
		MinModule:  10,
		Border:     2,
		MinVersion: 1,
		MaxVersion: 40,
		Level:      "M",
		Mask:       "auto",
		Charset:    "utf-8",
		Jobs:       runtime.NumCPU(),
	}
}

// loadFile overlays the TOML file at path on s.  Unknown keys are an
// error.
func loadFile(path string, s *settings) error {
	meta, err := toml.DecodeFile(path, s)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if u := meta.Undecoded(); len(u) != 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// loadEnv overlays QRGEN_* variables from environ on s.
func loadEnv(s *settings, environ map[string]string) error {
	err := env.ParseWithOptions(s, env.Options{
		Prefix:      envPrefix,
		Environment: environ,
	})
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// load returns the settings from defaults, the configuration file
// and environ.  The file is path if set, otherwise QRGEN_CONFIG.
func load(path string, environ map[string]string) (settings, error) {
	s := defaults()
	if path == "" {
		path = environ[envPrefix+"CONFIG"]
	}
	if path != "" {
		if err := loadFile(path, &s); err != nil {
			return s, err
		}
	}
	err := loadEnv(&s, environ)
	return s, err
}
