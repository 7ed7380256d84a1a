// This file is part of software-cpu - https://github.com/tralf-strues/software-cpu
//
// Copyright 2021 The software-cpu Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config handles softcpu.toml configuration shared by the assembler,
// cpu and disassembler commands.
//
// A typical configuration file:
//
//	[paths]
//	bytecode = "bin/bytecode.bcd"
//	disassembly = "bin/disassembly.asy"
//
//	[display]
//	mode = "term"	# none, term or png
//	width = 160
//	height = 90
//	output = "bin/frame.png"
//
//	[cpu]
//	max-instructions = 100000000
//	trace = false
//
//	[log]
//	verbosity = 1
//	file = ""
//
// Relative paths are relative to the directory holding the configuration
// file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileName is the name of configuration files.
const FileName = "softcpu.toml"

// Display modes.
const (
	DisplayNone = "none"
	DisplayTerm = "term"
	DisplayPNG  = "png"
)

// Config represents a softcpu.toml configuration.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Display Display `toml:"display"`
	CPU     CPU     `toml:"cpu"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the configuration file (set at load
	// time). It is empty for the default configuration.
	Dir string `toml:"-"`
}

// Paths configures default file locations.
type Paths struct {
	Bytecode    string `toml:"bytecode"`
	Disassembly string `toml:"disassembly"`
}

// Display configures the cpu display.
type Display struct {
	Mode   string `toml:"mode"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Output string `toml:"output"` // PNG file name
}

// CPU configures execution limits and tracing.
type CPU struct {
	MaxInstructions int64 `toml:"max-instructions"`
	Trace           bool  `toml:"trace"`
}

// Log configures logging.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Paths: Paths{
			Bytecode:    filepath.Join("bin", "bytecode.bcd"),
			Disassembly: filepath.Join("bin", "disassembly.asy"),
		},
		Display: Display{
			Mode:   DisplayNone,
			Width:  640,
			Height: 480,
			Output: filepath.Join("bin", "frame.png"),
		},
	}
}

// Load parses the configuration file at path. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}

	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, errors.Wrapf(err, "parse error in %s", path)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot resolve path %s", path)
	}
	if err = c.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a softcpu.toml file, then loads
// and returns it. Returns the default configuration if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch c.Display.Mode {
	case DisplayNone, DisplayTerm, DisplayPNG:
	default:
		return errors.Errorf("invalid display mode %q", c.Display.Mode)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return errors.Errorf("invalid display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.CPU.MaxInstructions < 0 {
		return errors.Errorf("negative instruction limit %d", c.CPU.MaxInstructions)
	}
	return nil
}

// Path returns p relative to the configuration directory. Absolute paths and
// empty strings are returned unchanged.
func (c *Config) Path(p string) string {
	if p == "" || c.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}
