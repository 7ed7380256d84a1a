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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tralf-strues/software-cpu/internal/config"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[paths]
bytecode = "out/prog.bcd"

[display]
mode = "png"
width = 32
height = 16

[cpu]
max-instructions = 1000
trace = true

[log]
verbosity = 2
`)
	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if c.Paths.Bytecode != "out/prog.bcd" {
		t.Errorf("bytecode: %q", c.Paths.Bytecode)
	}
	// not in the file, default kept
	if c.Paths.Disassembly != filepath.Join("bin", "disassembly.asy") {
		t.Errorf("disassembly: %q", c.Paths.Disassembly)
	}
	if c.Display.Mode != config.DisplayPNG || c.Display.Width != 32 || c.Display.Height != 16 {
		t.Errorf("display: %+v", c.Display)
	}
	if c.CPU.MaxInstructions != 1000 || !c.CPU.Trace {
		t.Errorf("cpu: %+v", c.CPU)
	}
	if c.Log.Verbosity != 2 {
		t.Errorf("log: %+v", c.Log)
	}
	abs, _ := filepath.Abs(dir)
	if got := c.Path(c.Paths.Bytecode); got != filepath.Join(abs, "out", "prog.bcd") {
		t.Errorf("Path: got %q", got)
	}
	if got := c.Path("/tmp/x"); got != "/tmp/x" {
		t.Errorf("Path: absolute path changed to %q", got)
	}
}

func TestLoad_errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[paths\n"},
		{"unknown_key", "[cpu]\nspeed = 3\n"},
		{"bad_mode", "[display]\nmode = \"sdl\"\n"},
		{"bad_size", "[display]\nwidth = 0\n"},
		{"bad_limit", "[cpu]\nmax-instructions = -1\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), test.content)
			if _, err := config.Load(path); err == nil {
				t.Error("no error")
			}
		})
	}
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("no error on missing file")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[display]\nmode = \"term\"\n")
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	c, err := config.FindAndLoad(sub)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if c.Display.Mode != config.DisplayTerm {
		t.Errorf("config not found from subdirectory, mode = %q", c.Display.Mode)
	}
	abs, _ := filepath.Abs(root)
	if c.Dir != abs {
		t.Errorf("Dir: expected %q, got %q", abs, c.Dir)
	}
}

func TestDefault(t *testing.T) {
	c := config.Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Dir != "" || c.Path("bin/x") != "bin/x" {
		t.Error("default configuration paths must be relative to the working directory")
	}
}
