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

package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tralf-strues/software-cpu/display"
	"github.com/tralf-strues/software-cpu/internal/config"
	"github.com/tralf-strues/software-cpu/vm"
)

// newDisplay returns the display for the given mode and a function to call
// upon exit, which may be nil.
func newDisplay(cfg *config.Config, mode string) (vm.Display, func() error, error) {
	w, h := cfg.Display.Width, cfg.Display.Height
	switch mode {
	case config.DisplayNone:
		return &vm.NullDisplay{Width: w, Height: h}, nil, nil
	case config.DisplayTerm:
		t, err := display.NewTerminal(os.Stdout, os.Stdin, w, h)
		if err != nil {
			return nil, nil, err
		}
		return t, t.Close, nil
	case config.DisplayPNG:
		name := cfg.Path(cfg.Display.Output)
		if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			return nil, nil, errors.Wrap(err, "create display output directory")
		}
		p := display.NewPNG(name, w, h)
		return p, p.Close, nil
	default:
		return nil, nil, errors.Errorf("invalid display mode %q", mode)
	}
}
