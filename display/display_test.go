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

package display_test

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/tralf-strues/software-cpu/asm"
	"github.com/tralf-strues/software-cpu/display"
	"github.com/tralf-strues/software-cpu/vm"
)

// red pixel at (0, 0), blue pixel at (0, 1), in a 2x2 frame.
var frame = []byte{
	0xff, 0x00, 0x00, 0xff, 0, 0, 0, 0,
	0xff, 0xff, 0x00, 0x00, 0, 0, 0, 0,
}

// same frame, drawn by a program.
const drawFrame = `
	push 255
	pop [1024]	; A
	push 255
	pop [1027]	; R
	push 255
	pop [1032]	; A
	push 255
	pop [1033]	; B
	upd
	hlt
`

func run(t *testing.T, code string, d vm.Display) {
	t.Helper()
	program, err := asm.Assemble(t.Name(), strings.NewReader(code))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	i, err := vm.New(program, vm.WithDisplay(d))
	if err != nil {
		t.Fatal(err)
	}
	if err = i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
}

func TestRecorder(t *testing.T) {
	r := &display.Recorder{Width: 2, Height: 2}
	if r.Last() != nil {
		t.Error("Last() != nil")
	}
	run(t, drawFrame, r)
	if len(r.Frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(r.Frames))
	}
	if !bytes.Equal(r.Last(), frame) {
		t.Errorf("Expected\n% x\nGot\n% x", frame, r.Last())
	}
}

func TestTerminal(t *testing.T) {
	var b bytes.Buffer
	term, err := display.NewTerminal(&b, nil, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	run(t, drawFrame, term)
	if err = term.Close(); err != nil {
		t.Fatal(err)
	}
	exp := "\033[?25l\033[2J" +
		"\033[H\033[38;2;255;0;0m\033[48;2;0;0;255m▀\033[38;2;0;0;0m\033[48;2;0;0;0m▀\033[0m\n" +
		"\033[0m\033[?25h"
	if b.String() != exp {
		t.Errorf("Expected\n%q\nGot\n%q", exp, b.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestTerminal_stickyError(t *testing.T) {
	term, err := display.NewTerminal(failWriter{}, nil, 2, 2)
	if err == nil {
		t.Fatal("no error")
	}
	term.Present(frame, 2, 2)
	if term.Err() != err {
		t.Errorf("error changed: %v", term.Err())
	}
	if cerr := term.Close(); cerr != err {
		t.Errorf("Close: expected %v, got %v", err, cerr)
	}
}

func TestPNG(t *testing.T) {
	name := filepath.Join(t.TempDir(), "frame.png")
	p := display.NewPNG(name, 2, 2)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("file written without frames: %v", err)
	}

	run(t, drawFrame, p)
	if p.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", p.Frames())
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y int
		c    color.NRGBA
	}{
		{0, 0, color.NRGBA{0xff, 0, 0, 0xff}},
		{1, 0, color.NRGBA{0, 0, 0, 0xff}},
		{0, 1, color.NRGBA{0, 0, 0xff, 0xff}},
	}
	for _, test := range tests {
		got := color.NRGBAModel.Convert(img.At(test.x, test.y)).(color.NRGBA)
		if got != test.c {
			t.Errorf("pixel (%d, %d): expected %v, got %v", test.x, test.y, test.c, got)
		}
	}
}
