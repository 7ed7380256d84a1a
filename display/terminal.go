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

package display

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/tralf-strues/software-cpu/internal/sci"
)

const (
	escClear      = "\033[2J"
	escHome       = "\033[H"
	escHideCursor = "\033[?25l"
	escShowCursor = "\033[?25h"
	escReset      = "\033[0m"
	upperHalf     = "▀"
)

// Terminal renders frames on a 24 bit color terminal. Each character cell
// shows two vertically stacked pixels using the upper half block glyph.
// Frames larger than the console are downscaled to fit.
//
// Write errors are sticky: after the first one, Present does nothing and Err
// returns the error.
type Terminal struct {
	w             *sci.ErrWriter
	width, height int
	cols, rows    int
	buf           bytes.Buffer
	restore       func()
}

// NewTerminal returns a new Terminal of the given size writing to w. If w is
// an *os.File connected to a terminal, the cursor is hidden until Close is
// called. Echo is turned off as well, unless in, the program input, reads
// from that same terminal.
func NewTerminal(w io.Writer, in io.Reader, width, height int) (*Terminal, error) {
	t := &Terminal{w: sci.NewErrWriter(w), width: width, height: height}
	if f, ok := w.(*os.File); ok && sci.IsTerminal(f.Fd()) {
		t.cols, t.rows = sci.ConsoleSize(f)
		if !sameFile(f, in) {
			restore, err := sci.SetNoEcho(f.Fd())
			if err != nil {
				return nil, err
			}
			t.restore = restore
		}
	}
	io.WriteString(t.w, escHideCursor+escClear)
	return t, t.w.Err
}

// sameFile returns true if r is an *os.File referring to the same file as f.
func sameFile(f *os.File, r io.Reader) bool {
	g, ok := r.(*os.File)
	if !ok || g == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	gi, err := g.Stat()
	if err != nil {
		return false
	}
	return os.SameFile(fi, gi)
}

// Size implements vm.Display.
func (t *Terminal) Size() (int, int) { return t.width, t.height }

// Err returns the first write error, if any.
func (t *Terminal) Err() error { return t.w.Err }

// outSize returns the rendered size in pixels. A zero console size means no
// scaling.
func (t *Terminal) outSize(width, height int) (int, int) {
	ow, oh := width, height
	if t.cols > 0 && ow > t.cols {
		ow = t.cols
	}
	// keep the last line for the cursor
	if t.rows > 1 && oh > (t.rows-1)*2 {
		oh = (t.rows - 1) * 2
	}
	return ow, oh
}

func (t *Terminal) color(bg bool, r, g, b byte) {
	if bg {
		t.buf.WriteString("\033[48;2;")
	} else {
		t.buf.WriteString("\033[38;2;")
	}
	var n [3]byte
	t.buf.Write(strconv.AppendInt(n[:0], int64(r), 10))
	t.buf.WriteByte(';')
	t.buf.Write(strconv.AppendInt(n[:0], int64(g), 10))
	t.buf.WriteByte(';')
	t.buf.Write(strconv.AppendInt(n[:0], int64(b), 10))
	t.buf.WriteByte('m')
}

// Present implements vm.Display.
func (t *Terminal) Present(fb []byte, width, height int) {
	if t.w.Err != nil || width <= 0 || height <= 0 || len(fb) < width*height*4 {
		return
	}
	ow, oh := t.outSize(width, height)
	t.buf.Reset()
	t.buf.WriteString(escHome)
	for y := 0; y < oh; y += 2 {
		var fg, bg [3]byte
		first := true
		for x := 0; x < ow; x++ {
			sx := x * width / ow
			r, g, b := rgb(fb, width, sx, y*height/oh)
			var r2, g2, b2 byte
			if y+1 < oh {
				r2, g2, b2 = rgb(fb, width, sx, (y+1)*height/oh)
			}
			if first || fg != [3]byte{r, g, b} {
				t.color(false, r, g, b)
				fg = [3]byte{r, g, b}
			}
			if first || bg != [3]byte{r2, g2, b2} {
				t.color(true, r2, g2, b2)
				bg = [3]byte{r2, g2, b2}
			}
			first = false
			t.buf.WriteString(upperHalf)
		}
		t.buf.WriteString(escReset + "\n")
	}
	t.buf.WriteTo(t.w)
}

// Close shows the cursor and restores terminal settings. It returns the
// first write error, if any.
func (t *Terminal) Close() error {
	io.WriteString(t.w, escReset+escShowCursor)
	if t.restore != nil {
		t.restore()
		t.restore = nil
	}
	return t.w.Err
}
