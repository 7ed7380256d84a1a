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
	"bufio"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// PNG is a display that keeps the latest frame and writes it to a PNG file
// when closed.
type PNG struct {
	Name          string // output file name
	width, height int
	frame         *image.NRGBA
	frames        int
}

// NewPNG returns a new PNG display of the given size that will write to file
// name.
func NewPNG(name string, width, height int) *PNG {
	return &PNG{Name: name, width: width, height: height}
}

// Size implements vm.Display.
func (p *PNG) Size() (int, int) { return p.width, p.height }

// Frames returns the number of frames presented so far.
func (p *PNG) Frames() int { return p.frames }

// Present implements vm.Display.
func (p *PNG) Present(fb []byte, width, height int) {
	if width <= 0 || height <= 0 || len(fb) < width*height*4 {
		return
	}
	if p.frame == nil || p.frame.Rect.Dx() != width || p.frame.Rect.Dy() != height {
		p.frame = image.NewNRGBA(image.Rect(0, 0, width, height))
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := rgb(fb, width, x, y)
			p.frame.SetNRGBA(x, y, color.NRGBA{r, g, b, 0xff})
		}
	}
	p.frames++
}

// Image returns the latest frame, or nil if no frame was presented.
func (p *PNG) Image() image.Image {
	if p.frame == nil {
		return nil
	}
	return p.frame
}

// Close writes the latest frame to the output file. If no frame was
// presented, no file is written. The file is removed if it cannot be written
// completely.
func (p *PNG) Close() (err error) {
	if p.frame == nil {
		return nil
	}
	f, err := os.Create(p.Name)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(p.Name)
		}
	}()
	return errors.Wrap(png.Encode(w, p.frame), "encode failed")
}
