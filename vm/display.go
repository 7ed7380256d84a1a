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

package vm

// Default display size, in pixels.
const (
	DefaultDisplayWidth  = 640
	DefaultDisplayHeight = 480

	// BytesPerPixel is the number of VRAM bytes per pixel. Pixels are stored
	// in RGBA8888 little endian order, i.e. A, B, G, R.
	BytesPerPixel = 4
)

// Display is the sink for the frame buffer. The CPU calls Present on upd
// instructions, with fb holding at least BufferSize bytes.
//
// Present must return promptly. Displays that can fail are expected to track
// their own errors.
type Display interface {
	Size() (width, height int)
	Present(fb []byte, width, height int)
}

// BufferSize returns the frame buffer size in bytes for the display d.
func BufferSize(d Display) int {
	w, h := d.Size()
	return w * h * BytesPerPixel
}

// NullDisplay is a Display that discards frames. It only counts them.
type NullDisplay struct {
	Width, Height int
	Frames        int
}

// NewNullDisplay returns a NullDisplay of the default size.
func NewNullDisplay() *NullDisplay {
	return &NullDisplay{Width: DefaultDisplayWidth, Height: DefaultDisplayHeight}
}

// Size implements Display.
func (d *NullDisplay) Size() (int, int) { return d.Width, d.Height }

// Present implements Display.
func (d *NullDisplay) Present([]byte, int, int) { d.Frames++ }
