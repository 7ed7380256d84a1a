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

// Package display provides vm.Display implementations.
//
// Frame buffers use 4 bytes per pixel, stored in A, B, G, R order (RGBA8888,
// little endian). All displays in this package ignore the alpha channel:
// pixels are rendered opaque.
package display

// rgb returns the color of pixel (x, y) in fb.
func rgb(fb []byte, width, x, y int) (r, g, b byte) {
	o := (y*width + x) * 4
	return fb[o+3], fb[o+2], fb[o+1]
}
