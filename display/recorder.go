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

// Recorder is a display that keeps a copy of every presented frame.
type Recorder struct {
	Width, Height int
	Frames        [][]byte
}

// Size implements vm.Display.
func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

// Present implements vm.Display.
func (r *Recorder) Present(fb []byte, width, height int) {
	n := width * height * 4
	if n > len(fb) {
		n = len(fb)
	}
	r.Frames = append(r.Frames, append([]byte(nil), fb[:n]...))
}

// Last returns the latest frame, or nil.
func (r *Recorder) Last() []byte {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}
