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

//go:build !linux

package sci

import (
	"os"

	"github.com/pkg/errors"
)

// IsTerminal returns true if fd refers to a terminal. Terminal detection is
// not supported on this platform.
func IsTerminal(fd uintptr) bool {
	return false
}

// SetNoEcho is not supported on this platform.
func SetNoEcho(fd uintptr) (func(), error) {
	return nil, errors.New("terminal echo control not supported")
}

// ConsoleSize is not supported on this platform.
func ConsoleSize(f *os.File) (cols, rows int) {
	return 0, 0
}
