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
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSameFile(t *testing.T) {
	dir := t.TempDir()
	open := func(name string) *os.File {
		t.Helper()
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_RDWR|os.O_CREATE, 0644)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { f.Close() })
		return f
	}
	out := open("tty")
	var nilFile *os.File
	tests := []struct {
		name string
		in   io.Reader
		exp  bool
	}{
		{"same", open("tty"), true},
		{"other", open("input"), false},
		{"not_a_file", strings.NewReader("1 2"), false},
		{"nil", nil, false},
		{"nil_file", nilFile, false},
	}
	for _, test := range tests {
		if got := sameFile(out, test.in); got != test.exp {
			t.Errorf("%s: expected %v, got %v", test.name, test.exp, got)
		}
	}
}
