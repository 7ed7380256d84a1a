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

import (
	"io"
	"strings"
	"testing"
)

type closeCounter struct {
	io.Reader
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestMultiReader_read(t *testing.T) {
	bottom := &closeCounter{Reader: strings.NewReader("bottom")}
	top := &closeCounter{Reader: strings.NewReader("top ")}
	var mr multiReader
	mr.pushReader(bottom)
	mr.pushReader(top)

	r, _, err := mr.ReadRune()
	if err != nil || r != 't' {
		t.Fatalf("ReadRune: got %q, %v", r, err)
	}
	if err = mr.UnreadRune(); err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(&mr)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "top bottom" {
		t.Errorf("expected %q, got %q", "top bottom", b)
	}
	if top.closed != 1 || bottom.closed != 1 {
		t.Errorf("readers closed %d and %d times", top.closed, bottom.closed)
	}
	if n, err := mr.Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Errorf("Read after EOF: %d, %v", n, err)
	}
	if err = mr.UnreadRune(); err == nil {
		t.Error("UnreadRune after Read succeeded")
	}
}
