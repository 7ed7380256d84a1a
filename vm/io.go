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
	"bufio"
	"fmt"
	"io"
)

type source struct {
	io.RuneScanner
	r io.Reader // underlying reader, closed when exhausted
}

// multiReader reads runes from a stack of readers, top first. fmt.Fscan needs
// UnreadRune to stop right after a number, so readers are wrapped into
// bufio.Readers unless they are already io.RuneScanners.
type multiReader struct {
	sources []source
	last    io.RuneScanner
}

func newSource(r io.Reader) source {
	rs, ok := r.(io.RuneScanner)
	if !ok {
		rs = bufio.NewReader(r)
	}
	return source{rs, r}
}

func (mr *multiReader) ReadRune() (r rune, size int, err error) {
	for len(mr.sources) > 0 {
		s := mr.sources[0]
		r, size, err = s.ReadRune()
		if size > 0 || err != io.EOF {
			if err == io.EOF {
				err = nil
			}
			mr.last = s.RuneScanner
			return r, size, err
		}
		// discard the reader and optionally close it
		if c, ok := s.r.(io.Closer); ok {
			c.Close()
		}
		mr.sources = mr.sources[1:]
	}
	mr.last = nil
	return 0, 0, io.EOF
}

// Read reads from the top reader. Exhausted readers are discarded and closed
// until one returns data or all are done.
func (mr *multiReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(mr.sources) > 0 {
		s := mr.sources[0]
		r, ok := s.RuneScanner.(io.Reader)
		if !ok {
			r = s.r
		}
		n, err = r.Read(p)
		if n > 0 || err != io.EOF {
			if err == io.EOF {
				err = nil
			}
			mr.last = nil
			return n, err
		}
		if c, ok := s.r.(io.Closer); ok {
			c.Close()
		}
		mr.sources = mr.sources[1:]
	}
	mr.last = nil
	return 0, io.EOF
}

func (mr *multiReader) UnreadRune() error {
	if mr.last == nil {
		return bufio.ErrInvalidUnreadRune
	}
	err := mr.last.UnreadRune()
	mr.last = nil
	return err
}

func (mr *multiReader) pushReader(r io.Reader) {
	mr.sources = append([]source{newSource(r)}, mr.sources...)
	mr.last = nil
}

// Input sets the reader used by the in instruction, replacing any previous
// input. Without input, any in instruction faults with ErrIO.
func Input(r io.Reader) Option {
	return func(i *Instance) error {
		i.input = nil
		if r != nil {
			i.PushInput(r)
		}
		return nil
	}
}

// Output sets the writer used by the out instruction. The default is
// io.Discard.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		if w == nil {
			w = io.Discard
		}
		i.output = w
		return nil
	}
}

// PushInput sets r as the current input for the in instruction. When r
// reaches EOF, the previously pushed reader will be used.
func (i *Instance) PushInput(r io.Reader) {
	if i.input == nil {
		i.input = new(multiReader)
	}
	i.input.pushReader(r)
}

// in reads a number in any format accepted by fmt.Fscan for a float64.
func (i *Instance) in(op Opcode) error {
	if i.input == nil {
		return i.fault(ErrIO, op, "no input")
	}
	var v float64
	if _, err := fmt.Fscan(i.input, &v); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return i.fault(ErrIO, op, "read failed: %v", err)
	}
	i.data.Push(v)
	return nil
}

func (i *Instance) out(op Opcode, v float64) error {
	if _, err := io.WriteString(i.output, FormatValue(v)+"\n"); err != nil {
		return i.fault(ErrIO, op, "write failed: %v", err)
	}
	return nil
}
