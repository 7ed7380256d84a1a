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

package asm

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/tralf-strues/software-cpu/internal/sci"
	"github.com/tralf-strues/software-cpu/vm"
)

// Assemble translates assembly read from the supplied io.Reader and returns
// the resulting bytecode image.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// Syntax errors are returned as *Error values; errors.Cause returns their
// Kind. Assembly stops at the first error and no partial image is returned.
func Assemble(name string, r io.Reader) ([]byte, error) {
	p := newParser(name)
	code, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return code, nil
}

// Disassemble writes a disassembly of the instruction at position pc in code
// to the specified io.Writer and returns the position of the next instruction.
// Decoding errors wrap a vm.Fault (vm.ErrInvalidCommand,
// vm.ErrInvalidArgumentType or vm.ErrInvalidExecutable) and nothing is
// written.
func Disassemble(code []byte, pc int, w io.Writer) (next int, err error) {
	d, next, err := vm.DecodeInstruction(code, pc)
	if err != nil {
		return pc, err
	}
	ew := sci.NewErrWriter(w)
	io.WriteString(ew, d.String())
	return next, ew.Err
}

// DisassembleAll writes a disassembly of the whole image to w, one
// instruction per line. The output can be fed back to Assemble and produces
// the same image. On decoding error, nothing is written to w.
func DisassembleAll(code []byte, w io.Writer) error {
	var buf bytes.Buffer
	for pc := 0; pc < len(code); {
		var err error
		if pc, err = Disassemble(code, pc, &buf); err != nil {
			return err
		}
		buf.WriteByte('\n')
	}
	_, err := buf.WriteTo(w)
	return errors.Wrap(err, "write failed")
}

// Listing writes a disassembly of code to w with the byte offset of each
// instruction. Unlike DisassembleAll, decoding stops at the first bad
// instruction, which is shown as "???", and the decoding error is returned
// after the listing is written.
func Listing(code []byte, w io.Writer) error {
	ew := sci.NewErrWriter(w)
	for pc := 0; pc < len(code); {
		fmt.Fprintf(ew, "% 8d\t", pc)
		next, err := Disassemble(code, pc, ew)
		if ew.Err != nil {
			return ew.Err
		}
		if err != nil {
			io.WriteString(ew, "???\n")
			if ew.Err != nil {
				return ew.Err
			}
			return err
		}
		ew.Write([]byte{'\n'})
		pc = next
	}
	return ew.Err
}
