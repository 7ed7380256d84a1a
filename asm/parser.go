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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tralf-strues/software-cpu/vm"
)

const maxLineLength = 1 << 20

type label struct {
	pos     Position
	address int
}

// parser holds the state of a single translation: source lines, label table
// and output buffer.
type parser struct {
	name   string
	lines  []string
	line   int // current line index
	pass   int
	code   []byte
	labels map[string]*label
}

func newParser(name string) *parser {
	return &parser{
		name:   name,
		labels: make(map[string]*label),
	}
}

func (p *parser) pos() Position {
	return Position{Filename: p.name, Line: p.line + 1, Text: p.lines[p.line]}
}

func (p *parser) errorf(kind error, format string, args ...interface{}) error {
	return &Error{Pos: p.pos(), Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// tokenize splits a line into tokens. Comments start at the first ';'. A RAM
// argument spanning several fields, as in "[ rax + 4 ]", is returned as a
// single token.
func tokenize(line string) []string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	toks := fields[:0]
	for k := 0; k < len(fields); k++ {
		f := fields[k]
		if strings.HasPrefix(f, "[") {
			for !strings.HasSuffix(f, "]") && k+1 < len(fields) {
				k++
				f += fields[k]
			}
		}
		toks = append(toks, f)
	}
	return toks
}

// Parse reads the whole source then does the two assembly passes. Pass 1
// records label addresses, pass 2 emits the final code.
func (p *parser) Parse(r io.Reader) ([]byte, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 4096), maxLineLength)
	for s.Scan() {
		p.lines = append(p.lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: read failed", p.name)
	}

	for p.pass = 1; p.pass <= 2; p.pass++ {
		p.code = p.code[:0]
		for p.line = range p.lines {
			if err := p.translateLine(tokenize(p.lines[p.line])); err != nil {
				return nil, err
			}
		}
	}
	return p.code, nil
}

func (p *parser) translateLine(toks []string) error {
	if len(toks) == 0 {
		return nil
	}
	cmd := toks[0]
	ins, ok := vm.Lookup(cmd)
	if !ok {
		if strings.HasSuffix(cmd, ":") {
			return p.defineLabel(strings.TrimSuffix(cmd, ":"), toks[1:])
		}
		return p.errorf(ErrUnknownCommand, "%q", cmd)
	}

	args := toks[1:]
	if len(args) != ins.Args {
		return p.errorf(ErrArgCount, "%d instead of %d", len(args), ins.Args)
	}
	p.code = append(p.code, byte(ins.Op))
	for _, a := range args {
		o, err := p.operand(ins, a)
		if err != nil {
			return err
		}
		p.code = vm.AppendOperand(p.code, o)
	}
	return nil
}

func (p *parser) defineLabel(name string, rest []string) error {
	if len(rest) > 0 {
		return p.errorf(ErrLabelSyntax, "commands after label definition: %q", rest[0])
	}
	if name == "" {
		return p.errorf(ErrLabelSyntax, "empty label name")
	}
	if p.pass > 1 {
		return nil
	}
	if l, ok := p.labels[name]; ok {
		return p.errorf(ErrLabelRedefined, "%q, previous definition here: %s", name, l.pos)
	}
	p.labels[name] = &label{p.pos(), len(p.code)}
	return nil
}

func (p *parser) operand(ins vm.Instruction, tok string) (vm.Operand, error) {
	if v, ok := parseNumber(tok); ok {
		o := vm.Cst(v)
		if ins.Op == vm.OpPop {
			return o, p.errorf(ErrInvalidArgument, "pop needs a register or memory destination, got %q", tok)
		}
		return o, nil
	}
	if ins.ControlFlow {
		return p.target(tok)
	}
	o, err := p.compound(tok)
	if err != nil {
		return o, err
	}
	if ins.Op == vm.OpPop && o.Mode&vm.ModeRAM == 0 && o.Mode != vm.ModeReg {
		return o, p.errorf(ErrInvalidArgument, "pop needs a register or memory destination, got %q", tok)
	}
	return o, nil
}

// target resolves a label reference. During pass 1, labels may not be defined
// yet and a placeholder of the same size is returned.
func (p *parser) target(tok string) (vm.Operand, error) {
	if tok[0] != ':' {
		return vm.Operand{}, p.errorf(ErrInvalidArgument, "invalid label indicator, no ':' found: %q", tok)
	}
	name := tok[1:]
	if name == "" {
		return vm.Operand{}, p.errorf(ErrLabelSyntax, "empty label name")
	}
	if p.pass == 1 {
		return vm.Cst(-1), nil
	}
	l, ok := p.labels[name]
	if !ok {
		return vm.Operand{}, p.errorf(ErrLabelNotFound, "%q", name)
	}
	return vm.Cst(float64(l.address)), nil
}

type argKind int

const (
	argNone argKind = iota
	argNum
	argReg
)

func classify(s string) argKind {
	if _, ok := parseNumber(s); ok {
		return argNum
	}
	if _, ok := vm.ParseRegister(s); ok {
		return argReg
	}
	return argNone
}

// splitSum splits "a+b" into its terms. A '+' may also be part of a number
// exponent ("1e+5"), so the split must leave two valid terms.
func splitSum(s string) (string, string, bool) {
	if classify(s) != argNone {
		return s, "", true
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '+' {
			continue
		}
		if classify(s[:i]) != argNone && classify(s[i+1:]) != argNone {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// compound parses register, register+constant and RAM arguments.
func (p *parser) compound(tok string) (vm.Operand, error) {
	var o vm.Operand
	s := tok
	if strings.HasPrefix(s, "[") {
		if len(s) < 2 || !strings.HasSuffix(s, "]") {
			return o, p.errorf(ErrInvalidArgument, "no ']' found in ram argument: %q", tok)
		}
		o.Mode |= vm.ModeRAM
		s = s[1 : len(s)-1]
	}
	first, second, ok := splitSum(s)
	if !ok {
		return o, p.errorf(ErrInvalidArgument, "%q", tok)
	}
	k1, k2 := classify(first), argNone
	if second != "" {
		k2 = classify(second)
	}
	switch {
	case k1 == k2:
		return o, p.errorf(ErrInvalidArgument, "two arguments of the same type (only register + const is supported): %q", tok)
	case k1 == argNum && k2 == argReg:
		return o, p.errorf(ErrInvalidArgument, "const before register (only register + const is supported): %q", tok)
	}
	for _, t := range []string{first, second} {
		if t == "" {
			continue
		}
		if r, ok := vm.ParseRegister(t); ok {
			o.Mode |= vm.ModeReg
			o.Reg = r
		} else {
			v, _ := parseNumber(t)
			o.Mode |= vm.ModeCst
			o.Const = v
		}
	}
	return o, nil
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
