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
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Operand is a decoded instruction operand.
type Operand struct {
	Mode  Mode
	Reg   byte // 1-based register index, valid if Mode has ModeReg
	Const float64
}

// Cst returns a constant operand.
func Cst(v float64) Operand { return Operand{Mode: ModeCst, Const: v} }

// Size returns the encoded size of the operand in bytes, mode byte included.
func (o Operand) Size() int {
	n := 1
	if o.Mode&ModeReg != 0 {
		n++
	}
	if o.Mode&ModeCst != 0 {
		n += CellSize
	}
	return n
}

// String returns the operand in assembler syntax.
func (o Operand) String() string {
	var b strings.Builder
	if o.Mode&ModeRAM != 0 {
		b.WriteByte('[')
	}
	if o.Mode&ModeReg != 0 {
		b.WriteString(RegisterName(o.Reg))
		if o.Mode&ModeCst != 0 {
			b.WriteByte('+')
		}
	}
	if o.Mode&ModeCst != 0 {
		b.WriteString(FormatValue(o.Const))
	}
	if o.Mode&ModeRAM != 0 {
		b.WriteByte(']')
	}
	return b.String()
}

// FormatValue formats v the way the assembler reads it back: shortest
// representation that parses to the same float64.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Decoded is a decoded instruction.
type Decoded struct {
	Op   Opcode
	Args []Operand
}

// String returns the instruction in assembler syntax.
func (d Decoded) String() string {
	if len(d.Args) == 0 {
		return d.Op.String()
	}
	var b strings.Builder
	b.WriteString(d.Op.String())
	for _, a := range d.Args {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	return b.String()
}

// AppendOperand appends the encoding of o to code.
func AppendOperand(code []byte, o Operand) []byte {
	code = append(code, byte(o.Mode))
	if o.Mode&ModeReg != 0 {
		code = append(code, o.Reg)
	}
	if o.Mode&ModeCst != 0 {
		var b [CellSize]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(o.Const))
		code = append(code, b[:]...)
	}
	return code
}

// AppendInstruction appends the encoding of op and its operands to code.
func AppendInstruction(code []byte, op Opcode, args ...Operand) []byte {
	code = append(code, byte(op))
	for _, a := range args {
		code = AppendOperand(code, a)
	}
	return code
}

// DecodeOperand decodes the operand at position pc in code. It returns the
// operand and the position of the byte following it.
func DecodeOperand(code []byte, pc int) (Operand, int, error) {
	var o Operand
	if pc >= len(code) {
		return o, pc, errors.Wrapf(ErrInvalidExecutable, "missing operand @%d", pc)
	}
	o.Mode = Mode(code[pc])
	// RAM needs an address from a register or a constant
	if o.Mode&^ModeRAM == 0 || o.Mode&^modeMask != 0 {
		return o, pc, errors.Wrapf(ErrInvalidArgumentType, "mode %#x @%d", byte(o.Mode), pc)
	}
	pc++
	if o.Mode&ModeReg != 0 {
		if pc >= len(code) {
			return o, pc, errors.Wrapf(ErrInvalidExecutable, "missing register @%d", pc)
		}
		o.Reg = code[pc]
		if o.Reg == 0 || o.Reg > RegisterCount {
			return o, pc, errors.Wrapf(ErrInvalidArgumentType, "register %d @%d", o.Reg, pc)
		}
		pc++
	}
	if o.Mode&ModeCst != 0 {
		if pc+CellSize > len(code) {
			return o, pc, errors.Wrapf(ErrInvalidExecutable, "truncated constant @%d", pc)
		}
		o.Const = math.Float64frombits(binary.LittleEndian.Uint64(code[pc : pc+CellSize]))
		pc += CellSize
	}
	return o, pc, nil
}

// DecodeInstruction decodes the instruction at position pc in code. It returns
// the instruction and the position of the next one.
func DecodeInstruction(code []byte, pc int) (Decoded, int, error) {
	var d Decoded
	if pc < 0 || pc >= len(code) {
		return d, pc, errors.Wrapf(ErrInvalidExecutable, "no instruction @%d", pc)
	}
	d.Op = Opcode(code[pc])
	ins, ok := d.Op.Info()
	if !ok {
		return d, pc, errors.Wrapf(ErrInvalidCommand, "opcode %d @%d", code[pc], pc)
	}
	next := pc + 1
	if ins.Args > 0 {
		d.Args = make([]Operand, ins.Args)
	}
	for n := range d.Args {
		var err error
		at := next
		d.Args[n], next, err = DecodeOperand(code, next)
		if err != nil {
			return d, pc, err
		}
		if ins.ControlFlow && d.Args[n].Mode != ModeCst {
			return d, pc, errors.Wrapf(ErrInvalidArgumentType, "control flow target mode %#x @%d", byte(d.Args[n].Mode), at)
		}
	}
	return d, next, nil
}
