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
	"fmt"
	"strconv"
)

// Opcode is the numeric identifier of an instruction. Opcode values are the
// wire format of bytecode files and must never be renumbered.
type Opcode byte

// Virtual CPU opcodes.
const (
	OpIn Opcode = iota
	OpOut
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpSqrt
	OpSin
	OpCos
	OpPush
	OpPop
	OpCall
	OpRet
	OpJmp
	OpJae
	OpJa
	OpJb
	OpJbe
	OpJe
	OpJne
	OpUpd
	OpClr
	OpAbs
	OpFlr
	OpHlt
)

// Instruction describes one entry of the instruction set.
//
// Args is the number of operands following the opcode byte. ControlFlow is
// set for instructions whose operand is a jump or call target, which the
// assembler resolves from a label.
type Instruction struct {
	Name        string
	Op          Opcode
	Args        int
	ControlFlow bool
}

// Instructions is the instruction set. The assembler, the disassembler and the
// CPU all work from this table.
var Instructions = [...]Instruction{
	{"in", OpIn, 0, false},
	{"out", OpOut, 0, false},
	{"add", OpAdd, 0, false},
	{"sub", OpSub, 0, false},
	{"mul", OpMul, 0, false},
	{"div", OpDiv, 0, false},
	{"pow", OpPow, 0, false},
	{"sqrt", OpSqrt, 0, false},
	{"sin", OpSin, 0, false},
	{"cos", OpCos, 0, false},
	{"push", OpPush, 1, false},
	{"pop", OpPop, 1, false},
	{"call", OpCall, 1, true},
	{"ret", OpRet, 0, false},
	{"jmp", OpJmp, 1, true},
	{"jae", OpJae, 1, true},
	{"ja", OpJa, 1, true},
	{"jb", OpJb, 1, true},
	{"jbe", OpJbe, 1, true},
	{"je", OpJe, 1, true},
	{"jne", OpJne, 1, true},
	{"upd", OpUpd, 0, false},
	{"clr", OpClr, 0, false},
	{"abs", OpAbs, 0, false},
	{"flr", OpFlr, 0, false},
	{"hlt", OpHlt, 0, false},
}

// OpcodeCount is the number of valid opcodes. Any opcode byte >= OpcodeCount
// is invalid.
const OpcodeCount = len(Instructions)

var opcodeIndex = make(map[string]Opcode, OpcodeCount)

func init() {
	for i, ins := range Instructions {
		if int(ins.Op) != i {
			panic(fmt.Sprintf("vm: instruction %q at index %d has opcode %d", ins.Name, i, ins.Op))
		}
		opcodeIndex[ins.Name] = ins.Op
	}
}

// Lookup returns the instruction with the given mnemonic.
func Lookup(name string) (Instruction, bool) {
	op, ok := opcodeIndex[name]
	if !ok {
		return Instruction{}, false
	}
	return Instructions[op], true
}

// Info returns the instruction set entry for op.
func (op Opcode) Info() (Instruction, bool) {
	if int(op) >= OpcodeCount {
		return Instruction{}, false
	}
	return Instructions[op], true
}

func (op Opcode) String() string {
	if int(op) < OpcodeCount {
		return Instructions[op].Name
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Mode is an operand addressing mode bitmask.
type Mode byte

// Addressing mode bits. A mode byte is any non-empty combination of them.
const (
	ModeCst Mode = 1 << iota // 8 bytes float64 constant follows
	ModeReg                  // 1 byte register index follows
	ModeRAM                  // dereference the computed value

	modeMask = ModeCst | ModeReg | ModeRAM
)

// Has returns true if all bits in f are set in m.
func (m Mode) Has(f Mode) bool { return m&f == f }

// RegisterCount is the number of general purpose registers.
const RegisterCount = 18

// RegisterName returns the assembly name of the 1-based register index idx:
// 1 is "rax", 2 is "rbx" and so on up to "rrx". It returns an empty string for
// invalid indices.
func RegisterName(idx byte) string {
	if idx == 0 || idx > RegisterCount {
		return ""
	}
	return string([]byte{'r', 'a' + idx - 1, 'x'})
}

// ParseRegister parses a register token and returns its 1-based index.
func ParseRegister(s string) (byte, bool) {
	if len(s) != 3 || s[0] != 'r' || s[2] != 'x' {
		return 0, false
	}
	if s[1] < 'a' || s[1] >= 'a'+RegisterCount {
		return 0, false
	}
	return s[1] - 'a' + 1, true
}
