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
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/tralf-strues/software-cpu/internal/sci"
)

// Instance represents a virtual CPU instance.
type Instance struct {
	PC       int                    // Program Counter (byte offset into Program)
	Program  []byte                 // Bytecode image
	Regs     [RegisterCount]float64 // General purpose registers, Regs[0] is rax
	halted   bool
	data     *Stack
	calls    *Stack
	mem      *Memory
	display  Display
	input    *multiReader
	output   io.Writer
	insCount int64
	maxIns   int64
	stackCap int
	trace    commonlog.Logger
}

// Option interface
type Option func(*Instance) error

// WithDisplay sets the display sink presented by the upd instruction. The
// display size determines the VRAM size, so this option is only honored by
// New.
func WithDisplay(d Display) Option {
	return func(i *Instance) error {
		if i.mem != nil {
			return errors.New("display must be set at creation time")
		}
		i.display = d
		return nil
	}
}

// MaxInstructions limits the number of instructions executed by a single
// call to Run. Zero means no limit.
func MaxInstructions(n int64) Option {
	return func(i *Instance) error {
		if n < 0 {
			return errors.Errorf("negative instruction limit %d", n)
		}
		i.maxIns = n
		return nil
	}
}

// StackSize sets the initial capacity of the data and call stacks. Stacks grow
// as needed.
func StackSize(n int) Option {
	return func(i *Instance) error {
		if i.data != nil {
			return errors.New("stack size must be set at creation time")
		}
		i.stackCap = n
		return nil
	}
}

// Trace logs every instruction before it is executed, at debug level.
func Trace(l commonlog.Logger) Option {
	return func(i *Instance) error {
		i.trace = l
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new CPU instance that will execute the given bytecode program.
//
// Options will be set by calling SetOptions.
func New(program []byte, opts ...Option) (*Instance, error) {
	i := &Instance{
		Program:  program,
		output:   io.Discard,
		stackCap: stackDefaultCells,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.display == nil {
		i.display = NewNullDisplay()
	}
	i.data = NewStack(i.stackCap)
	i.calls = NewStack(i.stackCap)
	i.mem = NewMemory(BufferSize(i.display))
	return i, nil
}

// Reset puts the CPU back in its initial state: pc, registers, stacks and
// memory are zeroed. The program and options are kept.
func (i *Instance) Reset() {
	i.PC = 0
	i.Regs = [RegisterCount]float64{}
	i.halted = false
	i.data.Clear()
	i.calls.Clear()
	i.mem = NewMemory(i.mem.VRAMSize())
	i.insCount = 0
}

// Halted returns true if the CPU executed a hlt instruction.
func (i *Instance) Halted() bool {
	return i.halted
}

// Data returns the operand stack, bottom first.
func (i *Instance) Data() []float64 {
	return i.data.Values()
}

// Calls returns the call stack, bottom first.
func (i *Instance) Calls() []float64 {
	return i.calls.Values()
}

// Push pushes v on top of the operand stack.
func (i *Instance) Push(v float64) {
	i.data.Push(v)
}

// Pop pops the value on top of the operand stack.
func (i *Instance) Pop() (float64, error) {
	return i.data.Pop()
}

// Memory returns the CPU memory.
func (i *Instance) Memory() *Memory {
	return i.mem
}

// Display returns the display sink.
func (i *Instance) Display() Display {
	return i.display
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

func dumpSlice(w io.Writer, a []float64) {
	for n, v := range a {
		if n > 0 {
			w.Write([]byte{' '})
		}
		io.WriteString(w, FormatValue(v))
	}
}

// Dump writes a human readable dump of the CPU state to the specified
// io.Writer: registers, stacks and the program bytes with the pc marked.
func (i *Instance) Dump(w io.Writer) error {
	ew := sci.NewErrWriter(w)
	state := "running"
	if i.halted {
		state = "halted"
	}
	fmt.Fprintf(ew, "CPU (%s)\n\tprogramBytes = %d\n\tpc           = %d\n\tinstructions = %d\n", state, len(i.Program), i.PC, i.insCount)
	io.WriteString(ew, "\tregs\n")
	for n, v := range i.Regs {
		fmt.Fprintf(ew, "\t\t[%s] = %s\n", RegisterName(byte(n+1)), FormatValue(v))
	}
	io.WriteString(ew, "\tstack: ")
	dumpSlice(ew, i.Data())
	io.WriteString(ew, "\n\tcalls: ")
	dumpSlice(ew, i.Calls())
	io.WriteString(ew, "\n\tprogram\n")
	for pc := 0; pc < len(i.Program); pc += 16 {
		fmt.Fprintf(ew, "\t\t%04d|", pc)
		for k := pc; k < pc+16 && k < len(i.Program); k++ {
			if k == i.PC {
				io.WriteString(ew, ">"+strconv.Itoa(int(i.Program[k])))
			} else {
				io.WriteString(ew, " "+strconv.Itoa(int(i.Program[k])))
			}
		}
		ew.Write([]byte{'\n'})
	}
	return ew.Err
}
