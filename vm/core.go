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
	"math"

	"github.com/pkg/errors"
)

// Run starts execution of the CPU until a hlt instruction is executed or an
// execution fault occurs. It returns nil if the program halted.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error. The error wraps a Fault that can be retrieved with errors.Cause.
func (i *Instance) Run() error {
	var n int64
	for !i.halted {
		if i.maxIns > 0 && n >= i.maxIns {
			return errors.Wrapf(ErrInstructionLimit, "@pc=%d after %d instructions", i.PC, n)
		}
		if err := i.Step(); err != nil {
			return err
		}
		n++
	}
	return nil
}

// fault wraps f with the pc and opcode of the faulting instruction.
func (i *Instance) fault(f error, op Opcode, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return errors.Wrapf(f, "%s @pc=%d: %s", op, i.PC, msg)
}

// need checks that the operand stack holds at least n values.
func (i *Instance) need(op Opcode, n int) error {
	if i.data.Len() < n {
		return i.fault(ErrNotEnoughValues, op, "need %d, have %d", n, i.data.Len())
	}
	return nil
}

// pop2 pops b then a and returns a, b.
func (i *Instance) pop2() (a, b float64) {
	b, _ = i.data.Pop()
	a, _ = i.data.Pop()
	return a, b
}

// target validates a control flow operand.
func (i *Instance) target(op Opcode, o Operand) (int, error) {
	t := o.Const
	if t < 0 || t > float64(len(i.Program)) || t != math.Trunc(t) {
		return 0, i.fault(ErrInvalidCmdArgument, op, "invalid target %g", t)
	}
	return int(t), nil
}

// value computes the effective value of a push operand.
func (i *Instance) value(o Operand) (float64, error) {
	var v float64
	if o.Mode&ModeReg != 0 {
		v += i.Regs[o.Reg-1]
	}
	if o.Mode&ModeCst != 0 {
		v += o.Const
	}
	if o.Mode&ModeRAM != 0 {
		return i.mem.Load(v)
	}
	return v, nil
}

// Step executes a single instruction.
func (i *Instance) Step() error {
	if i.halted {
		return nil
	}
	if i.PC >= len(i.Program) {
		return errors.Wrapf(ErrReachedEndNotHalted, "pc=%d", i.PC)
	}
	d, next, err := DecodeInstruction(i.Program, i.PC)
	if err != nil {
		if errors.Cause(err) == ErrInvalidArgumentType {
			err = errors.Wrap(ErrInvalidCmdArgument, err.Error())
		}
		return err
	}
	if i.trace != nil {
		i.trace.Debugf("%6d\t%s\t%v", i.PC, d, i.data.Values())
	}

	op := d.Op
	switch op {
	case OpIn:
		if err := i.in(op); err != nil {
			return err
		}
	case OpOut:
		if err := i.need(op, 1); err != nil {
			return err
		}
		v, _ := i.data.Pop()
		if err := i.out(op, v); err != nil {
			return err
		}
	case OpAdd:
		if err := i.need(op, 2); err != nil {
			return err
		}
		a, b := i.pop2()
		i.data.Push(a + b)
	case OpSub:
		if err := i.need(op, 2); err != nil {
			return err
		}
		a, b := i.pop2()
		i.data.Push(a - b)
	case OpMul:
		if err := i.need(op, 2); err != nil {
			return err
		}
		a, b := i.pop2()
		i.data.Push(a * b)
	case OpDiv:
		if err := i.need(op, 2); err != nil {
			return err
		}
		a, b := i.pop2()
		if b == 0 {
			return i.fault(ErrMath, op, "division by zero")
		}
		i.data.Push(a / b)
	case OpPow:
		if err := i.need(op, 2); err != nil {
			return err
		}
		a, b := i.pop2()
		i.data.Push(math.Pow(a, b))
	case OpSqrt:
		if err := i.need(op, 1); err != nil {
			return err
		}
		a, _ := i.data.Pop()
		if a < 0 {
			return i.fault(ErrMath, op, "square root of %g", a)
		}
		i.data.Push(math.Sqrt(a))
	case OpSin:
		if err := i.need(op, 1); err != nil {
			return err
		}
		a, _ := i.data.Pop()
		i.data.Push(math.Sin(a))
	case OpCos:
		if err := i.need(op, 1); err != nil {
			return err
		}
		a, _ := i.data.Pop()
		i.data.Push(math.Cos(a))
	case OpPush:
		v, err := i.value(d.Args[0])
		if err != nil {
			return i.fault(errors.Cause(err), op, "%v", err)
		}
		i.data.Push(v)
	case OpPop:
		if err := i.need(op, 1); err != nil {
			return err
		}
		o := d.Args[0]
		switch {
		case o.Mode&ModeRAM != 0:
			var addr float64
			if o.Mode&ModeReg != 0 {
				addr += i.Regs[o.Reg-1]
			}
			if o.Mode&ModeCst != 0 {
				addr += o.Const
			}
			v, _ := i.data.Top()
			if err := i.mem.Store(addr, v); err != nil {
				return i.fault(errors.Cause(err), op, "%v", err)
			}
			i.data.Pop()
		case o.Mode == ModeReg:
			i.Regs[o.Reg-1], _ = i.data.Pop()
		default:
			return i.fault(ErrInvalidCmdArgument, op, "pop needs a register or memory destination, got %s", o)
		}
	case OpCall:
		t, err := i.target(op, d.Args[0])
		if err != nil {
			return err
		}
		i.calls.Push(float64(next))
		next = t
	case OpRet:
		r, err := i.calls.Pop()
		if err != nil {
			return i.fault(ErrNotEnoughValues, op, "empty call stack")
		}
		if r < 0 || r > float64(len(i.Program)) || r != math.Trunc(r) {
			return i.fault(ErrInvalidCmdArgument, op, "invalid return address %g", r)
		}
		next = int(r)
	case OpJmp:
		t, err := i.target(op, d.Args[0])
		if err != nil {
			return err
		}
		next = t
	case OpJae, OpJa, OpJb, OpJbe, OpJe, OpJne:
		t, err := i.target(op, d.Args[0])
		if err != nil {
			return err
		}
		if err := i.need(op, 2); err != nil {
			return err
		}
		a, b := i.pop2()
		var taken bool
		switch op {
		case OpJae:
			taken = a >= b
		case OpJa:
			taken = a > b
		case OpJb:
			taken = a < b
		case OpJbe:
			taken = a <= b
		case OpJe:
			taken = a == b
		case OpJne:
			taken = a != b
		}
		if taken {
			next = t
		}
	case OpUpd:
		w, h := i.display.Size()
		i.display.Present(i.mem.VRAM(), w, h)
	case OpClr:
		i.mem.ClearVRAM(BufferSize(i.display))
	case OpAbs:
		if err := i.need(op, 1); err != nil {
			return err
		}
		a, _ := i.data.Pop()
		i.data.Push(math.Abs(a))
	case OpFlr:
		if err := i.need(op, 1); err != nil {
			return err
		}
		a, _ := i.data.Pop()
		i.data.Push(math.Floor(a))
	case OpHlt:
		i.halted = true
		i.insCount++
		return nil
	default:
		// DecodeInstruction only returns valid opcodes.
		return i.fault(ErrInvalidCommand, op, "unhandled opcode")
	}
	i.PC = next
	i.insCount++
	return nil
}
