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

package vm_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/tralf-strues/software-cpu/vm"
)

func TestStack(t *testing.T) {
	s := vm.NewStack(0)
	assertEqualI(t, "min capacity", 3, s.Cap())
	if _, err := s.Pop(); err != vm.ErrPopFromEmpty {
		t.Errorf("expected %v, got %v", vm.ErrPopFromEmpty, err)
	}
	if _, err := s.Top(); err != vm.ErrTopFromEmpty {
		t.Errorf("expected %v, got %v", vm.ErrTopFromEmpty, err)
	}
	// capacity after each push: grows by a factor of 1.8, truncated
	caps := []int{3, 3, 3, 5, 5, 9, 9, 9, 9, 16}
	for n, exp := range caps {
		s.Push(float64(n + 1))
		assertEqualI(t, "capacity", exp, s.Cap())
		for k, v := range s.Values() {
			if v != float64(k+1) {
				t.Fatalf("push %d: value %d is %v", n+1, k, v)
			}
		}
	}
	assertEqualI(t, "len", 10, s.Len())
	if v, _ := s.Top(); v != 10 {
		t.Errorf("Top: expected 10, got %v", v)
	}
	for exp := 10.0; exp >= 1; exp-- {
		v, err := s.Pop()
		if err != nil || v != exp {
			t.Fatalf("Pop: expected %v, got %v, %v", exp, v, err)
		}
	}
	s.ShrinkToFit()
	assertEqualI(t, "shrunk capacity", 3, s.Cap())
	s.Push(42)
	s.Clear()
	assertEqualI(t, "cleared", 0, s.Len())

	i, err := vm.New(nil, vm.StackSize(100))
	if err != nil {
		t.Fatal(err)
	}
	if err = i.SetOptions(vm.StackSize(10)); err == nil {
		t.Error("stack size set after creation")
	}
}

func TestMemory(t *testing.T) {
	m := vm.NewMemory(16)
	assertEqualI(t, "VRAM size", 16, m.VRAMSize())
	if err := m.Store(5, 3.25); err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "RAM cell", "3.25", vm.FormatValue(m.ReadDouble(5)))
	if err := m.Store(vm.VRAMStart+15, 258); err != nil {
		t.Fatal(err)
	}
	assertEqualI(t, "VRAM byte", 2, int(m.VRAM()[15]))
	for _, addr := range []float64{-1, vm.VRAMStart + 16} {
		if _, err := m.Load(addr); errors.Cause(err) != vm.ErrInvalidCmdArgument {
			t.Errorf("Load(%v): expected %v, got %v", addr, vm.ErrInvalidCmdArgument, err)
		}
	}
	m.ClearVRAM(100)
	if m.ReadByteAt(15) != 0 {
		t.Error("VRAM not cleared")
	}
}

func TestDisplay(t *testing.T) {
	d := &vm.NullDisplay{Width: 2, Height: 1}
	i := setup(t, "display", "push 255\npop [1031]\nupd\nupd\nclr\nhlt", nil, vm.WithDisplay(d))
	if !check(t, "display", i, -1, nil) {
		return
	}
	assertEqualI(t, "frames", 2, d.Frames)
	assertEqualI(t, "VRAM size", vm.BufferSize(d), i.Memory().VRAMSize())
	if !bytes.Equal(i.Memory().VRAM(), make([]byte, 8)) {
		t.Errorf("VRAM not cleared: % x", i.Memory().VRAM())
	}

	// 2x1 display has 8 bytes of VRAM
	i = setup(t, "display_range", "push [1032]\nhlt", nil, vm.WithDisplay(d))
	if err := i.Run(); errors.Cause(err) != vm.ErrInvalidCmdArgument {
		t.Errorf("expected %v, got %v", vm.ErrInvalidCmdArgument, err)
	}
	if err := i.SetOptions(vm.WithDisplay(d)); err == nil {
		t.Error("display set after creation")
	}
}

func TestInstructionLimit(t *testing.T) {
	i := setup(t, "limit", "loop:\njmp :loop", nil, vm.MaxInstructions(100))
	err := i.Run()
	if errors.Cause(err) != vm.ErrInstructionLimit {
		t.Fatalf("expected %v, got %v", vm.ErrInstructionLimit, err)
	}
	assertEqualI(t, "instructions", 100, int(i.InstructionCount()))
	// the limit applies to each call to Run
	i.Run()
	assertEqualI(t, "instructions", 200, int(i.InstructionCount()))

	if _, err = vm.New(nil, vm.MaxInstructions(-1)); err == nil {
		t.Error("negative limit accepted")
	}
}

func TestReset(t *testing.T) {
	var b strings.Builder
	i := setup(t, "reset", "push 1\npop rax\npush rax\nout\nhlt", nil, vm.Output(&b))
	check(t, "reset", i, -1, nil)
	i.Reset()
	if i.Halted() || i.PC != 0 || i.Regs[0] != 0 || i.InstructionCount() != 0 {
		t.Error("CPU state not reset")
	}
	check(t, "reset", i, -1, nil)
	assertEqual(t, "reset", "1\n1\n", b.String())
}

func TestSnapshot(t *testing.T) {
	code := "push 5\npop rbx\npush 1\nout\npush 2\npop [1024]\ncall :f\nhlt\nf:\npush 3\nout\nret"
	var b1 strings.Builder
	i := setup(t, "snapshot", code, nil, vm.Output(&b1), vm.MaxInstructions(4))
	if err := i.Run(); errors.Cause(err) != vm.ErrInstructionLimit {
		t.Fatalf("expected %v, got %v", vm.ErrInstructionLimit, err)
	}
	data, err := vm.MarshalSnapshot(i.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	again, _ := vm.MarshalSnapshot(i.Snapshot())
	if !bytes.Equal(data, again) {
		t.Error("snapshot encoding is not deterministic")
	}

	s, err := vm.UnmarshalSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}
	var b2 strings.Builder
	r, err := vm.New(nil, vm.Output(&b2))
	if err != nil {
		t.Fatal(err)
	}
	if err = r.Restore(s); err != nil {
		t.Fatalf("%+v", err)
	}
	assertEqualI(t, "restored pc", i.PC, r.PC)
	if err = r.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	assertEqual(t, "first run", "1\n", b1.String())
	assertEqual(t, "restored run", "3\n", b2.String())
	assertEqualI(t, "rbx", 5, int(r.Regs[1]))
	assertEqualI(t, "VRAM", 2, int(r.Memory().VRAM()[0]))
	assertEqualI(t, "instructions", 11, int(r.InstructionCount()))

	s.Regs = s.Regs[:3]
	if err = r.Restore(s); err == nil {
		t.Error("invalid snapshot restored")
	}
}

func TestImage(t *testing.T) {
	dir := t.TempDir()
	program := vm.AppendInstruction(nil, vm.OpPush, vm.Cst(3))
	program = vm.AppendInstruction(program, vm.OpHlt)
	name := filepath.Join(dir, "bytecode.bcd")
	if err := vm.Save(name, program); err != nil {
		t.Fatal(err)
	}
	got, err := vm.Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(program, got) {
		t.Errorf("Expected\n% x\nGot\n% x", program, got)
	}

	if _, err = vm.Load(filepath.Join(dir, "missing.bcd")); err == nil {
		t.Error("no error on missing file")
	}
	empty := filepath.Join(dir, "empty.bcd")
	if err = os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = vm.Load(empty); err == nil {
		t.Error("no error on empty file")
	}
	if err = vm.Save(filepath.Join(dir, "nodir", "x.bcd"), program); err == nil {
		t.Error("no error on bad path")
	}
}

func TestDump(t *testing.T) {
	i := setup(t, "dump", "push 5\npop rax\npush 1\nhlt", nil)
	check(t, "dump", i, -1, C{1})
	var b strings.Builder
	if err := i.Dump(&b); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"CPU (halted)", "pc           = 23", "[rax] = 5", "stack: 1\n", ">25"} {
		if !strings.Contains(b.String(), s) {
			t.Errorf("%q not found in dump:\n%s", s, b.String())
		}
	}
}

func TestTrace(t *testing.T) {
	i := setup(t, "trace", "push 1\nhlt", nil, vm.Trace(commonlog.GetLogger("softcpu.vm.test")))
	check(t, "trace", i, -1, C{1})
}

func TestExitCode(t *testing.T) {
	assertEqualI(t, "nil", 0, vm.ExitCode(nil))
	assertEqualI(t, "math", 3, vm.ExitCode(errors.Wrap(vm.ErrMath, "div")))
	assertEqualI(t, "other", 1, vm.ExitCode(errors.New("boom")))
}
