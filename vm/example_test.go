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
	"fmt"
	"os"
	"strings"

	"github.com/tralf-strues/software-cpu/asm"
	"github.com/tralf-strues/software-cpu/vm"
)

// Shows how to assemble a program and run it with custom input and output.
func ExampleInstance_Run() {
	code := `
	; read two numbers and print their sum
	in
	in
	add
	out
	hlt
`
	program, err := asm.Assemble("sum", strings.NewReader(code))
	if err != nil {
		panic(err)
	}

	i, err := vm.New(program,
		vm.Input(strings.NewReader("40 2\n")),
		vm.Output(os.Stdout))
	if err == nil {
		err = i.Run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(vm.ExitCode(err))
	}

	// Output:
	// 42
}

// Programs are plain byte slices and can be built without the assembler.
func ExampleAppendInstruction() {
	var p []byte
	p = vm.AppendInstruction(p, vm.OpPush, vm.Cst(9))
	p = vm.AppendInstruction(p, vm.OpSqrt)
	p = vm.AppendInstruction(p, vm.OpPop, vm.Operand{Mode: vm.ModeReg, Reg: 1})
	p = vm.AppendInstruction(p, vm.OpHlt)

	i, _ := vm.New(p)
	if err := i.Run(); err != nil {
		panic(err)
	}
	fmt.Println(i.Regs[0], len(p))

	// Output:
	// 3 15
}

// Faults stop execution and map to process exit codes.
func ExampleExitCode() {
	program, _ := asm.Assemble("div", strings.NewReader("push 1\npush 0\ndiv\nhlt"))
	i, _ := vm.New(program)
	err := i.Run()
	fmt.Println(err)
	fmt.Println(vm.ExitCode(err))

	// Output:
	// div @pc=20: division by zero: math error
	// 3
}
