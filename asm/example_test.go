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

package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/tralf-strues/software-cpu/asm"
)

// Shows off some of the assembler features and the listing format.
func ExampleAssemble() {
	code := `
	; add two numbers
	push 2
	push 3
	add
	out
	hlt
`
	img, err := asm.Assemble("raw_string", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}

	asm.Listing(img, os.Stdout)

	// Output:
	//        0	push 2
	//       10	push 3
	//       20	add
	//       21	out
	//       22	hlt
}

// DisassembleAll output can be assembled again. Labels are replaced by their
// byte offset.
func ExampleDisassembleAll() {
	code := `
	push [ rax + 5 ]
	pop rbx
	call :f
	hlt
f:
	push rbx+1.5
	pop [1024]	; first VRAM byte
	ret
`
	img, err := asm.Assemble("calls", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}

	asm.DisassembleAll(img, os.Stdout)

	// Output:
	// push [rax+5]
	// pop rbx
	// call 25
	// hlt
	// push rbx+1.5
	// pop [1024]
	// ret
}

func ExampleDisassemble() {
	img, err := asm.Assemble("loop", strings.NewReader("loop:\n\tpush 1\n\tjmp :loop"))
	if err != nil {
		panic(err)
	}

	for pc := 0; pc < len(img); {
		fmt.Printf("% 4d\t", pc)
		pc, err = asm.Disassemble(img, pc, os.Stdout)
		if err != nil {
			panic(err)
		}
		fmt.Println()
	}

	// Output:
	//    0	push 1
	//   10	jmp 0
}
