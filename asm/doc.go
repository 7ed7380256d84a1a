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

// Package asm provides utility functions to assemble and disassemble
// software-cpu bytecode.
//
// Supported assembler mnemonics:
//
//	Instructions with a check mark in the "arg" column expect one argument.
//	TOS is the value on top of the data stack, NOS is the next value.
//
//	opcode	asm	arg	stack	description
//	------	---	---	-----	-----------------------------------------------------------
//	0	in		-n	read a number from input and push it
//	1	out		n-	pop TOS and write it to output, followed by a new line
//	2	add		xy-z	push NOS + TOS
//	3	sub		xy-z	push NOS - TOS
//	4	mul		xy-z	push NOS * TOS
//	5	div		xy-z	push NOS / TOS, fails if TOS is 0
//	6	pow		xy-z	push NOS raised to the power TOS
//	7	sqrt		x-y	push the square root of TOS, fails if TOS < 0
//	8	sin		x-y	sine (radians)
//	9	cos		x-y	cosine (radians)
//	10	push	✓	-n	push the argument value
//	11	pop	✓	n-	pop TOS into a register or memory cell
//	12	call	✓		push the return address on the call stack and jump
//	13	ret			pop a return address from the call stack and jump to it
//	14	jmp	✓		jump
//	15	jae	✓	xy-	jump if NOS >= TOS
//	16	ja	✓	xy-	jump if NOS > TOS
//	17	jb	✓	xy-	jump if NOS < TOS
//	18	jbe	✓	xy-	jump if NOS <= TOS
//	19	je	✓	xy-	jump if NOS == TOS
//	20	jne	✓	xy-	jump if NOS != TOS
//	21	upd			present VRAM on the display
//	22	clr			clear VRAM
//	23	abs		x-y	absolute value
//	24	flr		x-y	round down
//	25	hlt			stop execution
//
// Source format:
//
// The source is processed line by line. Everything after a ';' is a comment.
// The remainder of the line is split at white space into tokens: a mnemonic
// followed by exactly the number of arguments it expects. Empty lines are
// ignored.
//
//	push 2		; push a constant
//	push 3
//	add
//	out		; prints 5
//	hlt
//
// Arguments:
//
// push and pop take a value argument made of a register (rax through rrx), a
// constant (any number strconv.ParseFloat accepts), or a register followed by
// a constant, joined by a '+'. Enclosing the argument in square brackets
// dereferences it as a memory address:
//
//	push 3.5		; constant
//	push rax		; register
//	push rax+2		; register + constant
//	push [10]		; RAM cell 10
//	push [rbx]		; RAM cell at address rbx
//	push [ rbx + 1 ]	; white space is allowed inside brackets
//
// Addresses from 0 to 1023 select a RAM cell, addresses from 1024 onwards
// select a VRAM byte. pop only accepts a register or a memory argument.
//
// Labels:
//
// A label is defined by a line holding a name followed by a colon, and nothing
// else. Labels are referenced by call and jump instructions by prefixing the
// name with a colon. Forward references are fine:
//
//	jmp :end
//	loop:
//		push 1
//		jmp :loop
//	end:
//		hlt
//
// Control flow instructions may also take a numeric byte offset instead of a
// label. This is what the disassembler outputs, so that a disassembly
// assembles back to the exact same image.
package asm
