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

// Package vm implements a small stack based virtual CPU with 18 float64
// registers, an operand stack, a call stack and a linear memory made of 1024
// float64 RAM cells followed by a byte addressed frame buffer (VRAM).
//
// Bytecode format
//
// A bytecode image is a flat sequence of instructions with no header or
// padding. Each instruction is a 1 byte opcode followed by its operands (see
// Instructions for operand counts). An operand is encoded as:
//
//	mode byte	ModeCst (1), ModeReg (2) or both, optionally combined with ModeRAM (4)
//	register	1 byte, 1-based register index, present if ModeReg is set
//	constant	8 bytes little endian float64, present if ModeCst is set
//
// The value of an operand is register + constant. If ModeRAM is set, the value
// is an address: addresses below VRAMStart select a float64 RAM cell, others
// select the VRAM byte at address-VRAMStart.
//
// Control flow instructions (call, jmp and the conditional jumps) always use a
// bare constant operand holding the target byte offset. Any other mode is an
// ErrInvalidArgumentType decoding error.
//
// Execution
//
// Run executes instructions until hlt or an execution fault. Faults stop
// execution immediately; the PC is left on the faulting instruction and the
// returned error wraps one of the Fault values. ExitCode converts it to a
// process exit status.
//
// For all intents and purposes, the CPU is single threaded: an Instance must
// not be used concurrently.
package vm
