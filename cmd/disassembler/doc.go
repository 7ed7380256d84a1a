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

// The disassembler command translates a bytecode file back to assembly.
//
// Usage:
//
//	disassembler [flags] <bytecode-file> [asm-file]
//
//	-config file
//		  load configuration from file instead of the nearest softcpu.toml
//	-debug
//		  enable debug diagnostics
//	-l
//		  write a listing with byte offsets instead of plain assembly
//	-v level
//		  log verbosity level, overrides the configuration
//
// If asm-file is not specified, the disassembly is written to the file set by
// paths.disassembly in the configuration, "bin/disassembly.asy" by default.
// Use "-" to write to stdout.
//
// Plain disassembly can be assembled again and yields the same bytecode.
// Labels are not recovered: jump and call targets are printed as byte offsets.
//
// Nothing is written if the bytecode holds an invalid opcode or operand. The
// exit status is 1 on any error.
package main
