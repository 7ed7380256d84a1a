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

// The assembler command translates a software-cpu assembly file into a
// bytecode file.
//
// Usage:
//
//	assembler [flags] <asm-file> [bytecode-file]
//
//	-config file
//		  load configuration from file instead of the nearest softcpu.toml
//	-debug
//		  enable debug diagnostics
//	-l
//		  print a listing of the generated code to stdout
//	-v level
//		  log verbosity level, overrides the configuration
//
// If bytecode-file is not specified, the bytecode is written to the file set
// by paths.bytecode in the configuration, "bin/bytecode.bcd" by default.
// Missing directories are created.
//
// On syntax error, the offending line is reported and no bytecode file is
// written. The exit status is 1 on any error.
//
// See package github.com/tralf-strues/software-cpu/asm for the assembly
// syntax.
package main
