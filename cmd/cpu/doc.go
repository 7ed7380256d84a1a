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

// The cpu command runs a software-cpu bytecode file.
//
// Usage:
//
//	cpu [flags] [bytecode-file]
//
//	-config file
//		  load configuration from file instead of the nearest softcpu.toml
//	-debug
//		  enable debug diagnostics
//	-display mode
//		  display mode: none, term or png (default from configuration)
//	-dump filename
//		  write a snapshot of the CPU state to filename upon exit
//	-max n
//		  maximum number of instructions to execute, 0 for no limit
//	-resume filename
//		  resume execution from a snapshot instead of loading a bytecode file
//	-trace
//		  log every executed instruction
//	-v level
//		  log verbosity level, overrides the configuration
//	-with filename
//		  Add filename to the input list (can be specified multiple times)
//
// If bytecode-file is not specified, the file set by paths.bytecode in the
// configuration is used, "bin/bytecode.bcd" by default.
//
// The in instruction reads numbers from the -with files, in order of
// appearance on the command line, then from stdin. The out instruction writes
// to stdout.
//
// -display: with "term", frames are drawn on the terminal using 24 bit colors,
// downscaled to fit the console. Terminal echo is turned off while running,
// unless stdin is the same terminal, since the in instruction reads from it. With "png", the last frame is written to the
// file set by display.output in the configuration. The display size is set by
// display.width and display.height.
//
// -debug: will print a full stacktrace and a dump of the CPU state should the
// program fault.
//
// -trace: instructions are logged at debug level under the name softcpu.vm,
// so a verbosity of at least 2 is required to see them.
//
// -dump, -resume: snapshots are CBOR encoded. A snapshot written after the
// instruction limit was reached can be resumed later.
//
// The exit status is 0 when the program halts. Execution faults exit with the
// fault number:
//
//	1	invalid executable
//	2	not enough values for operation
//	3	math error
//	4	i/o error
//	5	invalid command argument
//	6	reached program end without halting
//	7	invalid command
//	8	invalid argument type
//	9	instruction limit reached
//
// Any other error exits with status 1.
package main
