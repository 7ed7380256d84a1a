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

import "github.com/pkg/errors"

// Fault is an execution fault. Errors returned by Run, Step and
// DecodeInstruction wrap a Fault; use errors.Cause to retrieve it.
//
// Fault values double as process exit codes (see ExitCode).
type Fault uint8

// Execution faults.
const (
	ErrInvalidExecutable   Fault = iota + 1 // truncated instruction
	ErrNotEnoughValues                      // stack underflow
	ErrMath                                 // division by zero, square root of a negative number
	ErrIO                                   // in/out transfer failed
	ErrInvalidCmdArgument                   // malformed operand or address
	ErrReachedEndNotHalted                  // pc ran past the program without hlt
	ErrInvalidCommand                       // unknown opcode
	ErrInvalidArgumentType                  // bad mode byte or register index
	ErrInstructionLimit                     // MaxInstructions exceeded
)

var faultNames = [...]string{
	ErrInvalidExecutable:   "invalid executable",
	ErrNotEnoughValues:     "not enough values for operation",
	ErrMath:                "math error",
	ErrIO:                  "i/o error",
	ErrInvalidCmdArgument:  "invalid command argument",
	ErrReachedEndNotHalted: "reached program end without halting",
	ErrInvalidCommand:      "invalid command",
	ErrInvalidArgumentType: "invalid argument type",
	ErrInstructionLimit:    "instruction limit reached",
}

func (f Fault) Error() string {
	if int(f) < len(faultNames) && faultNames[f] != "" {
		return faultNames[f]
	}
	return "unknown fault"
}

// ExitCode returns the process exit status for an error returned by Run: 0 for
// nil, the Fault value for execution faults and 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if f, ok := errors.Cause(err).(Fault); ok {
		return int(f)
	}
	return 1
}
