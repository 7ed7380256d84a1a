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

package asm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Syntax error kinds. Use errors.Cause on an *Error, or its Kind field, to
// compare against these.
var (
	ErrUnknownCommand  = errors.New("unrecognized command")
	ErrArgCount        = errors.New("invalid number of arguments")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrLabelSyntax     = errors.New("invalid label")
	ErrLabelRedefined  = errors.New("label defined more than once")
	ErrLabelNotFound   = errors.New("label not found")
)

// Position is a source line.
type Position struct {
	Filename string
	Line     int    // 1-based line number
	Text     string // line contents
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// Error is a syntax error.
type Error struct {
	Pos  Position
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %s\n%5d | %s", e.Pos, e.Kind, e.Msg, e.Pos.Line, e.Pos.Text)
}

// Cause returns the error kind. It makes Error usable with errors.Cause.
func (e *Error) Cause() error { return e.Kind }

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.Kind }
