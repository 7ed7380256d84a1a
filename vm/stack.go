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

// Stack errors.
var (
	ErrPopFromEmpty = errors.New("pop from empty stack")
	ErrTopFromEmpty = errors.New("top from empty stack")
)

const (
	stackGrowth       = 1.8
	stackMinCapacity  = 3
	stackDefaultCells = 10
)

// Stack is a growable LIFO stack of float64 values.
type Stack struct {
	data []float64
	size int
}

// NewStack returns a new stack with the given initial capacity. Capacities
// below 3 are raised to 3.
func NewStack(capacity int) *Stack {
	if capacity < stackMinCapacity {
		capacity = stackMinCapacity
	}
	return &Stack{data: make([]float64, capacity)}
}

func (s *Stack) realloc(capacity int) {
	if capacity < stackMinCapacity {
		capacity = stackMinCapacity
	}
	t := make([]float64, capacity)
	copy(t, s.data[:s.size])
	s.data = t
}

// Push pushes v on top of the stack.
func (s *Stack) Push(v float64) {
	if s.size >= len(s.data) {
		s.realloc(int(float64(len(s.data)) * stackGrowth))
	}
	s.data[s.size] = v
	s.size++
}

// Pop removes the value on top of the stack and returns it.
func (s *Stack) Pop() (float64, error) {
	if s.size == 0 {
		return 0, ErrPopFromEmpty
	}
	s.size--
	return s.data[s.size], nil
}

// Top returns the value on top of the stack.
func (s *Stack) Top() (float64, error) {
	if s.size == 0 {
		return 0, ErrTopFromEmpty
	}
	return s.data[s.size-1], nil
}

// Clear empties the stack. Its capacity is left untouched.
func (s *Stack) Clear() { s.size = 0 }

// Len returns the stack depth.
func (s *Stack) Len() int { return s.size }

// Cap returns the stack capacity.
func (s *Stack) Cap() int { return len(s.data) }

// ShrinkToFit reduces the capacity to the current depth (but no less than 3).
func (s *Stack) ShrinkToFit() {
	if s.size < len(s.data) {
		s.realloc(s.size)
	}
}

// Values returns the stack contents, bottom first. Changes to the returned
// slice are reflected in the stack.
func (s *Stack) Values() []float64 {
	return s.data[:s.size]
}
