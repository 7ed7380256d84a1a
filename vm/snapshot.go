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

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Snapshot is a copy of the full CPU state.
type Snapshot struct {
	Program      []byte    `cbor:"1,keyasint"`
	PC           int       `cbor:"2,keyasint"`
	Halted       bool      `cbor:"3,keyasint"`
	Regs         []float64 `cbor:"4,keyasint"`
	Data         []float64 `cbor:"5,keyasint"`
	Calls        []float64 `cbor:"6,keyasint"`
	RAM          []float64 `cbor:"7,keyasint"`
	VRAM         []byte    `cbor:"8,keyasint"`
	Instructions int64     `cbor:"9,keyasint"`
}

// canonical encoding so that identical states encode to identical bytes.
var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	snapshotEncMode = em
}

// Snapshot returns a copy of the CPU state.
func (i *Instance) Snapshot() *Snapshot {
	s := &Snapshot{
		Program:      append([]byte(nil), i.Program...),
		PC:           i.PC,
		Halted:       i.halted,
		Regs:         append([]float64(nil), i.Regs[:]...),
		Data:         append([]float64(nil), i.data.Values()...),
		Calls:        append([]float64(nil), i.calls.Values()...),
		RAM:          i.mem.cells(),
		VRAM:         append([]byte(nil), i.mem.VRAM()...),
		Instructions: i.insCount,
	}
	return s
}

// Restore sets the CPU state from s. The snapshot VRAM must fit in the
// instance's VRAM.
func (i *Instance) Restore(s *Snapshot) error {
	if len(s.Regs) != RegisterCount {
		return errors.Errorf("Restore: snapshot has %d registers, expected %d", len(s.Regs), RegisterCount)
	}
	if len(s.RAM) > RAMCells {
		return errors.Errorf("Restore: snapshot has %d RAM cells, expected at most %d", len(s.RAM), RAMCells)
	}
	if len(s.VRAM) > i.mem.VRAMSize() {
		return errors.Errorf("Restore: snapshot VRAM size %d exceeds display buffer size %d", len(s.VRAM), i.mem.VRAMSize())
	}
	if s.PC < 0 || s.PC > len(s.Program) {
		return errors.Errorf("Restore: pc %d out of range", s.PC)
	}
	i.Program = append([]byte(nil), s.Program...)
	i.PC = s.PC
	i.halted = s.Halted
	copy(i.Regs[:], s.Regs)
	i.data.Clear()
	for _, v := range s.Data {
		i.data.Push(v)
	}
	i.calls.Clear()
	for _, v := range s.Calls {
		i.calls.Push(v)
	}
	i.mem = NewMemory(i.mem.VRAMSize())
	for n, v := range s.RAM {
		i.mem.WriteDouble(n, v)
	}
	copy(i.mem.VRAM(), s.VRAM)
	i.insCount = s.Instructions
	return nil
}

// MarshalSnapshot serializes a Snapshot to CBOR bytes.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	b, err := snapshotEncMode.Marshal(s)
	return b, errors.Wrap(err, "marshal snapshot")
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR bytes.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "unmarshal snapshot")
	}
	return &s, nil
}
