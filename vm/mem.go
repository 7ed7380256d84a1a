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
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Memory layout.
const (
	RAMCells  = 1024     // number of addressable float64 cells
	CellSize  = 8        // bytes per RAM cell
	VRAMStart = RAMCells // first address mapped to VRAM

	vramOffset = RAMCells * CellSize
)

// Memory is the CPU's linear memory: RAMCells float64 cells followed by the
// byte-addressed frame buffer (VRAM). Both views share one byte slice.
//
// Addresses below VRAMStart select a RAM cell, addresses at or above select
// the VRAM byte at address-VRAMStart.
type Memory struct {
	b []byte
}

// NewMemory allocates zeroed memory with vramSize bytes of VRAM.
func NewMemory(vramSize int) *Memory {
	if vramSize < 0 {
		vramSize = 0
	}
	return &Memory{b: make([]byte, vramOffset+vramSize)}
}

// ReadDouble returns RAM cell i.
func (m *Memory) ReadDouble(i int) float64 {
	o := i * CellSize
	return math.Float64frombits(binary.LittleEndian.Uint64(m.b[o : o+CellSize]))
}

// WriteDouble sets RAM cell i to v.
func (m *Memory) WriteDouble(i int, v float64) {
	o := i * CellSize
	binary.LittleEndian.PutUint64(m.b[o:o+CellSize], math.Float64bits(v))
}

// ReadByteAt returns the VRAM byte at offset off.
func (m *Memory) ReadByteAt(off int) byte {
	return m.b[vramOffset+off]
}

// WriteByteAt sets the VRAM byte at offset off.
func (m *Memory) WriteByteAt(off int, v byte) {
	m.b[vramOffset+off] = v
}

// VRAM returns the frame buffer region.
func (m *Memory) VRAM() []byte {
	return m.b[vramOffset:]
}

// VRAMSize returns the size of the frame buffer in bytes.
func (m *Memory) VRAMSize() int {
	return len(m.b) - vramOffset
}

// ClearVRAM zeroes the first n bytes of VRAM.
func (m *Memory) ClearVRAM(n int) {
	v := m.VRAM()
	if n > len(v) {
		n = len(v)
	}
	for i := range v[:n] {
		v[i] = 0
	}
}

func (m *Memory) index(addr float64) (int, error) {
	if math.IsNaN(addr) || addr < 0 {
		return 0, errors.Wrapf(ErrInvalidCmdArgument, "invalid address %g", addr)
	}
	if addr >= float64(VRAMStart+m.VRAMSize()) {
		return 0, errors.Wrapf(ErrInvalidCmdArgument, "address %g out of range", addr)
	}
	return int(addr), nil
}

// Load returns the value at address addr. VRAM bytes are returned as their
// unsigned integer value.
func (m *Memory) Load(addr float64) (float64, error) {
	i, err := m.index(addr)
	if err != nil {
		return 0, err
	}
	if i >= VRAMStart {
		return float64(m.ReadByteAt(i - VRAMStart)), nil
	}
	return m.ReadDouble(i), nil
}

// Store writes v at address addr. Stores into VRAM keep the low 8 bits of the
// truncated value.
func (m *Memory) Store(addr, v float64) error {
	i, err := m.index(addr)
	if err != nil {
		return err
	}
	if i >= VRAMStart {
		m.WriteByteAt(i-VRAMStart, byte(int64(v)))
		return nil
	}
	m.WriteDouble(i, v)
	return nil
}

// cells returns a copy of all RAM cells.
func (m *Memory) cells() []float64 {
	c := make([]float64, RAMCells)
	for i := range c {
		c[i] = m.ReadDouble(i)
	}
	return c
}
