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

package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tralf-strues/software-cpu/vm"
)

// saveSnapshot writes the CPU state to fileName.
func saveSnapshot(i *vm.Instance, fileName string) error {
	data, err := vm.MarshalSnapshot(i.Snapshot())
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return errors.Wrap(err, "create snapshot directory")
	}
	return errors.Wrap(os.WriteFile(fileName, data, 0644), "write snapshot")
}

// loadSnapshot reads a CPU state written by saveSnapshot.
func loadSnapshot(fileName string) (*vm.Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}
	return vm.UnmarshalSnapshot(data)
}
