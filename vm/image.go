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
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Load loads a bytecode image from file fileName. Bytecode files have no
// header: the image is the whole file.
func Load(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	sz := st.Size()
	if sz > int64((^uint(0))>>1) { // MaxInt
		return nil, errors.Errorf("Load %v: file too large", fileName)
	}
	if sz == 0 {
		return nil, errors.Errorf("Load %v: empty bytecode file", fileName)
	}
	code := make([]byte, sz)
	if _, err = io.ReadFull(bufio.NewReader(f), code); err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	return code, nil
}

// Save saves a bytecode image to file fileName. The file is removed if the
// image cannot be written completely.
func Save(fileName string, code []byte) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if _, err = w.Write(code); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return nil
}
