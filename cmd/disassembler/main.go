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
	"bytes"
	"flag"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tralf-strues/software-cpu/asm"
	"github.com/tralf-strues/software-cpu/internal/cli"
	"github.com/tralf-strues/software-cpu/vm"
)

func writeFile(name string, data []byte) error {
	if name == "-" {
		_, err := os.Stdout.Write(data)
		return errors.Wrap(err, "write failed")
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	return errors.Wrap(os.WriteFile(name, data, 0644), "write failed")
}

func main() {
	var c cli.Common
	c.Register(flag.CommandLine)
	listing := flag.Bool("l", false, "write a listing with byte offsets instead of plain assembly")
	flag.Usage = cli.Usage("[flags] <bytecode-file> [asm-file]")
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	c.Exit(c.Setup("disassembler"), 1)

	src := flag.Arg(0)
	dst := c.Config.Path(c.Config.Paths.Disassembly)
	if flag.NArg() > 1 {
		dst = flag.Arg(1)
	}

	code, err := vm.Load(src)
	c.Exit(err, 1)

	var b bytes.Buffer
	disasm := asm.DisassembleAll
	if *listing {
		disasm = asm.Listing
	}
	if err = disasm(code, &b); err != nil {
		c.Log.Errorf("%s: invalid bytecode", src)
		c.Exit(err, 1)
	}
	c.Exit(writeFile(dst, b.Bytes()), 1)
	if dst != "-" {
		c.Log.Infof("%s: disassembly written to %s", src, dst)
	}
}

