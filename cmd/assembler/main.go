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
	"bufio"
	"flag"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tralf-strues/software-cpu/asm"
	"github.com/tralf-strues/software-cpu/internal/cli"
	"github.com/tralf-strues/software-cpu/vm"
)

func assemble(src, dst string) ([]byte, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	code, err := asm.Assemble(src, bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}
	return code, vm.Save(dst, code)
}

func main() {
	var c cli.Common
	c.Register(flag.CommandLine)
	listing := flag.Bool("l", false, "print a listing of the generated code to stdout")
	flag.Usage = cli.Usage("[flags] <asm-file> [bytecode-file]")
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	c.Exit(c.Setup("assembler"), 1)

	src := flag.Arg(0)
	dst := c.Config.Path(c.Config.Paths.Bytecode)
	if flag.NArg() > 1 {
		dst = flag.Arg(1)
	}

	code, err := assemble(src, dst)
	if err != nil {
		c.Log.Errorf("%s: assembly failed", src)
		c.Exit(err, 1)
	}
	c.Log.Infof("%s: %d bytes written to %s", src, len(code), dst)

	if *listing {
		w := bufio.NewWriter(os.Stdout)
		err = asm.Listing(code, w)
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
		c.Exit(err, 1)
	}
}
