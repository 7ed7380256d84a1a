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
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/tralf-strues/software-cpu/internal/cli"
	"github.com/tralf-strues/software-cpu/internal/config"
	"github.com/tralf-strues/software-cpu/vm"
)

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

var (
	c           cli.Common
	withFiles   fileList
	displayMode string
	dumpFile    string
	resumeFile  string
	maxIns      int64
	trace       bool
)

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if c.Log != nil {
		c.Log.Errorf("%v", err)
	}
	if c.Debug && i != nil {
		i.Dump(os.Stderr)
	}
	c.Exit(err, vm.ExitCode(err))
}

func newCPU(fileName string, opts ...vm.Option) (*vm.Instance, error) {
	if resumeFile == "" {
		program, err := vm.Load(fileName)
		if err != nil {
			return nil, err
		}
		return vm.New(program, opts...)
	}
	s, err := loadSnapshot(resumeFile)
	if err != nil {
		return nil, err
	}
	i, err := vm.New(nil, opts...)
	if err != nil {
		return nil, err
	}
	if err = i.Restore(s); err != nil {
		return nil, errors.Wrapf(err, "resume from %s", resumeFile)
	}
	return i, nil
}

func main() {
	// check exit condition
	var err error
	var i *vm.Instance
	var closers []func() error

	// close displays, flush output, save state, catch and log errors
	defer func() {
		for n := len(closers) - 1; n >= 0; n-- {
			if cerr := closers[n](); err == nil && cerr != nil {
				err = cerr
			}
		}
		if i != nil && dumpFile != "" {
			if serr := saveSnapshot(i, dumpFile); err == nil {
				err = serr
			}
		}
		atExit(i, err)
	}()

	c.Register(flag.CommandLine)
	flag.StringVar(&displayMode, "display", "", "display `mode`: none, term or png (default from configuration)")
	flag.StringVar(&dumpFile, "dump", "", "write a snapshot of the CPU state to `filename` upon exit")
	flag.StringVar(&resumeFile, "resume", "", "resume execution from a snapshot in `filename`")
	flag.Int64Var(&maxIns, "max", -1, "maximum number of instructions to execute, 0 for no limit")
	flag.BoolVar(&trace, "trace", false, "log every executed instruction")
	flag.Var(&withFiles, "with", "Add `filename` to the input list (can be specified multiple times)")
	flag.Usage = cli.Usage("[flags] [bytecode-file]")
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err = c.Setup("cpu"); err != nil {
		return
	}
	cfg := c.Config
	fileName := cfg.Path(cfg.Paths.Bytecode)
	if flag.NArg() > 0 {
		fileName = flag.Arg(0)
	}
	if displayMode == "" {
		displayMode = cfg.Display.Mode
	}
	if maxIns < 0 {
		maxIns = cfg.CPU.MaxInstructions
	}

	d, closeDisplay, err := newDisplay(cfg, displayMode)
	if err != nil {
		return
	}
	if closeDisplay != nil {
		closers = append(closers, closeDisplay)
	}

	// the terminal display draws on stdout, don't buffer program output then.
	var output io.Writer = os.Stdout
	if displayMode != config.DisplayTerm {
		stdout := bufio.NewWriter(os.Stdout)
		closers = append(closers, stdout.Flush)
		output = stdout
	}

	opts := []vm.Option{
		vm.Input(os.Stdin),
		vm.Output(output),
		vm.WithDisplay(d),
		vm.MaxInstructions(maxIns),
	}
	if trace || cfg.CPU.Trace {
		opts = append(opts, vm.Trace(commonlog.GetLogger("softcpu.vm")))
	}

	if i, err = newCPU(fileName, opts...); err != nil {
		return
	}
	// push -with files in reverse order so that they are read in order of
	// appearance on the command line.
	for n := len(withFiles) - 1; n >= 0; n-- {
		var f *os.File
		if f, err = os.Open(withFiles[n]); err != nil {
			return
		}
		i.PushInput(f)
	}

	c.Log.Debugf("running %s, %d bytes", fileName, len(i.Program))
	err = i.Run()
	c.Log.Infof("%d instructions executed", i.InstructionCount())
}
