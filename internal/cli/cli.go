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

// Package cli holds the command line handling shared by the software-cpu
// commands: common flags, configuration loading, logging and error exit.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/tralf-strues/software-cpu/internal/config"
)

// Common holds the flags shared by all commands and the resulting
// configuration.
type Common struct {
	ConfigFile string
	Debug      bool
	Verbose    int

	Config *config.Config
	Log    commonlog.Logger
}

// Register registers the common flags in fs.
func (c *Common) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", "", "load configuration from `file` instead of the nearest "+config.FileName)
	fs.BoolVar(&c.Debug, "debug", false, "enable debug diagnostics")
	fs.IntVar(&c.Verbose, "v", -1, "log verbosity `level`, overrides the configuration")
}

// Setup loads the configuration and configures logging for the command
// name. Must be called after flags are parsed.
func (c *Common) Setup(name string) error {
	var err error
	if c.ConfigFile != "" {
		c.Config, err = config.Load(c.ConfigFile)
	} else {
		c.Config, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}

	verbosity := c.Config.Log.Verbosity
	if c.Verbose >= 0 {
		verbosity = c.Verbose
	}
	if c.Debug && verbosity < 2 {
		verbosity = 2
	}
	var path *string
	if c.Config.Log.File != "" {
		p := c.Config.Path(c.Config.Log.File)
		path = &p
	}
	commonlog.Configure(verbosity, path)
	c.Log = commonlog.GetLogger("softcpu." + name)
	if c.Config.Dir != "" {
		c.Log.Debugf("using configuration from %s", c.Config.Dir)
	}
	return nil
}

// Exit prints err to stderr and exits with the given status. With -debug,
// the error is printed with its stack trace. Exit does nothing if err is nil.
func (c *Common) Exit(err error, status int) {
	if err == nil {
		return
	}
	if !c.Debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
	if status == 0 {
		status = 1
	}
	os.Exit(status)
}

// Usage returns a flag.Usage function printing the synopsis followed by the
// flag defaults.
func Usage(synopsis string) func() {
	return func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s %s\n", os.Args[0], synopsis)
		flag.PrintDefaults()
	}
}
