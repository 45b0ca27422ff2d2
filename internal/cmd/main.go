// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/outpost-sec/warden/internal/event"
)

// Run runs the CLI with the given args and returns the exit code.
func Run(args []string) int {
	return RunCustom(args)
}

// RunCustom sets up the eventer, builds the command tree, and dispatches.
func RunCustom(args []string) int {
	if len(args) == 1 && (args[0] == "-v" || args[0] == "-version" || args[0] == "--version") {
		args = []string{"version"}
	}

	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "warden",
		Level: hclog.Warn,
	})
	if err := event.InitSysEventer(logger, event.WithEventerConfig(&event.EventerConfig{})); err != nil {
		ui.Error(fmt.Sprintf("Error initializing eventer: %s", err))
		return 1
	}

	initCommands(ui)

	c := &cli.CLI{
		Name:         "warden",
		Args:         args,
		Commands:     Commands,
		HelpFunc:     cli.BasicHelpFunc("warden"),
		Autocomplete: true,
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(fmt.Sprintf("Error executing CLI: %s", err))
		return 1
	}
	return exitCode
}
