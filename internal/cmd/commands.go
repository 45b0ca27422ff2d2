// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package cmd

import (
	"github.com/mitchellh/cli"
	"github.com/outpost-sec/warden/internal/cmd/commands/eval"
	"github.com/outpost-sec/warden/internal/cmd/commands/rules"
	"github.com/outpost-sec/warden/internal/cmd/commands/version"
)

// Commands is the mapping of all the available commands.
var Commands map[string]cli.CommandFactory

func initCommands(ui cli.Ui) {
	Commands = map[string]cli.CommandFactory{
		"eval": func() (cli.Command, error) {
			return &eval.Command{UI: ui}, nil
		},
		"rules validate": func() (cli.Command, error) {
			return &rules.ValidateCommand{UI: ui}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{UI: ui}, nil
		},
	}
}
