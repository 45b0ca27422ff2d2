// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package version

import (
	"github.com/mitchellh/cli"
	"github.com/outpost-sec/warden/version"
	"github.com/posener/complete"
)

var (
	_ cli.Command             = (*Command)(nil)
	_ cli.CommandAutocomplete = (*Command)(nil)
)

type Command struct {
	UI cli.Ui
}

func (c *Command) Synopsis() string {
	return "Prints the warden version"
}

func (c *Command) Help() string {
	return "Usage: warden version"
}

func (c *Command) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *Command) AutocompleteFlags() complete.Flags {
	return nil
}

func (c *Command) Run(_ []string) int {
	c.UI.Output(version.Get().FullVersionNumber(true))
	return 0
}
