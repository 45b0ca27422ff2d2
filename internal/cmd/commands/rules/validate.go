// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package rules

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/outpost-sec/warden/internal/policy"
	"github.com/posener/complete"
)

var (
	_ cli.Command             = (*ValidateCommand)(nil)
	_ cli.CommandAutocomplete = (*ValidateCommand)(nil)
)

// ValidateCommand parses a rule file and builds a registry from it, so rule
// changes can be checked before they are deployed.
type ValidateCommand struct {
	UI cli.Ui

	flagRules string
}

func (c *ValidateCommand) Synopsis() string {
	return "Validates an authorization rule file"
}

func (c *ValidateCommand) Help() string {
	return strings.TrimSpace(`
Usage: warden rules validate -rules <file>

  Parses the HCL rule file, composes any deprecated blocks, and verifies the
  result would load into a rule registry. Exits non-zero when the file has
  problems; every problem found is reported, not just the first.
`)
}

func (c *ValidateCommand) Flags() *flag.FlagSet {
	f := flag.NewFlagSet("rules validate", flag.ContinueOnError)
	f.StringVar(&c.flagRules, "rules", "", "Path to the HCL rule file to validate.")
	return f
}

func (c *ValidateCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *ValidateCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-rules": complete.PredictFiles("*.hcl"),
	}
}

func (c *ValidateCommand) Run(args []string) int {
	ctx := context.Background()
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if c.flagRules == "" {
		c.UI.Error("Missing required flag -rules")
		return 1
	}

	src, err := os.ReadFile(c.flagRules)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error reading rule file: %s", err))
		return 1
	}
	parsed, err := policy.ParseRules(ctx, string(src))
	if err != nil {
		c.UI.Error(fmt.Sprintf("Rule file is invalid:\n%s", err))
		return 1
	}
	if _, err := policy.NewRegistry(ctx, parsed); err != nil {
		c.UI.Error(fmt.Sprintf("Rule set would not load: %s", err))
		return 1
	}

	c.UI.Output(fmt.Sprintf("Rule file is valid: %d rules", len(parsed)))
	return 0
}
