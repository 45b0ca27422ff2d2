// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package eval

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/outpost-sec/warden/internal/authz"
	"github.com/outpost-sec/warden/internal/policy"
	"github.com/outpost-sec/warden/internal/types/scope"
	"github.com/posener/complete"
)

var (
	_ cli.Command             = (*Command)(nil)
	_ cli.CommandAutocomplete = (*Command)(nil)
)

// Command answers "would this principal be allowed?" against a rule file or
// the built-in rules, without touching any store. It exists for operators
// debugging rule changes; the decision comes from the same engine the
// enforcement points use.
type Command struct {
	UI cli.Ui

	flagRules           string
	flagAction          string
	flagUserId          string
	flagScope           string
	flagScopeId         string
	flagRoles           string
	flagTargetId        string
	flagTargetProjectId string
	flagTargetOwnerId   string
}

func (c *Command) Synopsis() string {
	return "Evaluates an authorization decision"
}

func (c *Command) Help() string {
	return strings.TrimSpace(`
Usage: warden eval -action <name> -user-id <id> -scope <type> [options]

  Evaluates the rule for the action against the given principal and optional
  target descriptor, printing the decision as JSON. Uses the built-in rules
  unless -rules points at an HCL rule file.

  Example:

    $ warden eval -action identity:get_project \
        -user-id u_1234567890 -scope project -scope-id p_0987654321 \
        -roles member,reader \
        -target-id p_0987654321 -target-project-id p_0987654321
`)
}

func (c *Command) Flags() *flag.FlagSet {
	f := flag.NewFlagSet("eval", flag.ContinueOnError)
	f.StringVar(&c.flagRules, "rules", "", "Path to an HCL rule file; defaults to the built-in rules.")
	f.StringVar(&c.flagAction, "action", "", "Action name to evaluate, e.g. identity:list_projects.")
	f.StringVar(&c.flagUserId, "user-id", "", "Public id of the principal.")
	f.StringVar(&c.flagScope, "scope", "", "Principal scope type: system, domain or project.")
	f.StringVar(&c.flagScopeId, "scope-id", "", "Principal scope id; empty for system scope.")
	f.StringVar(&c.flagRoles, "roles", "", "Comma-separated effective role names.")
	f.StringVar(&c.flagTargetId, "target-id", "", "Public id of the target resource, if any.")
	f.StringVar(&c.flagTargetProjectId, "target-project-id", "", "Project the target belongs to.")
	f.StringVar(&c.flagTargetOwnerId, "target-owner-id", "", "User that owns the target.")
	return f
}

func (c *Command) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *Command) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-rules": complete.PredictFiles("*.hcl"),
		"-scope": complete.PredictSet("system", "domain", "project"),
	}
}

func (c *Command) Run(args []string) int {
	ctx := context.Background()
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	switch {
	case c.flagAction == "":
		c.UI.Error("Missing required flag -action")
		return 1
	case c.flagUserId == "":
		c.UI.Error("Missing required flag -user-id")
		return 1
	case c.flagScope == "":
		c.UI.Error("Missing required flag -scope")
		return 1
	}

	scopeType, ok := scope.Map[c.flagScope]
	if !ok {
		c.UI.Error(fmt.Sprintf("Unknown scope type %q", c.flagScope))
		return 1
	}

	ruleSet := policy.DefaultRules()
	if c.flagRules != "" {
		src, err := os.ReadFile(c.flagRules)
		if err != nil {
			c.UI.Error(fmt.Sprintf("Error reading rule file: %s", err))
			return 1
		}
		if ruleSet, err = policy.ParseRules(ctx, string(src)); err != nil {
			c.UI.Error(fmt.Sprintf("Rule file is invalid:\n%s", err))
			return 1
		}
	}
	registry, err := policy.NewRegistry(ctx, ruleSet)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Rule set would not load: %s", err))
		return 1
	}

	principal := authz.Principal{
		UserId: c.flagUserId,
		Scope:  scope.Scope{Type: scopeType, Id: c.flagScopeId},
	}
	if c.flagRoles != "" {
		principal.Roles = strings.Split(c.flagRoles, ",")
	}

	var target *authz.Target
	if c.flagTargetId != "" {
		target = &authz.Target{
			Id:        c.flagTargetId,
			ProjectId: c.flagTargetProjectId,
			OwnerId:   c.flagTargetOwnerId,
		}
	}

	decision, err := authz.Authorize(ctx, registry, principal, c.flagAction, target)
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error evaluating decision: %s", err))
		return 1
	}

	out, err := json.MarshalIndent(struct {
		Action       string `json:"action"`
		Allowed      bool   `json:"allowed"`
		Reason       string `json:"reason,omitempty"`
		ViaOwnership bool   `json:"via_ownership,omitempty"`
	}{
		Action:       c.flagAction,
		Allowed:      decision.Allowed,
		Reason:       string(decision.Reason),
		ViaOwnership: decision.ViaOwnership,
	}, "", "  ")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(string(out))

	if !decision.Allowed {
		return 2
	}
	return 0
}
