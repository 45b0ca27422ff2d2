// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package policy holds the rule model: what each action requires, how
// deprecated rules compose into their replacements, and the registry
// snapshots the engine reads. Policy is configuration, not data; rules
// change on load or reload, never per request.
package policy

import (
	"context"
	"strings"

	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/action"
	"github.com/outpost-sec/warden/internal/types/scope"
)

// Ownership names the relationship between a principal and a target that can
// substitute for role possession on read-only actions. Clauses are a closed
// set evaluated against the target descriptor, never user-supplied
// expressions.
type Ownership string

const (
	// OwnershipNone means the rule has no ownership alternative.
	OwnershipNone Ownership = ""

	// OwnershipProject allows a project-scoped principal access to targets
	// belonging to its own project.
	OwnershipProject Ownership = "project"

	// OwnershipOwner allows a principal access to targets it owns directly.
	OwnershipOwner Ownership = "owner"
)

// Condition is one alternative way to satisfy a rule: the principal's scope
// type must be listed and, when Roles is non-empty, the principal must hold
// at least one of them. An empty Roles list admits any authenticated
// principal at a listed scope.
type Condition struct {
	Scopes []scope.Type
	Roles  []string
}

// Rule is the effective policy for a single action. When a deprecated rule
// exists for the action it has already been OR-composed into Conditions at
// load time, so evaluation always considers exactly one Rule. Rules are
// immutable once constructed; the registry shares them across requests.
type Rule struct {
	// Action is the name the rule is looked up by, e.g.
	// "identity:list_projects".
	Action string

	// Conditions holds the primary condition first, followed by any
	// OR-composed compatibility alternatives.
	Conditions []Condition

	// Ownership is the optional ownership alternative. It only applies to
	// read-only verbs; write actions always go through the role gate.
	Ownership Ownership

	// Verb classifies the action; it is derived from the action name unless
	// set explicitly.
	Verb action.Type
}

// DeriveVerb infers the action verb from an action name such as
// "identity:list_projects" or "identity:get_project".
func DeriveVerb(actionName string) action.Type {
	name := actionName
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "_"); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "list":
		return action.List
	case "get":
		return action.Read
	case "create":
		return action.Create
	case "update":
		return action.Update
	case "delete":
		return action.Delete
	}
	return action.Unknown
}

func (r Rule) validate(ctx context.Context) error {
	const op = "policy.(Rule).validate"
	if r.Action == "" {
		return errors.New(ctx, errors.InvalidConfiguration, op, "missing action")
	}
	if len(r.Conditions) == 0 {
		return errors.New(ctx, errors.InvalidConfiguration, op, "rule has no conditions: "+r.Action)
	}
	for _, c := range r.Conditions {
		if len(c.Scopes) == 0 {
			return errors.New(ctx, errors.InvalidConfiguration, op, "condition has no scopes: "+r.Action)
		}
		for _, s := range c.Scopes {
			switch s {
			case scope.System, scope.Domain, scope.Project:
			default:
				return errors.New(ctx, errors.InvalidConfiguration, op, "condition has an unknown scope type: "+r.Action)
			}
		}
	}
	switch r.Ownership {
	case OwnershipNone, OwnershipProject, OwnershipOwner:
	default:
		return errors.New(ctx, errors.InvalidConfiguration, op, "unknown ownership clause: "+string(r.Ownership))
	}
	return nil
}
