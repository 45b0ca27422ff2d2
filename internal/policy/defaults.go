// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import (
	"github.com/outpost-sec/warden/globals"
	"github.com/outpost-sec/warden/internal/types/action"
	"github.com/outpost-sec/warden/internal/types/scope"
)

// DefaultRules returns the built-in rule set. Project reads admit system
// readers or the project's own members via ownership; all project writes
// require a system admin. Registered limit reads carry an OR-composed
// compatibility condition admitting admins at any scope, preserved from
// before the reader role existed; deployments that have finished migrating
// drop it by loading their own rule file.
func DefaultRules() []Rule {
	systemReader := Condition{
		Scopes: []scope.Type{scope.System},
		Roles:  []string{globals.RoleNameReader},
	}
	systemAdmin := Condition{
		Scopes: []scope.Type{scope.System},
		Roles:  []string{globals.RoleNameAdmin},
	}
	anyScopeAdmin := Condition{
		Scopes: []scope.Type{scope.System, scope.Domain, scope.Project},
		Roles:  []string{globals.RoleNameAdmin},
	}

	return []Rule{
		{
			Action:     "identity:list_projects",
			Conditions: []Condition{systemReader},
			Verb:       action.List,
		},
		{
			Action:     "identity:get_project",
			Conditions: []Condition{systemReader},
			Ownership:  OwnershipProject,
			Verb:       action.Read,
		},
		{
			Action:     "identity:list_user_projects",
			Conditions: []Condition{systemReader},
			Ownership:  OwnershipOwner,
			Verb:       action.List,
		},
		{
			Action:     "identity:create_project",
			Conditions: []Condition{systemAdmin},
			Verb:       action.Create,
		},
		{
			Action:     "identity:update_project",
			Conditions: []Condition{systemAdmin},
			Verb:       action.Update,
		},
		{
			Action:     "identity:delete_project",
			Conditions: []Condition{systemAdmin},
			Verb:       action.Delete,
		},
		{
			Action:     "identity:list_registered_limits",
			Conditions: []Condition{systemReader, anyScopeAdmin},
			Verb:       action.List,
		},
		{
			Action:     "identity:get_registered_limit",
			Conditions: []Condition{systemReader, anyScopeAdmin},
			Verb:       action.Read,
		},
		{
			Action:     "identity:create_registered_limits",
			Conditions: []Condition{systemAdmin},
			Verb:       action.Create,
		},
		{
			Action:     "identity:update_registered_limits",
			Conditions: []Condition{systemAdmin},
			Verb:       action.Update,
		},
		{
			Action:     "identity:delete_registered_limits",
			Conditions: []Condition{systemAdmin},
			Verb:       action.Delete,
		},
	}
}
