// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package authz evaluates whether a principal may perform an action,
// optionally against a target. The engine is pure: it reads the rule
// registry and its inputs, performs no I/O, and emits no events. Every gate
// is deny-by-default; the only way to an allow is an explicit rule match.
package authz

import (
	"context"

	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/policy"
	"github.com/outpost-sec/warden/internal/types/scope"
)

// Authorize evaluates the rule for actionName against the principal and the
// optional target descriptor.
//
// The role gate passes when some condition admits the principal's scope
// type and its roles overlap the principal's (an empty role list admits any
// principal at a matching scope). When the role gate fails and the rule
// carries an ownership clause on a read-only verb, the clause is evaluated
// against the target as an independent alternative; a principal can own its
// way in even from a scope no condition lists. Deny reasons say which gate
// was decisive: scope-mismatch when no condition admits the scope type and
// no ownership alternative exists, missing-role when the scope matched but
// roles didn't, insufficient-privilege when the ownership alternative also
// failed. Identical inputs always produce identical decisions.
func Authorize(ctx context.Context, reg *policy.Registry, p Principal, actionName string, target *Target) (Decision, error) {
	const op = "authz.Authorize"
	if reg == nil {
		return Decision{}, errors.New(ctx, errors.InvalidParameter, op, "missing registry")
	}
	if err := p.validate(ctx); err != nil {
		return Decision{}, errors.Wrap(ctx, err, op)
	}
	rule, err := reg.Lookup(ctx, actionName)
	if err != nil {
		return Decision{}, errors.Wrap(ctx, err, op)
	}

	scopeOk := false
	for _, cond := range rule.Conditions {
		if !scopeMatches(cond.Scopes, p.Scope.Type) {
			continue
		}
		scopeOk = true
		if p.HasAnyRole(cond.Roles) {
			return Allow(), nil
		}
	}
	if rule.Ownership != policy.OwnershipNone && rule.Verb.ReadOnly() {
		if target != nil && ownershipSatisfied(rule.Ownership, p, target) {
			return AllowViaOwnership(), nil
		}
		return Deny(ReasonInsufficientPrivilege), nil
	}
	if !scopeOk {
		return Deny(ReasonScopeMismatch), nil
	}
	return Deny(ReasonMissingRole), nil
}

func scopeMatches(scopes []scope.Type, t scope.Type) bool {
	for _, s := range scopes {
		if s == t {
			return true
		}
	}
	return false
}

func ownershipSatisfied(o policy.Ownership, p Principal, target *Target) bool {
	switch o {
	case policy.OwnershipProject:
		return p.Scope.Type == scope.Project &&
			target.ProjectId != "" &&
			p.Scope.Id == target.ProjectId
	case policy.OwnershipOwner:
		return target.OwnerId != "" && p.UserId == target.OwnerId
	}
	return false
}
