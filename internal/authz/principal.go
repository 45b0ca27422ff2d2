// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package authz

import (
	"context"

	"github.com/hashicorp/go-secure-stdlib/strutil"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/scope"
)

// Principal is the authenticated caller as the engine sees it: a user id,
// the single scope the credential was issued for, and the effective role
// names at that scope with implications already expanded. It carries no
// credential material; token verification happens before a Principal exists.
type Principal struct {
	// UserId is the public id of the authenticated user.
	UserId string

	// Scope is the scope the principal's credential is bound to. A
	// system-scoped principal has an empty Scope.Id.
	Scope scope.Scope

	// Roles holds the effective role names at Scope. An empty list is a
	// valid principal that will fail every role gate.
	Roles []string
}

// HasAnyRole reports whether the principal holds at least one of the given
// roles. An empty want list admits any principal.
func (p Principal) HasAnyRole(want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, r := range want {
		if strutil.StrListContains(p.Roles, r) {
			return true
		}
	}
	return false
}

func (p Principal) validate(ctx context.Context) error {
	const op = "authz.(Principal).validate"
	if p.UserId == "" {
		return errors.New(ctx, errors.InvalidParameter, op, "missing user id")
	}
	switch p.Scope.Type {
	case scope.System:
		if p.Scope.Id != "" {
			return errors.New(ctx, errors.InvalidParameter, op, "system scope cannot have an id")
		}
	case scope.Domain, scope.Project:
		if p.Scope.Id == "" {
			return errors.New(ctx, errors.InvalidParameter, op, "missing scope id")
		}
	default:
		return errors.New(ctx, errors.InvalidParameter, op, "unknown scope type")
	}
	return nil
}
