// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"

	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/scope"
)

// Grant assigns a role to a user within a scope. The tuple (user, role,
// scope type, scope id) is unique; granting the same role twice in the same
// scope is an integrity violation. System scoped grants carry an empty scope
// id since system scope is global.
type Grant struct {
	PublicId  string `gorm:"primaryKey"`
	UserId    string `gorm:"default:null"`
	RoleId    string `gorm:"default:null"`
	ScopeType uint   `gorm:"default:null"`
	ScopeId   string `gorm:"default:''"`
}

func (*Grant) TableName() string {
	return "iam_grant"
}

// NewGrant creates a new in memory Grant assigning roleId to userId within
// the given scope.
func NewGrant(ctx context.Context, userId, roleId string, s scope.Scope) (*Grant, error) {
	const op = "iam.NewGrant"
	if userId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing user id")
	}
	if roleId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing role id")
	}
	switch s.Type {
	case scope.System:
		if s.Id != "" {
			return nil, errors.New(ctx, errors.InvalidParameter, op, "system scope must not have a scope id")
		}
	case scope.Domain, scope.Project:
		if s.Id == "" {
			return nil, errors.New(ctx, errors.InvalidParameter, op, "missing scope id")
		}
	default:
		return nil, errors.New(ctx, errors.InvalidParameter, op, "unknown scope type")
	}
	return &Grant{
		UserId:    userId,
		RoleId:    roleId,
		ScopeType: uint(s.Type),
		ScopeId:   s.Id,
	}, nil
}

// Scope returns the scope the grant applies within.
func (g *Grant) Scope() scope.Scope {
	return scope.Scope{Type: scope.Type(g.ScopeType), Id: g.ScopeId}
}
