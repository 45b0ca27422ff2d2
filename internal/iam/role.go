// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"

	"github.com/outpost-sec/warden/internal/errors"
)

// Role is a named bundle of authority. Roles only become meaningful through
// Grants, which bind them to a user within a specific scope.
type Role struct {
	PublicId string `gorm:"primaryKey"`
	Name     string `gorm:"default:null"`
}

func (*Role) TableName() string {
	return "iam_role"
}

// NewRole creates a new in memory Role with the given name.
func NewRole(ctx context.Context, name string) (*Role, error) {
	const op = "iam.NewRole"
	if name == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing name")
	}
	return &Role{
		Name: name,
	}, nil
}

// RoleImplication records that holding the role implies also holding the
// implied role, within whatever scope the original grant names. Bootstrap
// seeds the admin -> member -> reader chain; the resolver expands the
// transitive closure when building a principal.
type RoleImplication struct {
	RoleId        string `gorm:"primaryKey"`
	ImpliesRoleId string `gorm:"primaryKey"`
}

func (*RoleImplication) TableName() string {
	return "iam_role_implication"
}

// NewRoleImplication creates a new in memory RoleImplication.
func NewRoleImplication(ctx context.Context, roleId, impliesRoleId string) (*RoleImplication, error) {
	const op = "iam.NewRoleImplication"
	if roleId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing role id")
	}
	if impliesRoleId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing implied role id")
	}
	if roleId == impliesRoleId {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "role cannot imply itself")
	}
	return &RoleImplication{
		RoleId:        roleId,
		ImpliesRoleId: impliesRoleId,
	}, nil
}
