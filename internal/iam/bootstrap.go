// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"
	stderrors "errors"

	"github.com/hashicorp/go-dbw"
	"github.com/outpost-sec/warden/globals"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/scope"
)

// BootstrapResult reports the ids of the records Bootstrap ensured exist.
type BootstrapResult struct {
	DomainId     string
	AdminUserId  string
	AdminRoleId  string
	MemberRoleId string
	ReaderRoleId string
}

// Bootstrap seeds the well-known roles with their implication chain
// (admin implies member implies reader), the default domain, and an admin
// user holding a system-scoped admin grant. It is safe to call on an already
// bootstrapped store; existing records are reused.
func Bootstrap(ctx context.Context, r *Repository, adminLoginName, adminPassword string) (*BootstrapResult, error) {
	const op = "iam.Bootstrap"
	if r == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing repository")
	}
	if adminLoginName == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing admin login name")
	}
	if adminPassword == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing admin password")
	}

	res := &BootstrapResult{}

	roleIds := make(map[string]string, 3)
	for _, name := range []string{globals.RoleNameReader, globals.RoleNameMember, globals.RoleNameAdmin} {
		role, err := r.LookupRoleByName(ctx, name)
		switch {
		case err == nil:
			roleIds[name] = role.PublicId
			continue
		case !errors.IsNotFoundError(err):
			return nil, errors.Wrap(ctx, err, op)
		}
		newRole, err := NewRole(ctx, name)
		if err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		created, err := r.CreateRole(ctx, newRole)
		if err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		roleIds[name] = created.PublicId
	}
	res.ReaderRoleId = roleIds[globals.RoleNameReader]
	res.MemberRoleId = roleIds[globals.RoleNameMember]
	res.AdminRoleId = roleIds[globals.RoleNameAdmin]

	for _, imp := range [][2]string{
		{res.AdminRoleId, res.MemberRoleId},
		{res.MemberRoleId, res.ReaderRoleId},
	} {
		if _, err := r.AddRoleImplication(ctx, imp[0], imp[1]); err != nil {
			if !errors.IsUniqueError(err) {
				return nil, errors.Wrap(ctx, err, op)
			}
		}
	}

	var domain Domain
	err := r.rw.LookupWhere(ctx, &domain, "name = ?", []any{globals.DefaultDomainName})
	switch {
	case err == nil:
		res.DomainId = domain.PublicId
	case !stderrors.Is(err, dbw.ErrRecordNotFound):
		return nil, errors.Wrap(ctx, err, op)
	default:
		d, err := NewDomain(ctx, globals.DefaultDomainName)
		if err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		created, err := r.CreateDomain(ctx, d)
		if err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		res.DomainId = created.PublicId
	}

	var admin User
	err = r.rw.LookupWhere(ctx, &admin, "domain_id = ? and login_name = ?", []any{res.DomainId, adminLoginName})
	switch {
	case err == nil:
		res.AdminUserId = admin.PublicId
	case !stderrors.Is(err, dbw.ErrRecordNotFound):
		return nil, errors.Wrap(ctx, err, op)
	default:
		u, err := NewUser(ctx, res.DomainId, adminLoginName, WithName("bootstrap admin"))
		if err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		created, err := r.CreateUser(ctx, u, adminPassword)
		if err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		res.AdminUserId = created.PublicId

		g, err := NewGrant(ctx, res.AdminUserId, res.AdminRoleId, scope.Scope{Type: scope.System})
		if err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		if _, err := r.CreateGrant(ctx, g); err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
	}

	return res, nil
}
