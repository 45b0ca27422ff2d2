// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package authz

import (
	"context"
	"testing"

	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/policy"
	"github.com/outpost-sec/warden/internal/types/resource"
	"github.com/outpost-sec/warden/internal/types/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *policy.Registry {
	t.Helper()
	reg, err := policy.NewRegistry(context.Background(), policy.DefaultRules())
	require.NoError(t, err)
	return reg
}

func TestAuthorize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := testRegistry(t)

	sysReader := Principal{UserId: "u_reader", Scope: scope.Scope{Type: scope.System}, Roles: []string{"reader"}}
	sysAdmin := Principal{UserId: "u_admin", Scope: scope.Scope{Type: scope.System}, Roles: []string{"admin", "member", "reader"}}
	sysMember := Principal{UserId: "u_member", Scope: scope.Scope{Type: scope.System}, Roles: []string{"member", "reader"}}
	domainMember := Principal{UserId: "u_dmember", Scope: scope.Scope{Type: scope.Domain, Id: "d_1"}, Roles: []string{"member", "reader"}}
	projMember := Principal{UserId: "u_pmember", Scope: scope.Scope{Type: scope.Project, Id: "p_1"}, Roles: []string{"member", "reader"}}
	projAdmin := Principal{UserId: "u_padmin", Scope: scope.Scope{Type: scope.Project, Id: "p_1"}, Roles: []string{"admin", "member", "reader"}}
	noRoles := Principal{UserId: "u_none", Scope: scope.Scope{Type: scope.System}}

	ownProject := &Target{Id: "p_1", Type: resource.Project, DomainId: "d_1", ProjectId: "p_1", OwnerId: "u_other"}
	otherProject := &Target{Id: "p_2", Type: resource.Project, DomainId: "d_1", ProjectId: "p_2", OwnerId: "u_other"}

	tests := []struct {
		name       string
		principal  Principal
		actionName string
		target     *Target
		want       Decision
	}{
		{
			name:       "system-reader-lists-projects",
			principal:  sysReader,
			actionName: "identity:list_projects",
			want:       Allow(),
		},
		{
			name:       "system-admin-implied-roles-list-projects",
			principal:  sysAdmin,
			actionName: "identity:list_projects",
			want:       Allow(),
		},
		{
			name:       "domain-member-list-projects-scope-mismatch",
			principal:  domainMember,
			actionName: "identity:list_projects",
			want:       Deny(ReasonScopeMismatch),
		},
		{
			name:       "system-no-roles-missing-role",
			principal:  noRoles,
			actionName: "identity:list_projects",
			want:       Deny(ReasonMissingRole),
		},
		{
			name:       "system-member-create-project-missing-role",
			principal:  sysMember,
			actionName: "identity:create_project",
			want:       Deny(ReasonMissingRole),
		},
		{
			name:       "system-admin-create-project",
			principal:  sysAdmin,
			actionName: "identity:create_project",
			want:       Allow(),
		},
		{
			name:       "project-member-reads-own-project-via-ownership",
			principal:  projMember,
			actionName: "identity:get_project",
			target:     ownProject,
			want:       AllowViaOwnership(),
		},
		{
			name:       "project-member-reads-other-project-insufficient",
			principal:  projMember,
			actionName: "identity:get_project",
			target:     otherProject,
			want:       Deny(ReasonInsufficientPrivilege),
		},
		{
			name:       "project-member-no-target-insufficient",
			principal:  projMember,
			actionName: "identity:get_project",
			want:       Deny(ReasonInsufficientPrivilege),
		},
		{
			name:       "ownership-never-applies-to-writes",
			principal:  projAdmin,
			actionName: "identity:update_project",
			target:     ownProject,
			want:       Deny(ReasonScopeMismatch),
		},
		{
			name:       "system-reader-reads-any-project-by-role",
			principal:  sysReader,
			actionName: "identity:get_project",
			target:     otherProject,
			want:       Allow(),
		},
		{
			name:       "owner-lists-own-projects",
			principal:  projMember,
			actionName: "identity:list_user_projects",
			target:     &Target{Id: "u_pmember", Type: resource.User, OwnerId: "u_pmember"},
			want:       AllowViaOwnership(),
		},
		{
			name:       "owner-lists-other-users-projects-insufficient",
			principal:  projMember,
			actionName: "identity:list_user_projects",
			target:     &Target{Id: "u_other", Type: resource.User, OwnerId: "u_other"},
			want:       Deny(ReasonInsufficientPrivilege),
		},
		{
			name:       "deprecated-condition-admits-project-admin",
			principal:  projAdmin,
			actionName: "identity:get_registered_limit",
			target:     &Target{Id: "rl_1", Type: resource.RegisteredLimit},
			want:       Allow(),
		},
		{
			name:       "project-member-limit-read-missing-role",
			principal:  projMember,
			actionName: "identity:get_registered_limit",
			target:     &Target{Id: "rl_1", Type: resource.RegisteredLimit},
			want:       Deny(ReasonMissingRole),
		},
		{
			name:       "system-reader-lists-limits",
			principal:  sysReader,
			actionName: "identity:list_registered_limits",
			want:       Allow(),
		},
		{
			name:       "domain-member-create-limit-scope-mismatch",
			principal:  domainMember,
			actionName: "identity:create_registered_limits",
			want:       Deny(ReasonScopeMismatch),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			got, err := Authorize(ctx, reg, tt.principal, tt.actionName, tt.target)
			require.NoError(err)
			assert.Equal(tt.want, got)

			// Identical inputs always produce the identical decision.
			again, err := Authorize(ctx, reg, tt.principal, tt.actionName, tt.target)
			require.NoError(err)
			assert.Equal(got, again)
		})
	}
}

func TestAuthorize_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reg := testRegistry(t)
	valid := Principal{UserId: "u_1", Scope: scope.Scope{Type: scope.System}, Roles: []string{"reader"}}

	tests := []struct {
		name       string
		reg        *policy.Registry
		principal  Principal
		actionName string
		wantConfig bool
	}{
		{
			name:       "nil-registry",
			principal:  valid,
			actionName: "identity:list_projects",
		},
		{
			name:       "missing-user-id",
			reg:        reg,
			principal:  Principal{Scope: scope.Scope{Type: scope.System}},
			actionName: "identity:list_projects",
		},
		{
			name:       "unknown-scope-type",
			reg:        reg,
			principal:  Principal{UserId: "u_1"},
			actionName: "identity:list_projects",
		},
		{
			name:       "system-scope-with-id",
			reg:        reg,
			principal:  Principal{UserId: "u_1", Scope: scope.Scope{Type: scope.System, Id: "d_1"}},
			actionName: "identity:list_projects",
		},
		{
			name:       "domain-scope-without-id",
			reg:        reg,
			principal:  Principal{UserId: "u_1", Scope: scope.Scope{Type: scope.Domain}},
			actionName: "identity:list_projects",
		},
		{
			name:       "unregistered-action-is-config-error",
			reg:        reg,
			principal:  valid,
			actionName: "identity:resize_project",
			wantConfig: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			_, err := Authorize(ctx, tt.reg, tt.principal, tt.actionName, nil)
			require.Error(err)
			assert.Equal(tt.wantConfig, errors.IsConfigurationError(err))
		})
	}
}

func TestPrincipal_HasAnyRole(t *testing.T) {
	t.Parallel()
	p := Principal{UserId: "u_1", Scope: scope.Scope{Type: scope.System}, Roles: []string{"member", "reader"}}
	assert.True(t, p.HasAnyRole(nil))
	assert.True(t, p.HasAnyRole([]string{"reader"}))
	assert.True(t, p.HasAnyRole([]string{"admin", "member"}))
	assert.False(t, p.HasAnyRole([]string{"admin"}))
	assert.False(t, Principal{UserId: "u_2", Scope: scope.Scope{Type: scope.System}}.HasAnyRole([]string{"reader"}))
}
