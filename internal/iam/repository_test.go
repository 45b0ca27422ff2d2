// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"
	"testing"

	"github.com/outpost-sec/warden/globals"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := TestRepo(t, TestStore(t))
	boot := TestBootstrap(t, repo)

	t.Run("valid", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		u, err := NewUser(ctx, boot.DomainId, "alice")
		require.NoError(err)
		created, err := repo.CreateUser(ctx, u, "supersecret")
		require.NoError(err)
		assert.NotEmpty(created.PublicId)
		assert.NotEmpty(created.PasswordSalt)
		assert.NotEmpty(created.DerivedKey)

		got, err := repo.LookupUser(ctx, created.PublicId)
		require.NoError(err)
		assert.Equal("alice", got.LoginName)
	})
	t.Run("duplicate-login-name-in-domain", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		u, err := NewUser(ctx, boot.DomainId, "bob")
		require.NoError(err)
		_, err = repo.CreateUser(ctx, u, "supersecret")
		require.NoError(err)
		u2, err := NewUser(ctx, boot.DomainId, "bob")
		require.NoError(err)
		_, err = repo.CreateUser(ctx, u2, "supersecret")
		require.Error(err)
		assert.True(errors.IsUniqueError(err))
	})
	t.Run("missing-password", func(t *testing.T) {
		require := require.New(t)
		u, err := NewUser(ctx, boot.DomainId, "carol")
		require.NoError(err)
		_, err = repo.CreateUser(ctx, u, "")
		require.Error(err)
	})
}

func TestRepository_AuthenticateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := TestRepo(t, TestStore(t))
	boot := TestBootstrap(t, repo)
	u := TestUser(t, repo, boot.DomainId, "alice", "correct-horse")

	t.Run("valid", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		got, err := repo.AuthenticateUser(ctx, boot.DomainId, "alice", "correct-horse")
		require.NoError(err)
		assert.Equal(u.PublicId, got.PublicId)
	})
	t.Run("bad-password", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		_, err := repo.AuthenticateUser(ctx, boot.DomainId, "alice", "battery-staple")
		require.Error(err)
		assert.True(errors.IsAuthenticationError(err))
	})
	t.Run("unknown-user-same-error", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		badPass, err := repo.AuthenticateUser(ctx, boot.DomainId, "alice", "battery-staple")
		require.Error(err)
		unknown, err2 := repo.AuthenticateUser(ctx, boot.DomainId, "mallory", "battery-staple")
		require.Error(err2)
		assert.Nil(badPass)
		assert.Nil(unknown)
		assert.Equal(err.Error(), err2.Error())
	})
}

func TestRepository_Grants(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := TestRepo(t, TestStore(t))
	boot := TestBootstrap(t, repo)
	u := TestUser(t, repo, boot.DomainId, "alice", "correct-horse")

	t.Run("duplicate-grant", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		s := scope.Scope{Type: scope.Domain, Id: boot.DomainId}
		TestGrant(t, repo, u.PublicId, boot.ReaderRoleId, s)
		g, err := NewGrant(ctx, u.PublicId, boot.ReaderRoleId, s)
		require.NoError(err)
		_, err = repo.CreateGrant(ctx, g)
		require.Error(err)
		assert.True(errors.IsUniqueError(err))
	})
	t.Run("list-filters-by-scope", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		TestGrant(t, repo, u.PublicId, boot.MemberRoleId, scope.Scope{Type: scope.Project, Id: "p_1"})
		TestGrant(t, repo, u.PublicId, boot.MemberRoleId, scope.Scope{Type: scope.Project, Id: "p_2"})

		grants, err := repo.ListGrants(ctx, u.PublicId, scope.Scope{Type: scope.Project, Id: "p_1"})
		require.NoError(err)
		require.Len(grants, 1)
		assert.Equal(boot.MemberRoleId, grants[0].RoleId)

		grants, err = repo.ListGrants(ctx, u.PublicId, scope.Scope{Type: scope.Project, Id: "p_3"})
		require.NoError(err)
		assert.Empty(grants)
	})
	t.Run("system-scope-ignores-scope-id", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		grants, err := repo.ListGrants(ctx, boot.AdminUserId, scope.Scope{Type: scope.System})
		require.NoError(err)
		require.Len(grants, 1)
		assert.Equal(boot.AdminRoleId, grants[0].RoleId)
	})
	t.Run("delete", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		g := TestGrant(t, repo, u.PublicId, boot.AdminRoleId, scope.Scope{Type: scope.Project, Id: "p_9"})
		rows, err := repo.DeleteGrant(ctx, g.PublicId)
		require.NoError(err)
		assert.Equal(1, rows)
		grants, err := repo.ListGrants(ctx, u.PublicId, scope.Scope{Type: scope.Project, Id: "p_9"})
		require.NoError(err)
		assert.Empty(grants)
	})
}

func TestRepository_ExpandRoleNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := TestRepo(t, TestStore(t))
	boot := TestBootstrap(t, repo)

	tests := []struct {
		name    string
		roleIds []string
		want    []string
	}{
		{
			name:    "admin-implies-member-and-reader",
			roleIds: []string{boot.AdminRoleId},
			want:    []string{globals.RoleNameAdmin, globals.RoleNameMember, globals.RoleNameReader},
		},
		{
			name:    "member-implies-reader",
			roleIds: []string{boot.MemberRoleId},
			want:    []string{globals.RoleNameMember, globals.RoleNameReader},
		},
		{
			name:    "reader-implies-nothing",
			roleIds: []string{boot.ReaderRoleId},
			want:    []string{globals.RoleNameReader},
		},
		{
			name:    "deduplicates",
			roleIds: []string{boot.AdminRoleId, boot.MemberRoleId, boot.ReaderRoleId},
			want:    []string{globals.RoleNameAdmin, globals.RoleNameMember, globals.RoleNameReader},
		},
		{
			name:    "empty",
			roleIds: nil,
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ExpandRoleNames(ctx, tt.roleIds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBootstrap_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := TestRepo(t, TestStore(t))

	first, err := Bootstrap(ctx, repo, "admin", "testpassword")
	require.NoError(t, err)
	second, err := Bootstrap(ctx, repo, "admin", "testpassword")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
