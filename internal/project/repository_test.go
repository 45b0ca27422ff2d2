// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package project

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/iam"
	"github.com/outpost-sec/warden/internal/types/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Projects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := iam.TestStore(t)
	iamRepo := iam.TestRepo(t, store)
	boot := iam.TestBootstrap(t, iamRepo)
	repo := TestRepo(t, store)

	owner := iam.TestUser(t, iamRepo, boot.DomainId, "olivia", "testpassword")

	t.Run("create-and-lookup", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		p, err := NewProject(ctx, boot.DomainId, owner.PublicId, "alpha", WithDescription("first project"))
		require.NoError(err)
		created, err := repo.CreateProject(ctx, p)
		require.NoError(err)
		assert.NotEmpty(created.PublicId)
		assert.True(created.Enabled)

		got, err := repo.LookupProject(ctx, created.PublicId)
		require.NoError(err)
		assert.Empty(cmp.Diff(created, got))
	})
	t.Run("duplicate-name-in-domain", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		TestProject(t, repo, boot.DomainId, owner.PublicId, "beta")
		p, err := NewProject(ctx, boot.DomainId, owner.PublicId, "beta")
		require.NoError(err)
		_, err = repo.CreateProject(ctx, p)
		require.Error(err)
		assert.True(errors.IsUniqueError(err))
	})
	t.Run("lookup-missing", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		_, err := repo.LookupProject(ctx, "p_does_not_exist")
		require.Error(err)
		assert.True(errors.IsNotFoundError(err))
	})
	t.Run("target-descriptor", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		p := TestProject(t, repo, boot.DomainId, owner.PublicId, "gamma")
		target, err := repo.LookupTarget(ctx, p.PublicId)
		require.NoError(err)
		assert.Equal(p.PublicId, target.Id)
		assert.Equal(resource.Project, target.Type)
		assert.Equal(p.PublicId, target.ProjectId)
		assert.Equal(boot.DomainId, target.DomainId)
		assert.Equal(owner.PublicId, target.OwnerId)
	})
	t.Run("list-by-owner", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		other := iam.TestUser(t, iamRepo, boot.DomainId, "oscar", "testpassword")
		TestProject(t, repo, boot.DomainId, other.PublicId, "delta")
		got, err := repo.ListUserProjects(ctx, other.PublicId)
		require.NoError(err)
		require.Len(got, 1)
		assert.Equal("delta", got[0].Name)
	})
	t.Run("update", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		p := TestProject(t, repo, boot.DomainId, owner.PublicId, "epsilon")
		p.Name = "epsilon-renamed"
		updated, err := repo.UpdateProject(ctx, p, []string{"Name"})
		require.NoError(err)
		assert.Equal("epsilon-renamed", updated.Name)
	})
	t.Run("delete", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		p := TestProject(t, repo, boot.DomainId, owner.PublicId, "zeta")
		rows, err := repo.DeleteProject(ctx, p.PublicId)
		require.NoError(err)
		assert.Equal(1, rows)
		_, err = repo.LookupProject(ctx, p.PublicId)
		require.Error(err)
		assert.True(errors.IsNotFoundError(err))
	})
}
