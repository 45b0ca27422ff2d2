// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package limits

import (
	"context"
	"testing"

	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/iam"
	"github.com/outpost-sec/warden/internal/types/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_RegisteredLimits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := iam.TestStore(t)
	repo := TestRepo(t, store)

	t.Run("create-and-lookup", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		l, err := NewRegisteredLimit(ctx, "svc_compute", "instances", 10, WithDescription("per-project instance cap"))
		require.NoError(err)
		created, err := repo.CreateRegisteredLimit(ctx, l)
		require.NoError(err)
		assert.NotEmpty(created.PublicId)

		got, err := repo.LookupRegisteredLimit(ctx, created.PublicId)
		require.NoError(err)
		assert.Equal(created, got)
	})
	t.Run("duplicate-service-resource", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		TestRegisteredLimit(t, repo, "svc_network", "ports", 500)
		l, err := NewRegisteredLimit(ctx, "svc_network", "ports", 250)
		require.NoError(err)
		_, err = repo.CreateRegisteredLimit(ctx, l)
		require.Error(err)
		assert.True(errors.IsUniqueError(err))
	})
	t.Run("negative-limit", func(t *testing.T) {
		_, err := NewRegisteredLimit(ctx, "svc_compute", "cores", -1)
		require.Error(t, err)
	})
	t.Run("target-descriptor-has-no-owner", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		l := TestRegisteredLimit(t, repo, "svc_volume", "volumes", 20)
		target, err := repo.LookupTarget(ctx, l.PublicId)
		require.NoError(err)
		assert.Equal(l.PublicId, target.Id)
		assert.Equal(resource.RegisteredLimit, target.Type)
		assert.Empty(target.OwnerId)
		assert.Empty(target.ProjectId)
	})
	t.Run("list-update-delete", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		l := TestRegisteredLimit(t, repo, "svc_image", "images", 5)

		all, err := repo.ListRegisteredLimits(ctx)
		require.NoError(err)
		assert.NotEmpty(all)

		l.DefaultLimit = 50
		updated, err := repo.UpdateRegisteredLimit(ctx, l, []string{"DefaultLimit"})
		require.NoError(err)
		assert.Equal(50, updated.DefaultLimit)

		rows, err := repo.DeleteRegisteredLimit(ctx, l.PublicId)
		require.NoError(err)
		assert.Equal(1, rows)
		_, err = repo.LookupRegisteredLimit(ctx, l.PublicId)
		require.Error(err)
		assert.True(errors.IsNotFoundError(err))
	})
}
