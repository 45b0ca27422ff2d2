// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package project

import (
	"context"
	"testing"

	"github.com/outpost-sec/warden/internal/iam"
	"github.com/stretchr/testify/require"
)

// TestRepo creates a project repository backed by the given store.
func TestRepo(t *testing.T, store *iam.Store) *Repository {
	t.Helper()
	require := require.New(t)
	r, err := NewRepository(context.Background(), store)
	require.NoError(err)
	return r
}

// TestProject creates a project owned by ownerId in the given domain.
func TestProject(t *testing.T, r *Repository, domainId, ownerId, name string) *Project {
	t.Helper()
	require := require.New(t)
	p, err := NewProject(context.Background(), domainId, ownerId, name)
	require.NoError(err)
	created, err := r.CreateProject(context.Background(), p)
	require.NoError(err)
	return created
}
