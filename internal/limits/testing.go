// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package limits

import (
	"context"
	"testing"

	"github.com/outpost-sec/warden/internal/iam"
	"github.com/stretchr/testify/require"
)

// TestRepo creates a registered limit repository backed by the given store.
func TestRepo(t *testing.T, store *iam.Store) *Repository {
	t.Helper()
	require := require.New(t)
	r, err := NewRepository(context.Background(), store)
	require.NoError(err)
	return r
}

// TestRegisteredLimit creates a registered limit.
func TestRegisteredLimit(t *testing.T, r *Repository, serviceId, resourceName string, defaultLimit int) *RegisteredLimit {
	t.Helper()
	require := require.New(t)
	l, err := NewRegisteredLimit(context.Background(), serviceId, resourceName, defaultLimit)
	require.NoError(err)
	created, err := r.CreateRegisteredLimit(context.Background(), l)
	require.NoError(err)
	return created
}
