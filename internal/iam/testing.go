// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"
	"fmt"
	"testing"

	"github.com/hashicorp/go-secure-stdlib/base62"
	"github.com/outpost-sec/warden/internal/types/scope"
	"github.com/stretchr/testify/require"
)

// TestStore creates an in-memory store for tests. Each call gets its own
// private database.
func TestStore(t *testing.T) *Store {
	t.Helper()
	require := require.New(t)
	id, err := base62.Random(10)
	require.NoError(err)
	s, err := Open(context.Background(), WithUrl(fmt.Sprintf("file:%s?mode=memory&cache=shared", id)))
	require.NoError(err)
	return s
}

// TestRepo creates a repository backed by the given store.
func TestRepo(t *testing.T, s *Store) *Repository {
	t.Helper()
	require := require.New(t)
	r, err := NewRepository(context.Background(), s)
	require.NoError(err)
	return r
}

// TestBootstrap bootstraps the repo with the well-known roles, default
// domain and a bootstrap admin.
func TestBootstrap(t *testing.T, r *Repository) *BootstrapResult {
	t.Helper()
	require := require.New(t)
	res, err := Bootstrap(context.Background(), r, "admin", "testpassword")
	require.NoError(err)
	return res
}

// TestUser creates a user with the given login name and password.
func TestUser(t *testing.T, r *Repository, domainId, loginName, password string) *User {
	t.Helper()
	require := require.New(t)
	u, err := NewUser(context.Background(), domainId, loginName)
	require.NoError(err)
	created, err := r.CreateUser(context.Background(), u, password)
	require.NoError(err)
	return created
}

// TestGrant assigns roleId to userId in the given scope.
func TestGrant(t *testing.T, r *Repository, userId, roleId string, s scope.Scope) *Grant {
	t.Helper()
	require := require.New(t)
	g, err := NewGrant(context.Background(), userId, roleId, s)
	require.NoError(err)
	created, err := r.CreateGrant(context.Background(), g)
	require.NoError(err)
	return created
}
