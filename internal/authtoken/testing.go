// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package authtoken

import (
	"context"
	"testing"

	"github.com/outpost-sec/warden/internal/iam"
	"github.com/outpost-sec/warden/internal/types/scope"
	"github.com/stretchr/testify/require"
)

// TestRepo creates a token repository sharing the given store with its iam
// repository.
func TestRepo(t *testing.T, store *iam.Store, iamRepo *iam.Repository) *Repository {
	t.Helper()
	require := require.New(t)
	r, err := NewRepository(context.Background(), store, iamRepo)
	require.NoError(err)
	return r
}

// TestToken issues a token for the given credentials and scope, returning
// the stored token and the encoded value.
func TestToken(t *testing.T, r *Repository, domainId, loginName, password string, s scope.Scope, opt ...Option) (*AuthToken, string) {
	t.Helper()
	require := require.New(t)
	at, value, err := r.IssueToken(context.Background(), TokenRequest{
		DomainId:  domainId,
		LoginName: loginName,
		Password:  password,
		Scope:     s,
	}, opt...)
	require.NoError(err)
	return at, value
}
