// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package enforce

import (
	"context"
	"testing"

	"github.com/outpost-sec/warden/internal/authtoken"
	"github.com/outpost-sec/warden/internal/iam"
	"github.com/outpost-sec/warden/internal/limits"
	"github.com/outpost-sec/warden/internal/policy"
	"github.com/outpost-sec/warden/internal/project"
	"github.com/outpost-sec/warden/internal/types/resource"
	"github.com/stretchr/testify/require"
)

// TestDeployment is a fully wired enforcement stack over a private
// in-memory store, bootstrapped with the well-known roles and the default
// rule set.
type TestDeployment struct {
	Store     *iam.Store
	Iam       *iam.Repository
	Tokens    *authtoken.Repository
	Projects  *project.Repository
	Limits    *limits.Repository
	Registry  *policy.Registry
	Enforcer  *Enforcer
	Bootstrap *iam.BootstrapResult
}

// TestEnforcer builds a TestDeployment with every target resolver
// registered.
func TestEnforcer(t *testing.T) *TestDeployment {
	t.Helper()
	require := require.New(t)
	ctx := context.Background()

	store := iam.TestStore(t)
	iamRepo := iam.TestRepo(t, store)
	boot := iam.TestBootstrap(t, iamRepo)
	tokens := authtoken.TestRepo(t, store, iamRepo)
	projects := project.TestRepo(t, store)
	ls := limits.TestRepo(t, store)

	registry, err := policy.NewRegistry(ctx, policy.DefaultRules())
	require.NoError(err)

	e, err := NewEnforcer(ctx, registry, tokens)
	require.NoError(err)
	require.NoError(e.RegisterTargetResolver(ctx, resource.Project, projects))
	require.NoError(e.RegisterTargetResolver(ctx, resource.RegisteredLimit, ls))
	require.NoError(e.RegisterTargetResolver(ctx, resource.User, iamRepo))

	return &TestDeployment{
		Store:     store,
		Iam:       iamRepo,
		Tokens:    tokens,
		Projects:  projects,
		Limits:    ls,
		Registry:  registry,
		Enforcer:  e,
		Bootstrap: boot,
	}
}
