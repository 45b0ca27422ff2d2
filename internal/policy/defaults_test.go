// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import (
	"context"
	"testing"

	"github.com/outpost-sec/warden/globals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg, err := NewRegistry(ctx, DefaultRules())
	require.NoError(t, err)

	wantActions := []string{
		"identity:create_project",
		"identity:create_registered_limits",
		"identity:delete_project",
		"identity:delete_registered_limits",
		"identity:get_project",
		"identity:get_registered_limit",
		"identity:list_projects",
		"identity:list_registered_limits",
		"identity:list_user_projects",
		"identity:update_project",
		"identity:update_registered_limits",
	}
	assert.Equal(t, wantActions, reg.Actions())

	t.Run("project-reads-have-ownership", func(t *testing.T) {
		rule, err := reg.Lookup(ctx, "identity:get_project")
		require.NoError(t, err)
		assert.Equal(t, OwnershipProject, rule.Ownership)

		rule, err = reg.Lookup(ctx, "identity:list_user_projects")
		require.NoError(t, err)
		assert.Equal(t, OwnershipOwner, rule.Ownership)
	})

	t.Run("limit-reads-keep-compatibility-condition", func(t *testing.T) {
		for _, a := range []string{"identity:list_registered_limits", "identity:get_registered_limit"} {
			rule, err := reg.Lookup(ctx, a)
			require.NoError(t, err)
			require.Len(t, rule.Conditions, 2)
			assert.Equal(t, []string{globals.RoleNameReader}, rule.Conditions[0].Roles)
			assert.Equal(t, []string{globals.RoleNameAdmin}, rule.Conditions[1].Roles)
		}
	})

	t.Run("writes-require-system-admin", func(t *testing.T) {
		for _, a := range []string{
			"identity:create_project", "identity:update_project", "identity:delete_project",
			"identity:create_registered_limits", "identity:update_registered_limits", "identity:delete_registered_limits",
		} {
			rule, err := reg.Lookup(ctx, a)
			require.NoError(t, err)
			assert.Equal(t, OwnershipNone, rule.Ownership)
			require.Len(t, rule.Conditions, 1)
			assert.Equal(t, []string{globals.RoleNameAdmin}, rule.Conditions[0].Roles)
		}
	})
}
