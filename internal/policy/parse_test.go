// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package policy

import (
	"context"
	"testing"

	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/action"
	"github.com/outpost-sec/warden/internal/types/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("basic", func(t *testing.T) {
		const src = `
rule "identity:list_projects" {
  scopes = ["system"]
  roles  = ["reader"]
}

rule "identity:get_project" {
  scopes    = ["system"]
  roles     = ["reader"]
  ownership = "project"
}
`
		rules, err := ParseRules(ctx, src)
		require.NoError(t, err)
		require.Len(t, rules, 2)

		assert.Equal(t, "identity:list_projects", rules[0].Action)
		assert.Equal(t, action.List, rules[0].Verb)
		assert.Equal(t, OwnershipNone, rules[0].Ownership)
		require.Len(t, rules[0].Conditions, 1)
		assert.Equal(t, []scope.Type{scope.System}, rules[0].Conditions[0].Scopes)
		assert.Equal(t, []string{"reader"}, rules[0].Conditions[0].Roles)

		assert.Equal(t, action.Read, rules[1].Verb)
		assert.Equal(t, OwnershipProject, rules[1].Ownership)
	})

	t.Run("deprecated-block-composes", func(t *testing.T) {
		const src = `
rule "identity:get_registered_limit" {
  scopes = ["system"]
  roles  = ["reader"]

  deprecated {
    scopes = ["system", "domain", "project"]
    roles  = ["admin"]
  }
}
`
		rules, err := ParseRules(ctx, src)
		require.NoError(t, err)
		require.Len(t, rules, 1)
		require.Len(t, rules[0].Conditions, 2)
		assert.Equal(t, []string{"reader"}, rules[0].Conditions[0].Roles)
		assert.Equal(t, []string{"admin"}, rules[0].Conditions[1].Roles)
		assert.Equal(t, []scope.Type{scope.System, scope.Domain, scope.Project}, rules[0].Conditions[1].Scopes)
	})

	t.Run("multiple-deprecated-blocks", func(t *testing.T) {
		const src = `
rule "identity:list_registered_limits" {
  scopes = ["system"]
  roles  = ["reader"]

  deprecated {
    scopes = ["system"]
    roles  = ["admin"]
  }

  deprecated {
    scopes = ["domain", "project"]
    roles  = ["admin"]
  }
}
`
		rules, err := ParseRules(ctx, src)
		require.NoError(t, err)
		require.Len(t, rules, 1)
		require.Len(t, rules[0].Conditions, 3)
		assert.Equal(t, []scope.Type{scope.System}, rules[0].Conditions[1].Scopes)
		assert.Equal(t, []scope.Type{scope.Domain, scope.Project}, rules[0].Conditions[2].Scopes)
	})

	t.Run("explicit-verb", func(t *testing.T) {
		const src = `
rule "identity:frobnicate_project" {
  scopes = ["system"]
  roles  = ["admin"]
  verb   = "update"
}
`
		rules, err := ParseRules(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, action.Update, rules[0].Verb)
	})

	t.Run("empty-roles-admits-any", func(t *testing.T) {
		const src = `
rule "identity:list_projects" {
  scopes = ["system"]
}
`
		rules, err := ParseRules(ctx, src)
		require.NoError(t, err)
		assert.Empty(t, rules[0].Conditions[0].Roles)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			src  string
		}{
			{"empty-source", ""},
			{"no-rules", `# nothing here`},
			{"not-hcl", `rule "x" {{{`},
			{"unknown-scope", `rule "x" { scopes = ["galaxy"] }`},
			{"no-scopes", `rule "x" { roles = ["reader"] }`},
			{"unknown-verb", `rule "x" { scopes = ["system"] verb = "frobnicate" }`},
			{"bad-ownership", `rule "x" { scopes = ["system"] ownership = "group" }`},
			{"bad-deprecated", `rule "x" { scopes = ["system"] deprecated { roles = ["admin"] } }`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseRules(ctx, tt.src)
				require.Error(t, err)
				assert.True(t, errors.IsConfigurationError(err), "want configuration error, got %v", err)
			})
		}
	})

	t.Run("accumulates-all-problems", func(t *testing.T) {
		const src = `
rule "a" { scopes = ["galaxy"] }
rule "b" { roles = ["reader"] }
`
		_, err := ParseRules(ctx, src)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a")
		assert.Contains(t, err.Error(), "b")
	})
}
