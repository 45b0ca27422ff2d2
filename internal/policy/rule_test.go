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

func TestDeriveVerb(t *testing.T) {
	t.Parallel()
	tests := []struct {
		actionName string
		want       action.Type
	}{
		{"identity:list_projects", action.List},
		{"identity:get_project", action.Read},
		{"identity:create_project", action.Create},
		{"identity:update_project", action.Update},
		{"identity:delete_project", action.Delete},
		{"identity:list_user_projects", action.List},
		{"identity:get_registered_limit", action.Read},
		{"get_widget", action.Read},
		{"identity:frobnicate_project", action.Unknown},
		{"", action.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.actionName, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveVerb(tt.actionName))
		})
	}
}

func TestRule_validate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	readers := Condition{Scopes: []scope.Type{scope.System}, Roles: []string{"reader"}}
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{
			name: "valid",
			rule: Rule{Action: "identity:get_project", Conditions: []Condition{readers}},
		},
		{
			name: "valid-with-ownership",
			rule: Rule{Action: "identity:get_project", Conditions: []Condition{readers}, Ownership: OwnershipProject},
		},
		{
			name:    "missing-action",
			rule:    Rule{Conditions: []Condition{readers}},
			wantErr: true,
		},
		{
			name:    "no-conditions",
			rule:    Rule{Action: "identity:get_project"},
			wantErr: true,
		},
		{
			name:    "condition-without-scopes",
			rule:    Rule{Action: "identity:get_project", Conditions: []Condition{{Roles: []string{"reader"}}}},
			wantErr: true,
		},
		{
			name: "bad-scope-type",
			rule: Rule{Action: "identity:get_project", Conditions: []Condition{
				{Scopes: []scope.Type{scope.Unknown}},
			}},
			wantErr: true,
		},
		{
			name:    "bad-ownership",
			rule:    Rule{Action: "identity:get_project", Conditions: []Condition{readers}, Ownership: Ownership("group")},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.validate(ctx)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfigurationError(err))
				return
			}
			require.NoError(t, err)
		})
	}
}
