// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-dbw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tests := []struct {
		name string
		code Code
		op   Op
		msg  string
		want string
	}{
		{
			name: "all-fields",
			code: InvalidParameter,
			op:   "pkg.Func",
			msg:  "missing widget",
			want: "pkg.Func: missing widget: error #100",
		},
		{
			name: "no-msg-uses-code-default",
			code: RecordNotFound,
			op:   "pkg.Func",
			want: "pkg.Func: record not found, search issue: error #1100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(ctx, tt.code, tt.op, tt.msg)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("preserves-inner-code", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		inner := New(ctx, AuthenticationFailed, "pkg.inner", "authentication failed")
		outer := Wrap(ctx, inner, "pkg.outer")
		require.Error(outer)
		var e *Error
		require.True(stderrors.As(outer, &e))
		assert.Equal(AuthenticationFailed, e.Code)
		assert.True(stderrors.Is(outer, inner))
	})
	t.Run("converts-dbw-sentinels", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		outer := Wrap(ctx, fmt.Errorf("lookup: %w", dbw.ErrRecordNotFound), "pkg.outer")
		require.Error(outer)
		assert.True(IsNotFoundError(outer))
	})
	t.Run("explicit-code-wins", func(t *testing.T) {
		assert := assert.New(t)
		outer := Wrap(ctx, stderrors.New("kaboom"), "pkg.outer", WithCode(Unavailable))
		assert.True(IsUnavailableError(outer))
	})
}

func TestConvert(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantNil  bool
	}{
		{"nil", nil, Unknown, true},
		{"record-not-found", dbw.ErrRecordNotFound, RecordNotFound, false},
		{"invalid-parameter", dbw.ErrInvalidParameter, InvalidParameter, false},
		{"max-retries", dbw.ErrMaxRetries, Unavailable, false},
		{"sqlite-unique", stderrors.New("constraint failed: UNIQUE constraint failed: iam_grant.user_id (2067)"), NotUnique, false},
		{"sqlite-not-null", stderrors.New("NOT NULL constraint failed: iam_user.login_name (1299)"), NotNull, false},
		{"sqlite-check", stderrors.New("CHECK constraint failed: scope_type (275)"), CheckConstraint, false},
		{"unconvertable", stderrors.New("kaboom"), Unknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestMatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	err := New(ctx, AuthenticationFailed, "pkg.Func", "authentication failed")

	assert := assert.New(t)
	assert.True(Match(T(AuthenticationFailed), err))
	assert.True(Match(T(Authentication), err))
	assert.True(Match(T(Op("pkg.Func")), err))
	assert.False(Match(T(RecordNotFound), err))
	assert.False(Match(T(Configuration), err))
	assert.False(Match(nil, err))
	assert.False(Match(T(AuthenticationFailed), nil))
	assert.False(Match(T(AuthenticationFailed), stderrors.New("not a domain error")))
}

func TestIsHelpers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert := assert.New(t)
	assert.True(IsAuthenticationError(New(ctx, AuthenticationFailed, "op", "")))
	assert.True(IsAuthenticationError(New(ctx, Expired, "op", "")))
	assert.True(IsConfigurationError(New(ctx, InvalidConfiguration, "op", "")))
	assert.True(IsNotFoundError(New(ctx, RecordNotFound, "op", "")))
	assert.True(IsUnavailableError(New(ctx, Unavailable, "op", "")))
	assert.True(IsUniqueError(New(ctx, NotUnique, "op", "")))

	deny := New(ctx, InvalidParameter, "op", "")
	assert.False(IsAuthenticationError(deny))
	assert.False(IsConfigurationError(deny))
	assert.False(IsNotFoundError(nil))
}
