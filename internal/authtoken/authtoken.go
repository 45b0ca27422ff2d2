// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package authtoken issues and resolves the bearer tokens enforcement points
// authenticate with. A token is bound to exactly one scope at issue time;
// resolving it yields the principal the authorization engine evaluates,
// with role implications already expanded.
package authtoken

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-secure-stdlib/base62"
	"github.com/outpost-sec/warden/globals"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/scope"
)

const (
	// tokenSecretLength is the length of the random secret portion of a
	// token value.
	tokenSecretLength = 24

	// tokenValueVersionPrefix differentiates token versions for future
	// proofing.
	tokenValueVersionPrefix = "0"
)

// AuthToken is an issued credential. The Secret column holds the random
// portion of the token value; lookups by public id never return it.
type AuthToken struct {
	PublicId       string `gorm:"primaryKey"`
	Secret         string
	UserId         string
	ScopeType      uint
	ScopeId        string `gorm:"default:null"`
	IssuedTime     time.Time
	ExpirationTime time.Time
}

// TableName returns the table name.
func (t *AuthToken) TableName() string {
	return "auth_token"
}

// Scope returns the scope the token is bound to.
func (t *AuthToken) Scope() scope.Scope {
	return scope.Scope{Type: scope.Type(t.ScopeType), Id: t.ScopeId}
}

func (t *AuthToken) clone() *AuthToken {
	cp := *t
	return &cp
}

func newAuthTokenId(ctx context.Context) (string, error) {
	const op = "authtoken.newAuthTokenId"
	id, err := base62.Random(10)
	if err != nil {
		return "", errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unable to generate id"))
	}
	return fmt.Sprintf("%s_%s", globals.AuthTokenPrefix, id), nil
}

func newAuthTokenSecret(ctx context.Context) (string, error) {
	const op = "authtoken.newAuthTokenSecret"
	secret, err := base62.Random(tokenSecretLength)
	if err != nil {
		return "", errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unable to generate token"))
	}
	return tokenValueVersionPrefix + secret, nil
}

// EncodeToken builds the token value handed to the caller: the token's
// public id joined with its secret.
func EncodeToken(publicId, secret string) string {
	return fmt.Sprintf("%s_%s", publicId, secret)
}

// DecodeToken splits a token value back into public id and secret. Malformed
// values fail authentication; the error carries no hint of which part was
// wrong.
func DecodeToken(ctx context.Context, tokenValue string) (publicId, secret string, err error) {
	const op = "authtoken.DecodeToken"
	parts := strings.Split(tokenValue, "_")
	if len(parts) != 3 || parts[0] != globals.AuthTokenPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", errors.New(ctx, errors.AuthenticationFailed, op, "invalid token")
	}
	return strings.Join(parts[:2], "_"), parts[2], nil
}
