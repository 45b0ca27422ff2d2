// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package authtoken

import (
	"context"
	"crypto/subtle"
	stderrors "errors"
	"time"

	"github.com/hashicorp/go-dbw"
	"github.com/outpost-sec/warden/globals"
	"github.com/outpost-sec/warden/internal/authz"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/iam"
	"github.com/outpost-sec/warden/internal/types/scope"
)

// A TokenRequest asks for a token bound to a single scope. Exactly one scope
// is named: system requests carry no scope id, domain and project requests
// must carry one.
type TokenRequest struct {
	DomainId  string
	LoginName string
	Password  string
	Scope     scope.Scope
}

func (r TokenRequest) validate(ctx context.Context) error {
	const op = "authtoken.(TokenRequest).validate"
	if r.DomainId == "" {
		return errors.New(ctx, errors.InvalidParameter, op, "missing domain id")
	}
	if r.LoginName == "" {
		return errors.New(ctx, errors.InvalidParameter, op, "missing login name")
	}
	if r.Password == "" {
		return errors.New(ctx, errors.InvalidParameter, op, "missing password")
	}
	switch r.Scope.Type {
	case scope.System:
		if r.Scope.Id != "" {
			return errors.New(ctx, errors.InvalidParameter, op, "system scope request cannot have a scope id")
		}
	case scope.Domain, scope.Project:
		if r.Scope.Id == "" {
			return errors.New(ctx, errors.InvalidParameter, op, "missing scope id")
		}
	default:
		return errors.New(ctx, errors.InvalidParameter, op, "unknown scope type")
	}
	return nil
}

// Repository issues and resolves auth tokens. It owns the auth_token table
// and leans on the iam repository for authentication and grants.
type Repository struct {
	rw      *dbw.RW
	iamRepo *iam.Repository
}

// NewRepository creates the token repository against the shared store,
// creating its schema if needed.
func NewRepository(ctx context.Context, store *iam.Store, iamRepo *iam.Repository) (*Repository, error) {
	const op = "authtoken.NewRepository"
	if store == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing store")
	}
	if iamRepo == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing iam repository")
	}
	rw := dbw.New(store.Conn())
	if _, err := rw.Exec(ctx, createTable, nil); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &Repository{rw: rw, iamRepo: iamRepo}, nil
}

const createTable = `
create table if not exists auth_token (
  public_id text not null primary key,
  secret text not null,
  user_id text not null,
  scope_type integer not null check (scope_type in (1, 2, 3)),
  scope_id text not null default '',
  issued_time timestamp not null,
  expiration_time timestamp not null
);
`

// IssueToken authenticates the request's credentials and, when the user
// holds at least one grant in the requested scope, issues a token bound to
// that scope. It returns the stored token and the encoded token value to
// hand back to the caller; the value is not recoverable afterwards.
//
// A password failure and a request for a scope the user has no role in both
// fail authentication: being told "wrong scope" would confirm the password
// was right. Supports WithTokenLifetime and WithNow.
func (r *Repository) IssueToken(ctx context.Context, req TokenRequest, opt ...Option) (*AuthToken, string, error) {
	const op = "authtoken.(Repository).IssueToken"
	if err := req.validate(ctx); err != nil {
		return nil, "", errors.Wrap(ctx, err, op)
	}
	opts := getOpts(opt...)
	now := time.Now()
	if !opts.withNow.IsZero() {
		now = opts.withNow
	}
	lifetime := globals.DefaultTokenLifetime
	if opts.withTokenLifetime > 0 {
		lifetime = opts.withTokenLifetime
	}

	u, err := r.iamRepo.AuthenticateUser(ctx, req.DomainId, req.LoginName, req.Password)
	if err != nil {
		return nil, "", errors.Wrap(ctx, err, op)
	}
	grants, err := r.iamRepo.ListGrants(ctx, u.PublicId, req.Scope)
	if err != nil {
		return nil, "", errors.Wrap(ctx, err, op)
	}
	if len(grants) == 0 {
		return nil, "", errors.New(ctx, errors.AuthenticationFailed, op, "authentication failed")
	}

	id, err := newAuthTokenId(ctx)
	if err != nil {
		return nil, "", errors.Wrap(ctx, err, op)
	}
	secret, err := newAuthTokenSecret(ctx)
	if err != nil {
		return nil, "", errors.Wrap(ctx, err, op)
	}
	at := &AuthToken{
		PublicId:       id,
		Secret:         secret,
		UserId:         u.PublicId,
		ScopeType:      uint(req.Scope.Type),
		ScopeId:        req.Scope.Id,
		IssuedTime:     now,
		ExpirationTime: now.Add(lifetime),
	}
	if err := r.rw.Create(ctx, at); err != nil {
		return nil, "", errors.Wrap(ctx, err, op)
	}
	return at.clone(), EncodeToken(at.PublicId, at.Secret), nil
}

// ResolveToken verifies a token value and builds the principal it stands
// for: the token's user and scope, with the role names effective there after
// expanding implications. A token whose grants were revoked since issue
// resolves to a principal with no roles; it is the engine's job to deny it.
// Supports WithNow. Expired tokens fail with an Expired authentication
// error; every other verification failure is indistinguishable from an
// unknown token.
func (r *Repository) ResolveToken(ctx context.Context, tokenValue string, opt ...Option) (authz.Principal, error) {
	const op = "authtoken.(Repository).ResolveToken"
	if tokenValue == "" {
		return authz.Principal{}, errors.New(ctx, errors.InvalidParameter, op, "missing token value")
	}
	opts := getOpts(opt...)
	now := time.Now()
	if !opts.withNow.IsZero() {
		now = opts.withNow
	}

	publicId, secret, err := DecodeToken(ctx, tokenValue)
	if err != nil {
		return authz.Principal{}, errors.Wrap(ctx, err, op)
	}
	var at AuthToken
	if err := r.rw.LookupWhere(ctx, &at, "public_id = ?", []any{publicId}); err != nil {
		if stderrors.Is(err, dbw.ErrRecordNotFound) {
			return authz.Principal{}, errors.New(ctx, errors.AuthenticationFailed, op, "invalid token")
		}
		return authz.Principal{}, errors.Wrap(ctx, err, op)
	}
	if subtle.ConstantTimeCompare([]byte(at.Secret), []byte(secret)) != 1 {
		return authz.Principal{}, errors.New(ctx, errors.AuthenticationFailed, op, "invalid token")
	}
	if now.After(at.ExpirationTime) {
		return authz.Principal{}, errors.New(ctx, errors.Expired, op, "token expired")
	}

	grants, err := r.iamRepo.ListGrants(ctx, at.UserId, at.Scope())
	if err != nil {
		return authz.Principal{}, errors.Wrap(ctx, err, op)
	}
	roleIds := make([]string, 0, len(grants))
	for _, g := range grants {
		roleIds = append(roleIds, g.RoleId)
	}
	roles, err := r.iamRepo.ExpandRoleNames(ctx, roleIds)
	if err != nil {
		return authz.Principal{}, errors.Wrap(ctx, err, op)
	}
	return authz.Principal{
		UserId: at.UserId,
		Scope:  at.Scope(),
		Roles:  roles,
	}, nil
}

// LookupToken returns the token with the given public id, with the secret
// stripped.
func (r *Repository) LookupToken(ctx context.Context, publicId string) (*AuthToken, error) {
	const op = "authtoken.(Repository).LookupToken"
	if publicId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	var at AuthToken
	if err := r.rw.LookupWhere(ctx, &at, "public_id = ?", []any{publicId}); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	at.Secret = ""
	return &at, nil
}

// RevokeToken deletes the token with the given public id, returning the
// number of records deleted. Revoking an unknown token deletes nothing and
// is not an error.
func (r *Repository) RevokeToken(ctx context.Context, publicId string) (int, error) {
	const op = "authtoken.(Repository).RevokeToken"
	if publicId == "" {
		return 0, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	rows, err := r.rw.Exec(ctx, "delete from auth_token where public_id = ?", []any{publicId})
	if err != nil {
		return 0, errors.Wrap(ctx, err, op)
	}
	return rows, nil
}
