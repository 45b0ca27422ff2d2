// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package limits

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-dbw"
	"github.com/hashicorp/go-secure-stdlib/base62"
	"github.com/outpost-sec/warden/globals"
	"github.com/outpost-sec/warden/internal/authz"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/iam"
	"github.com/outpost-sec/warden/internal/types/resource"
)

// Repository provides read/write access to registered limits. It shares the
// iam store's connection and owns its own table.
type Repository struct {
	rw *dbw.RW
}

// NewRepository creates the registered limit repository against the shared
// store, creating its schema if needed.
func NewRepository(ctx context.Context, store *iam.Store) (*Repository, error) {
	const op = "limits.NewRepository"
	if store == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing store")
	}
	rw := dbw.New(store.Conn())
	if _, err := rw.Exec(ctx, createTable, nil); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &Repository{rw: rw}, nil
}

const createTable = `
create table if not exists resource_registered_limit (
  public_id text not null primary key,
  service_id text not null,
  resource_name text not null,
  default_limit integer not null check (default_limit >= 0),
  description text,
  unique(service_id, resource_name)
);
`

func newLimitId(ctx context.Context) (string, error) {
	const op = "limits.newLimitId"
	id, err := base62.Random(10)
	if err != nil {
		return "", errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unable to generate id"))
	}
	return fmt.Sprintf("%s_%s", globals.RegisteredLimitPrefix, id), nil
}

// CreateRegisteredLimit inserts l and returns it with its assigned public
// id.
func (r *Repository) CreateRegisteredLimit(ctx context.Context, l *RegisteredLimit) (*RegisteredLimit, error) {
	const op = "limits.(Repository).CreateRegisteredLimit"
	if l == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing registered limit")
	}
	if l.PublicId != "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "public id is not empty")
	}
	id, err := newLimitId(ctx)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	c := l.clone()
	c.PublicId = id
	if err := r.rw.Create(ctx, c); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return c, nil
}

// LookupRegisteredLimit returns the registered limit with the given public
// id.
func (r *Repository) LookupRegisteredLimit(ctx context.Context, publicId string) (*RegisteredLimit, error) {
	const op = "limits.(Repository).LookupRegisteredLimit"
	if publicId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	var l RegisteredLimit
	if err := r.rw.LookupWhere(ctx, &l, "public_id = ?", []any{publicId}); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &l, nil
}

// LookupTarget builds the target descriptor for a registered limit.
// Registered limits have no owner or project, so ownership clauses never
// match them; the descriptor exists so enforcement can still distinguish a
// missing limit from a forbidden one.
func (r *Repository) LookupTarget(ctx context.Context, publicId string) (*authz.Target, error) {
	const op = "limits.(Repository).LookupTarget"
	l, err := r.LookupRegisteredLimit(ctx, publicId)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &authz.Target{
		Id:   l.PublicId,
		Type: resource.RegisteredLimit,
	}, nil
}

// ListRegisteredLimits returns all registered limits. Supports WithLimit.
func (r *Repository) ListRegisteredLimits(ctx context.Context, opt ...Option) ([]*RegisteredLimit, error) {
	const op = "limits.(Repository).ListRegisteredLimits"
	opts := getOpts(opt...)
	limit := opts.withLimit
	if limit == 0 {
		limit = -1
	}
	var ls []*RegisteredLimit
	if err := r.rw.SearchWhere(ctx, &ls, "", nil, dbw.WithLimit(limit)); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return ls, nil
}

// UpdateRegisteredLimit updates the fields named by fieldMaskPaths
// (ResourceName, DefaultLimit, Description) and returns the stored limit.
func (r *Repository) UpdateRegisteredLimit(ctx context.Context, l *RegisteredLimit, fieldMaskPaths []string) (*RegisteredLimit, error) {
	const op = "limits.(Repository).UpdateRegisteredLimit"
	if l == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing registered limit")
	}
	if l.PublicId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	if len(fieldMaskPaths) == 0 {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing field mask")
	}
	c := l.clone()
	if _, err := r.rw.Update(ctx, c, fieldMaskPaths, nil); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return r.LookupRegisteredLimit(ctx, l.PublicId)
}

// DeleteRegisteredLimit removes the registered limit with the given public
// id, returning the number of records deleted.
func (r *Repository) DeleteRegisteredLimit(ctx context.Context, publicId string) (int, error) {
	const op = "limits.(Repository).DeleteRegisteredLimit"
	if publicId == "" {
		return 0, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	rows, err := r.rw.Exec(ctx, "delete from resource_registered_limit where public_id = ?", []any{publicId})
	if err != nil {
		return 0, errors.Wrap(ctx, err, op)
	}
	return rows, nil
}
