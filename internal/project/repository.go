// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package project

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

// Repository provides read/write access to projects. It shares the iam
// store's connection and owns its own table.
type Repository struct {
	rw *dbw.RW
}

// NewRepository creates the project repository against the shared store,
// creating its schema if needed.
func NewRepository(ctx context.Context, store *iam.Store) (*Repository, error) {
	const op = "project.NewRepository"
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
create table if not exists resource_project (
  public_id text not null primary key,
  name text not null,
  description text,
  domain_id text not null,
  owner_id text not null,
  enabled boolean not null default true,
  unique(name, domain_id)
);
`

func newProjectId(ctx context.Context) (string, error) {
	const op = "project.newProjectId"
	id, err := base62.Random(10)
	if err != nil {
		return "", errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unable to generate id"))
	}
	return fmt.Sprintf("%s_%s", globals.ProjectPrefix, id), nil
}

// CreateProject inserts p and returns it with its assigned public id.
func (r *Repository) CreateProject(ctx context.Context, p *Project) (*Project, error) {
	const op = "project.(Repository).CreateProject"
	if p == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing project")
	}
	if p.PublicId != "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "public id is not empty")
	}
	id, err := newProjectId(ctx)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	c := p.clone()
	c.PublicId = id
	if err := r.rw.Create(ctx, c); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return c, nil
}

// LookupProject returns the project with the given public id.
func (r *Repository) LookupProject(ctx context.Context, publicId string) (*Project, error) {
	const op = "project.(Repository).LookupProject"
	if publicId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	var p Project
	if err := r.rw.LookupWhere(ctx, &p, "public_id = ?", []any{publicId}); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &p, nil
}

// LookupTarget builds the target descriptor ownership clauses evaluate
// against. A missing project surfaces as a RecordNotFound error; the
// enforcement point decides whether the caller may learn that.
func (r *Repository) LookupTarget(ctx context.Context, publicId string) (*authz.Target, error) {
	const op = "project.(Repository).LookupTarget"
	p, err := r.LookupProject(ctx, publicId)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &authz.Target{
		Id:        p.PublicId,
		Type:      resource.Project,
		DomainId:  p.DomainId,
		ProjectId: p.PublicId,
		OwnerId:   p.OwnerId,
	}, nil
}

// ListProjects returns the projects in the given domain. Supports WithLimit.
func (r *Repository) ListProjects(ctx context.Context, domainId string, opt ...Option) ([]*Project, error) {
	const op = "project.(Repository).ListProjects"
	if domainId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing domain id")
	}
	opts := getOpts(opt...)
	limit := opts.withLimit
	if limit == 0 {
		limit = -1
	}
	var projects []*Project
	if err := r.rw.SearchWhere(ctx, &projects, "domain_id = ?", []any{domainId}, dbw.WithLimit(limit)); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return projects, nil
}

// ListUserProjects returns the projects owned by ownerId. Supports
// WithLimit.
func (r *Repository) ListUserProjects(ctx context.Context, ownerId string, opt ...Option) ([]*Project, error) {
	const op = "project.(Repository).ListUserProjects"
	if ownerId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing owner id")
	}
	opts := getOpts(opt...)
	limit := opts.withLimit
	if limit == 0 {
		limit = -1
	}
	var projects []*Project
	if err := r.rw.SearchWhere(ctx, &projects, "owner_id = ?", []any{ownerId}, dbw.WithLimit(limit)); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return projects, nil
}

// UpdateProject updates the fields named by fieldMaskPaths (Name,
// Description, Enabled) and returns the stored project.
func (r *Repository) UpdateProject(ctx context.Context, p *Project, fieldMaskPaths []string) (*Project, error) {
	const op = "project.(Repository).UpdateProject"
	if p == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing project")
	}
	if p.PublicId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	if len(fieldMaskPaths) == 0 {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing field mask")
	}
	c := p.clone()
	if _, err := r.rw.Update(ctx, c, fieldMaskPaths, nil); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return r.LookupProject(ctx, p.PublicId)
}

// DeleteProject removes the project with the given public id, returning the
// number of records deleted.
func (r *Repository) DeleteProject(ctx context.Context, publicId string) (int, error) {
	const op = "project.(Repository).DeleteProject"
	if publicId == "" {
		return 0, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	rows, err := r.rw.Exec(ctx, "delete from resource_project where public_id = ?", []any{publicId})
	if err != nil {
		return 0, errors.Wrap(ctx, err, op)
	}
	return rows, nil
}
