// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"
	stderrors "errors"
	"sort"

	"github.com/hashicorp/go-dbw"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/scope"
)

// Repository provides read/write access to the iam domain. It is the grant
// store the resolver and enforcement point rely on; the authorization engine
// itself never touches it.
type Repository struct {
	rw         *dbw.RW
	argon2Conf argon2Config
}

// NewRepository creates a new iam Repository backed by the store.
func NewRepository(ctx context.Context, store *Store) (*Repository, error) {
	const op = "iam.NewRepository"
	if store == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing store")
	}
	if store.conn == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing store connection")
	}
	return &Repository{
		rw:         dbw.New(store.conn),
		argon2Conf: defaultArgon2Config(),
	}, nil
}

// CreateUser inserts u into the repository, deriving and storing the
// password credential, and returns the user with its assigned public id.
func (r *Repository) CreateUser(ctx context.Context, u *User, password string) (*User, error) {
	const op = "iam.(Repository).CreateUser"
	if u == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing user")
	}
	if u.PublicId != "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "public id is not empty")
	}
	if u.LoginName == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing login name")
	}
	if password == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing password")
	}
	id, err := newUserId(ctx)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	salt, key, err := r.argon2Conf.deriveKey(ctx, password, nil)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	c := u.clone()
	c.PublicId = id
	c.PasswordSalt = salt
	c.DerivedKey = key
	if err := r.rw.Create(ctx, c); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return c, nil
}

// LookupUser returns the user with the given public id.
func (r *Repository) LookupUser(ctx context.Context, publicId string) (*User, error) {
	const op = "iam.(Repository).LookupUser"
	if publicId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	var u User
	if err := r.rw.LookupWhere(ctx, &u, "public_id = ?", []any{publicId}); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &u, nil
}

// AuthenticateUser verifies the password for the login name within the
// domain and returns the matching user. Unknown users and bad passwords both
// produce the same AuthenticationFailed error so callers can't probe for
// valid login names.
func (r *Repository) AuthenticateUser(ctx context.Context, domainId, loginName, password string) (*User, error) {
	const op = "iam.(Repository).AuthenticateUser"
	if domainId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing domain id")
	}
	if loginName == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing login name")
	}
	var u User
	if err := r.rw.LookupWhere(ctx, &u, "domain_id = ? and login_name = ?", []any{domainId, loginName}); err != nil {
		if stderrors.Is(err, dbw.ErrRecordNotFound) {
			return nil, errors.New(ctx, errors.AuthenticationFailed, op, "authentication failed")
		}
		return nil, errors.Wrap(ctx, err, op)
	}
	if !r.argon2Conf.verify(password, u.PasswordSalt, u.DerivedKey) {
		return nil, errors.New(ctx, errors.AuthenticationFailed, op, "authentication failed")
	}
	return &u, nil
}

// CreateRole inserts role and returns it with its assigned public id.
func (r *Repository) CreateRole(ctx context.Context, role *Role) (*Role, error) {
	const op = "iam.(Repository).CreateRole"
	if role == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing role")
	}
	if role.PublicId != "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "public id is not empty")
	}
	if role.Name == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing name")
	}
	id, err := newRoleId(ctx)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	c := &Role{PublicId: id, Name: role.Name}
	if err := r.rw.Create(ctx, c); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return c, nil
}

// LookupRoleByName returns the role with the given name.
func (r *Repository) LookupRoleByName(ctx context.Context, name string) (*Role, error) {
	const op = "iam.(Repository).LookupRoleByName"
	if name == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing name")
	}
	var role Role
	if err := r.rw.LookupWhere(ctx, &role, "name = ?", []any{name}); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &role, nil
}

// AddRoleImplication records that roleId implies impliesRoleId.
func (r *Repository) AddRoleImplication(ctx context.Context, roleId, impliesRoleId string) (*RoleImplication, error) {
	const op = "iam.(Repository).AddRoleImplication"
	imp, err := NewRoleImplication(ctx, roleId, impliesRoleId)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	if err := r.rw.Create(ctx, imp); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return imp, nil
}

// CreateDomain inserts domain and returns it with its assigned public id.
func (r *Repository) CreateDomain(ctx context.Context, domain *Domain) (*Domain, error) {
	const op = "iam.(Repository).CreateDomain"
	if domain == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing domain")
	}
	if domain.PublicId != "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "public id is not empty")
	}
	id, err := newDomainId(ctx)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	c := &Domain{PublicId: id, Name: domain.Name}
	if err := r.rw.Create(ctx, c); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return c, nil
}

// CreateGrant inserts g and returns it with its assigned public id. Granting
// the same (user, role, scope) twice returns a NotUnique error.
func (r *Repository) CreateGrant(ctx context.Context, g *Grant) (*Grant, error) {
	const op = "iam.(Repository).CreateGrant"
	if g == nil {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing grant")
	}
	if g.PublicId != "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "public id is not empty")
	}
	id, err := newGrantId(ctx)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	c := &Grant{
		PublicId:  id,
		UserId:    g.UserId,
		RoleId:    g.RoleId,
		ScopeType: g.ScopeType,
		ScopeId:   g.ScopeId,
	}
	if err := r.rw.Create(ctx, c); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return c, nil
}

// DeleteGrant removes the grant with the given public id, returning the
// number of records deleted.
func (r *Repository) DeleteGrant(ctx context.Context, publicId string) (int, error) {
	const op = "iam.(Repository).DeleteGrant"
	if publicId == "" {
		return 0, errors.New(ctx, errors.InvalidParameter, op, "missing public id")
	}
	rows, err := r.rw.Exec(ctx, "delete from iam_grant where public_id = ?", []any{publicId})
	if err != nil {
		return 0, errors.Wrap(ctx, err, op)
	}
	return rows, nil
}

// ListGrants returns the grants held by userId within the given scope. For
// system scope the scope id is ignored. An empty result is not an error: a
// user with no grants in a scope is simply unauthorized there.
func (r *Repository) ListGrants(ctx context.Context, userId string, s scope.Scope, opt ...Option) ([]*Grant, error) {
	const op = "iam.(Repository).ListGrants"
	if userId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing user id")
	}
	if s.Type == scope.Unknown {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "unknown scope type")
	}
	opts := getOpts(opt...)
	limit := opts.withLimit
	if limit == 0 {
		limit = -1
	}

	where := "user_id = ? and scope_type = ?"
	args := []any{userId, uint(s.Type)}
	if s.Type != scope.System {
		where += " and scope_id = ?"
		args = append(args, s.Id)
	}

	var grants []*Grant
	if err := r.rw.SearchWhere(ctx, &grants, where, args, dbw.WithLimit(limit)); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return grants, nil
}

// ExpandRoleNames resolves the given role ids to names, following the role
// implication graph transitively (admin implies member implies reader). The
// returned names are sorted and deduplicated.
func (r *Repository) ExpandRoleNames(ctx context.Context, roleIds []string) ([]string, error) {
	const op = "iam.(Repository).ExpandRoleNames"
	if len(roleIds) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(roleIds))
	queue := append([]string(nil), roleIds...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true

		var imps []*RoleImplication
		if err := r.rw.SearchWhere(ctx, &imps, "role_id = ?", []any{id}, dbw.WithLimit(-1)); err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		for _, imp := range imps {
			if !seen[imp.ImpliesRoleId] {
				queue = append(queue, imp.ImpliesRoleId)
			}
		}
	}

	names := make([]string, 0, len(seen))
	for id := range seen {
		var role Role
		if err := r.rw.LookupWhere(ctx, &role, "public_id = ?", []any{id}); err != nil {
			return nil, errors.Wrap(ctx, err, op)
		}
		names = append(names, role.Name)
	}
	sort.Strings(names)
	return names, nil
}
