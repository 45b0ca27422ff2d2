// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"

	_ "github.com/glebarez/go-sqlite"
	"github.com/hashicorp/go-dbw"
	"github.com/outpost-sec/warden/internal/errors"
)

// DefaultStoreUrl uses a temp in-memory sqlite database (shared) see:
// https://www.sqlite.org/inmemorydb.html
const DefaultStoreUrl = "file::memory:?cache=shared"

// Store is the embedded database holding the iam domain: users, roles, role
// implications, domains and grants.
type Store struct {
	conn *dbw.DB
}

// Open creates the Store and its schema if it doesn't already exist.
// Supports the options: WithUrl, WithDebug.
func Open(ctx context.Context, opt ...Option) (*Store, error) {
	const op = "iam.Open"
	opts := getOpts(opt...)
	url := DefaultStoreUrl
	if opts.withUrl != "" {
		url = opts.withUrl
	}
	underlying, err := dbw.Open(dbw.Sqlite, url)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op, errors.WithCode(errors.Unavailable))
	}
	s := &Store{conn: underlying}
	if opts.withDebug {
		underlying.Debug(true)
	}
	if err := s.createTables(ctx); err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return s, nil
}

// Conn returns the underlying database connection.
func (s *Store) Conn() *dbw.DB {
	return s.conn
}

func (s *Store) createTables(ctx context.Context) error {
	const op = "iam.(Store).createTables"
	rw := dbw.New(s.conn)
	if _, err := rw.Exec(ctx, createTables, nil); err != nil {
		return errors.Wrap(ctx, err, op)
	}
	return nil
}

const createTables = `
begin;

create table if not exists iam_user (
  public_id text not null primary key,
  login_name text not null,
  name text,
  domain_id text not null,
  password_salt blob,
  derived_key blob,
  created_time timestamp default current_timestamp,
  unique(login_name, domain_id)
);

create table if not exists iam_role (
  public_id text not null primary key,
  name text not null unique,
  created_time timestamp default current_timestamp
);

create table if not exists iam_role_implication (
  role_id text not null references iam_role(public_id),
  implies_role_id text not null references iam_role(public_id),
  primary key (role_id, implies_role_id),
  check (role_id != implies_role_id)
);

create table if not exists iam_domain (
  public_id text not null primary key,
  name text not null unique,
  created_time timestamp default current_timestamp
);

create table if not exists iam_grant (
  public_id text not null primary key,
  user_id text not null references iam_user(public_id),
  role_id text not null references iam_role(public_id),
  scope_type integer not null check (scope_type in (1, 2, 3)),
  scope_id text not null default '',
  created_time timestamp default current_timestamp,
  unique(user_id, role_id, scope_type, scope_id)
);

commit;
`
