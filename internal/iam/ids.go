// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-secure-stdlib/base62"
	"github.com/outpost-sec/warden/globals"
	"github.com/outpost-sec/warden/internal/errors"
)

func newId(ctx context.Context, prefix string) (string, error) {
	const op = "iam.newId"
	if prefix == "" {
		return "", errors.New(ctx, errors.InvalidParameter, op, "missing prefix")
	}
	publicId, err := base62.Random(10)
	if err != nil {
		return "", errors.Wrap(ctx, err, op, errors.WithCode(errors.Io), errors.WithMsg("unable to generate id"))
	}
	return fmt.Sprintf("%s_%s", prefix, publicId), nil
}

func newUserId(ctx context.Context) (string, error) {
	return newId(ctx, globals.UserPrefix)
}

func newRoleId(ctx context.Context) (string, error) {
	return newId(ctx, globals.RolePrefix)
}

func newGrantId(ctx context.Context) (string, error) {
	return newId(ctx, globals.GrantPrefix)
}

func newDomainId(ctx context.Context) (string, error) {
	return newId(ctx, globals.DomainPrefix)
}
