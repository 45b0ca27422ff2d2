// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"

	"github.com/outpost-sec/warden/internal/authz"
	"github.com/outpost-sec/warden/internal/errors"
	"github.com/outpost-sec/warden/internal/types/resource"
)

// LookupTarget builds the target descriptor for a user. A user owns itself:
// actions like listing a user's own projects pass an owner ownership clause
// exactly when the principal is that user.
func (r *Repository) LookupTarget(ctx context.Context, publicId string) (*authz.Target, error) {
	const op = "iam.(Repository).LookupTarget"
	u, err := r.LookupUser(ctx, publicId)
	if err != nil {
		return nil, errors.Wrap(ctx, err, op)
	}
	return &authz.Target{
		Id:       u.PublicId,
		Type:     resource.User,
		DomainId: u.DomainId,
		OwnerId:  u.PublicId,
	}, nil
}
