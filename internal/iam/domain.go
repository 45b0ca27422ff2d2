// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"

	"github.com/outpost-sec/warden/internal/errors"
)

// Domain is the container users and projects hang off of. Only its identity
// matters to the engine; domain management is administrative surface.
type Domain struct {
	PublicId string `gorm:"primaryKey"`
	Name     string `gorm:"default:null"`
}

func (*Domain) TableName() string {
	return "iam_domain"
}

// NewDomain creates a new in memory Domain.
func NewDomain(ctx context.Context, name string) (*Domain, error) {
	const op = "iam.NewDomain"
	if name == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing name")
	}
	return &Domain{
		Name: name,
	}, nil
}
