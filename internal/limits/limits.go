// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package limits stores registered limits: system-wide defaults for how much
// of a named resource a service allows. Unlike projects they have no owner,
// so reads are governed purely by roles.
package limits

import (
	"context"

	"github.com/outpost-sec/warden/internal/errors"
)

// RegisteredLimit is a system-wide default limit for a service resource.
type RegisteredLimit struct {
	PublicId     string `gorm:"primaryKey"`
	ServiceId    string
	ResourceName string
	DefaultLimit int
	Description  string `gorm:"default:null"`
}

// TableName returns the table name.
func (l *RegisteredLimit) TableName() string {
	return "resource_registered_limit"
}

// NewRegisteredLimit creates a registered limit in memory. The public id is
// assigned on create.
func NewRegisteredLimit(ctx context.Context, serviceId, resourceName string, defaultLimit int, opt ...Option) (*RegisteredLimit, error) {
	const op = "limits.NewRegisteredLimit"
	if serviceId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing service id")
	}
	if resourceName == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing resource name")
	}
	if defaultLimit < 0 {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "default limit cannot be negative")
	}
	opts := getOpts(opt...)
	return &RegisteredLimit{
		ServiceId:    serviceId,
		ResourceName: resourceName,
		DefaultLimit: defaultLimit,
		Description:  opts.withDescription,
	}, nil
}

func (l *RegisteredLimit) clone() *RegisteredLimit {
	cp := *l
	return &cp
}
