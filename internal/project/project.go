// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Package project stores projects: domain-scoped containers owned by the
// user that created them. The store exists so enforcement points have real
// targets to authorize against; it is deliberately thin.
package project

import (
	"context"

	"github.com/outpost-sec/warden/internal/errors"
)

// Project is a container within a domain.
type Project struct {
	PublicId    string `gorm:"primaryKey"`
	Name        string
	Description string `gorm:"default:null"`
	DomainId    string
	OwnerId     string
	Enabled     bool `gorm:"default:true"`
}

// TableName returns the table name.
func (p *Project) TableName() string {
	return "resource_project"
}

// NewProject creates a project in memory. The public id is assigned on
// create.
func NewProject(ctx context.Context, domainId, ownerId, name string, opt ...Option) (*Project, error) {
	const op = "project.NewProject"
	if domainId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing domain id")
	}
	if ownerId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing owner id")
	}
	if name == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing name")
	}
	opts := getOpts(opt...)
	return &Project{
		Name:        name,
		Description: opts.withDescription,
		DomainId:    domainId,
		OwnerId:     ownerId,
		Enabled:     true,
	}, nil
}

func (p *Project) clone() *Project {
	cp := *p
	return &cp
}
