// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

import (
	"context"

	"github.com/outpost-sec/warden/internal/errors"
)

// User holds an authenticatable identity. The credential columns hold the
// argon2id salt and derived key; the cleartext password is never stored.
type User struct {
	PublicId     string `gorm:"primaryKey"`
	LoginName    string `gorm:"default:null"`
	Name         string `gorm:"default:null"`
	DomainId     string `gorm:"default:null"`
	PasswordSalt []byte `gorm:"default:null"`
	DerivedKey   []byte `gorm:"default:null"`
}

func (*User) TableName() string {
	return "iam_user"
}

// NewUser creates a new in memory User with a login name within the domain.
// Supports the options: WithName.
func NewUser(ctx context.Context, domainId, loginName string, opt ...Option) (*User, error) {
	const op = "iam.NewUser"
	if domainId == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing domain id")
	}
	if loginName == "" {
		return nil, errors.New(ctx, errors.InvalidParameter, op, "missing login name")
	}
	opts := getOpts(opt...)
	return &User{
		LoginName: loginName,
		DomainId:  domainId,
		Name:      opts.withName,
	}, nil
}

func (u *User) clone() *User {
	cp := *u
	cp.PasswordSalt = append([]byte(nil), u.PasswordSalt...)
	cp.DerivedKey = append([]byte(nil), u.DerivedKey...)
	return &cp
}
