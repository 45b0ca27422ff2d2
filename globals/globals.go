// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package globals

import "time"

const (
	// Public id prefixes for the resource types warden stores.
	UserPrefix            = "u"
	RolePrefix            = "r"
	GrantPrefix           = "g"
	DomainPrefix          = "d"
	ProjectPrefix         = "p"
	RegisteredLimitPrefix = "rl"
	AuthTokenPrefix       = "at"
	SystemPrefix          = "sys"

	// Well-known role names seeded by bootstrap. Admin implies member
	// implies reader.
	RoleNameAdmin  = "admin"
	RoleNameMember = "member"
	RoleNameReader = "reader"

	// DefaultDomainName is the name of the domain created by bootstrap.
	DefaultDomainName = "default"
)

var (
	// DefaultTokenLifetime is how long an issued auth token stays resolvable.
	DefaultTokenLifetime = 7 * 24 * time.Hour
)
