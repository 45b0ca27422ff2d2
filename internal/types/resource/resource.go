// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package resource

// Type defines the types of resources that can be the target of an
// authorization decision.
type Type int

const (
	Unknown         Type = 0
	All             Type = 1
	Project         Type = 2
	Domain          Type = 3
	User            Type = 4
	Role            Type = 5
	Grant           Type = 6
	RegisteredLimit Type = 7
)

func (r Type) String() string {
	return [...]string{
		"unknown",
		"*",
		"project",
		"domain",
		"user",
		"role",
		"grant",
		"registered-limit",
	}[r]
}

var Map = map[string]Type{
	Unknown.String():         Unknown,
	All.String():             All,
	Project.String():         Project,
	Domain.String():          Domain,
	User.String():            User,
	Role.String():            Role,
	Grant.String():           Grant,
	RegisteredLimit.String(): RegisteredLimit,
}
