// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package scope

import "github.com/outpost-sec/warden/globals"

// Type defines the possible levels at which authority can be granted and at
// which a token can be scoped. A principal's scope type is an authorization
// fact in its own right: role names never carry across scope types.
type Type uint

const (
	Unknown Type = 0
	System  Type = 1
	Domain  Type = 2
	Project Type = 3
)

func (s Type) String() string {
	return [...]string{
		"unknown",
		"system",
		"domain",
		"project",
	}[s]
}

func (s Type) Prefix() string {
	return [...]string{
		"unknown",
		globals.SystemPrefix,
		globals.DomainPrefix,
		globals.ProjectPrefix,
	}[s]
}

var Map = map[string]Type{
	System.String():  System,
	Domain.String():  Domain,
	Project.String(): Project,
}

// Scope pairs a scope type with the id of the container it names. System
// scope is global, so its id is always empty.
type Scope struct {
	Type Type
	Id   string
}

// Equal reports whether two scopes name the same authority container.
func (s Scope) Equal(other Scope) bool {
	return s.Type == other.Type && s.Id == other.Id
}
