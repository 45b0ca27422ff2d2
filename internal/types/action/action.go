// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package action

// Type defines a type for the verbs of actions on resources.
type Type int

const (
	Unknown Type = 0
	List    Type = 1
	Create  Type = 2
	Update  Type = 3
	Read    Type = 4
	Delete  Type = 5
	All     Type = 6
)

var Map = map[string]Type{
	"unknown": Unknown,
	"list":    List,
	"create":  Create,
	"update":  Update,
	"read":    Read,
	"delete":  Delete,
	"*":       All,
}

func (a Type) String() string {
	return [...]string{
		"unknown",
		"list",
		"create",
		"update",
		"read",
		"delete",
		"*",
	}[a]
}

// ReadOnly reports whether the verb only observes state. Ownership clauses
// are an alternative allow path for read-only verbs exclusively; write verbs
// always go through the role gate.
func (a Type) ReadOnly() bool {
	switch a {
	case List, Read:
		return true
	}
	return false
}
