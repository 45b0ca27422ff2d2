// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package authz

import (
	"github.com/outpost-sec/warden/internal/types/resource"
)

// Target is the minimal descriptor of the resource an action operates on,
// used only by ownership clauses. Enforcement points pass nil when the
// action has no single target (creates, lists) or when the decision should
// be made on roles alone; the engine never fetches anything itself.
type Target struct {
	// Id is the target's public id.
	Id string

	// Type is the resource type of the target.
	Type resource.Type

	// DomainId is the domain the target belongs to, when it has one.
	DomainId string

	// ProjectId is the project a project-bound target belongs to. For a
	// project resource this is its own id.
	ProjectId string

	// OwnerId is the user that owns the target, when ownership applies.
	OwnerId string
}
