// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package authz

// Reason says which gate a denied request failed at. Reasons are stable
// strings: audit pipelines and tests match on them.
type Reason string

const (
	// ReasonNone is the reason on an allowed decision.
	ReasonNone Reason = ""

	// ReasonScopeMismatch means no condition of the rule admits the
	// principal's scope type at all; roles were never considered.
	ReasonScopeMismatch Reason = "scope-mismatch"

	// ReasonMissingRole means the scope gate passed but the principal holds
	// none of the required roles, and the rule offers no ownership
	// alternative.
	ReasonMissingRole Reason = "missing-role"

	// ReasonInsufficientPrivilege means both the role gate and the rule's
	// ownership alternative failed.
	ReasonInsufficientPrivilege Reason = "insufficient-privilege"
)

// Decision is the engine's verdict. DENY is a value, not an error: errors
// from Authorize mean the question could not be evaluated, never that the
// answer was no.
type Decision struct {
	// Allowed reports whether the action may proceed.
	Allowed bool

	// Reason is set on denied decisions.
	Reason Reason

	// ViaOwnership is true when the allow came from an ownership clause
	// rather than the role gate.
	ViaOwnership bool
}

// Allow is the decision for a role-gate pass.
func Allow() Decision {
	return Decision{Allowed: true}
}

// AllowViaOwnership is the decision for an ownership-clause pass.
func AllowViaOwnership() Decision {
	return Decision{Allowed: true, ViaOwnership: true}
}

// Deny is a denied decision with the given reason.
func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}
