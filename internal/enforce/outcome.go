// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package enforce

import "github.com/outpost-sec/warden/internal/authz"

// Outcome is what an enforcement point tells its caller. It already folds in
// existence masking: a denied caller sees Forbidden whether or not the
// target exists, and only a caller whose roles grant the action
// unconditionally can learn that a target is missing.
type Outcome int

const (
	// OutcomeUnknown is the zero value.
	OutcomeUnknown Outcome = iota

	// OutcomeAllowed means the action may proceed.
	OutcomeAllowed

	// OutcomeForbidden means the caller was authenticated but denied.
	OutcomeForbidden

	// OutcomeNotFound means the caller was allowed and the target does not
	// exist.
	OutcomeNotFound

	// OutcomeUnauthenticated means no valid credential accompanied the
	// request.
	OutcomeUnauthenticated
)

// String returns a lower-case name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAllowed:
		return "allowed"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeUnauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

// Result is the enforcement verdict for one request.
type Result struct {
	// Outcome is the transport-level answer.
	Outcome Outcome

	// Decision is the engine's final decision, when one was reached.
	Decision authz.Decision

	// Principal is the resolved principal, when authentication succeeded.
	Principal authz.Principal

	// CorrelationId ties the result to its audit events.
	CorrelationId string
}
