// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

// IsNotFoundError returns a boolean indicating whether the error is known to
// report a "record not found" condition.
func IsNotFoundError(err error) bool {
	return Match(T(RecordNotFound), err)
}

// IsAuthenticationError returns a boolean indicating whether the error is
// known to report that credentials could not be resolved to a principal.
// This is deliberately distinct from an authorization deny, which is a normal
// decision value and never an error.
func IsAuthenticationError(err error) bool {
	return Match(T(Authentication), err)
}

// IsConfigurationError returns a boolean indicating whether the error is
// known to report a policy/registry configuration problem.
func IsConfigurationError(err error) bool {
	return Match(T(Configuration), err)
}

// IsUnavailableError returns a boolean indicating whether the error is known
// to report a transient backing store failure.
func IsUnavailableError(err error) bool {
	return Match(T(Unavailable), err)
}

// IsUniqueError returns a boolean indicating whether the error is known to
// report a unique constraint violation.
func IsUniqueError(err error) bool {
	return Match(T(NotUnique), err)
}
