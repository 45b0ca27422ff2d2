// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package event

import "errors"

// Op represents an operation (package.function or package.(type).function).
type Op string

// Type represents the event's type.
type Type string

const (
	EveryType Type = "*"        // EveryType represents every (all) types of events
	AuditType Type = "audit"    // AuditType represents the audit events raised for authorization decisions
	ErrorType Type = "error"    // ErrorType represents error events
	SystemType Type = "system"  // SystemType represents system events
)

const (
	OpField        = "op"         // OpField in an event.
	IdField        = "id"         // IdField in an event.
	VersionField   = "version"    // VersionField in an event.
	TypeField      = "type"       // TypeField in an event.
	CreatedAtField = "created_at" // CreatedAtField in an event.

	msgField = "msg"
)

// Errors returned from this package may be tested against these errors with
// errors.Is.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrMaxRetries       = errors.New("too many retries")
	ErrIo               = errors.New("error during io operation")
)
