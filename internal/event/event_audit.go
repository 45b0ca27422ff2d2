// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package event

import (
	"fmt"
	"time"
)

// auditVersion defines the version of audit events
const auditVersion = "v0.1"

// auditEventType defines the type of audit event
type auditEventType string

const (
	// AuthzDecision defines an authorization decision audit event type.
	// Every deny produced by the engine is emitted as one of these; allows
	// may be as well when full decision auditing is enabled.
	AuthzDecision auditEventType = "AuthzDecision"
)

// audit defines the data of audit events. The payload carries only ids and
// the server-side reason; decision reasons are never rendered to callers.
type audit struct {
	Id            string    `json:"id"`
	Version       string    `json:"version"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	UserId        string    `json:"user_id,omitempty"`
	Action        string    `json:"action,omitempty"`
	TargetId      string    `json:"target_id,omitempty"`
	Granted       bool      `json:"granted"`
	Reason        string    `json:"reason,omitempty"`
	CorrelationId string    `json:"correlation_id,omitempty"`
}

func newAudit(fromOperation Op, opt ...Option) (*audit, error) {
	const op = "event.newAudit"
	if fromOperation == "" {
		return nil, fmt.Errorf("%s: missing from operation: %w", op, ErrInvalidParameter)
	}
	opts := getOpts(opt...)
	if opts.withId == "" {
		var err error
		opts.withId, err = NewId(string(AuditType))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	var dtm time.Time
	switch opts.withNow.IsZero() {
	case false:
		dtm = opts.withNow
	default:
		dtm = time.Now()
	}

	a := &audit{
		Id:            opts.withId,
		Version:       auditVersion,
		Type:          string(AuthzDecision),
		Timestamp:     dtm,
		UserId:        opts.withUserId,
		Action:        opts.withAction,
		TargetId:      opts.withTargetId,
		Granted:       opts.withGranted,
		Reason:        opts.withReason,
		CorrelationId: opts.withCorrelationId,
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// EventType is required for all event types by the eventlogger broker
func (a *audit) EventType() string { return string(AuditType) }

func (a *audit) validate() error {
	const op = "event.(audit).validate"
	if a.Id == "" {
		return fmt.Errorf("%s: missing id: %w", op, ErrInvalidParameter)
	}
	return nil
}
