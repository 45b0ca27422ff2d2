// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package event

import (
	"fmt"
	"time"
)

// sysVersion defines the version of system events
const sysVersion = "v0.1"

// sysEvent defines the data of system events
type sysEvent struct {
	Id        string         `json:"id,omitempty"`
	Version   string         `json:"version"`
	Op        Op             `json:"op,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func newSysEvent(fromOperation Op, data map[string]any, opt ...Option) (*sysEvent, error) {
	const op = "event.newSysEvent"
	if fromOperation == "" {
		return nil, fmt.Errorf("%s: missing operation: %w", op, ErrInvalidParameter)
	}
	opts := getOpts(opt...)
	if opts.withId == "" {
		var err error
		opts.withId, err = NewId(string(SystemType))
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

	e := &sysEvent{
		Id:        opts.withId,
		Op:        fromOperation,
		Data:      data,
		Version:   sysVersion,
		CreatedAt: dtm,
	}
	if err := e.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// ConvertArgs converts a set of key/value pairs into a map. An odd number of
// args gets a final "msg" key.
func ConvertArgs(args ...any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	if len(args)%2 != 0 {
		extra := args[len(args)-1]
		args = append(args[:len(args)-1], msgField, extra)
	}

	m := map[string]any{}
	for i := 0; i < len(args); i += 2 {
		var key string
		switch st := args[i].(type) {
		case string:
			key = st
		default:
			key = fmt.Sprintf("%v", st)
		}
		m[key] = args[i+1]
	}
	return m
}

// EventType is required for all event types by the eventlogger broker
func (e *sysEvent) EventType() string { return string(SystemType) }

func (e *sysEvent) validate() error {
	const op = "event.(sysEvent).validate"
	if e.Id == "" {
		return fmt.Errorf("%s: missing id: %w", op, ErrInvalidParameter)
	}
	if e.Op == "" {
		return fmt.Errorf("%s: missing operation: %w", op, ErrInvalidParameter)
	}
	return nil
}
