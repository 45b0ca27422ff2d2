// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package event

import (
	"time"
)

// getOpts - iterate the inbound Options and return a struct
func getOpts(opt ...Option) options {
	opts := getDefaultOptions()
	for _, o := range opt {
		o(&opts)
	}
	return opts
}

// Option - how Options are passed as arguments
type Option func(*options)

// options = how options are represented
type options struct {
	withId            string
	withNow           time.Time
	withInfo          map[string]any
	withUserId        string
	withAction        string
	withTargetId      string
	withGranted       bool
	withReason        string
	withCorrelationId string
	withEventer       *Eventer
	withEventerConfig *EventerConfig
	withBroker        broker
}

func getDefaultOptions() options {
	return options{}
}

// WithId allows an optional Id
func WithId(id string) Option {
	return func(o *options) {
		o.withId = id
	}
}

// WithNow allows an option to use either the provided time or time.Now()
func WithNow(now time.Time) Option {
	return func(o *options) {
		o.withNow = now
	}
}

// WithInfo allows an optional info key/value map on an error event
func WithInfo(info map[string]any) Option {
	return func(o *options) {
		o.withInfo = info
	}
}

// WithUserId allows an optional user id on an audit event
func WithUserId(id string) Option {
	return func(o *options) {
		o.withUserId = id
	}
}

// WithAction allows an optional action name on an audit event
func WithAction(action string) Option {
	return func(o *options) {
		o.withAction = action
	}
}

// WithTargetId allows an optional target resource id on an audit event
func WithTargetId(id string) Option {
	return func(o *options) {
		o.withTargetId = id
	}
}

// WithGranted records whether the decision being audited was an allow
func WithGranted(granted bool) Option {
	return func(o *options) {
		o.withGranted = granted
	}
}

// WithReason allows an optional server-side reason on an audit event
func WithReason(reason string) Option {
	return func(o *options) {
		o.withReason = reason
	}
}

// WithCorrelationId allows an optional correlation id
func WithCorrelationId(id string) Option {
	return func(o *options) {
		o.withCorrelationId = id
	}
}

// WithEventer allows an optional eventer
func WithEventer(e *Eventer) Option {
	return func(o *options) {
		o.withEventer = e
	}
}

// WithEventerConfig allows an optional eventer config
func WithEventerConfig(c *EventerConfig) Option {
	return func(o *options) {
		o.withEventerConfig = c
	}
}

// withTestBroker is an unexported option for substituting a test broker
func withTestBroker(b broker) Option {
	return func(o *options) {
		o.withBroker = b
	}
}
