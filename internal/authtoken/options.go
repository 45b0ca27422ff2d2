// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package authtoken

import "time"

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
	withTokenLifetime time.Duration
	withNow           time.Time
}

func getDefaultOptions() options {
	return options{}
}

// WithTokenLifetime overrides the default lifetime of issued tokens.
func WithTokenLifetime(d time.Duration) Option {
	return func(o *options) {
		o.withTokenLifetime = d
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now time.Time) Option {
	return func(o *options) {
		o.withNow = now
	}
}
