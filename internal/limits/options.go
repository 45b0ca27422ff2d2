// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package limits

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
	withDescription string
	withLimit       int
}

func getDefaultOptions() options {
	return options{}
}

// WithDescription provides an optional description.
func WithDescription(desc string) Option {
	return func(o *options) {
		o.withDescription = desc
	}
}

// WithLimit provides an optional limit on returned results; a negative
// number means no limit.
func WithLimit(l int) Option {
	return func(o *options) {
		o.withLimit = l
	}
}
