// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package iam

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
	withName  string
	withUrl   string
	withDebug bool
	withLimit int
}

func getDefaultOptions() options {
	return options{}
}

// WithName provides an optional name.
func WithName(name string) Option {
	return func(o *options) {
		o.withName = name
	}
}

// WithUrl provides an optional store connection url.
func WithUrl(url string) Option {
	return func(o *options) {
		o.withUrl = url
	}
}

// WithDebug enables debug output for the store's underlying connection.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.withDebug = debug
	}
}

// WithLimit provides an optional limit on returned results; a negative
// number means no limit.
func WithLimit(l int) Option {
	return func(o *options) {
		o.withLimit = l
	}
}
