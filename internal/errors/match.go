// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

import stderrors "errors"

// Template is useful constructing Match Error templates.  Templates allow you
// to match Errors without specifying a Code.  In other words, just Match using
// the Errors: Kind, Op, etc.
type Template struct {
	Error      // Embedded Error
	Kind  Kind // Kind associated with the Error
}

// T creates a new Template for matching Errors.  Invalid parameters are
// ignored.  If more than one parameter for a given Error value is provided,
// the last one wins.
func T(args ...any) *Template {
	t := &Template{}
	for _, a := range args {
		switch arg := a.(type) {
		case Code:
			t.Code = arg
		case string:
			t.Msg = arg
		case Op:
			t.Op = arg
		case *Error:
			c := *arg
			t.Error = c
		case error:
			t.Wrapped = arg
		case Kind:
			t.Kind = arg
		}
	}
	return t
}

// Info about the Template's error
func (t *Template) Info() Info {
	if t.Error.Code != Unknown {
		return t.Error.Code.Info()
	}
	return Info{Kind: t.Kind, Message: "Unknown"}
}

// Match the template against the error.  The error must be a *Error, or wrap
// one, or match will return false.  Matches all non-empty fields of the
// template against the error.
func Match(t *Template, err error) bool {
	if t == nil || err == nil {
		return false
	}

	var e *Error
	if !stderrors.As(err, &e) || e == nil {
		return false
	}

	if t.Code != Unknown && t.Code != e.Code {
		return false
	}
	if t.Msg != "" && t.Msg != e.Msg {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	if t.Kind != Other && t.Kind != e.Code.Info().Kind {
		return false
	}
	if t.Wrapped != nil {
		if e.Wrapped == nil || !stderrors.Is(e.Wrapped, t.Wrapped) {
			return false
		}
	}
	return true
}
