// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-dbw"
)

// Op represents an operation (package.function or package.(type).function).
type Op string

// Error provides the ability to specify a Msg, Op, Code and Wrapped error.
// Errors are deliberately immutable once created.
type Error struct {
	// Code is the error's code, which can be used to get the error's
	// errorCodeInfo, which contains the error's Kind and Message
	Code Code

	// Msg for the error
	Msg string

	// Op represents the operation raising/propagating an error and is optional
	Op Op

	// Wrapped is the error which this Error wraps and will be nil if there's
	// no error to wrap.
	Wrapped error
}

// New creates a new Error and supports the options of:
//
//   - WithOp() - allows you to specify an optional Op (operation)
//   - WithMsg() - allows you to specify an optional error msg
//   - WithWrap() - allows you to specify an error to wrap
//
// The ctx is reserved for parity with the rest of the domain's call
// signatures; error creation itself never blocks or does I/O.
func New(ctx context.Context, c Code, op Op, msg string, opt ...Option) error {
	opts := GetOpts(opt...)
	opts.withErrCode = c
	opts.withOp = op
	opts.withErrMsg = msg
	return newError(opts)
}

// Wrap creates a new Error from the provided err and adds the given op to the
// error's chain. It preserves the wrapped error's Code when err is already a
// domain Error, otherwise it converts known storage errors into their
// equivalent domain Code.
func Wrap(ctx context.Context, e error, op Op, opt ...Option) error {
	opts := GetOpts(opt...)
	opts.withOp = op
	opts.withErrWrapped = e

	if opts.withErrCode == Unknown && e != nil {
		var errorToTest *Error
		if stderrors.As(e, &errorToTest) {
			opts.withErrCode = errorToTest.Code
		} else if converted := Convert(e); converted != nil {
			opts.withErrCode = converted.Code
		}
	}
	return newError(opts)
}

func newError(opts Options) error {
	return &Error{
		Code:    opts.withErrCode,
		Op:      opts.withOp,
		Msg:     opts.withErrMsg,
		Wrapped: opts.withErrWrapped,
	}
}

// Convert will convert the error to a domain Error (returning nil if it is
// not possible). It converts the well-known errors raised by the dbw storage
// layer so repositories don't leak dbw sentinels to their callers.
func Convert(e error) *Error {
	if e == nil {
		return nil
	}

	var alreadyConverted *Error
	if stderrors.As(e, &alreadyConverted) {
		return alreadyConverted
	}

	switch {
	case stderrors.Is(e, dbw.ErrRecordNotFound):
		return New(context.Background(), RecordNotFound, "", "record not found", WithWrap(e)).(*Error)
	case stderrors.Is(e, dbw.ErrInvalidParameter), stderrors.Is(e, dbw.ErrInvalidFieldMask):
		return New(context.Background(), InvalidParameter, "", "invalid parameter", WithWrap(e)).(*Error)
	case stderrors.Is(e, dbw.ErrMaxRetries):
		return New(context.Background(), Unavailable, "", "too many retries", WithWrap(e)).(*Error)
	}

	// sqlite surfaces constraint failures as flat strings, so match on the
	// stable substrings it uses.
	msg := e.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return New(context.Background(), NotUnique, "", "unique constraint violation", WithWrap(e)).(*Error)
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return New(context.Background(), NotNull, "", "not null constraint violation", WithWrap(e)).(*Error)
	case strings.Contains(msg, "CHECK constraint failed"):
		return New(context.Background(), CheckConstraint, "", "check constraint violation", WithWrap(e)).(*Error)
	}
	return nil
}

// Error satisfies the error interface and returns a string representation of
// the error.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var s strings.Builder
	if e.Op != "" {
		join(&s, ": ", string(e.Op))
	}
	if e.Msg != "" {
		join(&s, ": ", e.Msg)
	}

	if info, ok := errorCodeInfo[e.Code]; ok {
		if e.Msg == "" {
			join(&s, ": ", info.Message) // provide a default.
			join(&s, ", ", info.Kind.String())
		}
		join(&s, ": ", fmt.Sprintf("error #%d", e.Code))
	}

	if e.Wrapped != nil {
		join(&s, ": ", e.Wrapped.Error())
	}
	return s.String()
}

func join(str *strings.Builder, delim string, s string) {
	if str.Len() == 0 {
		_, _ = str.WriteString(s)
		return
	}
	_, _ = str.WriteString(delim + s)
}

// Unwrap implements the errors.Unwrap interface and allows callers to use the
// errors.Is() and errors.As() functions effectively for any wrapped errors.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is the receiver equal to the target error? Allows matching on Code-only
// sentinels with stderrors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !stderrors.As(target, &t) || t == nil {
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
	return true
}
