/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package dxerrors is the rich error type for failed calls to the database
// backend.
//
// An Error keeps the backend's raw message untouched, together with the
// HTTP status, the backend code and the response metadata the rest of the
// module needs: the decoder (package decode), the presenter (package
// present), the retry policy (package retry) and the transport adapters
// (packages httpx and grpcx).
package dxerrors

import (
	"fmt"
	"time"

	"dirpx.dev/dxerrors/apis"
	"dirpx.dev/dxerrors/code"
	"dirpx.dev/dxerrors/decode"
	"dirpx.dev/dxerrors/status"
)

// Error is a failed backend call.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances
// can be safely shared and modified in a functional style.
type Error struct {
	// Status is the HTTP status of the response, 0 when there was none.
	Status int

	// Code is the backend code ("Conflict", "BadRequest", or a numeric
	// status attached by the SDK). May be empty.
	Code code.Code

	// Message is the raw backend message. It usually still embeds the
	// "Message: {...} ActivityId: ..." payload.
	Message string

	// Body is the decoded JSON body of the response, when it had one.
	Body *decode.Body

	// Headers is a shallow, read-only copy of selected response headers.
	Headers map[string]string

	// ActivityID is the backend correlation id.
	ActivityID string

	// RetryHint is the server-provided delay before retrying, 0 when absent.
	RetryHint time.Duration

	// Records caches the decoded inner errors. Nil means "not decoded yet".
	Records []decode.Record

	// Cause holds the wrapped underlying error (if any).
	Cause error
}

var (
	_ apis.MessagedError   = (*Error)(nil)
	_ apis.CodedError      = (*Error)(nil)
	_ apis.StatusedError   = (*Error)(nil)
	_ apis.BodiedError     = (*Error)(nil)
	_ apis.RetryAfterError = (*Error)(nil)
)

// E is a convenience constructor for Error.
//
// Usage:
//
//	return dxerrors.E(status.Conflict, msg,
//	    dxerrors.WithCodeOption(code.Conflict),
//	    dxerrors.WithActivityIDOption(activityID),
//	)
//
// It always returns a *new* Error and applies all provided options in order.
func E(httpStatus int, msg string, opts ...Option) *Error {
	e := &Error{Status: httpStatus, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<status> <code>: <message>
//
// with the status and code parts omitted when absent.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Status != 0 && e.Code != code.Empty:
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	case e.Code != code.Empty:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorMessage implements apis.MessagedError.
func (e *Error) ErrorMessage() string { return e.Message }

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// HTTPStatus implements apis.StatusedError.
func (e *Error) HTTPStatus() int { return e.Status }

// RetryAfter implements apis.RetryAfterError.
func (e *Error) RetryAfter() time.Duration { return e.RetryHint }

// ErrorBody implements apis.BodiedError.
func (e *Error) ErrorBody() (string, string) {
	if e.Body == nil {
		return "", ""
	}
	return string(e.Body.Code), e.Body.Message
}

// Retryable reports whether the status is in the retryable set.
func (e *Error) Retryable() bool {
	return status.IsRetryable(e.Status)
}

// Input returns the decoder input describing e.
//
// An error without any code becomes decode.Structured, so a plain message is
// shown as-is. Otherwise the SDK shape is used and the numeric status stands
// in for a missing code.
func (e *Error) Input() decode.Input {
	c := e.Code
	if c == code.Empty {
		c = code.FromStatus(e.Status)
	}
	if c == code.Empty && e.Body == nil {
		return decode.Structured{Message: e.Message}
	}
	return decode.SDK{Message: e.Message, Code: c, Body: e.Body, Headers: e.Headers}
}

// Decoded returns the inner errors of e, decoding on demand when Records is
// not set. The result is never empty.
func (e *Error) Decoded() []decode.Record {
	if len(e.Records) > 0 {
		return e.Records
	}
	return decode.Decode(e.Input())
}

// WithCode returns a shallow copy of e with the given code set.
func (e *Error) WithCode(c code.Code) *Error {
	cp := *e
	cp.Code = c
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced message.
// Cached Records are dropped, since they were decoded from the old message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	cp.Records = nil
	return &cp
}

// WithBody returns a shallow copy of e with the given body.
func (e *Error) WithBody(b *decode.Body) *Error {
	cp := *e
	if b != nil {
		bb := *b
		b = &bb
	}
	cp.Body = b
	return &cp
}

// WithHeader returns a shallow copy of e with one extra header.
//
// The method always copies the map to preserve immutability.
func (e *Error) WithHeader(k, v string) *Error {
	cp := *e
	m := make(map[string]string, len(cp.Headers)+1)
	for k0, v0 := range cp.Headers {
		m[k0] = v0
	}
	m[k] = v
	cp.Headers = m
	return &cp
}

// WithActivityID returns a shallow copy of e with the correlation id set.
func (e *Error) WithActivityID(id string) *Error {
	cp := *e
	cp.ActivityID = id
	return &cp
}

// WithRetryAfter returns a shallow copy of e with the retry hint set.
func (e *Error) WithRetryAfter(d time.Duration) *Error {
	cp := *e
	cp.RetryHint = d
	return &cp
}

// WithRecords returns a shallow copy of e caching the decoded records.
func (e *Error) WithRecords(recs []decode.Record) *Error {
	cp := *e
	cp.Records = append([]decode.Record(nil), recs...)
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause attached.
// If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
