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

package dxerrors

import (
	"time"

	"dirpx.dev/dxerrors/code"
	"dirpx.dev/dxerrors/decode"
)

// Option is a functional option for constructing or transforming an Error.
// It always takes an *Error and returns a (possibly new) *Error.
type Option func(*Error) *Error

// WithCodeOption sets the backend code on the error being constructed.
func WithCodeOption(c code.Code) Option {
	return func(e *Error) *Error { return e.WithCode(c) }
}

// WithBodyOption sets the response body.
func WithBodyOption(b *decode.Body) Option {
	return func(e *Error) *Error { return e.WithBody(b) }
}

// WithHeaderOption adds a single response header.
func WithHeaderOption(k, v string) Option {
	return func(e *Error) *Error { return e.WithHeader(k, v) }
}

// WithActivityIDOption sets the backend correlation id.
func WithActivityIDOption(id string) Option {
	return func(e *Error) *Error { return e.WithActivityID(id) }
}

// WithRetryAfterOption sets the server retry hint.
func WithRetryAfterOption(d time.Duration) Option {
	return func(e *Error) *Error { return e.WithRetryAfter(d) }
}

// WithCauseOption attaches a cause on construction.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}
