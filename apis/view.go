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

package apis

// ViewProvider is implemented by errors that can produce a transport-friendly,
// self-contained representation of themselves.
type ViewProvider interface {
	error

	// ErrorView returns a transport-friendly snapshot of the error.
	ErrorView() ErrorView
}

// ErrorView is a minimal, serializable representation of a backend failure
// after decoding and presentation.
//
// This is *not* the concrete error type used internally; it is the shape that
// we are comfortable exposing over the wire or logging.
type ErrorView struct {
	// Status is the HTTP status of the failed call. 0 when unknown.
	Status int `json:"status,omitempty"`

	// Code is the backend code, e.g. "Conflict". May be empty.
	Code string `json:"code,omitempty"`

	// Message is the final user-facing message (after rewrites).
	Message string `json:"message"`

	// ActivityID is the backend correlation id, when known.
	ActivityID string `json:"activityId,omitempty"`

	// Retryable mirrors the status classification.
	Retryable bool `json:"retryable,omitempty"`

	// Errors lists the decoded inner errors in source order.
	Errors []InnerError `json:"errors,omitempty"`
}
