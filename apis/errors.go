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

import "time"

// MessagedError exposes the raw backend message of an error, unlike Error()
// which is free to decorate it for logs.
//
// The decoder prefers ErrorMessage over Error when both are available,
// because the backend's formatted payload has to reach it untouched.
type MessagedError interface {
	error

	// ErrorMessage returns the message exactly as the backend produced it.
	ErrorMessage() string
}

// CodedError represents an error carrying the backend's short error code,
// such as "BadRequest" or "Conflict".
//
// A non-empty code tells the decoder that the message is still in backend
// format and needs inner-error extraction.
type CodedError interface {
	error

	// ErrorCode returns the backend code. It MAY be empty.
	ErrorCode() string
}

// StatusedError represents an error produced by a failed HTTP-like call.
type StatusedError interface {
	error

	// HTTPStatus returns the response status, or 0 when the failure did not
	// come from a response (network errors, cancellation).
	HTTPStatus() int
}

// BodiedError exposes the decoded "body" the SDK attaches to an error.
type BodiedError interface {
	error

	// ErrorBody returns the body's code and message. Both MAY be empty.
	ErrorBody() (code, message string)
}

// RetryAfterError carries a server-provided hint of how long to wait before
// re-issuing the request (the backend's x-ms-retry-after-ms header).
type RetryAfterError interface {
	error

	// RetryAfter returns the hint, or 0 when none was given.
	RetryAfter() time.Duration
}
