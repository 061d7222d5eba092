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

package status

import "fmt"

// Status codes the backend (and the proxies in front of it) are known to return.
const (
	OK          = 200
	Created     = 201
	Accepted    = 202
	NoContent   = 204
	NotModified = 304

	BadRequest      = 400
	Unauthorized    = 401
	Forbidden       = 403
	NotFound        = 404
	Conflict        = 409
	TooManyRequests = 429

	InternalServerError = 500
	BadGateway          = 502
	ServiceUnavailable  = 503
	GatewayTimeout      = 504
)

// retryable is the fixed set of transient statuses, in ascending order.
//
// InternalServerError is in the set even though not every 500 is safe to
// replay server-side.
// TODO: drop 500 once the portal backend handles its own 500s.
var retryable = [...]int{
	TooManyRequests,
	InternalServerError,
	BadGateway,
	ServiceUnavailable,
	GatewayTimeout,
}

// Class is the outcome of classifying a status.
type Class int

const (
	// Fatal failures must not be re-issued.
	Fatal Class = iota
	// Retryable failures are transient; a retry policy may re-issue the call.
	Retryable
)

// String returns a human-readable name of the class.
func (c Class) String() string {
	switch c {
	case Fatal:
		return "fatal"
	case Retryable:
		return "retryable"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// IsRetryable reports whether a failure with the given status is transient
// and worth retrying. It is total over all integers.
func IsRetryable(code int) bool {
	for _, c := range retryable {
		if c == code {
			return true
		}
	}
	return false
}

// Classify maps a status to its Class.
func Classify(code int) Class {
	if IsRetryable(code) {
		return Retryable
	}
	return Fatal
}

// RetryableCodes returns a copy of the retryable set in ascending order.
func RetryableCodes() []int {
	out := make([]int, len(retryable))
	copy(out, retryable[:])
	return out
}
