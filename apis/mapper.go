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

import "google.golang.org/grpc/codes"

// Failure is the mapper input: what is known about a failed backend call.
type Failure struct {
	// Status is the HTTP status of the response, 0 when there was none.
	Status int
	// Code is the backend code, e.g. "AuthorizationFailed". May be empty.
	Code string
	// Area is the slash-separated place where the failure was handled,
	// e.g. "Explorer/Query". May be empty.
	Area string
}

// Mapper resolves the gRPC code a failure is exposed with.
//
// Implementations must be immutable and safe for concurrent use.
type Mapper interface {
	// GRPCCode returns the gRPC code for f. It never returns codes.OK.
	GRPCCode(f Failure) codes.Code

	// Explain returns a human-readable description of which rule matched.
	Explain(f Failure) string
}
