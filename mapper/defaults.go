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

package mapper

import (
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/dxerrors/code"
)

// defaultStatus maps the HTTP statuses the database backend returns to the
// closest canonical gRPC code.
var defaultStatus = map[int]codes.Code{
	http.StatusBadRequest:            codes.InvalidArgument,    // Malformed request or query syntax error.
	http.StatusUnauthorized:          codes.Unauthenticated,    // Missing or invalid authorization header.
	http.StatusForbidden:             codes.PermissionDenied,   // Firewall, RBAC or disabled feature.
	http.StatusNotFound:              codes.NotFound,           // Database, container or item does not exist.
	http.StatusRequestTimeout:        codes.DeadlineExceeded,   // Operation did not complete in time.
	http.StatusConflict:              codes.AlreadyExists,      // Id or unique key already taken.
	http.StatusPreconditionFailed:    codes.FailedPrecondition, // ETag mismatch.
	http.StatusRequestEntityTooLarge: codes.ResourceExhausted,  // Document or request exceeds size limits.
	http.StatusTooManyRequests:       codes.ResourceExhausted,  // Request rate too large.
	449:                              codes.Aborted,            // Retry with: concurrent update of the same resource.
	http.StatusInternalServerError:   codes.Internal,
	http.StatusBadGateway:            codes.Unavailable,
	http.StatusServiceUnavailable:    codes.Unavailable,
	http.StatusGatewayTimeout:        codes.DeadlineExceeded,
}

// defaultCode maps backend codes whose meaning is more specific than their
// HTTP status.
var defaultCode = map[code.Code]codes.Code{
	code.AuthorizationFailed:        codes.PermissionDenied,
	code.InvalidAuthenticationToken: codes.Unauthenticated,
	code.ExpiredAuthenticationToken: codes.Unauthenticated,
}
