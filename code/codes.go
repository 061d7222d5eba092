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

package code

// Backend codes
//
// Codes the database service returns in the "code" field of an error body.
// They mirror the HTTP status names.
const (
	// BadRequest indicates a malformed request, invalid query syntax or an
	// invalid resource definition (for example a bad partition key path).
	BadRequest Code = "BadRequest"

	// Unauthorized indicates missing or invalid credentials.
	Unauthorized Code = "Unauthorized"

	// Forbidden indicates an authenticated caller that is not allowed to
	// perform the operation: firewall rules, disabled features, RBAC.
	Forbidden Code = "Forbidden"

	// NotFound indicates the addressed resource does not exist.
	NotFound Code = "NotFound"

	// Conflict indicates that a resource with the same id already exists.
	Conflict Code = "Conflict"

	// TooManyRequests indicates the request rate exceeded provisioned throughput.
	TooManyRequests Code = "TooManyRequests"

	// RequestTimeout indicates that the backend gave up waiting for the request.
	RequestTimeout Code = "RequestTimeout"

	// InternalServerError indicates an unexpected backend failure.
	InternalServerError Code = "InternalServerError"

	// ServiceUnavailable indicates the service is temporarily unavailable.
	ServiceUnavailable Code = "ServiceUnavailable"
)

// Resource manager codes
//
// Codes returned by the management plane when a control-plane call is
// rejected for authentication or authorization reasons.
const (
	// AuthorizationFailed indicates the principal lacks the role assignment.
	AuthorizationFailed Code = "AuthorizationFailed"

	// InvalidAuthenticationToken indicates a token that failed validation.
	InvalidAuthenticationToken Code = "InvalidAuthenticationToken"

	// ExpiredAuthenticationToken indicates a token past its lifetime.
	ExpiredAuthenticationToken Code = "ExpiredAuthenticationToken"
)
