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

// ErrorDescriptor is a flat description of a handled failure, intended for
// structured logging and for transport metadata.
//
// This type intentionally uses plain strings and ints so that adapters can
// emit it without importing the internal value types.
type ErrorDescriptor struct {
	// Code is the backend code. It MAY be empty.
	Code string `json:"code,omitempty"`

	// HTTPStatus is the status of the failed call. 0 means "not specified".
	HTTPStatus int `json:"http_status,omitempty"`

	// GRPCCode is the gRPC status code (as integer) the failure maps to.
	GRPCCode int `json:"grpc_code,omitempty"`

	// Retryable reports whether the status is in the retryable set.
	Retryable bool `json:"retryable,omitempty"`

	// ActivityID is the backend correlation id.
	ActivityID string `json:"activity_id,omitempty"`

	// Message is the user-facing message.
	Message string `json:"message,omitempty"`
}
