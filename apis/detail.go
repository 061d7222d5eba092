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

// InnerError is the view of one decoded inner error. This is a view type:
// small, transport-friendly, and suitable for JSON or proto mapping.
type InnerError struct {
	// Message is the human-readable text of the inner error.
	Message string `json:"message"`

	// Code is the backend code of the inner error, e.g. "SC1001". May be empty.
	Code string `json:"code,omitempty"`

	// Info carries the passthrough fields of the inner error (location,
	// severity, ...) as raw JSON text keyed by field name.
	Info map[string]string `json:"info,omitempty"`
}
