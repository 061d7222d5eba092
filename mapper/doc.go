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

// Package mapper provides deterministic, immutable mappings from backend
// failures to gRPC status codes.
//
// # Overview
//
// A failed backend call is known by its HTTP status, an optional backend
// code ("AuthorizationFailed", "SC1001", ...) and the area of the product
// that handled it ("Explorer/Query"). Services that re-expose such failures
// over gRPC need one concrete code per failure. The mapper is:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers can change the library defaults per status;
//   - area-aware: callers can add rules for specific areas.
//
// # Resolution model
//
//  1. exact rule for the backend code;
//  2. per-status longest-prefix-match (LPM) on the area;
//  3. per-status default;
//  4. fallback (codes.Unknown).
//
// Area rules are segment-aware: areas are "/"-separated and "*" matches
// exactly one segment:
//
//	WithAreaPrefix(http.StatusNotFound, "Explorer/*/Delete", codes.FailedPrecondition)
//
// The more specific prefix wins.
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of the tier that matched.
// It is meant for logs and tests, not for machine parsing.
package mapper
