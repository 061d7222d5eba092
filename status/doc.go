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

// Package status classifies HTTP-like status codes returned by the database
// backend into retryable and fatal failures.
//
// The retryable set is fixed process-wide configuration:
//
//	429, 500, 502, 503, 504
//
// Every other integer (including 401, 403, 404 and 409, and values that are
// not valid HTTP statuses at all) is fatal. The table is never mutated at
// runtime; RetryableCodes hands out copies.
//
// All functions in this package are pure and safe for concurrent use.
package status
