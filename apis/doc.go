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

// Package apis defines the public Go-level contracts for dxerrors.
//
// The goal of this package is to provide small, composable interfaces that
// the decoder, the retry policy and the transport adapters can depend on
// without importing the concrete error type in the root package.
//
// In other words: an SDK wrapper or HTTP client that wants its failures to be
// decoded, retried or presented only has to implement the interfaces below.
// The decoder and the retry loop probe for them with type assertions, never
// with reflection.
//
// This package must remain lightweight, so it only contains interfaces and
// very small view types.
package apis
