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

// Package decode turns the semi-structured error text returned by the
// database backend into an ordered, non-empty sequence of Records.
//
// The backend reports failures as a message string that embeds a JSON
// payload between a "Message: " prefix and an "ActivityId: " marker:
//
//	Message: {"Errors":["Resource with specified id or name already exists"]}
//	ActivityId: 80005000008d40b6a, Request URI: /apps/...
//
// The payload exposes either an "errors" or an "Errors" array whose entries
// are plain strings or objects shaped like a Record (message, code, location,
// severity, ...).
//
// Decoding is a total function: Decode never panics and never returns an
// error. When the payload cannot be recovered, the result is a single
// fallback Record whose message is the JSON serialization of the input.
// DecodeDetailed exposes the swallowed cause for logging without changing
// the returned records.
package decode
