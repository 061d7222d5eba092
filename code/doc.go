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

// Package code provides parsing, normalization and validation for the short
// error codes the database backend attaches to failures.
//
// A "code" is the backend's own machine-readable classification of an error,
// such as "BadRequest", "Conflict", "SC1001" or "AuthorizationFailed". The
// SDK sometimes attaches the numeric HTTP status instead ("403"); such codes
// are called numeric codes and keep their number shape on the wire.
//
// Unlike status classes, codes are not normalized to a canonical casing: the
// backend is the source of truth and callers compare codes verbatim. The
// only normalization is trimming surrounding whitespace.
//
// The empty code ("") means "no code was attached". Decoding relies on that
// distinction: a message without a code is already human-readable, while a
// message with a code still carries the backend's formatted payload.
package code
