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
	"google.golang.org/grpc/codes"

	"dirpx.dev/dxerrors/code"
)

type prefixRule struct {
	// prefix is the raw area prefix (may contain "*"), validated in New.
	prefix string
	val    codes.Code
}

type builder struct {
	// status holds per-status codes, seeded with the library defaults.
	status map[int]codes.Code
	// code holds exact per-backend-code codes; they win over everything.
	code map[code.Code]codes.Code
	// prefixes holds per-status area rules, compiled into tries in New.
	prefixes map[int][]prefixRule

	fallback codes.Code
}

func newBuilder() *builder {
	return &builder{
		status:   make(map[int]codes.Code, len(defaultStatus)),
		code:     make(map[code.Code]codes.Code, len(defaultCode)),
		prefixes: make(map[int][]prefixRule),
		fallback: codes.Unknown,
	}
}
