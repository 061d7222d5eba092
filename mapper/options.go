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

// Option configures the Mapper at build time.
type Option func(*builder)

// WithGRPC sets or replaces the gRPC code for an HTTP status.
func WithGRPC(httpStatus int, c codes.Code) Option {
	return func(b *builder) { b.status[httpStatus] = c }
}

// WithCode registers an exact gRPC code for a backend code. Code rules take
// precedence over area and status rules.
func WithCode(bc code.Code, c codes.Code) Option {
	return func(b *builder) { b.code[code.Code(code.Normalize(string(bc)))] = c }
}

// WithAreaPrefix adds a longest-prefix-match rule evaluated against the
// failure area for one HTTP status. Use "*" to match a single segment.
// codes.OK is ignored.
func WithAreaPrefix(httpStatus int, prefix string, c codes.Code) Option {
	return func(b *builder) {
		if c == codes.OK {
			return
		}
		b.prefixes[httpStatus] = append(b.prefixes[httpStatus], prefixRule{prefix, c})
	}
}

// WithFallback sets the code used for statuses without any rule.
// codes.OK is ignored.
func WithFallback(c codes.Code) Option {
	return func(b *builder) {
		if c != codes.OK {
			b.fallback = c
		}
	}
}
