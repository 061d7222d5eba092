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
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/dxerrors/apis"
	"dirpx.dev/dxerrors/area"
	"dirpx.dev/dxerrors/code"
	"dirpx.dev/dxerrors/mapper/internal/segmenttrie"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (statuses and backend codes).
//  2. Apply user-provided options.
//  3. Normalize and validate all area prefixes (via area.Normalize).
//  4. Build per-status segment tries supporting longest-prefix-match with
//     '*' as a single-segment wildcard.
//  5. Freeze all maps into fresh copies.
//
// Errors indicate invalid area prefixes.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for k, v := range defaultStatus {
		b.status[k] = v
	}
	for k, v := range defaultCode {
		b.code[k] = v
	}

	for _, opt := range opts {
		opt(b)
	}

	tries := make(map[int]*segmenttrie.Trie[codes.Code], len(b.prefixes))
	for st, rules := range b.prefixes {
		if len(rules) == 0 {
			continue
		}
		t := segmenttrie.New[codes.Code]()
		for _, r := range rules {
			p := area.Normalize(r.prefix)
			if err := t.Insert(p, r.val); err != nil {
				return nil, fmt.Errorf("mapper: invalid area prefix %q for status %d: %w", r.prefix, st, err)
			}
		}
		tries[st] = t
	}

	return &mapper{
		status:   freezeStatus(b.status),
		code:     freezeCode(b.code),
		tries:    freezeTrie(tries),
		fallback: b.fallback,
	}, nil
}

// MustNew is New for package-level mappers. It panics on invalid options.
func MustNew(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Default is the mapper built from the library defaults only.
var Default = MustNew()

// mapper combines exact backend-code rules, per-status area tries and
// per-status defaults. Lookups are O(depth) and safe for concurrent use.
type mapper struct {
	status   map[int]codes.Code
	code     map[code.Code]codes.Code
	tries    map[int]*segmenttrie.Trie[codes.Code]
	fallback codes.Code
}

// GRPCCode resolves the gRPC code of f.
//
// Resolution order (highest to lowest):
//  1. exact backend-code rule;
//  2. per-status longest-prefix-match on the area;
//  3. per-status default;
//  4. fallback (codes.Unknown unless configured).
func (m *mapper) GRPCCode(f apis.Failure) codes.Code {
	c, _, _ := m.resolve(f)
	return c
}

// Explain produces a textual trace of how the mapper resolved f.
//
// Example output:
//
//	status=403 code="AuthorizationFailed" area="Explorer/Query"
//	grpc: source=code -> PERMISSIONDENIED(7)
//
// source is one of code, area, status or fallback. For area matches the
// stored pattern is printed.
func (m *mapper) Explain(f apis.Failure) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "status=%d code=%q area=%q\n", f.Status, f.Code, f.Area)

	c, src, pat := m.resolve(f)
	if src == "area" {
		_, _ = fmt.Fprintf(&b, "grpc: source=area pattern=%q -> %s", pat, grpcName(c))
	} else {
		_, _ = fmt.Fprintf(&b, "grpc: source=%s -> %s", src, grpcName(c))
	}
	return b.String()
}

func (m *mapper) resolve(f apis.Failure) (codes.Code, string, string) {
	if v, ok := m.code[code.Code(code.Normalize(f.Code))]; ok {
		return v, "code", ""
	}
	if t, ok := m.tries[f.Status]; ok && t != nil {
		if v, ok, pat := t.MatchWithPattern(area.Normalize(f.Area)); ok {
			return v, "area", pat
		}
	}
	if v, ok := m.status[f.Status]; ok {
		return v, "status", ""
	}
	return m.fallback, "fallback", ""
}
