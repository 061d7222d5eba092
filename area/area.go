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

package area

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Area is a validated, slash-separated failure location.
//
// Each segment starts with an ASCII letter and continues with letters,
// digits or underscores. Case is preserved, since areas are usually built
// from component and function names.
type Area string

const (
	// MaxSegments is the deepest area accepted.
	MaxSegments = 4

	// MaxLength is the maximum length of a valid area.
	MaxLength = 128

	areaFmt = `^[A-Za-z][A-Za-z0-9_]*(/[A-Za-z][A-Za-z0-9_]*){0,3}$`
)

var areaRe = regexp.MustCompile(areaFmt)

var (
	// ErrAreaInvalidFormat is returned for malformed areas.
	ErrAreaInvalidFormat = errors.New("dxerrors: invalid area format")
	// ErrAreaInvalidLength is returned for areas longer than MaxLength.
	ErrAreaInvalidLength = errors.New("dxerrors: invalid area length")
)

var (
	_ encoding.TextMarshaler   = (*Area)(nil)
	_ encoding.TextUnmarshaler = (*Area)(nil)
)

// Empty is the "no area" value.
var Empty Area = ""

// Normalize trims spaces around the whole value and around every segment,
// and accepts "." and "\" as segment separators.
//
// It does not guarantee validity.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.NewReplacer(".", "/", `\`, "/").Replace(s)
	parts := strings.Split(s, "/")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, "/")
}

// Parse normalizes and validates s. The empty string yields Empty.
func Parse(s string) (Area, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Area(s), nil
}

// MustParse is Parse for package-level values. It panics on an invalid or
// empty area.
func MustParse(s string) Area {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if a == Empty {
		panic("dxerrors: empty area in MustParse")
	}
	return a
}

// Validate checks a, accepting Empty.
func Validate(a Area) error {
	if a == Empty {
		return nil
	}
	return validate(string(a))
}

// Join builds an area from segments, skipping empty ones.
func Join(segments ...string) (Area, error) {
	kept := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return Parse(strings.Join(kept, "/"))
}

// Child returns a with one more segment.
func (a Area) Child(segment string) (Area, error) {
	return Join(string(a), segment)
}

// Segments splits a into its segments. Empty yields nil.
func (a Area) Segments() []string {
	if a == Empty {
		return nil
	}
	return strings.Split(string(a), "/")
}

// Root returns the first segment.
func (a Area) Root() string {
	if i := strings.IndexByte(string(a), '/'); i >= 0 {
		return string(a[:i])
	}
	return string(a)
}

// String returns a as a string.
func (a Area) String() string { return string(a) }

// MarshalText implements encoding.TextMarshaler.
func (a Area) MarshalText() ([]byte, error) {
	if err := Validate(a); err != nil {
		return nil, err
	}
	return []byte(a), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Area) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func validate(s string) error {
	if len(s) > MaxLength {
		return ErrAreaInvalidLength
	}
	if !areaRe.MatchString(s) {
		return ErrAreaInvalidFormat
	}
	return nil
}
