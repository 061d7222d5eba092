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

package code

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Code is the validated representation of a backend error code.
//
// It is defined as a separate type (not just string) so that packages can
// declare which values they expect and to avoid mixing raw user input with
// parsed values.
type Code string

// MaxLength is the maximum length of a valid code. Backend codes are short;
// anything longer is almost certainly a message that ended up in the wrong
// field.
const MaxLength = 128

const (
	// codeFmt is the regular expression used to validate codes.
	//
	// Pattern breakdown:
	//
	//	^ - start of string;
	//	[A-Za-z0-9] - first character is an ASCII letter or digit;
	//	[A-Za-z0-9_.\-]{0,127} - letters, digits, '_', '.', '-';
	//	$ - end of string;
	//
	// IMPORTANT: the quantifier {0,127} is tied to MaxLength above.
	codeFmt = `^[A-Za-z0-9][A-Za-z0-9_.\-]{0,127}$`
)

var codeRe = regexp.MustCompile(codeFmt)

var (
	// ErrCodeInvalid is returned when a value cannot be parsed or validated
	// as a backend code.
	ErrCodeInvalid = errors.New("dxerrors: invalid code")
)

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
	_ json.Marshaler           = (*Code)(nil)
	_ json.Unmarshaler         = (*Code)(nil)
)

// Empty is the zero-value code. It means "no code attached".
var Empty Code = ""

// Parse takes a user-provided string, normalizes it and validates it.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims surrounding whitespace. Casing is preserved.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Validate checks whether the provided Code is valid.
// The empty code ("") is considered invalid.
func Validate(c Code) error {
	return validate(string(c))
}

// FromStatus returns the numeric code for an HTTP-like status.
// Zero means "no code", matching SDK errors that carry code 0.
func FromStatus(status int) Code {
	if status == 0 {
		return Empty
	}
	return Code(strconv.Itoa(status))
}

// Status returns the numeric value of a numeric code.
func (c Code) Status() (int, bool) {
	if !c.IsNumeric() {
		return 0, false
	}
	n, err := strconv.Atoi(string(c))
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsNumeric reports whether c consists of an optional '-' followed by digits.
func (c Code) IsNumeric() bool {
	s := string(c)
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON emits numeric codes as JSON numbers and every other code as a
// JSON string, so a payload keeps the shape the backend gave it.
func (c Code) MarshalJSON() ([]byte, error) {
	if c.IsNumeric() {
		if _, ok := c.Status(); ok {
			return []byte(c), nil
		}
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (c *Code) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = Empty
		return nil
	}
	if len(b) > 0 && b[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return ErrCodeInvalid
		}
		i, err := n.Int64()
		if err != nil {
			return ErrCodeInvalid
		}
		*c = FromStatus(int(i))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if Normalize(s) == "" {
		*c = Empty
		return nil
	}
	return c.UnmarshalText([]byte(s))
}

func validate(s string) error {
	if !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
