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
	"encoding"
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  Conflict  ", "Conflict"},
		{"keeps case", "BadRequest", "BadRequest"},
		{"tabs", "\tSC1001\n", "SC1001"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Code
	}{
		{"backend", "BadRequest", BadRequest},
		{"with spaces", "  NotFound ", NotFound},
		{"query syntax", "SC1001", Code("SC1001")},
		{"numeric", "403", Code("403")},
		{"dotted", "Microsoft.DocumentDB.Throttled", Code("Microsoft.DocumentDB.Throttled")},
		{"single char", "x", Code("x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"spaces only", "   "},
		{"inner space", "Bad Request"},
		{"leading dash", "-Conflict"},
		{"too long", strings.Repeat("a", MaxLength+1)},
		{"punctuation", "Conflict!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", tt.in, got)
			}
			if err != ErrCodeInvalid {
				t.Fatalf("Parse(%q) error = %v, want ErrCodeInvalid", tt.in, err)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", tt.in, got)
			}
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustParse must panic on invalid input")
		}
	}()
	_ = MustParse("not valid")
}

func TestFromStatus(t *testing.T) {
	if FromStatus(0) != Empty {
		t.Fatal("status 0 must map to Empty")
	}
	c := FromStatus(403)
	if c != "403" {
		t.Fatalf("FromStatus(403) = %q", c)
	}
	n, ok := c.Status()
	if !ok || n != 403 {
		t.Fatalf("Status() = %d, %v", n, ok)
	}
	if _, ok := Forbidden.Status(); ok {
		t.Fatal("named code must not report a numeric status")
	}
	if !Code("-1").IsNumeric() || Code("-").IsNumeric() || Code("4a").IsNumeric() {
		t.Fatal("IsNumeric misclassified")
	}
}

func TestJSON_Shape(t *testing.T) {
	tests := []struct {
		in   Code
		want string
	}{
		{Conflict, `"Conflict"`},
		{FromStatus(429), `429`},
		{Code("SC1001"), `"SC1001"`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("Marshal(%q): %v", tt.in, err)
		}
		if string(b) != tt.want {
			t.Fatalf("Marshal(%q) = %s, want %s", tt.in, b, tt.want)
		}
	}
}

func TestJSON_Unmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want Code
	}{
		{`"Conflict"`, Conflict},
		{`" NotFound "`, NotFound},
		{`404`, Code("404")},
		{`0`, Empty},
		{`null`, Empty},
		{`""`, Empty},
	}
	for _, tt := range tests {
		var c Code
		if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.in, err)
		}
		if c != tt.want {
			t.Fatalf("Unmarshal(%s) = %q, want %q", tt.in, c, tt.want)
		}
	}

	var c Code
	if err := json.Unmarshal([]byte(`1.5`), &c); err == nil {
		t.Fatal("fractional code must fail")
	}
	if err := json.Unmarshal([]byte(`"Bad Request"`), &c); err == nil {
		t.Fatal("invalid string code must fail")
	}
}

func TestText_Interfaces(t *testing.T) {
	var _ encoding.TextMarshaler = Conflict
	var c Code
	if err := c.UnmarshalText([]byte("  TooManyRequests\n")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if c != TooManyRequests {
		t.Fatalf("UnmarshalText = %q", c)
	}
	if _, err := Empty.MarshalText(); err == nil {
		t.Fatal("empty code must not marshal as text")
	}
}
