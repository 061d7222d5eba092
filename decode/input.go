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

package decode

import (
	"encoding/json"
	"errors"

	"dirpx.dev/dxerrors/apis"
	"dirpx.dev/dxerrors/code"
)

// Input is the raw error value handed to the decoder. It is a closed sum
// type; the only variants are String, Structured and SDK.
//
// Callers build the variant explicitly at the call site, or use FromError to
// normalize a Go error.
type Input interface {
	// raw returns the message to decode, the attached code, passthrough
	// fields, and whether the input may be taken as already structured.
	raw() (msg string, c code.Code, fields map[string]json.RawMessage, structured bool)
}

// String is a plain string failure. It is never treated as pre-structured:
// the whole string goes through inner-error extraction.
type String string

func (s String) raw() (string, code.Code, map[string]json.RawMessage, bool) {
	return string(s), code.Empty, nil, false
}

// Structured is an error object carrying a message and, optionally, a code
// and extra fields.
type Structured struct {
	Message string
	Code    code.Code
	Fields  map[string]json.RawMessage
}

func (s Structured) raw() (string, code.Code, map[string]json.RawMessage, bool) {
	return s.Message, s.Code, s.Fields, true
}

// MarshalJSON emits the object form of the input (message, code, fields).
func (s Structured) MarshalJSON() ([]byte, error) {
	return Record(s).MarshalJSON()
}

// Body is the nested body the SDK attaches to a failed response.
type Body struct {
	Code    code.Code `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
}

// SDK is an error surfaced by the database SDK or an HTTP client: a
// formatted message with a code, an optional body and response headers.
type SDK struct {
	Message string            `json:"message,omitempty"`
	Code    code.Code         `json:"code,omitempty"`
	Body    *Body             `json:"body,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

func (s SDK) raw() (string, code.Code, map[string]json.RawMessage, bool) {
	return s.Message, s.Code, nil, true
}

// Marshal returns the JSON serialization of in, as used by the fallback
// record: no HTML escaping and no trailing newline. A nil input becomes
// "null"; an input that cannot be serialized becomes "{}".
func Marshal(in Input) string {
	if in == nil {
		return "null"
	}
	b, err := marshalNoEscape(in)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// FromError normalizes a Go error into an Input.
//
// The message is taken from apis.MessagedError when available, otherwise
// from Error(). The code comes from apis.CodedError, falling back to the
// numeric status of apis.StatusedError. An error without any code becomes a
// Structured input; an error with a code becomes an SDK input so that its
// message is decoded.
//
// A nil error maps to an empty String, which decodes to the fallback record.
func FromError(err error) Input {
	if err == nil {
		return String("")
	}

	msg := err.Error()
	var me apis.MessagedError
	if errors.As(err, &me) {
		msg = me.ErrorMessage()
	}

	c := code.Empty
	var ce apis.CodedError
	if errors.As(err, &ce) {
		c = code.Code(code.Normalize(ce.ErrorCode()))
	}
	if c == code.Empty {
		var se apis.StatusedError
		if errors.As(err, &se) {
			c = code.FromStatus(se.HTTPStatus())
		}
	}

	var body *Body
	var be apis.BodiedError
	if errors.As(err, &be) {
		bc, bm := be.ErrorBody()
		if bc != "" || bm != "" {
			body = &Body{Code: code.Code(code.Normalize(bc)), Message: bm}
		}
	}

	if c == code.Empty && body == nil {
		return Structured{Message: msg}
	}
	return SDK{Message: msg, Code: c, Body: body}
}
