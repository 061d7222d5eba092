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
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"dirpx.dev/dxerrors/code"
)

// Record is the normalized unit of decoded error information.
//
// Message is always present in decoded output. Code is set only when the
// structured input carried one. Fields holds any other property of an inner
// error object verbatim, as raw JSON; the decoder preserves but never
// interprets them.
type Record struct {
	Message string
	Code    code.Code
	Fields  map[string]json.RawMessage
}

var errRecordMessage = errors.New("dxerrors: record message is not a string")

// Field returns the raw JSON of a passthrough field.
func (r Record) Field(name string) (json.RawMessage, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// MarshalJSON emits message, code (when set) and every passthrough field.
// Keys are written in sorted order.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Fields)+2)
	for k, v := range r.Fields {
		out[k] = v
	}
	msg, err := marshalNoEscape(r.Message)
	if err != nil {
		return nil, err
	}
	out["message"] = msg
	if r.Code != code.Empty {
		c, err := r.Code.MarshalJSON()
		if err != nil {
			return nil, err
		}
		out["code"] = c
	}
	return marshalSorted(out)
}

// UnmarshalJSON reads an inner error object. Properties other than message
// and code land in Fields.
//
// The code is read leniently: backends are not consistent about its shape, so
// any string or number is accepted as-is. A code of another JSON type stays
// in Fields.
func (r *Record) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if m == nil {
		return errRecordMessage
	}
	rec := Record{}
	if raw, ok := m["message"]; ok {
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &rec.Message); err != nil {
				return errRecordMessage
			}
		}
		delete(m, "message")
	}
	if raw, ok := m["code"]; ok {
		if c, ok := lenientCode(raw); ok {
			rec.Code = c
			delete(m, "code")
		}
	}
	if len(m) > 0 {
		rec.Fields = m
	}
	*r = rec
	return nil
}

func lenientCode(raw json.RawMessage) (code.Code, bool) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return code.Empty, true
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return code.Empty, false
		}
		return code.Code(code.Normalize(s)), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return code.Empty, false
	}
	if i, err := strconv.Atoi(n.String()); err == nil {
		return code.FromStatus(i), true
	}
	return code.Code(n.String()), true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// marshalNoEscape encodes v like JSON.stringify would: no HTML escaping and
// no trailing newline.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// marshalSorted writes an object with keys in sorted order.
func marshalSorted(m map[string]json.RawMessage) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		if v := m[k]; len(v) > 0 {
			b.Write(v)
		} else {
			b.WriteString("null")
		}
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
