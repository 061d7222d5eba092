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
	"fmt"
	"regexp"
	"strings"

	"dirpx.dev/dxerrors/code"
)

// Flavor tells which decoding path produced a Result.
type Flavor int

const (
	// FlavorFallback means nothing could be recovered; the single record
	// holds the JSON serialization of the input.
	FlavorFallback Flavor = iota
	// FlavorStructured means the input already was a human-readable error.
	FlavorStructured
	// FlavorMultiPartition means the payload was found before "ActivityId: ".
	FlavorMultiPartition
	// FlavorSinglePartition means the older "Message: ... ActivityId: ...,
	// Request URI: ..." shape matched.
	FlavorSinglePartition
)

// String returns the flavor name as used in logs and metrics labels.
func (f Flavor) String() string {
	switch f {
	case FlavorFallback:
		return "fallback"
	case FlavorStructured:
		return "structured"
	case FlavorMultiPartition:
		return "multi_partition"
	case FlavorSinglePartition:
		return "single_partition"
	default:
		return fmt.Sprintf("flavor(%d)", int(f))
	}
}

// Result is the outcome of DecodeDetailed.
type Result struct {
	// Records is never empty.
	Records []Record
	// Flavor is the path that produced Records.
	Flavor Flavor
	// Cause is the failure that forced the fallback. It is nil unless
	// Flavor is FlavorFallback, and it is meant for logging only.
	Cause error
}

var (
	// ErrNoMatch is reported when neither backend pattern matches.
	ErrNoMatch = errors.New("dxerrors: message does not match a backend error pattern")
	// ErrNoInnerErrors is reported when the payload has no usable
	// "errors" / "Errors" array.
	ErrNoInnerErrors = errors.New("dxerrors: payload has no inner errors")
	// ErrInvalidEntry is reported for an inner error that is neither a
	// string nor an object.
	ErrInvalidEntry = errors.New("dxerrors: invalid inner error entry")
)

// inLine is the regexp equivalent of "." in the backend's pattern
// dialect, where "." excludes every line terminator.
const inLine = `[^\n\r\x{2028}\x{2029}]`

var (
	// multiPartitionRe is ^(.*)ActivityId: (.*)
	multiPartitionRe = regexp.MustCompile(`^(` + inLine + `*)ActivityId: (` + inLine + `*)`)
	// singlePartitionRe is ^Message: (.*)ActivityId: (.*), Request URI: (.*)
	singlePartitionRe = regexp.MustCompile(`^Message: (` + inLine + `*)ActivityId: (` + inLine + `*), Request URI: (` + inLine + `*)`)

	lineBreaks = strings.NewReplacer("\r", "", "\n", "")
)

// Decode converts in into an ordered, non-empty sequence of Records.
// It never panics.
func Decode(in Input) []Record {
	return DecodeDetailed(in).Records
}

// DecodeDetailed is Decode plus the flavor that matched and, on fallback,
// the swallowed cause.
func DecodeDetailed(in Input) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = fallback(in, fmt.Errorf("dxerrors: decode panic: %v", p))
		}
	}()

	if in == nil {
		return fallback(in, ErrNoMatch)
	}

	msg, c, fields, structured := in.raw()
	if structured && msg != "" && c == code.Empty {
		return Result{
			Records: []Record{{Message: msg, Fields: copyFields(fields)}},
			Flavor:  FlavorStructured,
		}
	}

	recs, flavor, err := innerErrors(msg)
	if err != nil {
		return fallback(in, err)
	}
	return Result{Records: recs, Flavor: flavor}
}

func fallback(in Input, cause error) Result {
	return Result{
		Records: []Record{{Message: Marshal(in)}},
		Flavor:  FlavorFallback,
		Cause:   cause,
	}
}

// innerErrors extracts the inner errors of a backend-formatted message.
func innerErrors(msg string) ([]Record, Flavor, error) {
	payload, flavor, err := extract(lineBreaks.Replace(msg))
	if err != nil {
		return nil, FlavorFallback, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil || obj == nil {
		return nil, FlavorFallback, fmt.Errorf("%w: payload is not an object", ErrNoInnerErrors)
	}

	// "errors" wins whenever it is present and not null; property lookup
	// is case-sensitive.
	list, ok := obj["errors"]
	if !ok || isNull(list) || isFalsy(list) {
		list, ok = obj["Errors"]
	}
	if !ok || isNull(list) {
		return nil, FlavorFallback, ErrNoInnerErrors
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(list, &entries); err != nil {
		return nil, FlavorFallback, fmt.Errorf("%w: %v", ErrNoInnerErrors, err)
	}
	if len(entries) == 0 {
		return nil, FlavorFallback, fmt.Errorf("%w: empty list", ErrNoInnerErrors)
	}

	recs := make([]Record, 0, len(entries))
	for i, e := range entries {
		r, err := entry(e)
		if err != nil {
			return nil, FlavorFallback, fmt.Errorf("%w at %d: %v", ErrInvalidEntry, i, err)
		}
		recs = append(recs, r)
	}
	return recs, flavor, nil
}

// extract tries the multi-partition pattern first and uses its JSON failure
// as the signal to try the stricter single-partition pattern.
func extract(line string) (json.RawMessage, Flavor, error) {
	if m := multiPartitionRe.FindStringSubmatch(line); m != nil {
		var raw json.RawMessage
		if err := json.Unmarshal([]byte(m[1]), &raw); err == nil {
			return raw, FlavorMultiPartition, nil
		}
	}

	m := singlePartitionRe.FindStringSubmatch(line)
	if m == nil {
		return nil, FlavorFallback, ErrNoMatch
	}
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(m[1]), &raw); err != nil {
		return nil, FlavorFallback, fmt.Errorf("dxerrors: single-partition payload: %w", err)
	}
	return raw, FlavorSinglePartition, nil
}

func entry(raw json.RawMessage) (Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Record{}, ErrInvalidEntry
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Record{}, err
		}
		return Record{Message: s}, nil
	case '{':
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			return Record{}, err
		}
		return r, nil
	default:
		return Record{}, ErrInvalidEntry
	}
}

// isFalsy reports JSON values that do not select the lowercase list:
// false, 0 and "".
func isFalsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "false", "0", `""`:
		return true
	}
	return false
}

func copyFields(src map[string]json.RawMessage) map[string]json.RawMessage {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]json.RawMessage, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
