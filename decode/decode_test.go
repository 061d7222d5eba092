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
	"strings"
	"testing"

	"dirpx.dev/dxerrors/code"
)

const (
	conflictInner = "Resource with specified id or name already exists"
	conflictMsg   = "Message: {\"Errors\":[\"" + conflictInner + "\"]}\r\nActivityId: 80005000008d40b6a, Request URI: /apps/19000c000c0a0005/services/mctestdocdbprod-MasterService-0-00066ab9937/partitions/900005f9000e676fb8/replicas/13000000000955p"

	syntaxMsg = "{\"errors\":[{\"severity\":\"Error\",\"location\":{\"start\":7,\"end\":8},\"code\":\"SC1001\",\"message\":\"Syntax error, incorrect syntax near '.'.\"}]}\r\nActivityId: d3300016-d0000a0e-bfad-aac0785e2c7d, Request URI: /apps/..."
)

func requireOne(t *testing.T, recs []Record) Record {
	t.Helper()
	if len(recs) != 1 {
		t.Fatalf("len(records) = %d, want 1: %+v", len(recs), recs)
	}
	return recs[0]
}

func TestDecode_Fallback_PlainText(t *testing.T) {
	r := requireOne(t, Decode(String("not a real error")))
	if r.Message != `"not a real error"` {
		t.Fatalf("message = %q", r.Message)
	}
	if r.Code != code.Empty || r.Fields != nil {
		t.Fatalf("fallback record must only carry a message: %+v", r)
	}
}

func TestDecode_Fallback_EmptyString(t *testing.T) {
	res := DecodeDetailed(String(""))
	r := requireOne(t, res.Records)
	if r.Message != `""` {
		t.Fatalf("message = %q, want %q", r.Message, `""`)
	}
	if res.Flavor != FlavorFallback || !errors.Is(res.Cause, ErrNoMatch) {
		t.Fatalf("flavor=%v cause=%v", res.Flavor, res.Cause)
	}
}

func TestDecode_BackendMessage_WithCode(t *testing.T) {
	in := SDK{
		Message: conflictMsg,
		Code:    code.FromStatus(409),
		Body:    &Body{Code: code.Conflict, Message: conflictMsg},
	}
	res := DecodeDetailed(in)
	r := requireOne(t, res.Records)
	if r.Message != conflictInner {
		t.Fatalf("message = %q, want %q", r.Message, conflictInner)
	}
	// "Message: " prefix breaks the first pattern's JSON; the older shape matches.
	if res.Flavor != FlavorSinglePartition {
		t.Fatalf("flavor = %v", res.Flavor)
	}
	if res.Cause != nil {
		t.Fatalf("unexpected cause: %v", res.Cause)
	}
}

func TestDecode_PlainStringIsParsed(t *testing.T) {
	r := requireOne(t, Decode(String(conflictMsg)))
	if r.Message != conflictInner {
		t.Fatalf("message = %q", r.Message)
	}
}

func TestDecode_CasingFallback(t *testing.T) {
	upper := "Message: {\"Errors\":[\"boom\"]}\r\nActivityId: 1, Request URI: /x"
	lower := "Message: {\"errors\":[\"boom\"]}\r\nActivityId: 1, Request URI: /x"
	a := Decode(SDK{Message: upper, Code: code.BadRequest})
	b := Decode(SDK{Message: lower, Code: code.BadRequest})
	if len(a) != 1 || len(b) != 1 || a[0].Message != "boom" || b[0].Message != a[0].Message {
		t.Fatalf("casing must not matter: %+v vs %+v", a, b)
	}
}

func TestDecode_MultiPartition_ObjectsPassThrough(t *testing.T) {
	res := DecodeDetailed(SDK{Message: syntaxMsg, Code: code.BadRequest})
	if res.Flavor != FlavorMultiPartition {
		t.Fatalf("flavor = %v, cause = %v", res.Flavor, res.Cause)
	}
	r := requireOne(t, res.Records)
	if r.Message != "Syntax error, incorrect syntax near '.'." {
		t.Fatalf("message = %q", r.Message)
	}
	if r.Code != "SC1001" {
		t.Fatalf("code = %q", r.Code)
	}
	loc, ok := r.Field("location")
	if !ok || string(loc) != `{"start":7,"end":8}` {
		t.Fatalf("location = %s, %v", loc, ok)
	}
	if sev, _ := r.Field("severity"); string(sev) != `"Error"` {
		t.Fatalf("severity = %s", sev)
	}
}

func TestDecode_PreservesOrder(t *testing.T) {
	msg := `{"Errors":["first",{"message":"second","code":"C2"},"third"]}ActivityId: abc`
	recs := Decode(String(msg))
	want := []string{"first", "second", "third"}
	if len(recs) != len(want) {
		t.Fatalf("len = %d", len(recs))
	}
	for i, w := range want {
		if recs[i].Message != w {
			t.Fatalf("records[%d] = %q, want %q", i, recs[i].Message, w)
		}
	}
	if recs[1].Code != "C2" {
		t.Fatalf("records[1].Code = %q", recs[1].Code)
	}
}

func TestDecode_Structured_NoCode(t *testing.T) {
	fields := map[string]json.RawMessage{"activityId": json.RawMessage(`"a-1"`)}
	res := DecodeDetailed(Structured{Message: "Failed to create container", Fields: fields})
	r := requireOne(t, res.Records)
	if res.Flavor != FlavorStructured {
		t.Fatalf("flavor = %v", res.Flavor)
	}
	if r.Message != "Failed to create container" {
		t.Fatalf("message = %q", r.Message)
	}
	if v, ok := r.Field("activityId"); !ok || string(v) != `"a-1"` {
		t.Fatalf("passthrough field lost: %+v", r.Fields)
	}
	fields["activityId"] = json.RawMessage(`"mutated"`)
	if v, _ := r.Field("activityId"); string(v) != `"a-1"` {
		t.Fatal("record must not alias the input fields")
	}
}

func TestDecode_Structured_BackendMessageIsNotParsedWithoutCode(t *testing.T) {
	// Without a code, the message is taken as already human-readable.
	r := requireOne(t, Decode(Structured{Message: conflictMsg}))
	if r.Message != conflictMsg {
		t.Fatalf("message = %q", r.Message)
	}
}

func TestDecode_CodeWithHumanMessage_FallsBack(t *testing.T) {
	in := SDK{Message: "Request timed out", Code: code.RequestTimeout}
	r := requireOne(t, Decode(in))
	want := `{"message":"Request timed out","code":"RequestTimeout"}`
	if r.Message != want {
		t.Fatalf("message = %s, want %s", r.Message, want)
	}
}

func TestDecode_NumericCodeKeepsShape(t *testing.T) {
	in := SDK{Message: "x", Code: code.FromStatus(403), Headers: map[string]string{"x-ms-activity-id": "9"}}
	r := requireOne(t, Decode(in))
	want := `{"message":"x","code":403,"headers":{"x-ms-activity-id":"9"}}`
	if r.Message != want {
		t.Fatalf("message = %s, want %s", r.Message, want)
	}
}

func TestDecode_PayloadEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		cause error
	}{
		{"empty object", `{}ActivityId: 1`, ErrNoInnerErrors},
		{"empty object single", "Message: {}\nActivityId: 1, Request URI: /x", ErrNoInnerErrors},
		{"empty list", `{"errors":[]}ActivityId: 1`, ErrNoInnerErrors},
		{"list is a string", `{"errors":"boom"}ActivityId: 1`, ErrNoInnerErrors},
		{"payload is array", `["boom"]ActivityId: 1`, ErrNoInnerErrors},
		{"payload is null", `nullActivityId: 1`, ErrNoInnerErrors},
		{"numeric entry", `{"errors":[42]}ActivityId: 1`, ErrInvalidEntry},
		{"null entry", `{"errors":[null]}ActivityId: 1`, ErrInvalidEntry},
		{"bad json", "Message: {broken\r\nActivityId: 1, Request URI: /x", nil},
		{"missing request uri", "Message: {broken}\r\nActivityId: 1", ErrNoMatch},
		{"line separator", "{\"errors\":[\"a\"]}\u2028ActivityId: 1", ErrNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := SDK{Message: tt.msg, Code: code.BadRequest}
			res := DecodeDetailed(in)
			r := requireOne(t, res.Records)
			if r.Message != Marshal(in) {
				t.Fatalf("message = %q, want fallback %q", r.Message, Marshal(in))
			}
			if res.Flavor != FlavorFallback || res.Cause == nil {
				t.Fatalf("flavor=%v cause=%v", res.Flavor, res.Cause)
			}
			if tt.cause != nil && !errors.Is(res.Cause, tt.cause) {
				t.Fatalf("cause = %v, want %v", res.Cause, tt.cause)
			}
		})
	}
}

func TestDecode_LowercaseNullUsesUppercase(t *testing.T) {
	r := requireOne(t, Decode(String(`{"errors":null,"Errors":["upper"]}ActivityId: 1`)))
	if r.Message != "upper" {
		t.Fatalf("message = %q", r.Message)
	}
}

func TestDecode_Totality(t *testing.T) {
	var nilSDK *SDK
	inputs := []Input{
		nil,
		nilSDK,
		String(""),
		String("ActivityId: "),
		String("Message: ActivityId: , Request URI: "),
		String(strings.Repeat("ActivityId: ", 50)),
		Structured{},
		Structured{Code: code.Conflict},
		SDK{},
		SDK{Body: &Body{Message: "only a body"}},
		SDK{Message: "\r\n\r\n", Code: code.NotFound},
	}
	for i, in := range inputs {
		recs := Decode(in)
		if len(recs) == 0 {
			t.Fatalf("input %d: empty result", i)
		}
	}
	if got := Decode(nil)[0].Message; got != "null" {
		t.Fatalf("nil input message = %q", got)
	}
	if got := Decode(nilSDK)[0].Message; got != "null" {
		t.Fatalf("nil pointer message = %q", got)
	}
}

func TestMarshal_NoHTMLEscape(t *testing.T) {
	if got := Marshal(String("<a & b>")); got != `"<a & b>"` {
		t.Fatalf("Marshal = %s", got)
	}
}

type sdkErr struct {
	msg    string
	code   string
	status int
}

func (e sdkErr) Error() string        { return "decorated: " + e.msg }
func (e sdkErr) ErrorMessage() string { return e.msg }
func (e sdkErr) ErrorCode() string    { return e.code }
func (e sdkErr) HTTPStatus() int      { return e.status }

func TestFromError(t *testing.T) {
	if _, ok := FromError(errors.New("plain")).(Structured); !ok {
		t.Fatal("plain error must become Structured")
	}
	if FromError(nil) != String("") {
		t.Fatal("nil error must become an empty String")
	}

	in := FromError(sdkErr{msg: conflictMsg, code: "Conflict"})
	sdk, ok := in.(SDK)
	if !ok {
		t.Fatalf("coded error must become SDK, got %T", in)
	}
	if sdk.Message != conflictMsg || sdk.Code != code.Conflict {
		t.Fatalf("unexpected normalization: %+v", sdk)
	}
	if r := requireOne(t, Decode(in)); r.Message != conflictInner {
		t.Fatalf("decoded message = %q", r.Message)
	}

	st := FromError(sdkErr{msg: conflictMsg, status: 409}).(SDK)
	if st.Code != "409" {
		t.Fatalf("status must become a numeric code, got %q", st.Code)
	}
}

func TestRecord_JSON(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"message":"m","code":400,"severity":"Error"}`), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.Message != "m" || r.Code != "400" {
		t.Fatalf("record = %+v", r)
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"code":400,"message":"m","severity":"Error"}` {
		t.Fatalf("Marshal = %s", b)
	}
	if err := json.Unmarshal([]byte(`{"message":5}`), &r); err == nil {
		t.Fatal("non-string message must fail")
	}
}
