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

package httpx

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dirpx.dev/dxerrors"
	"dirpx.dev/dxerrors/code"
	"dirpx.dev/dxerrors/present"
	"dirpx.dev/dxerrors/status"
)

const conflictBody = `{"code":"Conflict","message":"Message: {\"Errors\":[\"Resource with specified id, name, or unique index already exists.\"]}\r\nActivityId: 3f, Request URI: /apps/x, RequestStats: , SDK: Microsoft.Azure.Documents.Common/2.14.0"}`

func backend(t *testing.T, st int, body string, hdr map[string]string) *http.Response {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		for k, v := range hdr {
			w.Header().Set(k, v)
		}
		w.WriteHeader(st)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestReadError_JSONBody(t *testing.T) {
	resp := backend(t, status.Conflict, conflictBody, map[string]string{
		HeaderActivityID:   "3f",
		HeaderRetryAfterMS: "250",
	})
	e := ReadError(resp)
	if e == nil {
		t.Fatalf("ReadError() = nil")
	}
	if e.Status != 409 || e.Code != code.Conflict || e.ActivityID != "3f" {
		t.Fatalf("error = %+v", e)
	}
	if e.RetryHint != 250*time.Millisecond {
		t.Fatalf("RetryHint = %v", e.RetryHint)
	}
	if !strings.HasPrefix(e.Message, "Message: {") {
		t.Fatalf("Message = %q", e.Message)
	}
	if e.Headers[HeaderActivityID] != "3f" {
		t.Fatalf("Headers = %v", e.Headers)
	}
	recs := e.Decoded()
	if len(recs) != 1 || recs[0].Message != "Resource with specified id, name, or unique index already exists." {
		t.Fatalf("Decoded() = %+v", recs)
	}
}

func TestReadError_PlainBody(t *testing.T) {
	e := ReadError(backend(t, status.ServiceUnavailable, "  upstream down \n", map[string]string{HeaderRetryAfter: "2"}))
	if e.Message != "upstream down" || e.Code != code.Empty || e.Body != nil {
		t.Fatalf("error = %+v", e)
	}
	if e.RetryHint != 2*time.Second {
		t.Fatalf("RetryHint = %v", e.RetryHint)
	}
}

func TestReadError_NumericCodeAndEmptyBody(t *testing.T) {
	e := ReadError(backend(t, status.Forbidden, `{"code":403,"message":"blocked"}`, nil))
	if e.Code != "403" || e.Message != "blocked" {
		t.Fatalf("error = %+v", e)
	}
	if c, m := e.ErrorBody(); c != "403" || m != "blocked" {
		t.Fatalf("ErrorBody() = %q, %q", c, m)
	}

	e = ReadError(backend(t, status.NotFound, "", nil))
	if e.Message != "Not Found" {
		t.Fatalf("empty body message = %q", e.Message)
	}
}

func TestReadError_Success(t *testing.T) {
	if ReadError(backend(t, http.StatusOK, "{}", nil)) != nil {
		t.Fatalf("2xx must not be an error")
	}
	if ReadError(nil) != nil {
		t.Fatalf("nil response must not be an error")
	}
}

func TestWriter_Write(t *testing.T) {
	w := Writer{Context: present.Context{}, Logger: zerolog.Nop()}
	e := dxerrors.E(status.TooManyRequests, "Request rate is large",
		dxerrors.WithCodeOption(code.TooManyRequests),
		dxerrors.WithActivityIDOption("77"),
		dxerrors.WithRetryAfterOption(1500*time.Millisecond),
	)

	rec := httptest.NewRecorder()
	w.Write(rec, e)

	if rec.Code != 429 {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if rec.Header().Get(HeaderRetryAfter) != "2" || rec.Header().Get(HeaderRetryAfterMS) != "1500" {
		t.Fatalf("retry headers = %v", rec.Header())
	}
	if rec.Header().Get(HeaderActivityID) != "77" {
		t.Fatalf("activity id header = %q", rec.Header().Get(HeaderActivityID))
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("body is not JSON: %v (%s)", err, rec.Body.String())
	}
	if got["status"] != float64(429) || got["code"] != "TooManyRequests" || got["retryable"] != true || got["activityId"] != "77" {
		t.Fatalf("body = %v", got)
	}
}

func TestWriter_UnknownStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{}.Write(rec, dxerrors.E(0, "no response"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	Writer{}.Write(rec, nil)
	if rec.Body.Len() != 0 {
		t.Fatalf("nil error must write nothing")
	}
}
