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

// Package httpx converts between HTTP responses of the database backend and
// *dxerrors.Error values.
package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/encoding/protojson"

	"dirpx.dev/dxerrors"
	"dirpx.dev/dxerrors/adapter"
	"dirpx.dev/dxerrors/decode"
	"dirpx.dev/dxerrors/present"
)

// Backend response headers.
const (
	HeaderActivityID   = "x-ms-activity-id"
	HeaderRetryAfterMS = "x-ms-retry-after-ms"
	HeaderSubStatus    = "x-ms-substatus"
	HeaderRetryAfter   = "Retry-After"
)

// MaxBodySize bounds how much of an error body is read.
const MaxBodySize = 1 << 20

// keptHeaders are copied into Error.Headers.
var keptHeaders = []string{HeaderActivityID, HeaderRetryAfterMS, HeaderSubStatus}

// ReadError turns a failed response into an Error. It returns nil for a nil
// response or a status below 400. The body is consumed but not closed.
//
// A JSON body of the form {"code": ..., "message": ...} provides the code and
// message. Any other body is used verbatim as the message.
func ReadError(resp *http.Response) *dxerrors.Error {
	if resp == nil || resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	var raw []byte
	var readErr error
	if resp.Body != nil {
		raw, readErr = io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	}
	raw = bytes.TrimSpace(raw)

	e := dxerrors.E(resp.StatusCode, string(raw))
	var body decode.Body
	if len(raw) > 0 && raw[0] == '{' && json.Unmarshal(raw, &body) == nil && (body.Code != "" || body.Message != "") {
		e = e.WithBody(&body).WithCode(body.Code)
		if body.Message != "" {
			e = e.WithMessage(body.Message)
		}
	}
	if e.Message == "" {
		e = e.WithMessage(http.StatusText(resp.StatusCode))
	}

	for _, h := range keptHeaders {
		if v := resp.Header.Get(h); v != "" {
			e = e.WithHeader(h, v)
		}
	}
	e = e.WithActivityID(resp.Header.Get(HeaderActivityID))
	if d, ok := retryAfter(resp.Header); ok {
		e = e.WithRetryAfter(d)
	}
	if readErr != nil {
		e = e.WithCause(fmt.Errorf("httpx: read body: %w", readErr))
	}
	return e
}

// retryAfter reads the backend hint in milliseconds, falling back to the
// standard Retry-After header in seconds.
func retryAfter(h http.Header) (time.Duration, bool) {
	if v := strings.TrimSpace(h.Get(HeaderRetryAfterMS)); v != "" {
		if ms, err := strconv.ParseFloat(v, 64); err == nil && ms > 0 {
			return time.Duration(ms * float64(time.Millisecond)), true
		}
	}
	if v := strings.TrimSpace(h.Get(HeaderRetryAfter)); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			return time.Duration(s) * time.Second, true
		}
	}
	return 0, false
}

// Writer writes errors as JSON responses.
type Writer struct {
	Context present.Context
	Logger  zerolog.Logger
}

// Write serializes the view of err and writes it with the error's status
// (500 when unknown). Retry hints are sent as both Retry-After and
// x-ms-retry-after-ms.
func (w Writer) Write(rw http.ResponseWriter, err *dxerrors.Error) {
	if err == nil {
		return
	}

	st, convErr := adapter.ToStruct(adapter.ToView(err, w.Context))
	var b []byte
	if convErr == nil {
		b, convErr = protojson.MarshalOptions{EmitUnpopulated: false}.Marshal(st)
	}
	if convErr != nil {
		w.Logger.Error().Err(convErr).Msg("httpx: encode error view")
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	code := err.Status
	if code < http.StatusBadRequest || code > 599 {
		code = http.StatusInternalServerError
	}

	rw.Header().Set("Content-Type", "application/json")
	if err.ActivityID != "" {
		rw.Header().Set(HeaderActivityID, err.ActivityID)
	}
	if d := err.RetryHint; d > 0 {
		rw.Header().Set(HeaderRetryAfter, strconv.Itoa(int(math.Ceil(d.Seconds()))))
		rw.Header().Set(HeaderRetryAfterMS, strconv.FormatInt(d.Milliseconds(), 10))
	}
	rw.WriteHeader(code)
	_, _ = rw.Write(b)
}
