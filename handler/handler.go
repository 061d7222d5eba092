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

// Package handler wires the error pipeline together: decode a backend
// failure, present it, write it to the notification console, log it, count
// it, and forward forbidden failures to the host.
//
// Every collaborator is optional. A zero Handler decodes and presents but
// has no side effects besides logging to a disabled logger.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"dirpx.dev/dxerrors"
	"dirpx.dev/dxerrors/apis"
	"dirpx.dev/dxerrors/area"
	"dirpx.dev/dxerrors/code"
	"dirpx.dev/dxerrors/console"
	"dirpx.dev/dxerrors/decode"
	"dirpx.dev/dxerrors/internal/logger"
	"dirpx.dev/dxerrors/metrics"
	"dirpx.dev/dxerrors/notify"
	"dirpx.dev/dxerrors/present"
	"dirpx.dev/dxerrors/status"
)

// Handler handles backend failures.
type Handler struct {
	Console    *console.Console
	Dispatcher notify.Dispatcher
	Logger     zerolog.Logger
	Metrics    *metrics.Reporter
	Context    present.Context
}

// Handle processes one failure and returns the message shown to the user.
//
// Multi-record payloads are shown one record per line. prefix, when set,
// is prepended to the console entry as "<prefix>: <message>".
func (h *Handler) Handle(ctx context.Context, in decode.Input, httpStatus int, a area.Area, prefix string) string {
	res := decode.DecodeDetailed(in)
	h.Metrics.ReportDecoded(res.Flavor.String())

	lines := make([]string, len(res.Records))
	for i, r := range res.Records {
		lines[i] = present.RecordMessage(r, h.Context)
		if rule := present.Matched(recordText(r), h.Context); rule != "" {
			h.Metrics.ReportRewrite(rule)
		}
	}
	display := strings.Join(lines, "\n")

	if h.Console != nil {
		entry := display
		if prefix != "" {
			entry = prefix + ": " + display
		}
		h.Console.Log(console.Error, entry)
	}

	l := logger.WithTrace(ctx, h.Logger)
	ev := l.Error().
		Str("area", a.String()).
		Int("status", httpStatus).
		Str("flavor", res.Flavor.String()).
		Int("records", len(res.Records))
	if res.Cause != nil {
		ev = ev.AnErr("decode_error", fmt.Errorf("decode %s: %w", a, res.Cause))
	}
	ev.Msg(display)

	h.notify(ctx, httpStatus, rawMessage(in), display)
	return display
}

// HandleError is Handle for a Go error. The status comes from
// apis.StatusedError when err implements it.
func (h *Handler) HandleError(ctx context.Context, err error, a area.Area, prefix string) string {
	return h.Handle(ctx, decode.FromError(err), statusOf(err), a, prefix)
}

// HandleResponse handles a failed proxy response.
//
// The failure is logged as "Error <action>: <body>, Payload: <json>". A 403
// is forwarded to the host and swallowed; any other status is returned as a
// *dxerrors.Error carrying the body.
func (h *Handler) HandleResponse(ctx context.Context, httpStatus int, body, action string, payload any) error {
	l := logger.WithTrace(ctx, h.Logger)
	l.Error().
		Str("action", action).
		Int("status", httpStatus).
		Msgf("Error %s: %s, Payload: %s", action, body, payloadJSON(payload))

	if httpStatus == status.Forbidden {
		h.dispatch(ctx, notify.Notification{Type: notify.ForbiddenError, Reason: body})
		return nil
	}
	return dxerrors.E(httpStatus, body, dxerrors.WithCodeOption(code.FromStatus(httpStatus)))
}

// notify forwards a forbidden failure to the host with the display string as
// the reason. The shared-offer exception is checked on the raw text.
func (h *Handler) notify(ctx context.Context, httpStatus int, raw, display string) {
	if !present.ShouldNotify(httpStatus, raw) {
		return
	}
	h.dispatch(ctx, notify.Notification{Type: notify.ForbiddenError, Reason: display})
}

func (h *Handler) dispatch(ctx context.Context, n notify.Notification) {
	if h.Dispatcher == nil {
		return
	}
	if err := h.Dispatcher.Dispatch(ctx, n); err != nil {
		h.Logger.Warn().Err(err).Str("type", string(n.Type)).Msg("notification dispatch failed")
		return
	}
	h.Metrics.ReportNotification(string(n.Type))
}

// recordText is the record's message before rewrites.
func recordText(r decode.Record) string {
	if r.Message != "" {
		return r.Message
	}
	b, err := r.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

// rawMessage is the backend message carried by in, before decoding.
func rawMessage(in decode.Input) string {
	switch v := in.(type) {
	case decode.String:
		return string(v)
	case decode.Structured:
		return v.Message
	case decode.SDK:
		return v.Message
	case *decode.SDK:
		if v != nil {
			return v.Message
		}
	}
	return ""
}

func statusOf(err error) int {
	var se apis.StatusedError
	if errors.As(err, &se) {
		return se.HTTPStatus()
	}
	var ce apis.CodedError
	if errors.As(err, &ce) {
		if n, ok := code.Code(code.Normalize(ce.ErrorCode())).Status(); ok {
			return n
		}
	}
	return 0
}

func payloadJSON(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
