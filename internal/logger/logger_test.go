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

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn", &buf)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "shown" {
		t.Fatalf("line = %v", line)
	}
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New("chatty", &buf)
	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug must be filtered at info: %s", buf.String())
	}
	l.Info().Msg("shown")
	if buf.Len() == 0 {
		t.Fatal("info must be written")
	}
}

func TestWithTrace(t *testing.T) {
	tid, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	sid, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: tid, SpanID: sid, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	var buf bytes.Buffer
	l := WithTrace(ctx, New("info", &buf))
	l.Info().Msg("traced")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if line["trace_id"] != "4bf92f3577b34da6a3ce929d0e0e4736" || line["span_id"] != "00f067aa0ba902b7" {
		t.Fatalf("line = %v", line)
	}

	buf.Reset()
	l = WithTrace(context.Background(), New("info", &buf))
	l.Info().Msg("plain")
	if bytes.Contains(buf.Bytes(), []byte("trace_id")) {
		t.Fatalf("no span context, no trace id: %s", buf.String())
	}
}
