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

// Package logger builds the zerolog loggers used across dxerrors.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// New returns a JSON logger writing to w at the given level ("debug",
// "info", "warn", ...). An unknown or empty level means info. A nil writer
// means stderr.
func New(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// NewConsole returns a human-readable logger for the CLI.
func NewConsole(level string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return New(level, cw)
}

// WithTrace returns l with "trace_id" and "span_id" set when ctx carries a
// valid OpenTelemetry span context.
func WithTrace(ctx context.Context, l zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return l
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return l.With().
		Str("trace_id", sc.TraceID().String()).
		Str("span_id", sc.SpanID().String()).
		Logger()
}
