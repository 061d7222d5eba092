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

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestMulti_CallsAllAndJoinsErrors(t *testing.T) {
	var got []string
	errA := errors.New("a failed")
	a := DispatcherFunc(func(_ context.Context, n Notification) error {
		got = append(got, "a:"+n.Reason)
		return errA
	})
	b := DispatcherFunc(func(_ context.Context, n Notification) error {
		got = append(got, "b:"+n.Reason)
		return nil
	})

	err := Multi(a, nil, b).Dispatch(context.Background(), Notification{Type: ForbiddenError, Reason: "r"})
	if !errors.Is(err, errA) {
		t.Fatalf("err = %v, want to wrap %v", err, errA)
	}
	if len(got) != 2 || got[0] != "a:r" || got[1] != "b:r" {
		t.Fatalf("calls = %v", got)
	}
}

func TestDiscard(t *testing.T) {
	if err := Discard.Dispatch(context.Background(), Notification{Type: ForbiddenError}); err != nil {
		t.Fatalf("Discard returned %v", err)
	}
}

func TestLogDispatcher(t *testing.T) {
	var buf bytes.Buffer
	d := LogDispatcher{Log: zerolog.New(&buf)}
	if err := d.Dispatch(context.Background(), Notification{Type: ForbiddenError, Reason: "blocked"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v: %s", err, buf.String())
	}
	if line["type"] != "ForbiddenError" || line["reason"] != "blocked" || line["level"] != "warn" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNotification_JSON(t *testing.T) {
	b, err := json.Marshal(Notification{Type: ForbiddenError, Reason: "Request blocked by firewall"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"type":"ForbiddenError","reason":"Request blocked by firewall"}` {
		t.Fatalf("Marshal = %s", b)
	}
}
