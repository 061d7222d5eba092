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

package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.LogLevel != "info" || c.InternalSubscription || c.ConsoleMaxEntries != 500 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Retry.MaxAttempts != 9 || c.Retry.MaxWait != 30*time.Second || c.Retry.InitialInterval != 100*time.Millisecond {
		t.Fatalf("unexpected retry defaults: %+v", c.Retry)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DX_LOG_LEVEL", "debug")
	t.Setenv("DX_INTERNAL_SUBSCRIPTION", "true")
	t.Setenv("DX_RETRY_MAX_ATTEMPTS", "3")
	t.Setenv("DX_RETRY_MAX_WAIT", "2s")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.LogLevel != "debug" || !c.InternalSubscription {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.Retry.MaxAttempts != 3 || c.Retry.MaxWait != 2*time.Second {
		t.Fatalf("unexpected retry: %+v", c.Retry)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, val string
	}{
		{"not a number", "DX_CONSOLE_MAX_ENTRIES", "many"},
		{"zero entries", "DX_CONSOLE_MAX_ENTRIES", "0"},
		{"zero attempts", "DX_RETRY_MAX_ATTEMPTS", "0"},
		{"negative wait", "DX_RETRY_MAX_WAIT", "-1s"},
		{"initial above max", "DX_RETRY_INITIAL_INTERVAL", "10s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
