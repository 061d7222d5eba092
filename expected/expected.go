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

// Package expected tells apart failures that are an expected part of normal
// operation (missing permissions, expired tokens, interactive sign-in,
// firewall rules) from genuine faults. Health reporting uses it so that a
// user-side condition does not count against the service.
package expected

import (
	"regexp"

	"dirpx.dev/dxerrors/code"
	"dirpx.dev/dxerrors/decode"
	"dirpx.dev/dxerrors/status"
)

// Signal is the subset of a failure that classification looks at.
type Signal struct {
	// Code is the resource-manager or backend code, possibly numeric.
	Code code.Code
	// AuthCode is the error code of the sign-in library, e.g. "login_required".
	AuthCode string
	// Status is the HTTP status of the failed call, 0 when unknown.
	Status int
	// Message is the raw message.
	Message string
}

var expectedCodes = map[code.Code]struct{}{
	code.AuthorizationFailed:        {},
	code.Forbidden:                  {},
	code.Unauthorized:               {},
	code.InvalidAuthenticationToken: {},
	code.ExpiredAuthenticationToken: {},

	// Numeric codes attached by the SDK.
	code.FromStatus(status.Unauthorized): {},
	code.FromStatus(status.Forbidden):    {},
}

var expectedAuthCodes = map[string]struct{}{
	"popup_window_error":   {},
	"interaction_required": {},
	"user_cancelled":       {},
	"consent_required":     {},
	"login_required":       {},
	"no_account_error":     {},
}

var firewallRe = regexp.MustCompile(`(?i)firewall|ip\s+(address\s+)?(is\s+)?not\s+allowed`)

// IsExpected reports whether s describes an expected failure.
func IsExpected(s Signal) bool {
	if _, ok := expectedCodes[s.Code]; ok {
		return true
	}
	if _, ok := expectedAuthCodes[s.AuthCode]; ok {
		return true
	}
	if s.Status == status.Unauthorized || s.Status == status.Forbidden {
		return true
	}
	return s.Message != "" && IsFirewall(s.Message)
}

// IsFirewall reports whether msg looks like a firewall / IP allow-list rejection.
func IsFirewall(msg string) bool {
	return firewallRe.MatchString(msg)
}

// SignalFrom builds a Signal from a decoder input. Numeric codes also fill
// Status.
func SignalFrom(in decode.Input) Signal {
	var s Signal
	switch v := in.(type) {
	case decode.String:
		s.Message = string(v)
	case decode.Structured:
		s.Message, s.Code = v.Message, v.Code
	case decode.SDK:
		s.Message, s.Code = v.Message, v.Code
		if s.Code == code.Empty && v.Body != nil {
			s.Code = v.Body.Code
		}
	}
	if n, ok := s.Code.Status(); ok {
		s.Status = n
	}
	return s
}
