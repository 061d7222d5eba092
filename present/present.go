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

package present

import (
	"encoding/json"
	"errors"
	"strings"

	"dirpx.dev/dxerrors/apis"
	"dirpx.dev/dxerrors/decode"
	"dirpx.dev/dxerrors/status"
)

// Context is the per-call presentation context.
type Context struct {
	// IsInternalSubscription is true for internal/trusted subscriptions,
	// where shared throughput offers are not available.
	IsInternalSubscription bool
}

// Trigger substrings recognized in backend messages.
const (
	SharedOfferDisabled  = "SharedOffer is Disabled for your account"
	InvalidPartitionKey  = "Partition key paths must contain only valid"
	UserAbortedRequest   = "The user aborted a request"
	OperationAborted     = "The operation was aborted"
	SignalAbortedNoCause = "signal is aborted without reason"
)

// User-facing replacements.
const (
	InternalSubscriptionMessage = "Database throughput is not supported for internal subscriptions."
	PartitionKeyMessage         = "Partition key paths must contain only valid characters and not contain a trailing slash or wildcard character."
	AbortedMessage              = "User aborted query."
)

// Rule is one entry of the rewrite list.
type Rule struct {
	// Name identifies the rule in logs and tests.
	Name string
	// Match reports whether the rule applies to msg under ctx.
	Match func(msg string, ctx Context) bool
	// Replacement is the full message that replaces a matching one.
	Replacement string
}

var rules = []Rule{
	{
		Name: "internal_subscription_shared_offer",
		Match: func(msg string, ctx Context) bool {
			return ctx.IsInternalSubscription && strings.Contains(msg, SharedOfferDisabled)
		},
		Replacement: InternalSubscriptionMessage,
	},
	{
		Name: "invalid_partition_key_path",
		Match: func(msg string, _ Context) bool {
			return strings.Contains(msg, InvalidPartitionKey)
		},
		Replacement: PartitionKeyMessage,
	},
	{
		Name: "aborted",
		Match: func(msg string, _ Context) bool {
			return strings.Contains(msg, UserAbortedRequest) ||
				strings.Contains(msg, OperationAborted) ||
				msg == SignalAbortedNoCause
		},
		Replacement: AbortedMessage,
	},
}

// Rules returns a copy of the rewrite list in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Rewrite applies the rewrite list to msg. Unmatched messages are returned
// unchanged.
func Rewrite(msg string, ctx Context) string {
	if r, ok := match(msg, ctx); ok {
		return r.Replacement
	}
	return msg
}

// Matched returns the name of the rule that rewrites msg, or "".
func Matched(msg string, ctx Context) string {
	if r, ok := match(msg, ctx); ok {
		return r.Name
	}
	return ""
}

func match(msg string, ctx Context) (Rule, bool) {
	for _, r := range rules {
		if r.Match(msg, ctx) {
			return r, true
		}
	}
	return Rule{}, false
}

// MessageString presents a plain string failure. An empty string falls back
// to its JSON form (`""`).
func MessageString(s string, ctx Context) string {
	if s == "" {
		return Rewrite(`""`, ctx)
	}
	return Rewrite(s, ctx)
}

// Message presents a Go error. The base message is the bare message of an
// apis.MessagedError, else err.Error(); when it is empty, the JSON
// serialization of err is used instead ("{}" for errors without exported
// fields, "null" for a nil error).
func Message(err error, ctx Context) string {
	if err == nil {
		return Rewrite("null", ctx)
	}
	var msg string
	var me apis.MessagedError
	if errors.As(err, &me) {
		msg = me.ErrorMessage()
	}
	if msg == "" {
		msg = err.Error()
	}
	if msg == "" {
		msg = marshal(err)
	}
	return Rewrite(msg, ctx)
}

// RecordMessage presents one decoded record.
func RecordMessage(r decode.Record, ctx Context) string {
	msg := r.Message
	if msg == "" {
		b, err := r.MarshalJSON()
		if err != nil {
			msg = "{}"
		} else {
			msg = string(b)
		}
	}
	return Rewrite(msg, ctx)
}

// ShouldNotify reports whether a failure must be forwarded to the host as a
// ForbiddenError: the status is 403 and the message is not the shared-offer
// variant, which is handled by the rewrite list instead.
func ShouldNotify(httpStatus int, message string) bool {
	if httpStatus != status.Forbidden {
		return false
	}
	return !strings.Contains(strings.ToLower(message), strings.ToLower(SharedOfferDisabled))
}

func marshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil || len(b) == 0 {
		return "{}"
	}
	return string(b)
}

// Records presents decoded records one per line.
func Records(recs []decode.Record, ctx Context) string {
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = RecordMessage(r, ctx)
	}
	return strings.Join(lines, "\n")
}
