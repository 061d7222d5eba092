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

// Package notify carries failure notifications from the error pipeline to
// the host application (for example the portal that embeds the console).
//
// The pipeline only decides that a notification is due; delivery is a
// caller-supplied Dispatcher.
package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// MessageType identifies the kind of notification.
type MessageType string

const (
	// ForbiddenError tells the host that a call was rejected with 403 for a
	// reason the host may be able to fix (typically firewall configuration).
	ForbiddenError MessageType = "ForbiddenError"
)

// Notification is the payload handed to a Dispatcher.
type Notification struct {
	Type   MessageType `json:"type"`
	Reason string      `json:"reason,omitempty"`
}

// Dispatcher delivers notifications.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, n Notification) error

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Discard drops every notification.
var Discard Dispatcher = DispatcherFunc(func(context.Context, Notification) error { return nil })

// Multi fans a notification out to every dispatcher in order. All
// dispatchers are called; their errors are joined.
func Multi(ds ...Dispatcher) Dispatcher {
	cp := make([]Dispatcher, 0, len(ds))
	for _, d := range ds {
		if d != nil {
			cp = append(cp, d)
		}
	}
	return DispatcherFunc(func(ctx context.Context, n Notification) error {
		var errs []error
		for _, d := range cp {
			if err := d.Dispatch(ctx, n); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// LogDispatcher writes notifications to a zerolog logger at warn level.
type LogDispatcher struct {
	Log zerolog.Logger
}

// Dispatch implements Dispatcher.
func (d LogDispatcher) Dispatch(_ context.Context, n Notification) error {
	d.Log.Warn().Str("type", string(n.Type)).Str("reason", n.Reason).Msg("notification dispatched")
	return nil
}
