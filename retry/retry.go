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

// Package retry re-runs backend calls that failed with a retryable status.
//
// A call is retried only when its error exposes an HTTP status
// (apis.StatusedError) that status.IsRetryable accepts. Everything else,
// including errors wrapped with backoff.Permanent, stops the loop at once.
// A server hint (apis.RetryAfterError) replaces the computed wait.
package retry

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"dirpx.dev/dxerrors/apis"
	"dirpx.dev/dxerrors/config"
	"dirpx.dev/dxerrors/metrics"
	"dirpx.dev/dxerrors/status"
)

// Policy bounds the retry loop.
type Policy struct {
	// MaxAttempts counts the first call. Values below 1 mean 1.
	MaxAttempts int
	// InitialInterval is the first computed wait.
	InitialInterval time.Duration
	// MaxInterval caps a single computed wait.
	MaxInterval time.Duration
	// MaxWait bounds the total time spent waiting. 0 means no bound.
	MaxWait time.Duration
}

// DefaultPolicy matches the database SDK defaults.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     9,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxWait:         30 * time.Second,
	}
}

// FromConfig builds a Policy from loaded settings.
func FromConfig(c config.Retry) Policy {
	return Policy{
		MaxAttempts:     c.MaxAttempts,
		InitialInterval: c.InitialInterval,
		MaxInterval:     c.MaxInterval,
		MaxWait:         c.MaxWait,
	}
}

// NotifyFunc is called before each wait with the error that caused it.
type NotifyFunc func(err error, attempt int, wait time.Duration)

type options struct {
	notify  NotifyFunc
	metrics *metrics.Reporter
}

// Option customizes Do.
type Option func(*options)

// WithNotify installs a hook called before every retry.
func WithNotify(fn NotifyFunc) Option {
	return func(o *options) { o.notify = fn }
}

// WithMetrics counts every retry by status.
func WithMetrics(r *metrics.Reporter) Option {
	return func(o *options) { o.metrics = r }
}

// Retryable reports whether err carries a retryable HTTP status.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var pe *backoff.PermanentError
	if errors.As(err, &pe) {
		return false
	}
	var se apis.StatusedError
	if !errors.As(err, &se) {
		return false
	}
	return status.IsRetryable(se.HTTPStatus())
}

// Do calls op until it succeeds, fails with a non-retryable error, the
// policy is exhausted or ctx is done.
//
// The last error of op is returned. A backoff.PermanentError is unwrapped.
// When ctx ends during a wait, the returned error matches both ctx.Err()
// and the last error of op.
func Do(ctx context.Context, p Policy, op func(context.Context) error, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0
	exp.Multiplier = 2
	exp.Reset()

	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var waited time.Duration
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		var pe *backoff.PermanentError
		if errors.As(err, &pe) {
			return pe.Unwrap()
		}
		if !Retryable(err) || attempt >= maxAttempts {
			return err
		}

		wait := exp.NextBackOff()
		var ra apis.RetryAfterError
		if errors.As(err, &ra) && ra.RetryAfter() > 0 {
			wait = ra.RetryAfter()
		}
		if p.MaxWait > 0 && waited+wait > p.MaxWait {
			return err
		}

		if o.notify != nil {
			o.notify(err, attempt, wait)
		}
		var se apis.StatusedError
		if errors.As(err, &se) {
			o.metrics.ReportRetry(strconv.Itoa(se.HTTPStatus()))
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return errors.Join(ctx.Err(), err)
		case <-t.C:
		}
		waited += wait
	}
}
