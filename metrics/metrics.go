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

// Package metrics exposes Prometheus counters for the error pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reporter records pipeline outcomes. The zero value is not usable; a nil
// *Reporter is, and records nothing.
type Reporter struct {
	decoded       *prometheus.CounterVec
	notifications *prometheus.CounterVec
	retries       *prometheus.CounterVec
	rewrites      *prometheus.CounterVec
}

// NewReporter registers the pipeline counters with reg. A nil reg means
// prometheus.DefaultRegisterer.
func NewReporter(namespace string, reg prometheus.Registerer) *Reporter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Reporter{
		decoded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "errors",
			Name:      "decoded_total",
			Help:      "The total number of decoded backend errors, by decoding flavor.",
		}, []string{"flavor"}),
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "errors",
			Name:      "notifications_total",
			Help:      "The total number of notifications dispatched to the host, by type.",
		}, []string{"type"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "errors",
			Name:      "retries_total",
			Help:      "The total number of retried calls, by HTTP status.",
		}, []string{"status"}),
		rewrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "errors",
			Name:      "rewrites_total",
			Help:      "The total number of messages rewritten for display, by rule.",
		}, []string{"rule"}),
	}
}

// ReportDecoded counts one decode call.
func (r *Reporter) ReportDecoded(flavor string) {
	if r == nil {
		return
	}
	r.decoded.WithLabelValues(flavor).Inc()
}

// ReportNotification counts one dispatched notification.
func (r *Reporter) ReportNotification(kind string) {
	if r == nil {
		return
	}
	r.notifications.WithLabelValues(kind).Inc()
}

// ReportRetry counts one retry of a call that failed with status.
func (r *Reporter) ReportRetry(status string) {
	if r == nil {
		return
	}
	r.retries.WithLabelValues(status).Inc()
}

// ReportRewrite counts one display rewrite.
func (r *Reporter) ReportRewrite(rule string) {
	if r == nil {
		return
	}
	r.rewrites.WithLabelValues(rule).Inc()
}
