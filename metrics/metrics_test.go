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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestReporter_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewReporter("test", reg)

	r.ReportDecoded("fallback")
	r.ReportDecoded("fallback")
	r.ReportDecoded("structured")
	r.ReportNotification("ForbiddenError")
	r.ReportRetry("429")
	r.ReportRewrite("aborted")

	if got := testutil.ToFloat64(r.decoded.WithLabelValues("fallback")); got != 2 {
		t.Fatalf("fallback = %v", got)
	}
	if got := testutil.ToFloat64(r.decoded.WithLabelValues("structured")); got != 1 {
		t.Fatalf("structured = %v", got)
	}
	if got := testutil.ToFloat64(r.notifications.WithLabelValues("ForbiddenError")); got != 1 {
		t.Fatalf("notifications = %v", got)
	}
	if got := testutil.ToFloat64(r.retries.WithLabelValues("429")); got != 1 {
		t.Fatalf("retries = %v", got)
	}
	if got := testutil.ToFloat64(r.rewrites.WithLabelValues("aborted")); got != 1 {
		t.Fatalf("rewrites = %v", got)
	}

	n, err := testutil.GatherAndCount(reg, "test_errors_decoded_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 2 {
		t.Fatalf("decoded series = %d, want 2", n)
	}
}

func TestReporter_Nil(t *testing.T) {
	var r *Reporter
	r.ReportDecoded("x")
	r.ReportNotification("x")
	r.ReportRetry("x")
	r.ReportRewrite("x")
}
