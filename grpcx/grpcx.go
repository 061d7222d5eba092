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

// Package grpcx exposes *dxerrors.Error values as gRPC statuses with
// google.rpc error details, and reads them back on the client side.
package grpcx

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/durationpb"

	"dirpx.dev/dxerrors"
	"dirpx.dev/dxerrors/apis"
	"dirpx.dev/dxerrors/area"
	"dirpx.dev/dxerrors/code"
	"dirpx.dev/dxerrors/mapper"
	"dirpx.dev/dxerrors/present"
)

// DefaultDomain is the ErrorInfo domain used when none is configured.
const DefaultDomain = "dataexplorer"

// ErrorInfo metadata keys.
const (
	MetaHTTPStatus = "http_status"
	MetaActivityID = "activity_id"
	MetaArea       = "area"
	MetaCode       = "code"
)

type options struct {
	area    area.Area
	context present.Context
	domain  string
}

// Option customizes ToStatus and the interceptor.
type Option func(*options)

// WithArea sets the area used for mapping and reported in ErrorInfo.
func WithArea(a area.Area) Option {
	return func(o *options) { o.area = a }
}

// WithContext sets the presentation context of the status message.
func WithContext(ctx present.Context) Option {
	return func(o *options) { o.context = ctx }
}

// WithDomain sets the ErrorInfo domain.
func WithDomain(d string) Option {
	return func(o *options) { o.domain = d }
}

func collect(opts []Option) options {
	o := options{domain: DefaultDomain}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ToStatus converts e into a gRPC status. The code is resolved with m
// (mapper.Default when nil) and the message is the presented text.
//
// An ErrorInfo detail is always attached. Its reason is the backend code,
// or HTTP_<status> when there is none. A RetryInfo detail is attached for
// retryable statuses.
func ToStatus(e *dxerrors.Error, m apis.Mapper, opts ...Option) *gstatus.Status {
	if e == nil {
		return gstatus.New(gcodes.OK, "")
	}
	if m == nil {
		m = mapper.Default
	}
	o := collect(opts)

	c := m.GRPCCode(apis.Failure{Status: e.Status, Code: string(e.Code), Area: o.area.String()})
	msg := present.Records(e.Decoded(), o.context)
	base := gstatus.New(c, msg)

	info := &errdetails.ErrorInfo{
		Reason:   reason(e),
		Domain:   o.domain,
		Metadata: map[string]string{MetaHTTPStatus: strconv.Itoa(e.Status)},
	}
	if e.Code != code.Empty {
		info.Metadata[MetaCode] = string(e.Code)
	}
	if e.ActivityID != "" {
		info.Metadata[MetaActivityID] = e.ActivityID
	}
	if o.area != area.Empty {
		info.Metadata[MetaArea] = o.area.String()
	}

	details := []protoadapt.MessageV1{info}
	if e.Retryable() {
		details = append(details, &errdetails.RetryInfo{RetryDelay: durationpb.New(e.RetryHint)})
	}

	with, err := base.WithDetails(details...)
	if err != nil {
		return base
	}
	return with
}

func reason(e *dxerrors.Error) string {
	if e.Code != code.Empty {
		return strings.ToUpper(string(e.Code))
	}
	return fmt.Sprintf("HTTP_%d", e.Status)
}

// UnaryServerInterceptor converts *dxerrors.Error results of handlers into
// gRPC statuses. Other errors are returned as-is.
//
// Unless WithArea is given, the area is derived from the method name:
// "/dataexplorer.v1.Query/Execute" becomes "Query/Execute".
func UnaryServerInterceptor(m apis.Mapper, opts ...Option) grpc.UnaryServerInterceptor {
	base := collect(opts)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var de *dxerrors.Error
		if !errors.As(err, &de) {
			return nil, err
		}

		a := base.area
		if a == area.Empty && info != nil {
			a = methodArea(info.FullMethod)
		}
		return nil, ToStatus(de, m,
			WithArea(a),
			WithContext(base.context),
			WithDomain(base.domain),
		).Err()
	}
}

// methodArea turns "/pkg.v1.Service/Method" into "Service/Method".
// Malformed names yield area.Empty.
func methodArea(full string) area.Area {
	full = strings.TrimPrefix(full, "/")
	svc, method, ok := strings.Cut(full, "/")
	if !ok {
		return area.Empty
	}
	if i := strings.LastIndexByte(svc, '.'); i >= 0 {
		svc = svc[i+1:]
	}
	a, err := area.Join(svc, method)
	if err != nil {
		return area.Empty
	}
	return a
}

// ExtractErrorInfo pulls the ErrorInfo detail out of a gRPC error.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := gstatus.FromError(err)
	if !ok || err == nil {
		return nil, false
	}
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			return ei, true
		}
	}
	return nil, false
}

// ExtractRetryDelay returns the RetryInfo delay of a gRPC error.
func ExtractRetryDelay(err error) (time.Duration, bool) {
	st, ok := gstatus.FromError(err)
	if !ok || err == nil {
		return 0, false
	}
	for _, d := range st.Details() {
		if ri, ok := d.(*errdetails.RetryInfo); ok {
			return ri.GetRetryDelay().AsDuration(), true
		}
	}
	return 0, false
}

// FromError rebuilds an Error from a gRPC error produced by ToStatus.
// The message is the status message, already presented. It returns nil for
// errors without an ErrorInfo detail.
func FromError(err error) *dxerrors.Error {
	info, ok := ExtractErrorInfo(err)
	if !ok {
		return nil
	}
	st, _ := gstatus.FromError(err)
	httpStatus, _ := strconv.Atoi(info.GetMetadata()[MetaHTTPStatus])

	e := dxerrors.E(httpStatus, st.Message(),
		dxerrors.WithCodeOption(code.Code(info.GetMetadata()[MetaCode])),
		dxerrors.WithActivityIDOption(info.GetMetadata()[MetaActivityID]),
		dxerrors.WithCauseOption(err),
	)
	if d, ok := ExtractRetryDelay(err); ok {
		e = e.WithRetryAfter(d)
	}
	return e
}
