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

// Package adapter projects *dxerrors.Error values into the transport-neutral
// shapes of package apis.
package adapter

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/dxerrors"
	"dirpx.dev/dxerrors/apis"
	"dirpx.dev/dxerrors/area"
	"dirpx.dev/dxerrors/decode"
	"dirpx.dev/dxerrors/present"
)

// ToView converts e into the public ErrorView.
//
// Message is the presented text of every decoded record, one per line.
// Errors lists the records themselves with their passthrough fields kept
// as raw JSON text.
func ToView(e *dxerrors.Error, ctx present.Context) apis.ErrorView {
	if e == nil {
		return apis.ErrorView{}
	}
	recs := e.Decoded()
	return apis.ErrorView{
		Status:     e.Status,
		Code:       string(e.Code),
		Message:    present.Records(recs, ctx),
		ActivityID: e.ActivityID,
		Retryable:  e.Retryable(),
		Errors:     innerErrors(recs),
	}
}

// ToDescriptor converts e into a flat ErrorDescriptor, resolving the gRPC
// code with m. The descriptor is meant for logs and message buses.
func ToDescriptor(e *dxerrors.Error, m apis.Mapper, a area.Area, ctx present.Context) apis.ErrorDescriptor {
	if e == nil {
		return apis.ErrorDescriptor{}
	}
	d := apis.ErrorDescriptor{
		Code:       string(e.Code),
		HTTPStatus: e.Status,
		Retryable:  e.Retryable(),
		ActivityID: e.ActivityID,
		Message:    present.Records(e.Decoded(), ctx),
	}
	if m != nil {
		d.GRPCCode = int(m.GRPCCode(apis.Failure{Status: e.Status, Code: string(e.Code), Area: a.String()}))
	}
	return d
}

// ToStruct converts a view into a protobuf Struct with the view's JSON
// field names.
func ToStruct(v apis.ErrorView) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("adapter: marshal view: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("adapter: unmarshal view: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("adapter: build struct: %w", err)
	}
	return s, nil
}

func innerErrors(recs []decode.Record) []apis.InnerError {
	if len(recs) == 0 {
		return nil
	}
	out := make([]apis.InnerError, len(recs))
	for i, r := range recs {
		out[i] = apis.InnerError{Message: r.Message, Code: string(r.Code)}
		if len(r.Fields) == 0 {
			continue
		}
		out[i].Info = make(map[string]string, len(r.Fields))
		for k, raw := range r.Fields {
			out[i].Info[k] = string(raw)
		}
	}
	return out
}
