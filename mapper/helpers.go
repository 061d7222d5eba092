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

package mapper

import (
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/dxerrors/code"
	"dirpx.dev/dxerrors/mapper/internal/segmenttrie"
)

// freezeStatus copies the per-status table, dropping codes.OK entries.
func freezeStatus(src map[int]codes.Code) map[int]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[int]codes.Code, len(src))
	for k, v := range src {
		if v != codes.OK {
			dst[k] = v
		}
	}
	return dst
}

// freezeCode copies the per-backend-code table, dropping codes.OK entries.
func freezeCode(src map[code.Code]codes.Code) map[code.Code]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]codes.Code, len(src))
	for k, v := range src {
		if v != codes.OK {
			dst[k] = v
		}
	}
	return dst
}

// freezeTrie copies the top-level map; tries are not mutated after New.
func freezeTrie(src map[int]*segmenttrie.Trie[codes.Code]) map[int]*segmenttrie.Trie[codes.Code] {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[int]*segmenttrie.Trie[codes.Code], len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// grpcName renders a gRPC code the way Explain prints it: NOTFOUND(5).
func grpcName(c codes.Code) string {
	return fmt.Sprintf("%s(%d)", strings.ToUpper(c.String()), int(c))
}
