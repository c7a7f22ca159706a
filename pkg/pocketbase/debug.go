// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pocketbase

import (
	"net/url"

	"github.com/alelipona/pocketbase-go/pkg/apiurl"
	"github.com/alelipona/pocketbase-go/pkg/redact"
)

// DebugInfo is a redacted, replayable snapshot of a request for
// diagnostics. It is detached from the originating spec: mutating either
// after creation does not affect the other.
type DebugInfo struct {
	Method  string              `json:"method"`
	URL     string              `json:"url"`
	Query   map[string][]string `json:"query,omitempty"`
	Body    any                 `json:"body,omitempty"`
	Headers map[string]string   `json:"headers,omitempty"`
}

// BuildDebugInfo produces the redacted snapshot of a request spec as Do
// would dispatch it, without executing anything or resolving a token.
func (c *Client) BuildDebugInfo(spec RequestSpec) DebugInfo {
	base := apiurl.NormalizeBase(c.creds.BaseURL())

	info := DebugInfo{
		Method: spec.Method,
		URL:    apiurl.Compose(base, spec.Endpoint),
	}

	if len(spec.Query) > 0 {
		info.Query = copyQuery(spec.Query)
	}
	if spec.Body != nil {
		info.Body = redact.Value(spec.Body)
	}
	if len(spec.Headers) > 0 {
		info.Headers = redact.Headers(spec.Headers)
	}

	return info
}

func copyQuery(q url.Values) map[string][]string {
	out := make(map[string][]string, len(q))
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
