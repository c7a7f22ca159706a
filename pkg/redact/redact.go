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

// Package redact masks sensitive values in request payloads before logging.
package redact

import "strings"

// Marker replaces redacted values in the output.
const Marker = "[REDACTED]"

// DefaultMaxDepth bounds recursion on pathological inputs. Past this depth
// values are returned unchanged rather than scrubbed; six levels is deeper
// than any record payload the service produces.
const DefaultMaxDepth = 6

// sensitiveKeys are map keys whose values are always masked.
// Matching is case-insensitive on the exact key name.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"adminpassword": {},
	"apitoken":      {},
	"token":         {},
	"authorization": {},
	"auth":          {},
}

// sensitiveParamFragments mark a query parameter as credential-bearing by
// substring. Params get fragment matching where body keys get exact
// matching: URLs reach logs far more often than payloads, so the net is
// wider (admin_password, authToken and the like all match).
var sensitiveParamFragments = []string{
	"password",
	"token",
	"secret",
	"api_key",
	"apikey",
	"auth",
	"key",
	"credential",
	"identity",
}

// Value returns a deep copy of v with sensitive map entries replaced by
// Marker. The input is never mutated.
func Value(v any) any {
	return ValueDepth(v, DefaultMaxDepth)
}

// ValueDepth is Value with an explicit recursion limit.
func ValueDepth(v any, maxDepth int) any {
	if maxDepth <= 0 {
		return v
	}

	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, entry := range val {
			if IsSensitiveKey(k) {
				out[k] = Marker
				continue
			}
			out[k] = ValueDepth(entry, maxDepth-1)
		}
		return out

	case map[string]string:
		out := make(map[string]string, len(val))
		for k, entry := range val {
			if IsSensitiveKey(k) {
				out[k] = Marker
				continue
			}
			out[k] = entry
		}
		return out

	case []any:
		out := make([]any, len(val))
		for i, entry := range val {
			out[i] = ValueDepth(entry, maxDepth-1)
		}
		return out

	default:
		return v
	}
}

// Headers masks sensitive header values, preserving the rest.
func Headers(headers map[string]string) map[string]string {
	masked, _ := ValueDepth(headers, DefaultMaxDepth).(map[string]string)
	return masked
}

// IsSensitiveKey reports whether a map key names a credential-bearing field.
func IsSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// IsSensitiveParam reports whether a query parameter name contains a
// credential-bearing fragment. Case-insensitive.
func IsSensitiveParam(param string) bool {
	lower := strings.ToLower(param)
	for _, fragment := range sensitiveParamFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
