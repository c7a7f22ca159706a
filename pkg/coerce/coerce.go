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

// Package coerce converts between loosely-typed string input and the typed
// JSON values the record service stores.
//
// The forward direction (Value) turns strings like "true", "42" or
// `{"a":1}` into their typed JSON form so that values arriving from text
// inputs match the collection schema. The reverse direction (FormFields)
// flattens typed values back into strings for multipart form submission and
// is lossless for JSON-shaped values: a subsequent Value call on the
// submitted string reconstructs an equivalent structure.
package coerce

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numberPattern accepts a strict decimal number: optional leading minus, no
// redundant leading zeros, optional fractional part.
var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// Value recursively coerces string leaves of v into typed JSON values.
// When enabled is false it is the identity. It never fails: a string that
// looks like JSON but does not parse is left unchanged.
func Value(v any, enabled bool) any {
	if !enabled {
		return v
	}

	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, entry := range val {
			out[k] = Value(entry, true)
		}
		return out

	case []any:
		out := make([]any, len(val))
		for i, entry := range val {
			out[i] = Value(entry, true)
		}
		return out

	case string:
		return coerceString(val)

	case time.Time:
		// Dates serialize to ISO-8601 before the string rules apply.
		return coerceString(val.Format(time.RFC3339))

	default:
		return v
	}
}

func coerceString(s string) any {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	switch {
	case strings.EqualFold(trimmed, "true"):
		return true
	case strings.EqualFold(trimmed, "false"):
		return false
	case trimmed == "null":
		return nil
	}

	if numberPattern.MatchString(trimmed) {
		// float64 matches what encoding/json produces, so coerced numbers
		// compare equal to numbers decoded from a response body.
		n, err := strconv.ParseFloat(trimmed, 64)
		if err == nil {
			return n
		}
		return s
	}

	if isJSONDelimited(trimmed) {
		var parsed any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return parsed
		}
	}

	return s
}

func isJSONDelimited(s string) bool {
	return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}

// FormFields flattens a field map into the string values a multipart form
// carries. Nil values become empty strings, objects and arrays become
// compact JSON, everything else is converted with its natural string form.
func FormFields(fields map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		s, err := formValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = s
	}
	return out, nil
}

func formValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case json.Number:
		return val.String(), nil
	case time.Time:
		return val.Format(time.RFC3339), nil
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return strings.Trim(string(data), `"`), nil
	}
}
