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

package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_MasksSensitiveKeys(t *testing.T) {
	in := map[string]any{
		"password": "p",
		"nested": map[string]any{
			"token": "t",
			"ok":    1,
		},
	}

	got := Value(in)

	assert.Equal(t, map[string]any{
		"password": Marker,
		"nested": map[string]any{
			"token": Marker,
			"ok":    1,
		},
	}, got)
}

func TestValue_CaseInsensitiveKeys(t *testing.T) {
	in := map[string]any{
		"Password":      "p",
		"ADMINPASSWORD": "a",
		"ApiToken":      "k",
		"Authorization": "Bearer abc",
		"title":         "kept",
	}

	got, ok := Value(in).(map[string]any)
	require.True(t, ok)

	assert.Equal(t, Marker, got["Password"])
	assert.Equal(t, Marker, got["ADMINPASSWORD"])
	assert.Equal(t, Marker, got["ApiToken"])
	assert.Equal(t, Marker, got["Authorization"])
	assert.Equal(t, "kept", got["title"])
}

func TestValue_DoesNotMutateInput(t *testing.T) {
	nested := map[string]any{"token": "t"}
	in := map[string]any{"password": "p", "nested": nested}

	_ = Value(in)

	assert.Equal(t, "p", in["password"])
	assert.Equal(t, "t", nested["token"])
}

func TestValue_ArraysAndScalars(t *testing.T) {
	in := []any{
		map[string]any{"auth": "x", "n": 2},
		"plain",
		3.5,
		nil,
	}

	got, ok := Value(in).([]any)
	require.True(t, ok)
	require.Len(t, got, 4)

	first, ok := got[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, Marker, first["auth"])
	assert.Equal(t, 2, first["n"])
	assert.Equal(t, "plain", got[1])
	assert.Equal(t, 3.5, got[2])
	assert.Nil(t, got[3])
}

func TestValueDepth_StopsAtLimit(t *testing.T) {
	// Build a chain deeper than the limit; the layer past it must come back
	// unchanged, secrets included.
	deep := map[string]any{"password": "leafpass"}
	in := map[string]any{"a": map[string]any{"b": deep}}

	got := ValueDepth(in, 2).(map[string]any)
	inner := got["a"].(map[string]any)

	// Depth exhausted at "deep": same map, not a scrubbed copy.
	assert.Equal(t, "leafpass", inner["b"].(map[string]any)["password"])
}

func TestHeaders(t *testing.T) {
	in := map[string]string{
		"Authorization": "Bearer secret",
		"Content-Type":  "application/json",
	}

	got := Headers(in)

	assert.Equal(t, Marker, got["Authorization"])
	assert.Equal(t, "application/json", got["Content-Type"])
	assert.Equal(t, "Bearer secret", in["Authorization"])
}

func TestIsSensitiveKey(t *testing.T) {
	assert.True(t, IsSensitiveKey("TOKEN"))
	assert.True(t, IsSensitiveKey("auth"))
	assert.False(t, IsSensitiveKey("author"))
	assert.False(t, IsSensitiveKey("tokens"))
}

func TestIsSensitiveParam(t *testing.T) {
	// Params match by fragment, keys by exact name: "authToken" is a
	// sensitive param but not a sensitive key.
	assert.True(t, IsSensitiveParam("authToken"))
	assert.False(t, IsSensitiveKey("authToken"))

	assert.True(t, IsSensitiveParam("API_KEY"))
	assert.True(t, IsSensitiveParam("admin_password"))
	assert.True(t, IsSensitiveParam("identity"))
	assert.False(t, IsSensitiveParam("page"))
	assert.False(t, IsSensitiveParam("filter"))
}
