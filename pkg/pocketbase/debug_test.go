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
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alelipona/pocketbase-go/pkg/auth"
	"github.com/alelipona/pocketbase-go/pkg/redact"
)

func TestBuildDebugInfo(t *testing.T) {
	client := newTestClient(t, auth.None("http://localhost:8090/"), &captureTransport{})

	spec := RequestSpec{
		Method:   http.MethodPost,
		Endpoint: "/collections/posts/records",
		Query:    url.Values{"expand": {"author"}},
		Body: map[string]any{
			"title":    "hello",
			"password": "should-hide",
		},
		Headers: map[string]string{
			"Authorization": "Bearer tok",
			"X-Trace":       "abc",
		},
	}

	info := client.BuildDebugInfo(spec)

	assert.Equal(t, http.MethodPost, info.Method)
	assert.Equal(t, "http://localhost:8090/api/collections/posts/records", info.URL)
	assert.Equal(t, map[string][]string{"expand": {"author"}}, info.Query)

	body, ok := info.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hello", body["title"])
	assert.Equal(t, redact.Marker, body["password"])

	assert.Equal(t, redact.Marker, info.Headers["Authorization"])
	assert.Equal(t, "abc", info.Headers["X-Trace"])
}

func TestBuildDebugInfo_DetachedSnapshot(t *testing.T) {
	client := newTestClient(t, auth.None("http://localhost:8090"), &captureTransport{})

	query := url.Values{"page": {"1"}}
	spec := RequestSpec{Method: http.MethodGet, Endpoint: "/x", Query: query}

	info := client.BuildDebugInfo(spec)
	query.Set("page", "2")

	assert.Equal(t, []string{"1"}, info.Query["page"])
}

func TestBuildDebugInfo_OmitsEmptySections(t *testing.T) {
	client := newTestClient(t, auth.None("http://localhost:8090"), &captureTransport{})

	info := client.BuildDebugInfo(RequestSpec{Method: http.MethodGet, Endpoint: "/health"})

	assert.Nil(t, info.Query)
	assert.Nil(t, info.Body)
	assert.Nil(t, info.Headers)
}
