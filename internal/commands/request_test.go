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

package commands

import (
	"bytes"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePairs(t *testing.T) {
	got, err := parsePairs([]string{"page=2", "filter=status=\"live\""})
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"page":   {"2"},
		"filter": {`status="live"`},
	}, got)
}

func TestParsePairs_Invalid(t *testing.T) {
	_, err := parsePairs([]string{"noequals"})
	require.Error(t, err)

	_, err = parsePairs([]string{"=value"})
	require.Error(t, err)
}

func TestParseHeaderPairs(t *testing.T) {
	got, err := parseHeaderPairs([]string{"X-Trace: abc", "Accept:application/json"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"X-Trace": "abc",
		"Accept":  "application/json",
	}, got)

	empty, err := parseHeaderPairs(nil)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestRequestCommand_DryRun(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("base_url: http://localhost:8090\nauth_mode: none\n"), 0o600))

	root := NewRootCommand("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{
		"request", "POST", "/collections/posts/records",
		"--config", cfgPath,
		"--body", `{"title":"hello","password":"secret"}`,
		"--query", "expand=author",
		"--dry-run",
	})

	require.NoError(t, root.Execute())

	var info map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))

	assert.Equal(t, "POST", info["method"])
	assert.Equal(t, "http://localhost:8090/api/collections/posts/records", info["url"])

	body := info["body"].(map[string]any)
	assert.Equal(t, "hello", body["title"])
	assert.Equal(t, "[REDACTED]", body["password"])
	assert.NotContains(t, out.String(), "secret")
}
