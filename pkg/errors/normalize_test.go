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

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusErr mimics the transport's status error for normalization tests.
type statusErr struct {
	status int
	body   []byte
}

func (e *statusErr) Error() string        { return fmt.Sprintf("request failed with status %d", e.status) }
func (e *statusErr) HTTPStatus() int      { return e.status }
func (e *statusErr) ResponseBody() []byte { return e.body }

func TestNormalize_Nil(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}

func TestNormalize_PassesThroughRequestError(t *testing.T) {
	orig := &RequestError{Message: "boom", StatusCode: 418}
	assert.Same(t, orig, Normalize(orig))
}

func TestNormalize_TransportStatusError(t *testing.T) {
	err := &statusErr{
		status: 400,
		body:   []byte(`{"code":400,"message":"Validation failed","data":{"title":{"message":"Required"}}}`),
	}

	got := Normalize(err)
	require.NotNil(t, got)

	assert.Equal(t, "Validation failed", got.Message)
	assert.Equal(t, 400, got.StatusCode)
	assert.Equal(t, "400", got.Code)
	assert.Equal(t, []string{"title: Required"}, got.FieldErrors)
	require.IsType(t, map[string]any{}, got.Raw)
	assert.Equal(t, "Validation failed", got.Raw.(map[string]any)["message"])
}

func TestNormalize_WrapperDocument(t *testing.T) {
	// Error text carrying the wrapped response shape.
	err := New(`{"response":{"statusCode":400,"body":{"message":"Validation failed","data":{"title":{"message":"Required"}}}}}`)

	got := Normalize(err)
	require.NotNil(t, got)

	assert.Equal(t, "Validation failed", got.Message)
	assert.Equal(t, 400, got.StatusCode)
	assert.Equal(t, []string{"title: Required"}, got.FieldErrors)
}

func TestNormalize_StatusVariants(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"response.statusCode number", `{"response":{"statusCode":404}}`, 404},
		{"response.status number", `{"response":{"status":500}}`, 500},
		{"top-level statusCode", `{"statusCode":403}`, 403},
		{"numeric string", `{"statusCode":"429"}`, 429},
		{"unparsable string", `{"statusCode":"teapot"}`, 0},
		{"out of range", `{"statusCode":9000}`, 0},
		{"absent", `{"message":"x"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(New(tt.doc))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.StatusCode)
		})
	}
}

func TestNormalize_FieldErrorShapes(t *testing.T) {
	err := &statusErr{
		status: 400,
		body: []byte(`{"message":"Validation failed","data":{` +
			`"plain":"just a string",` +
			`"nested":{"message":"Required"},` +
			`"odd":{"code":"too_long","max":10}}}`),
	}

	got := Normalize(err)
	require.NotNil(t, got)

	require.Len(t, got.FieldErrors, 3)
	assert.Equal(t, "plain: just a string", got.FieldErrors[0])
	assert.Equal(t, "nested: Required", got.FieldErrors[1])
	assert.Equal(t, `odd: {"code":"too_long","max":10}`, got.FieldErrors[2])
}

func TestNormalize_FieldErrorsPreserveOrder(t *testing.T) {
	err := &statusErr{
		status: 400,
		body:   []byte(`{"data":{"z":"last?","a":"first?","m":"middle?"}}`),
	}

	got := Normalize(err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"z: last?", "a: first?", "m: middle?"}, got.FieldErrors)
}

func TestNormalize_RawNetworkError(t *testing.T) {
	err := New("dial tcp 127.0.0.1:8090: connection refused")

	got := Normalize(err)
	require.NotNil(t, got)

	assert.Equal(t, "dial tcp 127.0.0.1:8090: connection refused", got.Message)
	assert.Equal(t, 0, got.StatusCode)
	assert.Empty(t, got.FieldErrors)
	assert.ErrorIs(t, got, err)
}

func TestNormalize_EmptyBodyFallsBackToErrorText(t *testing.T) {
	err := &statusErr{status: 502, body: nil}

	got := Normalize(err)
	require.NotNil(t, got)

	assert.Equal(t, "request failed with status 502", got.Message)
	assert.Equal(t, 502, got.StatusCode)
	assert.Nil(t, got.Raw)
}

func TestNormalize_BodyWrapperKey(t *testing.T) {
	err := &statusErr{
		status: 400,
		body:   []byte(`{"body":{"message":"from inner body"}}`),
	}

	got := Normalize(err)
	require.NotNil(t, got)
	assert.Equal(t, "from inner body", got.Message)
}

func TestRequestError_Error(t *testing.T) {
	e := &RequestError{
		Message:     "Validation failed",
		StatusCode:  400,
		FieldErrors: []string{"title: Required", "slug: Invalid"},
	}
	assert.Equal(t, "Validation failed [HTTP 400] (title: Required; slug: Invalid)", e.Error())
}
