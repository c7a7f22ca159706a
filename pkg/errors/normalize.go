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
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// GenericMessage is the fallback when no message can be resolved from the
// failure at all.
const GenericMessage = "request to the record service failed"

// HTTPError is the surface a transport failure exposes for normalization.
// The HTTP transport's status errors implement it; Normalize accepts any
// error and probes for it.
type HTTPError interface {
	error
	HTTPStatus() int
	ResponseBody() []byte
}

// Normalize maps an arbitrary failure into a RequestError.
//
// Failures arrive in three shapes: a raw network error, a transport error
// exposing the HTTP response, or a JSON error document (possibly wrapping
// the real body under "response.body", "response.data" or "body"). The
// resolution order follows that precedence. Normalize never fails and never
// returns nil for a non-nil input; a nil input yields nil.
func Normalize(err error) *RequestError {
	if err == nil {
		return nil
	}

	var already *RequestError
	if stderrors.As(err, &already) {
		return already
	}

	doc, statusCode := errorDocument(err)
	body := resolveBody(doc)
	if statusCode == 0 {
		statusCode = resolveStatus(doc)
	}

	out := &RequestError{
		StatusCode: statusCode,
		Cause:      err,
		Raw:        decodeRaw(body),
	}

	if msg := body.Get("message"); msg.Type == gjson.String && msg.Str != "" {
		out.Message = msg.Str
	} else if errMsg := err.Error(); errMsg != "" {
		out.Message = errMsg
	} else {
		out.Message = GenericMessage
	}

	if code := body.Get("code"); code.Exists() {
		out.Code = code.String()
	}

	out.FieldErrors = fieldErrors(body.Get("data"))

	return out
}

// errorDocument extracts the JSON document to probe and, when the error
// exposes an HTTP response, its status code.
func errorDocument(err error) (gjson.Result, int) {
	var httpErr HTTPError
	if stderrors.As(err, &httpErr) {
		return gjson.ParseBytes(httpErr.ResponseBody()), httpErr.HTTPStatus()
	}

	// A transport may surface the service's error document as the error
	// text itself; treat it as the body when it parses.
	msg := strings.TrimSpace(err.Error())
	if strings.HasPrefix(msg, "{") && gjson.Valid(msg) {
		return gjson.Parse(msg), 0
	}

	return gjson.Result{}, 0
}

// resolveBody walks the known wrapper shapes down to the service error body.
func resolveBody(doc gjson.Result) gjson.Result {
	if resp := doc.Get("response"); resp.IsObject() {
		if inner := resp.Get("body"); inner.Exists() {
			return inner
		}
		if inner := resp.Get("data"); inner.Exists() {
			return inner
		}
		return resp
	}
	if inner := doc.Get("body"); inner.IsObject() {
		return inner
	}
	return doc
}

// resolveStatus probes the wrapper shapes for a status code, accepting both
// numeric and numeric-string representations. Unparsable values yield zero.
func resolveStatus(doc gjson.Result) int {
	for _, path := range []string{"response.statusCode", "response.status", "statusCode"} {
		if code := parseStatus(doc.Get(path)); code != 0 {
			return code
		}
	}
	return 0
}

func parseStatus(v gjson.Result) int {
	var code int
	switch v.Type {
	case gjson.Number:
		code = int(v.Int())
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return 0
		}
		code = n
	default:
		return 0
	}
	if code < 100 || code > 599 {
		return 0
	}
	return code
}

// fieldErrors flattens a validation map into "<field>: <detail>" strings in
// the body's own key order.
func fieldErrors(data gjson.Result) []string {
	if !data.IsObject() {
		return nil
	}

	var out []string
	data.ForEach(func(key, value gjson.Result) bool {
		out = append(out, fmt.Sprintf("%s: %s", key.Str, fieldDetail(value)))
		return true
	})
	return out
}

func fieldDetail(value gjson.Result) string {
	if value.Type == gjson.String {
		return value.Str
	}
	if msg := value.Get("message"); msg.Type == gjson.String {
		return msg.Str
	}
	return value.Raw
}

// decodeRaw decodes the resolved body for downstream display.
func decodeRaw(body gjson.Result) any {
	if !body.Exists() || body.Raw == "" {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(body.Raw), &out); err != nil {
		return body.Raw
	}
	return out
}
