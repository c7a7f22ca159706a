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

// Package pocketbase is the top-level client for the record service.
//
// A Client dispatches generic requests against a configured base URL:
// it composes the full URL, resolves and injects a bearer token for the
// configured credentials, encodes the body or multipart form, executes
// through a pluggable transport, and normalizes every failure into the
// package's error taxonomy.
//
//	creds := auth.AdminPassword("http://127.0.0.1:8090", "admin@example.com", pw)
//	client, err := pocketbase.New(creds)
//	if err != nil {
//	    return err
//	}
//	out, err := client.Do(ctx, pocketbase.RequestSpec{
//	    Method:   "GET",
//	    Endpoint: "/collections/posts/records",
//	})
package pocketbase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/alelipona/pocketbase-go/pkg/apiurl"
	"github.com/alelipona/pocketbase-go/pkg/auth"
	"github.com/alelipona/pocketbase-go/pkg/errors"
	"github.com/alelipona/pocketbase-go/pkg/httpclient"
	"github.com/alelipona/pocketbase-go/pkg/transport"
)

// Client dispatches authenticated requests against the record service.
// Safe for concurrent use; concurrent dispatches share the token cache with
// last-write-wins semantics.
type Client struct {
	creds         auth.Credentials
	transport     transport.Transport
	resolver      *auth.Resolver
	store         auth.Store
	httpClient    *http.Client
	transportOpts []transport.Option
}

// Option configures a Client.
type Option func(*Client)

// WithTransport substitutes the execution transport. Primarily for tests
// and embedders with their own wire layer.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHTTPClient runs the default HTTP transport on the given client
// instead of the factory default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit caps outgoing requests at limit per second with the given
// burst. Applies to the built-in HTTP transport; ignored when WithTransport
// supplies its own.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.transportOpts = append(c.transportOpts, transport.WithRateLimit(limit, burst))
	}
}

// WithTokenStore supplies the token cache backing. Callers embedding the
// client in a larger execution context pass their scratch store here; the
// default is an in-memory store scoped to this Client.
func WithTokenStore(s auth.Store) Option {
	return func(c *Client) {
		c.store = s
	}
}

// New creates a client for the given credentials.
func New(creds auth.Credentials, opts ...Option) (*Client, error) {
	c := &Client{creds: creds}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		hc := c.httpClient
		if hc == nil {
			var err error
			hc, err = httpclient.New(httpclient.DefaultConfig())
			if err != nil {
				return nil, err
			}
		}
		c.transport = transport.NewHTTP(hc, c.transportOpts...)
	}

	c.resolver = auth.NewResolver(c.transport, c.store)
	return c, nil
}

// RequestSpec describes one request. Constructed per call and fully
// consumed by Do; Body and Form are mutually exclusive.
type RequestSpec struct {
	// Method is the HTTP method
	Method string

	// Endpoint is the path relative to the service API prefix, or a full
	// absolute URL for custom requests
	Endpoint string

	// Body is the JSON request body; ignored when Form is set
	Body any

	// Query is appended to the URL, only when non-empty
	Query url.Values

	// Headers are merged into the request; an explicit Authorization header
	// here overrides the resolved token
	Headers map[string]string

	// Form makes the request a multipart submission
	Form *transport.Form

	// SkipAuth disables token resolution for this request
	SkipAuth bool
}

// Do dispatches a request and returns the decoded JSON response.
// An empty response body yields nil. Failures surface as ConfigError,
// AuthError, ProtocolError (from token resolution) or RequestError (from
// the data request), never as a bare transport error.
func (c *Client) Do(ctx context.Context, spec RequestSpec) (any, error) {
	base := apiurl.NormalizeBase(c.creds.BaseURL())
	fullURL := apiurl.Compose(base, spec.Endpoint)

	headers := make(map[string]string, len(spec.Headers)+1)
	for k, v := range spec.Headers {
		headers[k] = v
	}

	if !spec.SkipAuth {
		token, err := c.resolver.Token(ctx, c.creds)
		if err != nil {
			return nil, err
		}
		if token != "" && !hasHeader(headers, "Authorization") {
			headers["Authorization"] = "Bearer " + token
		}
	}

	req := &transport.Request{
		Method:  spec.Method,
		URL:     fullURL,
		Headers: headers,
		Form:    spec.Form,
	}
	if len(spec.Query) > 0 {
		req.Query = spec.Query
	}
	if spec.Form == nil {
		req.Body = spec.Body
	}

	resp, err := c.transport.Execute(ctx, req)
	if err != nil {
		return nil, errors.Normalize(err)
	}

	return decodeResponse(resp.Body), nil
}

// ResolveToken resolves a bearer token for the client's credentials without
// dispatching a request.
func (c *Client) ResolveToken(ctx context.Context) (string, error) {
	return c.resolver.Token(ctx, c.creds)
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func decodeResponse(body []byte) any {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		// Non-JSON success bodies (health probes, exports) pass through raw.
		return trimmed
	}
	return out
}
