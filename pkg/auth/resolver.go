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

package auth

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tidwall/gjson"

	"github.com/alelipona/pocketbase-go/pkg/apiurl"
	"github.com/alelipona/pocketbase-go/pkg/errors"
	"github.com/alelipona/pocketbase-go/pkg/transport"
)

// Resolver obtains valid bearer tokens for credential configurations.
// It is safe for concurrent use; the token store absorbs concurrent logins
// for the same key with last-write-wins semantics.
type Resolver struct {
	transport transport.Transport
	store     Store
	now       func() time.Time
}

// NewResolver creates a resolver executing login calls through t and caching
// tokens in store. A nil store gets a private in-memory one.
func NewResolver(t transport.Transport, store Store) *Resolver {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Resolver{
		transport: t,
		store:     store,
		now:       time.Now,
	}
}

// loginAttempt is one row of the endpoint strategy table: where to log in,
// how to shape the request body, and which statuses mean "endpoint not
// present, try the next shape".
type loginAttempt struct {
	endpoint         string
	body             func(c Credentials) map[string]any
	fallbackStatuses []int
}

// adminAttempts covers the two shapes the admin-auth endpoint has had across
// service versions. The newer superuser-scoped endpoint is probed first; the
// "endpoint not present" status class falls through to the legacy shape.
var adminAttempts = []loginAttempt{
	{
		endpoint: "/collections/_superusers/auth-with-password",
		body: func(c Credentials) map[string]any {
			return map[string]any{"identity": c.email, "password": c.password}
		},
		fallbackStatuses: []int{
			http.StatusNotFound,
			http.StatusMethodNotAllowed,
			http.StatusGone,
		},
	},
	{
		endpoint: "/admins/auth-with-password",
		body: func(c Credentials) map[string]any {
			return map[string]any{"email": c.email, "password": c.password}
		},
	},
}

// collectionAttempts returns the single-row table for collection-scoped
// password auth. The collection endpoint has never changed shape, so there
// is deliberately no fallback here.
func collectionAttempts(collection string) []loginAttempt {
	return []loginAttempt{
		{
			endpoint: "/collections/" + url.PathEscape(collection) + "/auth-with-password",
			body: func(c Credentials) map[string]any {
				return map[string]any{"identity": c.identity, "password": c.password}
			},
		},
	}
}

// Token resolves a valid bearer token for the given credentials.
// ModeNone yields an empty token and no error. The returned error is a
// ConfigError, AuthError or ProtocolError.
func (r *Resolver) Token(ctx context.Context, creds Credentials) (string, error) {
	if creds.Mode() == ModeNone {
		return "", nil
	}

	if err := creds.validate(); err != nil {
		return "", err
	}

	switch creds.Mode() {
	case ModeStaticToken:
		return creds.token, nil
	case ModeAdminPassword:
		return r.login(ctx, creds, adminAttempts)
	case ModeCollectionPassword:
		return r.login(ctx, creds, collectionAttempts(creds.collection))
	default:
		return "", &errors.ConfigError{Field: "authMode", Reason: "unknown mode " + string(creds.mode)}
	}
}

func (r *Resolver) login(ctx context.Context, creds Credentials, attempts []loginAttempt) (string, error) {
	base := apiurl.NormalizeBase(creds.baseURL)
	key := cacheKey(creds.mode, base)

	if cached, ok := r.store.Get(key); ok && cached.Valid(r.now()) {
		return cached.Token, nil
	}

	var lastErr error
	lastEndpoint := ""

	for i, attempt := range attempts {
		resp, err := r.transport.Execute(ctx, &transport.Request{
			Method: http.MethodPost,
			URL:    apiurl.Compose(base, attempt.endpoint),
			Body:   attempt.body(creds),
		})
		if err != nil {
			lastErr, lastEndpoint = err, attempt.endpoint
			if i < len(attempts)-1 && statusIn(err, attempt.fallbackStatuses) {
				continue
			}
			return "", &errors.AuthError{
				Mode:       string(creds.mode),
				Endpoint:   attempt.endpoint,
				StatusCode: statusOf(err),
				Cause:      err,
			}
		}

		token := gjson.GetBytes(resp.Body, "token").String()
		if token == "" {
			return "", &errors.ProtocolError{
				Endpoint: attempt.endpoint,
				Message:  "authentication response did not include a token",
			}
		}

		r.store.Put(key, Entry{Token: token, ExpiresAt: tokenExpiry(token)})
		return token, nil
	}

	return "", &errors.AuthError{
		Mode:       string(creds.mode),
		Endpoint:   lastEndpoint,
		StatusCode: statusOf(lastErr),
		Cause:      lastErr,
	}
}

func cacheKey(mode Mode, normalizedBase string) string {
	return "auth_token|" + string(mode) + "|" + normalizedBase
}

func statusOf(err error) int {
	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

func statusIn(err error, statuses []int) bool {
	code := statusOf(err)
	if code == 0 {
		return false
	}
	for _, s := range statuses {
		if s == code {
			return true
		}
	}
	return false
}

// tokenExpiry decodes the JWT expiry embedded in a login token, as unix
// milliseconds. Tokens that do not parse or carry no exp claim are treated
// as non-expiring; a malformed expiry is not an error.
func tokenExpiry(token string) int64 {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	return exp.UnixMilli()
}
