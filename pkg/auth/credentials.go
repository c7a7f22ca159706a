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

// Package auth resolves bearer tokens for the record-service client.
//
// A credential configuration is a closed variant over four modes: no
// authentication, a static token, an admin email/password pair, and a
// collection-scoped identity/password pair. The resolver turns a
// configuration into a valid token, consulting a shared token cache and
// performing login calls as needed. For admin credentials it probes the two
// endpoint shapes the service has exposed across its versions.
package auth

import "github.com/alelipona/pocketbase-go/pkg/errors"

// Mode identifies a credential mode. The set is closed: resolution switches
// over it exhaustively, so adding a mode is a compile-time-checked change.
type Mode string

const (
	// ModeNone disables authentication entirely.
	ModeNone Mode = "none"

	// ModeStaticToken sends a preconfigured token as-is.
	ModeStaticToken Mode = "token"

	// ModeAdminPassword logs in with an admin email/password pair.
	ModeAdminPassword Mode = "admin"

	// ModeCollectionPassword logs in against an auth collection with an
	// identity/password pair.
	ModeCollectionPassword Mode = "collection"
)

// Credentials is an immutable credential configuration snapshot.
// Construct one with the mode constructors below; the zero value behaves
// like None with an empty base URL.
type Credentials struct {
	mode       Mode
	baseURL    string
	token      string
	email      string
	identity   string
	collection string
	password   string
}

// None returns credentials that perform no authentication.
func None(baseURL string) Credentials {
	return Credentials{mode: ModeNone, baseURL: baseURL}
}

// StaticToken returns credentials that use a fixed token.
func StaticToken(baseURL, token string) Credentials {
	return Credentials{mode: ModeStaticToken, baseURL: baseURL, token: token}
}

// AdminPassword returns admin email/password credentials.
func AdminPassword(baseURL, email, password string) Credentials {
	return Credentials{mode: ModeAdminPassword, baseURL: baseURL, email: email, password: password}
}

// CollectionPassword returns identity/password credentials scoped to an
// auth collection.
func CollectionPassword(baseURL, collection, identity, password string) Credentials {
	return Credentials{
		mode:       ModeCollectionPassword,
		baseURL:    baseURL,
		collection: collection,
		identity:   identity,
		password:   password,
	}
}

// Mode returns the credential mode.
func (c Credentials) Mode() Mode {
	return c.mode
}

// BaseURL returns the configured service base URL.
func (c Credentials) BaseURL() string {
	return c.baseURL
}

// validate checks that the fields the mode requires are present.
func (c Credentials) validate() error {
	if c.baseURL == "" {
		return &errors.ConfigError{Field: "baseUrl"}
	}

	switch c.mode {
	case ModeNone:
		return nil
	case ModeStaticToken:
		if c.token == "" {
			return &errors.ConfigError{Field: "token"}
		}
	case ModeAdminPassword:
		if c.email == "" {
			return &errors.ConfigError{Field: "email"}
		}
		if c.password == "" {
			return &errors.ConfigError{Field: "password"}
		}
	case ModeCollectionPassword:
		if c.collection == "" {
			return &errors.ConfigError{Field: "collection"}
		}
		if c.identity == "" {
			return &errors.ConfigError{Field: "identity"}
		}
		if c.password == "" {
			return &errors.ConfigError{Field: "password"}
		}
	default:
		return &errors.ConfigError{Field: "authMode", Reason: "unknown mode " + string(c.mode)}
	}

	return nil
}
