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

// Package config loads the CLI's connection settings.
//
// Settings resolve in order: YAML config file, then .env / process
// environment, then the OS keyring for secrets. Passwords and tokens are
// never written to the config file; they come from PB_PASSWORD / PB_TOKEN
// or the keyring entry for the configured identity.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"

	"github.com/alelipona/pocketbase-go/pkg/auth"
	"github.com/alelipona/pocketbase-go/pkg/errors"
)

// keyringService namespaces this CLI's entries in the OS keyring.
const keyringService = "pocketbase-go"

// Config is the CLI connection configuration.
type Config struct {
	// BaseURL is the service base URL
	BaseURL string `yaml:"base_url"`

	// AuthMode selects the credential mode: none, token, admin, collection
	AuthMode string `yaml:"auth_mode"`

	// Email is the admin email (admin mode)
	Email string `yaml:"email,omitempty"`

	// Collection is the auth collection name (collection mode)
	Collection string `yaml:"collection,omitempty"`

	// Identity is the login identity (collection mode)
	Identity string `yaml:"identity,omitempty"`

	// RateLimit caps outgoing requests per second; zero disables pacing
	RateLimit float64 `yaml:"rate_limit,omitempty"`

	// Password is resolved from the environment or keyring, never the file
	Password string `yaml:"-"`

	// Token is resolved from the environment or keyring, never the file
	Token string `yaml:"-"`
}

// Load reads the configuration from path (optional), the environment and
// the OS keyring. A missing config file is not an error; a present but
// unreadable one is.
func Load(path string) (*Config, error) {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{AuthMode: string(auth.ModeNone)}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env-only configuration
		case err != nil:
			return nil, errors.Wrapf(err, "reading config file %s", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parsing config file %s", path)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := resolveSecrets(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setFromEnv(&cfg.BaseURL, "PB_BASE_URL")
	setFromEnv(&cfg.AuthMode, "PB_AUTH_MODE")
	setFromEnv(&cfg.Email, "PB_EMAIL")
	setFromEnv(&cfg.Collection, "PB_COLLECTION")
	setFromEnv(&cfg.Identity, "PB_IDENTITY")
	setFromEnv(&cfg.Password, "PB_PASSWORD")
	setFromEnv(&cfg.Token, "PB_TOKEN")

	if v := os.Getenv("PB_RATE_LIMIT"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil || limit < 0 {
			return &errors.ConfigError{Field: "rate_limit", Reason: "not a valid requests-per-second value: " + v}
		}
		cfg.RateLimit = limit
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// resolveSecrets consults the OS keyring for whatever the environment did
// not provide. A keyring without the entry, or no keyring at all, is not an
// error; validation happens when credentials are built.
func resolveSecrets(cfg *Config) error {
	switch auth.Mode(cfg.AuthMode) {
	case auth.ModeAdminPassword:
		if cfg.Password == "" && cfg.Email != "" {
			cfg.Password = keyringLookup(cfg.Email)
		}
	case auth.ModeCollectionPassword:
		if cfg.Password == "" && cfg.Identity != "" {
			cfg.Password = keyringLookup(cfg.Identity)
		}
	case auth.ModeStaticToken:
		if cfg.Token == "" {
			cfg.Token = keyringLookup("api_token")
		}
	}
	return nil
}

func keyringLookup(account string) string {
	value, err := keyring.Get(keyringService, account)
	if err != nil {
		return ""
	}
	return value
}

// StoreSecret writes a secret into the OS keyring under this CLI's service
// namespace.
func StoreSecret(account, value string) error {
	if err := keyring.Set(keyringService, account, value); err != nil {
		return errors.Wrapf(err, "storing secret for %s", account)
	}
	return nil
}

// Credentials builds the typed credential configuration for the loaded
// settings.
func (c *Config) Credentials() (auth.Credentials, error) {
	switch auth.Mode(c.AuthMode) {
	case auth.ModeNone, "":
		return auth.None(c.BaseURL), nil
	case auth.ModeStaticToken:
		return auth.StaticToken(c.BaseURL, c.Token), nil
	case auth.ModeAdminPassword:
		return auth.AdminPassword(c.BaseURL, c.Email, c.Password), nil
	case auth.ModeCollectionPassword:
		return auth.CollectionPassword(c.BaseURL, c.Collection, c.Identity, c.Password), nil
	default:
		return auth.Credentials{}, fmt.Errorf("unknown auth_mode %q (expected none, token, admin or collection)", c.AuthMode)
	}
}
