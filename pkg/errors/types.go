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

// Package errors defines the error taxonomy for the record-service client
// and the normalization of arbitrary failure shapes into it.
//
// Four error types cover every failure the client surfaces:
//
//   - ConfigError: the credential configuration is incomplete. Not
//     retryable; the caller must fix the configuration.
//   - AuthError: a login call failed after exhausting every endpoint shape.
//   - ProtocolError: the service answered with success but violated the
//     expected response contract.
//   - RequestError: a data request failed; carries per-field validation
//     detail and the raw response body for caller inspection.
package errors

import (
	"fmt"
	"strings"
)

// ConfigError represents a missing or invalid credential configuration field.
type ConfigError struct {
	// Field identifies the credential field that is missing or invalid
	Field string

	// Reason explains what is wrong
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("credential configuration invalid: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("credential configuration invalid: %s is required", e.Field)
}

// AuthError represents a failed login after all endpoint shapes were tried.
type AuthError struct {
	// Mode is the credential mode that was being resolved
	Mode string

	// Endpoint is the last login endpoint attempted
	Endpoint string

	// StatusCode is the HTTP status of the last attempt, if any
	StatusCode int

	// Cause is the underlying error from the last attempt
	Cause error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	msg := fmt.Sprintf("authentication failed for %s credentials", e.Mode)
	if e.Endpoint != "" {
		msg = fmt.Sprintf("%s at %s", msg, e.Endpoint)
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s [HTTP %d]", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// ProtocolError represents a successful response that violated the expected
// response contract, e.g. a login response without a token field.
type ProtocolError struct {
	// Endpoint is the endpoint whose response broke the contract
	Endpoint string

	// Message describes the violation
	Message string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("protocol violation from %s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("protocol violation: %s", e.Message)
}

// RequestError is the normalized form of any data-request failure.
// Every transport or service failure surfaces as one of these; the raw
// response body is preserved so callers can render their own detail.
type RequestError struct {
	// Message is the human-readable error description, never empty
	Message string

	// Code is the service error code if the body carried one
	Code string

	// StatusCode is the HTTP status code, 0 when unknown
	StatusCode int

	// FieldErrors lists per-field validation failures as "<field>: <detail>",
	// in the body's own key order. Empty unless the service returned a
	// validation map.
	FieldErrors []string

	// Raw holds the resolved response body for downstream display
	Raw any

	// Cause is the original error before normalization
	Cause error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	msg := e.Message
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s [HTTP %d]", msg, e.StatusCode)
	}
	if len(e.FieldErrors) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(e.FieldErrors, "; "))
	}
	return msg
}

// Unwrap returns the original error for error chain inspection.
func (e *RequestError) Unwrap() error {
	return e.Cause
}
