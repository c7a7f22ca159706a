// Package transport provides the request execution seam for the
// record-service client.
//
// The transport layer separates wire concerns (HTTP, body encoding,
// multipart assembly, rate limiting) from client-level concerns (URL
// composition, authentication, error normalization). The client talks to a
// Transport interface so tests and embedders can substitute their own
// execution path.
package transport

import (
	"context"
	"net/url"
)

// Transport executes a request and returns the response.
// Implementations must return an error for any non-2xx status; the HTTP
// transport returns a StatusError carrying the response body so the error
// normalizer can extract service detail.
type Transport interface {
	// Execute sends a request. The context controls cancellation; an
	// aborted context abandons the in-flight call without retaining state.
	Execute(ctx context.Context, req *Request) (*Response, error)

	// Name returns the transport identifier (e.g. "http").
	Name() string
}

// Request is a fully composed request, ready for execution.
// Body and Form are mutually exclusive: a request carries either a JSON
// body or a multipart form, never both.
type Request struct {
	// Method is the HTTP method (GET, POST, PATCH, DELETE, ...)
	Method string

	// URL is the full request URL
	URL string

	// Headers are request headers; nil is allowed
	Headers map[string]string

	// Query is appended to the URL's query string; nil is allowed
	Query url.Values

	// Body is JSON-encoded as the request body when non-nil and no Form
	// is present
	Body any

	// Form, when non-nil, makes the request a multipart submission
	Form *Form
}

// Form is a multipart form payload: string fields plus binary attachments.
type Form struct {
	// Fields are the plain form values, pre-flattened to strings
	Fields map[string]string

	// Files are the binary attachments
	Files []File
}

// File is one binary attachment with its declared metadata.
// Callers resolve attachments to raw bytes before dispatch; the transport
// never loads data itself.
type File struct {
	// FieldName is the form field the file is submitted under
	FieldName string

	// FileName is the declared file name
	FileName string

	// ContentType is the declared MIME type; empty means octet-stream
	ContentType string

	// Data is the raw file content
	Data []byte
}

// Response is the outcome of a successful (2xx) execution.
type Response struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Headers contains the response headers
	Headers map[string][]string

	// Body is the raw response body
	Body []byte
}
