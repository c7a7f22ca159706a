package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultMaxResponseSize = 10 * 1024 * 1024 // 10MB

// HTTPTransport implements Transport over net/http.
type HTTPTransport struct {
	client          *http.Client
	limiter         *rate.Limiter
	maxResponseSize int64
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithRateLimit caps outgoing requests at r per second with the given burst.
// Off by default; request pacing is otherwise the caller's concern.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(t *HTTPTransport) {
		t.limiter = rate.NewLimiter(r, burst)
	}
}

// WithMaxResponseSize bounds how much of a response body is read.
func WithMaxResponseSize(n int64) Option {
	return func(t *HTTPTransport) {
		t.maxResponseSize = n
	}
}

// NewHTTP creates an HTTP transport on top of the given client.
// A nil client falls back to a plain client with a 30s timeout.
func NewHTTP(client *http.Client, opts ...Option) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	t := &HTTPTransport{
		client:          client,
		maxResponseSize: defaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns "http".
func (t *HTTPTransport) Name() string {
	return "http"
}

// Execute sends the request and returns the response.
// Non-2xx statuses return a StatusError with the body preserved.
func (t *HTTPTransport) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
		}
	}

	fullURL, err := appendQuery(req.URL, req.Query)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %q: %w", req.URL, err)
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, t.maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			URL:        fullURL,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}

func validateRequest(req *Request) error {
	if req.Method == "" {
		return fmt.Errorf("request method is required")
	}
	if req.URL == "" {
		return fmt.Errorf("request URL is required")
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		return fmt.Errorf("request URL must use http or https scheme, got %q", req.URL)
	}
	if req.Body != nil && req.Form != nil {
		return fmt.Errorf("request cannot carry both a JSON body and form data")
	}
	return nil
}

func appendQuery(rawURL string, query url.Values) (string, error) {
	if len(query) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	merged := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	u.RawQuery = merged.Encode()
	return u.String(), nil
}

// encodeBody produces the request body reader and its content type.
// JSON bodies and multipart forms are mutually exclusive transport shapes.
func encodeBody(req *Request) (io.Reader, string, error) {
	if req.Form != nil {
		return encodeMultipart(req.Form)
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

func encodeMultipart(form *Form) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range form.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("writing form field %q: %w", k, err)
		}
	}

	for _, f := range form.Files {
		part, err := createFilePart(w, f)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("writing file %q: %w", f.FileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func createFilePart(w *multipart.Writer, f File) (io.Writer, error) {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(
		`form-data; name=%q; filename=%q`, f.FieldName, f.FileName)}
	header["Content-Type"] = []string{contentType}

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("creating part for %q: %w", f.FileName, err)
	}
	return part, nil
}
