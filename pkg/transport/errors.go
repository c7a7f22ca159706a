package transport

import "fmt"

// StatusError reports a non-2xx response. It keeps the response body intact
// so downstream normalization can extract the service's error detail.
type StatusError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Body is the raw response body; may be empty
	Body []byte

	// URL is the request URL the response belongs to
	URL string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

// ResponseBody returns the raw response body.
func (e *StatusError) ResponseBody() []byte {
	return e.Body
}
