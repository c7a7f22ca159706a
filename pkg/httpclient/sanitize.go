package httpclient

import (
	"net/url"

	"github.com/alelipona/pocketbase-go/pkg/redact"
)

// sanitizeURL masks credential-bearing query parameter values before a URL
// reaches the logs. The sensitive-key vocabulary lives in pkg/redact so the
// request logger and the dry-run snapshot agree on what counts as a secret.
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	q := u.Query()
	changed := false
	for param := range q {
		if redact.IsSensitiveParam(param) {
			q.Set(param, redact.Marker)
			changed = true
		}
	}
	if !changed {
		return u.String()
	}

	safe := *u
	safe.RawQuery = q.Encode()
	return safe.String()
}
