package httpclient

import (
	"net/url"
	"strings"
	"testing"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name        string
		rawURL      string
		contains    string
		notContains string
	}{
		{
			name:        "token param redacted",
			rawURL:      "https://example.com/api/health?token=supersecret",
			contains:    "token=%5BREDACTED%5D",
			notContains: "supersecret",
		},
		{
			name:        "case insensitive",
			rawURL:      "https://example.com/?API_KEY=abc123",
			notContains: "abc123",
		},
		{
			name:        "identity param redacted",
			rawURL:      "https://example.com/api/collections/users/auth-with-password?identity=bob%40example.com",
			contains:    "identity=%5BREDACTED%5D",
			notContains: "bob",
		},
		{
			name:        "admin_password fragment match",
			rawURL:      "https://example.com/?admin_password=hunter2",
			notContains: "hunter2",
		},
		{
			name:     "plain params untouched",
			rawURL:   "https://example.com/api/collections/posts/records?page=2&perPage=50",
			contains: "page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.rawURL)
			if err != nil {
				t.Fatalf("failed to parse url: %v", err)
			}

			got := sanitizeURL(u)

			if tt.contains != "" && !strings.Contains(got, tt.contains) {
				t.Errorf("expected %q to contain %q", got, tt.contains)
			}
			if tt.notContains != "" && strings.Contains(got, tt.notContains) {
				t.Errorf("expected %q to not contain %q", got, tt.notContains)
			}
		})
	}
}

func TestSanitizeURL_Nil(t *testing.T) {
	if got := sanitizeURL(nil); got != "" {
		t.Errorf("expected empty string for nil url, got %q", got)
	}
}

func TestSanitizeURL_CleanURLUnchanged(t *testing.T) {
	raw := "https://example.com/api/collections/posts/records?filter=(title~'abc')&page=2"
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse url: %v", err)
	}

	// Without sensitive params the URL passes through without re-encoding,
	// so the logged URL matches what was sent byte for byte.
	if got := sanitizeURL(u); got != raw {
		t.Errorf("expected clean URL unchanged, got %q", got)
	}
}
