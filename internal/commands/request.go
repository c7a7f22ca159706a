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

package commands

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/alelipona/pocketbase-go/internal/config"
	"github.com/alelipona/pocketbase-go/pkg/coerce"
	"github.com/alelipona/pocketbase-go/pkg/pocketbase"
)

// NewRequestCommand creates the generic request command.
func NewRequestCommand(flags *rootFlags) *cobra.Command {
	var (
		bodyJSON    string
		queryPairs  []string
		headerPairs []string
		noAuth      bool
		coerceBody  bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "request METHOD ENDPOINT",
		Short: "Dispatch a request against the record service",
		Long: `Dispatch a generic request. ENDPOINT is a path relative to the
service API prefix (e.g. /collections/posts/records) or a full URL.

The JSON response is printed to stdout. With --dry-run the redacted
request snapshot is printed instead and nothing is sent.`,
		Example: `  pbc request GET /collections/posts/records --query page=2
  pbc request POST /collections/posts/records --body '{"title":"hello"}'
  pbc request DELETE /collections/posts/records/p1 --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(flags)
			if err != nil {
				return err
			}

			spec := pocketbase.RequestSpec{
				Method:   strings.ToUpper(args[0]),
				Endpoint: args[1],
				SkipAuth: noAuth,
			}

			if bodyJSON != "" {
				var body any
				if err := json.Unmarshal([]byte(bodyJSON), &body); err != nil {
					return fmt.Errorf("parsing --body: %w", err)
				}
				spec.Body = coerce.Value(body, coerceBody)
			}

			query, err := parsePairs(queryPairs)
			if err != nil {
				return fmt.Errorf("parsing --query: %w", err)
			}
			if len(query) > 0 {
				spec.Query = query
			}

			headers, err := parseHeaderPairs(headerPairs)
			if err != nil {
				return fmt.Errorf("parsing --header: %w", err)
			}
			spec.Headers = headers

			if dryRun {
				return printJSON(cmd, client.BuildDebugInfo(spec))
			}

			out, err := client.Do(cmd.Context(), spec)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().StringVar(&bodyJSON, "body", "", "JSON request body")
	cmd.Flags().StringArrayVar(&queryPairs, "query", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&headerPairs, "header", nil, "header as Name: value (repeatable)")
	cmd.Flags().BoolVar(&noAuth, "no-auth", false, "send the request without authentication")
	cmd.Flags().BoolVar(&coerceBody, "coerce", false, "coerce string body values into typed JSON")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the redacted request instead of sending it")

	return cmd
}

func buildClient(flags *rootFlags) (*pocketbase.Client, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	creds, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}

	var opts []pocketbase.Option
	if cfg.RateLimit > 0 {
		opts = append(opts, pocketbase.WithRateLimit(rate.Limit(cfg.RateLimit), 1))
	}
	return pocketbase.New(creds, opts...)
}

func parsePairs(pairs []string) (url.Values, error) {
	out := url.Values{}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		out.Add(key, value)
	}
	return out, nil
}

func parseHeaderPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, ":")
		if !found || name == "" {
			return nil, fmt.Errorf("expected Name: value, got %q", pair)
		}
		out[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return out, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
