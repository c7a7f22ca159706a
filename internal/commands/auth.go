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
	"github.com/spf13/cobra"

	"github.com/alelipona/pocketbase-go/internal/config"
	"github.com/alelipona/pocketbase-go/pkg/redact"
)

// NewAuthCommand creates the auth command group.
func NewAuthCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
	}

	cmd.AddCommand(newAuthTokenCommand(flags))
	cmd.AddCommand(newAuthSetSecretCommand())

	return cmd
}

func newAuthTokenCommand(flags *rootFlags) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Resolve a bearer token for the configured credentials",
		Long: `Resolve a token the way a request would: from the cache when valid,
via a login call otherwise. The token is printed redacted unless
--reveal is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(flags)
			if err != nil {
				return err
			}

			token, err := client.ResolveToken(cmd.Context())
			if err != nil {
				return err
			}

			if token == "" {
				cmd.Println("no authentication configured; requests are sent anonymously")
				return nil
			}

			if reveal {
				cmd.Println(token)
			} else {
				cmd.Println(redact.Marker)
				cmd.Println("(token resolved; re-run with --reveal to print it)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the token in clear text")

	return cmd
}

func newAuthSetSecretCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-secret ACCOUNT SECRET",
		Short: "Store a password or token in the OS keyring",
		Long: `Store a secret under the CLI's keyring namespace. ACCOUNT is the
email or identity the secret belongs to, or "api_token" for a static
token.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.StoreSecret(args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("stored secret for %s\n", args[0])
			return nil
		},
	}

	return cmd
}
