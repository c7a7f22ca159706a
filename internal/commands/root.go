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

// Package commands implements the pbc CLI subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootFlags holds the persistent flags shared by all subcommands.
type rootFlags struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the pbc root command.
func NewRootCommand(version string) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "pbc",
		Short: "Client for PocketBase-style record services",
		Long: `pbc dispatches authenticated requests against a PocketBase-style
record service: generic requests, record CRUD, and token resolution.

Connection settings come from a YAML config file, PB_* environment
variables (a .env file is honored), and the OS keyring for secrets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
			if flags.verbose {
				cmd.Flags().Visit(func(f *pflag.Flag) {
					slog.Debug("flag set", "name", f.Name)
				})
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", defaultConfigPath(), "path to the config file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(NewRequestCommand(flags))
	cmd.AddCommand(NewAuthCommand(flags))
	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pbc.yaml"
	}
	return home + "/.config/pbc/config.yaml"
}
