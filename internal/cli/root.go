package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/orgboard/internal/config"
	"github.com/rshade/orgboard/internal/logging"
)

// isWriterTerminal reports whether w is a terminal.
func isWriterTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the orgboard CLI.
// It wires up configuration, logging and tracing, and the orgs, serve and config
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithArgs(ver, os.Args, os.LookupEnv)
}

// NewRootCmdWithArgs creates the root command with explicit args and env lookup for testability.
// args includes the program name, as os.Args does.
func NewRootCmdWithArgs(
	ver string,
	args []string,
	lookupEnv func(string) (string, bool),
) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "orgboard",
		Short:         "Browse blockchain organisations",
		Long:          "orgboard: sort, filter and page through blockchain organisations served over GraphQL",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyConfigFlags(cmd, lookupEnv); err != nil {
				return err
			}
			result := setupLogging(cmd, lookupEnv)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "YAML file merged over the configuration")
	cmd.PersistentFlags().String("endpoint", "", "GraphQL endpoint (overrides config and "+config.EnvEndpoint+")")
	cmd.AddCommand(NewOrgsCmd(), NewServeCmd(), newConfigCmd())

	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	}
	return cmd
}

// applyConfigFlags layers the --config overlay, the environment and --endpoint over the
// global configuration and validates the result.
func applyConfigFlags(cmd *cobra.Command, lookupEnv func(string) (string, bool)) error {
	cfg := config.GetGlobalConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := config.ShallowMergeYAML(cfg, path); err != nil {
			return fmt.Errorf("loading --config: %w", err)
		}
	}
	cfg.ApplyEnv(lookupEnv)
	if endpoint, _ := cmd.Flags().GetString("endpoint"); endpoint != "" {
		cfg.Client.Endpoint = endpoint
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

const rootCmdExample = `  # Browse organisations interactively
  orgboard orgs

  # Top organisations by assets under management, as JSON
  orgboard orgs --sort aum:desc --output json

  # Multisig organisations created in 2020 that published a profile
  orgboard orgs --kit Multisig --from 2020-01-01 --to 2020-12-31 --with-profile

  # Serve the bundled fixture over GraphQL
  orgboard serve --addr :4000

  # Initialize configuration
  orgboard config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
