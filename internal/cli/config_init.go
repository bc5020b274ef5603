package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/orgboard/internal/config"
)

// ErrConfigExists is returned by config init when the file exists and --force is not set.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// It writes the defaults to config.yaml in the orgboard home directory
// ($ORGBOARD_HOME, or ~/.orgboard).
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values in the orgboard home
directory ($ORGBOARD_HOME, or ~/.orgboard).`,
		Example: `  # Create configuration
  orgboard config init

  # Create configuration, overwriting existing
  orgboard config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func initConfig(cmd *cobra.Command, force bool) error {
	cfg := config.New()
	path := cfg.Path()

	if !force {
		if _, err := os.Stat(path); err == nil {
			return ErrConfigExists
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	return nil
}
