package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/orgboard/internal/config"
)

// redacted replaces secrets in printed configuration.
const redacted = "********"

// NewConfigShowCmd creates the config show command, which prints the effective
// configuration after the file, --config overlay, environment and flags are applied.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			if cfg.Server.Arango.Password != "" {
				cfg.Server.Arango.Password = redacted
			}
			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("marshalling configuration: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", cfg.Path(), data)
			return err
		},
	}
}
