package cli

import (
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"task-planner/internal/config"
)

// ConfigCommand prints the effective configuration
type ConfigCommand struct {
	out io.Writer
}

// NewConfigCommand creates a new config command handler
func NewConfigCommand(out io.Writer) *ConfigCommand {
	return &ConfigCommand{out: out}
}

// Show writes cfg as YAML with secrets masked
func (c *ConfigCommand) Show(cfg *config.Config) error {
	enc := yaml.NewEncoder(c.out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Redacted()); err != nil {
		return err
	}
	return enc.Close()
}

func (r *RootCommand) configCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long:  "Print the configuration after defaults, config file, environment and flags are applied. API keys are masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewConfigCommand(r.out).Show(r.config)
		},
	})

	return configCmd
}
