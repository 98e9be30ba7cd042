package main

import (
	"github.com/spf13/cobra"
)

// createConfigCommand creates the config subcommand
func createConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "prints the effective configuration",
		Long: `Config prints the settings the other commands would run with, after the
config file and the command line flags are merged, as YAML. The output is
a valid config file.`,
		Args: cobra.NoArgs,
		RunE: executeConfig,
	}
}

func executeConfig(cmd *cobra.Command, args []string) error {
	b, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
