package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  "Print the configuration after defaults, environment overrides and statutory tables have been applied.",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfiguration(cmd)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", flagConfig, err)
	}

	data, err := yaml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, warning := range conf.ValidateConfiguration() {
		fmt.Fprintf(out, "# warning: %s\n", warning)
	}
	_, err = out.Write(data)
	return err
}
