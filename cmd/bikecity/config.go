package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/bike-city/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML. Save it to
~/.bikecity/configs/bikecity.yaml or ./configs/bikecity.yaml and edit the
keys you want to change.

With --resolved, prints the configuration a ride would use after the
search path, --config and --traffic are applied.

Examples:
  bikecity config > ~/.bikecity/configs/bikecity.yaml
  bikecity config --resolved --traffic heavy`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the effective configuration")
	configCmd.Flags().StringVar(&flagTraffic, "traffic", "", "Traffic preset: light, normal, heavy, fixed")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagResolved {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadWithTraffic(flagConfig, flagTraffic)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
