package internal

import (
	"fmt"

	"github.com/goplus/hxbuild/internal/config"
	"github.com/spf13/cobra"
)

var configFile string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  `Config merges defaults, the configuration file, environment and flags and prints the result as YAML.`,
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file (default ./hxbuild.yaml)")
	config.RegisterFlags(configCmd.Flags())
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	setVerbose(cfg.Verbose)
	doc, err := cfg.YAML()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), doc)
	return nil
}
