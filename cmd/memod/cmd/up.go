/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/memod/pkg/config"
)

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Bootstrap and start the memod server",
	Long: `Bootstrap memod by creating a configuration file with a generated API key
if none exists, then start the REST API server. This is the recommended way
to get memod running.

Examples:
  memod up
  memod up --port 9000
  memod up --config ./memod.yaml --print-keys`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath(cmd)
		printKeys, _ := cmd.Flags().GetBool("print-keys")

		if config.ConfigExists(path) {
			cmd.Printf("Loaded existing configuration from %s\n", path)
		} else {
			cmd.Printf("First run detected. Bootstrapping memod...\n")

			cfg, err := config.BootstrapConfig(path)
			if err != nil {
				return fmt.Errorf("failed to bootstrap config: %w", err)
			}
			cmd.Printf("Configuration created at %s\n", path)

			if printKeys {
				cmd.Printf("\nClient API Key: %s\n", cfg.Security.ClientAPIKey)
				cmd.Printf("Store this key securely! It is also saved in %s\n", path)
			}
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := applyServeFlags(cmd, cfg); err != nil {
			return err
		}
		return runServer(cmd, cfg)
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
	addServeFlags(upCmd)
	upCmd.Flags().Bool("print-keys", false, "Print the generated API key to the console")
}
