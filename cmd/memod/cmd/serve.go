/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/memod/pkg/api"
	"github.com/ssargent/memod/pkg/config"
	"github.com/ssargent/memod/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the memod REST API server.

Settings come from the config file, then MEMOD_* environment variables,
then flags. Records live only in this process and are gone when it exits.

Examples:
  memod serve
  memod serve --port 9000 --bind 0.0.0.0
  memod serve --api-key mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
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
	rootCmd.AddCommand(serveCmd)
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	cmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	cmd.Flags().Bool("no-metrics", false, "Disable the Prometheus /metrics endpoint")
}

// applyServeFlags overrides cfg with flags the user set explicitly
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("bind") {
		cfg.Bind, _ = cmd.Flags().GetString("bind")
	}
	if noMetrics, _ := cmd.Flags().GetBool("no-metrics"); noMetrics {
		cfg.Metrics.Enabled = false
	}
	if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
		cfg.Security.ClientAPIKey = apiKey
		cfg.Security.RequireAuth = true
	}
	return cfg.Validate()
}

// serverConfig maps the file config onto the API server settings
func serverConfig(cfg *config.Config) api.ServerConfig {
	return api.ServerConfig{
		Addr:            cfg.Address(),
		APIKey:          cfg.Security.ClientAPIKey,
		RequireAuth:     cfg.Security.RequireAuth,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsInterval: cfg.Metrics.UpdateInterval,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}
}

// runServer creates a store and serves it until SIGINT or SIGTERM
func runServer(cmd *cobra.Command, cfg *config.Config) error {
	if container == nil {
		return errors.New("dependency container not initialized")
	}

	lggr, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = lggr.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := container.GetStoreFactory().CreateStore()
	starter := container.GetServerFactory().CreateServerStarter()

	cmd.Printf("Starting memod server on %s\n", cfg.Address())
	return starter.StartServer(ctx, st, serverConfig(cfg), lggr)
}
