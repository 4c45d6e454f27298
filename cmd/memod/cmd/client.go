package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ssargent/memod/pkg/client"
	"github.com/ssargent/memod/pkg/config"
	"github.com/ssargent/memod/pkg/logger"
	"github.com/ssargent/memod/pkg/store"
)

// newClient builds an API client from --server and --api-key. Without --api-key the
// client_api_key from the config file (or MEMOD_CLIENT_API_KEY) is used.
func newClient(cmd *cobra.Command) (*client.Client, error) {
	server, _ := cmd.Flags().GetString("server")
	apiKey, _ := cmd.Flags().GetString("api-key")

	if apiKey == "" {
		cfg, err := config.LoadWithEnv(configPath(cmd))
		if err != nil {
			return nil, err
		}
		apiKey = cfg.Security.ClientAPIKey
	}

	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = "warn"
	}
	lggr, err := logger.NewDevelopment(level)
	if err != nil {
		return nil, err
	}

	return client.New(client.Config{
		BaseURL: server,
		APIKey:  apiKey,
		Logger:  lggr,
	}), nil
}

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memo id %q", arg)
	}
	return id, nil
}

// notFound turns a 404 into a readable message
func notFound(id uint64, err error) error {
	if client.IsNotFound(err) {
		return fmt.Errorf("memo %d not found", id)
	}
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func printRecords(cmd *cobra.Command, records []store.Record) {
	data := make([][]string, 0, len(records))
	for _, r := range records {
		data = append(data, []string{
			strconv.FormatUint(r.ID, 10),
			r.CreatedAt.Format(time.RFC3339),
			r.Title,
			r.Content,
		})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "Created", "Title", "Content"})
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()
}
