package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show server and store statistics",
	Long: `Show record count, next id, operation totals, uptime and the store
instance id of a running memod server.

Example:
  memod stats`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		stats, err := c.Stats(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd, stats)
		}

		uptime := time.Duration(stats.UptimeSeconds * float64(time.Second)).Round(time.Second)
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetAutoWrapText(false)
		table.AppendBulk([][]string{
			{"Instance", stats.InstanceID},
			{"Started", stats.StartedAt.Format(time.RFC3339)},
			{"Uptime", uptime.String()},
			{"Records", strconv.Itoa(stats.Records)},
			{"Next ID", strconv.FormatUint(stats.NextID, 10)},
			{"Creates", fmt.Sprint(stats.Creates)},
			{"Updates", fmt.Sprint(stats.Updates)},
			{"Deletes", fmt.Sprint(stats.Deletes)},
		})
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("json", false, "Print statistics as JSON")
}
