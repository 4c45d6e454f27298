package cmd

import (
	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a memo by id",
	Long: `Get a memo by id from a running memod server.

Example:
  memod get 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		record, err := c.Get(cmd.Context(), id)
		if err != nil {
			return notFound(id, err)
		}
		return printJSON(cmd, record)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
