package cmd

import (
	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <id> <title> <content>",
	Short: "Replace a memo's title and content",
	Long: `Replace the title and content of a memo. The id and creation time are kept.

Example:
  memod update 0 "Shopping" "eggs, milk, bread"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		record, err := c.Update(cmd.Context(), id, args[1], args[2])
		if err != nil {
			return notFound(id, err)
		}
		return printJSON(cmd, record)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
