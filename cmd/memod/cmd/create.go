package cmd

import (
	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create <title> <content>",
	Short: "Create a memo",
	Long: `Create a memo on a running memod server. The server assigns the id.

Example:
  memod create "Groceries" "eggs, milk"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		record, err := c.Create(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd, record)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
