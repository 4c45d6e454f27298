package cmd

import (
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a memo by id",
	Long: `Delete a memo by id. Its id is never handed out again by the same server.

Example:
  memod delete 0`,
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

		if err := c.Delete(cmd.Context(), id); err != nil {
			return notFound(id, err)
		}

		cmd.Printf("Deleted memo %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
