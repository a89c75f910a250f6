package journal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/journal/application/commands"
)

// DeedCmd records a good deed.
var DeedCmd = &cobra.Command{
	Use:   "deed [note]",
	Short: "Record a good deed",
	Long: `Record something good you did today.

Example:
  tend deed "Helped a colleague debug their deploy"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecordDeedHandler == nil {
			fmt.Println("Deeds require storage. Check your configuration.")
			return nil
		}

		if _, err := app.RecordDeedHandler.Handle(cmd.Context(), commands.RecordDeedCommand{
			OwnerID: app.CurrentOwnerID,
			Note:    args[0],
		}); err != nil {
			return fmt.Errorf("failed to record deed: %w", err)
		}

		fmt.Println("Deed recorded.")
		return nil
	},
}
