package habit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/habits/application/commands"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [habit-id]",
	Short: "Archive a habit",
	Long: `Archive a habit. Its history is kept but it no longer appears in
default listings and stops counting toward summaries.

Example:
  tend habit archive abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ArchiveHabitHandler == nil {
			fmt.Println("Archiving requires storage. Check your configuration.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}

		if err := app.ArchiveHabitHandler.Handle(cmd.Context(), commands.ArchiveHabitCommand{
			HabitID: habitID,
			OwnerID: app.CurrentOwnerID,
		}); err != nil {
			return fmt.Errorf("failed to archive habit: %w", err)
		}

		fmt.Println("Habit archived.")
		return nil
	},
}
