package habit

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/habits/application/commands"
	habitsDomain "github.com/tendhq/tend/internal/habits/domain"
)

var (
	logStatus string
	logDay    string
)

var logCmd = &cobra.Command{
	Use:   "log [habit-id]",
	Short: "Record a habit outcome",
	Long: `Record a habit outcome for today or a past day.

Statuses:
  completed - you did it
  failed    - you tried to and didn't
  untracked - clear the recorded outcome

Examples:
  tend habit log abc123
  tend habit log abc123 --status failed
  tend habit log abc123 --day 2026-08-28       # fill in a missed day
  tend habit log abc123 --status untracked     # undo a bad entry`,
	Aliases: []string{"done", "mark"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SetStatusHandler == nil {
			fmt.Println("Habit logging requires storage. Check your configuration.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}

		result, err := app.SetStatusHandler.Handle(cmd.Context(), commands.SetStatusCommand{
			HabitID: habitID,
			OwnerID: app.CurrentOwnerID,
			Day:     logDay,
			Status:  logStatus,
		})
		if err != nil {
			return fmt.Errorf("failed to record outcome: %w", err)
		}

		switch result.Status {
		case habitsDomain.StatusCompleted:
			fmt.Printf("Marked %s completed.\n", result.Day)
		case habitsDomain.StatusFailed:
			fmt.Printf("Marked %s failed.\n", result.Day)
		default:
			fmt.Printf("Cleared %s.\n", result.Day)
		}
		fmt.Printf("  Streak: %d\n", result.Streak)
		if result.LongestStreak > result.Streak {
			fmt.Printf("  Best: %d\n", result.LongestStreak)
		}

		return nil
	},
}

func init() {
	logCmd.Flags().StringVarP(&logStatus, "status", "s", "completed", "outcome (completed, failed, untracked)")
	logCmd.Flags().StringVar(&logDay, "day", "", "day to record, YYYY-MM-DD (default today)")
}
