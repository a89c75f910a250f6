package journal

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/journal/application/commands"
)

var goalAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a goal",
	Long: `Add a goal to work toward.

Example:
  tend goal add "Finish the quarterly report"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddGoalHandler == nil {
			fmt.Println("Goals require storage. Check your configuration.")
			return nil
		}

		result, err := app.AddGoalHandler.Handle(cmd.Context(), commands.AddGoalCommand{
			OwnerID: app.CurrentOwnerID,
			Title:   args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to add goal: %w", err)
		}

		fmt.Printf("Added goal: %s\n", args[0])
		fmt.Printf("  ID: %s\n", result.GoalID)
		return nil
	},
}

var goalDoneCmd = &cobra.Command{
	Use:   "done [goal-id]",
	Short: "Mark a goal done",
	Long: `Mark a goal as completed.

Example:
  tend goal done abc123`,
	Aliases: []string{"complete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteGoalHandler == nil {
			fmt.Println("Goals require storage. Check your configuration.")
			return nil
		}

		goalID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal ID: %w", err)
		}

		if err := app.CompleteGoalHandler.Handle(cmd.Context(), commands.CompleteGoalCommand{
			GoalID:  goalID,
			OwnerID: app.CurrentOwnerID,
		}); err != nil {
			return fmt.Errorf("failed to complete goal: %w", err)
		}

		fmt.Println("Goal completed.")
		return nil
	},
}
