package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/habits/application/commands"
)

var description string

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new habit",
	Long: `Create a new habit to track day by day.

Examples:
  tend habit create "Morning meditation"
  tend habit create "Exercise" --description "45 minutes, any kind"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateHabitHandler == nil {
			fmt.Println("Habit creation requires storage. Check your configuration.")
			return nil
		}

		result, err := app.CreateHabitHandler.Handle(cmd.Context(), commands.CreateHabitCommand{
			OwnerID:     app.CurrentOwnerID,
			Name:        args[0],
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		fmt.Printf("Created habit: %s\n", result.Name)
		fmt.Printf("  ID: %s\n", result.HabitID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&description, "description", "d", "", "habit description")
}
