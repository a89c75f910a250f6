package journal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/journal/application/commands"
)

// ReflectCmd writes a reflection.
var ReflectCmd = &cobra.Command{
	Use:   "reflect [text]",
	Short: "Write a reflection",
	Long: `Write a free-form reflection on your day.

Example:
  tend reflect "Slow morning, but the afternoon came together."`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.WriteReflectionHandler == nil {
			fmt.Println("Reflections require storage. Check your configuration.")
			return nil
		}

		if _, err := app.WriteReflectionHandler.Handle(cmd.Context(), commands.WriteReflectionCommand{
			OwnerID: app.CurrentOwnerID,
			Text:    args[0],
		}); err != nil {
			return fmt.Errorf("failed to write reflection: %w", err)
		}

		fmt.Println("Reflection saved.")
		return nil
	},
}
