// Package journal contains the CLI commands for goals, deeds, and
// reflections.
package journal

import (
	"github.com/spf13/cobra"
)

// GoalCmd is the goal command group.
var GoalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily goals",
	Long:  `Add goals for the day and mark them done.`,
}

func init() {
	GoalCmd.AddCommand(goalAddCmd)
	GoalCmd.AddCommand(goalDoneCmd)
}
