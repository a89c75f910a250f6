package habit

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	insightQueries "github.com/tendhq/tend/internal/insights/application/queries"
)

var statsCmd = &cobra.Command{
	Use:   "stats [habit-id]",
	Short: "Show habit statistics",
	Long: `Show completion statistics for a habit: overall rate, weekday and
monthly breakdowns, and past streak runs.

Example:
  tend habit stats abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetHabitStatsHandler == nil {
			fmt.Println("Statistics require storage. Check your configuration.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}

		stats, err := app.GetHabitStatsHandler.Handle(cmd.Context(), insightQueries.GetHabitStatsQuery{
			HabitID: habitID,
			OwnerID: app.CurrentOwnerID,
		})
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		fmt.Printf("%s\n", stats.Name)
		fmt.Println(strings.Repeat("-", 70))
		fmt.Printf("Streak: %d (best: %d)\n", stats.Streak, stats.LongestStreak)
		fmt.Printf("Tracked days: %d | Completed: %d | Rate: %d%%\n",
			stats.TrackedDays, stats.CompletedDays, stats.OverallRate)

		if len(stats.Weekdays) > 0 {
			fmt.Println("\nBy weekday:")
			for d := time.Sunday; d <= time.Saturday; d++ {
				bucket, ok := stats.Weekdays[d.String()]
				if !ok {
					continue
				}
				fmt.Printf("  %-10s %d/%d (%d%%)\n",
					d.String(), bucket.Completed, bucket.Total, bucket.Rate)
			}
		}

		if len(stats.Months) > 0 {
			fmt.Println("\nBy month:")
			for _, m := range stats.Months {
				fmt.Printf("  %-10s %d/%d (%d%%)\n",
					m.Label, m.Completed, m.Total, m.Rate)
			}
		}

		if len(stats.Runs) > 0 {
			fmt.Println("\nStreak runs:")
			for _, run := range stats.Runs {
				if run.Length == 1 {
					fmt.Printf("  %s (1 day)\n", run.Start)
				} else {
					fmt.Printf("  %s to %s (%d days)\n", run.Start, run.End, run.Length)
				}
			}
		}

		return nil
	},
}
