package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	insightQueries "github.com/tendhq/tend/internal/insights/application/queries"
)

var summaryPeriod string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a period summary",
	Long: `Show a one-screen summary of goals, habits, deeds, and
reflections for a period.

Periods:
  today - since midnight
  week  - the last 7 days
  month - the current calendar month

Examples:
  tend summary
  tend summary --period week`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		if a == nil || a.GetPeriodSummaryHandler == nil {
			fmt.Println("Summaries require storage. Check your configuration.")
			return nil
		}

		summary := a.GetPeriodSummaryHandler.Handle(cmd.Context(), insightQueries.GetPeriodSummaryQuery{
			OwnerID: a.CurrentOwnerID,
			Period:  insightQueries.Period(summaryPeriod),
		})

		fmt.Printf("Summary (%s)\n", summary.Period)
		fmt.Println(strings.Repeat("-", 70))
		fmt.Printf("Goals:       %d/%d done (%d%%)\n",
			summary.Goals.Completed, summary.Goals.Total, summary.Goals.Rate)
		fmt.Printf("Habits:      %d/%d completed today (%d%%)\n",
			summary.Habits.CompletedToday, summary.Habits.TotalHabits, summary.Habits.Rate)
		if summary.Habits.ActiveStreaks > 0 || summary.Habits.WithMomentum > 0 {
			fmt.Printf("             %d active streaks, %d with momentum\n",
				summary.Habits.ActiveStreaks, summary.Habits.WithMomentum)
		}
		fmt.Printf("Deeds:       %d\n", summary.Deeds.Total)
		fmt.Printf("Reflections: %d\n", summary.Reflections.Total)

		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryPeriod, "period", "p", "today", "period (today, week, month)")
	rootCmd.AddCommand(summaryCmd)
}
