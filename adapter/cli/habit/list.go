package habit

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/habits/application/queries"
	habitsDomain "github.com/tendhq/tend/internal/habits/domain"
)

var (
	showArchived   bool
	showDueToday   bool
	hasStreak      bool
	habitSortBy    string
	habitSortOrder string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits",
	Long: `List all habits with today's status and streaks.

Sort Options:
  --sort   Sort by field (streak, longest_streak, name, created_at)
  --order  Sort order (asc, desc)

Examples:
  tend habit list                # All active habits
  tend habit list --due          # Habits due today
  tend habit list --has-streak   # Habits with active streaks
  tend habit list --sort streak  # Sort by current streak`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListHabitsHandler == nil {
			fmt.Println("Habit listing requires storage. Check your configuration.")
			return nil
		}

		habits, err := app.ListHabitsHandler.Handle(cmd.Context(), queries.ListHabitsQuery{
			OwnerID:         app.CurrentOwnerID,
			IncludeArchived: showArchived,
			OnlyDueToday:    showDueToday,
			HasStreak:       hasStreak,
			SortBy:          habitSortBy,
			SortOrder:       habitSortOrder,
		})
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}

		if len(habits) == 0 {
			switch {
			case showDueToday:
				fmt.Println("No habits due today.")
			case showArchived:
				fmt.Println("No archived habits.")
			case hasStreak:
				fmt.Println("No habits with active streaks.")
			default:
				fmt.Println("No habits found. Create one with: tend habit create \"Habit name\"")
			}
			return nil
		}

		fmt.Printf("Habits (%d):\n", len(habits))
		fmt.Println(strings.Repeat("-", 70))

		for _, h := range habits {
			marker := statusMarker(h.TodayStatus, h.IsDueToday)

			streakStr := ""
			if h.Streak > 0 {
				streakStr = fmt.Sprintf(" | streak: %d", h.Streak)
				if h.LongestStreak > h.Streak {
					streakStr += fmt.Sprintf(" (best: %d)", h.LongestStreak)
				}
			} else if h.LongestStreak > 0 {
				streakStr = fmt.Sprintf(" | best: %d (broken)", h.LongestStreak)
			}

			archivedStr := ""
			if h.IsArchived {
				archivedStr = " [archived]"
			}

			fmt.Printf("%s %s%s%s\n", marker, h.Name, streakStr, archivedStr)
			fmt.Printf("    ID: %s | Tracked days: %d\n", h.ID, h.TrackedDays)
		}

		return nil
	},
}

func statusMarker(todayStatus string, dueToday bool) string {
	switch habitsDomain.Status(todayStatus) {
	case habitsDomain.StatusCompleted:
		return "[x]"
	case habitsDomain.StatusFailed:
		return "[!]"
	default:
		if dueToday {
			return "[ ]"
		}
		return "[-]"
	}
}

func init() {
	listCmd.Flags().BoolVarP(&showArchived, "archived", "a", false, "show archived habits")
	listCmd.Flags().BoolVar(&showDueToday, "due", false, "show only habits due today")
	listCmd.Flags().BoolVar(&hasStreak, "has-streak", false, "show only habits with active streaks")
	listCmd.Flags().StringVar(&habitSortBy, "sort", "", "sort by field (streak, longest_streak, name, created_at)")
	listCmd.Flags().StringVar(&habitSortOrder, "order", "", "sort order (asc, desc)")
}
