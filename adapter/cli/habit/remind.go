package habit

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendhq/tend/adapter/cli"
	"github.com/tendhq/tend/internal/habits/application/commands"
	"github.com/tendhq/tend/internal/notifications"
)

var (
	remindTime  string
	remindDays  []string
	remindClear bool
)

var remindCmd = &cobra.Command{
	Use:   "remind [habit-id]",
	Short: "Set or clear a habit reminder",
	Long: `Set a daily reminder time for a habit, optionally limited to
certain weekdays.

Examples:
  tend habit remind abc123 --at 07:30
  tend habit remind abc123 --at 18:00 --on mon,wed,fri
  tend habit remind abc123 --clear`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateReminderHandler == nil {
			fmt.Println("Reminders require storage. Check your configuration.")
			return nil
		}

		habitID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid habit ID: %w", err)
		}

		reminderTime := remindTime
		var reminderDays []time.Weekday
		if remindClear {
			reminderTime = ""
		} else {
			reminderDays, err = parseWeekdays(remindDays)
			if err != nil {
				return err
			}
		}

		result, err := app.UpdateReminderHandler.Handle(cmd.Context(), commands.UpdateReminderCommand{
			HabitID:      habitID,
			OwnerID:      app.CurrentOwnerID,
			ReminderTime: reminderTime,
			ReminderDays: reminderDays,
		})
		if err != nil {
			return fmt.Errorf("failed to update reminder: %w", err)
		}

		if result.ReminderTime == "" {
			fmt.Println("Reminder cleared.")
			return nil
		}

		fmt.Printf("Reminder set for %s", result.ReminderTime)
		if len(result.ReminderDays) > 0 {
			names := make([]string, len(result.ReminderDays))
			for i, d := range result.ReminderDays {
				names[i] = d.String()
			}
			fmt.Printf(" on %s", strings.Join(names, ", "))
		}
		fmt.Println()

		next, err := notifications.NextOccurrence(result.ReminderTime, result.ReminderDays, time.Now())
		if err == nil && next != nil {
			fmt.Printf("  Next: %s\n", next.Format("Mon Jan 2 15:04"))
		}

		return nil
	},
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday: %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

func init() {
	remindCmd.Flags().StringVar(&remindTime, "at", "", "reminder time, HH:MM")
	remindCmd.Flags().StringSliceVar(&remindDays, "on", nil, "weekdays (mon,tue,...), default every day")
	remindCmd.Flags().BoolVar(&remindClear, "clear", false, "remove the reminder")
}
