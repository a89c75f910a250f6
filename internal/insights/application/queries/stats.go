package queries

import (
	"math"

	habitsDomain "github.com/tendhq/tend/internal/habits/domain"
)

// BreakdownBucket accumulates completion figures for one grouping key.
type BreakdownBucket struct {
	Total     int
	Completed int
	Rate      int // rounded percentage, 0 when Total is 0
}

// WeekdayBreakdown groups a habit's tracked days by weekday name.
// Untracked days never appear in the ledger, so only explicit completed and
// failed entries contribute to the buckets.
func WeekdayBreakdown(habit *habitsDomain.Habit) map[string]BreakdownBucket {
	buckets := make(map[string]BreakdownBucket)
	for _, day := range habit.Ledger().TrackedDays() {
		key := day.Weekday().String()
		bucket := buckets[key]
		bucket.Total++
		if habit.Ledger().Get(day) == habitsDomain.StatusCompleted {
			bucket.Completed++
		}
		bucket.Rate = percentage(bucket.Completed, bucket.Total)
		buckets[key] = bucket
	}
	return buckets
}

// MonthBucket is a BreakdownBucket with its "January 2006" label, kept in
// first-seen (chronological) order.
type MonthBucket struct {
	Label string
	BreakdownBucket
}

// MonthlyBreakdown groups a habit's tracked days by calendar month.
func MonthlyBreakdown(habit *habitsDomain.Habit) []MonthBucket {
	var months []MonthBucket
	index := make(map[string]int)

	for _, day := range habit.Ledger().TrackedDays() {
		label := day.MonthLabel()
		i, ok := index[label]
		if !ok {
			i = len(months)
			index[label] = i
			months = append(months, MonthBucket{Label: label})
		}
		months[i].Total++
		if habit.Ledger().Get(day) == habitsDomain.StatusCompleted {
			months[i].Completed++
		}
		months[i].Rate = percentage(months[i].Completed, months[i].Total)
	}
	return months
}

// StreakRun is one maximal run of consecutive completed days.
type StreakRun struct {
	Start  habitsDomain.DayKey
	End    habitsDomain.DayKey
	Length int
}

// StreakRuns partitions a habit's completed days into maximal consecutive
// runs, oldest first.
func StreakRuns(habit *habitsDomain.Habit) []StreakRun {
	completed := habit.Ledger().CompletedDays()
	if len(completed) == 0 {
		return nil
	}

	runs := make([]StreakRun, 0)
	run := StreakRun{Start: completed[0], End: completed[0], Length: 1}
	for _, day := range completed[1:] {
		if day == run.End.Next() {
			run.End = day
			run.Length++
			continue
		}
		runs = append(runs, run)
		run = StreakRun{Start: day, End: day, Length: 1}
	}
	return append(runs, run)
}

// RangeRate reports the completion rate over [start, end] inclusive:
// completed days divided by tracked days in the range. Days outside the
// ledger are ignored; a range with no tracked days rates 0.
func RangeRate(habit *habitsDomain.Habit, start, end habitsDomain.DayKey) int {
	tracked, completed := 0, 0
	for _, day := range habitsDomain.DaysBetween(start, end) {
		switch habit.Ledger().Get(day) {
		case habitsDomain.StatusCompleted:
			tracked++
			completed++
		case habitsDomain.StatusFailed:
			tracked++
		}
	}
	return percentage(completed, tracked)
}

// MultiHabitRate reports the overall completion rate for a set of habits
// over [start, end] inclusive. Every habit counts as a daily target for
// every day in the range, regardless of its reminder schedule.
func MultiHabitRate(habits []*habitsDomain.Habit, start, end habitsDomain.DayKey) int {
	days := habitsDomain.DaysBetween(start, end)
	targets := len(habits) * len(days)
	if targets == 0 {
		return 0
	}

	hits := 0
	for _, habit := range habits {
		for _, day := range days {
			if habit.Ledger().Get(day) == habitsDomain.StatusCompleted {
				hits++
			}
		}
	}
	return percentage(hits, targets)
}

func percentage(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
