// Package notifications computes reminder schedules. Delivery itself is the
// worker's business; this package only answers "when should the next
// reminder fire".
package notifications

import (
	"errors"
	"time"
)

// ErrInvalidReminderTime is returned for times outside HH:MM form.
var ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")

// NextOccurrence returns the next instant at or after now when a reminder
// with the given schedule should fire, in now's location. An empty
// reminderTime means no reminder is configured and yields nil. Empty
// reminderDays means every day.
func NextOccurrence(reminderTime string, reminderDays []time.Weekday, now time.Time) (*time.Time, error) {
	if reminderTime == "" {
		return nil, nil
	}

	parsed, err := time.Parse("15:04", reminderTime)
	if err != nil {
		return nil, ErrInvalidReminderTime
	}

	y, m, d := now.Date()
	candidate := time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if candidate.Before(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	// At most a week of scanning: either every day fires or at least one
	// weekday in the set matches within seven days.
	for i := 0; i < 7; i++ {
		if dueOn(candidate.Weekday(), reminderDays) {
			return &candidate, nil
		}
		candidate = candidate.AddDate(0, 0, 1)
	}
	return nil, nil
}

func dueOn(weekday time.Weekday, reminderDays []time.Weekday) bool {
	if len(reminderDays) == 0 {
		return true
	}
	for _, d := range reminderDays {
		if d == weekday {
			return true
		}
	}
	return false
}
