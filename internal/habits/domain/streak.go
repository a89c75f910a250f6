package domain

// maxStreakWalk bounds the backward streak walk. A year of daily
// completions plus a leap day is the longest streak the walk will report.
const maxStreakWalk = 366

// StreakAt returns the consecutive-completed-day streak as of ref.
//
// The anchor is ref itself when ref is completed, otherwise the day before:
// a streak stays alive before today has been tracked, as long as yesterday
// was completed. When the anchor is not completed the streak is 0. The walk
// then counts backward from the anchor, stopping at the first day that is
// failed or untracked.
//
// Pure function of the ledger and ref; never touches the clock.
func StreakAt(ledger *Ledger, ref DayKey) int {
	anchor := ref
	if ledger.Get(anchor) != StatusCompleted {
		anchor = ref.Prev()
	}
	if ledger.Get(anchor) != StatusCompleted {
		return 0
	}

	streak := 0
	for day := anchor; streak < maxStreakWalk; day = day.Prev() {
		if ledger.Get(day) != StatusCompleted {
			break
		}
		streak++
	}
	return streak
}
