package graph

import "time"

// AdvanceStreak applies the check-in streak law: the streak grows by one only
// when the previous check-in fell on the immediately preceding calendar day;
// a first check-in, a same-day repeat or a gap of two or more days resets it
// to 1. Dates are compared in UTC.
func AdvanceStreak(prev time.Time, hasPrev bool, now time.Time, streak int) int {
	if !hasPrev {
		return 1
	}
	prevDay := dateOf(prev)
	yesterday := dateOf(now).AddDate(0, 0, -1)
	if prevDay.Equal(yesterday) {
		return streak + 1
	}
	return 1
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
