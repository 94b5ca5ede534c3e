package graph

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAdvanceStreak(t *testing.T) {
	tests := []struct {
		name    string
		prev    time.Time
		hasPrev bool
		now     time.Time
		streak  int
		want    int
	}{
		{
			name: "first check-in",
			now:  day(2025, time.March, 10),
			want: 1,
		},
		{
			name:    "consecutive day extends",
			prev:    day(2025, time.March, 9),
			hasPrev: true,
			now:     day(2025, time.March, 10),
			streak:  4,
			want:    5,
		},
		{
			name:    "same day resets",
			prev:    day(2025, time.March, 10),
			hasPrev: true,
			now:     day(2025, time.March, 10),
			streak:  4,
			want:    1,
		},
		{
			name:    "gap of two days resets",
			prev:    day(2025, time.March, 7),
			hasPrev: true,
			now:     day(2025, time.March, 10),
			streak:  9,
			want:    1,
		},
		{
			name:    "month boundary",
			prev:    day(2025, time.February, 28),
			hasPrev: true,
			now:     day(2025, time.March, 1),
			streak:  1,
			want:    2,
		},
		{
			name:    "clock time within the day does not matter",
			prev:    time.Date(2025, time.March, 9, 23, 59, 0, 0, time.UTC),
			hasPrev: true,
			now:     time.Date(2025, time.March, 10, 0, 1, 0, 0, time.UTC),
			streak:  2,
			want:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdvanceStreak(tt.prev, tt.hasPrev, tt.now, tt.streak)
			if got != tt.want {
				t.Errorf("AdvanceStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdvanceStreakThreeDayRun(t *testing.T) {
	start := day(2025, time.June, 1)
	streak := 0
	var prev time.Time
	hasPrev := false
	for i := 0; i < 3; i++ {
		now := start.AddDate(0, 0, i)
		streak = AdvanceStreak(prev, hasPrev, now, streak)
		prev, hasPrev = now, true
	}
	if streak != 3 {
		t.Errorf("streak after three consecutive days = %d, want 3", streak)
	}
}
