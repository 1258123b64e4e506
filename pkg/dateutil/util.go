package dateutil

import "time"

func BeginningOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func NextDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// CycleLength is the number of slots in the daily briefing cycle.
const CycleLength = 365

// DayOfCycle maps a time to a 1..365 slot. Day 366 of a leap year wraps
// onto slot 365.
func DayOfCycle(t time.Time) int {
	day := t.YearDay()
	if day > CycleLength {
		day = CycleLength
	}
	return day
}

// TimeframeCutoff returns the earliest updated_at accepted for a
// leaderboard timeframe, or a zero time when the timeframe covers
// everything.
func TimeframeCutoff(timeframe string, now time.Time) time.Time {
	switch timeframe {
	case "daily":
		return now.AddDate(0, 0, -1)
	case "weekly":
		return now.AddDate(0, 0, -7)
	case "monthly":
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}
