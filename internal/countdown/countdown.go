package countdown

import (
	"time"

	"intime-cli/internal/model"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	// Fixed 365-day bucket; not calendar aware.
	msPerYear = 365 * msPerDay
)

// DaysLeft returns ceil((target-now)/1 day). Negative once the target has passed,
// zero for the rest of the target day.
func DaysLeft(target, now time.Time) int {
	diff := target.UnixMilli() - now.UnixMilli()
	if diff > 0 {
		return int((diff + msPerDay - 1) / msPerDay)
	}
	// Integer division truncates toward zero, which is ceil for non-positive values.
	return int(diff / msPerDay)
}

// Remaining decomposes the time until target greedily into years, days, hours,
// minutes and whole seconds. Saturates at zero once target <= now.
func Remaining(target, now time.Time) model.TimeRemaining {
	diff := target.UnixMilli() - now.UnixMilli()
	if diff <= 0 {
		return model.TimeRemaining{}
	}
	total := diff

	years := diff / msPerYear
	diff -= years * msPerYear
	days := diff / msPerDay
	diff -= days * msPerDay
	hours := diff / msPerHour
	diff -= hours * msPerHour
	minutes := diff / msPerMinute
	diff -= minutes * msPerMinute
	seconds := diff / msPerSecond

	return model.TimeRemaining{
		Years:   int(years),
		Days:    int(days),
		Hours:   int(hours),
		Minutes: int(minutes),
		Seconds: int(seconds),
		Total:   total,
	}
}

// DaysLeftFor parses date and returns DaysLeft. ok is false for unparsable dates.
func DaysLeftFor(date string, now time.Time) (days int, ok bool) {
	t, err := ParseDate(date, now.Location())
	if err != nil {
		return 0, false
	}
	return DaysLeft(t, now), true
}

// RemainingFor parses date and returns Remaining; unparsable dates read as passed.
func RemainingFor(date string, now time.Time) model.TimeRemaining {
	t, err := ParseDate(date, now.Location())
	if err != nil {
		return model.TimeRemaining{}
	}
	return Remaining(t, now)
}
