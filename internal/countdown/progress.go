package countdown

import "time"

// Progress returns how far along a countdown of totalDays is, clamped to [0,1].
// Reaches 1 once the target day arrives. A non-positive totalDays reads as complete.
func Progress(target time.Time, totalDays int, now time.Time) float64 {
	left := DaysLeft(target, now)
	if left <= 0 || totalDays <= 0 {
		return 1
	}
	p := float64(totalDays-left) / float64(totalDays)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ProgressSince measures progress from created to target.
func ProgressSince(target, created, now time.Time) float64 {
	return Progress(target, DaysLeft(target, created), now)
}
