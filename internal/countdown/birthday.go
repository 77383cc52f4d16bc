package countdown

import (
	"fmt"
	"time"
)

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(y int, m time.Month, d int) int {
	if d < 1 {
		return 1
	}
	max := daysInMonth(y, m)
	if d > max {
		return max
	}
	return d
}

// anniversary returns birth's month/day in year y (Feb 29 falls on Feb 28 in common years).
func anniversary(birth time.Time, y int, loc *time.Location) time.Time {
	m := birth.Month()
	return time.Date(y, m, clampDay(y, m, birth.Day()), 0, 0, 0, 0, loc)
}

// NextBirthday returns the next occurrence of birth's month/day on or after now's date,
// at midnight in now's location.
func NextBirthday(birth, now time.Time) time.Time {
	today := startOfDay(now)
	next := anniversary(birth, today.Year(), now.Location())
	if next.Before(today) {
		next = anniversary(birth, today.Year()+1, now.Location())
	}
	return next
}

// NextBirthdayDate is NextBirthday over YYYY-MM-DD strings.
func NextBirthdayDate(birthday string, now time.Time) (string, error) {
	birth, err := time.Parse(dateLayout, birthday)
	if err != nil {
		return "", fmt.Errorf("invalid birthday %q (expected YYYY-MM-DD)", birthday)
	}
	return NextBirthday(birth, now).Format(dateLayout), nil
}

// Age returns completed years at now.
func Age(birth, now time.Time) int {
	today := startOfDay(now)
	age := today.Year() - birth.Year()
	if today.Before(anniversary(birth, today.Year(), now.Location())) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// AgeFor is Age over a YYYY-MM-DD birthday; ok is false when it does not parse.
func AgeFor(birthday string, now time.Time) (age int, ok bool) {
	birth, err := time.Parse(dateLayout, birthday)
	if err != nil {
		return 0, false
	}
	return Age(birth, now), true
}

// PassedDay reports whether date falls on a day before now's date.
func PassedDay(date string, now time.Time) bool {
	t, err := ParseDate(date, now.Location())
	if err != nil {
		return false
	}
	return startOfDay(t.In(now.Location())).Before(startOfDay(now))
}
