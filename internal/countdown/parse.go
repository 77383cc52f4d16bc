package countdown

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Local date+time layouts; interpreted in the caller's location.
var localLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseDate parses:
// - YYYY-MM-DD (midnight in loc)
// - YYYY-MM-DD HH:MM[:SS] (local to loc)
// - RFC3339 / RFC3339Nano (timezone-aware)
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s)
}

// IsDateOnly reports whether s is a bare YYYY-MM-DD date.
func IsDateOnly(s string) bool {
	_, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return err == nil
}

// NormalizeDate returns the canonical stored form: YYYY-MM-DD for date-only input,
// RFC3339 in UTC for anything carrying a time of day.
func NormalizeDate(s string, loc *time.Location) (string, error) {
	t, err := ParseDate(s, loc)
	if err != nil {
		return "", err
	}
	if IsDateOnly(s) {
		return t.Format(dateLayout), nil
	}
	return t.UTC().Format(time.RFC3339), nil
}

// FormatDay renders a date the way cards show it ("Jan 2, 2006").
func FormatDay(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
