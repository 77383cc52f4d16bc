package countdown

import "fmt"

func plural(n int, unit string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// DaysLeftPhrase maps a day count to the short phrase shown on cards.
func DaysLeftPhrase(days int) string {
	switch {
	case days < 0:
		return "Passed"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days < 7:
		return fmt.Sprintf("%d days left", days)
	case days < 30:
		weeks := days / 7
		extra := days % 7
		if extra > 0 {
			return plural(weeks, "week") + ", " + plural(extra, "day") + " left"
		}
		return plural(weeks, "week") + " left"
	case days < 365:
		// 30-day months.
		return plural(days/30, "month") + " left"
	default:
		return plural(days/365, "year") + " left"
	}
}

type Motivation struct {
	Main string `json:"main" yaml:"main"`
	Sub  string `json:"sub" yaml:"sub"`
}

// MotivationFor returns the headline/subline pair shown on the detail view.
func MotivationFor(days int) Motivation {
	switch {
	case days < 0:
		return Motivation{Main: "You made it!", Sub: "This moment has arrived"}
	case days == 0:
		return Motivation{Main: "Today is the day", Sub: "Make it count"}
	case days == 1:
		return Motivation{Main: "Tomorrow!", Sub: "One more day to make a difference"}
	case days <= 7:
		return Motivation{Main: fmt.Sprintf("%d days left", days), Sub: "Every moment counts"}
	case days <= 30:
		return Motivation{Main: fmt.Sprintf("%d weeks away", days/7), Sub: "Plenty of time to prepare"}
	default:
		return Motivation{Main: fmt.Sprintf("%d months away", days/30), Sub: "Take it one day at a time"}
	}
}
