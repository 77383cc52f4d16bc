// Package dashboard builds the ordered milestone view shown on the main screen.
package dashboard

import (
	"context"
	"math"
	"sort"
	"time"

	"intime-cli/internal/countdown"
	"intime-cli/internal/model"
	"intime-cli/internal/store"
)

// Order pins the birthday milestone first and sorts the rest ascending by days
// left (stable, so ties keep stored order). Unparsable dates go last. Entries
// with duplicate ids, including extra birthday entries, are kept and sorted by
// their own dates.
func Order(ms []model.Milestone, now time.Time) []model.Milestone {
	type entry struct {
		m    model.Milestone
		days int
	}
	out := make([]model.Milestone, 0, len(ms))
	rest := make([]entry, 0, len(ms))
	pinned := false
	for _, m := range ms {
		if m.IsBirthday() && !pinned {
			out = append(out, m)
			pinned = true
			continue
		}
		d, ok := countdown.DaysLeftFor(m.Date, now)
		if !ok {
			d = math.MaxInt
		}
		rest = append(rest, entry{m: m, days: d})
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].days < rest[j].days })
	for _, e := range rest {
		out = append(out, e.m)
	}
	return out
}

// Load runs the dashboard mount flow: ensure the birthday milestone exists and is
// current, then return the ordered list.
func Load(ctx context.Context, st *store.Store, now time.Time) []model.Milestone {
	// Both steps are best effort; a failed write still leaves a readable list.
	_ = st.CreateBirthdayMilestoneIfNeeded(ctx, now)
	_, _ = st.RefreshBirthdayMilestone(ctx, now)
	return Order(st.LoadMilestones(ctx), now)
}

// Row is a milestone with its countdown fields derived at a point in time.
type Row struct {
	Milestone model.Milestone     `json:"milestone" yaml:"milestone"`
	Day       string              `json:"day" yaml:"day"`
	DaysLeft  int                 `json:"daysLeft" yaml:"daysLeft"`
	Phrase    string              `json:"phrase" yaml:"phrase"`
	Remaining model.TimeRemaining `json:"remaining" yaml:"remaining"`
	Compact   string              `json:"compact" yaml:"compact"`
	Progress  float64             `json:"progress" yaml:"progress"`
	Valid     bool                `json:"valid" yaml:"valid"`
}

func RowFor(m model.Milestone, now time.Time) Row {
	r := Row{Milestone: m}
	target, err := countdown.ParseDate(m.Date, now.Location())
	if err != nil {
		r.Phrase = "Invalid date"
		r.Compact = countdown.Compact(r.Remaining)
		return r
	}
	r.Valid = true
	r.Day = countdown.FormatDay(target)
	r.DaysLeft = countdown.DaysLeft(target, now)
	r.Phrase = countdown.DaysLeftPhrase(r.DaysLeft)
	r.Remaining = countdown.Remaining(target, now)
	r.Compact = countdown.Compact(r.Remaining)
	r.Progress = 1
	if created, err := time.Parse(time.RFC3339, m.CreatedAt); err == nil {
		r.Progress = countdown.ProgressSince(target, created, now)
	}
	return r
}

func Rows(ms []model.Milestone, now time.Time) []Row {
	out := make([]Row, 0, len(ms))
	for _, m := range ms {
		out = append(out, RowFor(m, now))
	}
	return out
}
