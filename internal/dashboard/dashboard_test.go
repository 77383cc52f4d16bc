package dashboard

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"intime-cli/internal/model"
	"intime-cli/internal/store"
)

func ids(ms []model.Milestone) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOrder_BirthdayPinnedThenAscending(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ms := []model.Milestone{
		{ID: "far", Date: "2027-01-01"},
		{ID: "broken", Date: "whenever"},
		{ID: "near", Date: "2025-06-03"},
		{ID: model.BirthdayMilestoneID, Date: "2026-05-15"},
		{ID: "past", Date: "2025-01-01"},
		{ID: "near-too", Date: "2025-06-03"},
	}
	got := ids(Order(ms, now))
	want := []string{model.BirthdayMilestoneID, "past", "near", "near-too", "far", "broken"}
	if !equalIDs(got, want) {
		t.Fatalf("Order = %v, want %v", got, want)
	}
	if ms[0].ID != "far" {
		t.Fatalf("input must not be reordered")
	}
}

func TestOrder_DuplicateIDsSortByOwnDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ms := []model.Milestone{
		{ID: "dup", Title: "later", Date: "2025-12-01"},
		{ID: model.BirthdayMilestoneID, Title: "first birthday", Date: "2026-05-15"},
		{ID: "solo", Date: "2025-09-01"},
		{ID: "dup", Title: "sooner", Date: "2025-06-10"},
		{ID: model.BirthdayMilestoneID, Title: "stale birthday", Date: "2025-07-01"},
	}
	got := Order(ms, now)
	if len(got) != len(ms) {
		t.Fatalf("Order dropped entries: got %d, want %d", len(got), len(ms))
	}
	var titles []string
	for _, m := range got {
		titles = append(titles, m.Title+"@"+m.Date)
	}
	want := []string{
		"first birthday@2026-05-15",
		"sooner@2025-06-10",
		"stale birthday@2025-07-01",
		"solo@2025-09-01",
		"later@2025-12-01",
	}
	if !equalIDs(titles, want) {
		t.Fatalf("Order = %v, want %v", titles, want)
	}
}

func TestOrder_NoBirthday(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := ids(Order([]model.Milestone{{ID: "b", Date: "2025-09-01"}, {ID: "a", Date: "2025-07-01"}}, now))
	if !equalIDs(got, []string{"a", "b"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if out := Order(nil, now); len(out) != 0 {
		t.Fatalf("expected empty, got %v", out)
	}
}

func TestLoad_SynthesizesAndOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := store.New(store.NewMemoryKV(), zaptest.NewLogger(t))
	_ = st.SaveMilestones(ctx, []model.Milestone{
		{ID: "b", Title: "B", Date: "2025-09-01", Emoji: "🎯", CreatedAt: "2025-01-01T00:00:00Z"},
		{ID: "a", Title: "A", Date: "2025-07-01", Emoji: "🎯", CreatedAt: "2025-01-01T00:00:00Z"},
	})
	_ = st.SetBirthday(ctx, "1990-12-24")

	got := ids(Load(ctx, st, now))
	want := []string{model.BirthdayMilestoneID, "a", "b"}
	if !equalIDs(got, want) {
		t.Fatalf("Load = %v, want %v", got, want)
	}
	// Stored order keeps the birthday first and the rest as written.
	stored := ids(st.LoadMilestones(ctx))
	if !equalIDs(stored, []string{model.BirthdayMilestoneID, "b", "a"}) {
		t.Fatalf("stored order = %v", stored)
	}
	// Idempotent across mounts.
	if again := Load(ctx, st, now); len(again) != 3 {
		t.Fatalf("expected 3 after second load, got %d", len(again))
	}
}

func TestRowFor(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	r := RowFor(model.Milestone{ID: "a", Date: "2025-06-15", CreatedAt: "2025-05-18T00:00:00Z"}, now)
	if !r.Valid || r.DaysLeft != 14 || r.Phrase != "2 weeks left" || r.Day != "Jun 15, 2025" {
		t.Fatalf("unexpected row: %+v", r)
	}
	if r.Remaining.Days != 14 || r.Compact != "14d 00s" {
		t.Fatalf("unexpected remaining: %+v %q", r.Remaining, r.Compact)
	}
	// 28 days total, 14 left.
	if r.Progress != 0.5 {
		t.Fatalf("progress = %v, want 0.5", r.Progress)
	}

	bad := RowFor(model.Milestone{ID: "x", Date: "?"}, now)
	if bad.Valid || bad.Phrase != "Invalid date" {
		t.Fatalf("unexpected invalid row: %+v", bad)
	}
}
