package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"intime-cli/internal/model"
	"intime-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(store.NewMemoryKV(), zap.NewNop())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newTestModel(t *testing.T, st *store.Store) appModel {
	t.Helper()
	m := newAppModel(context.Background(), st, Options{Now: func() time.Time { return testNow }})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(appModel)
}

func onboardedStore(t *testing.T, ms ...model.Milestone) *store.Store {
	t.Helper()
	ctx := context.Background()
	st := newTestStore(t)
	if err := st.UpdateBirthday(ctx, "1990-09-15", testNow); err != nil {
		t.Fatalf("UpdateBirthday: %v", err)
	}
	if err := st.SetCompletedOnboarding(ctx); err != nil {
		t.Fatalf("SetCompletedOnboarding: %v", err)
	}
	if len(ms) > 0 {
		all := append(st.LoadMilestones(ctx), ms...)
		if err := st.SaveMilestones(ctx, all); err != nil {
			t.Fatalf("SaveMilestones: %v", err)
		}
	}
	return st
}

func press(t *testing.T, m appModel, keys ...tea.KeyMsg) appModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(appModel)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func selectedID(m appModel) string {
	if it, ok := m.list.SelectedItem().(milestoneItem); ok {
		return it.row.Milestone.ID
	}
	return ""
}

func TestOnboarding_SavesBirthdayAndShowsDashboard(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	m := newTestModel(t, st)
	if m.view != viewOnboarding {
		t.Fatalf("expected onboarding view, got %v", m.view)
	}
	if got := m.birthdayInput.Value(); got != "2000-01-01" {
		t.Fatalf("expected default birthday input, got %q", got)
	}

	m = press(t, m, keyEnter)
	if m.view != viewDashboard {
		t.Fatalf("expected dashboard after onboarding, got %v (flash %q)", m.view, m.flash)
	}
	if !st.HasCompletedOnboarding(ctx) {
		t.Fatalf("expected onboarding flag to be set")
	}
	if b, ok := st.Birthday(ctx); !ok || b != "2000-01-01" {
		t.Fatalf("expected stored birthday 2000-01-01, got %q ok=%v", b, ok)
	}
	if got := selectedID(m); got != model.BirthdayMilestoneID {
		t.Fatalf("expected birthday milestone first, got %q", got)
	}
}

func TestOnboarding_RejectsFutureBirthday(t *testing.T) {
	st := newTestStore(t)
	m := newTestModel(t, st)
	m.birthdayInput.SetValue("2030-01-01")

	m = press(t, m, keyEnter)
	if m.view != viewOnboarding {
		t.Fatalf("expected to stay on onboarding, got %v", m.view)
	}
	if !m.flashErr || !strings.Contains(m.flash, "future") {
		t.Fatalf("expected future-date error, got %q", m.flash)
	}
	if st.HasCompletedOnboarding(context.Background()) {
		t.Fatalf("onboarding must not complete on invalid input")
	}
}

func TestValidateBirthday(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"1990-05-15", true},
		{" 1990-05-15 ", true},
		{"2025-06-01", true},
		{"2025-06-02", false},
		{"1990-13-01", false},
		{"15/05/1990", false},
		{"", false},
	}
	for _, tc := range cases {
		_, problem, ok := validateBirthday(tc.in, testNow)
		if ok != tc.ok {
			t.Fatalf("validateBirthday(%q) ok=%v, want %v (%s)", tc.in, ok, tc.ok, problem)
		}
		if !ok && problem == "" {
			t.Fatalf("validateBirthday(%q) expected a problem message", tc.in)
		}
	}
}

func TestAddForm_CreatesMilestone(t *testing.T) {
	ctx := context.Background()
	st := onboardedStore(t)
	m := newTestModel(t, st)

	m = press(t, m, runes("a"))
	if m.view != viewForm {
		t.Fatalf("expected form view, got %v", m.view)
	}
	m = press(t, m,
		runes("Trip to Lisbon"),
		keyTab, runes("2025-07-01"),
		keyTab, runes("✈️"),
		keyTab, runes("l"), runes("l"), runes("l"), runes("l"),
		keyCtrlS,
	)
	if m.view != viewDashboard {
		t.Fatalf("expected dashboard after save, got %v (form err %q)", m.view, m.form.err)
	}
	if m.flash != "Added Trip to Lisbon" {
		t.Fatalf("unexpected flash %q", m.flash)
	}

	ms := st.LoadMilestones(ctx)
	if len(ms) != 2 {
		t.Fatalf("expected birthday + new milestone, got %d", len(ms))
	}
	got := ms[1]
	if got.Title != "Trip to Lisbon" || got.Date != "2025-07-01" || got.Emoji != "✈️" {
		t.Fatalf("unexpected milestone: %+v", got)
	}
	if got.CategoryName() != string(model.CategoryTravel) {
		t.Fatalf("expected Travel category, got %q", got.CategoryName())
	}
	if selectedID(m) != got.ID {
		t.Fatalf("expected new milestone to be selected")
	}
}

func TestAddForm_ValidationErrorKeepsForm(t *testing.T) {
	st := onboardedStore(t)
	m := newTestModel(t, st)

	m = press(t, m, runes("a"), keyTab, runes("2025-07-01"), keyCtrlS)
	if m.view != viewForm {
		t.Fatalf("expected to stay on form, got %v", m.view)
	}
	if m.form.err != "Please enter a title." {
		t.Fatalf("unexpected form error %q", m.form.err)
	}

	m = press(t, m, keyEsc)
	if m.view != viewDashboard {
		t.Fatalf("esc should cancel the form, got %v", m.view)
	}
	if n := len(st.LoadMilestones(context.Background())); n != 1 {
		t.Fatalf("expected no new milestone, got %d", n)
	}
}

func TestEditForm_UpdatesMilestone(t *testing.T) {
	ctx := context.Background()
	st := onboardedStore(t, model.Milestone{
		ID: "m-1", Title: "Launch", Date: "2025-08-01", Emoji: "🚀",
		Category: model.CategoryPtr(model.CategoryWork), CreatedAt: "2025-05-01T00:00:00Z",
	})
	m := newTestModel(t, st)

	m = press(t, m, keyDown)
	if selectedID(m) != "m-1" {
		t.Fatalf("expected m-1 selected, got %q", selectedID(m))
	}
	m = press(t, m, runes("e"))
	if m.view != viewForm || m.form.editingID != "m-1" {
		t.Fatalf("expected edit form for m-1")
	}
	m.form.title.SetValue("Public launch")
	m = press(t, m, keyCtrlS)
	if m.view != viewDashboard {
		t.Fatalf("expected dashboard after save, got %v (err %q)", m.view, m.form.err)
	}

	var found bool
	for _, ms := range st.LoadMilestones(ctx) {
		if ms.ID == "m-1" {
			found = true
			if ms.Title != "Public launch" || ms.CategoryName() != "Work" || ms.CreatedAt != "2025-05-01T00:00:00Z" {
				t.Fatalf("unexpected edited milestone: %+v", ms)
			}
		}
	}
	if !found {
		t.Fatalf("edited milestone missing")
	}
}

func TestDelete_ConfirmRemovesMilestone(t *testing.T) {
	ctx := context.Background()
	st := onboardedStore(t, model.Milestone{
		ID: "m-1", Title: "Launch", Date: "2025-08-01", Emoji: "🚀", CreatedAt: "2025-05-01T00:00:00Z",
	})
	m := newTestModel(t, st)
	m = press(t, m, keyDown, runes("d"))
	if m.modal != modalConfirmDelete {
		t.Fatalf("expected confirm modal")
	}
	if m.confirmFocus != confirmFocusCancel {
		t.Fatalf("expected cancel to be focused by default")
	}
	if out := m.View(); !strings.Contains(out, `Are you sure you want to delete "Launch"?`) {
		t.Fatalf("expected confirm prompt in view:\n%s", out)
	}

	// enter on the default focus cancels.
	m = press(t, m, keyEnter)
	if m.modal != modalNone || len(st.LoadMilestones(ctx)) != 2 {
		t.Fatalf("expected cancel to keep the milestone")
	}

	m = press(t, m, runes("d"), runes("y"))
	if m.modal != modalNone {
		t.Fatalf("expected modal to close")
	}
	ms := st.LoadMilestones(ctx)
	if len(ms) != 1 || ms[0].ID != model.BirthdayMilestoneID {
		t.Fatalf("expected only the birthday milestone left, got %+v", ms)
	}
	if m.flash != "Deleted Launch" {
		t.Fatalf("unexpected flash %q", m.flash)
	}
}

func TestBirthdayMilestone_CannotBeEditedOrDeleted(t *testing.T) {
	st := onboardedStore(t)
	m := newTestModel(t, st)
	if selectedID(m) != model.BirthdayMilestoneID {
		t.Fatalf("expected birthday selected")
	}

	m = press(t, m, runes("e"))
	if m.view != viewDashboard || !m.flashErr {
		t.Fatalf("expected edit to be refused with an error flash")
	}
	m = press(t, m, runes("d"))
	if m.modal != modalNone || !m.flashErr {
		t.Fatalf("expected delete to be refused with an error flash")
	}
}

func TestSettings_UpdatesBirthdayMilestone(t *testing.T) {
	ctx := context.Background()
	st := onboardedStore(t)
	m := newTestModel(t, st)

	m = press(t, m, runes("s"))
	if m.view != viewSettings {
		t.Fatalf("expected settings view")
	}
	if got := m.birthdayInput.Value(); got != "1990-09-15" {
		t.Fatalf("expected current birthday prefilled, got %q", got)
	}
	m.birthdayInput.SetValue("1991-03-02")
	m = press(t, m, keyEnter)
	if m.flash != "Birthday updated!" || m.flashErr {
		t.Fatalf("unexpected flash %q", m.flash)
	}
	if b, _ := st.Birthday(ctx); b != "1991-03-02" {
		t.Fatalf("expected stored birthday updated, got %q", b)
	}

	ms := st.LoadMilestones(ctx)
	if len(ms) == 0 || ms[0].ID != model.BirthdayMilestoneID || ms[0].Date != "2026-03-02" {
		t.Fatalf("expected birthday milestone moved to next anniversary, got %+v", ms)
	}

	m = press(t, m, keyEsc)
	if m.view != viewDashboard {
		t.Fatalf("esc should return to dashboard, got %v", m.view)
	}
}

func TestDetail_OpenAndBack(t *testing.T) {
	st := onboardedStore(t, model.Milestone{
		ID: "m-1", Title: "Launch", Date: "2025-06-15", Emoji: "🚀", CreatedAt: "2025-05-18T09:00:00Z",
	})
	m := newTestModel(t, st)
	m = press(t, m, keyDown, keyEnter)
	if m.view != viewDetail || m.openID != "m-1" {
		t.Fatalf("expected detail view for m-1")
	}
	m = press(t, m, keyEsc)
	if m.view != viewDashboard || selectedID(m) != "m-1" {
		t.Fatalf("expected dashboard with m-1 still selected")
	}
}

func TestClockTick_KeepsSelection(t *testing.T) {
	st := onboardedStore(t,
		model.Milestone{ID: "m-1", Title: "A", Date: "2025-06-15", Emoji: "🎯", CreatedAt: "2025-05-01T00:00:00Z"},
		model.Milestone{ID: "m-2", Title: "B", Date: "2025-07-15", Emoji: "🎯", CreatedAt: "2025-05-01T00:00:00Z"},
	)
	m := newTestModel(t, st)
	m = press(t, m, keyDown, keyDown)
	want := selectedID(m)
	for i := 0; i < reloadEvery+1; i++ {
		next, cmd := m.Update(clockTickMsg(testNow))
		if cmd == nil {
			t.Fatalf("expected tick to reschedule itself")
		}
		m = next.(appModel)
	}
	if got := selectedID(m); got != want {
		t.Fatalf("selection moved across ticks: %q -> %q", want, got)
	}
}
