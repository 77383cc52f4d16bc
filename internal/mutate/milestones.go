package mutate

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"intime-cli/internal/countdown"
	"intime-cli/internal/model"
)

const (
	DefaultEmoji  = "🎯"
	MaxTitleRunes = 50
)

type CreateInput struct {
	Title    string
	Date     string
	Emoji    string
	Category *model.Category
	Note     *string
}

// EditInput fields left nil keep their current value.
type EditInput struct {
	Title    *string
	Date     *string
	Emoji    *string
	Category *model.Category
	Note     *string

	ClearCategory bool
	ClearNote     bool
}

func newMilestoneID() string {
	// v7 ids sort by creation time; fall back to v4 if the clock source fails.
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func normalizeTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ValidationError{Field: "title", Reason: "required"}
	}
	if utf8.RuneCountInString(s) > MaxTitleRunes {
		return "", ValidationError{Field: "title", Reason: "at most 50 characters"}
	}
	return s, nil
}

func normalizeDate(s string, loc *time.Location) (string, error) {
	out, err := countdown.NormalizeDate(s, loc)
	if err != nil {
		return "", ValidationError{Field: "date", Reason: err.Error()}
	}
	return out, nil
}

func trimmedOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

// Find returns the milestone with id.
func Find(ms []model.Milestone, id string) (model.Milestone, bool) {
	id = strings.TrimSpace(id)
	for _, m := range ms {
		if m.ID == id {
			return m, true
		}
	}
	return model.Milestone{}, false
}

// Create validates in, appends a new milestone and returns it with the new list.
// The input list is not modified.
func Create(ms []model.Milestone, in CreateInput, now time.Time) (model.Milestone, []model.Milestone, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return model.Milestone{}, nil, err
	}
	date, err := normalizeDate(in.Date, now.Location())
	if err != nil {
		return model.Milestone{}, nil, err
	}
	emoji := strings.TrimSpace(in.Emoji)
	if emoji == "" {
		emoji = DefaultEmoji
	}

	m := model.Milestone{
		ID:        newMilestoneID(),
		Title:     title,
		Date:      date,
		Emoji:     emoji,
		Category:  in.Category,
		Note:      trimmedOrNil(in.Note),
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
	for Contains(ms, m.ID) {
		m.ID = uuid.NewString()
	}

	out := make([]model.Milestone, 0, len(ms)+1)
	out = append(out, ms...)
	out = append(out, m)
	return m, out, nil
}

// Edit replaces the milestone with id in place. ID and CreatedAt never change.
func Edit(ms []model.Milestone, id string, in EditInput, loc *time.Location) (model.Milestone, []model.Milestone, error) {
	id = strings.TrimSpace(id)
	if id == model.BirthdayMilestoneID {
		return model.Milestone{}, nil, ReservedError{ID: id}
	}
	idx := -1
	for i := range ms {
		if ms[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Milestone{}, nil, NotFoundError{Kind: "milestone", ID: id}
	}

	m := ms[idx]
	if in.Title != nil {
		title, err := normalizeTitle(*in.Title)
		if err != nil {
			return model.Milestone{}, nil, err
		}
		m.Title = title
	}
	if in.Date != nil {
		date, err := normalizeDate(*in.Date, loc)
		if err != nil {
			return model.Milestone{}, nil, err
		}
		m.Date = date
	}
	if in.Emoji != nil {
		if e := strings.TrimSpace(*in.Emoji); e != "" {
			m.Emoji = e
		}
	}
	switch {
	case in.ClearCategory:
		m.Category = nil
	case in.Category != nil:
		m.Category = model.CategoryPtr(*in.Category)
	}
	switch {
	case in.ClearNote:
		m.Note = nil
	case in.Note != nil:
		m.Note = trimmedOrNil(in.Note)
	}

	out := make([]model.Milestone, len(ms))
	copy(out, ms)
	out[idx] = m
	return m, out, nil
}

// Delete removes the milestone with id.
func Delete(ms []model.Milestone, id string) ([]model.Milestone, error) {
	id = strings.TrimSpace(id)
	if id == model.BirthdayMilestoneID {
		return nil, ReservedError{ID: id}
	}
	out := make([]model.Milestone, 0, len(ms))
	found := false
	for _, m := range ms {
		if m.ID == id {
			found = true
			continue
		}
		out = append(out, m)
	}
	if !found {
		return nil, NotFoundError{Kind: "milestone", ID: id}
	}
	return out, nil
}

func Contains(ms []model.Milestone, id string) bool {
	_, ok := Find(ms, id)
	return ok
}
