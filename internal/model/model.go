package model

import "strings"

// BirthdayMilestoneID is reserved for the milestone synthesized from the stored birth date.
const BirthdayMilestoneID = "birthday-milestone"

type Category string

const (
	CategoryPersonal     Category = "Personal"
	CategoryRelationship Category = "Relationship"
	CategoryWork         Category = "Work"
	CategoryTravel       Category = "Travel"
	CategoryGoal         Category = "Goal"
)

var Categories = []Category{
	CategoryPersonal,
	CategoryRelationship,
	CategoryWork,
	CategoryTravel,
	CategoryGoal,
}

// ParseCategory matches case-insensitively. An empty string yields ("", true): no category.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

type Milestone struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Date     string    `json:"date" yaml:"date"` // YYYY-MM-DD or RFC3339
	Emoji    string    `json:"emoji" yaml:"emoji"`
	Category *Category `json:"category,omitempty" yaml:"category,omitempty"`
	Note     *string   `json:"note,omitempty" yaml:"note,omitempty"`

	// CreatedAt is an RFC3339 timestamp. Kept as a string so blobs written by
	// other clients round-trip untouched.
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

func (m Milestone) IsBirthday() bool {
	return m.ID == BirthdayMilestoneID
}

func (m Milestone) CategoryName() string {
	if m.Category == nil {
		return ""
	}
	return string(*m.Category)
}

func (m Milestone) NoteText() string {
	if m.Note == nil {
		return ""
	}
	return *m.Note
}

// TimeRemaining is derived from (target, now) on every read and never persisted.
type TimeRemaining struct {
	Years   int `json:"years" yaml:"years"`
	Days    int `json:"days" yaml:"days"`
	Hours   int `json:"hours" yaml:"hours"`
	Minutes int `json:"minutes" yaml:"minutes"`
	Seconds int `json:"seconds" yaml:"seconds"`

	// Total is the remaining milliseconds; zero once the target has passed.
	Total int64 `json:"total" yaml:"total"`
}

func (r TimeRemaining) Passed() bool {
	return r.Total <= 0
}

func CategoryPtr(c Category) *Category { return &c }

func StringPtr(s string) *string { return &s }
