package tui

import (
	"strings"

	"intime-cli/internal/model"
	"intime-cli/internal/mutate"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDate
	fieldEmoji
	fieldCategory
	fieldNote
	formFieldCount
)

// categoryChoices is the cycle order for the category picker; "" means none.
var categoryChoices = append([]model.Category{""}, model.Categories...)

// milestoneForm backs both add and edit. editingID is empty when adding.
type milestoneForm struct {
	editingID string

	title    textinput.Model
	date     textinput.Model
	emoji    textinput.Model
	category int
	note     textarea.Model

	focus formField
	err   string
}

func newMilestoneForm() milestoneForm {
	f := milestoneForm{}

	f.title = textinput.New()
	f.title.Placeholder = "What are you counting down to?"
	f.title.CharLimit = mutate.MaxTitleRunes
	f.title.Width = 40

	f.date = textinput.New()
	f.date.Placeholder = "YYYY-MM-DD or YYYY-MM-DD HH:MM"
	f.date.CharLimit = 40
	f.date.Width = 30

	f.emoji = textinput.New()
	f.emoji.Placeholder = mutate.DefaultEmoji
	f.emoji.CharLimit = 16
	f.emoji.Width = 8

	f.note = textarea.New()
	f.note.Placeholder = "Notes (markdown)…"
	f.note.CharLimit = 0
	f.note.ShowLineNumbers = false
	f.note.SetWidth(60)
	f.note.SetHeight(4)

	f.setFocus(fieldTitle)
	return f
}

func editMilestoneForm(ms model.Milestone) milestoneForm {
	f := newMilestoneForm()
	f.editingID = ms.ID
	f.title.SetValue(ms.Title)
	f.date.SetValue(ms.Date)
	f.emoji.SetValue(ms.Emoji)
	f.note.SetValue(ms.NoteText())
	for i, c := range categoryChoices {
		if string(c) == ms.CategoryName() {
			f.category = i
		}
	}
	return f
}

func (f *milestoneForm) setFocus(field formField) {
	f.focus = field
	f.title.Blur()
	f.date.Blur()
	f.emoji.Blur()
	f.note.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldDate:
		f.date.Focus()
	case fieldEmoji:
		f.emoji.Focus()
	case fieldNote:
		f.note.Focus()
	}
}

func (f *milestoneForm) next() { f.setFocus((f.focus + 1) % formFieldCount) }
func (f *milestoneForm) prev() { f.setFocus((f.focus + formFieldCount - 1) % formFieldCount) }

func (f milestoneForm) selectedCategory() *model.Category {
	c := categoryChoices[f.category]
	if c == "" {
		return nil
	}
	return model.CategoryPtr(c)
}

func (f milestoneForm) createInput() mutate.CreateInput {
	note := f.note.Value()
	return mutate.CreateInput{
		Title:    f.title.Value(),
		Date:     f.date.Value(),
		Emoji:    f.emoji.Value(),
		Category: f.selectedCategory(),
		Note:     &note,
	}
}

// editInput sends every field: the form always shows the full milestone.
func (f milestoneForm) editInput() mutate.EditInput {
	title := f.title.Value()
	date := f.date.Value()
	emoji := f.emoji.Value()
	note := f.note.Value()
	in := mutate.EditInput{
		Title: &title,
		Date:  &date,
		Emoji: &emoji,
		Note:  &note,
	}
	if c := f.selectedCategory(); c != nil {
		in.Category = c
	} else {
		in.ClearCategory = true
	}
	return in
}

// update handles in-form keys. Save/cancel are handled by the caller.
func (f milestoneForm) update(msg tea.Msg) (milestoneForm, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			if km.String() == "down" && f.focus == fieldNote {
				break
			}
			f.next()
			return f, nil
		case "shift+tab", "up":
			if km.String() == "up" && f.focus == fieldNote {
				break
			}
			f.prev()
			return f, nil
		case "enter":
			if f.focus != fieldNote {
				f.next()
				return f, nil
			}
		}
		if f.focus == fieldCategory {
			switch km.String() {
			case "left", "h":
				f.category = (f.category + len(categoryChoices) - 1) % len(categoryChoices)
			case "right", "l", " ":
				f.category = (f.category + 1) % len(categoryChoices)
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	case fieldEmoji:
		f.emoji, cmd = f.emoji.Update(msg)
	case fieldNote:
		f.note, cmd = f.note.Update(msg)
	}
	return f, cmd
}

func (f milestoneForm) view(width int) string {
	labelSt := lipgloss.NewStyle().Width(10).Foreground(colorMuted)
	focusSt := lipgloss.NewStyle().Width(10).Foreground(colorAccent).Bold(true)
	label := func(field formField, s string) string {
		if f.focus == field {
			return focusSt.Render(s)
		}
		return labelSt.Render(s)
	}

	cat := string(categoryChoices[f.category])
	catSt := lipgloss.NewStyle().Foreground(categoryAccent(f.selectedCategory())).Bold(true)
	if cat == "" {
		cat = "None"
		catSt = styleMuted()
	}
	catView := "‹ " + catSt.Render(cat) + " ›"

	heading := "New milestone"
	if f.editingID != "" {
		heading = "Edit milestone"
	}

	rows := []string{
		lipgloss.NewStyle().Bold(true).Render(heading),
		"",
		label(fieldTitle, "Title") + f.title.View(),
		label(fieldDate, "Date") + f.date.View(),
		label(fieldEmoji, "Emoji") + f.emoji.View(),
		label(fieldCategory, "Category") + catView,
		label(fieldNote, "Note"),
		f.note.View(),
	}
	if f.err != "" {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(colorError).Render(f.err))
	}
	rows = append(rows, "", styleMuted().Render(truncateToWidth("tab/shift+tab: move   ←/→: category   ctrl+s: save   esc: cancel", width)))
	return strings.Join(rows, "\n")
}
