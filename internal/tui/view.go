package tui

import (
	"fmt"
	"strings"

	"intime-cli/internal/countdown"
	"intime-cli/internal/dashboard"
	"intime-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	outerMargin = 2
	headerLines = 4
	footerLines = 2
)

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewOnboarding:
		body = m.renderOnboarding()
	case viewDetail:
		body = m.renderDetail()
	case viewForm:
		body = m.renderForm()
	case viewSettings:
		body = m.renderSettings()
	default:
		body = m.renderDashboard()
	}

	if m.modal == modalConfirmDelete {
		ms, _ := m.openMilestone()
		modal := renderConfirmModal(m.contentWidth(), "Delete Milestone",
			fmt.Sprintf("Are you sure you want to delete %q?", ms.Title),
			"Delete", "Cancel", m.confirmFocus)
		body = body + "\n\n" + modal
	}

	out := lipgloss.NewStyle().PaddingLeft(outerMargin).Render(body)
	return "\n" + out
}

func (m appModel) contentWidth() int {
	w := m.width - 2*outerMargin
	if w < 20 {
		return 60
	}
	return w
}

func (m appModel) header(subtitle string) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("⏱ InTime")
	return title + "\n" + styleMuted().Render(subtitle) + "\n"
}

func (m appModel) footer(help string) string {
	var lines []string
	if m.flash != "" {
		st := lipgloss.NewStyle().Foreground(colorSuccess)
		if m.flashErr {
			st = lipgloss.NewStyle().Foreground(colorError)
		}
		lines = append(lines, st.Render(m.flash))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, styleMuted().Render(truncateToWidth(help, m.contentWidth())))
	return strings.Join(lines, "\n")
}

func (m appModel) renderDashboard() string {
	head := m.header("Every moment is precious. Use it wisely.")
	if len(m.list.Items()) == 0 {
		empty := strings.Join([]string{
			"✨",
			lipgloss.NewStyle().Bold(true).Render("Time to begin"),
			styleMuted().Render("Add what matters to you and watch how much time you have left"),
			"",
			lipgloss.NewStyle().Foreground(colorAccent).Render("+ Add Milestone (a)"),
		}, "\n")
		return head + "\n" + empty + "\n\n" + m.footer("a: add   s: settings   q: quit")
	}
	return head + "\n" + m.list.View() + "\n" + m.footer("↑/↓: move   enter: open   a: add   e: edit   d: delete   s: settings   r: reload   q: quit")
}

func (m appModel) renderDetail() string {
	ms, ok := m.openMilestone()
	if !ok {
		return m.header("Milestone not found") + "\n" + m.footer("esc: back")
	}
	now := m.now()
	row := dashboard.RowFor(ms, now)
	w := m.contentWidth()
	accent := categoryAccent(ms.Category)

	var b strings.Builder
	b.WriteString(m.header(categoryLabel(ms)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(ms.Emoji + "  " + ms.Title))
	b.WriteString("\n")
	if row.Valid {
		b.WriteString(styleMuted().Render(row.Day))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(colorError).Render("Unreadable date: " + ms.Date))
	}
	b.WriteString("\n\n")

	if ms.IsBirthday() {
		if age, ok := m.detailAge(); ok {
			ageLine := fmt.Sprintf("You are %d · turning %d", age, age+1)
			b.WriteString(lipgloss.NewStyle().Foreground(accent).Render(ageLine))
			b.WriteString("\n\n")
		}
	}

	b.WriteString(renderCountdownBlocks(countdown.Detailed(row.Remaining), accent))
	b.WriteString("\n\n")

	mot := countdown.MotivationFor(row.DaysLeft)
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(mot.Main))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(mot.Sub))
	b.WriteString("\n\n")

	bar := m.progress
	bar.FullColor = progressColor(ms.Category)
	b.WriteString(bar.ViewAs(row.Progress))
	b.WriteString(styleMuted().Render(fmt.Sprintf("  %d%%", int(row.Progress*100))))
	b.WriteString("\n")

	if note := renderNote(ms.NoteText(), w); note != "" {
		b.WriteString("\n")
		b.WriteString(note)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer("esc: back   e: edit   d: delete   q: quit"))
	return b.String()
}

func categoryLabel(ms model.Milestone) string {
	if ms.IsBirthday() {
		return "Your lifeline"
	}
	if c := ms.CategoryName(); c != "" {
		return c
	}
	return "Milestone"
}

func progressColor(c *model.Category) string {
	if monochrome() {
		return "#9E9E9E"
	}
	if c != nil {
		if p, ok := categoryColors[*c]; ok {
			return p.accent
		}
	}
	return uncategorizedAccent
}

// renderCountdownBlocks lays the detailed countdown out as boxed value/label pairs.
func renderCountdownBlocks(blocks []countdown.Block, accent lipgloss.TerminalColor) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Align(lipgloss.Center)
	valueSt := lipgloss.NewStyle().Bold(true)

	cells := make([]string, 0, len(blocks)*2)
	for i, bl := range blocks {
		if i > 0 {
			cells = append(cells, " ")
		}
		cells = append(cells, box.Render(valueSt.Render(bl.Value)+"\n"+styleMuted().Render(bl.Label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m appModel) renderForm() string {
	return m.header("Add what matters to you") + "\n" + m.form.view(m.contentWidth())
}

func (m appModel) renderSettings() string {
	lines := []string{
		m.header("Settings"),
		lipgloss.NewStyle().Bold(true).Render("Birthday"),
		styleMuted().Render("Edit your birthday to keep track of how much time you have left"),
		"",
		m.birthdayInput.View(),
		"",
		m.footer("enter: save birthday   esc: back"),
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderOnboarding() string {
	lines := []string{
		m.header("Welcome"),
		"🎂",
		lipgloss.NewStyle().Bold(true).Render("Tell us your birthday"),
		styleMuted().Render("We'll show you every day exactly how much time you have left."),
		styleMuted().Render("This is your personal countdown to remind you what matters."),
		"",
		m.birthdayInput.View(),
		"",
		styleMuted().Render("Your birthday will be a special milestone"),
		"",
		m.footer("enter: continue   esc: quit"),
	}
	return strings.Join(lines, "\n")
}
