package tui

import (
	"fmt"
	"io"
	"strings"

	"intime-cli/internal/dashboard"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// milestoneItem is one dashboard card. Rows are recomputed on every clock tick.
type milestoneItem struct {
	row dashboard.Row
}

func (i milestoneItem) FilterValue() string { return i.row.Milestone.Title }
func (i milestoneItem) Title() string {
	return strings.TrimSpace(i.row.Milestone.Emoji + " " + i.row.Milestone.Title)
}

func rowsToItems(rows []dashboard.Row) []list.Item {
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, milestoneItem{row: r})
	}
	return items
}

type cardDelegate struct{}

func (d cardDelegate) Height() int  { return 5 } // 3 inner lines + border top/bottom
func (d cardDelegate) Spacing() int { return 1 }
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	totalW := m.Width()
	if totalW < 12 {
		fmt.Fprint(w, "")
		return
	}
	it, ok := item.(milestoneItem)
	if !ok {
		fmt.Fprint(w, truncateToWidth(fmt.Sprint(item), totalW))
		return
	}

	ms := it.row.Milestone
	selected := index == m.Index()
	accent := categoryAccent(ms.Category)

	card := lipgloss.NewStyle().
		Padding(0, 1, 0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorSurfaceFg)
	if selected {
		card = card.BorderForeground(accent).Background(categorySurface(ms.Category))
	}
	if ms.IsBirthday() {
		card = card.Border(lipgloss.DoubleBorder())
	}
	// Width covers content + padding; the border is drawn outside it.
	padW := card.GetHorizontalPadding()
	innerW := totalW - padW - card.GetHorizontalBorderSize()
	if innerW < 1 {
		innerW = 1
	}
	card = card.Width(innerW + padW)

	titleSt := lipgloss.NewStyle().Bold(true)
	metaSt := lipgloss.NewStyle().Foreground(colorCardMetaFg)
	labelSt := lipgloss.NewStyle().Foreground(accent).Bold(true)

	label := ms.CategoryName()
	if ms.IsBirthday() {
		label = "YOUR LIFELINE"
	}
	title := titleSt.Render(truncateToWidth(it.Title(), innerW-xansi.StringWidth(label)-2))
	line1 := joinEnds(title, labelSt.Render(label), innerW)

	var line2, line3 string
	if it.row.Valid {
		line2 = metaSt.Render(truncateToWidth(it.row.Day+"  ·  "+it.row.Phrase, innerW))
		line3 = lipgloss.NewStyle().Foreground(accent).Render(it.row.Compact)
	} else {
		line2 = metaSt.Render(truncateToWidth("Unreadable date: "+ms.Date, innerW))
		line3 = metaSt.Render("—")
	}

	lines := []string{line1, line2, line3}
	for i := range lines {
		lines[i] = padOrCutANSI(lines[i], innerW)
	}
	fmt.Fprint(w, card.Render(strings.Join(lines, "\n")))
}

// joinEnds places left and right on one line of width w, right-aligned.
func joinEnds(left, right string, w int) string {
	gap := w - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func truncateToWidth(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

func padOrCutANSI(s string, w int) string {
	cur := xansi.StringWidth(s)
	switch {
	case cur < w:
		return s + strings.Repeat(" ", w-cur)
	case cur > w:
		return xansi.Cut(s, 0, w) + "\x1b[0m"
	default:
		return s
	}
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, cardDelegate{}, 0, 0)
	l.Title = title
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("milestone", "milestones")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases.
	l.KeyMap.CursorUp.SetKeys(append(l.KeyMap.CursorUp.Keys(), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(l.KeyMap.CursorDown.Keys(), "ctrl+n")...)
	return l
}
