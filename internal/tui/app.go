package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"intime-cli/internal/countdown"
	"intime-cli/internal/dashboard"
	"intime-cli/internal/model"
	"intime-cli/internal/mutate"
	"intime-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type view int

const (
	viewOnboarding view = iota
	viewDashboard
	viewDetail
	viewForm
	viewSettings
)

type modal int

const (
	modalNone modal = iota
	modalConfirmDelete
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type clockTickMsg time.Time

// reloadEvery is how many clock ticks pass between store re-reads, so edits made
// from the CLI in another terminal show up.
const reloadEvery = 5

type appModel struct {
	ctx   context.Context
	store *store.Store
	log   *zap.Logger
	now   func() time.Time

	width  int
	height int

	view  view
	modal modal
	// returnTo is where the form and settings go back to.
	returnTo view

	milestones []model.Milestone
	birthday   string
	ticks      int

	list     list.Model
	openID   string
	progress progress.Model

	form          milestoneForm
	birthdayInput textinput.Model
	confirmFocus  confirmModalFocus

	flash    string
	flashErr bool
}

func newAppModel(ctx context.Context, st *store.Store, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	m := appModel{
		ctx:   ctx,
		store: st,
		log:   log.Named("tui"),
		now:   now,
		view:  viewDashboard,
	}
	m.list = newList("Milestones", []list.Item{})
	m.progress = progress.New(progress.WithSolidFill(string(defaultColorAccent.Dark)), progress.WithoutPercentage())
	m.birthdayInput = newBirthdayInput()

	if !st.HasCompletedOnboarding(ctx) {
		m.view = viewOnboarding
		m.birthdayInput.SetValue("2000-01-01")
		m.birthdayInput.Focus()
		return m
	}
	m.reload()
	return m
}

func newBirthdayInput() textinput.Model {
	in := textinput.New()
	in.Placeholder = "YYYY-MM-DD (e.g., 1990-05-15)"
	in.CharLimit = 10
	in.Width = 14
	return in
}

func tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func (m appModel) Init() tea.Cmd { return tickClock() }

// reload runs the dashboard mount flow and rebuilds the cards.
func (m *appModel) reload() {
	now := m.now()
	m.milestones = dashboard.Load(m.ctx, m.store, now)
	m.birthday, _ = m.store.Birthday(m.ctx)
	m.refreshRows(now)
}

// refreshRows recomputes countdowns without touching the store.
func (m *appModel) refreshRows(now time.Time) {
	selected := ""
	if it, ok := m.list.SelectedItem().(milestoneItem); ok {
		selected = it.row.Milestone.ID
	}
	m.list.SetItems(rowsToItems(dashboard.Rows(m.milestones, now)))
	if selected != "" {
		m.selectByID(selected)
	}
}

func (m *appModel) selectByID(id string) {
	for i, it := range m.list.Items() {
		if mi, ok := it.(milestoneItem); ok && mi.row.Milestone.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m appModel) openMilestone() (model.Milestone, bool) {
	return mutate.Find(m.milestones, m.openID)
}

func (m *appModel) setFlash(msg string, isErr bool) {
	m.flash = msg
	m.flashErr = isErr
}

func (m *appModel) resize() {
	w := m.width - 2*outerMargin
	if w < 20 {
		w = 20
	}
	h := m.height - headerLines - footerLines
	if h < 5 {
		h = 5
	}
	m.list.SetSize(w, h)
	m.progress.Width = w
	if m.progress.Width > 60 {
		m.progress.Width = 60
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case clockTickMsg:
		m.ticks++
		if m.view != viewOnboarding {
			if m.ticks%reloadEvery == 0 && m.view != viewForm && m.modal == modalNone {
				m.reload()
			} else {
				m.refreshRows(m.now())
			}
		}
		return m, tickClock()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal == modalConfirmDelete {
			return m.updateConfirmDelete(msg)
		}
		switch m.view {
		case viewOnboarding:
			return m.updateOnboarding(msg)
		case viewForm:
			return m.updateForm(msg)
		case viewSettings:
			return m.updateSettings(msg)
		case viewDetail:
			return m.updateDetail(msg)
		default:
			return m.updateDashboard(msg)
		}
	}

	switch m.view {
	case viewForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	case viewOnboarding, viewSettings:
		var cmd tea.Cmd
		m.birthdayInput, cmd = m.birthdayInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.reload()
		return m, nil
	case "a", "n", "+":
		m.startAdd()
		return m, nil
	case "s":
		m.startSettings()
		return m, nil
	case "enter":
		if it, ok := m.list.SelectedItem().(milestoneItem); ok {
			m.openID = it.row.Milestone.ID
			m.view = viewDetail
		}
		return m, nil
	case "e":
		if it, ok := m.list.SelectedItem().(milestoneItem); ok {
			m.openID = it.row.Milestone.ID
			m.startEdit(viewDashboard)
		}
		return m, nil
	case "d", "delete":
		if it, ok := m.list.SelectedItem().(milestoneItem); ok {
			m.openID = it.row.Milestone.ID
			m.startDelete()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "left", "h":
		m.view = viewDashboard
		m.selectByID(m.openID)
		return m, nil
	case "e":
		m.startEdit(viewDetail)
		return m, nil
	case "d", "delete":
		m.startDelete()
		return m, nil
	}
	return m, nil
}

func (m *appModel) startAdd() {
	m.form = newMilestoneForm()
	m.returnTo = viewDashboard
	m.view = viewForm
}

func (m *appModel) startEdit(from view) {
	ms, ok := m.openMilestone()
	if !ok {
		return
	}
	if ms.IsBirthday() {
		m.setFlash("The birthday milestone follows your birthday; change it in settings (s).", true)
		return
	}
	m.form = editMilestoneForm(ms)
	m.returnTo = from
	m.view = viewForm
}

func (m *appModel) startDelete() {
	ms, ok := m.openMilestone()
	if !ok {
		return
	}
	if ms.IsBirthday() {
		m.setFlash("The birthday milestone can't be deleted.", true)
		return
	}
	m.modal = modalConfirmDelete
	m.confirmFocus = confirmFocusCancel
}

func (m *appModel) startSettings() {
	m.birthdayInput = newBirthdayInput()
	m.birthdayInput.SetValue(m.birthday)
	m.birthdayInput.Focus()
	m.returnTo = m.view
	m.view = viewSettings
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = m.returnTo
		return m, nil
	case "ctrl+s":
		return m.saveForm()
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m appModel) saveForm() (tea.Model, tea.Cmd) {
	now := m.now()
	current := m.store.LoadMilestones(m.ctx)

	var (
		saved model.Milestone
		next  []model.Milestone
		err   error
	)
	if m.form.editingID == "" {
		saved, next, err = mutate.Create(current, m.form.createInput(), now)
	} else {
		saved, next, err = mutate.Edit(current, m.form.editingID, m.form.editInput(), now.Location())
	}
	if err != nil {
		m.form.err = formError(err)
		return m, nil
	}
	if err := m.store.SaveMilestones(m.ctx, next); err != nil {
		m.form.err = "Could not save: " + err.Error()
		return m, nil
	}

	m.reload()
	m.openID = saved.ID
	m.view = m.returnTo
	m.selectByID(saved.ID)
	if m.form.editingID == "" {
		m.setFlash("Added "+saved.Title, false)
	} else {
		m.setFlash("Saved "+saved.Title, false)
	}
	return m, nil
}

func formError(err error) string {
	var ve mutate.ValidationError
	if errors.As(err, &ve) {
		switch ve.Field {
		case "title":
			if ve.Reason == "required" {
				return "Please enter a title."
			}
			return "Title must be at most 50 characters."
		case "date":
			return "Please enter a valid date (YYYY-MM-DD)."
		}
	}
	return err.Error()
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n", "ctrl+g":
		m.modal = modalNone
		return m, nil
	case "tab", "shift+tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.deleteOpen()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.deleteOpen()
		}
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m appModel) deleteOpen() (tea.Model, tea.Cmd) {
	m.modal = modalNone
	ms, _ := m.openMilestone()
	next, err := mutate.Delete(m.store.LoadMilestones(m.ctx), m.openID)
	if err != nil {
		m.setFlash(err.Error(), true)
		return m, nil
	}
	if err := m.store.SaveMilestones(m.ctx, next); err != nil {
		m.setFlash("Could not delete: "+err.Error(), true)
		return m, nil
	}
	m.openID = ""
	m.view = viewDashboard
	m.reload()
	m.setFlash("Deleted "+ms.Title, false)
	return m, nil
}

// validateBirthday rejects malformed and future dates. problem is the message to
// show when ok is false.
func validateBirthday(s string, now time.Time) (date string, problem string, ok bool) {
	s = strings.TrimSpace(s)
	b, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return "", "Please enter a valid date (YYYY-MM-DD)", false
	}
	if b.After(now) {
		return "", "Your birthday can't be in the future", false
	}
	return s, "", true
}

func (m appModel) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		now := m.now()
		b, problem, ok := validateBirthday(m.birthdayInput.Value(), now)
		if !ok {
			m.setFlash(problem, true)
			return m, nil
		}
		if err := m.store.UpdateBirthday(m.ctx, b, now); err != nil {
			m.setFlash("Error saving birthday", true)
			return m, nil
		}
		if err := m.store.SetCompletedOnboarding(m.ctx); err != nil {
			m.setFlash("Error saving onboarding", true)
			return m, nil
		}
		m.log.Info("onboarding completed")
		m.birthdayInput.Blur()
		m.flash = ""
		m.view = viewDashboard
		m.reload()
		return m, nil
	}
	var cmd tea.Cmd
	m.birthdayInput, cmd = m.birthdayInput.Update(msg)
	return m, cmd
}

func (m appModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.birthdayInput.Blur()
		m.flash = ""
		m.view = m.returnTo
		return m, nil
	case "enter":
		now := m.now()
		b, problem, ok := validateBirthday(m.birthdayInput.Value(), now)
		if !ok {
			m.setFlash(problem, true)
			return m, nil
		}
		if err := m.store.UpdateBirthday(m.ctx, b, now); err != nil {
			m.setFlash("Error saving birthday", true)
			return m, nil
		}
		m.reload()
		m.setFlash("Birthday updated!", false)
		return m, nil
	}
	var cmd tea.Cmd
	m.birthdayInput, cmd = m.birthdayInput.Update(msg)
	return m, cmd
}

// detailAge returns the age reached on the birthday milestone's date.
func (m appModel) detailAge() (age int, ok bool) {
	if m.birthday == "" {
		return 0, false
	}
	return countdown.AgeFor(m.birthday, m.now())
}
