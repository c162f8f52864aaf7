package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
	"github.com/cwarden/planer/internal/config"
	"github.com/cwarden/planer/internal/logger"
	"github.com/cwarden/planer/internal/parser"
	"github.com/cwarden/planer/internal/planner"
	"github.com/cwarden/planer/internal/storage"
)

const messageTimeout = 3 * time.Second

// Options wires the model to the store on disk. Both fields are optional:
// without Load there is no reload, without Watcher no automatic reload.
type Options struct {
	Load    func() ([]appointment.Appointment, error)
	Watcher *storage.FileWatcher
	Now     func() time.Time
}

type Model struct {
	config  *config.Config
	planner *planner.Planner
	load    func() ([]appointment.Appointment, error)
	watcher *storage.FileWatcher
	now     func() time.Time

	keys       keyMap
	dialogKeys dialogKeyMap
	help       help.Model
	styles     Styles

	form    *dialogForm
	prompt  *prompt
	confirm *deleteConfirm

	// selected indexes the appointments of selectedDay in display order.
	selected    int
	selectedDay calendar.Date

	width       int
	height      int
	showHelp    bool
	quitPending bool

	message    string
	messageErr bool
	messageSeq int
}

type fileChangedMsg struct {
	event storage.FileChangeEvent
}

type clearMessageMsg struct {
	seq int
}

func NewModel(cfg *config.Config, p *planner.Planner, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Model{
		config:      cfg,
		planner:     p,
		load:        opts.Load,
		watcher:     opts.Watcher,
		now:         opts.Now,
		keys:        newKeyMap(cfg.KeyBindings),
		dialogKeys:  newDialogKeyMap(),
		help:        help.New(),
		styles:      StylesFromConfig(cfg.Colors),
		selectedDay: p.State().Anchor,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		return fileChangedMsg{event: <-w.Events()}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clearMessageMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
		return m, nil

	case fileChangedMsg:
		logger.Debug("store file changed", "path", msg.event.Path)
		return m, tea.Batch(m.reloadFromDisk(false), m.waitForChange())
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.prompt != nil {
		return m, m.prompt.update(msg)
	}
	if m.form != nil {
		_, cmd := m.form.update(m.planner.State().Focus, msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.viewHelp()
	}

	var body string
	switch {
	case m.confirm != nil:
		body = m.viewConfirm()
	case m.form != nil:
		body = m.viewDialog()
	default:
		switch m.planner.State().Depth {
		case planner.DepthYear:
			body = m.viewYear()
		case planner.DepthWeek:
			body = m.viewWeek()
		default:
			body = m.viewMonth()
		}
	}

	bottom := m.renderStatusBar()
	if m.prompt != nil {
		bottom = m.prompt.view()
	}
	return body + "\n" + bottom
}

// handle feeds ev to the planner, reporting errors on the status bar.
func (m *Model) handle(ev planner.Event) (planner.Outcome, tea.Cmd, bool) {
	out, err := m.planner.Handle(ev)
	m.syncSelection()
	if err != nil {
		logger.Debug("event rejected", "event", fmt.Sprintf("%T", ev), "err", err)
		return out, m.showError(err), false
	}
	return out, nil, true
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.prompt != nil {
		return m.handlePromptKeys(msg)
	}
	if m.form != nil {
		return m.handleDialogKeys(msg)
	}

	if !key.Matches(msg, m.keys.Quit) {
		m.quitPending = false
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Goto):
		m.prompt = newPrompt(promptGoto)
		cmd = textinput.Blink

	case key.Matches(msg, m.keys.QuickAdd):
		m.prompt = newPrompt(promptQuickAdd)
		cmd = textinput.Blink

	case key.Matches(msg, m.keys.New):
		_, cmd, _ = m.handle(planner.AddAppointment{Date: m.planner.State().Anchor})
		cmd = tea.Batch(cmd, m.openForm())

	case key.Matches(msg, m.keys.Edit):
		a, ok := m.selectedAppointment()
		if !ok {
			return m, m.showMessage("No appointment selected")
		}
		var opened bool
		if _, cmd, opened = m.handle(planner.EditAppointment{ID: a.ID}); opened {
			cmd = m.openForm()
		}

	case key.Matches(msg, m.keys.Delete):
		a, ok := m.selectedAppointment()
		if !ok {
			return m, m.showMessage("No appointment selected")
		}
		if m.config.ConfirmDelete {
			m.confirm = newDeleteConfirm(a)
			return m, m.confirm.form.Init()
		}
		cmd = m.deleteAppointment(a.ID)

	case key.Matches(msg, m.keys.Reload):
		cmd = m.reloadFromDisk(true)

	case key.Matches(msg, m.keys.Today):
		_, cmd, _ = m.handle(planner.Today{})
	case key.Matches(msg, m.keys.PrevDay):
		_, cmd, _ = m.handle(planner.MoveDays{Days: -1})
	case key.Matches(msg, m.keys.NextDay):
		_, cmd, _ = m.handle(planner.MoveDays{Days: 1})
	case key.Matches(msg, m.keys.PrevWeek):
		_, cmd, _ = m.handle(planner.MoveDays{Days: -7})
	case key.Matches(msg, m.keys.NextWeek):
		_, cmd, _ = m.handle(planner.MoveDays{Days: 7})

	case key.Matches(msg, m.keys.PrevItem):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.NextItem):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.ZoomIn, m.keys.Right):
		_, cmd, _ = m.handle(planner.Key{Code: planner.KeyRight})
	case key.Matches(msg, m.keys.ZoomOut, m.keys.Left):
		_, cmd, _ = m.handle(planner.Key{Code: planner.KeyLeft})
	case key.Matches(msg, m.keys.Up):
		_, cmd, _ = m.handle(planner.Key{Code: planner.KeyUp})
	case key.Matches(msg, m.keys.Down):
		_, cmd, _ = m.handle(planner.Key{Code: planner.KeyDown})

	case key.Matches(msg, m.keys.Year):
		_, cmd, _ = m.handle(planner.SetDepth{Depth: planner.DepthYear})
	case key.Matches(msg, m.keys.Month):
		_, cmd, _ = m.handle(planner.SetDepth{Depth: planner.DepthMonth})
	case key.Matches(msg, m.keys.Week):
		_, cmd, _ = m.handle(planner.SetDepth{Depth: planner.DepthWeek})
	}

	return m, cmd
}

// quit saves through the planner. When the save fails the user is told
// and a second quit leaves without saving.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.quitPending {
		logger.Warn("quitting with unsaved changes")
		return m, tea.Quit
	}
	out, err := m.planner.Handle(planner.WindowClose{})
	if err != nil {
		m.quitPending = true
		return m, m.showError(fmt.Errorf("%w; quit again to discard changes", err))
	}
	if out.Quit {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = nil
		return m, nil

	case tea.KeyEnter:
		p := m.prompt
		m.prompt = nil
		text := strings.TrimSpace(p.input.Value())
		if text == "" {
			return m, nil
		}
		if p.kind == promptGoto {
			_, cmd, _ := m.handle(planner.Goto{Text: text})
			return m, cmd
		}
		return m, m.quickAdd(text)

	case tea.KeyCtrlC:
		m.prompt = nil
		return m.quit()
	}

	return m, m.prompt.update(msg)
}

// quickAdd parses free text into a draft and opens the dialog on it for
// review.
func (m *Model) quickAdd(text string) tea.Cmd {
	res, err := parser.New(m.now()).Parse(text)
	if err != nil {
		return m.showError(err)
	}
	if _, cmd, ok := m.handle(planner.AddAppointment{Date: res.Date, Description: res.Text}); !ok {
		return cmd
	}
	return m.openForm()
}

func (m *Model) openForm() tea.Cmd {
	if !planner.Open(m.planner.State().Dialog) {
		return nil
	}
	m.form = newDialogForm(m.planner.State())
	return textinput.Blink
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.planner.State()

	switch {
	case key.Matches(msg, m.dialogKeys.Cancel):
		out, cmd, _ := m.handle(planner.Key{Code: planner.KeyEscape})
		m.form = nil
		if out.Reloaded {
			cmd = tea.Batch(cmd, m.showMessage("Reloaded changes from disk"))
		}
		return m, cmd

	case key.Matches(msg, m.dialogKeys.Next):
		m.planner.Handle(planner.Key{Code: planner.KeyTab})
		return m, m.form.focus(m.planner.State().Focus)

	case key.Matches(msg, m.dialogKeys.Prev):
		m.planner.Handle(planner.Key{Code: planner.KeyShiftTab})
		return m, m.form.focus(m.planner.State().Focus)

	case key.Matches(msg, m.dialogKeys.Submit):
		return m, m.submit()

	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	}

	if st.Focus == planner.FieldPriority {
		switch {
		case key.Matches(msg, m.dialogKeys.Raise):
			m.planner.Handle(planner.DialogPriority{Priority: shiftPriority(st.Draft.Priority, -1)})
		case key.Matches(msg, m.dialogKeys.Lower):
			m.planner.Handle(planner.DialogPriority{Priority: shiftPriority(st.Draft.Priority, 1)})
		}
		return m, nil
	}

	ev, cmd := m.form.update(st.Focus, msg)
	if ev != nil {
		m.planner.Handle(ev)
	}
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	_, err := m.planner.Handle(planner.DialogSubmit{})
	m.syncSelection()

	var verr *planner.ValidationError
	if errors.As(err, &verr) {
		return m.showError(err)
	}
	m.form = nil
	if err != nil {
		return m.showError(err)
	}
	return m.showMessage("Saved")
}

func (m *Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.confirm = nil
		return m, nil
	}

	form, cmd := m.confirm.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm.form = f
	}

	switch m.confirm.form.State {
	case huh.StateCompleted:
		c := m.confirm
		m.confirm = nil
		if c.confirmed {
			return m, tea.Batch(cmd, m.deleteAppointment(c.id))
		}
		return m, cmd
	case huh.StateAborted:
		m.confirm = nil
	}
	return m, cmd
}

func (m *Model) deleteAppointment(id int) tea.Cmd {
	_, cmd, ok := m.handle(planner.DeleteAppointment{ID: id})
	if !ok {
		return cmd
	}
	return m.showMessage("Deleted")
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.form != nil || m.prompt != nil {
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	var delta int
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		delta = -1
	case tea.MouseButtonWheelDown:
		delta = 1
	default:
		return nil
	}
	_, cmd, _ := m.handle(planner.Wheel{Delta: delta, Modifier: msg.Ctrl})
	return cmd
}

// reloadFromDisk reads the store file back and hands it to the planner,
// which decides whether the change can be applied now.
func (m *Model) reloadFromDisk(manual bool) tea.Cmd {
	if m.load == nil {
		return nil
	}
	if !manual && !m.config.AutoReload {
		return nil
	}

	items, err := m.load()
	if errors.Is(err, appointment.ErrNoStore) {
		logger.Warn("store file disappeared, keeping appointments in memory")
		return m.showMessage("Store file is missing")
	}
	if err != nil {
		logger.Error("reload failed", "err", err)
		return m.showError(err)
	}

	out, cmd, ok := m.handle(planner.Reload{Items: items})
	switch {
	case !ok:
		return cmd
	case out.Reloaded:
		return m.showMessage("Reloaded changes from disk")
	case out.ReloadDeferred:
		return m.showMessage("File changed on disk, reloading after the dialog")
	case manual && m.planner.Store().Dirty():
		return m.showMessage("Unsaved changes, not reloaded")
	}
	return nil
}

// dayAppointments returns the appointments on d in display order: timed
// ones by clock, then by priority.
func (m *Model) dayAppointments(d calendar.Date) []appointment.Appointment {
	return sortForDisplay(m.planner.Store().FindByDate(d))
}

func sortForDisplay(items []appointment.Appointment) []appointment.Appointment {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		return a.Priority < b.Priority
	})
	return items
}

func (m *Model) selectedAppointment() (appointment.Appointment, bool) {
	items := m.dayAppointments(m.planner.State().Anchor)
	if m.selected < 0 || m.selected >= len(items) {
		return appointment.Appointment{}, false
	}
	return items[m.selected], true
}

func (m *Model) moveSelection(n int) {
	items := m.dayAppointments(m.planner.State().Anchor)
	if len(items) == 0 {
		m.selected = 0
		return
	}
	m.selected = (m.selected + n + len(items)) % len(items)
}

// syncSelection resets the selection when the anchor moved to another day
// and keeps it in range after deletions.
func (m *Model) syncSelection() {
	anchor := m.planner.State().Anchor
	if !anchor.SameDay(m.selectedDay) {
		m.selectedDay = anchor
		m.selected = 0
		return
	}
	if n := len(m.planner.Store().FindByDate(anchor)); m.selected >= n {
		m.selected = max(0, n-1)
	}
}

func (m *Model) showMessage(msg string) tea.Cmd {
	m.message = msg
	m.messageErr = false
	m.messageSeq++
	seq := m.messageSeq
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return clearMessageMsg{seq: seq}
	})
}

func (m *Model) showError(err error) tea.Cmd {
	cmd := m.showMessage(errorMessage(err))
	m.messageErr = true
	return cmd
}

func errorMessage(err error) string {
	var verr *planner.ValidationError
	if errors.As(err, &verr) {
		fields := make([]string, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = f.Field.String()
		}
		return "Invalid " + strings.Join(fields, ", ")
	}
	var ioErr *storage.IOError
	if errors.As(err, &ioErr) {
		return "Save failed: " + err.Error()
	}
	return err.Error()
}
