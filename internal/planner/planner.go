// Package planner is the navigation and dialog state machine. A Planner
// owns the view state and drives the appointment store; it is not safe
// for concurrent use and is meant to be fed events from one loop.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
	"github.com/cwarden/planer/internal/logger"
	"github.com/cwarden/planer/internal/parser"
)

// ViewState is everything the view needs besides the store.
type ViewState struct {
	// Anchor is the selected day. The visible unit is the year, month or
	// week containing it.
	Anchor calendar.Date
	Depth  Depth
	Dialog Dialog
	Draft  Draft
	Focus  Field
	// Invalid holds the field errors of the last rejected submit.
	Invalid *ValidationError
}

type Options struct {
	Depth           Depth
	DefaultPriority appointment.Priority
	// WarningDays is how many days before the date a new draft's warning
	// falls.
	WarningDays int
	Now         func() time.Time
}

// Outcome reports side effects of an event beyond the view state.
type Outcome struct {
	Saved          bool
	Reloaded       bool
	ReloadDeferred bool
	Quit           bool
}

type Planner struct {
	store   *appointment.Store
	opts    Options
	state   ViewState
	pending *Reload
}

func New(store *appointment.Store, opts Options) *Planner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WarningDays < 0 {
		opts.WarningDays = 0
	}
	p := &Planner{store: store, opts: opts}
	p.state = ViewState{
		Anchor: p.today(),
		Depth:  opts.Depth,
		Dialog: Idle{},
		Focus:  FieldDescription,
	}
	return p
}

func (p *Planner) State() ViewState {
	return p.state
}

func (p *Planner) Store() *appointment.Store {
	return p.store
}

func (p *Planner) today() calendar.Date {
	return calendar.FromTime(p.opts.Now()).DateOnly()
}

// Handle processes one event to completion. Navigation is ignored while
// a dialog is open. Errors leave the view state as it was, except that a
// rejected submit records its field errors.
func (p *Planner) Handle(ev Event) (Outcome, error) {
	dialogOpen := Open(p.state.Dialog)

	switch e := ev.(type) {
	case Increment:
		return Outcome{}, p.navigate(dialogOpen, func() error { return p.step(1) })
	case Decrement:
		return Outcome{}, p.navigate(dialogOpen, func() error { return p.step(-1) })
	case Wheel:
		return Outcome{}, p.navigate(dialogOpen, func() error { return p.wheel(e) })
	case Key:
		return p.key(e.Code, dialogOpen)
	case MoveDays:
		return Outcome{}, p.navigate(dialogOpen, func() error { return p.moveAnchor(p.state.Anchor.AddDays(e.Days)) })
	case Today:
		return Outcome{}, p.navigate(dialogOpen, func() error {
			p.state.Anchor = p.today()
			return nil
		})
	case Goto:
		return Outcome{}, p.navigate(dialogOpen, func() error { return p.gotoText(e.Text) })
	case SetDepth:
		return Outcome{}, p.navigate(dialogOpen, func() error {
			p.state.Depth = e.Depth
			return nil
		})

	case AddAppointment:
		p.openAdd(e.Date, e.Description)
		return Outcome{}, nil
	case EditAppointment:
		return Outcome{}, p.openEdit(e.ID)
	case DeleteAppointment:
		return p.delete(e.ID)

	case DialogDate:
		p.editDraft(dialogOpen, func(d *Draft) { d.SetDate(e.Text) })
	case DialogWarning:
		p.editDraft(dialogOpen, func(d *Draft) { d.SetWarning(e.Text) })
	case DialogTags:
		p.editDraft(dialogOpen, func(d *Draft) { d.Tags = e.Text })
	case DialogDescription:
		p.editDraft(dialogOpen, func(d *Draft) { d.Description = e.Text })
	case DialogPriority:
		p.editDraft(dialogOpen, func(d *Draft) { d.Priority = e.Priority })
	case DialogSubmit:
		return p.submit()
	case DialogCancel:
		return p.cancel()

	case Reload:
		return p.reload(e)
	case WindowClose:
		if err := p.store.Save(); err != nil {
			return Outcome{}, err
		}
		return Outcome{Saved: true, Quit: true}, nil

	default:
		return Outcome{}, fmt.Errorf("unhandled event %T", ev)
	}
	return Outcome{}, nil
}

func (p *Planner) navigate(dialogOpen bool, fn func() error) error {
	if dialogOpen {
		return nil
	}
	return fn()
}

func (p *Planner) step(n int) error {
	return p.moveAnchor(p.state.Depth.Step(p.state.Anchor, n))
}

// moveAnchor applies the result of date arithmetic; a failed move leaves
// the anchor where it was.
func (p *Planner) moveAnchor(d calendar.Date, err error) error {
	if err != nil {
		return err
	}
	p.state.Anchor = d
	return nil
}

func (p *Planner) wheel(w Wheel) error {
	switch {
	case w.Delta == 0:
		return nil
	case w.Modifier && w.Delta < 0:
		p.state.Depth = p.state.Depth.ZoomIn()
		return nil
	case w.Modifier:
		p.state.Depth = p.state.Depth.ZoomOut()
		return nil
	case w.Delta < 0:
		return p.step(-1)
	default:
		return p.step(1)
	}
}

func (p *Planner) key(code KeyCode, dialogOpen bool) (Outcome, error) {
	switch code {
	case KeyTab:
		if dialogOpen {
			p.state.Focus = p.state.Focus.Next()
		}
	case KeyShiftTab:
		if dialogOpen {
			p.state.Focus = p.state.Focus.Prev()
		}
	case KeyEscape:
		if dialogOpen {
			return p.cancel()
		}
	case KeyUp:
		return Outcome{}, p.navigate(dialogOpen, func() error { return p.step(-1) })
	case KeyDown:
		return Outcome{}, p.navigate(dialogOpen, func() error { return p.step(1) })
	case KeyLeft:
		return Outcome{}, p.navigate(dialogOpen, func() error {
			p.state.Depth = p.state.Depth.ZoomOut()
			return nil
		})
	case KeyRight:
		return Outcome{}, p.navigate(dialogOpen, func() error {
			p.state.Depth = p.state.Depth.ZoomIn()
			return nil
		})
	}
	return Outcome{}, nil
}

func (p *Planner) gotoText(text string) error {
	d, err := parser.New(p.opts.Now()).ParseDate(text)
	if err != nil {
		return fmt.Errorf("goto %q: %w", text, err)
	}
	p.state.Anchor = d
	return nil
}

func (p *Planner) openAdd(date calendar.Date, description string) {
	warning, err := date.DateOnly().AddDays(-p.opts.WarningDays)
	if err != nil {
		warning = date.DateOnly()
	}
	p.state.Dialog = Adding{Date: date}
	p.state.Draft = newDraft(date, warning, p.opts.DefaultPriority)
	p.state.Draft.Description = description
	p.state.Focus = FieldDescription
	p.state.Invalid = nil
}

func (p *Planner) openEdit(id int) error {
	a, ok := p.store.FindByID(id)
	if !ok {
		return fmt.Errorf("edit %d: %w", id, appointment.ErrNotFound)
	}
	p.state.Dialog = Editing{Original: a}
	p.state.Draft = draftOf(a)
	p.state.Focus = FieldDescription
	p.state.Invalid = nil
	return nil
}

func (p *Planner) editDraft(dialogOpen bool, fn func(*Draft)) {
	if dialogOpen {
		fn(&p.state.Draft)
	}
}

func (p *Planner) closeDialog() {
	p.state.Dialog = Idle{}
	p.state.Draft = Draft{}
	p.state.Focus = FieldDescription
	p.state.Invalid = nil
}

// submit stores the draft, keeping the id when editing, and saves. When
// the save fails the appointment stays in the store and the error is
// returned.
func (p *Planner) submit() (Outcome, error) {
	if !Open(p.state.Dialog) {
		return Outcome{}, nil
	}

	a, err := p.state.Draft.Appointment()
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			p.state.Invalid = verr
		}
		return Outcome{}, err
	}

	switch d := p.state.Dialog.(type) {
	case Editing:
		a.ID = d.Original.ID
		a = p.store.Upsert(a)
		logger.Info("appointment updated", "id", a.ID, "date", a.Date)
	default:
		a = p.store.Add(a)
		logger.Info("appointment added", "id", a.ID, "date", a.Date)
	}

	p.closeDialog()
	if p.pending != nil {
		logger.Warn("external change overwritten by save")
		p.pending = nil
	}

	if err := p.store.Save(); err != nil {
		return Outcome{}, err
	}
	return Outcome{Saved: true}, nil
}

func (p *Planner) cancel() (Outcome, error) {
	p.closeDialog()
	if p.pending == nil {
		return Outcome{}, nil
	}
	pending := *p.pending
	p.pending = nil
	return p.reload(pending)
}

func (p *Planner) delete(id int) (Outcome, error) {
	if err := p.store.Remove(id); err != nil {
		return Outcome{}, err
	}
	logger.Info("appointment deleted", "id", id)
	if ed, ok := p.state.Dialog.(Editing); ok && ed.Original.ID == id {
		p.closeDialog()
	}
	if err := p.store.Save(); err != nil {
		return Outcome{}, err
	}
	return Outcome{Saved: true}, nil
}

// reload applies a change made to the store file by someone else. It
// waits for an open dialog to close and never discards unsaved changes.
func (p *Planner) reload(r Reload) (Outcome, error) {
	if Open(p.state.Dialog) {
		p.pending = &r
		return Outcome{ReloadDeferred: true}, nil
	}
	if p.store.Dirty() {
		logger.Warn("ignoring external change, store has unsaved changes")
		return Outcome{}, nil
	}
	if sameAppointments(p.store.All(), r.Items) {
		// Our own save coming back through the watcher.
		return Outcome{}, nil
	}
	p.store.Reset(r.Items)
	logger.Info("appointments reloaded", "count", p.store.Len())
	return Outcome{Reloaded: true}, nil
}

func sameAppointments(a, b []appointment.Appointment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
