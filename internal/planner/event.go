package planner

import (
	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
)

// Event is an input handled by Planner.Handle.
type Event interface {
	isEvent()
}

// Increment and Decrement move the anchor one unit of the current depth.
type (
	Increment struct{}
	Decrement struct{}
)

// Wheel is one mouse wheel notch. Negative Delta scrolls up. With
// Modifier held the wheel zooms instead of moving: up zooms in.
type Wheel struct {
	Delta    int
	Modifier bool
}

type KeyCode int

const (
	KeyUp KeyCode = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyShiftTab
	KeyEscape
)

// Key is a navigation key. Up and Down move the anchor, Left and Right
// zoom out and in, Tab moves dialog focus and Escape cancels the dialog.
type Key struct {
	Code KeyCode
}

// MoveDays moves the anchor by whole days, the cursor motion of the grid.
type MoveDays struct {
	Days int
}

// Today moves the anchor to the current date.
type Today struct{}

// Goto moves the anchor to the date described by Text.
type Goto struct {
	Text string
}

// SetDepth jumps straight to a zoom level.
type SetDepth struct {
	Depth Depth
}

// AddAppointment opens the dialog for a new appointment on Date. A clock
// on Date and a Description are carried into the draft.
type AddAppointment struct {
	Date        calendar.Date
	Description string
}

// EditAppointment opens the dialog for the appointment with ID.
type EditAppointment struct {
	ID int
}

// DeleteAppointment removes the appointment with ID and saves.
type DeleteAppointment struct {
	ID int
}

// Dialog field edits. Date and warning text is kept even when invalid.
type (
	DialogDate        struct{ Text string }
	DialogWarning     struct{ Text string }
	DialogTags        struct{ Text string }
	DialogDescription struct{ Text string }
	DialogPriority    struct{ Priority appointment.Priority }
)

type (
	DialogSubmit struct{}
	DialogCancel struct{}
)

// Reload replaces the store with Items read back from disk.
type Reload struct {
	Items []appointment.Appointment
}

// WindowClose saves the store before the application exits.
type WindowClose struct{}

func (Increment) isEvent()         {}
func (Decrement) isEvent()         {}
func (Wheel) isEvent()             {}
func (Key) isEvent()               {}
func (MoveDays) isEvent()          {}
func (Today) isEvent()             {}
func (Goto) isEvent()              {}
func (SetDepth) isEvent()          {}
func (AddAppointment) isEvent()    {}
func (EditAppointment) isEvent()   {}
func (DeleteAppointment) isEvent() {}
func (DialogDate) isEvent()        {}
func (DialogWarning) isEvent()     {}
func (DialogTags) isEvent()        {}
func (DialogDescription) isEvent() {}
func (DialogPriority) isEvent()    {}
func (DialogSubmit) isEvent()      {}
func (DialogCancel) isEvent()      {}
func (Reload) isEvent()            {}
func (WindowClose) isEvent()       {}
