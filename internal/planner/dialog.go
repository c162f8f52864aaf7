package planner

import (
	"fmt"
	"strings"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
)

// Dialog is the state of the appointment dialog: Idle, Adding or Editing.
type Dialog interface {
	isDialog()
}

// Idle means no dialog is open.
type Idle struct{}

// Adding creates a new appointment, initially on Date.
type Adding struct {
	Date calendar.Date
}

// Editing changes Original. The id of Original is kept on submit.
type Editing struct {
	Original appointment.Appointment
}

func (Idle) isDialog()    {}
func (Adding) isDialog()  {}
func (Editing) isDialog() {}

// Open reports whether d is a dialog other than Idle.
func Open(d Dialog) bool {
	switch d.(type) {
	case nil, Idle:
		return false
	default:
		return true
	}
}

// Field names a dialog input.
type Field int

const (
	FieldDescription Field = iota
	FieldDate
	FieldWarning
	FieldPriority
	FieldTags
)

// Fields lists the dialog inputs in focus order.
var Fields = []Field{FieldDescription, FieldDate, FieldWarning, FieldPriority, FieldTags}

func (f Field) String() string {
	switch f {
	case FieldDescription:
		return "description"
	case FieldDate:
		return "date"
	case FieldWarning:
		return "warning"
	case FieldPriority:
		return "priority"
	case FieldTags:
		return "tags"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Next is the field after f in focus order, wrapping around.
func (f Field) Next() Field {
	return Fields[(f.index()+1)%len(Fields)]
}

// Prev is the field before f in focus order, wrapping around.
func (f Field) Prev() Field {
	return Fields[(f.index()+len(Fields)-1)%len(Fields)]
}

func (f Field) index() int {
	for i, g := range Fields {
		if g == f {
			return i
		}
	}
	return 0
}

// Draft is the dialog's text form of an appointment. Date and warning stay
// raw text until submit so that half-typed input is never rejected.
type Draft struct {
	Date        string
	Warning     string
	Tags        string
	Description string
	Priority    appointment.Priority

	// DateValid and WarningValid track whether the text currently parses.
	DateValid    bool
	WarningValid bool

	// The dialog edits whole days; a clock carried by the appointment
	// being edited survives the round trip.
	hour, minute, second int
}

func newDraft(date, warning calendar.Date, priority appointment.Priority) Draft {
	d := Draft{Priority: priority}
	d.SetDate(date.String())
	d.SetWarning(warning.String())
	d.hour, d.minute, d.second = date.Hour, date.Minute, date.Second
	return d
}

func draftOf(a appointment.Appointment) Draft {
	d := newDraft(a.Date, a.Warning, a.Priority)
	d.Tags = appointment.JoinTags(a.Tags)
	d.Description = a.Description
	return d
}

func (d *Draft) SetDate(s string) {
	d.Date = s
	d.DateValid = calendar.ValidDate(s)
}

func (d *Draft) SetWarning(s string) {
	d.Warning = s
	d.WarningValid = calendar.ValidDate(s)
}

// Clock returns the hidden time of day carried by the draft.
func (d Draft) Clock() (hour, minute, second int) {
	return d.hour, d.minute, d.second
}

// Appointment validates the draft and builds the appointment it
// describes, without an id.
func (d Draft) Appointment() (appointment.Appointment, error) {
	var verr ValidationError

	date, err := calendar.ParseDate(strings.TrimSpace(d.Date))
	if err != nil {
		verr.add(FieldDate, err)
	}
	warning, err := calendar.ParseDate(strings.TrimSpace(d.Warning))
	if err != nil {
		verr.add(FieldWarning, err)
	}
	if len(verr.Fields) > 0 {
		return appointment.Appointment{}, &verr
	}

	return appointment.Appointment{
		ID:          appointment.NoID,
		Date:        date.WithClock(d.hour, d.minute, d.second),
		Warning:     warning,
		Priority:    d.Priority,
		Tags:        appointment.ParseTags(d.Tags),
		Description: d.Description,
	}, nil
}

// FieldError is a validation failure of one dialog field.
type FieldError struct {
	Field Field
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}

// ValidationError blocks a submit and names every field that failed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) add(f Field, err error) {
	e.Fields = append(e.Fields, FieldError{Field: f, Err: err})
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "invalid appointment: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f
	}
	return errs
}

// Has reports whether field f failed validation.
func (e *ValidationError) Has(f Field) bool {
	if e == nil {
		return false
	}
	for _, fe := range e.Fields {
		if fe.Field == f {
			return true
		}
	}
	return false
}
