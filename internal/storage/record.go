package storage

import (
	"fmt"
	"time"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
)

// dateRecord is the on-disk date shape. The clock fields are optional.
type dateRecord struct {
	Year   int `yaml:"year"`
	Month  int `yaml:"month"`
	Day    int `yaml:"day"`
	Hour   int `yaml:"hour,omitempty"`
	Minute int `yaml:"min,omitempty"`
	Second int `yaml:"sec,omitempty"`
}

type appointmentRecord struct {
	ID          int        `yaml:"id"`
	Date        dateRecord `yaml:"date"`
	Priority    string     `yaml:"priority"`
	Warning     dateRecord `yaml:"warning"`
	Tags        []string   `yaml:"tags,omitempty"`
	Description string     `yaml:"description"`
}

// document is the top level of saved.yml.
type document struct {
	Data []appointmentRecord `yaml:"data"`
}

func toDateRecord(d calendar.Date) dateRecord {
	return dateRecord{
		Year:   d.Year,
		Month:  int(d.Month),
		Day:    d.Day,
		Hour:   d.Hour,
		Minute: d.Minute,
		Second: d.Second,
	}
}

func (r dateRecord) toDate() (calendar.Date, error) {
	return calendar.NewWithClock(r.Year, time.Month(r.Month), r.Day, r.Hour, r.Minute, r.Second)
}

func toRecord(a appointment.Appointment) appointmentRecord {
	return appointmentRecord{
		ID:          a.ID,
		Date:        toDateRecord(a.Date),
		Priority:    a.Priority.String(),
		Warning:     toDateRecord(a.Warning),
		Tags:        a.Tags,
		Description: a.Description,
	}
}

func (r appointmentRecord) toAppointment() (appointment.Appointment, error) {
	date, err := r.Date.toDate()
	if err != nil {
		return appointment.Appointment{}, fmt.Errorf("appointment %d: date: %w", r.ID, err)
	}
	// An absent warning defaults to the appointment day itself.
	warning := date.DateOnly()
	if r.Warning != (dateRecord{}) {
		if warning, err = r.Warning.toDate(); err != nil {
			return appointment.Appointment{}, fmt.Errorf("appointment %d: warning: %w", r.ID, err)
		}
	}
	priority, err := parseStoredPriority(r.Priority)
	if err != nil {
		return appointment.Appointment{}, fmt.Errorf("appointment %d: %w", r.ID, err)
	}
	return appointment.Appointment{
		ID:          r.ID,
		Date:        date,
		Warning:     warning,
		Priority:    priority,
		Tags:        r.Tags,
		Description: r.Description,
	}, nil
}

// parseStoredPriority only accepts the exact enum names written by Save.
func parseStoredPriority(s string) (appointment.Priority, error) {
	for _, p := range appointment.Priorities {
		if p.String() == s {
			return p, nil
		}
	}
	return appointment.PriorityMiddle, fmt.Errorf("unknown priority %q", s)
}
