package storage

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
)

// ExportICS writes appointments as an iCalendar feed. Untimed appointments
// become all-day events; the warning date becomes a display alarm.
func ExportICS(w io.Writer, items []appointment.Appointment, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//planer//Appointment Export//EN")

	for _, a := range items {
		ev := cal.AddEvent(eventUID(a))
		ev.SetDtStampTime(now)

		start := a.Date.Time()
		if a.Date.HasClock() {
			ev.SetStartAt(start)
		} else {
			ev.SetAllDayStartAt(start)
			ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		}

		summary := strings.TrimSpace(a.Description)
		if summary == "" {
			summary = "Appointment"
		}
		ev.SetSummary(summary)
		if a.Description != summary {
			ev.SetDescription(a.Description)
		}

		ev.AddProperty(ics.ComponentPropertyPriority, icsPriority(a.Priority))
		if tags := nonEmpty(a.Tags); len(tags) > 0 {
			ev.AddProperty(ics.ComponentPropertyCategories, strings.Join(tags, ","))
		}

		if !a.Warning.IsZero() {
			alarm := ev.AddAlarm()
			alarm.SetAction(ics.ActionDisplay)
			alarm.SetTrigger(warningTrigger(a.Date, a.Warning))
			alarm.SetProperty(ics.ComponentPropertyDescription, summary)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

func eventUID(a appointment.Appointment) string {
	// Ids are reused after deletion, so the date is part of the UID.
	return fmt.Sprintf("appointment-%d-%04d%02d%02d@planer", a.ID, a.Date.Year, int(a.Date.Month), a.Date.Day)
}

// icsPriority maps onto the RFC 5545 high/medium/low values.
func icsPriority(p appointment.Priority) string {
	switch p {
	case appointment.PriorityHigh:
		return "1"
	case appointment.PriorityLow:
		return "9"
	default:
		return "5"
	}
}

// warningTrigger is the alarm offset relative to the event start, in whole
// days.
func warningTrigger(date, warning calendar.Date) string {
	from := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.UTC)
	to := time.Date(warning.Year, warning.Month, warning.Day, 0, 0, 0, 0, time.UTC)
	days := int(to.Sub(from).Hours() / 24)
	switch {
	case days < 0:
		return fmt.Sprintf("-P%dD", -days)
	case days > 0:
		return fmt.Sprintf("P%dD", days)
	default:
		return "PT0S"
	}
}

func nonEmpty(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
