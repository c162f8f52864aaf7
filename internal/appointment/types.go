package appointment

import (
	"fmt"
	"strings"

	"github.com/cwarden/planer/internal/calendar"
)

type Priority int

// Declaration order is display order.
const (
	PriorityHigh Priority = iota
	PriorityMiddle
	PriorityLow
)

// Priorities lists every priority in display order.
var Priorities = []Priority{PriorityHigh, PriorityMiddle, PriorityLow}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMiddle:
		return "Middle"
	case PriorityLow:
		return "Low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Marker is the short form used in dense views.
func (p Priority) Marker() string {
	switch p {
	case PriorityHigh:
		return "!!!"
	case PriorityMiddle:
		return "!!"
	case PriorityLow:
		return "!"
	default:
		return ""
	}
}

func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h", "3":
		return PriorityHigh, nil
	case "middle", "medium", "m", "2":
		return PriorityMiddle, nil
	case "low", "l", "1":
		return PriorityLow, nil
	default:
		return PriorityMiddle, fmt.Errorf("invalid priority: %q", s)
	}
}

// NoID marks an appointment that has not been stored yet.
const NoID = -1

type Appointment struct {
	ID          int
	Date        calendar.Date
	Warning     calendar.Date
	Priority    Priority
	Tags        []string
	Description string
}

// Equal compares every field, tags element by element.
func (a Appointment) Equal(b Appointment) bool {
	if a.ID != b.ID || a.Date != b.Date || a.Warning != b.Warning ||
		a.Priority != b.Priority || a.Description != b.Description ||
		len(a.Tags) != len(b.Tags) {
		return false
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return false
		}
	}
	return true
}

func (a Appointment) clone() Appointment {
	if a.Tags != nil {
		a.Tags = append([]string(nil), a.Tags...)
	}
	return a
}

// ParseTags splits a comma separated tag list. Segments are trimmed but
// empty ones are kept, so "a,,b" yields three tags. Blank input means no
// tags at all.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// JoinTags is the inverse of ParseTags for display in the dialog.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
