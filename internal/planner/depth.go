package planner

import (
	"fmt"
	"strings"

	"github.com/cwarden/planer/internal/calendar"
)

// Depth is the zoom level of the calendar view.
type Depth int

const (
	DepthYear Depth = iota
	DepthMonth
	DepthWeek
)

func (d Depth) String() string {
	switch d {
	case DepthYear:
		return "year"
	case DepthMonth:
		return "month"
	case DepthWeek:
		return "week"
	default:
		return fmt.Sprintf("Depth(%d)", int(d))
	}
}

// ParseDepth accepts the names printed by String.
func ParseDepth(s string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "year":
		return DepthYear, nil
	case "month":
		return DepthMonth, nil
	case "week":
		return DepthWeek, nil
	default:
		return DepthMonth, fmt.Errorf("unknown view %q (want year, month or week)", s)
	}
}

// ZoomIn moves Year to Month to Week and stays at Week.
func (d Depth) ZoomIn() Depth {
	switch d {
	case DepthYear:
		return DepthMonth
	case DepthMonth:
		return DepthWeek
	default:
		return DepthWeek
	}
}

// ZoomOut moves Week to Month to Year and stays at Year.
func (d Depth) ZoomOut() Depth {
	switch d {
	case DepthWeek:
		return DepthMonth
	case DepthMonth:
		return DepthYear
	default:
		return DepthYear
	}
}

// Step moves date by n units of the depth: weeks, months or years.
func (d Depth) Step(date calendar.Date, n int) (calendar.Date, error) {
	switch d {
	case DepthWeek:
		return date.AddWeeks(n)
	case DepthMonth:
		return date.AddMonths(n)
	default:
		return date.AddYears(n)
	}
}
