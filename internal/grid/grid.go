// Package grid lays calendar units out as rectangular grids of day cells.
// Rows always run Monday to Sunday.
package grid

import (
	"time"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
)

// Lookup resolves the appointments of a single day. *appointment.Store
// satisfies it.
type Lookup interface {
	FindByDate(calendar.Date) []appointment.Appointment
}

// Weekdays are the column headings of every grid.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Cell is either Blank padding or a real day with its appointments.
type Cell struct {
	Blank        bool
	Date         calendar.Date
	Appointments []appointment.Appointment
}

func dayCell(d calendar.Date, lookup Lookup) Cell {
	c := Cell{Date: d}
	if lookup != nil {
		c.Appointments = lookup.FindByDate(d)
	}
	return c
}

// Month is the grid of one month.
type Month struct {
	First    calendar.Date
	Leading  int
	Trailing int
	Rows     [][7]Cell
	// Next is the day after the month's last day. HasNext is false only
	// for December of calendar.MaxYear.
	Next    calendar.Date
	HasNext bool
}

// BuildMonth returns the grid for the month containing anchor. The first
// row starts with Leading blank cells, the last row ends with Trailing
// blank cells and no row is entirely blank.
func BuildMonth(anchor calendar.Date, lookup Lookup) Month {
	first := anchor.FirstOfMonth()
	days := calendar.DaysInMonth(first)
	m := Month{
		First:    first,
		Leading:  calendar.FirstWeekdayOffset(first),
		Trailing: calendar.TrailingBlanks(first),
	}

	m.Rows = make([][7]Cell, calendar.WeeksInMonth(first))
	for i := range len(m.Rows) * 7 {
		day := i - m.Leading + 1
		row, col := i/7, i%7
		if day < 1 || day > days {
			m.Rows[row][col] = Cell{Blank: true}
			continue
		}
		m.Rows[row][col] = dayCell(calendar.Date{Year: first.Year, Month: first.Month, Day: day}, lookup)
	}

	if next, err := first.LastOfMonth().AddDays(1); err == nil {
		m.Next, m.HasNext = next, true
	}
	return m
}

// Days returns the real day cells of the month in order.
func (m Month) Days() []Cell {
	var out []Cell
	for _, row := range m.Rows {
		for _, c := range row {
			if !c.Blank {
				out = append(out, c)
			}
		}
	}
	return out
}

// Cell returns the cell of day d, if d is in the month.
func (m Month) Cell(d calendar.Date) (Cell, int, int, bool) {
	if d.Year != m.First.Year || d.Month != m.First.Month {
		return Cell{}, 0, 0, false
	}
	i := m.Leading + d.Day - 1
	if i/7 >= len(m.Rows) {
		return Cell{}, 0, 0, false
	}
	return m.Rows[i/7][i%7], i / 7, i % 7, true
}

const (
	YearRows    = 2
	YearColumns = 6
)

// Year is a year laid out as two rows of six month grids.
type Year struct {
	Year   int
	Months [YearRows][YearColumns]Month
}

// BuildYear builds the year containing anchor. Each month after January
// starts at the Next date reported by the month before it.
func BuildYear(anchor calendar.Date, lookup Lookup) Year {
	y := Year{Year: anchor.Year}
	start := anchor.FirstOfYear()
	for i := range YearRows * YearColumns {
		m := BuildMonth(start, lookup)
		y.Months[i/YearColumns][i%YearColumns] = m
		if !m.HasNext {
			break
		}
		start = m.Next
	}
	return y
}

// Week is the Monday to Sunday week containing an anchor date.
type Week struct {
	Start calendar.Date
	Days  [7]Cell
}

// BuildWeek builds the week containing anchor. Days past the last
// representable date are blank.
func BuildWeek(anchor calendar.Date, lookup Lookup) Week {
	w := Week{Start: anchor.StartOfWeek()}
	for i := range w.Days {
		d, err := w.Start.AddDays(i)
		if err != nil {
			w.Days[i] = Cell{Blank: true}
			continue
		}
		w.Days[i] = dayCell(d, lookup)
	}
	return w
}

// Contains reports whether d falls within the week.
func (w Week) Contains(d calendar.Date) bool {
	for _, c := range w.Days {
		if !c.Blank && c.Date.SameDay(d) {
			return true
		}
	}
	return false
}

// WeekdayName is the column heading for d.
func WeekdayName(d calendar.Date) string {
	return Weekdays[d.WeekdayIndex()]
}

// ShortWeekday is the two-letter heading used where columns are narrow.
func ShortWeekday(i int) string {
	return time.Weekday((i + 1) % 7).String()[:2]
}
