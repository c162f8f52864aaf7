package grid

import (
	"testing"
	"time"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
)

type fakeLookup map[calendar.Date][]appointment.Appointment

func (f fakeLookup) FindByDate(d calendar.Date) []appointment.Appointment {
	return f[d.DateOnly()]
}

func TestBuildMonthLayout(t *testing.T) {
	tests := []struct {
		name     string
		anchor   calendar.Date
		rows     int
		leading  int
		trailing int
	}{
		{"march 2024 starts friday", calendar.MustNew(2024, time.March, 20), 5, 4, 0},
		{"january 2024 starts monday", calendar.MustNew(2024, time.January, 1), 5, 0, 4},
		{"february 2021 fits four rows", calendar.MustNew(2021, time.February, 14), 4, 0, 0},
		{"september 2024 ends monday", calendar.MustNew(2024, time.September, 30), 6, 6, 6},
		{"leap february 2024", calendar.MustNew(2024, time.February, 29), 5, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildMonth(tt.anchor, nil)
			if len(m.Rows) != tt.rows {
				t.Errorf("rows = %d, want %d", len(m.Rows), tt.rows)
			}
			if m.Leading != tt.leading || m.Trailing != tt.trailing {
				t.Errorf("leading/trailing = %d/%d, want %d/%d", m.Leading, m.Trailing, tt.leading, tt.trailing)
			}
			if m.First != tt.anchor.FirstOfMonth() {
				t.Errorf("First = %v", m.First)
			}
		})
	}
}

func TestBuildMonthCoversEveryDay(t *testing.T) {
	for year := 1999; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			m := BuildMonth(calendar.MustNew(year, month, 1), nil)
			days := calendar.DaysInMonth(m.First)

			blanks := 0
			want := 1
			for r, row := range m.Rows {
				inRow := 0
				for c, cell := range row {
					if cell.Blank {
						blanks++
						continue
					}
					inRow++
					if cell.Date.Day != want {
						t.Fatalf("%d-%02d row %d col %d: day %d, want %d", year, month, r, c, cell.Date.Day, want)
					}
					if cell.Date.WeekdayIndex() != c {
						t.Fatalf("%v in column %d", cell.Date, c)
					}
					want++
				}
				if inRow == 0 {
					t.Fatalf("%d-%02d row %d has no days", year, month, r)
				}
			}
			if want-1 != days {
				t.Errorf("%d-%02d: %d day cells, want %d", year, month, want-1, days)
			}
			if blanks != m.Leading+m.Trailing {
				t.Errorf("%d-%02d: %d blanks, want %d", year, month, blanks, m.Leading+m.Trailing)
			}
		}
	}
}

func TestBuildMonthPlacesAppointments(t *testing.T) {
	day := calendar.MustNew(2024, time.March, 15)
	lookup := fakeLookup{day: {{ID: 0, Date: day, Description: "Dentist"}}}

	m := BuildMonth(day, lookup)
	cell, row, col, ok := m.Cell(day)
	if !ok {
		t.Fatal("15.03.2024 not in grid")
	}
	if row != 2 || col != 4 {
		t.Errorf("cell at row %d col %d, want row 2 col 4 (Friday)", row, col)
	}
	if len(cell.Appointments) != 1 || cell.Appointments[0].Description != "Dentist" {
		t.Errorf("appointments = %+v", cell.Appointments)
	}

	for _, c := range m.Days() {
		if !c.Date.SameDay(day) && len(c.Appointments) != 0 {
			t.Errorf("%v has unexpected appointments", c.Date)
		}
	}
}

func TestMonthNext(t *testing.T) {
	m := BuildMonth(calendar.MustNew(2023, time.December, 5), nil)
	if !m.HasNext || m.Next != calendar.MustNew(2024, time.January, 1) {
		t.Errorf("Next = %v (%v)", m.Next, m.HasNext)
	}

	last := BuildMonth(calendar.MustNew(calendar.MaxYear, time.December, 1), nil)
	if last.HasNext {
		t.Errorf("December %d should have no next month", calendar.MaxYear)
	}
}

func TestBuildYear(t *testing.T) {
	y := BuildYear(calendar.MustNew(2024, time.July, 4), nil)
	if y.Year != 2024 {
		t.Fatalf("Year = %d", y.Year)
	}
	month := time.January
	for r := range YearRows {
		for c := range YearColumns {
			m := y.Months[r][c]
			if m.First != calendar.MustNew(2024, month, 1) {
				t.Errorf("months[%d][%d] = %v, want %v", r, c, m.First, month)
			}
			month++
		}
	}
	if dec := y.Months[1][5]; dec.Next != calendar.MustNew(2025, time.January, 1) {
		t.Errorf("December Next = %v", dec.Next)
	}
}

func TestBuildWeek(t *testing.T) {
	tests := []struct {
		anchor calendar.Date
		start  calendar.Date
	}{
		{calendar.MustNew(2024, time.March, 15), calendar.MustNew(2024, time.March, 11)},
		{calendar.MustNew(2024, time.March, 11), calendar.MustNew(2024, time.March, 11)},
		{calendar.MustNew(2024, time.March, 17), calendar.MustNew(2024, time.March, 11)},
		{calendar.MustNew(2025, time.January, 1), calendar.MustNew(2024, time.December, 30)},
	}

	for _, tt := range tests {
		w := BuildWeek(tt.anchor, nil)
		if w.Start != tt.start {
			t.Errorf("BuildWeek(%v).Start = %v, want %v", tt.anchor, w.Start, tt.start)
		}
		for i, c := range w.Days {
			if c.Blank {
				t.Errorf("week of %v: day %d blank", tt.anchor, i)
			}
			if WeekdayName(c.Date) != Weekdays[i] {
				t.Errorf("week of %v: column %d is %s", tt.anchor, i, WeekdayName(c.Date))
			}
		}
		if !w.Contains(tt.anchor) {
			t.Errorf("week of %v does not contain it", tt.anchor)
		}
	}
}

func TestBuildWeekAtEndOfRange(t *testing.T) {
	// 31.12.9999 is a Friday, so Saturday and Sunday do not exist.
	w := BuildWeek(calendar.MustNew(calendar.MaxYear, time.December, 31), nil)
	if !w.Days[5].Blank || !w.Days[6].Blank {
		t.Errorf("days past the range should be blank: %+v", w.Days[5:])
	}
	if w.Days[4].Blank {
		t.Error("Friday should be a real day")
	}
}

func TestShortWeekday(t *testing.T) {
	want := []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
	for i, w := range want {
		if got := ShortWeekday(i); got != w {
			t.Errorf("ShortWeekday(%d) = %q, want %q", i, got, w)
		}
	}
}
