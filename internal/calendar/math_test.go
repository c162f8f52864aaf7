package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.January, 31},
		{2023, time.February, 28},
		{2024, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.March, 31},
		{2024, time.April, 30},
		{2024, time.June, 30},
		{2024, time.September, 30},
		{2024, time.November, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		got := DaysInMonth(MustNew(tt.year, tt.month, 1))
		if got != tt.want {
			t.Errorf("DaysInMonth(%d-%02d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestWeekdayOffsets(t *testing.T) {
	tests := []struct {
		name      string
		date      Date
		first     int
		last      int
		trailing  int
		weekCount int
	}{
		// 01.03.2024 is a Friday, 31.03.2024 a Sunday
		{"march 2024", MustNew(2024, time.March, 15), 4, 6, 0, 5},
		// 01.01.2024 is a Monday, 31.01.2024 a Wednesday
		{"january 2024", MustNew(2024, time.January, 20), 0, 2, 4, 5},
		// February 2021 starts Monday and ends Sunday: exactly four rows
		{"february 2021", MustNew(2021, time.February, 1), 0, 6, 0, 4},
		// 01.09.2024 is a Sunday, 30.09.2024 a Monday
		{"september 2024", MustNew(2024, time.September, 30), 6, 0, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstWeekdayOffset(tt.date); got != tt.first {
				t.Errorf("FirstWeekdayOffset = %d, want %d", got, tt.first)
			}
			if got := LastWeekdayOffset(tt.date); got != tt.last {
				t.Errorf("LastWeekdayOffset = %d, want %d", got, tt.last)
			}
			if got := TrailingBlanks(tt.date); got != tt.trailing {
				t.Errorf("TrailingBlanks = %d, want %d", got, tt.trailing)
			}
			if got := WeeksInMonth(tt.date); got != tt.weekCount {
				t.Errorf("WeeksInMonth = %d, want %d", got, tt.weekCount)
			}
		})
	}
}

func TestGridCoversEveryMonth(t *testing.T) {
	for year := 1999; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			d := MustNew(year, month, 1)
			first, trailing, days := FirstWeekdayOffset(d), TrailingBlanks(d), DaysInMonth(d)
			if first < 0 || first > 6 || trailing < 0 || trailing > 6 {
				t.Fatalf("%s: offsets out of range first=%d trailing=%d", d, first, trailing)
			}
			if 7*WeeksInMonth(d)-first-trailing != days {
				t.Errorf("%s: %d rows with %d leading and %d trailing blanks do not hold %d days",
					d, WeeksInMonth(d), first, trailing, days)
			}
		}
	}
}

func TestAddDaysRollover(t *testing.T) {
	tests := []struct {
		from Date
		n    int
		want Date
	}{
		{MustNew(2024, time.January, 31), 1, MustNew(2024, time.February, 1)},
		{MustNew(2024, time.February, 28), 1, MustNew(2024, time.February, 29)},
		{MustNew(2023, time.February, 28), 1, MustNew(2023, time.March, 1)},
		{MustNew(2023, time.December, 31), 1, MustNew(2024, time.January, 1)},
		{MustNew(2024, time.January, 1), -1, MustNew(2023, time.December, 31)},
		{MustNew(2024, time.March, 15), 7, MustNew(2024, time.March, 22)},
	}

	for _, tt := range tests {
		got, err := tt.from.AddDays(tt.n)
		if err != nil {
			t.Fatalf("%s.AddDays(%d): %v", tt.from, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("%s.AddDays(%d) = %s, want %s", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestAddMonthsRoundTrip(t *testing.T) {
	for year := 2020; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			for _, day := range []int{1, 15, 28} {
				d := MustNew(year, month, day)
				next, err := d.AddMonths(1)
				if err != nil {
					t.Fatalf("%s.AddMonths(1): %v", d, err)
				}
				back, err := next.AddMonths(-1)
				if err != nil {
					t.Fatalf("%s.AddMonths(-1): %v", next, err)
				}
				if back != d {
					t.Errorf("%s +1 -1 month = %s", d, back)
				}
			}
		}
	}
}

func TestAddMonthsClampsDay(t *testing.T) {
	got, err := MustNew(2024, time.January, 31).AddMonths(1)
	if err != nil {
		t.Fatal(err)
	}
	if want := MustNew(2024, time.February, 29); got != want {
		t.Errorf("31.01.2024 + 1 month = %s, want %s", got, want)
	}

	got, err = MustNew(2024, time.December, 15).AddMonths(1)
	if err != nil {
		t.Fatal(err)
	}
	if want := MustNew(2025, time.January, 15); got != want {
		t.Errorf("15.12.2024 + 1 month = %s, want %s", got, want)
	}

	got, err = MustNew(2024, time.February, 29).AddYears(1)
	if err != nil {
		t.Fatal(err)
	}
	if want := MustNew(2025, time.February, 28); got != want {
		t.Errorf("29.02.2024 + 1 year = %s, want %s", got, want)
	}
}

func TestArithmeticOutOfRange(t *testing.T) {
	last := MustNew(MaxYear, time.December, 31)
	got, err := last.AddDays(1)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("AddDays past MaxYear: err = %v, want ErrOutOfRange", err)
	}
	if got != last {
		t.Errorf("failed AddDays returned %s, want unchanged %s", got, last)
	}

	first := MustNew(MinYear, time.January, 1)
	if _, err := first.AddMonths(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("AddMonths before MinYear: err = %v, want ErrOutOfRange", err)
	}
	if _, err := last.AddYears(1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("AddYears past MaxYear: err = %v, want ErrOutOfRange", err)
	}
}
