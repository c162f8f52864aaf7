package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Years outside this range cannot be written back as dd.mm.yyyy.
const (
	MinYear = 1
	MaxYear = 9999
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrOutOfRange  = errors.New("date out of range")
)

// Date is a local wall-clock calendar date. The clock fields are optional
// and are ignored by everything that works in whole days.
type Date struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// New returns the date for year, month and day, or ErrInvalidDate if the
// triple does not name a real calendar day.
func New(year int, month time.Month, day int) (Date, error) {
	return NewWithClock(year, month, day, 0, 0, 0)
}

func NewWithClock(year int, month time.Month, day, hour, minute, second int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	}
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > daysIn(year, month) {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return Date{}, fmt.Errorf("%w: clock %02d:%02d:%02d", ErrInvalidDate, hour, minute, second)
	}
	return Date{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}, nil
}

// MustNew is New for literals known to be valid.
func MustNew(year int, month time.Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func FromTime(t time.Time) Date {
	return Date{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Today returns the current local date with the clock zeroed.
func Today() Date {
	return FromTime(time.Now()).DateOnly()
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, 0, time.Local)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) HasClock() bool {
	return d.Hour != 0 || d.Minute != 0 || d.Second != 0
}

func (d Date) DateOnly() Date {
	return Date{Year: d.Year, Month: d.Month, Day: d.Day}
}

func (d Date) WithClock(hour, minute, second int) Date {
	d.Hour, d.Minute, d.Second = hour, minute, second
	return d
}

// SameDay reports whether d and o fall on the same calendar day.
func (d Date) SameDay(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// Compare orders dates including the clock; it returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	a := [...]int{d.Year, int(d.Month), d.Day, d.Hour, d.Minute, d.Second}
	b := [...]int{o.Year, int(o.Month), o.Day, o.Hour, o.Minute, o.Second}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// WeekdayIndex is the weekday counted from Monday (Monday=0 .. Sunday=6).
func (d Date) WeekdayIndex() int {
	return (int(d.Weekday()) + 6) % 7
}

func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

func (d Date) LastOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: daysIn(d.Year, d.Month)}
}

func (d Date) FirstOfYear() Date {
	return Date{Year: d.Year, Month: time.January, Day: 1}
}

// StartOfWeek returns the Monday of the week containing d.
func (d Date) StartOfWeek() Date {
	start, err := d.DateOnly().AddDays(-d.WeekdayIndex())
	if err != nil {
		return d.DateOnly()
	}
	return start
}

// String formats the date as dd.mm.yyyy, the same form ParseDate accepts.
func (d Date) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}

func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}
