package calendar

import (
	"fmt"
	"time"
)

// DaysInMonth returns the number of days in d's month.
func DaysInMonth(d Date) int {
	return daysIn(d.Year, d.Month)
}

// daysIn counts the days between the first of the month and the first of
// the next one. time.Date normalizes December+1 into January of the next
// year, so leap years and the year rollover fall out of the arithmetic.
func daysIn(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return int(next.Sub(first).Hours() / 24)
}

// FirstWeekdayOffset is the weekday index (Monday=0) of the first day of
// d's month, which is also the number of leading blank cells in its grid.
func FirstWeekdayOffset(d Date) int {
	return d.FirstOfMonth().WeekdayIndex()
}

// LastWeekdayOffset is the weekday index (Monday=0) of the last day of d's
// month.
func LastWeekdayOffset(d Date) int {
	return d.LastOfMonth().WeekdayIndex()
}

// TrailingBlanks is the number of blank cells after the last day of d's
// month needed to complete its final week. Zero when the month ends on a
// Sunday.
func TrailingBlanks(d Date) int {
	return 6 - LastWeekdayOffset(d)
}

// WeeksInMonth is the number of Monday-first rows needed to show every day
// of d's month.
func WeeksInMonth(d Date) int {
	return (FirstWeekdayOffset(d) + DaysInMonth(d) + TrailingBlanks(d)) / 7
}

// AddDays moves d by n days, rolling over months and years.
func (d Date) AddDays(n int) (Date, error) {
	moved := FromTime(time.Date(d.Year, d.Month, d.Day+n, d.Hour, d.Minute, d.Second, 0, time.UTC))
	if moved.Year < MinYear || moved.Year > MaxYear {
		return d, fmt.Errorf("%w: %s %+d days", ErrOutOfRange, d, n)
	}
	return moved, nil
}

func (d Date) AddWeeks(n int) (Date, error) {
	return d.AddDays(7 * n)
}

// AddMonths moves d by n months. A day that does not exist in the target
// month is clamped to that month's last day (31.01 + 1 month = 29.02 in a
// leap year) instead of spilling into the month after.
func (d Date) AddMonths(n int) (Date, error) {
	total := d.Year*12 + int(d.Month-1) + n
	year, month := total/12, time.Month(total%12+1)
	if total < 0 || year < MinYear || year > MaxYear {
		return d, fmt.Errorf("%w: %s %+d months", ErrOutOfRange, d, n)
	}
	day := d.Day
	if last := daysIn(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day, Hour: d.Hour, Minute: d.Minute, Second: d.Second}, nil
}

func (d Date) AddYears(n int) (Date, error) {
	return d.AddMonths(12 * n)
}
