// Package parser turns free text such as "tomorrow 2pm dentist" or
// "15.03.2024" into calendar dates. It backs quick add and goto.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwarden/planer/internal/calendar"
)

var (
	ErrEmpty  = errors.New("empty input")
	ErrNoDate = errors.New("no date found")
)

// Result is the outcome of parsing a quick-add line.
type Result struct {
	// Date carries the clock when HasTime is set.
	Date    calendar.Date
	HasDate bool
	HasTime bool
	// Text is what remains after the date and time are consumed.
	Text string
}

var (
	dottedRe    = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})\b`)
	isoRe       = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})\b`)
	weekdayRe   = regexp.MustCompile(`^(?:(next|this)\s+)?(mon|monday|tue|tuesday|wed|wednesday|thu|thursday|fri|friday|sat|saturday|sun|sunday)\b`)
	inRe        = regexp.MustCompile(`^in\s+(\d+)\s+(day|days|week|weeks|month|months|year|years)\b`)
	fromNowRe   = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months|year|years)\s+from\s+(?:now|today)\b`)
	nextUnitRe  = regexp.MustCompile(`^next\s+(week|month|year)\b`)
	monthDayRe  = regexp.MustCompile(`^(` + monthNames + `)\s+(\d{1,2})\b(?:,?\s+(\d{4})\b)?`)
	dayMonthRe  = regexp.MustCompile(`^(\d{1,2})\.?\s+(` + monthNames + `)\b(?:\s+(\d{4})\b)?`)
	monthYearRe = regexp.MustCompile(`^(` + monthNames + `)\s+(\d{4})\b`)
	clockRe     = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	meridiemRe  = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)\b`)
	atHourRe    = regexp.MustCompile(`^(\d{1,2})\b`)
	namedTimeRe = regexp.MustCompile(`^(noon|midnight|morning|afternoon|evening|night)\b`)
	relativeRe  = regexp.MustCompile(`^(today|tomorrow|tmrw|yesterday)\b`)
	yearRe      = regexp.MustCompile(`^\d{4}$`)
)

const monthNames = `jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december`

var namedTimes = map[string]int{
	"noon":      12,
	"midnight":  0,
	"morning":   9,
	"afternoon": 14,
	"evening":   18,
	"night":     21,
}

// Parser resolves relative expressions against a fixed "now".
type Parser struct {
	now time.Time
}

func New(now time.Time) *Parser {
	return &Parser{now: now}
}

func (p *Parser) today() calendar.Date {
	return calendar.FromTime(p.now).DateOnly()
}

// Parse reads an optional leading date, an optional time and keeps the
// rest as text. Without a date the result falls on today.
func (p *Parser) Parse(input string) (Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}, ErrEmpty
	}

	res := Result{Date: p.today()}
	rest := input

	d, after, ok, err := p.parseDate(rest)
	if err != nil {
		return Result{}, err
	}
	if ok {
		res.Date, res.HasDate, rest = d, true, after
	}

	if h, m, after, ok := parseClock(rest); ok {
		res.Date = res.Date.WithClock(h, m, 0)
		res.HasTime, rest = true, after
	}

	res.Text = strings.TrimSpace(rest)
	return res, nil
}

// ParseDate accepts input that is nothing but a date, as used by goto.
func (p *Parser) ParseDate(input string) (calendar.Date, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return calendar.Date{}, ErrEmpty
	}
	if yearRe.MatchString(input) {
		return calendar.New(mustAtoi(input), time.January, 1)
	}
	if m := monthYearRe.FindStringSubmatch(strings.ToLower(input)); m != nil && len(m[0]) == len(input) {
		return calendar.New(mustAtoi(m[2]), parseMonth(m[1]), 1)
	}

	d, rest, ok, err := p.parseDate(input)
	if err != nil {
		return calendar.Date{}, err
	}
	if !ok {
		return calendar.Date{}, fmt.Errorf("%w in %q", ErrNoDate, input)
	}
	if rest != "" {
		return calendar.Date{}, fmt.Errorf("unexpected %q after date", rest)
	}
	return d, nil
}

// parseDate consumes a date at the start of input. ok is false when input
// does not start with a date; err is set when it does but the date does
// not exist.
func (p *Parser) parseDate(input string) (calendar.Date, string, bool, error) {
	lower := strings.ToLower(input)
	rest := func(n int) string { return strings.TrimSpace(input[n:]) }

	if m := dottedRe.FindStringSubmatch(input); m != nil {
		d, err := calendar.ParseDate(m[0])
		return d, rest(len(m[0])), true, err
	}
	if m := isoRe.FindStringSubmatch(input); m != nil {
		d, err := newDate(m[1], m[3], mustAtoi(m[2]))
		return d, rest(len(m[0])), true, err
	}

	if m := relativeRe.FindStringSubmatch(lower); m != nil {
		days := map[string]int{"today": 0, "tomorrow": 1, "tmrw": 1, "yesterday": -1}[m[1]]
		d, err := p.today().AddDays(days)
		return d, rest(len(m[0])), true, err
	}

	if m := nextUnitRe.FindStringSubmatch(lower); m != nil {
		d, err := p.shift(1, m[1])
		return d, rest(len(m[0])), true, err
	}
	if m := weekdayRe.FindStringSubmatch(lower); m != nil {
		return p.upcoming(parseWeekday(m[2]), m[1] == "next"), rest(len(m[0])), true, nil
	}
	if m := inRe.FindStringSubmatch(lower); m != nil {
		d, err := p.shift(mustAtoi(m[1]), m[2])
		return d, rest(len(m[0])), true, err
	}
	if m := fromNowRe.FindStringSubmatch(lower); m != nil {
		d, err := p.shift(mustAtoi(m[1]), m[2])
		return d, rest(len(m[0])), true, err
	}
	if m := monthDayRe.FindStringSubmatch(lower); m != nil {
		d, err := p.named(m[1], m[2], m[3])
		return d, rest(len(m[0])), true, err
	}
	if m := dayMonthRe.FindStringSubmatch(lower); m != nil {
		d, err := p.named(m[2], m[1], m[3])
		return d, rest(len(m[0])), true, err
	}

	return calendar.Date{}, input, false, nil
}

func (p *Parser) shift(n int, unit string) (calendar.Date, error) {
	today := p.today()
	switch {
	case strings.HasPrefix(unit, "day"):
		return today.AddDays(n)
	case strings.HasPrefix(unit, "week"):
		return today.AddWeeks(n)
	case strings.HasPrefix(unit, "month"):
		return today.AddMonths(n)
	default:
		return today.AddYears(n)
	}
}

// upcoming returns the next day falling on target. Today counts unless
// strictlyAfter is set.
func (p *Parser) upcoming(target time.Weekday, strictlyAfter bool) calendar.Date {
	today := p.today()
	n := (int(target) - int(today.Weekday()) + 7) % 7
	if n == 0 && strictlyAfter {
		n = 7
	}
	d, err := today.AddDays(n)
	if err != nil {
		return today
	}
	return d
}

// named builds a date from a month name and day, defaulting to the
// current year.
func (p *Parser) named(month, day, year string) (calendar.Date, error) {
	if year == "" {
		year = strconv.Itoa(p.now.Year())
	}
	return newDate(year, day, int(parseMonth(month)))
}

func newDate(year, day string, month int) (calendar.Date, error) {
	return calendar.New(mustAtoi(year), time.Month(month), mustAtoi(day))
}

// mustAtoi is only called on regexp digit groups.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// parseClock consumes "14:30", "2pm", "2:30pm", "at 9" or a named time.
// A bare number without "at" is left alone so descriptions may start
// with one.
func parseClock(input string) (int, int, string, bool) {
	lower := strings.ToLower(input)
	offset := 0
	at := strings.HasPrefix(lower, "at ")
	if at {
		offset = 3
		lower = lower[3:]
	}
	rest := func(n int) string { return strings.TrimSpace(input[offset+n:]) }

	if m := clockRe.FindStringSubmatch(lower); m != nil {
		if h, mm, ok := clock(m[1], m[2], m[3]); ok {
			return h, mm, rest(len(m[0])), true
		}
	}
	if m := meridiemRe.FindStringSubmatch(lower); m != nil {
		if h, mm, ok := clock(m[1], "0", m[2]); ok {
			return h, mm, rest(len(m[0])), true
		}
	}
	if at {
		if m := atHourRe.FindStringSubmatch(lower); m != nil {
			if h, mm, ok := clock(m[1], "0", ""); ok {
				return h, mm, rest(len(m[0])), true
			}
		}
	}
	if m := namedTimeRe.FindStringSubmatch(lower); m != nil {
		return namedTimes[m[1]], 0, rest(len(m[0])), true
	}
	return 0, 0, input, false
}

func clock(hour, minute, meridiem string) (int, int, bool) {
	h, m := mustAtoi(hour), mustAtoi(minute)
	switch meridiem {
	case "am", "pm":
		if h < 1 || h > 12 {
			return 0, 0, false
		}
		if h == 12 {
			h = 0
		}
		if meridiem == "pm" {
			h += 12
		}
	}
	if h > 23 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func parseWeekday(s string) time.Weekday {
	switch s {
	case "mon", "monday":
		return time.Monday
	case "tue", "tuesday":
		return time.Tuesday
	case "wed", "wednesday":
		return time.Wednesday
	case "thu", "thursday":
		return time.Thursday
	case "fri", "friday":
		return time.Friday
	case "sat", "saturday":
		return time.Saturday
	default:
		return time.Sunday
	}
}

func parseMonth(s string) time.Month {
	switch s {
	case "jan", "january":
		return time.January
	case "feb", "february":
		return time.February
	case "mar", "march":
		return time.March
	case "apr", "april":
		return time.April
	case "may":
		return time.May
	case "jun", "june":
		return time.June
	case "jul", "july":
		return time.July
	case "aug", "august":
		return time.August
	case "sep", "sept", "september":
		return time.September
	case "oct", "october":
		return time.October
	case "nov", "november":
		return time.November
	default:
		return time.December
	}
}
