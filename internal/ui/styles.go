package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/planer/internal/appointment"
)

type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Weekend  lipgloss.Style
	Blank    lipgloss.Style
	Header   lipgloss.Style
	Title    lipgloss.Style
	High     lipgloss.Style
	Middle   lipgloss.Style
	Low      lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Error    lipgloss.Style
	Invalid  lipgloss.Style
	Label    lipgloss.Style
	Dialog   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("220")).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Weekend: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		Blank: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true).
			Underline(true),
		High: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Middle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")),
		Low: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")).
			Padding(0, 1),
		Invalid: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12),
		Dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("220")).
			Padding(1, 2),
	}
}

// StylesFromConfig applies the "color <element> <spec>" settings over the
// defaults. A spec is a list of colors (names or 0-255) and attributes
// such as bold or reverse; "default" keeps the default style.
func StylesFromConfig(colors map[string]string) Styles {
	s := DefaultStyles()
	targets := map[string]*lipgloss.Style{
		"today":    &s.Today,
		"selected": &s.Selected,
		"weekend":  &s.Weekend,
		"blank":    &s.Blank,
		"header":   &s.Header,
		"high":     &s.High,
		"middle":   &s.Middle,
		"low":      &s.Low,
		"invalid":  &s.Invalid,
	}
	for element, spec := range colors {
		if target, ok := targets[element]; ok {
			*target = applySpec(*target, spec)
		}
	}
	return s
}

var colorNames = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
}

func applySpec(base lipgloss.Style, spec string) lipgloss.Style {
	fields := strings.FieldsFunc(strings.ToLower(spec), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	for _, f := range fields {
		switch f {
		case "default":
			return base
		case "bold":
			base = base.Bold(true)
		case "underline":
			base = base.Underline(true)
		case "reverse":
			base = lipgloss.NewStyle().Reverse(true).Bold(base.GetBold())
		default:
			if code, ok := colorNames[f]; ok {
				f = code
			}
			base = base.Foreground(lipgloss.Color(f))
		}
	}
	return base
}

func (s Styles) Priority(p appointment.Priority) lipgloss.Style {
	switch p {
	case appointment.PriorityHigh:
		return s.High
	case appointment.PriorityLow:
		return s.Low
	default:
		return s.Middle
	}
}
