package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
	"github.com/cwarden/planer/internal/grid"
)

const (
	miniMonthWidth = 20
	detailLines    = 5
)

func (m *Model) today() calendar.Date {
	return calendar.FromTime(m.now())
}

func (m *Model) viewHelp() string {
	h := m.help
	h.ShowAll = true
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render("Planer Help"),
		"",
		h.View(m.keys),
		"",
		m.styles.Normal.Render("In the appointment dialog:"),
		h.FullHelpView(m.dialogKeys.FullHelp()),
		"",
		m.styles.Help.Render("Mouse wheel moves, ctrl+wheel zooms. Press any key to return..."),
	)
}

// dayStyle picks the style of a day number, strongest first.
func (m *Model) dayStyle(d calendar.Date, anchor calendar.Date) lipgloss.Style {
	switch {
	case d.SameDay(anchor):
		return m.styles.Selected
	case d.SameDay(m.today()):
		return m.styles.Today
	case d.WeekdayIndex() >= 5:
		return m.styles.Weekend
	default:
		return m.styles.Normal
	}
}

func (m *Model) label(a appointment.Appointment) string {
	var b strings.Builder
	b.WriteString(a.Priority.Marker())
	b.WriteByte(' ')
	if a.Date.HasClock() {
		b.WriteString(a.Date.Format(m.config.TimeFormat))
		b.WriteByte(' ')
	}
	b.WriteString(a.Description)
	return b.String()
}

func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

func (m *Model) viewMonth() string {
	st := m.planner.State()
	g := grid.BuildMonth(st.Anchor, m.planner.Store())

	colW := max(6, m.width/7)
	// Title, weekday header, detail panel and status bar.
	avail := m.height - 3 - (detailLines + 1)
	rowH := max(2, avail/len(g.Rows))

	headers := make([]string, 7)
	for i, name := range grid.Weekdays {
		style := m.styles.Header
		if i >= 5 {
			style = m.styles.Weekend.Bold(true)
		}
		headers[i] = style.Width(colW).Render(fit(name, colW-1))
	}

	lines := []string{
		m.styles.Title.Render(g.First.Format(m.config.DateFormat)),
		lipgloss.JoinHorizontal(lipgloss.Top, headers...),
	}
	for _, row := range g.Rows {
		cells := make([]string, 7)
		for i, c := range row {
			cells[i] = m.renderCell(c, colW, rowH, st.Anchor)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	lines = append(lines, "", m.renderDayDetail(st.Anchor))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderCell(c grid.Cell, width, height int, anchor calendar.Date) string {
	box := lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height)
	if c.Blank {
		return box.Inherit(m.styles.Blank).Render(strings.Repeat("·", min(2, width)))
	}

	lines := []string{m.dayStyle(c.Date, anchor).Render(fmt.Sprintf("%2d", c.Date.Day))}
	items := sortForDisplay(c.Appointments)
	room := height - 1
	for i, a := range items {
		if i == room-1 && len(items) > room {
			lines = append(lines, m.styles.Help.Render(fmt.Sprintf("+%d more", len(items)-i)))
			break
		}
		if i >= room {
			break
		}
		lines = append(lines, m.styles.Priority(a.Priority).Render(fit(m.label(a), width-1)))
	}
	return box.Render(strings.Join(lines, "\n"))
}

// renderDayDetail lists the anchor day's appointments with the selection
// marked.
func (m *Model) renderDayDetail(day calendar.Date) string {
	items := m.dayAppointments(day)
	header := m.styles.Header.Render(fmt.Sprintf("%s, %s", grid.WeekdayName(day), day))
	if len(items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.styles.Help.Render("  No appointments"))
	}

	lines := []string{header}
	start := 0
	if m.selected >= detailLines {
		start = m.selected - detailLines + 1
	}
	for i := start; i < len(items) && i < start+detailLines; i++ {
		lines = append(lines, m.renderItem(items[i], i == m.selected, m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderItem(a appointment.Appointment, selected bool, width int) string {
	text := m.label(a)
	if len(a.Tags) > 0 {
		text += " [" + appointment.JoinTags(a.Tags) + "]"
	}
	text = fit("  "+text, width)
	if selected {
		return m.styles.Selected.Render(text)
	}
	return m.styles.Priority(a.Priority).Render(text)
}

func (m *Model) viewYear() string {
	st := m.planner.State()
	y := grid.BuildYear(st.Anchor, m.planner.Store())

	// The year is laid out as rows of months, as many as fit across.
	cols := max(1, min(grid.YearColumns, m.width/(miniMonthWidth+2)))
	var months []string
	for r := range grid.YearRows {
		for c := range grid.YearColumns {
			months = append(months, m.renderMiniMonth(y.Months[r][c], st.Anchor))
		}
	}

	lines := []string{m.styles.Title.Render(fmt.Sprintf("%d", y.Year))}
	for i := 0; i < len(months); i += cols {
		row := months[i:min(i+cols, len(months))]
		spaced := make([]string, 0, 2*len(row))
		for _, mm := range row {
			spaced = append(spaced, mm, "  ")
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, spaced...))
	}
	lines = append(lines, "", m.renderDayDetail(st.Anchor))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderMiniMonth draws one month of the year view. Days with
// appointments take the color of their most urgent one.
func (m *Model) renderMiniMonth(g grid.Month, anchor calendar.Date) string {
	title := m.styles.Header.Width(miniMonthWidth).Align(lipgloss.Center).Render(g.First.Format("January"))

	names := make([]string, 7)
	for i := range 7 {
		names[i] = grid.ShortWeekday(i)
	}
	lines := []string{title, m.styles.Help.Render(strings.Join(names, " "))}

	for _, row := range g.Rows {
		days := make([]string, 7)
		for i, c := range row {
			if c.Blank {
				days[i] = "  "
				continue
			}
			style := m.dayStyle(c.Date, anchor)
			if len(c.Appointments) > 0 && !c.Date.SameDay(anchor) {
				style = m.styles.Priority(mostUrgent(c.Appointments)).Underline(true)
			}
			days[i] = style.Render(fmt.Sprintf("%2d", c.Date.Day))
		}
		lines = append(lines, strings.Join(days, " "))
	}
	return lipgloss.NewStyle().Width(miniMonthWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func mostUrgent(items []appointment.Appointment) appointment.Priority {
	p := appointment.PriorityLow
	for _, a := range items {
		if a.Priority < p {
			p = a.Priority
		}
	}
	return p
}

func (m *Model) viewWeek() string {
	st := m.planner.State()
	w := grid.BuildWeek(st.Anchor, m.planner.Store())

	colW := max(10, m.width/7)
	height := max(3, m.height-2)

	last := w.Start
	for _, c := range w.Days {
		if !c.Blank {
			last = c.Date
		}
	}
	title := m.styles.Title.Render(fmt.Sprintf("Week of %s - %s", w.Start, last))

	cols := make([]string, 7)
	for i, c := range w.Days {
		box := lipgloss.NewStyle().Width(colW).Height(height).MaxHeight(height)
		if c.Blank {
			cols[i] = box.Inherit(m.styles.Blank).Render("")
			continue
		}

		header := fmt.Sprintf("%s %s", grid.ShortWeekday(i), c.Date.Format("02.01."))
		lines := []string{m.dayStyle(c.Date, st.Anchor).Render(header)}
		for j, a := range sortForDisplay(c.Appointments) {
			text := m.label(a)
			if len(a.Tags) > 0 {
				text += " [" + appointment.JoinTags(a.Tags) + "]"
			}
			if m.config.WrapText {
				text = wordwrap.String(text, colW-1)
			} else {
				text = fit(text, colW-1)
			}
			style := m.styles.Priority(a.Priority)
			if c.Date.SameDay(st.Anchor) && j == m.selected {
				style = m.styles.Selected
			}
			lines = append(lines, style.Render(text))
		}
		cols[i] = box.Render(strings.Join(lines, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

func (m *Model) renderStatusBar() string {
	st := m.planner.State()
	left := fmt.Sprintf(" %s | %s | Appointments: %d",
		st.Anchor,
		st.Depth,
		m.planner.Store().Len())
	if m.planner.Store().Dirty() {
		left += " | modified"
	}

	right := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.message != "" {
		if m.messageErr {
			right = m.styles.Error.Render(m.message)
		} else {
			right = m.styles.Message.Render(m.message)
		}
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left+middle) + right
}
