package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/planner"
)

// dialogForm holds the text inputs of the appointment dialog. The planner
// owns the draft; every keystroke that changes an input is forwarded to it.
type dialogForm struct {
	inputs map[planner.Field]*textinput.Model
}

func newDialogForm(st planner.ViewState) *dialogForm {
	values := map[planner.Field]string{
		planner.FieldDescription: st.Draft.Description,
		planner.FieldDate:        st.Draft.Date,
		planner.FieldWarning:     st.Draft.Warning,
		planner.FieldTags:        st.Draft.Tags,
	}

	f := &dialogForm{inputs: make(map[planner.Field]*textinput.Model, len(values))}
	for field, value := range values {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 40
		ti.CharLimit = 256
		if field == planner.FieldDate || field == planner.FieldWarning {
			ti.Placeholder = "dd.mm.yyyy"
			ti.CharLimit = 10
			ti.Width = 12
		}
		ti.SetValue(value)
		f.inputs[field] = &ti
	}
	f.focus(st.Focus)
	return f
}

// focus moves the cursor to field. Priority has no text input, so every
// input is blurred when it is focused.
func (f *dialogForm) focus(field planner.Field) tea.Cmd {
	var cmd tea.Cmd
	for k, ti := range f.inputs {
		if k == field {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return cmd
}

// update feeds msg to the input of field and returns the edit event when
// its text changed.
func (f *dialogForm) update(field planner.Field, msg tea.Msg) (planner.Event, tea.Cmd) {
	ti, ok := f.inputs[field]
	if !ok {
		return nil, nil
	}
	before := ti.Value()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	if ti.Value() == before {
		return nil, cmd
	}
	return fieldEvent(field, ti.Value()), cmd
}

func fieldEvent(field planner.Field, text string) planner.Event {
	switch field {
	case planner.FieldDate:
		return planner.DialogDate{Text: text}
	case planner.FieldWarning:
		return planner.DialogWarning{Text: text}
	case planner.FieldTags:
		return planner.DialogTags{Text: text}
	default:
		return planner.DialogDescription{Text: text}
	}
}

// shiftPriority steps through the priorities in display order, clamping
// at both ends. Positive n lowers the priority.
func shiftPriority(p appointment.Priority, n int) appointment.Priority {
	i := 0
	for j, q := range appointment.Priorities {
		if q == p {
			i = j
		}
	}
	i = max(0, min(len(appointment.Priorities)-1, i+n))
	return appointment.Priorities[i]
}

func (m *Model) viewDialog() string {
	st := m.planner.State()

	title := "New appointment"
	if _, ok := st.Dialog.(planner.Editing); ok {
		title = "Edit appointment"
	}

	rows := []string{m.styles.Header.Render(title), ""}
	for _, field := range planner.Fields {
		label := m.styles.Label.Render(strings.ToUpper(field.String()[:1]) + field.String()[1:] + ":")

		var value string
		if field == planner.FieldPriority {
			p := st.Draft.Priority
			value = m.styles.Priority(p).Render(p.Marker() + " " + p.String())
			if st.Focus == field {
				value = m.styles.Selected.Render("< ") + value + m.styles.Selected.Render(" >")
			}
		} else if ti := m.form.inputs[field]; ti != nil {
			value = ti.View()
		}

		if note := fieldNote(st, field); note != "" {
			value += " " + m.styles.Invalid.Render(note)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, value))
	}

	rows = append(rows, "", m.help.ShortHelpView(m.dialogKeys.ShortHelp()))

	box := m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
}

// fieldNote flags date text that does not parse as the user types, and
// any field named by the last rejected submit.
func fieldNote(st planner.ViewState, field planner.Field) string {
	switch {
	case field == planner.FieldDate && !st.Draft.DateValid,
		field == planner.FieldWarning && !st.Draft.WarningValid:
		return "invalid date"
	case st.Invalid.Has(field):
		return "invalid"
	}
	return ""
}
