package ui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/planer/internal/appointment"
)

// deleteConfirm asks before an appointment is removed.
type deleteConfirm struct {
	form      *huh.Form
	id        int
	confirmed bool
}

func newDeleteConfirm(a appointment.Appointment) *deleteConfirm {
	c := &deleteConfirm{id: a.ID}
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q on %s?", a.Description, a.Date)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&c.confirmed),
		),
	).WithShowHelp(false)
	return c
}

func (m *Model) viewConfirm() string {
	box := m.styles.Dialog.Render(m.confirm.form.View())
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
}
