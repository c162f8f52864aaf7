package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptKind int

const (
	promptGoto promptKind = iota
	promptQuickAdd
)

// prompt is the one-line input shown in place of the status bar.
type prompt struct {
	kind  promptKind
	input textinput.Model
}

func newPrompt(kind promptKind) *prompt {
	ti := textinput.New()
	ti.CharLimit = 256
	switch kind {
	case promptGoto:
		ti.Prompt = "Go to: "
		ti.Placeholder = "15.03.2024, next friday, march 2025"
	case promptQuickAdd:
		ti.Prompt = "Add: "
		ti.Placeholder = "tomorrow 14:00 dentist"
	}
	ti.Focus()
	return &prompt{kind: kind, input: ti}
}

func (p *prompt) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *prompt) view() string {
	return p.input.View()
}
