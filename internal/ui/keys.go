package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Today    key.Binding
	Goto     key.Binding
	Reload   key.Binding
	New      key.Binding
	QuickAdd key.Binding
	Edit     key.Binding
	Delete   key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	PrevItem key.Binding
	NextItem key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Year     key.Binding
	Month    key.Binding
	Week     key.Binding

	// Arrow keys are fixed: up and down page through the visible unit,
	// left and right zoom.
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

// newKeyMap builds the key map from the "bind" settings, action to key.
// Actions without a key are disabled.
func newKeyMap(bindings map[string]string) keyMap {
	bind := func(action, help string, extra ...string) key.Binding {
		var keys []string
		if k := bindings[action]; k != "" {
			keys = append(keys, k)
		}
		keys = append(keys, extra...)
		if len(keys) == 0 {
			return key.NewBinding(key.WithDisabled())
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
	}

	return keyMap{
		Quit:     bind("quit", "quit", "ctrl+c"),
		Help:     bind("help", "help"),
		Today:    bind("today", "today"),
		Goto:     bind("goto_date", "go to date"),
		Reload:   bind("reload", "reload"),
		New:      bind("new_appointment", "new"),
		QuickAdd: bind("quick_add", "quick add"),
		Edit:     bind("edit_appointment", "edit"),
		Delete:   bind("delete_appointment", "delete"),
		PrevDay:  bind("prev_day", "prev day"),
		NextDay:  bind("next_day", "next day"),
		PrevWeek: bind("prev_week", "prev week"),
		NextWeek: bind("next_week", "next week"),
		PrevItem: bind("prev_item", "prev appointment"),
		NextItem: bind("next_item", "next appointment"),
		ZoomIn:   bind("zoom_in", "zoom in"),
		ZoomOut:  bind("zoom_out", "zoom out"),
		Year:     bind("view_year", "year view"),
		Month:    bind("view_month", "month view"),
		Week:     bind("view_week", "week view"),
		Up: key.NewBinding(
			key.WithKeys("up", "pgup"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "pgdown"),
			key.WithHelp("↓", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "zoom out"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "zoom in"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Goto, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek},
		{k.Today, k.Goto, k.ZoomIn, k.ZoomOut, k.Year, k.Month, k.Week},
		{k.New, k.QuickAdd, k.Edit, k.Delete, k.PrevItem, k.NextItem},
		{k.Reload, k.Help, k.Quit},
	}
}

// dialogKeyMap is active while the appointment dialog is open.
type dialogKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
	Lower  key.Binding
	Raise  key.Binding
}

func newDialogKeyMap() dialogKeyMap {
	return dialogKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Lower: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "lower priority"),
		),
		Raise: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "raise priority"),
		),
	}
}

func (k dialogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Cancel}
}

func (k dialogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Submit, k.Cancel, k.Lower, k.Raise}}
}
