package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Toggle       key.Binding
	SetAvailable key.Binding
	SetWork      key.Binding
	SetLeave     key.Binding
	AddRow       key.Binding
	RenameRow    key.Binding
	DeleteRow    key.Binding
	IncludeRow   key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	MoreRequired key.Binding
	LessRequired key.Binding
	Week         key.Binding
	Undo         key.Binding
	Redo         key.Binding
	Filter       key.Binding
	Export       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.AddRow, k.Undo, k.Filter, k.Export, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.SetAvailable, k.SetWork, k.SetLeave},
		{k.AddRow, k.RenameRow, k.DeleteRow, k.IncludeRow, k.MoveUp, k.MoveDown},
		{k.MoreRequired, k.LessRequired, k.Week, k.Export},
		{k.Undo, k.Redo, k.Filter, k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "cycle tile"),
		),
		SetAvailable: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "available"),
		),
		SetWork: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "work"),
		),
		SetLeave: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "leave"),
		),
		AddRow: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add row"),
		),
		RenameRow: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename row"),
		),
		DeleteRow: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete row"),
		),
		IncludeRow: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "include/exclude"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move row up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move row down"),
		),
		MoreRequired: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more required"),
		),
		LessRequired: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer required"),
		),
		Week: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "pick week"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r", "ctrl+y"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter rows"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// rowScoped reports whether msg acts on the row under the cursor.
func (k KeyMap) rowScoped(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Toggle, k.SetAvailable, k.SetWork, k.SetLeave,
		k.IncludeRow, k.MoveUp, k.MoveDown, k.RenameRow, k.DeleteRow)
}
