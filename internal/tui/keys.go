package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Focus key.Binding

	// Dashboards
	Create      key.Binding
	Rename      key.Binding
	Delete      key.Binding
	Confirm     key.Binding
	ReorderUp   key.Binding
	ReorderDown key.Binding

	// Boxes
	AddBox    key.Binding
	RemoveBox key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Narrower  key.Binding
	Wider     key.Binding
	Shorter   key.Binding
	Taller    key.Binding
	Copy      key.Binding
	CopyAll   key.Binding
	Search    key.Binding
	Refresh   key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back, k.Focus},
		{k.Create, k.Rename, k.Delete, k.ReorderUp, k.ReorderDown},
		{k.AddBox, k.RemoveBox, k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Narrower, k.Wider, k.Shorter, k.Taller},
		{k.Copy, k.CopyAll, k.Search, k.Refresh, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
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
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "home"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next box"),
		),
		Create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new dashboard"),
		),
		Rename: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete dashboard"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		ReorderUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move dashboard up"),
		),
		ReorderDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move dashboard down"),
		),
		AddBox: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add box"),
		),
		RemoveBox: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove box"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "move left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "move right"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "move down"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "narrower"),
		),
		Wider: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "wider"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "shorter"),
		),
		Taller: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "taller"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy URL"),
		),
		CopyAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "copy all as JSON"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
