package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PanUp    key.Binding
	PanDown  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Reset    key.Binding
	Files    key.Binding
	Faces    key.Binding
	Open     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓←→", "orbit")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Left:     key.NewBinding(key.WithKeys("left", "h")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		PanUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑↓←→", "pan")),
		PanDown:  key.NewBinding(key.WithKeys("shift+down", "J")),
		PanLeft:  key.NewBinding(key.WithKeys("shift+left", "H")),
		PanRight: key.NewBinding(key.WithKeys("shift+right", "L")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset view")),
		Files:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "datasets")),
		Faces:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "faces")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.PanUp, k.ZoomIn, k.Reset, k.Files, k.Faces, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.PanUp, k.ZoomIn, k.Reset},
		{k.Files, k.Open, k.Faces},
		{k.Help, k.Quit},
	}
}
