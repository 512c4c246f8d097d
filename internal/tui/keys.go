package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Remove    key.Binding
	Submit    key.Binding
	Save      key.Binding
	Leave     key.Binding
	Cancel    key.Binding
	Focus     key.Binding
	FocusBack key.Binding
	Quit      key.Binding
}

// Leave covers the keys that move off the edit field; they save the edit.
func newKeyMap() keyMap {
	return keyMap{
		Prev:      key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/→", "ubah")),
		Next:      key.NewBinding(key.WithKeys("right", "l", "+", " ")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "pilih")),
		Down:      key.NewBinding(key.WithKeys("down", "j")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "ceklist")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "ubah")),
		Remove:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "hapus")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "tambah")),
		Save:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "simpan")),
		Leave:     key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "batal")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "berikutnya")),
		FocusBack: key.NewBinding(key.WithKeys("shift+tab")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "keluar")),
	}
}

// ShortHelp lists the bindings for the focused area.
func (a *App) ShortHelp() []key.Binding {
	k := a.keys
	if a.editing {
		return []key.Binding{k.Save, k.Cancel}
	}
	switch a.focus {
	case focusRoom, focusQuantity:
		return []key.Binding{k.Prev, k.Focus, k.Quit}
	case focusDescription:
		return []key.Binding{k.Submit, k.Focus}
	default:
		return []key.Binding{k.Up, k.Toggle, k.Edit, k.Remove, k.Focus, k.Quit}
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}
