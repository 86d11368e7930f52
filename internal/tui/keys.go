package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down   key.Binding
	Add        key.Binding
	Submit     key.Binding
	Blur       key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Toggle     key.Binding
	Save       key.Binding
	Cancel     key.Binding
	EditToggle key.Binding
	Quit       key.Binding

	// which bindings ShortHelp shows
	editing, formFocused bool
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:        key.NewBinding(key.WithKeys("tab", "a"), key.WithHelp("a/tab", "add")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Blur:       key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "back to list")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "complete")),
		Save:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		EditToggle: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "complete")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	switch {
	case k.editing:
		return []key.Binding{k.Save, k.Cancel, k.EditToggle}
	case k.formFocused:
		return []key.Binding{k.Submit, k.Blur}
	default:
		return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Toggle, k.Quit}
	}
}

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
