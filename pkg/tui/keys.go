package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap binds Shortcuts to bubbles key bindings
type KeyMap struct {
	Save     key.Binding
	Reload   key.Binding
	Format   key.Binding
	Validate key.Binding
	Reset    key.Binding
	Diff     key.Binding
	Copy     key.Binding

	SwitchPane key.Binding
	Up         key.Binding
	Down       key.Binding
	Restore    key.Binding

	Quit   key.Binding
	Cancel key.Binding
}

func binding(s ShortcutKey, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(s.Keys()...),
		key.WithHelp(FormatAllForHelp(s), desc),
	)
}

// DefaultKeyMap returns the editor key bindings for the current OS
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save:       binding(Shortcuts.Save, "save"),
		Reload:     binding(Shortcuts.Reload, "reload"),
		Format:     binding(Shortcuts.Format, "format"),
		Validate:   binding(Shortcuts.Validate, "validate"),
		Reset:      binding(Shortcuts.Reset, "reset"),
		Diff:       binding(Shortcuts.Diff, "diff"),
		Copy:       binding(Shortcuts.Copy, "copy"),
		SwitchPane: binding(Shortcuts.SwitchPane, "backups"),
		Up:         binding(Shortcuts.Up, "up"),
		Down:       binding(Shortcuts.Down, "down"),
		Restore:    binding(Shortcuts.Restore, "restore"),
		Quit:       binding(Shortcuts.Quit, "quit"),
		Cancel:     binding(Shortcuts.Cancel, "quit"),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Format, k.Validate, k.Reset, k.Reload, k.Diff, k.Copy, k.SwitchPane, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Reload, k.Reset},
		{k.Format, k.Validate, k.Diff, k.Copy},
		{k.SwitchPane, k.Up, k.Down, k.Restore},
		{k.Cancel, k.Quit},
	}
}

// backupsKeyMap is shown while the backups pane has focus
type backupsKeyMap struct{ KeyMap }

func (k backupsKeyMap) ShortHelp() []key.Binding {
	up, down := k.Up, k.Down
	up.SetHelp("↑/↓", "select")
	down.SetEnabled(false)
	switchPane := k.SwitchPane
	switchPane.SetHelp(FormatAllForHelp(Shortcuts.SwitchPane), "editor")
	return []key.Binding{up, down, k.Restore, k.Reload, switchPane, k.Cancel}
}
