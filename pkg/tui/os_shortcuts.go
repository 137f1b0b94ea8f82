package tui

import (
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// currentOS is overridden in tests
var currentOS = func() string { return runtime.GOOS }

// GetOS returns the current operating system type
func GetOS() OSType {
	switch currentOS() {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations.
// Default always works; the OS entry is an extra key for terminals that
// swallow the default.
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string
}

// Get returns the key shown in help for the current OS
func (s ShortcutKey) Get() string {
	switch GetOS() {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Keys returns every key that triggers the shortcut on the current OS
func (s ShortcutKey) Keys() []string {
	keys := []string{s.Default}
	if alt := s.Get(); alt != s.Default {
		keys = append(keys, alt)
	}
	return keys
}

// Shortcuts holds every key the editor responds to
var Shortcuts = struct {
	Save     ShortcutKey
	Reload   ShortcutKey
	Format   ShortcutKey
	Validate ShortcutKey
	Reset    ShortcutKey
	Diff     ShortcutKey
	Copy     ShortcutKey

	SwitchPane ShortcutKey
	Up         ShortcutKey
	Down       ShortcutKey
	Restore    ShortcutKey

	Quit   ShortcutKey
	Cancel ShortcutKey
}{
	Save: ShortcutKey{
		Linux:   "alt+s", // Ctrl+S is XOFF unless ixon is off
		Default: "ctrl+s",
	},
	Reload: ShortcutKey{
		Default: "ctrl+r",
	},
	// Terminals cannot tell ctrl+shift+f from ctrl+f
	Format: ShortcutKey{
		Default: "ctrl+f",
	},
	Validate: ShortcutKey{
		Default: "ctrl+t",
	},
	Reset: ShortcutKey{
		Linux:   "alt+z", // Some shells still deliver SIGTSTP
		Default: "ctrl+z",
	},
	Diff: ShortcutKey{
		Default: "ctrl+d",
	},
	Copy: ShortcutKey{
		Default: "ctrl+y",
	},
	SwitchPane: ShortcutKey{
		Default: "tab",
	},
	Up: ShortcutKey{
		Default: "up",
	},
	Down: ShortcutKey{
		Default: "down",
	},
	Restore: ShortcutKey{
		Default: "enter",
	},
	Quit: ShortcutKey{
		Default: "ctrl+c",
	},
	Cancel: ShortcutKey{
		Default: "esc",
	},
}

// FormatShortcutForHelp formats a shortcut key for display in help text
func FormatShortcutForHelp(key ShortcutKey) string {
	return formatKey(key.Get())
}

// FormatAllForHelp lists every key of the shortcut, e.g. "^s/M-s"
func FormatAllForHelp(key ShortcutKey) string {
	keys := key.Keys()
	for i, k := range keys {
		keys[i] = formatKey(k)
	}
	return strings.Join(keys, "/")
}

func formatKey(shortcut string) string {
	if GetOS() == OSLinux || GetOS() == OSWindows {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
	shortcut = strings.ReplaceAll(shortcut, "shift+", "⇧")

	switch shortcut {
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return shortcut
}
