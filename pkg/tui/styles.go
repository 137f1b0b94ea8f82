package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242" // Even dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorError    = "196" // Red for errors (same as danger)
	ColorAdded    = "42"  // Diff insertions
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	ContentPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)

	EmptyInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	// Banner styles, one per status type
	SuccessBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWhite)).
				Background(lipgloss.Color(ColorSuccess)).
				Bold(true).
				Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWhite)).
				Background(lipgloss.Color(ColorError)).
				Bold(true).
				Padding(0, 1)

	FadingBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Padding(0, 1)

	// Loading overlay
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Padding(1, 3)

	// Diff lines
	DiffAddedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAdded))

	DiffRemovedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDanger))

	DiffContextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorNormal))
)

// Dynamic styles that depend on state
func GetActiveHeaderStyle(isActive bool) lipgloss.Style {
	color := ColorInactive
	if isActive {
		color = ColorActive
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color))
}

// GetPaneBorderStyle returns the border for a pane depending on focus
func GetPaneBorderStyle(isActive bool) lipgloss.Style {
	if isActive {
		return ActiveBorderStyle
	}
	return InactiveBorderStyle
}

// GetFileStatusStyle colors the Modified/Saved label
func GetFileStatusStyle(dirty bool) lipgloss.Style {
	if dirty {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Bold(true)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSuccess))
}
