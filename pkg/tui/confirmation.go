package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationType defines the visual style of the confirmation
type ConfirmationType int

const (
	ConfirmTypeInline ConfirmationType = iota // Simple inline message
	ConfirmTypeDialog                         // Bordered dialog, centered by the caller
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string           // Title for dialog type (optional)
	Message     string           // Main confirmation message
	Warning     string           // Optional warning text (shown in orange)
	Destructive bool             // If true, Yes is red, No is green
	Type        ConfirmationType // Visual style
	YesLabel    string           // Custom label for Yes (default: "Yes")
	NoLabel     string           // Custom label for No (default: "No")
	Width       int              // Width for dialog type
}

// ConfirmationModel handles confirmation prompts
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
	viewWidth int
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration. A prompt
// that is still open is cancelled first and its cancel command returned.
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) tea.Cmd {
	var cmd tea.Cmd
	if m.active {
		cmd = m.Cancel()
	}

	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
	return cmd
}

// Cancel closes the prompt as if the user had answered no
func (m *ConfirmationModel) Cancel() tea.Cmd {
	if !m.active {
		return nil
	}
	m.active = false
	if m.onCancel != nil {
		return m.onCancel()
	}
	return nil
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation. Other keys are swallowed
// while the prompt is open.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y", "enter":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
		return nil

	case "n", "N", "esc", "ctrl+c":
		return m.Cancel()
	}

	return nil
}

// View renders the confirmation based on its type
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	switch m.config.Type {
	case ConfirmTypeDialog:
		return m.renderDialog()
	default:
		return m.renderInline()
	}
}

// ViewWithWidth renders the confirmation with a specific width for centering
func (m *ConfirmationModel) ViewWithWidth(width int) string {
	m.viewWidth = width
	return m.View()
}

func (m *ConfirmationModel) renderInline() string {
	options := formatConfirmOptions(m.config.Destructive)
	message := fmt.Sprintf("%s %s", m.config.Message, options)

	if m.viewWidth > 0 && lipgloss.Width(message) < m.viewWidth {
		return lipgloss.NewStyle().
			Width(m.viewWidth).
			Align(lipgloss.Center).
			Render(message)
	}

	return message
}

func (m *ConfirmationModel) renderDialog() string {
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(1, 2)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))

	width := m.config.Width
	if width == 0 {
		width = 60
	}
	contentWidth := width - 6 // border and padding
	center := lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center)

	var mainContent strings.Builder

	if m.config.Title != "" {
		mainContent.WriteString(center.Render(headerStyle.Render(m.config.Title)))
		mainContent.WriteString("\n\n")
	}

	if m.config.Message != "" {
		mainContent.WriteString(center.Render(m.config.Message))
		mainContent.WriteString("\n")
	}

	if m.config.Warning != "" {
		mainContent.WriteString("\n")
		mainContent.WriteString(center.Render(warningStyle.Render(m.config.Warning)))
		mainContent.WriteString("\n")
	}

	mainContent.WriteString("\n")
	yesNoLabels := fmt.Sprintf("(%s / %s)",
		strings.ToLower(m.config.YesLabel),
		strings.ToLower(m.config.NoLabel))
	mainContent.WriteString(center.Render(formatConfirmOptions(m.config.Destructive) + "  " + yesNoLabels))

	return borderStyle.
		Width(width - 2).
		Render(mainContent.String())
}

// formatConfirmOptions renders the [y/n] hint. Destructive prompts color
// yes red and no green.
func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true)
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)).Bold(true)
	if destructive {
		yes, no = no, yes
	}
	return "[" + yes.Render("y") + "/" + no.Render("n") + "]"
}

// ShowInline opens a single-line confirmation
func (m *ConfirmationModel) ShowInline(message string, destructive bool, onConfirm, onCancel func() tea.Cmd) tea.Cmd {
	return m.Show(ConfirmationConfig{
		Message:     message,
		Destructive: destructive,
		Type:        ConfirmTypeInline,
	}, onConfirm, onCancel)
}

// ShowDialog opens a bordered confirmation dialog
func (m *ConfirmationModel) ShowDialog(title, message, warning string, destructive bool, width int, onConfirm, onCancel func() tea.Cmd) tea.Cmd {
	return m.Show(ConfirmationConfig{
		Title:       title,
		Message:     message,
		Warning:     warning,
		Destructive: destructive,
		Type:        ConfirmTypeDialog,
		Width:       width,
	}, onConfirm, onCancel)
}
