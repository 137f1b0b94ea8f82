package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/confedit/pkg/editor"
)

// DiffModel shows the unsaved changes as a scrollable line diff
type DiffModel struct {
	viewport viewport.Model
	help     help.Model
	back     key.Binding
	lines    []editor.DiffLine
	width    int
	height   int
}

// NewDiffModel creates an empty diff view
func NewDiffModel() *DiffModel {
	return &DiffModel{
		viewport: viewport.New(0, 0),
		help:     help.New(),
		back: key.NewBinding(
			key.WithKeys("esc", "q", Shortcuts.Diff.Default),
			key.WithHelp("esc", "back"),
		),
	}
}

// SetSize updates the viewport dimensions
func (m *DiffModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 4 // title, borders, help
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.help.Width = width
	m.render()
}

// SetDiff replaces the diff shown
func (m *DiffModel) SetDiff(lines []editor.DiffLine) {
	m.lines = lines
	m.render()
	m.viewport.GotoTop()
}

func (m *DiffModel) render() {
	if !editor.HasChanges(m.lines) {
		m.viewport.SetContent(EmptyInactiveStyle.Render("No unsaved changes"))
		return
	}

	var b strings.Builder
	for i, line := range m.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		switch line.Op {
		case editor.DiffInsert:
			b.WriteString(DiffAddedStyle.Render(line.String()))
		case editor.DiffDelete:
			b.WriteString(DiffRemovedStyle.Render(line.String()))
		default:
			b.WriteString(DiffContextStyle.Render(line.String()))
		}
	}
	m.viewport.SetContent(b.String())
}

// Update handles scrolling and leaving the view
func (m *DiffModel) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.back) {
		return func() tea.Msg { return SwitchViewMsg{view: editorView} }
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// View renders the diff pane
func (m *DiffModel) View() string {
	added, removed := editor.Stats(m.lines)
	title := GetActiveHeaderStyle(true).Render("Unsaved changes") + " " +
		DiffAddedStyle.Render(fmt.Sprintf("+%d", added)) + " " +
		DiffRemovedStyle.Render(fmt.Sprintf("-%d", removed))

	pane := ActiveBorderStyle.
		Width(m.width - 2).
		Render(m.viewport.View())

	scroll := DescriptionStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	footer := m.help.ShortHelpView([]key.Binding{m.back}) + "  " + scroll

	return lipgloss.JoinVertical(lipgloss.Left,
		ContentPaddingStyle.Render(title),
		pane,
		ContentPaddingStyle.Render(footer),
	)
}
