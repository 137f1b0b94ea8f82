package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/pluqqy/confedit/pkg/editor"
	"github.com/pluqqy/confedit/pkg/logging"
	"github.com/pluqqy/confedit/pkg/models"
)

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

// minBackupsWidth is the narrowest window that still shows the backups pane
const minBackupsWidth = 90

// opDoneMsg reports a finished controller operation
type opDoneMsg struct {
	op  string
	err error
}

// EditorModel is the main screen: the document text area, file info line
// and backups pane.
type EditorModel struct {
	ctx  context.Context
	ctrl *editor.Controller
	keys KeyMap
	help help.Model

	textarea textarea.Model
	spinner  spinner.Model
	backups  *BackupsPane
	info     models.FileInfo
	loading  int

	showBackups bool
	width       int
	height      int
	now         func() time.Time
}

// NewEditorModel creates the editor screen for ctrl
func NewEditorModel(ctx context.Context, ctrl *editor.Controller, settings models.UISettings) *EditorModel {
	ta := textarea.New()
	ta.Placeholder = "Loading config..."
	ta.ShowLineNumbers = settings.ShowLineNumbers
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	return &EditorModel{
		ctx:         ctx,
		ctrl:        ctrl,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		textarea:    ta,
		spinner:     s,
		backups:     NewBackupsPane(),
		showBackups: settings.ShowBackups,
		now:         time.Now,
	}
}

// Init starts the initial load and backup listing
func (m *EditorModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.run("load", m.ctrl.Load),
		m.run("list backups", m.ctrl.ListBackups),
	)
}

// SetSize lays out the text area and backups pane
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	bodyHeight := m.bodyHeight()
	editorWidth := width
	if m.backupsVisible() {
		editorWidth -= backupsPaneWidth
		m.backups.SetSize(backupsPaneWidth, bodyHeight)
	}
	m.textarea.SetWidth(editorWidth - 2) // border
	m.textarea.SetHeight(bodyHeight - 2)
}

// bodyHeight is the height left after header, info line, banner and help
func (m *EditorModel) bodyHeight() int {
	h := m.height - 4
	if h < 3 {
		return 3
	}
	return h
}

func (m *EditorModel) backupsVisible() bool {
	return m.showBackups && m.width >= minBackupsWidth
}

// run wraps a blocking controller call in a command
func (m *EditorModel) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

// SetText replaces the text area content without reporting an edit
func (m *EditorModel) SetText(text string) {
	m.textarea.SetValue(text)
	m.textarea.Placeholder = ""
}

// SetLoading tracks in-flight requests and starts the spinner on the first
func (m *EditorModel) SetLoading(loading bool) tea.Cmd {
	if loading {
		m.loading++
		if m.loading == 1 {
			return m.spinner.Tick
		}
		return nil
	}
	if m.loading > 0 {
		m.loading--
	}
	return nil
}

// Loading reports whether any request is in flight
func (m *EditorModel) Loading() bool {
	return m.loading > 0
}

// Update handles spinner ticks and keys for the editor screen. Local
// feedback such as clipboard results goes to status.
func (m *EditorModel) Update(msg tea.Msg, status *StatusManager) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loading == 0 {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return m.handleKey(msg, status)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return cmd
}

func (m *EditorModel) handleKey(msg tea.KeyMsg, status *StatusManager) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Save):
		if !m.ctrl.Dirty() {
			return nil
		}
		return m.run("save", m.ctrl.Save)

	case key.Matches(msg, m.keys.Reload):
		return tea.Batch(
			m.run("load", m.ctrl.Load),
			m.run("list backups", m.ctrl.ListBackups),
		)

	case key.Matches(msg, m.keys.Format):
		if err := m.ctrl.FormatText(); err == nil {
			m.SetText(m.ctrl.Text())
		}
		return nil

	case key.Matches(msg, m.keys.Validate):
		m.ctrl.ValidateText()
		return nil

	case key.Matches(msg, m.keys.Reset):
		return m.run("reset", m.ctrl.ResetChanges)

	case key.Matches(msg, m.keys.Diff):
		return func() tea.Msg { return SwitchViewMsg{view: diffView} }

	case key.Matches(msg, m.keys.Copy):
		if err := clipboardWrite(m.ctrl.Text()); err != nil {
			logging.Warn("TUI", "clipboard: %v", err)
			return status.ShowError("Failed to copy: " + err.Error())
		}
		return status.ShowSuccess("Copied to clipboard")

	case key.Matches(msg, m.keys.SwitchPane):
		m.toggleFocus()
		return nil
	}

	if m.backups.Focused() {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.backups.MoveUp()
		case key.Matches(msg, m.keys.Down):
			m.backups.MoveDown()
		case key.Matches(msg, m.keys.Restore):
			if backup, ok := m.backups.Selected(); ok {
				filename := backup.Filename
				return m.run("restore", func(ctx context.Context) error {
					return m.ctrl.RestoreBackup(ctx, filename)
				})
			}
		}
		return nil
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if after := m.textarea.Value(); after != before {
		m.ctrl.OnTextEdited(after)
	}
	return cmd
}

func (m *EditorModel) toggleFocus() {
	if m.backups.Focused() {
		m.backups.Blur()
		m.textarea.Focus()
		return
	}
	if !m.backupsVisible() {
		return
	}
	m.backups.Focus()
	m.textarea.Blur()
}

// LeaveBackups returns focus to the text area. It reports whether focus
// moved.
func (m *EditorModel) LeaveBackups() bool {
	if !m.backups.Focused() {
		return false
	}
	m.toggleFocus()
	return true
}

// handleOpDone logs failed operations; the controller has already shown them
func handleOpDone(msg opDoneMsg) {
	if msg.err == nil || errors.Is(msg.err, editor.ErrCancelled) || errors.Is(msg.err, context.Canceled) {
		return
	}
	logging.Debug("TUI", "%s failed: %v", msg.op, msg.err)
}

// fileInfoLine renders size, Modified/Saved and the load time
func (m *EditorModel) fileInfoLine() string {
	if m.info.LoadedAt.IsZero() {
		return DescriptionStyle.Render("No config loaded")
	}
	parts := []string{
		DescriptionStyle.Render("Size: " + humanize.IBytes(uint64(m.info.SizeBytes))),
		GetFileStatusStyle(m.info.Dirty).Render(m.info.Status()),
		DescriptionStyle.Render(fmt.Sprintf("Loaded %s (%s)",
			m.info.LoadedAt.Local().Format("15:04:05"),
			humanize.RelTime(m.info.LoadedAt, m.now(), "ago", "from now"))),
	}
	return strings.Join(parts, DescriptionStyle.Render(" · "))
}

// View renders the editor screen body, info line and help
func (m *EditorModel) View() string {
	editorPane := GetPaneBorderStyle(!m.backups.Focused()).Render(m.textarea.View())

	if m.loading > 0 {
		overlay := OverlayStyle.Render(m.spinner.View() + " Loading…")
		editorPane = lipgloss.Place(
			lipgloss.Width(editorPane), lipgloss.Height(editorPane),
			lipgloss.Center, lipgloss.Center,
			overlay,
		)
	}

	body := editorPane
	if m.backupsVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, editorPane, m.backups.View())
	}

	var helpView string
	if m.backups.Focused() {
		helpView = m.help.View(backupsKeyMap{m.keys})
	} else {
		helpView = m.help.View(m.keys)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ContentPaddingStyle.Render(m.fileInfoLine()),
		body,
		ContentPaddingStyle.Render(helpView),
	)
}
