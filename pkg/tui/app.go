package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/confedit/pkg/editor"
	"github.com/pluqqy/confedit/pkg/logging"
	"github.com/pluqqy/confedit/pkg/models"
)

type sessionState int

const (
	editorView sessionState = iota
	diffView
)

// QuitPrompt is asked before leaving with unsaved changes
const QuitPrompt = "You have unsaved changes. Quit anyway?"

type App struct {
	state   sessionState
	ctrl    *editor.Controller
	editor  *EditorModel
	diff    *DiffModel
	confirm *ConfirmationModel
	status  *StatusManager
	server  string
	width   int
	height  int
}

// NewApp builds the program model around ctrl. The controller's surface and
// confirmer should be the Bridge that feeds this program.
func NewApp(ctx context.Context, ctrl *editor.Controller, settings *models.Settings) *App {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	return &App{
		state:   editorView,
		ctrl:    ctrl,
		editor:  NewEditorModel(ctx, ctrl, settings.UI),
		diff:    NewDiffModel(),
		confirm: NewConfirmation(),
		status:  NewStatusManager(settings.UI.SuccessBanner, settings.UI.ErrorBanner),
		server:  settings.Server.URL,
	}
}

func (a *App) Init() tea.Cmd {
	return a.editor.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.editor.SetSize(msg.Width, msg.Height)
		a.diff.SetSize(msg.Width, msg.Height-2) // header and banner
		return a, nil

	case textMsg:
		// Keys typed after the push already moved the controller on
		if current := a.ctrl.TextRevision(); msg.revision != current {
			logging.Debug("TUI", "Dropping stale text revision %d (current %d)", msg.revision, current)
			return a, nil
		}
		a.editor.SetText(msg.text)
		return a, nil

	case fileInfoMsg:
		a.editor.info = models.FileInfo(msg)
		return a, nil

	case loadingMsg:
		return a, a.editor.SetLoading(bool(msg))

	case backupsMsg:
		a.editor.backups.SetBackups([]models.Backup(msg))
		return a, nil

	case bannerMsg:
		return a, a.status.ShowFeedback(msg.text, msg.kind)

	case fadeStatusMsg, ClearStatusMsg:
		return a, a.status.Update(msg)

	case confirmRequestMsg:
		reply := msg.reply
		answer := func(v bool) func() tea.Cmd {
			return func() tea.Cmd {
				reply <- v
				return nil
			}
		}
		return a, a.confirm.ShowDialog("Confirm", msg.prompt, "", true, 60, answer(true), answer(false))

	case opDoneMsg:
		handleOpDone(msg)
		return a, nil

	case SwitchViewMsg:
		a.state = msg.view
		if msg.view == diffView {
			a.diff.SetDiff(a.ctrl.Diff())
		}
		return a, nil

	case tea.KeyMsg:
		if a.confirm.Active() {
			return a, a.confirm.Update(msg)
		}
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.state == editorView && msg.Type == tea.KeyEsc {
			return a, a.requestQuit()
		}
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case editorView:
		cmd = a.editor.Update(msg, a.status)
	case diffView:
		// Spinner ticks still belong to the editor
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			cmd = a.diff.Update(msg)
		default:
			cmd = a.editor.Update(msg, a.status)
		}
	}

	return a, cmd
}

// requestQuit leaves the backups pane first, then quits, asking when the
// document has unsaved changes.
func (a *App) requestQuit() tea.Cmd {
	if a.editor.LeaveBackups() {
		return nil
	}
	if !a.ctrl.Dirty() {
		return tea.Quit
	}
	return a.confirm.ShowInline(QuitPrompt, true,
		func() tea.Cmd { return tea.Quit },
		nil,
	)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	header := renderHeader(a.width, "confedit", a.server)

	banner := a.status.View(a.width)
	if a.confirm.Active() && a.confirm.config.Type == ConfirmTypeInline {
		banner = a.confirm.ViewWithWidth(a.width)
	}
	if banner == "" {
		banner = " "
	}

	var content string
	switch a.state {
	case diffView:
		content = a.diff.View()
	default:
		content = a.editor.View()
	}

	screen := lipgloss.JoinVertical(lipgloss.Left, header, banner, content)

	if a.confirm.Active() && a.confirm.config.Type == ConfirmTypeDialog {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			a.confirm.View(),
		)
	}
	return screen
}

// Messages for communication between views
type SwitchViewMsg struct {
	view sessionState
}
