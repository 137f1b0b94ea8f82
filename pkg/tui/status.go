package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

// fadeDuration is how long a banner stays dimmed before it is removed.
const fadeDuration = 300 * time.Millisecond

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeError
)

// StatusFeedback represents a temporary banner
type StatusFeedback struct {
	ID      uint64
	Message string
	Type    StatusType
	Fading  bool
}

// Icon returns the glyph shown before the message
func (s StatusFeedback) Icon() string {
	if s.Type == StatusTypeError {
		return "×"
	}
	return "✓"
}

// StatusManager shows one banner at a time. Each banner gets an ID so that
// timers started for a replaced banner do nothing when they fire.
type StatusManager struct {
	CurrentStatus   *StatusFeedback
	SuccessDuration time.Duration
	ErrorDuration   time.Duration
	nextID          uint64
}

// NewStatusManager creates a new status manager
func NewStatusManager(success, failure time.Duration) *StatusManager {
	if success <= 0 {
		success = 3 * time.Second
	}
	if failure <= 0 {
		failure = 5 * time.Second
	}
	return &StatusManager{
		SuccessDuration: success,
		ErrorDuration:   failure,
	}
}

// fadeStatusMsg starts the fade of banner id
type fadeStatusMsg struct{ id uint64 }

// ClearStatusMsg removes banner id
type ClearStatusMsg struct{ id uint64 }

// ShowFeedback replaces any visible banner and schedules its fade
func (sm *StatusManager) ShowFeedback(message string, statusType StatusType) tea.Cmd {
	sm.nextID++
	id := sm.nextID
	sm.CurrentStatus = &StatusFeedback{
		ID:      id,
		Message: message,
		Type:    statusType,
	}

	duration := sm.SuccessDuration
	if statusType == StatusTypeError {
		duration = sm.ErrorDuration
	}
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return fadeStatusMsg{id: id}
	})
}

// ShowSuccess shows a success banner
func (sm *StatusManager) ShowSuccess(message string) tea.Cmd {
	return sm.ShowFeedback(message, StatusTypeSuccess)
}

// ShowError shows an error banner
func (sm *StatusManager) ShowError(message string) tea.Cmd {
	return sm.ShowFeedback(message, StatusTypeError)
}

// Update advances the banner lifecycle. Messages for banners that have
// since been replaced are ignored.
func (sm *StatusManager) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case fadeStatusMsg:
		if sm.CurrentStatus == nil || sm.CurrentStatus.ID != msg.id {
			return nil
		}
		sm.CurrentStatus.Fading = true
		id := msg.id
		return tea.Tick(fadeDuration, func(time.Time) tea.Msg {
			return ClearStatusMsg{id: id}
		})
	case ClearStatusMsg:
		if sm.CurrentStatus != nil && sm.CurrentStatus.ID == msg.id {
			sm.CurrentStatus = nil
		}
	}
	return nil
}

// Clear removes the current banner
func (sm *StatusManager) Clear() {
	sm.CurrentStatus = nil
}

// IsActive checks if a banner is currently showing
func (sm *StatusManager) IsActive() bool {
	return sm.CurrentStatus != nil
}

// GetStatus returns the current banner text if one is showing
func (sm *StatusManager) GetStatus() (string, bool) {
	if sm.CurrentStatus == nil {
		return "", false
	}
	return fmt.Sprintf("%s %s", sm.CurrentStatus.Icon(), sm.CurrentStatus.Message), true
}

// View renders the banner wrapped to width, or an empty string
func (sm *StatusManager) View(width int) string {
	text, ok := sm.GetStatus()
	if !ok {
		return ""
	}
	if width > 4 {
		text = wordwrap.String(text, width-2) // banner padding
	}
	switch {
	case sm.CurrentStatus.Fading:
		return FadingBannerStyle.Render(text)
	case sm.CurrentStatus.Type == StatusTypeError:
		return ErrorBannerStyle.Render(text)
	default:
		return SuccessBannerStyle.Render(text)
	}
}
