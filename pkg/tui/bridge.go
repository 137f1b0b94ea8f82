package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/confedit/pkg/models"
)

// Messages delivered from the controller to the program
type (
	fileInfoMsg models.FileInfo
	loadingMsg  bool
	backupsMsg  []models.Backup

	// textMsg is dropped on arrival when revision is no longer the
	// controller's current one.
	textMsg struct {
		text     string
		revision uint64
	}

	bannerMsg struct {
		text string
		kind StatusType
	}

	// confirmRequestMsg carries a question from a controller goroutine.
	// reply is buffered so answering never blocks the program.
	confirmRequestMsg struct {
		prompt string
		reply  chan bool
	}
)

// Bridge implements editor.Surface and editor.Confirmer for the TUI. The
// controller calls it from tea.Cmd goroutines; each call is queued and
// delivered to the program in order without blocking the caller.
type Bridge struct {
	mu      sync.Mutex
	queue   []tea.Msg
	wake    chan struct{}
	done    chan struct{}
	started bool
	stopped bool
}

// NewBridge returns a bridge that buffers messages until Start is called.
func NewBridge() *Bridge {
	return &Bridge{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Start delivers queued and future messages through send, usually
// (*tea.Program).Send. It must be called at most once.
func (b *Bridge) Start(send func(tea.Msg)) {
	b.mu.Lock()
	if b.started || b.stopped {
		b.mu.Unlock()
		return
	}
	b.started = true
	b.mu.Unlock()

	go b.pump(send)
}

// Stop ends delivery. Pending questions are answered with no.
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.stopped = true
	b.queue = nil
	close(b.done)
}

func (b *Bridge) pump(send func(tea.Msg)) {
	for {
		select {
		case <-b.done:
			return
		case <-b.wake:
		}

		for {
			b.mu.Lock()
			if b.stopped || len(b.queue) == 0 {
				b.mu.Unlock()
				break
			}
			msg := b.queue[0]
			b.queue[0] = nil
			b.queue = b.queue[1:]
			b.mu.Unlock()

			send(msg)
		}
	}
}

func (b *Bridge) post(msg tea.Msg) {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.queue = append(b.queue, msg)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bridge) SetText(text string, revision uint64) {
	b.post(textMsg{text: text, revision: revision})
}

func (b *Bridge) SetFileInfo(info models.FileInfo) { b.post(fileInfoMsg(info)) }

func (b *Bridge) SetLoading(loading bool) { b.post(loadingMsg(loading)) }

func (b *Bridge) ShowSuccess(msg string) { b.post(bannerMsg{text: msg, kind: StatusTypeSuccess}) }

func (b *Bridge) ShowError(msg string) { b.post(bannerMsg{text: msg, kind: StatusTypeError}) }

func (b *Bridge) SetBackups(backups []models.Backup) {
	b.post(backupsMsg(append([]models.Backup(nil), backups...)))
}

// Confirm shows a dialog and waits for the answer. It returns false when
// ctx is done or the bridge is stopped first.
func (b *Bridge) Confirm(ctx context.Context, prompt string) bool {
	reply := make(chan bool, 1)
	b.post(confirmRequestMsg{prompt: prompt, reply: reply})

	select {
	case answer := <-reply:
		return answer
	case <-ctx.Done():
		return false
	case <-b.done:
		return false
	}
}
