package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/confedit/pkg/editor"
	"github.com/pluqqy/confedit/pkg/models"
)

var (
	_ editor.Surface   = (*Bridge)(nil)
	_ editor.Confirmer = (*Bridge)(nil)
)

type collector struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (c *collector) send(msg tea.Msg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *collector) wait(t *testing.T, n int) []tea.Msg {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		if len(c.msgs) >= n {
			out := append([]tea.Msg(nil), c.msgs...)
			c.mu.Unlock()
			return out
		}
		c.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d messages", n)
	return nil
}

func TestBridgeDeliversInOrder(t *testing.T) {
	b := NewBridge()
	defer b.Stop()

	// Messages posted before Start are buffered
	b.SetLoading(true)
	b.SetText("{}", 3)

	c := &collector{}
	b.Start(c.send)

	b.SetFileInfo(models.FileInfo{SizeBytes: 2})
	b.SetLoading(false)
	b.ShowSuccess("done")
	b.ShowError("oops")
	b.SetBackups([]models.Backup{{Filename: "config_backup_20240101_000000.json"}})

	msgs := c.wait(t, 7)

	if got, ok := msgs[0].(loadingMsg); !ok || !bool(got) {
		t.Errorf("msgs[0] = %#v, want loadingMsg(true)", msgs[0])
	}
	if got, ok := msgs[1].(textMsg); !ok || got.text != "{}" || got.revision != 3 {
		t.Errorf("msgs[1] = %#v, want textMsg", msgs[1])
	}
	if got, ok := msgs[2].(fileInfoMsg); !ok || got.SizeBytes != 2 {
		t.Errorf("msgs[2] = %#v, want fileInfoMsg", msgs[2])
	}
	if got, ok := msgs[3].(loadingMsg); !ok || bool(got) {
		t.Errorf("msgs[3] = %#v, want loadingMsg(false)", msgs[3])
	}
	if got, ok := msgs[4].(bannerMsg); !ok || got.kind != StatusTypeSuccess || got.text != "done" {
		t.Errorf("msgs[4] = %#v, want success banner", msgs[4])
	}
	if got, ok := msgs[5].(bannerMsg); !ok || got.kind != StatusTypeError {
		t.Errorf("msgs[5] = %#v, want error banner", msgs[5])
	}
	if got, ok := msgs[6].(backupsMsg); !ok || len(got) != 1 {
		t.Errorf("msgs[6] = %#v, want backupsMsg", msgs[6])
	}
}

func TestBridgeDoesNotBlockCaller(t *testing.T) {
	b := NewBridge()
	defer b.Stop()

	block := make(chan struct{})
	b.Start(func(tea.Msg) { <-block })
	defer close(block)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.ShowSuccess("x")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("surface calls blocked on a busy program")
	}
}

func TestBridgeConfirm(t *testing.T) {
	b := NewBridge()
	defer b.Stop()

	b.Start(func(msg tea.Msg) {
		if req, ok := msg.(confirmRequestMsg); ok {
			req.reply <- req.prompt == "yes?"
		}
	})

	if !b.Confirm(context.Background(), "yes?") {
		t.Error("expected yes")
	}
	if b.Confirm(context.Background(), "no?") {
		t.Error("expected no")
	}
}

func TestBridgeConfirmCancelled(t *testing.T) {
	b := NewBridge()
	defer b.Stop()
	b.Start(func(tea.Msg) {})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if b.Confirm(ctx, "never answered") {
		t.Error("cancelled question should count as no")
	}
}

func TestBridgeStopAnswersNo(t *testing.T) {
	b := NewBridge()
	b.Start(func(tea.Msg) {})

	result := make(chan bool, 1)
	go func() { result <- b.Confirm(context.Background(), "pending") }()

	time.Sleep(10 * time.Millisecond)
	b.Stop()

	select {
	case got := <-result:
		if got {
			t.Error("stopped bridge should answer no")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Confirm did not return after Stop")
	}

	// Posting after Stop is a no-op
	b.ShowSuccess("ignored")
	b.Stop()
}
