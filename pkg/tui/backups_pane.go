package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/pluqqy/confedit/pkg/models"
)

// backupsPaneWidth is the outer width of the pane including its border
const backupsPaneWidth = 34

// BackupsPane lists server backups, newest first, and tracks a selection.
type BackupsPane struct {
	backups []models.Backup
	cursor  int
	offset  int
	focused bool
	width   int
	height  int
	now     func() time.Time
}

// NewBackupsPane creates an empty pane
func NewBackupsPane() *BackupsPane {
	return &BackupsPane{
		width: backupsPaneWidth,
		now:   time.Now,
	}
}

// SetSize sets the outer dimensions
func (p *BackupsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.clampOffset()
}

// SetBackups replaces the list, keeping the selection on the same file
// when it is still present.
func (p *BackupsPane) SetBackups(backups []models.Backup) {
	selected, ok := p.Selected()
	p.backups = backups
	p.cursor = 0
	if ok {
		for i, b := range backups {
			if b.Filename == selected.Filename {
				p.cursor = i
				break
			}
		}
	}
	p.clampOffset()
}

// Backups returns the current list
func (p *BackupsPane) Backups() []models.Backup {
	return p.backups
}

// Focus and Blur toggle keyboard focus
func (p *BackupsPane) Focus() { p.focused = true }
func (p *BackupsPane) Blur()  { p.focused = false }

// Focused reports whether the pane has keyboard focus
func (p *BackupsPane) Focused() bool { return p.focused }

// MoveUp moves the selection up one entry
func (p *BackupsPane) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
	p.clampOffset()
}

// MoveDown moves the selection down one entry
func (p *BackupsPane) MoveDown() {
	if p.cursor < len(p.backups)-1 {
		p.cursor++
	}
	p.clampOffset()
}

// Selected returns the highlighted backup
func (p *BackupsPane) Selected() (models.Backup, bool) {
	if p.cursor < 0 || p.cursor >= len(p.backups) {
		return models.Backup{}, false
	}
	return p.backups[p.cursor], true
}

// itemHeight is the number of lines one backup entry takes
const itemHeight = 3

// visibleItems is how many entries fit inside the border
func (p *BackupsPane) visibleItems() int {
	rows := p.height - 4 // border and title
	if rows < itemHeight {
		return 1
	}
	return rows / itemHeight
}

func (p *BackupsPane) clampOffset() {
	visible := p.visibleItems()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+visible {
		p.offset = p.cursor - visible + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// View renders the pane
func (p *BackupsPane) View() string {
	contentWidth := p.width - 4 // border and padding
	if contentWidth < 10 {
		contentWidth = 10
	}

	var b strings.Builder
	b.WriteString(GetActiveHeaderStyle(p.focused).Render(fmt.Sprintf("Backups (%d)", len(p.backups))))
	b.WriteString("\n\n")

	if len(p.backups) == 0 {
		b.WriteString(EmptyInactiveStyle.Render("No backups available"))
	}

	end := p.offset + p.visibleItems()
	if end > len(p.backups) {
		end = len(p.backups)
	}
	for i := p.offset; i < end; i++ {
		backup := p.backups[i]
		name := truncate.StringWithTail(backup.DisplayName(), uint(contentWidth-2), "…")
		modified := backup.ModifiedAt.Local().Format("2006-01-02 15:04:05")
		detail := truncate.StringWithTail(
			fmt.Sprintf("%s · %s", humanize.RelTime(backup.ModifiedAt, p.now(), "ago", "from now"), humanize.IBytes(uint64(backup.SizeBytes))),
			uint(contentWidth-2), "…")

		if i == p.cursor && p.focused {
			b.WriteString(SelectedStyle.Width(contentWidth).Render("▸ " + name))
		} else {
			b.WriteString(NormalStyle.Render("  " + name))
		}
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render("  " + modified))
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render("  " + detail))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	style := GetPaneBorderStyle(p.focused).
		Width(p.width - 2).
		Padding(0, 1)
	if p.height > 2 {
		style = style.Height(p.height - 2)
	}
	return style.Render(lipgloss.NewStyle().MaxWidth(contentWidth).Render(b.String()))
}
