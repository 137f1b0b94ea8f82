package editor

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp classifies a line in a LineDiff result.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// String renders the line with a unified-diff style marker.
func (l DiffLine) String() string {
	switch l.Op {
	case DiffInsert:
		return "+ " + l.Text
	case DiffDelete:
		return "- " + l.Text
	default:
		return "  " + l.Text
	}
}

// LineDiff diffs a against b at line granularity.
func LineDiff(a, b string) []DiffLine {
	a, b = terminate(a), terminate(b)
	dmp := diffmatchpatch.New()

	// Map each distinct line to a rune so DiffMain works on whole lines.
	charsA, charsB, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(charsA, charsB, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out []DiffLine
	for _, d := range diffs {
		var op DiffOp
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		default:
			op = DiffEqual
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}
	return out
}

// terminate adds a final newline so a missing one is not reported as a
// changed last line.
func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// HasChanges reports whether any line was inserted or deleted.
func HasChanges(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}

// Stats counts inserted and deleted lines.
func Stats(lines []DiffLine) (added, removed int) {
	for _, l := range lines {
		switch l.Op {
		case DiffInsert:
			added++
		case DiffDelete:
			removed++
		}
	}
	return added, removed
}
