package install

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/ptsetup/internal/messages"
)

// DefaultChangesMaxLines caps the rendered package diff.
const DefaultChangesMaxLines = 200

const changesContextLines = 3

const (
	changesFromName = "packages (before)"
	changesToName   = "packages (after)"
)

// Changes renders a unified diff between two `pip freeze` listings.
// It returns an empty string when the package sets are equal. The second
// result reports whether the diff was cut at maxLines.
func Changes(before string, after string, maxLines int) (string, bool) {
	from := normalizeFreeze(before)
	to := normalizeFreeze(after)
	if from == to {
		return "", false
	}
	diff, err := udiff.ToUnified(changesFromName, changesToName, from, freezeEdits(from, to), changesContextLines)
	if err != nil {
		diff = udiff.Unified(changesFromName, changesToName, from, to)
	}
	lines := splitDiffLines(diff)
	if maxLines <= 0 {
		maxLines = DefaultChangesMaxLines
	}
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n") + "\n", false
	}
	truncated := append(lines[:maxLines:maxLines], fmt.Sprintf(messages.InstallChangesTruncatedFmt, maxLines))
	return strings.Join(truncated, "\n") + "\n", true
}

// normalizeFreeze sorts freeze lines case-insensitively so ordering and line
// endings do not show up as changes.
func normalizeFreeze(listing string) string {
	var lines []string
	for _, line := range strings.Split(listing, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ""
	}
	sort.SliceStable(lines, func(a, b int) bool {
		return strings.ToLower(lines[a]) < strings.ToLower(lines[b])
	})
	return strings.Join(lines, "\n") + "\n"
}

// freezeEdits walks two normalized listings in sort order and returns
// whole-line edits against from. Adjacent deletions and insertions share
// one edit so an upgrade renders as a -/+ pair.
func freezeEdits(from string, to string) []udiff.Edit {
	old := splitDiffLines(from)
	next := splitDiffLines(to)
	var edits []udiff.Edit
	add := func(offset int, removed int, inserted string) {
		if n := len(edits); n > 0 && edits[n-1].End == offset {
			edits[n-1].End += removed
			edits[n-1].New += inserted
			return
		}
		edits = append(edits, udiff.Edit{Start: offset, End: offset + removed, New: inserted})
	}

	offset, i, j := 0, 0, 0
	for i < len(old) || j < len(next) {
		switch {
		case i < len(old) && j < len(next) && old[i] == next[j]:
			offset += len(old[i]) + 1
			i++
			j++
		case j == len(next) || i < len(old) && strings.ToLower(old[i]) <= strings.ToLower(next[j]):
			add(offset, len(old[i])+1, "")
			offset += len(old[i]) + 1
			i++
		default:
			add(offset, 0, next[j]+"\n")
			j++
		}
	}
	return edits
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
