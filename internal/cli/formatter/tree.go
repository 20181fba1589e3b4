package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one node in a tree display.
type TreeItem struct {
	Title  string
	Code   string // shown dimmed before the title when set
	Level  int
	IsLast bool
	Badge  string // right-aligned, e.g. the computation mode
	Detail string // right-most column, right-aligned, e.g. a total
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree using box-drawing connectors.
// Badges start one column past the widest title; details are right-aligned
// to the widest detail.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
		detail  string
	}

	lines := make([]lineInfo, len(items))
	maxContent, maxBadge, maxDetail := 0, 0, 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Code != "" {
			title = StyleDim.Render(item.Code+" ") + title
		}
		if item.Level == 0 {
			title = Bold(title)
		}
		lines[idx].content = StyleDim.Render(prefix) + title
		if item.Badge != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Badge + " ]")
		}
		lines[idx].detail = item.Detail

		if w := lipgloss.Width(lines[idx].content); w > maxContent {
			maxContent = w
		}
		if w := lipgloss.Width(lines[idx].badge); w > maxBadge {
			maxBadge = w
		}
		if w := lipgloss.Width(item.Detail); w > maxDetail {
			maxDetail = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		row := li.content
		if maxBadge > 0 || li.detail != "" {
			row += strings.Repeat(" ", maxContent-lipgloss.Width(li.content)+2)
			row += li.badge + strings.Repeat(" ", maxBadge-lipgloss.Width(li.badge))
		}
		if li.detail != "" {
			row += "  " + strings.Repeat(" ", maxDetail-lipgloss.Width(li.detail)) + li.detail
		}
		b.WriteString(strings.TrimRight(row, " ") + "\n")
	}
	return b.String()
}
