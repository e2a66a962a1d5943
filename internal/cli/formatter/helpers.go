package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// StatusPill returns a colored status indicator such as "● In Progress".
func StatusPill(st domain.Status) string {
	switch st {
	case domain.StatusCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.StatusInProgress:
		return StyleBlue.Render("● In Progress")
	case domain.StatusPending:
		return StyleYellow.Render("○ Pending")
	case domain.StatusNew:
		return StyleFg.Render("+ New")
	default:
		return StyleDim.Render(string(st))
	}
}

// PriorityBadge renders a priority label, "--" when blank.
func PriorityBadge(priority string) string {
	if strings.TrimSpace(priority) == "" {
		return StyleDim.Render("--")
	}
	return PriorityColor(priority).Render(priority)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// Placeholder returns "--" for blank values.
func Placeholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}

// Timestamp formats a journal time in UTC.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return Dim("--")
	}
	return t.UTC().Format("2006-01-02 15:04")
}
