package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/diarybook/internal/book"
)

// linesPerItem is the number of terminal lines each chapter occupies.
const linesPerItem = 2

// renderList renders the left panel: the filtered chapter list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.visible) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No chapters")
		return empty
	}

	var lines []string
	for i, idx := range m.visible {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatChapterLine(m.chapters[idx], width, i == m.cursor)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatChapterLine formats a chapter as two lines:
//
//	line 1: [>] kind  date  title
//	line 2:    first body line or photo count (dimmed)
func formatChapterLine(c book.Chapter, width int, selected bool) []string {
	var kind string
	if c.IsGap() {
		kind = styleKindGap.Render("photo")
	} else {
		kind = styleKindText.Render("diary")
	}

	date := c.EffectiveTime().Format("02.01.06")

	// Truncate title to fit width: leave room for prefix "  kind DD.MM.YY "
	title := strings.ReplaceAll(c.Title(), "\n", " ")
	titleMax := width - 2 - 6 - 9 - 1
	if titleMax < 0 {
		titleMax = 0
	}
	if runewidth.StringWidth(title) > titleMax {
		title = runewidth.Truncate(title, titleMax, "")
	}

	line1 := fmt.Sprintf("%s %s %s", kind, date, title)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	detail := fmt.Sprintf("%d photos", len(c.Photos))
	if body := c.Body(); body != "" {
		detail = strings.ReplaceAll(body, "\n", " ")
		detail = strings.ReplaceAll(detail, "\t", " ")
	}
	detailMax := width - 4 // indent
	if detailMax < 0 {
		detailMax = 0
	}
	if runewidth.StringWidth(detail) > detailMax {
		detail = runewidth.Truncate(detail, detailMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}

// filterChapters returns the indexes of chapters whose title, dates or text
// contain every word of query, ignoring case.
func filterChapters(chapters []book.Chapter, query string) []int {
	words := strings.Fields(strings.ToLower(query))
	var out []int
	for i, c := range chapters {
		hay := strings.ToLower(c.Title() + "\n" + c.DateRange() + "\n" + c.Body())
		match := true
		for _, w := range words {
			if !strings.Contains(hay, w) {
				match = false
				break
			}
		}
		if match {
			out = append(out, i)
		}
	}
	return out
}
