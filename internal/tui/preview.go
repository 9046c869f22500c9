package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/diarybook/internal/book"
	"github.com/Zuo-Peng/diarybook/internal/render"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	index   int
	width   int
	content string
}

// loadPreviewCmd returns a tea.Cmd that renders the chapter preview async.
func loadPreviewCmd(c book.Chapter, index int, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content := render.RenderChapter(c, render.Options{
			Width:      width,
			Query:      query,
			ShowPeriod: true,
		})
		return previewRenderedMsg{index: index, width: width, content: content}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
