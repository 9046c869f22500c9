package tui

import (
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/diarybook/internal/book"
	"github.com/Zuo-Peng/diarybook/internal/diary"
	"github.com/Zuo-Peng/diarybook/internal/period"
	"github.com/Zuo-Peng/diarybook/internal/photo"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2018, m, d, 0, 0, 0, 0, time.UTC)
}

func testChapters() []book.Chapter {
	return []book.Chapter{
		{
			Period:  period.Days(day(1, 1), day(3, 1)),
			Entries: []diary.Entry{{Title: "Tobias", Body: "It was a cold winter."}},
			Photos:  []photo.Photo{{Path: "a.jpg", Timestamp: day(1, 19)}},
		},
		{
			Period: period.New(day(4, 8), day(5, 31)),
			Photos: []photo.Photo{{Path: "b.jpg", Timestamp: day(4, 8)}, {Path: "c.jpg", Timestamp: day(5, 31)}},
		},
		{
			Period:  period.Day(day(6, 16)),
			Entries: []diary.Entry{{Title: "Midsummer", Body: "Warm night by the fjord."}},
		},
	}
}

func TestFilterChapters(t *testing.T) {
	chapters := testChapters()
	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{0, 1, 2}},
		{"COLD", []int{0}},
		{"05.2018", []int{1}},
		{"warm fjord", []int{2}},
		{"warm winter", nil},
	}
	for _, tt := range tests {
		if got := filterChapters(chapters, tt.query); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("filter %q = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestFormatChapterLine(t *testing.T) {
	chapters := testChapters()

	rows := formatChapterLine(chapters[0], 40, true)
	if len(rows) != linesPerItem {
		t.Fatalf("got %d rows", len(rows))
	}
	if !strings.Contains(rows[0], "Tobias") || !strings.Contains(rows[0], "01.01.18") {
		t.Fatalf("line 1 = %q", rows[0])
	}
	if !strings.Contains(rows[1], "cold winter") {
		t.Fatalf("line 2 = %q", rows[1])
	}

	rows = formatChapterLine(chapters[1], 40, false)
	if !strings.Contains(rows[1], "2 photos") {
		t.Fatalf("gap line 2 = %q", rows[1])
	}
}

func TestUpdateNavigatesAndSelects(t *testing.T) {
	var m tea.Model = initialModel(testChapters(), "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	mm := m.(model)
	if mm.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", mm.cursor)
	}
	if !strings.Contains(mm.View(), "3/3 chapters, 3 photos") {
		t.Fatal("status bar missing counts")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm = m.(model)
	if mm.selected == nil || mm.selected.Title() != "Midsummer" {
		t.Fatalf("selected = %+v", mm.selected)
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestDebouncedFilterAppliesLatestQuery(t *testing.T) {
	var m tea.Model = initialModel(testChapters(), "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	mm := m.(model)
	mm.query = "fjord"
	m, _ = mm.Update(debounceTickMsg{query: "cold"}) // stale
	if got := len(m.(model).visible); got != 3 {
		t.Fatalf("stale tick filtered to %d", got)
	}

	m, _ = m.Update(debounceTickMsg{query: "fjord"})
	mm = m.(model)
	if !reflect.DeepEqual(mm.visible, []int{2}) || mm.cursor != 0 {
		t.Fatalf("visible = %v cursor = %d", mm.visible, mm.cursor)
	}
}

func TestPreviewIgnoresStaleRender(t *testing.T) {
	var m tea.Model = initialModel(testChapters(), "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	w := m.(model).previewWidth()

	m, _ = m.Update(previewRenderedMsg{index: 1, width: w, content: "stale"})
	if m.(model).previewIdx != -1 {
		t.Fatal("stale preview applied")
	}
	m, _ = m.Update(previewRenderedMsg{index: 0, width: w, content: "fresh"})
	if m.(model).previewIdx != 0 {
		t.Fatal("current preview not applied")
	}
}

func TestFilterReloadsPreviewForSameChapter(t *testing.T) {
	var m tea.Model = initialModel(testChapters(), "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	w := m.(model).previewWidth()
	m, _ = m.Update(previewRenderedMsg{index: 0, width: w, content: "plain"})

	mm := m.(model)
	mm.query = "cold"
	m, cmd := mm.Update(debounceTickMsg{query: "cold"})
	if cmd == nil {
		t.Fatal("expected a preview reload for the new query")
	}
	if got := m.(model).previewIdx; got != -1 {
		t.Fatalf("previewIdx = %d, want -1 until the new render arrives", got)
	}
	msg, ok := cmd().(previewRenderedMsg)
	if !ok || msg.index != 0 {
		t.Fatalf("reload msg = %#v", msg)
	}
}
