package search

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/diarybook/internal/diary"
	"github.com/Zuo-Peng/diarybook/internal/index"
	"github.com/Zuo-Peng/diarybook/internal/period"
)

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("%q does not contain %q", s, sub)
	}
}

func seed(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "search.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	day := func(m time.Month, d int) time.Time { return time.Date(2018, m, d, 0, 0, 0, 0, time.Local) }
	entries := []diary.Entry{
		{Title: "Tobias", Line: 1, Timestamp: day(6, 16), Period: period.Days(day(1, 1), day(3, 1)), Body: "It was a cold winter."},
		{Title: "Easter", Line: 5, Timestamp: day(4, 1), Period: period.Day(day(4, 1)), Body: "Skiing in the mountains, cold but sunny."},
		{Title: "旅行", Line: 9, Timestamp: day(7, 1), Period: period.Day(day(7, 1)), Body: "我们去了北京。"},
	}
	if err := index.IndexDiary(db, entries); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestSearchFTS(t *testing.T) {
	db := seed(t)

	results, err := Search(db, Options{Query: "cold"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		mustContain(t, r.Snippet, ">>>cold<<<")
	}

	results, err = Search(db, Options{Query: "winter"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Tobias" || results[0].LineNumber != 1 {
		t.Fatalf("results = %+v", results)
	}
}

func TestSearchTitleAndPunctuation(t *testing.T) {
	db := seed(t)
	results, err := Search(db, Options{Query: "easter"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].EntryID != 2 {
		t.Fatalf("results = %+v", results)
	}

	// Quoted terms keep FTS5 operators out of the way.
	if _, err := Search(db, Options{Query: "cold-but"}); err != nil {
		t.Fatalf("hyphenated query: %v", err)
	}
}

func TestSearchDateFilter(t *testing.T) {
	db := seed(t)
	results, err := Search(db, Options{
		Query: "cold",
		Since: time.Date(2018, 3, 15, 0, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Easter" {
		t.Fatalf("results = %+v", results)
	}

	results, err = Search(db, Options{
		Query: "cold",
		Until: time.Date(2018, 2, 1, 0, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Tobias" {
		t.Fatalf("results = %+v", results)
	}
}

func TestSearchCJK(t *testing.T) {
	db := seed(t)
	results, err := Search(db, Options{Query: "北京"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	mustContain(t, results[0].Snippet, ">>>北京<<<")
}

func TestSearchEmptyQuery(t *testing.T) {
	db := seed(t)
	results, err := Search(db, Options{Query: "  "})
	if err != nil || results != nil {
		t.Fatalf("results = %v, err = %v", results, err)
	}
}

func TestMakeSnippet(t *testing.T) {
	text := strings.Repeat("a", 50) + "Needle" + strings.Repeat("b", 50)
	s := makeSnippet(text, "needle", 5)
	if s != "...aaaaa>>>Needle<<<bbbbb..." {
		t.Fatalf("snippet = %q", s)
	}

	if s := makeSnippet("short", "zzz", 10); s != "short" {
		t.Fatalf("no match snippet = %q", s)
	}
}
