package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/diarybook/internal/book"
	"github.com/Zuo-Peng/diarybook/internal/dateparse"
	"github.com/Zuo-Peng/diarybook/internal/period"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "book.tex")

	day := time.Date(2018, 5, 17, 0, 0, 0, 0, time.UTC)
	b := book.Book{Title: "Test", Chapters: []book.Chapter{{Period: period.Day(day)}}}
	if err := writeAtomic(path, b); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `\title{Test}`) {
		t.Fatalf("output = %s", data)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, "out", ".diarybook-*"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestBound(t *testing.T) {
	dates := dateparse.New()
	dates.Location = time.UTC
	a := &app{dates: dates}

	got, err := a.bound("", "01.01.2018")
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("config fallback = %v", got)
	}

	got, err = a.bound("summer 2018", "01.01.2018")
	if err != nil {
		t.Fatal(err)
	}
	if got.Month() != time.June {
		t.Fatalf("flag value = %v", got)
	}

	if got, err := a.bound("", ""); err != nil || !got.IsZero() {
		t.Fatalf("empty bound = %v %v", got, err)
	}
	if _, err := a.bound("whenever", ""); err == nil {
		t.Fatal("expected error for text without a date")
	}
}
