package diary

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Zuo-Peng/diarybook/internal/dateparse"
	"github.com/Zuo-Peng/diarybook/internal/period"
	"github.com/Zuo-Peng/diarybook/internal/textparse"
)

func newTestExtractor(mode textparse.Mode) *Extractor {
	dates := dateparse.New()
	dates.Now = func() time.Time { return time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local) }
	return NewExtractor(dates, mode)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseSingleEntry(t *testing.T) {
	text := "# 16.06.2018 21:00 Tobias\n* 01.01.2018-01.03.2018\nIt was a cold winter.\n"

	entries, err := newTestExtractor(textparse.Lenient).Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Title != "Tobias" {
		t.Errorf("title = %q", e.Title)
	}
	if want := time.Date(2018, 6, 16, 21, 0, 0, 0, time.Local); !e.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", e.Timestamp, want)
	}
	if want := period.New(day(2018, 1, 1), day(2018, 3, 2)); !e.Period.Equal(want) {
		t.Errorf("period = %v, want %v", e.Period, want)
	}
	if e.Body != "It was a cold winter." {
		t.Errorf("body = %q", e.Body)
	}
	if e.Line != 1 {
		t.Errorf("line = %d", e.Line)
	}
}

const diary = `Notes before the first entry are ignored.

# 1.1.2019 New year
* 01.01.2019
Fireworks.
Cold hands.

# 03.02.2019 14:30 Skiing
Up the hill.
  and down again

# 10.02.2019 Trip
* 05.02.2019 - 09.02.2019
Long drive.
`

func TestParseMultipleEntries(t *testing.T) {
	entries, err := newTestExtractor(textparse.Lenient).Parse(diary)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	tests := []struct {
		title  string
		line   int
		period period.Period
		body   string
	}{
		{"New year", 3, period.Day(day(2019, 1, 1)), "Fireworks.\nCold hands."},
		{"Skiing", 8, period.Day(day(2019, 2, 3)), "Up the hill.\n  and down again"},
		{"Trip", 12, period.New(day(2019, 2, 5), day(2019, 2, 10)), "Long drive."},
	}
	for i, tt := range tests {
		e := entries[i]
		if e.Title != tt.title || e.Line != tt.line {
			t.Errorf("entry %d = %q at line %d, want %q at line %d", i, e.Title, e.Line, tt.title, tt.line)
		}
		if !e.Period.Equal(tt.period) {
			t.Errorf("%s: period = %v, want %v", tt.title, e.Period, tt.period)
		}
		if e.Body != tt.body {
			t.Errorf("%s: body = %q, want %q", tt.title, e.Body, tt.body)
		}
	}
	if e := entries[1]; e.PeriodRaw != "" {
		t.Errorf("Skiing has period %q", e.PeriodRaw)
	}
	if want := time.Date(2019, 2, 3, 14, 30, 0, 0, time.Local); !entries[1].Timestamp.Equal(want) {
		t.Errorf("Skiing timestamp = %v", entries[1].Timestamp)
	}
}

func TestShortBodyLines(t *testing.T) {
	text := "# 16.06.2018 Short\nA\nok line\n  indented\n"
	for _, mode := range []textparse.Mode{textparse.Lenient, textparse.Strict} {
		entries, err := newTestExtractor(mode).Parse(text)
		if err != nil {
			t.Fatalf("mode %v: %v", mode, err)
		}
		if want := "A\nok line\n  indented"; len(entries) != 1 || entries[0].Body != want {
			t.Fatalf("mode %v: entries = %+v", mode, entries)
		}
	}
}

func TestParseIsIdempotent(t *testing.T) {
	x := newTestExtractor(textparse.Lenient)
	a, err := x.Parse(diary)
	if err != nil {
		t.Fatal(err)
	}
	b, err := x.Parse(diary)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two parses of the same diary differ")
	}

	ta, _ := x.Tree(diary)
	tb, _ := x.Tree(diary)
	if !reflect.DeepEqual(ta, tb) {
		t.Fatal("two trees of the same diary differ")
	}
}

func TestTreeShape(t *testing.T) {
	file, err := newTestExtractor(textparse.Lenient).Tree(diary)
	if err != nil {
		t.Fatal(err)
	}
	entries := textparse.ChildrenOf[*EntryNode](file)
	if len(entries) != 3 {
		t.Fatalf("got %d entry nodes", len(entries))
	}
	if n := len(textparse.NodesOf[*PeriodNode](file)); n != 2 {
		t.Fatalf("got %d period nodes, want 2", n)
	}
	if got := entries[2].PeriodText(); got != "05.02.2019 - 09.02.2019" {
		t.Fatalf("period text = %q", got)
	}
}

func TestStrictModeRejectsStrayLines(t *testing.T) {
	_, err := newTestExtractor(textparse.Strict).Parse(diary)
	var se *textparse.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}
	if se.Line != 1 {
		t.Fatalf("line = %d", se.Line)
	}

	// Without the preamble every line belongs to an entry.
	if _, err := newTestExtractor(textparse.Strict).Parse(diary[len("Notes before the first entry are ignored.\n"):]); err != nil {
		t.Fatalf("strict parse: %v", err)
	}
}

func TestLenientReportsSkippedLines(t *testing.T) {
	x := newTestExtractor(textparse.Lenient)
	var skipped []int
	x.OnSkip = func(line int, _ string) { skipped = append(skipped, line) }
	if _, err := x.Parse(diary); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(skipped, []int{1}) {
		t.Fatalf("skipped = %v", skipped)
	}
}

func TestUnparseableDates(t *testing.T) {
	x := newTestExtractor(textparse.Lenient)

	_, err := x.Parse("# 45.13.2019 Nowhere\ntext")
	if !errors.Is(err, ErrNoTimestamp) {
		t.Fatalf("header: err = %v, want ErrNoTimestamp", err)
	}

	_, err = x.Parse("# 01.01.2019 Somewhere\n* 01.01.2019-40.40.2019\ntext")
	if !errors.Is(err, ErrBadPeriod) {
		t.Fatalf("period: err = %v, want ErrBadPeriod", err)
	}
}

func TestEmptyDiary(t *testing.T) {
	entries, err := newTestExtractor(textparse.Lenient).Parse("\n\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries", len(entries))
	}
}
