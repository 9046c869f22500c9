// Package diary reads a diary file into dated entries.
//
// An entry starts with a header line "# <date> [<time>] <title>", may carry
// one period line "* <date>" or "* <date>-<date>", and owns every text line
// up to the next header. Without a period line an entry covers the day of
// its header timestamp.
package diary

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Zuo-Peng/diarybook/internal/dateparse"
	"github.com/Zuo-Peng/diarybook/internal/period"
	"github.com/Zuo-Peng/diarybook/internal/textparse"
)

var (
	ErrNoTimestamp = errors.New("entry header has no parseable timestamp")
	ErrBadPeriod   = errors.New("period line has no parseable date")
)

// Entry is a diary entry with its dates resolved.
type Entry struct {
	Title        string
	TimestampRaw string
	PeriodRaw    string // "" when the entry has no period line
	Body         string
	Line         int

	Timestamp time.Time
	Period    period.Period
}

// Extractor parses diary text. Dates resolves header and period tokens.
type Extractor struct {
	Dates  *dateparse.Parser
	Mode   textparse.Mode
	OnSkip func(line int, text string)
}

func NewExtractor(dates *dateparse.Parser, mode textparse.Mode) *Extractor {
	return &Extractor{Dates: dates, Mode: mode}
}

// Tree returns the raw content tree without resolving dates.
func (x *Extractor) Tree(text string) (*textparse.File, error) {
	p := &textparse.Parser{
		Finders: []*textparse.Finder{entryFinder},
		Mode:    x.Mode,
		OnSkip:  x.OnSkip,
	}
	return p.Parse(text)
}

// Parse returns the entries of text in file order.
func (x *Extractor) Parse(text string) ([]Entry, error) {
	file, err := x.Tree(text)
	if err != nil {
		return nil, err
	}

	nodes := textparse.NodesOf[*EntryNode](file)
	entries := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		e, err := x.resolve(n)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line(), err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (x *Extractor) ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return x.Parse(string(data))
}

func (x *Extractor) resolve(n *EntryNode) (Entry, error) {
	e := Entry{
		Title:        n.Title,
		TimestampRaw: n.Timestamp,
		PeriodRaw:    n.PeriodText(),
		Body:         n.Text(),
		Line:         n.Line(),
	}

	ts, ok := x.parseDate(e.TimestampRaw)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNoTimestamp, e.TimestampRaw)
	}
	e.Timestamp = ts

	p, err := x.resolvePeriod(e.PeriodRaw, ts)
	if err != nil {
		return Entry{}, err
	}
	e.Period = p
	return e, nil
}

// resolvePeriod turns a period token into whole days: one date covers that
// day, two dates cover the first through the last day inclusive.
func (x *Extractor) resolvePeriod(raw string, ts time.Time) (period.Period, error) {
	if raw == "" {
		return period.Day(ts), nil
	}
	first, last, ranged := strings.Cut(raw, "-")
	start, ok := x.parseDate(first)
	if !ok {
		return period.Period{}, fmt.Errorf("%w: %q", ErrBadPeriod, raw)
	}
	if !ranged {
		return period.Day(start), nil
	}
	end, ok := x.parseDate(last)
	if !ok {
		return period.Period{}, fmt.Errorf("%w: %q", ErrBadPeriod, raw)
	}
	return period.Days(start, end), nil
}

func (x *Extractor) parseDate(s string) (time.Time, bool) {
	dates := x.Dates
	if dates == nil {
		dates = dateparse.New()
	}
	return dates.Parse(strings.TrimSpace(s), dateparse.Options{FullText: true})
}
