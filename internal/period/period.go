package period

import (
	"fmt"
	"time"
)

// Period is a half-open interval [Start, End). A zero bound means the
// period is undefined; undefined periods contain nothing.
type Period struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) Period {
	return Period{Start: start, End: end}
}

// Day returns the 24 hour period starting at midnight of t.
func Day(t time.Time) Period {
	start := Midnight(t)
	return Period{Start: start, End: start.AddDate(0, 0, 1)}
}

// Days returns the period from midnight of first through the end of last.
func Days(first, last time.Time) Period {
	return Period{Start: Midnight(first), End: Midnight(last).AddDate(0, 0, 1)}
}

// Midnight floors t to 00:00 in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (p Period) Defined() bool {
	return !p.Start.IsZero() && !p.End.IsZero()
}

// Contains reports whether Start <= t < End.
func (p Period) Contains(t time.Time) bool {
	if !p.Defined() {
		return false
	}
	return !t.Before(p.Start) && t.Before(p.End)
}

// ContainsPeriod reports whether o lies inside p. o.Start must fall in
// [p.Start, p.End) while o.End may land exactly on p.End.
func (p Period) ContainsPeriod(o Period) bool {
	if !p.Defined() || !o.Defined() {
		return false
	}
	startIn := !o.Start.Before(p.Start) && o.Start.Before(p.End)
	endIn := p.Start.Before(o.End) && !o.End.After(p.End)
	return startIn && endIn
}

// Combine returns the smallest period covering both p and o. Disjoint
// periods are bridged, not split.
func (p Period) Combine(o Period) Period {
	switch {
	case p.Start.IsZero() && o.Start.IsZero():
		return Period{}
	case p.Start.IsZero():
		return o
	case o.Start.IsZero():
		return p
	}
	out := p
	if o.Start.Before(out.Start) {
		out.Start = o.Start
	}
	if o.End.After(out.End) {
		out.End = o.End
	}
	return out
}

func (p Period) Equal(o Period) bool {
	return p.Start.Equal(o.Start) && p.End.Equal(o.End)
}

func (p Period) String() string {
	if !p.Defined() {
		return "<Period: undefined>"
	}
	return fmt.Sprintf("<Period: %s %s>", p.Start.Format("2006-01-02 15:04:05"), p.End.Format("2006-01-02 15:04:05"))
}
