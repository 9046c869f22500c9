// Package book assembles diary entries and photos into ordered chapters.
package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/diarybook/internal/diary"
	"github.com/Zuo-Peng/diarybook/internal/period"
	"github.com/Zuo-Peng/diarybook/internal/photo"
)

const dayLayout = "02.01.2006"

// Chapter is a period with the diary entries and photos that belong to it.
// A gap chapter has photos but no entries.
type Chapter struct {
	Period  period.Period
	Entries []diary.Entry
	Photos  []photo.Photo
}

// Book is the assembled, ordered result handed to a renderer.
type Book struct {
	Title    string
	Chapters []Chapter
}

func (c Chapter) IsGap() bool { return len(c.Entries) == 0 }

// EffectiveTime orders chapters: the period start, or the oldest photo when
// the period is undefined.
func (c Chapter) EffectiveTime() time.Time {
	if !c.Period.Start.IsZero() {
		return c.Period.Start
	}
	var min time.Time
	for _, p := range c.Photos {
		if min.IsZero() || p.Timestamp.Before(min) {
			min = p.Timestamp
		}
	}
	return min
}

// Title joins the entry titles. Gap chapters are titled by their dates.
func (c Chapter) Title() string {
	if c.IsGap() {
		return c.DateRange()
	}
	titles := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		titles[i] = e.Title
	}
	return strings.Join(titles, " / ")
}

// Body joins the entry texts, one paragraph per entry.
func (c Chapter) Body() string {
	var parts []string
	for _, e := range c.Entries {
		if e.Body != "" {
			parts = append(parts, e.Body)
		}
	}
	return strings.Join(parts, "\n\n")
}

// DateRange formats the days the chapter covers, e.g. "01.01.2018 - 01.03.2018".
func (c Chapter) DateRange() string {
	if !c.Period.Defined() {
		return ""
	}
	first, last := c.days()
	if first.Equal(last) {
		return first.Format(dayLayout)
	}
	return first.Format(dayLayout) + " - " + last.Format(dayLayout)
}

// PeriodLine renders the chapter period as a diary period line that parses
// back to the same days.
func (c Chapter) PeriodLine() string {
	if !c.Period.Defined() {
		return ""
	}
	first, last := c.days()
	if first.Equal(last) {
		return "* " + first.Format(dayLayout)
	}
	return fmt.Sprintf("* %s-%s", first.Format(dayLayout), last.Format(dayLayout))
}

// days returns the first and last calendar day touched by the period. End
// is exclusive, so an end at midnight belongs to the day before.
func (c Chapter) days() (time.Time, time.Time) {
	first := period.Midnight(c.Period.Start)
	last := c.Period.End.Add(-time.Nanosecond)
	if last.Before(c.Period.Start) {
		last = c.Period.Start
	}
	return first, period.Midnight(last)
}
