package book

import (
	"errors"
	"sort"
	"time"

	"github.com/Zuo-Peng/diarybook/internal/diary"
	"github.com/Zuo-Peng/diarybook/internal/period"
	"github.com/Zuo-Peng/diarybook/internal/photo"
)

var ErrNoChapters = errors.New("assembly produced no chapters")

// Assembler turns entries and a photo timeline into chapters. Now bounds
// the trailing gap chapter and defaults to time.Now.
type Assembler struct {
	Now func() time.Time
}

// Assemble builds one chapter per entry, folding later entries whose period
// nests inside an earlier chapter into that chapter, and adds gap chapters
// for photos no entry covers. Chapters come back ordered by EffectiveTime.
func (a *Assembler) Assemble(entries []diary.Entry, tl *photo.Timeline) ([]Chapter, error) {
	if tl == nil {
		tl = photo.NewTimeline()
	}

	text := textChapters(entries)
	for i := range text {
		text[i].Photos = tl.Query(text[i].Period)
	}
	gaps := a.gapChapters(text, tl)

	chapters := append(text, gaps...)
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].EffectiveTime().Before(chapters[j].EffectiveTime())
	})

	if len(chapters) == 0 && (len(entries) > 0 || tl.Len() > 0) {
		return nil, ErrNoChapters
	}
	return chapters, nil
}

func textChapters(entries []diary.Entry) []Chapter {
	var chapters []Chapter
	for _, e := range entries {
		owner := -1
		for i := range chapters {
			if chapters[i].Period.ContainsPeriod(e.Period) {
				owner = i
				break
			}
		}
		if owner >= 0 {
			chapters[owner].Entries = append(chapters[owner].Entries, e)
			continue
		}
		chapters = append(chapters, Chapter{Period: e.Period, Entries: []diary.Entry{e}})
	}
	return chapters
}

// gapChapters walks the text chapters in time order and collects photos
// falling between them, from the oldest photo up to a day after now.
func (a *Assembler) gapChapters(text []Chapter, tl *photo.Timeline) []Chapter {
	first, ok := tl.First()
	if !ok {
		return nil
	}

	ordered := append([]Chapter(nil), text...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EffectiveTime().Before(ordered[j].EffectiveTime())
	})

	var gaps []Chapter
	prevEnd := first.Timestamp
	for _, ch := range ordered {
		if gap, ok := gapChapter(period.New(prevEnd, ch.Period.Start), tl); ok {
			gaps = append(gaps, gap)
		}
		if ch.Period.End.After(prevEnd) {
			prevEnd = ch.Period.End
		}
	}

	end := a.now().AddDate(0, 0, 1)
	if span := tl.Span(); span.End.After(end) {
		end = span.End
	}
	if gap, ok := gapChapter(period.New(prevEnd, end), tl); ok {
		gaps = append(gaps, gap)
	}
	return gaps
}

// gapChapter holds the photos in p. Its period runs from the first to the
// last of those photos.
func gapChapter(p period.Period, tl *photo.Timeline) (Chapter, bool) {
	if !p.Start.Before(p.End) {
		return Chapter{}, false
	}
	photos := tl.Query(p)
	if len(photos) == 0 {
		return Chapter{}, false
	}
	return Chapter{
		Period: period.New(photos[0].Timestamp, photos[len(photos)-1].Timestamp),
		Photos: photos,
	}, true
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Filter keeps chapters whose EffectiveTime lies strictly between from and
// to. A zero bound is open.
func Filter(chapters []Chapter, from, to time.Time) []Chapter {
	var out []Chapter
	for _, c := range chapters {
		t := c.EffectiveTime()
		if !from.IsZero() && !t.After(from) {
			continue
		}
		if !to.IsZero() && !t.Before(to) {
			continue
		}
		out = append(out, c)
	}
	return out
}
