package photo

import (
	"sort"

	"github.com/Zuo-Peng/diarybook/internal/period"
)

// Timeline keeps photos sorted by timestamp. Photos with equal timestamps
// stay in insertion order.
type Timeline struct {
	photos []Photo
}

func NewTimeline(photos ...Photo) *Timeline {
	t := &Timeline{}
	t.Add(photos...)
	return t
}

// Add appends photos and re-sorts the whole timeline.
func (t *Timeline) Add(photos ...Photo) {
	t.photos = append(t.photos, photos...)
	sort.SliceStable(t.photos, func(i, j int) bool {
		return t.photos[i].Timestamp.Before(t.photos[j].Timestamp)
	})
}

// Query returns the photos whose timestamp lies in p, oldest first.
func (t *Timeline) Query(p period.Period) []Photo {
	var out []Photo
	for _, ph := range t.photos {
		if p.Contains(ph.Timestamp) {
			out = append(out, ph)
		}
	}
	return out
}

func (t *Timeline) Len() int { return len(t.photos) }

// First returns the oldest photo.
func (t *Timeline) First() (Photo, bool) {
	if len(t.photos) == 0 {
		return Photo{}, false
	}
	return t.photos[0], true
}

// Span is the period from the oldest photo to just past the newest one.
func (t *Timeline) Span() period.Period {
	if len(t.photos) == 0 {
		return period.Period{}
	}
	last := t.photos[len(t.photos)-1].Timestamp
	return period.New(t.photos[0].Timestamp, last.Add(1))
}
