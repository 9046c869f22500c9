package index

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Zuo-Peng/diarybook/internal/diary"
	"github.com/Zuo-Peng/diarybook/internal/photo"
)

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// IndexPhotos refreshes the photo cache from root. Unchanged files (same
// mtime and size) are not read again; photos that vanished are pruned.
// Unreadable photos are logged and counted, not fatal.
func IndexPhotos(db *DB, root string, r photo.Reader, log zerolog.Logger) (Stats, error) {
	var stats Stats

	files, err := photo.Scan(root)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	// track which files we see, for pruning
	seen := make(map[string]struct{})

	for _, fi := range files {
		seen[fi.Path] = struct{}{}

		needs, err := needsUpdate(db, fi)
		if err != nil {
			stats.Errors++
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		p, err := r.Read(fi)
		if err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("path", fi.Path).Msg("read photo")
			continue
		}
		if err := db.PutPhoto(p, fi); err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("path", fi.Path).Msg("index photo")
			continue
		}
		log.Debug().Str("path", fi.Path).Time("taken", p.Timestamp).Msg("indexed photo")
		stats.Updated++
	}

	pruned, err := prunePhotos(db, seen)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

// IndexDiary replaces the stored entries.
func IndexDiary(db *DB, entries []diary.Entry) error {
	if err := db.ReplaceEntries(entries); err != nil {
		return fmt.Errorf("index diary: %w", err)
	}
	return nil
}

// StaleEntries compares the indexed entries with a fresh parse and returns
// the 1-based positions that differ or exist on only one side.
func StaleEntries(db *DB, entries []diary.Entry) ([]int, error) {
	rows, err := db.GetEntries()
	if err != nil {
		return nil, fmt.Errorf("get entries: %w", err)
	}

	n := len(entries)
	if len(rows) > n {
		n = len(rows)
	}
	var stale []int
	for i := 0; i < n; i++ {
		if i >= len(rows) || i >= len(entries) || !sameEntry(rows[i], entries[i]) {
			stale = append(stale, i+1)
		}
	}
	return stale, nil
}

// sameEntry compares at the one-second resolution the index stores.
func sameEntry(r EntryRow, e diary.Entry) bool {
	return r.LineNumber == e.Line &&
		r.Title == e.Title &&
		r.Body == e.Body &&
		r.Timestamp.Unix() == e.Timestamp.Unix() &&
		r.Period.Start.Unix() == e.Period.Start.Unix() &&
		r.Period.End.Unix() == e.Period.End.Unix()
}

func needsUpdate(db *DB, fi photo.FileInfo) (bool, error) {
	stamp, err := db.GetPhotoStamp(fi.Path)
	if err != nil {
		return false, err
	}
	if stamp == nil {
		return true, nil // new photo
	}
	return stamp.Mtime != fi.Mtime || stamp.Size != fi.Size, nil
}

func prunePhotos(db *DB, seen map[string]struct{}) (int, error) {
	all, err := db.AllPhotoPaths()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for path := range all {
		if _, ok := seen[path]; !ok {
			if err := db.DeletePhoto(path); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}

// CachedReader serves photos from the cache when the file is unchanged and
// falls back to Reader otherwise, storing what it reads.
type CachedReader struct {
	DB     *DB
	Reader photo.Reader
}

func (c CachedReader) Read(fi photo.FileInfo) (photo.Photo, error) {
	needs, err := needsUpdate(c.DB, fi)
	if err != nil {
		return photo.Photo{}, err
	}
	if !needs {
		p, err := c.DB.GetPhoto(fi.Path)
		if err != nil {
			return photo.Photo{}, err
		}
		if p != nil {
			return *p, nil
		}
	}

	p, err := c.Reader.Read(fi)
	if err != nil {
		return photo.Photo{}, err
	}
	if err := c.DB.PutPhoto(p, fi); err != nil {
		return photo.Photo{}, err
	}
	return p, nil
}
