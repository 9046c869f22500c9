package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zuo-Peng/diarybook/internal/diary"
	"github.com/Zuo-Peng/diarybook/internal/period"
	"github.com/Zuo-Peng/diarybook/internal/photo"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS photos (
    path        TEXT PRIMARY KEY,
    taken_at    INTEGER NOT NULL,
    width       INTEGER NOT NULL DEFAULT 0,
    height      INTEGER NOT NULL DEFAULT 0,
    orientation INTEGER NOT NULL DEFAULT 0,
    mtime       INTEGER NOT NULL DEFAULT 0,
    size        INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS photos_taken_at ON photos(taken_at);

CREATE TABLE IF NOT EXISTS entries (
    entry_id     INTEGER PRIMARY KEY,
    line_number  INTEGER NOT NULL,
    title        TEXT NOT NULL,
    ts           INTEGER NOT NULL,
    period_start INTEGER NOT NULL,
    period_end   INTEGER NOT NULL,
    body         TEXT NOT NULL DEFAULT ''
);

CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
    title,
    body,
    content=entries,
    content_rowid=entry_id,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS entries_ai AFTER INSERT ON entries BEGIN
    INSERT INTO entries_fts(rowid, title, body) VALUES (new.entry_id, new.title, new.body);
END;

CREATE TRIGGER IF NOT EXISTS entries_ad AFTER DELETE ON entries BEGIN
    INSERT INTO entries_fts(entries_fts, rowid, title, body) VALUES('delete', old.entry_id, old.title, old.body);
END;

CREATE TRIGGER IF NOT EXISTS entries_au AFTER UPDATE ON entries BEGIN
    INSERT INTO entries_fts(entries_fts, rowid, title, body) VALUES('delete', old.entry_id, old.title, old.body);
    INSERT INTO entries_fts(rowid, title, body) VALUES (new.entry_id, new.title, new.body);
END;
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	// schema version tracking for forced re-read of photos
	db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT)")
	d := &DB{db: db}
	d.migrateSchemaVersion()

	return d, nil
}

// schemaVersion should be bumped whenever the stored photo fields change
// to force every photo to be read again.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		d.db.Exec("UPDATE photos SET mtime = 0, size = 0")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type FileStamp struct {
	Mtime int64
	Size  int64
}

// GetPhotoStamp returns nil when the photo has never been stored.
func (d *DB) GetPhotoStamp(path string) (*FileStamp, error) {
	var s FileStamp
	err := d.db.QueryRow(
		"SELECT mtime, size FROM photos WHERE path = ?",
		path,
	).Scan(&s.Mtime, &s.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (d *DB) PutPhoto(p photo.Photo, f photo.FileInfo) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO photos (path, taken_at, width, height, orientation, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Path, p.Timestamp.Unix(), p.Width, p.Height, p.Orientation, f.Mtime, f.Size,
	)
	return err
}

// GetPhoto returns nil when path is not stored.
func (d *DB) GetPhoto(path string) (*photo.Photo, error) {
	var p photo.Photo
	var taken int64
	err := d.db.QueryRow(
		"SELECT path, taken_at, width, height, orientation FROM photos WHERE path = ?",
		path,
	).Scan(&p.Path, &taken, &p.Width, &p.Height, &p.Orientation)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Timestamp = time.Unix(taken, 0)
	return &p, nil
}

func (d *DB) AllPhotoPaths() (map[string]struct{}, error) {
	rows, err := d.db.Query("SELECT path FROM photos")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths[p] = struct{}{}
	}
	return paths, rows.Err()
}

func (d *DB) DeletePhoto(path string) error {
	_, err := d.db.Exec("DELETE FROM photos WHERE path = ?", path)
	return err
}

func (d *DB) PhotoCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM photos").Scan(&n)
	return n, err
}

func (d *DB) EntryCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n)
	return n, err
}

// FTSCount is the number of rows in the entries full-text index.
func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM entries_fts").Scan(&n)
	return n, err
}

// ReplaceEntries swaps the stored diary entries for entries. Entry ids are
// 1-based file positions.
func (d *DB) ReplaceEntries(entries []diary.Entry) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO entries (entry_id, line_number, title, ts, period_start, period_end, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		_, err := stmt.Exec(
			i+1,
			e.Line,
			e.Title,
			e.Timestamp.Unix(),
			e.Period.Start.Unix(),
			e.Period.End.Unix(),
			e.Body,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

type EntryRow struct {
	EntryID    int
	LineNumber int
	Title      string
	Timestamp  time.Time
	Period     period.Period
	Body       string
}

func (d *DB) GetEntries() ([]EntryRow, error) {
	rows, err := d.db.Query(
		"SELECT entry_id, line_number, title, ts, period_start, period_end, body FROM entries ORDER BY entry_id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EntryRow
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEntry returns nil when no entry has that id.
func (d *DB) GetEntry(id int) (*EntryRow, error) {
	row := d.db.QueryRow(
		"SELECT entry_id, line_number, title, ts, period_start, period_end, body FROM entries WHERE entry_id = ?",
		id,
	)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (EntryRow, error) {
	var e EntryRow
	var ts, start, end int64
	if err := s.Scan(&e.EntryID, &e.LineNumber, &e.Title, &ts, &start, &end, &e.Body); err != nil {
		return EntryRow{}, err
	}
	e.Timestamp = time.Unix(ts, 0)
	e.Period = period.New(time.Unix(start, 0), time.Unix(end, 0))
	return e, nil
}
