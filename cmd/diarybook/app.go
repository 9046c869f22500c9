package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/diarybook/internal/book"
	"github.com/Zuo-Peng/diarybook/internal/config"
	"github.com/Zuo-Peng/diarybook/internal/dateparse"
	"github.com/Zuo-Peng/diarybook/internal/diary"
	"github.com/Zuo-Peng/diarybook/internal/index"
	"github.com/Zuo-Peng/diarybook/internal/log"
	"github.com/Zuo-Peng/diarybook/internal/photo"
	"github.com/Zuo-Peng/diarybook/internal/textparse"
)

// globalFlags override config file values when set.
type globalFlags struct {
	diaryPath string
	photoDir  string
	dbPath    string
	logLevel  string
	strict    bool
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.diaryPath, "diary", "", "Diary file (default from config)")
	pf.StringVar(&f.photoDir, "photos", "", "Photo directory (default from config)")
	pf.StringVar(&f.dbPath, "db", "", "Index database (default from config)")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&f.strict, "strict", false, "Fail on diary lines that match no entry, period or text pattern")
}

type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	dates *dateparse.Parser
}

func newApp(f *globalFlags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.diaryPath != "" {
		cfg.DiaryPath = f.diaryPath
	}
	if f.photoDir != "" {
		cfg.PhotoDir = f.photoDir
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.strict {
		cfg.Strict = true
	}

	return &app{
		cfg:   cfg,
		log:   log.New(cfg.LogLevel, os.Stderr),
		dates: dateparse.New(),
	}, nil
}

func (a *app) openDB() (*index.DB, error) {
	db, err := index.OpenDB(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

func (a *app) parseDiary() ([]diary.Entry, error) {
	mode := textparse.Lenient
	if a.cfg.Strict {
		mode = textparse.Strict
	}
	x := diary.NewExtractor(a.dates, mode)
	x.OnSkip = func(line int, text string) {
		a.log.Debug().Int("line", line).Str("text", text).Msg("skipped diary line")
	}

	entries, err := x.ParseFile(a.cfg.DiaryPath)
	if err != nil {
		return nil, fmt.Errorf("parse diary %s: %w", a.cfg.DiaryPath, err)
	}
	a.log.Info().Int("entries", len(entries)).Str("path", a.cfg.DiaryPath).Msg("parsed diary")
	return entries, nil
}

// loadPhotos reads the photo directory through the EXIF cache in db.
func (a *app) loadPhotos(db *index.DB) (*photo.Timeline, error) {
	r := index.CachedReader{DB: db, Reader: photo.EXIFReader{}}
	tl, err := photo.Load(a.cfg.PhotoDir, r)
	if err != nil {
		return nil, fmt.Errorf("load photos %s: %w", a.cfg.PhotoDir, err)
	}
	a.log.Info().Int("photos", tl.Len()).Str("dir", a.cfg.PhotoDir).Msg("loaded photos")
	return tl, nil
}

// chapters runs the whole pipeline: diary, photos, assembly, date window.
func (a *app) chapters(db *index.DB, from, to string) ([]book.Chapter, error) {
	fromT, err := a.bound(from, a.cfg.From)
	if err != nil {
		return nil, err
	}
	toT, err := a.bound(to, a.cfg.To)
	if err != nil {
		return nil, err
	}

	entries, err := a.parseDiary()
	if err != nil {
		return nil, err
	}
	tl, err := a.loadPhotos(db)
	if err != nil {
		return nil, err
	}

	asm := &book.Assembler{Now: time.Now}
	chapters, err := asm.Assemble(entries, tl)
	if err != nil {
		return nil, err
	}
	a.log.Info().Int("chapters", len(chapters)).Msg("assembled chapters")

	filtered := book.Filter(chapters, fromT, toT)
	if len(filtered) != len(chapters) {
		a.log.Info().Int("kept", len(filtered)).Time("from", fromT).Time("to", toT).Msg("filtered chapters")
	}
	return filtered, nil
}

// bound parses a --from/--to value, falling back to the config value.
func (a *app) bound(flag, cfg string) (time.Time, error) {
	s := flag
	if s == "" {
		s = cfg
	}
	if s == "" {
		return time.Time{}, nil
	}
	t, ok := a.dates.Parse(s, dateparse.Options{})
	if !ok {
		return time.Time{}, fmt.Errorf("no date in %q", s)
	}
	return t, nil
}
