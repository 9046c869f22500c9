package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DiaryPath  string `toml:"diary_path"`
	PhotoDir   string `toml:"photo_dir"`
	DBPath     string `toml:"db_path"`
	OutputPath string `toml:"output_path"`
	Title      string `toml:"title"`
	Strict     bool   `toml:"strict"`
	LogLevel   string `toml:"log_level"`
	// From and To are date expressions bounding the chapters in the book.
	From string `toml:"from"`
	To   string `toml:"to"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(home, ".config", "diarybook", "config.toml"), home)
}

// LoadFile applies defaults, then the TOML file at cfgPath if it exists.
func LoadFile(cfgPath, home string) (*Config, error) {
	cfg := &Config{
		DiaryPath:  filepath.Join(home, "diary.txt"),
		PhotoDir:   filepath.Join(home, "Pictures"),
		DBPath:     filepath.Join(home, ".config", "diarybook", "diarybook.db"),
		OutputPath: "book.tex",
		Title:      "Diary",
		LogLevel:   "info",
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.DiaryPath = ExpandHome(cfg.DiaryPath, home)
	cfg.PhotoDir = ExpandHome(cfg.PhotoDir, home)
	cfg.DBPath = ExpandHome(cfg.DBPath, home)
	cfg.OutputPath = ExpandHome(cfg.OutputPath, home)

	return cfg, nil
}

func ExpandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
