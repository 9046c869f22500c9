package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/diarybook/internal/index"
	"github.com/Zuo-Peng/diarybook/internal/photo"
)

func doctorCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify paths, diary, DB, FTS5, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Paths ===")
			checkFile("Diary", a.cfg.DiaryPath)
			checkDir("Photos", a.cfg.PhotoDir)
			fmt.Printf("  Output: %s\n", a.cfg.OutputPath)

			fmt.Println("\n=== Photo Scan ===")
			files, err := photo.Scan(a.cfg.PhotoDir)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fmt.Printf("  JPEG files: %d\n", len(files))
			}

			fmt.Println("\n=== Diary ===")
			entries, err := a.parseDiary()
			if err != nil {
				fmt.Printf("  parse error: %v\n", err)
			} else {
				fmt.Printf("  Entries: %d\n", len(entries))
				mode := "lenient"
				if a.cfg.Strict {
					mode = "strict"
				}
				fmt.Printf("  Mode:    %s\n", mode)
			}

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", a.cfg.DBPath)
			if _, err := os.Stat(a.cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'diarybook index' first)")
				return nil
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			photoCount, err := db.PhotoCount()
			if err != nil {
				return fmt.Errorf("count photos: %w", err)
			}
			entryCount, err := db.EntryCount()
			if err != nil {
				return fmt.Errorf("count entries: %w", err)
			}
			fmt.Printf("  Photos:  %d\n", photoCount)
			fmt.Printf("  Entries: %d\n", entryCount)
			if entries != nil {
				stale, err := index.StaleEntries(db, entries)
				switch {
				case err != nil:
					fmt.Printf("  Diary check error: %v\n", err)
				case len(stale) == 0:
					fmt.Println("  Diary:   OK (index matches diary)")
				default:
					fmt.Printf("  Diary:   STALE (%d entries differ, run 'diarybook index')\n", len(stale))
				}
			}

			fmt.Println("\n=== FTS5 ===")
			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == entryCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (entries=%d, fts=%d)\n", entryCount, ftsCount)
				}
			}

			if info, err := os.Stat(a.cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}

func checkFile(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if info.IsDir() {
		fmt.Printf("  %s: %s (IS A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
