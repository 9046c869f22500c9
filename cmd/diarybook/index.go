package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/diarybook/internal/index"
	"github.com/Zuo-Peng/diarybook/internal/photo"
)

func indexCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Refresh the photo EXIF cache and the diary search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(os.Stderr, "Scanning...\n")
			fmt.Fprintf(os.Stderr, "  Photos: %s\n", a.cfg.PhotoDir)
			fmt.Fprintf(os.Stderr, "  Diary:  %s\n", a.cfg.DiaryPath)

			stats, err := index.IndexPhotos(db, a.cfg.PhotoDir, photo.EXIFReader{}, a.log)
			if err != nil {
				return fmt.Errorf("index photos: %w", err)
			}

			entries, err := a.parseDiary()
			if err != nil {
				return err
			}
			if err := index.IndexDiary(db, entries); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Done. photos: %s, entries=%d\n", stats, len(entries))
			return nil
		},
	}
}
