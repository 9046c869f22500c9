package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/diarybook/internal/book"
	"github.com/Zuo-Peng/diarybook/internal/render"
)

func buildCmd(flags *globalFlags) *cobra.Command {
	var output, title, from, to string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble chapters and write the book as LaTeX",
		Long: `Parses the diary, loads the photos, assembles chapters and writes a LaTeX
document. The output file is only replaced when every step succeeds.

--from and --to take any date expression the date parser understands,
e.g. "01.01.2018", "summer 2018" or "14. mai 2018".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			if output == "" {
				output = a.cfg.OutputPath
			}
			if title == "" {
				title = a.cfg.Title
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			chapters, err := a.chapters(db, from, to)
			if err != nil {
				return err
			}
			if len(chapters) == 0 {
				return fmt.Errorf("build: %w", book.ErrNoChapters)
			}

			if err := writeAtomic(output, book.Book{Title: title, Chapters: chapters}); err != nil {
				return err
			}
			a.log.Info().Str("path", output).Int("chapters", len(chapters)).Msg("wrote book")
			fmt.Println(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output .tex file (default from config)")
	cmd.Flags().StringVar(&title, "title", "", "Book title (default from config)")
	cmd.Flags().StringVar(&from, "from", "", "Only chapters after this date")
	cmd.Flags().StringVar(&to, "to", "", "Only chapters before this date")

	return cmd
}

// writeAtomic renders into a temp file next to path and renames it into
// place, so a failed render leaves any previous output untouched.
func writeAtomic(path string, b book.Book) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".diarybook-*.tex")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := render.WriteLaTeX(tmp, b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
