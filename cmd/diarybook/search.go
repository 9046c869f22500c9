package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/diarybook/internal/index"
	"github.com/Zuo-Peng/diarybook/internal/search"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd(flags *globalFlags) *cobra.Command {
	var since, until string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across diary entries",
		Long: `Search diary entries using FTS5. Output is TSV for fzf integration:
  entryId, line, date, title, snippet

Open a hit with:
  diarybook search winter | fzf --ansi --delimiter='\t' --with-nth=3.. \
    --bind 'enter:execute(diarybook open {1})'`,
		Args: cobra.ExactArgs(1),
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

			// Refresh entries before searching
			if entries, err := a.parseDiary(); err != nil {
				a.log.Warn().Err(err).Msg("diary not re-indexed")
			} else if err := index.IndexDiary(db, entries); err != nil {
				a.log.Warn().Err(err).Msg("diary not re-indexed")
			}

			opts := search.Options{Query: args[0], Limit: limit}
			if opts.Since, err = a.bound(since, ""); err != nil {
				return err
			}
			if opts.Until, err = a.bound(until, ""); err != nil {
				return err
			}

			results, err := search.Search(db, opts)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				snippet = colorizeSnippet(snippet)
				// first two fields (entryID, line) stay plain for fzf {1} {2}
				fmt.Printf("%d\t%d\t%s%s%s\t%s%s%s\t%s\n",
					r.EntryID,
					r.LineNumber,
					sColorDim, r.Timestamp.Format("02.01.2006"), sColorReset,
					sColorBlue, r.Title, sColorReset,
					snippet,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only entries whose period ends after this date")
	cmd.Flags().StringVar(&until, "until", "", "Only entries whose period starts before this date")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
