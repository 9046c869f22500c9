package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/diarybook/internal/render"
	"github.com/Zuo-Peng/diarybook/internal/tui"
)

func chaptersCmd(flags *globalFlags) *cobra.Command {
	var from, to, filter string
	var full bool

	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "Show the assembled chapters",
		Long: `Assembles chapters and opens an interactive browser when stdout is a
terminal. Enter copies the selected chapter's period line ("* 01.01.2018-01.03.2018")
to the clipboard. When piped, prints one TSV line per chapter:
  index, days, kind, photos, title`,
		Args: cobra.NoArgs,
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

			chapters, err := a.chapters(db, from, to)
			if err != nil {
				return err
			}

			if !full && term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(chapters, filter)
			}

			if full {
				fmt.Print(render.RenderBook(chapters, render.Options{ShowPeriod: true}))
				return nil
			}

			for i, c := range chapters {
				kind := "diary"
				if c.IsGap() {
					kind = "photo"
				}
				line := c.PeriodLine()
				if len(line) > 2 {
					line = line[2:]
				}
				fmt.Printf("%d\t%s\t%s\t%d\t%s\n", i+1, line, kind, len(c.Photos), c.Title())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Only chapters after this date")
	cmd.Flags().StringVar(&to, "to", "", "Only chapters before this date")
	cmd.Flags().StringVar(&filter, "filter", "", "Initial filter text for the browser")
	cmd.Flags().BoolVar(&full, "full", false, "Print every chapter with its text and photos instead of browsing")

	return cmd
}
