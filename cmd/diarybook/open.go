package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/diarybook/internal/open"
)

func openCmd(flags *globalFlags) *cobra.Command {
	var line int

	cmd := &cobra.Command{
		Use:   "open [entryId]",
		Short: "Open the diary in $EDITOR at an entry's header line",
		Long: `Opens the diary at the header of the indexed entry with the given id (the
first column of 'diarybook search'). With --line, opens at that line instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}

			if line > 0 || len(args) == 0 {
				return open.OpenAt(a.cfg.DiaryPath, line)
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("entry id %q: %w", args[0], err)
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			return open.OpenEntry(db, a.cfg.DiaryPath, id)
		},
	}

	cmd.Flags().IntVar(&line, "line", 0, "Line to jump to")

	return cmd
}
