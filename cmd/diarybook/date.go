package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/diarybook/internal/dateparse"
)

func dateCmd(flags *globalFlags) *cobra.Command {
	var ref string
	var full bool

	cmd := &cobra.Command{
		Use:   "date <text>",
		Short: "Show the date the parser finds in free text",
		Long: `Runs the date parser on text and prints the date, the token combination
that matched and the matched text, tab separated. Prints "no date" and exits
successfully when the text holds no date.

Examples:
  diarybook date "14.05.2012 kl 1306"
  diarybook date "midten av det 14. århundre"
  diarybook date --ref 07.04.2014 fredag`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}

			opts := dateparse.Options{FullText: full}
			if ref != "" {
				t, ok := a.dates.Parse(ref, dateparse.Options{})
				if !ok {
					return fmt.Errorf("no date in --ref %q", ref)
				}
				opts.Reference = t
			}

			m, ok := a.dates.Find(strings.Join(args, " "), opts)
			if !ok {
				fmt.Println("no date")
				return nil
			}
			fmt.Printf("%s\t%s\t%s\n", m.Time.Format("2006-01-02 15:04:05"), m.Combination, m.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Reference date for weekdays and dates without a year")
	cmd.Flags().BoolVar(&full, "full", false, "Require the whole text to be one date expression")

	return cmd
}
