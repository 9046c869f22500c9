package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:     "diarybook",
		Short:   "Diary book builder - merge a diary file and a photo folder into dated chapters",
		Version: version,
	}
	flags.register(rootCmd)

	rootCmd.AddCommand(indexCmd(&flags))
	rootCmd.AddCommand(buildCmd(&flags))
	rootCmd.AddCommand(chaptersCmd(&flags))
	rootCmd.AddCommand(searchCmd(&flags))
	rootCmd.AddCommand(openCmd(&flags))
	rootCmd.AddCommand(dateCmd(&flags))
	rootCmd.AddCommand(doctorCmd(&flags))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
