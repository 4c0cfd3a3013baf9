package cmd

import (
	"github.com/spf13/cobra"
)

var experimentCmd = &cobra.Command{
	Use:     "experiment",
	Aliases: []string{"exp"},
	Short:   "Run experiments",
	Long:    `Run every scenario of an experiment document and write events, metrics and reports`,
}

func init() {
	rootCmd.AddCommand(experimentCmd)
}
