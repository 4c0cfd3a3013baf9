package cmd

import (
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Work with event logs",
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
