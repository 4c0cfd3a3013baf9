package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Interact with the experiment configuration",
	Long:  `Utilities for validating and viewing experiment documents`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
