package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var controlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "Show or change the controls a server enforces",
	Example: `  ztasim controls --server localhost:8080
  ztasim controls --server localhost:8080 --mode baseline
  ztasim controls --server localhost:8080 --controls auth,posture`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("mode") && !cmd.Flags().Changed("controls") {
			controls, correlation, err := cli.Controls(cmd.Context())
			if err != nil {
				return logError(err, correlation, "failed to get controls")
			}
			fmt.Printf("%s %s\n", bold("Controls:"), controlsLabel(controls))
			return nil
		}

		controls, err := f.SelectedControls()
		if err != nil {
			return err
		}
		active, correlation, err := cli.SetControls(cmd.Context(), controls)
		if err != nil {
			return logError(err, correlation, "failed to set controls")
		}
		log.Info().Msgf("%s server now enforces: %s", greenCheck, controlsLabel(active))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(controlsCmd)

	f.bindControlFlags(controlsCmd.Flags())
}
