package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/config"
)

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an experiment document",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.LoadConfig()
		if err != nil {
			if config.IsMissingKey(err) {
				log.Error().Err(err).Msg("Configuration is incomplete.")
			} else {
				log.Error().Err(err).Msg("Configuration is invalid.")
			}
			return err
		}
		log.Info().
			Int("scenarios", len(cfg.Scenarios)).
			Int64("seed", *cfg.Seed).
			Msgf("%s Configuration is valid.", greenCheck)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)

	f.bindConfigFlag(configValidateCmd.Flags())
}
