package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/audit"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/validation"
)

var eventsValidateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate event logs against the event schema",
	Long: `Validates every record of one or more JSON lines event logs.
Compressed logs (.jsonl.zst) are decoded transparently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxErrors, _ := cmd.Flags().GetInt("max-errors")

		validator, err := validation.NewEventValidator()
		if err != nil {
			return err
		}

		invalid := 0
		for _, path := range args {
			rc, err := audit.OpenEventLog(path)
			if err != nil {
				return err
			}
			report, err := validator.ValidateStream(rc)
			_ = rc.Close()
			if err != nil {
				return fmt.Errorf("validating '%s': %w", path, err)
			}

			if len(report.Errors) == 0 {
				log.Info().Msgf("%s %s: %d records valid", greenCheck, path, report.Records)
				continue
			}
			invalid += len(report.Errors)
			log.Error().Msgf("%s %s: %d of %d records invalid", redCross, path, len(report.Errors), report.Records)
			for i, e := range report.Errors {
				if i == maxErrors {
					fmt.Printf("  %s\n", faint(fmt.Sprintf("... %d more", len(report.Errors)-maxErrors)))
					break
				}
				fmt.Printf("  ↳ %s\n", truncate(e.Error(), 160))
			}
		}

		if invalid > 0 {
			return fmt.Errorf("%d invalid records", invalid)
		}
		return nil
	},
}

func init() {
	eventsCmd.AddCommand(eventsValidateCmd)

	eventsValidateCmd.Flags().Int("max-errors", 10, "Maximum number of errors printed per file")
}
