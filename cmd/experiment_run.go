package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/audit"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/config"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/experiment"
)

var experimentRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all scenarios of an experiment",
	Long: `Runs every scenario of the experiment document one after another.
Command line flags take precedence over the document.`,
	Example: `  # Run the experiment as configured
  ztasim experiment run -f experiment.yaml

  # Force full enforcement with another seed
  ztasim experiment run -f experiment.yaml --mode zta --seed 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadWithOverrides(cmd)
		if err != nil {
			return err
		}

		var opts []experiment.Option
		if cfg.Audit.SQLitePath != "" {
			db, err := audit.OpenSQLite(cfg.Audit.SQLitePath)
			if err != nil {
				return err
			}
			defer func() {
				if err := audit.CloseSQLite(db); err != nil {
					log.Warn().Err(err).Msg("failed to close event database")
				}
			}()
			opts = append(opts, experiment.WithSQLite(db))
		}

		log.Info().Msgf("Running %d scenarios...", len(cfg.Scenarios))
		results, err := experiment.NewRunner(cfg, opts...).Run(cmd.Context())
		if err != nil {
			return err
		}

		printResults(results)
		log.Info().Msgf("%s results written to %s", greenCheck, results.OutputDir)
		return nil
	},
}

// loadWithOverrides parses the experiment document, merges the flags that were
// explicitly set and validates the result.
func loadWithOverrides(cmd *cobra.Command) (*config.Config, error) {
	if f.ConfigPath == "" {
		return nil, fmt.Errorf("experiment file not specified (use --config)")
	}
	data, err := os.ReadFile(f.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := config.Parse(data)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	flags := cmd.Flags()
	for flag, key := range map[string]string{
		"mode":       "mode",
		"seed":       "seed",
		"run-id":     "run_id",
		"output-dir": "output_dir",
	} {
		if fl := flags.Lookup(flag); fl != nil && fl.Changed {
			values[key] = fl.Value.String()
		}
	}
	overrides, err := config.DecodeOverrides(values)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(overrides); err != nil {
		return nil, err
	}
	if sqlite, _ := flags.GetString("sqlite"); sqlite != "" {
		cfg.Audit.SQLitePath = sqlite
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return cfg, nil
}

func printResults(results *experiment.Results) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Scenario", "Controls", "Events", "Success Rate", "Attack", "Attack Success", "Blocked"})

	for _, sc := range results.Scenarios {
		attack, attackRate, blocked := "-", "-", "-"
		if sc.Attack != nil {
			attack = string(sc.Attack.Type)
			attackRate = percent(sc.Attack.SuccessRate)
			blocked = fmt.Sprintf("%d/%d", sc.Attack.Blocked, sc.Attack.Attempts)
		}
		t.AppendRow(table.Row{
			bold(sc.Name),
			controlsLabel(sc.Controls),
			sc.Summary.TotalEvents,
			percent(sc.Summary.SuccessRate),
			attack,
			attackRate,
			blocked,
		})
	}

	applyTableFormat(t)
	t.SetCaption("run %s, seed %d", results.RunID, results.Seed)
	t.Render()
}

func init() {
	experimentCmd.AddCommand(experimentRunCmd)

	f.bindConfigFlag(experimentRunCmd.Flags())
	experimentRunCmd.Flags().String("mode", "", "Override the controls of every scenario (baseline, zta)")
	experimentRunCmd.Flags().Int64("seed", 0, "Override the random seed")
	experimentRunCmd.Flags().String("run-id", "", "Override the run id")
	experimentRunCmd.Flags().String("output-dir", "", "Override the output base directory")
	experimentRunCmd.Flags().String("sqlite", "", "Additionally store events in this SQLite database")
	_ = experimentRunCmd.MarkFlagRequired("config")
}
