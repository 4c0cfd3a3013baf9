package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/analysis"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/audit"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [RUN-DIR]",
	Short: "Compute security metrics of a finished run",
	Long: `Computes detection latency, ransomware encryption rate, lateral movement and
login rates per scenario. Events are read from the scenario directories of a run
or, with --sqlite, from an event database.`,
	Example: `  ztasim analyze results/run-1 --out summary.csv
  ztasim analyze results/run-1 --filter 'is_attack && resource == "/app/db"'
  ztasim analyze --sqlite events.db --run-id run-1`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filterExpr, _ := cmd.Flags().GetString("filter")
		out, _ := cmd.Flags().GetString("out")
		asJSON, _ := cmd.Flags().GetBool("json")
		sqlitePath, _ := cmd.Flags().GetString("sqlite")
		runID, _ := cmd.Flags().GetString("run-id")

		var (
			exp *analysis.Experiment
			err error
		)
		switch {
		case sqlitePath != "":
			exp, err = loadFromSQLite(cmd, sqlitePath, runID)
		case len(args) == 1:
			exp, err = analysis.LoadExperiment(args[0])
		default:
			return fmt.Errorf("either a run directory or --sqlite is required")
		}
		if err != nil {
			return err
		}

		var filter *analysis.Filter
		if filterExpr != "" {
			if filter, err = analysis.CompileFilter(filterExpr); err != nil {
				return err
			}
		}

		reports, err := analysis.Analyze(exp, filter)
		if err != nil {
			return err
		}

		if out != "" {
			if err := analysis.WriteSummaryCSV(out, reports); err != nil {
				return err
			}
			log.Info().Msgf("%s summary written to %s", greenCheck, out)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}
		printReports(reports)
		return nil
	},
}

func loadFromSQLite(cmd *cobra.Command, path, runID string) (*analysis.Experiment, error) {
	db, err := audit.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = audit.CloseSQLite(db)
	}()

	scenarios, err := audit.QueryScenarios(cmd.Context(), db, runID)
	if err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no events stored in '%s'", path)
	}

	exp := &analysis.Experiment{
		Dir:       path,
		Scenarios: scenarios,
		Events:    make(map[string][]core.Event, len(scenarios)),
	}
	for _, sc := range scenarios {
		events, err := audit.QueryEvents(cmd.Context(), db, audit.EventQuery{RunID: runID, Scenario: sc})
		if err != nil {
			return nil, err
		}
		exp.Events[sc] = events
	}
	return exp, nil
}

func printReports(reports []analysis.ScenarioReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{
		"Scenario", "Events", "Detection Latency", "Encryption Rate",
		"Lateral Blocked", "Lateral Success", "Login Success",
	})

	for _, r := range reports {
		latency, encryption, login := "-", "-", "-"
		if r.DetectionLatency != nil {
			latency = r.DetectionLatency.String()
		}
		if r.EncryptionRate != nil {
			encryption = percent(*r.EncryptionRate)
		}
		if r.Auth != nil {
			login = percent(r.Auth.SuccessRate)
		}
		t.AppendRow(table.Row{
			bold(r.Scenario),
			r.Events,
			latency,
			encryption,
			r.LateralMovement.Blocked,
			r.LateralMovement.Successful,
			login,
		})
	}

	applyTableFormat(t)
	t.Render()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("filter", "", "Only analyze events matching this expression")
	analyzeCmd.Flags().StringP("out", "o", "", "Write a summary CSV to this file")
	analyzeCmd.Flags().Bool("json", false, "Print reports as JSON")
	analyzeCmd.Flags().String("sqlite", "", "Read events from this SQLite database")
	analyzeCmd.Flags().String("run-id", "", "Restrict --sqlite to a run")
}
