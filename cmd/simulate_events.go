package cmd

import (
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/audit"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/engine"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/experiment"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/sim"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/store"
)

var simulateEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Generate legitimate user activity",
	Example: `  # 500 events under full enforcement
  ztasim simulate events --count 500 --seed 42 --out events.jsonl

  # baseline, appended to a per-run log below logs/
  ztasim simulate events --mode baseline --log-dir logs --run-id base-1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")
		logDir, _ := cmd.Flags().GetString("log-dir")
		runID, _ := cmd.Flags().GetString("run-id")

		controls, err := f.SelectedControls()
		if err != nil {
			return err
		}

		now := time.Now()
		fx := store.DefaultFixtures(now)
		eng := engine.New(fx.Users, fx.Devices, fx.Policies, controls)
		events := sim.NewGenerator(sim.NewRand(seed), eng, fx.Users).Generate(count)

		sink, err := openOutput(out)
		if err != nil {
			return err
		}
		sinks := audit.NewMultiSink(sink)
		if logDir != "" {
			if runID == "" {
				runID = xid.New().String()
			}
			rotating := audit.NewRotatingSink(logDir)
			if err := rotating.Rotate(runID); err != nil {
				return err
			}
			sinks = append(sinks, rotating)
		}
		if err := writeAll(sinks, events); err != nil {
			return err
		}

		s := experiment.Summarize(events)
		log.Info().
			Str("controls", controlsLabel(controls)).
			Int("events", s.TotalEvents).
			Str("success_rate", percent(s.SuccessRate)).
			Msgf("%s generated %d events", greenCheck, len(events))
		return nil
	},
}

func init() {
	simulateCmd.AddCommand(simulateEventsCmd)

	simulateEventsCmd.Flags().IntP("count", "n", 100, "Number of events to generate")
	simulateEventsCmd.Flags().Int64("seed", 42, "Random seed")
	simulateEventsCmd.Flags().StringP("out", "o", "", "Write events to this file (.jsonl, .jsonl.zst, .csv)")
	simulateEventsCmd.Flags().String("log-dir", "", "Also append events to <log-dir>/<run-id>.jsonl")
	simulateEventsCmd.Flags().String("run-id", "", "Run id of the log file (default: random)")
	f.bindControlFlags(simulateEventsCmd.Flags())
}
