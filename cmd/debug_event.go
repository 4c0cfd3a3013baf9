package cmd

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/analysis"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/engine"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/sim"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/store"
)

var debugEventCmd = &cobra.Command{
	Use:   "event [FILE]",
	Short: "Dump events with all their fields",
	Long: `Dumps events in Go syntax. Events are read from an event log, or generated
with the given seed when no file is given.`,
	Example: `  ztasim debug event results/run-1/zta/events.jsonl --index 3
  ztasim debug event --seed 42 --index 0 --mode zta`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, _ := cmd.Flags().GetInt("index")
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")

		var events []core.Event
		if len(args) == 1 {
			var err error
			if events, err = analysis.ReadEvents(args[0]); err != nil {
				return err
			}
		} else {
			controls, err := f.SelectedControls()
			if err != nil {
				return err
			}
			fx := store.DefaultFixtures(time.Now())
			eng := engine.New(fx.Users, fx.Devices, fx.Policies, controls)
			events = sim.NewGenerator(sim.NewRand(seed), eng, fx.Users).Generate(index + count)
		}

		if index < 0 || index >= len(events) {
			return fmt.Errorf("index %d out of range, %d events available", index, len(events))
		}
		end := min(len(events), index+count)

		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		for i := index; i < end; i++ {
			fmt.Println(faint(fmt.Sprintf("── event #%d ──", i)))
			cfg.Dump(events[i])
		}
		return nil
	},
}

func init() {
	debugCmd.AddCommand(debugEventCmd)

	debugEventCmd.Flags().Int("index", 0, "Index of the first event")
	debugEventCmd.Flags().IntP("count", "n", 1, "Number of events")
	debugEventCmd.Flags().Int64("seed", 42, "Random seed when generating")
	f.bindControlFlags(debugEventCmd.Flags())
}
