package cmd

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/sim"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/usability"
)

var simulateUsabilityCmd = &cobra.Command{
	Use:   "usability",
	Short: "Simulate a workday and score the friction of the controls",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		user, _ := cmd.Flags().GetString("user")
		device, _ := cmd.Flags().GetString("device")
		seed, _ := cmd.Flags().GetInt64("seed")
		noControls, _ := cmd.Flags().GetBool("no-controls")
		out, _ := cmd.Flags().GetString("out")
		asJSON, _ := cmd.Flags().GetBool("json")

		results, err := usability.NewSimulator(sim.NewRand(seed)).
			SimulateWorkday(user, device, count, !noControls)
		if err != nil {
			return err
		}
		if out != "" {
			if err := usability.WriteResultsCSV(out, results); err != nil {
				return err
			}
			log.Info().Msgf("%s wrote %d task results to %s", greenCheck, len(results), out)
		}

		scenario := "zta"
		if noControls {
			scenario = "baseline"
		}
		m := usability.NewAnalyzer().Analyze(scenario, results)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		}
		printUsability(m)
		return nil
	},
}

func printUsability(m usability.Metrics) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{bold("SUS score"), m.SUSScore},
		{"Simple SUS score", m.SimpleSUSScore},
		{"Task completion rate", percent(m.CompletionRate)},
		{"Avg task duration (s)", m.AvgDurationSeconds},
		{"Friction events per task", m.FrictionPerTask},
		{"Satisfaction (1-5)", m.AvgSatisfaction},
	})

	keys := make([]string, 0, len(m.Detailed))
	for k := range m.Detailed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	t.AppendSeparator()
	for _, k := range keys {
		t.AppendRow(table.Row{faint(k), m.Detailed[k]})
	}

	applyTableFormat(t)
	t.SetCaption("%d tasks, scenario %s", m.Tasks, m.Scenario)
	t.Render()
}

func init() {
	simulateCmd.AddCommand(simulateUsabilityCmd)

	simulateUsabilityCmd.Flags().IntP("count", "n", 20, "Number of tasks in the workday")
	simulateUsabilityCmd.Flags().String("user", "alice", "Simulated user")
	simulateUsabilityCmd.Flags().String("device", "laptop-1", "Simulated device")
	simulateUsabilityCmd.Flags().Int64("seed", 42, "Random seed")
	simulateUsabilityCmd.Flags().Bool("no-controls", false, "Simulate without zero trust controls")
	simulateUsabilityCmd.Flags().StringP("out", "o", "", "Write task results to this CSV file")
	simulateUsabilityCmd.Flags().Bool("json", false, "Print metrics as JSON")
}
