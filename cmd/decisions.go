package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
	"github.com/Tarunchintakunta/Zero-trust-simulator/pkg/client"
)

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "List the most recent decisions of a server",
	Example: `  ztasim decisions --server localhost:8080
  ztasim decisions --server localhost:8080 --user bob --decision deny --limit 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		user, _ := cmd.Flags().GetString("user")
		decision, _ := cmd.Flags().GetString("decision")
		asJSON, _ := cmd.Flags().GetBool("json")

		cli, err := f.GetClient()
		if err != nil {
			return err
		}

		events, correlation, err := cli.ListDecisions(cmd.Context(), client.DecisionsOptions{
			Limit:    limit,
			User:     user,
			Decision: core.Decision(decision),
		})
		if err != nil {
			return logError(err, correlation, "failed to list decisions")
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(events)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Time", "User", "Device", "Resource", "Method", "Decision", "Reason"})
		for _, ev := range events {
			label := greenCheck
			if ev.Decision == core.DecisionDeny {
				label = redCross
			}
			t.AppendRow(table.Row{
				faint(ev.Timestamp.Local().Format(time.DateTime)),
				bold(ev.User),
				ev.Device,
				ev.Resource,
				ev.Method,
				label,
				truncate(ev.Reason, 40),
			})
		}
		applyTableFormat(t)
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decisionsCmd)

	decisionsCmd.Flags().Int("limit", 0, "Maximum number of decisions (server default when 0)")
	decisionsCmd.Flags().String("user", "", "Only show decisions for this user")
	decisionsCmd.Flags().String("decision", "", "Only show allow or deny decisions")
	decisionsCmd.Flags().Bool("json", false, "Print raw JSON")
}
