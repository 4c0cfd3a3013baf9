package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var checkPostureCmd = &cobra.Command{
	Use:   "posture DEVICE",
	Short: "Measure the posture of a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		device := args[0]

		var (
			status core.PostureStatus
			failed []core.PostureControl
		)
		if f.Remote() {
			cli, err := f.GetClient()
			if err != nil {
				return err
			}
			resp, correlation, err := cli.Posture(cmd.Context(), device)
			if err != nil {
				return logError(err, correlation, "failed to check posture")
			}
			status, failed = resp.Status, resp.FailedControls
		} else {
			eng, _, err := f.LocalEngine()
			if err != nil {
				return err
			}
			status, failed = eng.CheckPosture(device)
		}

		icon := redCross
		if status == core.PostureCompliant {
			icon = greenCheck
		}
		fmt.Printf("%s %s: %s\n", icon, bold(device), status)
		if len(failed) > 0 {
			names := make([]string, len(failed))
			for i, c := range failed {
				names[i] = string(c)
			}
			fmt.Printf("  ↳ %s %s\n", faint("failed:"), strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	checkCmd.AddCommand(checkPostureCmd)
}
