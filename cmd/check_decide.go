package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var checkDecideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Run a full access decision and explain it",
	Long: `Runs authentication, device posture and segmentation for a single request
and prints the result of every step.`,
	Example: `  # Why is carol denied on the database?
  ztasim check decide -u carol -p carol789 -d vm-2 -r /app/db

  # Same request with only authentication enforced
  ztasim check decide -u carol -p carol789 -d vm-2 -r /app/db --controls auth`,
	RunE: func(cmd *cobra.Command, args []string) error {
		methodStr, _ := cmd.Flags().GetString("method")
		method, err := parseMethod(methodStr)
		if err != nil {
			return err
		}

		req := core.AccessRequest{Method: method}
		req.User, _ = cmd.Flags().GetString("user")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Device, _ = cmd.Flags().GetString("device")
		req.Resource, _ = cmd.Flags().GetString("resource")
		if cmd.Flags().Changed("mfa-code") {
			code, _ := cmd.Flags().GetString("mfa-code")
			req.MFACode = &code
		}

		var trace *core.EvaluationTrace
		if f.Remote() {
			cli, err := f.GetClient()
			if err != nil {
				return err
			}
			var correlation string
			trace, correlation, err = cli.Decide(cmd.Context(), req)
			if err != nil {
				return logError(err, correlation, "failed to evaluate request")
			}
		} else {
			eng, _, err := f.LocalEngine()
			if err != nil {
				return err
			}
			t := eng.Trace(req)
			trace = &t
		}

		printTrace(trace)
		return nil
	},
}

func init() {
	checkCmd.AddCommand(checkDecideCmd)

	checkDecideCmd.Flags().StringP("user", "u", "", "User requesting access")
	checkDecideCmd.Flags().StringP("password", "p", "", "Password")
	checkDecideCmd.Flags().StringP("device", "d", "", "Device the request comes from")
	checkDecideCmd.Flags().StringP("resource", "r", "", "Requested resource (optional)")
	checkDecideCmd.Flags().StringP("method", "m", "password", "Authentication method (password, mfa)")
	checkDecideCmd.Flags().String("mfa-code", "", "MFA code (default: a valid simulated code for --method mfa)")
	f.bindControlFlags(checkDecideCmd.Flags())
	_ = checkDecideCmd.MarkFlagRequired("user")
	_ = checkDecideCmd.MarkFlagRequired("device")
}
