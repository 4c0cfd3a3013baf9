package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/api"
	"github.com/Tarunchintakunta/Zero-trust-simulator/internal/core"
)

var checkAccessCmd = &cobra.Command{
	Use:   "access",
	Short: "Check the segmentation policy of a resource",
	Long: `Checks only the micro-segmentation step, assuming the user is authenticated.
Use --mfa and --compliant to describe the session.`,
	Example: `  ztasim check access --user bob --device laptop-1 --resource /app/db --mfa --compliant`,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := api.AccessPayload{}
		payload.User, _ = cmd.Flags().GetString("user")
		payload.Device, _ = cmd.Flags().GetString("device")
		payload.Resource, _ = cmd.Flags().GetString("resource")
		payload.UsedMFA, _ = cmd.Flags().GetBool("mfa")
		payload.Compliant, _ = cmd.Flags().GetBool("compliant")

		var v core.Verdict
		if f.Remote() {
			cli, err := f.GetClient()
			if err != nil {
				return err
			}
			resp, correlation, err := cli.CheckAccess(cmd.Context(), payload)
			if err != nil {
				return logError(err, correlation, "failed to check access")
			}
			v = core.Verdict{Allowed: resp.Allowed, Reason: resp.Detail}
		} else {
			eng, _, err := f.LocalEngine()
			if err != nil {
				return err
			}
			v = eng.Segmenter().CheckAccess(payload.User, payload.Device, payload.Resource, payload.UsedMFA, payload.Compliant)
		}

		printVerdict("segmentation", v)
		return nil
	},
}

func init() {
	checkCmd.AddCommand(checkAccessCmd)

	checkAccessCmd.Flags().StringP("user", "u", "", "User requesting access")
	checkAccessCmd.Flags().StringP("device", "d", "", "Device the request comes from")
	checkAccessCmd.Flags().StringP("resource", "r", "", "Requested resource")
	checkAccessCmd.Flags().Bool("mfa", false, "The session used MFA")
	checkAccessCmd.Flags().Bool("compliant", false, "The device is compliant")
	_ = checkAccessCmd.MarkFlagRequired("user")
	_ = checkAccessCmd.MarkFlagRequired("resource")
}
