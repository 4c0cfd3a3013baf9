package cmd

import (
	"github.com/spf13/cobra"
)

var checkAuthCmd = &cobra.Command{
	Use:     "auth",
	Short:   "Authenticate a user with a password and an optional MFA code",
	Example: `  ztasim check auth --user alice --password alice123 --mfa-code 123456`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		password, _ := cmd.Flags().GetString("password")

		var code *string
		if cmd.Flags().Changed("mfa-code") {
			c, _ := cmd.Flags().GetString("mfa-code")
			code = &c
		}

		eng, _, err := f.LocalEngine()
		if err != nil {
			return err
		}
		auth := eng.Authenticator()

		printVerdict("password", auth.VerifyPassword(user, password))
		if code != nil {
			printVerdict("mfa", auth.VerifyMFA(user, *code))
		}
		printVerdict("authentication", auth.Authenticate(user, password, code))
		return nil
	},
}

func init() {
	checkCmd.AddCommand(checkAuthCmd)

	checkAuthCmd.Flags().StringP("user", "u", "", "User to authenticate")
	checkAuthCmd.Flags().StringP("password", "p", "", "Password")
	checkAuthCmd.Flags().String("mfa-code", "", "MFA code (six digits)")
	_ = checkAuthCmd.MarkFlagRequired("user")
}
