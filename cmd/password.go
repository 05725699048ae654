// ABOUTME: Password recovery commands for luxe CLI
// ABOUTME: Requests a reset email and sets a new password from its token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	resetEmail       string
	resetToken       string
	resetNewPassword string
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Recover a forgotten password",
}

var passwordForgotCmd = &cobra.Command{
	Use:   "forgot",
	Short: "Email a password reset link",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runPasswordForgot(ctx, os.Stdout, resetEmail)
		})
	},
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Set a new password using the token from the reset email",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runPasswordReset(ctx, os.Stdout, resetToken, resetNewPassword)
		})
	},
}

func init() {
	rootCmd.AddCommand(passwordCmd)
	passwordCmd.AddCommand(passwordForgotCmd, passwordResetCmd)

	passwordForgotCmd.Flags().StringVar(&resetEmail, "email", "", "Account email")
	passwordResetCmd.Flags().StringVar(&resetToken, "token", "", "Reset token from the email")
	passwordResetCmd.Flags().StringVar(&resetNewPassword, "new-password", "", "New password (at least 8 characters)")
}

// runPasswordForgot requests a reset email and returns exit code
func runPasswordForgot(ctx context.Context, w io.Writer, email string) int {
	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	res := sh.session.RequestPasswordReset(ctx, email)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.Error)
		return 1
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]bool{"success": true}))
	} else {
		fmt.Fprintln(w, "If an account exists for that email, a reset link is on its way.")
	}
	return 0
}

// runPasswordReset sets a new password and returns exit code
func runPasswordReset(ctx context.Context, w io.Writer, token, newPassword string) int {
	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	res := sh.session.ResetPassword(ctx, token, newPassword)
	if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.Error)
		return 1
	}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]bool{"success": true}))
	} else {
		fmt.Fprintln(w, `Password updated. Run "luxe login" to sign in.`)
	}
	return 0
}
