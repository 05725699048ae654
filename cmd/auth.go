// ABOUTME: Sign-in commands for luxe CLI
// ABOUTME: Email and Google login, signup, logout, and the current user

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/handoff"
	"github.com/luxefashion/luxe-cli/internal/session"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

var (
	authEmail    string
	authPassword string
	authName     string

	googleListen      string
	googleCallbackURL string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Long: `Sign in to the storefront. The session is kept in the config directory
and reused by every other command until you log out.

Missing credentials are prompted for when running in a terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := promptCredentials(false); err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}
		exitWith(func(ctx context.Context) int {
			return runLogin(ctx, os.Stdout, authEmail, authPassword)
		})
	},
}

var loginGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Sign in with Google",
	Long: `Open the Google sign-in page and wait for the provider to redirect back
to a local listener.

If the redirect cannot reach this machine, copy the URL the browser lands on
and pass it with --callback-url.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runLoginGoogle(ctx, os.Stdout, googleListen, googleCallbackURL)
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Run: func(cmd *cobra.Command, args []string) {
		if err := promptCredentials(true); err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}
		exitWith(func(ctx context.Context) int {
			return runSignup(ctx, os.Stdout, authName, authEmail, authPassword)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runLogout(ctx, os.Stdout)
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"status"},
	Short:   "Show the signed-in user",
	Long: `Show the signed-in user, their role, and when the stored token expires.

Exit codes:
  0 - Signed in
  1 - Not signed in
  2 - Error`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runWhoami(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd)
	loginCmd.AddCommand(loginGoogleCmd)

	loginCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "Account password")

	signupCmd.Flags().StringVar(&authName, "name", "", "Full name")
	signupCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&authPassword, "password", "", "Account password (at least 8 characters)")

	loginGoogleCmd.Flags().StringVar(&googleListen, "listen", "", "Loopback address for the callback (overrides LUXE_CALLBACK_LISTEN)")
	loginGoogleCmd.Flags().StringVar(&googleCallbackURL, "callback-url", "", "Redirect URL copied from the browser")
}

// promptCredentials asks for whatever the flags left out
func promptCredentials(withName bool) error {
	var fields []huh.Field
	if withName && authName == "" {
		fields = append(fields, huh.NewInput().Title("Full name").Value(&authName))
	}
	if authEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&authEmail))
	}
	if authPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&authPassword))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// runLogin signs in and returns exit code
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	res := sh.session.Login(ctx, email, password)
	return reportSignIn(w, res, sh.session.User())
}

// runSignup registers and returns exit code
func runSignup(ctx context.Context, w io.Writer, name, email, password string) int {
	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	res := sh.session.Signup(ctx, email, password, name)
	return reportSignIn(w, res, sh.session.User())
}

// runLoginGoogle completes a Google sign-in and returns exit code
func runLoginGoogle(ctx context.Context, w io.Writer, listen, callbackURL string) int {
	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	var out handoff.Outcome
	if callbackURL != "" {
		u, err := url.Parse(callbackURL)
		if err != nil {
			return printErr(w, fmt.Errorf("invalid callback URL: %w", err))
		}
		out = handoff.Handle(ctx, u, sh.session, sh.notifier)
		if out.Callback.Kind == handoff.KindNone {
			return printErr(w, fmt.Errorf("callback URL carries neither a token nor an error"))
		}
	} else {
		if listen == "" {
			listen = sh.cfg.CallbackListen
		}
		l := handoff.NewListener(sh.session, sh.notifier, sh.logger)
		out, err = l.Serve(ctx, listen, func(addr net.Addr) {
			if !IsJSONOutput() {
				fmt.Fprintf(w, "Waiting for Google sign-in on http://%s ...\n", addr)
			}
			if err := sh.session.LoginWithGoogle(); err != nil {
				fmt.Fprintf(w, "Open this URL in your browser: %s\n", sh.api.GoogleAuthURL())
			}
		})
		if err != nil {
			return printErr(w, err)
		}
	}

	if !out.SignedIn {
		return reportSignIn(w, session.Result{Error: "Google sign-in did not complete"}, nil)
	}
	return reportSignIn(w, session.Result{Success: true}, sh.session.User())
}

// reportSignIn prints the outcome of a sign-in attempt
func reportSignIn(w io.Writer, res session.Result, user *client.User) int {
	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]interface{}{
			"success": res.Success,
			"error":   res.Error,
			"user":    user,
		}))
	} else if res.Success && user != nil {
		fmt.Fprintf(w, "Signed in as %s (%s) %s\n", user.Name, user.Email, widgets.RoleBadge(user.Role))
	} else if !res.Success {
		fmt.Fprintf(w, "Error: %s\n", res.Error)
	}

	if !res.Success {
		return 1
	}
	return 0
}

// runLogout signs out and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	sh.session.Logout()

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(map[string]bool{"success": true}))
	} else {
		fmt.Fprintln(w, "Signed out")
	}
	return 0
}

// runWhoami prints the current user and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	user := sh.session.User()
	expiry, hasExpiry := sh.session.TokenExpiry()

	if IsJSONOutput() {
		fmt.Fprintln(w, formatWhoamiJSON(sh.session.State(), user, expiry, hasExpiry))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(user, expiry, hasExpiry, time.Now()))
	}

	if user == nil {
		return 1
	}
	return 0
}

// formatWhoamiHuman formats the current user for human readability
func formatWhoamiHuman(user *client.User, expiry time.Time, hasExpiry bool, now time.Time) string {
	if user == nil {
		return `Not signed in. Run "luxe login" to sign in.`
	}

	tokenLine := "not a JWT, expiry unknown"
	switch {
	case !hasExpiry:
	case expiry.Before(now):
		tokenLine = "expired " + humanize.RelTime(expiry, now, "ago", "from now")
	default:
		tokenLine = "expires " + humanize.RelTime(expiry, now, "ago", "from now")
	}

	return fmt.Sprintf(`Name:   %s
Email:  %s
Role:   %s
Token:  %s`, user.Name, user.Email, user.Role, tokenLine)
}

// formatWhoamiJSON formats the current user as JSON
func formatWhoamiJSON(state session.State, user *client.User, expiry time.Time, hasExpiry bool) string {
	output := map[string]interface{}{
		"state": state.String(),
		"user":  user,
	}
	if hasExpiry {
		output["token_expires_at"] = expiry.UTC().Format(time.RFC3339)
	}
	return formatJSON(output)
}

// formatJSON renders v as indented JSON
func formatJSON(v interface{}) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}
