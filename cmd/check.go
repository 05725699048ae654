// ABOUTME: Check command for luxe CLI
// ABOUTME: Verifies the session and cart are ready for checkout

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/luxefashion/luxe-cli/internal/checkout"
	"github.com/luxefashion/luxe-cli/internal/tui/widgets"
)

var (
	maxTotal      float64
	minTokenHours int
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the session and cart are ready for checkout",
	Long: `Check that you are signed in, your token will not expire soon, and your
cart is within budget. Exits non-zero if any check fails.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCheck(ctx, os.Stdout, time.Now())
		})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Float64Var(&maxTotal, "max-total", 0, "Fail when the cart total with standard shipping exceeds this (0 disables)")
	checkCmd.Flags().IntVar(&minTokenHours, "min-token-hours", 1, "Fail when the token expires within this many hours")
}

// checkResult represents the result of a single check
type checkResult struct {
	name   string
	detail string
	passed bool
}

// readiness is what the checks look at
type readiness struct {
	signedIn    bool
	email       string
	expiry      time.Time
	hasExpiry   bool
	itemCount   int
	total       float64
	minValidity time.Duration
	maxTotal    float64
}

// runCheck executes the readiness checks and returns exit code
func runCheck(ctx context.Context, w io.Writer, now time.Time) int {
	if err := validateCheckFlags(maxTotal, minTokenHours); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	sh, err := newShop(ctx, w)
	if err != nil {
		return printErr(w, err)
	}
	defer sh.close()

	if err := sh.cart.Refresh(ctx); err != nil {
		return printErr(w, err)
	}

	r := readiness{
		minValidity: time.Duration(minTokenHours) * time.Hour,
		maxTotal:    maxTotal,
		itemCount:   sh.cart.ItemCount(),
		total:       sh.checkout.Summary(checkout.MethodStandard).Total,
	}
	if u := sh.session.User(); u != nil {
		r.signedIn = true
		r.email = u.Email
	}
	r.expiry, r.hasExpiry = sh.session.TokenExpiry()

	results := performChecks(r, now)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// validateCheckFlags ensures threshold values are valid
func validateCheckFlags(total float64, tokenHours int) error {
	if total < 0 {
		return fmt.Errorf("--max-total must not be negative")
	}
	if tokenHours < 0 {
		return fmt.Errorf("--min-token-hours must not be negative")
	}
	return nil
}

// performChecks runs all readiness checks
func performChecks(r readiness, now time.Time) []checkResult {
	var results []checkResult

	signIn := checkResult{name: "Signed in", detail: "not signed in", passed: r.signedIn}
	if r.signedIn {
		signIn.detail = r.email
	}
	results = append(results, signIn)

	token := checkResult{name: "Token", detail: "no expiry", passed: true}
	if r.hasExpiry {
		token.detail = "expires " + humanize.RelTime(r.expiry, now, "ago", "from now")
		token.passed = r.expiry.Sub(now) >= r.minValidity
	}
	if r.signedIn {
		results = append(results, token)
	}

	results = append(results, checkResult{
		name:   "Cart",
		detail: fmt.Sprintf("%d item(s)", r.itemCount),
		passed: r.itemCount > 0,
	})

	if r.maxTotal > 0 {
		results = append(results, checkResult{
			name:   "Cart total",
			detail: fmt.Sprintf("%s (limit: %s)", widgets.Price(r.total), widgets.Price(r.maxTotal)),
			passed: r.total <= r.maxTotal,
		})
	}

	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %s\n", symbol, r.name, r.detail)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nFAILED: %d check(s) did not pass", failed)
	} else {
		output += fmt.Sprintf("\nPASSED: All %d check(s) passed, ready for checkout", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"name":   r.name,
			"detail": r.detail,
			"passed": r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	return formatJSON(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
