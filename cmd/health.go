// ABOUTME: Health command for luxe CLI
// ABOUTME: Checks backend connectivity through the public catalog

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/luxefashion/luxe-cli/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the storefront backend by listing the public categories.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runHealth(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// healthReport is what the health command found
type healthReport struct {
	Backend    string        `json:"backend"`
	Categories int           `json:"categories"`
	Latency    time.Duration `json:"-"`
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	start := time.Now()
	cats, err := c.ListCategories(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	report := healthReport{Backend: url, Categories: len(cats), Latency: time.Since(start)}
	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(report))
	} else {
		fmt.Fprintln(w, formatHealthHuman(report))
	}

	return 0
}

// formatHealthHuman formats health report for human readability
func formatHealthHuman(r healthReport) string {
	return fmt.Sprintf(`Backend:     %s
Status:      ok
Categories:  %d
Latency:     %s`, r.Backend, r.Categories, r.Latency.Round(time.Millisecond))
}

// formatHealthJSON formats health report as JSON
func formatHealthJSON(r healthReport) string {
	return formatJSON(map[string]interface{}{
		"backend":    r.Backend,
		"status":     "ok",
		"categories": r.Categories,
		"latency_ms": r.Latency.Milliseconds(),
	})
}
