// ABOUTME: Root command for luxe CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/luxefashion/luxe-cli/internal/config"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "luxe",
	Short: "CLI for the LUXE fashion storefront",
	Long: `luxe is a command-line client for the LUXE fashion storefront.

Browse the catalog, manage your cart, and check out from the terminal.
Run "luxe shop" for the interactive storefront.

Environment Variables:
  LUXE_API_URL              Backend API URL (default: ` + config.DefaultAPIURL + `)
  LUXE_CONFIG_DIR           Where the session is kept (default: ~/.config/luxe)
  LUXE_HTTP_TIMEOUT         Request timeout in seconds, 0 disables (default: 30)
  LUXE_CALLBACK_LISTEN      Loopback address for Google sign-in (default: 127.0.0.1:8765)
  LUXE_SERIALIZE_CART       Serialize cart updates per product (default: false)
  LUXE_PAYPAL_CHECKOUT_URL  PayPal approval page
  LOG_LEVEL, LOG_FORMAT     Logging (debug|info|warn|error, text|json)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(".env")
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides LUXE_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("LUXE_API_URL"); envURL != "" {
		return envURL
	}
	return config.DefaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
