// ABOUTME: Shop command launching the interactive storefront
// ABOUTME: Logs to a file in the config directory so the terminal stays clean

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxefashion/luxe-cli/internal/config"
	"github.com/luxefashion/luxe-cli/internal/logger"
	"github.com/luxefashion/luxe-cli/internal/tui"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse and buy in the interactive storefront",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()
		return runShop(ctx)
	},
}

func init() {
	rootCmd.AddCommand(shopCmd)
}

func runShop(ctx context.Context) error {
	cfg, err := config.LoadWithAPIURL(apiURL)
	if err != nil {
		return err
	}

	log, closeLog, err := logger.InitFile(cfg.ConfigDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer closeLog()

	bridge := tui.NewBridge()
	sh, err := buildShop(ctx, shopOptions{logger: log, notifier: bridge, nav: bridge})
	if err != nil {
		return err
	}
	defer sh.close()

	log.Info("starting shop", "api_url", sh.cfg.APIURL, "signed_in", sh.session.IsAuthenticated())

	return tui.Run(tui.Deps{
		Catalog:        sh.api,
		Session:        sh.session,
		Cart:           sh.cart,
		Checkout:       sh.checkout,
		Bridge:         bridge,
		Logger:         log,
		CallbackListen: sh.cfg.CallbackListen,
	})
}
