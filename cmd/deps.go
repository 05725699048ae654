// ABOUTME: Wires configuration, the API client, and the storefront controllers
// ABOUTME: Shared by every command that talks to the backend

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/juju/webbrowser"

	"github.com/luxefashion/luxe-cli/internal/cart"
	"github.com/luxefashion/luxe-cli/internal/checkout"
	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/config"
	"github.com/luxefashion/luxe-cli/internal/logger"
	"github.com/luxefashion/luxe-cli/internal/notify"
	"github.com/luxefashion/luxe-cli/internal/session"
	"github.com/luxefashion/luxe-cli/internal/store"
)

// openBrowser shows sign-in and payment pages; tests replace it
var openBrowser = webbrowser.Open

// shop holds the controllers one command invocation works with
type shop struct {
	cfg      *config.Config
	logger   *slog.Logger
	api      *client.Client
	session  *session.Service
	cart     *cart.Synchronizer
	checkout *checkout.Service
	notifier *failureTracker

	detach func()
}

// failureTracker forwards notifications and remembers whether a failure
// was shown to the user
type failureTracker struct {
	next   notify.Notifier
	failed atomic.Bool
}

func (f *failureTracker) Notify(n notify.Notification) {
	if n.Level == notify.LevelError {
		f.failed.Store(true)
	}
	f.next.Notify(n)
}

// shown reports whether a failure notification reached the user
func (f *failureTracker) shown() bool {
	return f.failed.Load()
}

// shopOptions override the collaborators newShop would pick for a CLI run
type shopOptions struct {
	logger   *slog.Logger
	notifier notify.Notifier
	nav      cart.Navigator
}

// newShop loads configuration, restores the persisted session and attaches
// the cart to it. The cart is not fetched until a command needs it.
// Notifications are written to w unless JSON output is on.
func newShop(ctx context.Context, w io.Writer) (*shop, error) {
	opts := shopOptions{
		logger:   logger.Init(os.Stderr),
		notifier: notify.NewWriter(w),
		nav:      signInHint{w: w},
	}
	if IsJSONOutput() {
		opts.notifier = notify.Discard
		opts.nav = signInHint{w: io.Discard}
	}
	return buildShop(ctx, opts)
}

func buildShop(ctx context.Context, opts shopOptions) (*shop, error) {
	cfg, err := config.LoadWithAPIURL(apiURL)
	if err != nil {
		return nil, err
	}

	notifier := &failureTracker{next: opts.notifier}
	st := store.NewFile(cfg.ConfigDir)
	api := client.New(cfg.APIURL,
		client.WithTokenSource(session.TokenSource(st)),
		client.WithTimeout(cfg.HTTPTimeout),
		client.WithLogger(opts.logger),
	)

	sess := session.New(session.Config{
		API:           api,
		Store:         st,
		Logger:        opts.logger,
		CallbackDelay: callbackDelay(cfg),
		Open:          openBrowser,
	})

	var cartOpts []cart.Option
	cartOpts = append(cartOpts, cart.WithLogger(opts.logger))
	if cfg.SerializeCart {
		cartOpts = append(cartOpts, cart.WithSerializedMutations())
	}
	syncer := cart.New(api, sess, opts.nav, notifier, cartOpts...)
	detach := syncer.Attach(ctx, sess)

	co := checkout.New(checkout.Config{
		API:         api,
		Cart:        syncer,
		Notifier:    notifier,
		Logger:      opts.logger,
		ApprovalURL: cfg.PayPalCheckoutURL,
		Open:        openBrowser,
	})

	sess.Init(ctx)

	return &shop{
		cfg:      cfg,
		logger:   opts.logger,
		api:      api,
		session:  sess,
		cart:     syncer,
		checkout: co,
		notifier: notifier,
		detach:   detach,
	}, nil
}

// callbackDelay maps an explicit LUXE_CALLBACK_DELAY_MS=0 to no wait
func callbackDelay(cfg *config.Config) time.Duration {
	if cfg.CallbackDelay == 0 {
		return session.NoCallbackDelay
	}
	return cfg.CallbackDelay
}

func (s *shop) close() {
	s.detach()
}

// signInHint is the CLI's cart navigator: it tells the user how to sign in
type signInHint struct {
	w io.Writer
}

func (h signInHint) RedirectToAuth() {
	fmt.Fprintln(h.w, `Please sign in first: run "luxe login"`)
}

// signalContext cancels on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// exitWith runs a command body and exits with its code when non-zero
func exitWith(run func(ctx context.Context) int) {
	ctx, cancel := signalContext()
	code := run(ctx)
	cancel()
	if code != 0 {
		os.Exit(code)
	}
}

// printErr reports err the way every command does and returns exit code 2
func printErr(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}
