// ABOUTME: Loopback HTTP listener standing in for the application root during Google sign-in
// ABOUTME: Handles the provider redirect and answers with a redirect to the cleaned URL

package handoff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/luxefashion/luxe-cli/internal/notify"
)

// Listener serves the callback route until the first token or error arrives
type Listener struct {
	session  Session
	notifier notify.Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	claimed  bool
	outcome  *Outcome
	done     chan struct{}
	answered chan struct{}
	answer   sync.Once
}

// statusGrace bounds how long Serve waits for the browser to follow the
// redirect to the status page once a callback is handled
const statusGrace = 3 * time.Second

// NewListener creates a callback listener
func NewListener(sess Session, n notify.Notifier, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		session:  sess,
		notifier: n,
		logger:   logger,
		done:     make(chan struct{}),
		answered: make(chan struct{}),
	}
}

// Router returns the listener's HTTP routes
func (l *Listener) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Get("/", l.handleRoot)
	return r
}

func (l *Listener) handleRoot(w http.ResponseWriter, r *http.Request) {
	if Parse(r.URL).Kind == KindNone {
		l.writeStatus(w)
		return
	}

	// only the first callback is handled; repeats go straight to the status page
	l.mu.Lock()
	claimed := l.claimed
	l.claimed = true
	l.mu.Unlock()
	if claimed {
		http.Redirect(w, r, Clean(r.URL).RequestURI(), http.StatusSeeOther)
		return
	}

	out := Handle(r.Context(), r.URL, l.session, l.notifier)
	l.logger.Info("federated callback handled", "signed_in", out.SignedIn)

	l.mu.Lock()
	l.outcome = &out
	close(l.done)
	l.mu.Unlock()

	http.Redirect(w, r, out.URL.RequestURI(), http.StatusSeeOther)
}

func (l *Listener) writeStatus(w http.ResponseWriter) {
	l.mu.Lock()
	out := l.outcome
	l.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	switch {
	case out == nil:
		fmt.Fprintln(w, "Waiting for Google sign-in...")
	case out.SignedIn:
		fmt.Fprintln(w, "You are signed in to LUXE. You can close this tab.")
	default:
		fmt.Fprintln(w, "Sign-in did not complete. Return to the terminal for details.")
	}
	if out != nil {
		l.answer.Do(func() { close(l.answered) })
	}
}

// Done is closed once a callback has been handled
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

// Outcome returns the handled callback, if any
func (l *Listener) Outcome() (Outcome, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.outcome == nil {
		return Outcome{}, false
	}
	return *l.outcome, true
}

// Serve listens on addr until a callback is handled and its status page
// served, or ctx ends.
// ready, if non-nil, is called with the bound address once listening.
func (l *Listener) Serve(ctx context.Context, addr string, ready func(net.Addr)) (Outcome, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return Outcome{}, fmt.Errorf("cannot listen for sign-in callback on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           l.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	if ready != nil {
		ready(ln.Addr())
	}

	var serveErr error
	select {
	case <-l.done:
		// keep serving until the browser has loaded the status page
		select {
		case <-l.answered:
		case <-time.After(statusGrace):
		case <-ctx.Done():
		}
	case <-ctx.Done():
		serveErr = ctx.Err()
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.logger.Debug("callback listener shutdown", "error", err)
	}

	if out, ok := l.Outcome(); ok {
		return out, nil
	}
	if serveErr == nil {
		serveErr = errors.New("sign-in callback listener stopped")
	}
	return Outcome{}, serveErr
}
