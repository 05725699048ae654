// ABOUTME: Session controller: authenticated identity, token persistence, federated login
// ABOUTME: Publishes an auth-changed broadcast on its own hub when the session changes

package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	jujuerrors "github.com/juju/errors"
	"github.com/juju/pubsub/v2"
	"github.com/juju/webbrowser"
	"golang.org/x/sync/singleflight"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/store"
)

// AuthChanged is the payload-free topic published whenever the session changes
const AuthChanged = "auth.changed"

// DefaultCallbackDelay bounds the wait between persisting a federated token and loading the profile
const DefaultCallbackDelay = 100 * time.Millisecond

// NoCallbackDelay loads the profile as soon as a federated token is persisted
const NoCallbackDelay time.Duration = -1

var (
	// ErrInvalidSession means a token is stored but the backend has no profile for it
	ErrInvalidSession = errors.New("invalid session")
	// ErrUnauthenticated means no user is signed in
	ErrUnauthenticated = errors.New("please sign in first")
	// ErrForbidden means the signed-in user lacks the required role
	ErrForbidden = errors.New("you do not have access to this area")
)

// MissingFieldsMessage is the validation error for incomplete auth forms
const MissingFieldsMessage = "Please fill in all required fields"

// MinPasswordLength applies to password resets
const MinPasswordLength = 8

// State is where the session is in its initialization lifecycle
type State int

const (
	StateUnauthenticated State = iota
	StateLoading
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Result is the outcome of a user-facing session operation.
// Error is a human-readable reason, empty on success.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func failed(err error) Result {
	return Result{Error: err.Error()}
}

// AuthAPI is the subset of the storefront API the session needs
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, name, email, password string) (string, error)
	Profile(ctx context.Context) (*client.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	GoogleAuthURL() string
}

// Config holds the session's collaborators
type Config struct {
	API           AuthAPI
	Store         store.Store
	Logger        *slog.Logger
	// CallbackDelay of zero means DefaultCallbackDelay; use NoCallbackDelay to skip the wait
	CallbackDelay time.Duration
	// Open navigates to an external URL; defaults to the system browser
	Open func(*url.URL) error
}

// Service owns the current session. Construct one per process and pass it
// explicitly to consumers.
type Service struct {
	api    AuthAPI
	store  store.Store
	logger *slog.Logger
	delay  time.Duration
	open   func(*url.URL) error

	hub   *pubsub.SimpleHub
	group singleflight.Group

	mu    sync.RWMutex
	user  *client.User
	state State
}

// New creates a session service. Call Init to restore persisted state.
func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	delay := cfg.CallbackDelay
	switch {
	case delay == 0:
		delay = DefaultCallbackDelay
	case delay < 0:
		delay = 0
	}
	open := cfg.Open
	if open == nil {
		open = webbrowser.Open
	}
	return &Service{
		api:    cfg.API,
		store:  cfg.Store,
		logger: logger,
		delay:  delay,
		open:   open,
		hub: pubsub.NewSimpleHub(&pubsub.SimpleHubConfig{
			Logger: hubLogger{logger},
		}),
	}
}

// Init restores the session from the store:
// no token and no cached user is unauthenticated, a token triggers a profile
// load, and a cached user without a token is trusted as is.
func (s *Service) Init(ctx context.Context) State {
	token := s.token()
	cached := s.cachedUser()

	switch {
	case token != "":
		s.setState(StateLoading, cached)
		if err := s.loadProfile(ctx); err != nil {
			s.logger.Debug("session restore failed", "error", err)
		}
	case cached != nil:
		s.setState(StateAuthenticated, cached)
	default:
		s.setState(StateUnauthenticated, nil)
	}
	return s.State()
}

// Login exchanges credentials for a token and loads the profile
func (s *Service) Login(ctx context.Context, email, password string) Result {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Result{Error: MissingFieldsMessage}
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login failed", "email", email, "error", err)
		return failed(err)
	}
	return s.establish(ctx, token)
}

// Signup registers an account and signs it in
func (s *Service) Signup(ctx context.Context, email, password, name string) Result {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return Result{Error: MissingFieldsMessage}
	}

	token, err := s.api.Signup(ctx, name, email, password)
	if err != nil {
		s.logger.Info("signup failed", "email", email, "error", err)
		return failed(err)
	}
	return s.establish(ctx, token)
}

func (s *Service) establish(ctx context.Context, token string) Result {
	if err := s.store.Set(store.KeyAccessToken, token); err != nil {
		return failed(jujuerrors.Annotate(err, "saving token"))
	}
	err := s.loadProfile(ctx)
	s.publish()
	if err != nil {
		return failed(err)
	}
	return Result{Success: true}
}

// LoginWithGoogle opens the federated login entry point. Control comes back
// through HandleGoogleCallback once the provider redirects with a token.
func (s *Service) LoginWithGoogle() error {
	u, err := url.Parse(s.api.GoogleAuthURL())
	if err != nil {
		return err
	}
	s.logger.Info("opening federated login", "url", u.String())
	return s.open(u)
}

// GoogleAuthURL is the federated login entry point, for when no browser
// can be opened
func (s *Service) GoogleAuthURL() string {
	return s.api.GoogleAuthURL()
}

// HandleGoogleCallback persists a token issued by the federated login
// and loads the profile. It reports whether a user is now signed in.
// If ctx ends before the profile load starts, the token is discarded.
func (s *Service) HandleGoogleCallback(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	if err := s.store.Set(store.KeyAccessToken, token); err != nil {
		s.logger.Error("failed to save federated token", "error", err)
		return false
	}

	if err := s.settle(ctx); err != nil {
		s.logger.Info("federated login abandoned", "error", err)
		s.purge()
		s.publish()
		return false
	}

	err := s.loadProfile(ctx)
	s.publish()
	if err != nil {
		s.logger.Warn("federated login profile load failed", "error", err)
		return false
	}
	return s.IsAuthenticated()
}

func (s *Service) settle(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CheckAuth re-validates the session against the profile endpoint
func (s *Service) CheckAuth(ctx context.Context) error {
	return s.loadProfile(ctx)
}

// Logout clears the token and cached user locally
func (s *Service) Logout() {
	s.purge()
	s.publish()
}

// loadProfile fetches the profile for the stored token.
// Authorization failures purge the session; other failures keep it.
// Concurrent loads share one request.
func (s *Service) loadProfile(ctx context.Context) error {
	_, err, _ := s.group.Do("profile", func() (interface{}, error) {
		if s.token() == "" {
			s.purge()
			return nil, nil
		}

		user, err := s.api.Profile(ctx)
		if err == nil && user == nil {
			err = ErrInvalidSession
		}
		if err != nil {
			if isAuthFailure(err) {
				s.logger.Info("session rejected, signing out", "error", err)
				s.purge()
				return nil, err
			}
			s.logger.Warn("profile load failed, keeping session", "error", err)
			s.mu.Lock()
			if s.user != nil {
				s.state = StateAuthenticated
			} else {
				s.state = StateUnauthenticated
			}
			s.mu.Unlock()
			return nil, err
		}

		s.setState(StateAuthenticated, user)
		s.cacheUser(user)
		return user, nil
	})
	return err
}

func isAuthFailure(err error) bool {
	if errors.Is(err, ErrInvalidSession) || errors.Is(err, client.ErrNoToken) {
		return true
	}
	if client.IsUnauthorized(err) {
		return true
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return strings.Contains(strings.ToLower(apiErr.Message), "token")
	}
	return false
}

// RequestPasswordReset asks the backend to email a reset link
func (s *Service) RequestPasswordReset(ctx context.Context, email string) Result {
	email = strings.TrimSpace(email)
	if email == "" {
		return Result{Error: MissingFieldsMessage}
	}
	if err := s.api.RequestPasswordReset(ctx, email); err != nil {
		return failed(err)
	}
	return Result{Success: true}
}

// ResetPassword sets a new password using the emailed reset token
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) Result {
	if resetToken == "" {
		return Result{Error: "Reset password link is invalid or expired"}
	}
	if len(newPassword) < MinPasswordLength {
		return Result{Error: "Password must be at least 8 characters"}
	}
	if err := s.api.ResetPassword(ctx, resetToken, newPassword); err != nil {
		return failed(err)
	}
	return Result{Success: true}
}

// User returns a copy of the signed-in user, or nil
func (s *Service) User() *client.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// State returns the current lifecycle state
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a user is signed in
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// HasToken reports whether a bearer token is stored
func (s *Service) HasToken() bool {
	return s.token() != ""
}

// RequireRole returns ErrUnauthenticated or ErrForbidden unless the
// signed-in user holds one of roles
func (s *Service) RequireRole(roles ...client.Role) error {
	u := s.User()
	if u == nil {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if u.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// Subscribe registers fn for auth-changed broadcasts and returns its unsubscriber
func (s *Service) Subscribe(fn func()) func() {
	return s.hub.Subscribe(AuthChanged, func(string, interface{}) { fn() })
}

// publish broadcasts auth-changed and waits for subscribers.
// Never call it with s.mu held.
func (s *Service) publish() {
	s.hub.Publish(AuthChanged, nil)()
}

func (s *Service) setState(state State, user *client.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}

func (s *Service) purge() {
	if err := s.store.Delete(store.KeyAccessToken); err != nil {
		s.logger.Warn("failed to delete token", "error", err)
	}
	if err := s.store.Delete(store.KeyUser); err != nil {
		s.logger.Warn("failed to delete cached user", "error", err)
	}
	s.setState(StateUnauthenticated, nil)
}

func (s *Service) token() string {
	tok, err := s.store.Get(store.KeyAccessToken)
	if err != nil {
		if !jujuerrors.Is(err, jujuerrors.NotFound) {
			s.logger.Warn("failed to read token", "error", err)
		}
		return ""
	}
	return tok
}

func (s *Service) cachedUser() *client.User {
	raw, err := s.store.Get(store.KeyUser)
	if err != nil || raw == "" {
		return nil
	}
	var u client.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.logger.Debug("ignoring unreadable cached user", "error", err)
		return nil
	}
	return &u
}

func (s *Service) cacheUser(u *client.User) {
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := s.store.Set(store.KeyUser, string(data)); err != nil {
		s.logger.Warn("failed to cache user", "error", err)
	}
}
