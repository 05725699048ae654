// ABOUTME: Bearer token access for the API client and token expiry display
// ABOUTME: Also adapts slog to the pubsub hub's logger interface

package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jujuerrors "github.com/juju/errors"
	"golang.org/x/oauth2"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/store"
)

type storeTokenSource struct {
	store store.Store
}

// TokenSource reads the bearer token from st on every call, so a client
// built once sees logins and logouts made after construction.
func TokenSource(st store.Store) oauth2.TokenSource {
	return storeTokenSource{store: st}
}

func (ts storeTokenSource) Token() (*oauth2.Token, error) {
	tok, err := ts.store.Get(store.KeyAccessToken)
	if jujuerrors.Is(err, jujuerrors.NotFound) || (err == nil && tok == "") {
		return nil, client.ErrNoToken
	}
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// TokenExpiry returns the exp claim when the stored token is a JWT.
// The token is opaque to this client, so this is for display only.
func (s *Service) TokenExpiry() (time.Time, bool) {
	tok := s.token()
	if tok == "" {
		return time.Time{}, false
	}
	return tokenExpiry(tok)
}

func tokenExpiry(tok string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// hubLogger routes pubsub hub diagnostics to slog
type hubLogger struct {
	l *slog.Logger
}

func (h hubLogger) Errorf(format string, args ...interface{}) {
	h.l.Error(fmt.Sprintf(format, args...))
}

func (h hubLogger) Warningf(format string, args ...interface{}) {
	h.l.Warn(fmt.Sprintf(format, args...))
}

func (h hubLogger) Infof(format string, args ...interface{}) {
	h.l.Info(fmt.Sprintf(format, args...))
}

func (h hubLogger) Debugf(format string, args ...interface{}) {
	h.l.Debug(fmt.Sprintf(format, args...))
}

func (h hubLogger) Tracef(format string, args ...interface{}) {
	h.l.Debug(fmt.Sprintf(format, args...))
}
