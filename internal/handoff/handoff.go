// ABOUTME: Federated login callback handling
// ABOUTME: Classifies provider redirects, completes sign-in, and strips credentials from the URL

package handoff

import (
	"context"
	"net/url"

	"github.com/luxefashion/luxe-cli/internal/notify"
)

// Kind is what a callback URL carries
type Kind int

const (
	KindNone Kind = iota
	KindToken
	KindError
)

// Callback is a parsed provider redirect
type Callback struct {
	Kind  Kind
	Token string
	Error string
}

// Parse inspects the query of a redirect to the application root.
// An error parameter wins over a token.
func Parse(u *url.URL) Callback {
	q := u.Query()
	if e := q.Get("error"); e != "" {
		return Callback{Kind: KindError, Error: e}
	}
	if tok := q.Get("token"); tok != "" {
		return Callback{Kind: KindToken, Token: tok}
	}
	return Callback{Kind: KindNone}
}

// Clean returns a copy of u without the token and error parameters
func Clean(u *url.URL) *url.URL {
	cleaned := *u
	q := cleaned.Query()
	q.Del("token")
	q.Del("error")
	cleaned.RawQuery = q.Encode()
	return &cleaned
}

// Session completes a federated sign-in
type Session interface {
	HandleGoogleCallback(ctx context.Context, token string) bool
}

// Outcome is the result of handling one callback
type Outcome struct {
	Callback Callback
	SignedIn bool
	// URL is the address to show once the callback is handled
	URL *url.URL
}

// Handle processes a callback URL. A URL with neither token nor error is
// returned unchanged and nothing else happens.
func Handle(ctx context.Context, u *url.URL, sess Session, n notify.Notifier) Outcome {
	cb := Parse(u)
	switch cb.Kind {
	case KindError:
		n.Notify(notify.Failure("Google sign-in failed", describe(cb.Error)))
		return Outcome{Callback: cb, URL: Clean(u)}
	case KindToken:
		ok := sess.HandleGoogleCallback(ctx, cb.Token)
		if ok {
			n.Notify(notify.Success("Welcome back", "You have successfully signed in"))
		} else {
			n.Notify(notify.Failure("Google sign-in failed", "Could not load your profile"))
		}
		return Outcome{Callback: cb, SignedIn: ok, URL: Clean(u)}
	default:
		return Outcome{Callback: cb, URL: u}
	}
}

func describe(code string) string {
	switch code {
	case "access_denied":
		return "Access was denied"
	case "auth_failed", "authentication_failed":
		return "Authentication failed"
	default:
		return code
	}
}
