// ABOUTME: Tests for federated login callback handling
// ABOUTME: Drives the chi listener with httptest and a real session over a fake backend

package handoff

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/notify"
	"github.com/luxefashion/luxe-cli/internal/session"
	"github.com/luxefashion/luxe-cli/internal/store"
)

func mustParse(c *qt.C, raw string) *url.URL {
	u, err := url.Parse(raw)
	c.Assert(err, qt.IsNil)
	return u
}

func TestParse(t *testing.T) {
	c := qt.New(t)
	c.Assert(Parse(mustParse(c, "/?token=abc123")), qt.DeepEquals, Callback{Kind: KindToken, Token: "abc123"})
	c.Assert(Parse(mustParse(c, "/?error=access_denied")), qt.DeepEquals, Callback{Kind: KindError, Error: "access_denied"})
	c.Assert(Parse(mustParse(c, "/?error=x&token=y")).Kind, qt.Equals, KindError)
	c.Assert(Parse(mustParse(c, "/?page=2")), qt.DeepEquals, Callback{Kind: KindNone})
}

func TestClean(t *testing.T) {
	c := qt.New(t)
	c.Assert(Clean(mustParse(c, "/?token=abc123")).RequestURI(), qt.Equals, "/")
	c.Assert(Clean(mustParse(c, "http://127.0.0.1:8765/?token=t&ref=home")).String(), qt.Equals, "http://127.0.0.1:8765/?ref=home")

	orig := mustParse(c, "/?error=x")
	Clean(orig)
	c.Assert(orig.RawQuery, qt.Equals, "error=x")
}

// stubSession records the token it was handed
type stubSession struct {
	token string
	ok    bool
}

func (s *stubSession) HandleGoogleCallback(ctx context.Context, token string) bool {
	s.token = token
	return s.ok
}

func TestHandleError(t *testing.T) {
	c := qt.New(t)
	sess := &stubSession{}
	rec := &notify.Recorder{}

	out := Handle(context.Background(), mustParse(c, "/?error=access_denied"), sess, rec)
	c.Assert(out.SignedIn, qt.IsFalse)
	c.Assert(out.URL.RequestURI(), qt.Equals, "/")
	c.Assert(sess.token, qt.Equals, "")

	last, ok := rec.Last()
	c.Assert(ok, qt.IsTrue)
	c.Assert(last.Level, qt.Equals, notify.LevelError)
	c.Assert(last.Description, qt.Equals, "Access was denied")
}

func TestHandleNoParamsIsNoop(t *testing.T) {
	c := qt.New(t)
	sess := &stubSession{}
	rec := &notify.Recorder{}

	u := mustParse(c, "/?page=2")
	out := Handle(context.Background(), u, sess, rec)
	c.Assert(out.URL, qt.Equals, u)
	c.Assert(rec.All(), qt.HasLen, 0)
	c.Assert(sess.token, qt.Equals, "")
}

func newSignedInSession(c *qt.C) (*session.Service, *store.MemoryStore) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/profile" || r.Header.Get("Authorization") != "Bearer abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Invalid token"}`)
			return
		}
		io.WriteString(w, `{"_id":"u1","name":"Ann","email":"ann@x.com","role":"user"}`)
	}))
	c.Cleanup(backend.Close)

	st := store.NewMemory()
	api := client.New(backend.URL, client.WithTokenSource(session.TokenSource(st)))
	return session.New(session.Config{API: api, Store: st, CallbackDelay: time.Millisecond}), st
}

func TestListenerTokenCallback(t *testing.T) {
	c := qt.New(t)
	sess, st := newSignedInSession(c)
	l := NewListener(sess, notify.Discard, nil)

	srv := httptest.NewServer(l.Router())
	defer srv.Close()

	noFollow := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := noFollow.Get(srv.URL + "/?token=abc123")
	c.Assert(err, qt.IsNil)
	resp.Body.Close()

	c.Assert(resp.StatusCode, qt.Equals, http.StatusSeeOther)
	c.Assert(resp.Header.Get("Location"), qt.Equals, "/")

	tok, err := st.Get(store.KeyAccessToken)
	c.Assert(err, qt.IsNil)
	c.Assert(tok, qt.Equals, "abc123")
	c.Assert(sess.IsAuthenticated(), qt.IsTrue)

	select {
	case <-l.Done():
	default:
		c.Fatal("expected listener to be done")
	}
	out, ok := l.Outcome()
	c.Assert(ok, qt.IsTrue)
	c.Assert(out.SignedIn, qt.IsTrue)

	resp, err = http.Get(srv.URL + "/")
	c.Assert(err, qt.IsNil)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	c.Assert(string(body), qt.Contains, "You can close this tab")
}

func TestListenerWaitingPage(t *testing.T) {
	c := qt.New(t)
	l := NewListener(&stubSession{}, notify.Discard, nil)
	srv := httptest.NewServer(l.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	c.Assert(err, qt.IsNil)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	c.Assert(strings.TrimSpace(string(body)), qt.Equals, "Waiting for Google sign-in...")
	_, ok := l.Outcome()
	c.Assert(ok, qt.IsFalse)
}

func TestServe(t *testing.T) {
	c := qt.New(t)
	sess := &stubSession{ok: true}
	l := NewListener(sess, notify.Discard, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	addrCh := make(chan net.Addr, 1)
	type result struct {
		out Outcome
		err error
	}
	resCh := make(chan result, 1)
	go func() {
		out, err := l.Serve(ctx, "127.0.0.1:0", func(a net.Addr) { addrCh <- a })
		resCh <- result{out, err}
	}()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr.String() + "/?token=xyz")
	c.Assert(err, qt.IsNil)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(string(body), qt.Contains, "You can close this tab")

	res := <-resCh
	c.Assert(res.err, qt.IsNil)
	c.Assert(res.out.SignedIn, qt.IsTrue)
	c.Assert(sess.token, qt.Equals, "xyz")
}

func TestServeStopsAfterGraceWithoutStatusPage(t *testing.T) {
	c := qt.New(t)
	l := NewListener(&stubSession{ok: true}, notify.Discard, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	addrCh := make(chan net.Addr, 1)
	errCh := make(chan error, 1)
	go func() {
		_, err := l.Serve(ctx, "127.0.0.1:0", func(a net.Addr) { addrCh <- a })
		errCh <- err
	}()

	noFollow := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := noFollow.Get("http://" + (<-addrCh).String() + "/?token=xyz")
	c.Assert(err, qt.IsNil)
	resp.Body.Close()

	select {
	case err := <-errCh:
		c.Assert(err, qt.IsNil)
	case <-time.After(statusGrace + 2*time.Second):
		c.Fatal("expected Serve to return after the grace period")
	}
}

// gatedSession blocks each callback until release is closed
type gatedSession struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (s *gatedSession) HandleGoogleCallback(ctx context.Context, token string) bool {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	s.entered <- struct{}{}
	<-s.release
	return true
}

func TestListenerHandlesConcurrentCallbacksOnce(t *testing.T) {
	c := qt.New(t)
	sess := &gatedSession{entered: make(chan struct{}, 2), release: make(chan struct{})}
	l := NewListener(sess, notify.Discard, nil)
	srv := httptest.NewServer(l.Router())
	defer srv.Close()

	noFollow := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	codes := make(chan int, 2)
	for i := 0; i < 2; i++ {
		go func() {
			resp, err := noFollow.Get(srv.URL + "/?token=abc123")
			if err != nil {
				codes <- 0
				return
			}
			resp.Body.Close()
			codes <- resp.StatusCode
		}()
	}

	<-sess.entered
	// the request that lost the claim answers without waiting on the session
	c.Assert(<-codes, qt.Equals, http.StatusSeeOther)
	close(sess.release)
	c.Assert(<-codes, qt.Equals, http.StatusSeeOther)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	c.Assert(sess.calls, qt.Equals, 1)
}

func TestServeCanceled(t *testing.T) {
	c := qt.New(t)
	l := NewListener(&stubSession{}, notify.Discard, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Serve(ctx, "127.0.0.1:0", nil)
	c.Assert(err, qt.Equals, context.Canceled)
}
