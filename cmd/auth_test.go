// ABOUTME: Tests for the sign-in commands
// ABOUTME: Verifies login, signup, Google callback handling, logout, and whoami

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/luxefashion/luxe-cli/internal/client"
	"github.com/luxefashion/luxe-cli/internal/session"
)

func TestLoginCommand_Success(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "ann@x.com", "secret123"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Signed in as Ann Lee (ann@x.com)") {
		t.Errorf("expected welcome line, got %q", buf.String())
	}

	// the session survives into the next command
	buf.Reset()
	if code := runWhoami(context.Background(), &buf); code != 0 {
		t.Errorf("expected whoami exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "ann@x.com") {
		t.Errorf("expected email in whoami output, got %q", buf.String())
	}
}

func TestLoginCommand_BadPassword(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "ann@x.com", "nope"); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Invalid email or password") {
		t.Errorf("expected backend message, got %q", buf.String())
	}

	buf.Reset()
	if code := runWhoami(context.Background(), &buf); code != 1 {
		t.Errorf("expected whoami exit code 1, got %d", code)
	}
}

func TestLoginCommand_MissingFields(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "", ""); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), session.MissingFieldsMessage) {
		t.Errorf("expected missing fields message, got %q", buf.String())
	}
}

func TestSignupCommand(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	code := runSignup(context.Background(), &buf, "Ann Lee", "ann@x.com", "secret123")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Ann Lee") {
		t.Errorf("expected user name, got %q", buf.String())
	}
}

func TestLogoutCommand(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")

	var buf bytes.Buffer
	if code := runLogout(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Signed out") {
		t.Errorf("expected sign-out message, got %q", buf.String())
	}

	buf.Reset()
	if code := runWhoami(context.Background(), &buf); code != 1 {
		t.Errorf("expected whoami exit code 1 after logout, got %d", code)
	}
}

func TestLoginGoogle_CallbackURL(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	code := runLoginGoogle(context.Background(), &buf, "", "http://127.0.0.1:8765/?token=tok-user")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Ann Lee") {
		t.Errorf("expected signed-in user, got %q", buf.String())
	}
}

func TestLoginGoogle_ProviderError(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	code := runLoginGoogle(context.Background(), &buf, "", "http://127.0.0.1:8765/?error=access_denied")
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
}

func TestLoginGoogle_EmptyCallback(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	code := runLoginGoogle(context.Background(), &buf, "", "http://127.0.0.1:8765/")
	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestFormatWhoamiHuman(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	user := &client.User{Name: "Ann Lee", Email: "ann@x.com", Role: client.RoleUser}

	out := formatWhoamiHuman(user, now.Add(3*time.Hour), true, now)
	if !strings.Contains(out, "expires 3 hours from now") {
		t.Errorf("expected relative expiry, got %q", out)
	}

	out = formatWhoamiHuman(user, now.Add(-2*time.Hour), true, now)
	if !strings.Contains(out, "expired 2 hours ago") {
		t.Errorf("expected expired token, got %q", out)
	}

	out = formatWhoamiHuman(user, time.Time{}, false, now)
	if !strings.Contains(out, "expiry unknown") {
		t.Errorf("expected unknown expiry, got %q", out)
	}

	if out := formatWhoamiHuman(nil, time.Time{}, false, now); !strings.Contains(out, "Not signed in") {
		t.Errorf("expected not signed in, got %q", out)
	}
}

func TestFormatWhoamiJSON(t *testing.T) {
	expiry := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := formatWhoamiJSON(session.StateAuthenticated, &client.User{Name: "Ann Lee"}, expiry, true)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["state"] != "authenticated" {
		t.Errorf("expected authenticated state, got %v", parsed["state"])
	}
	if parsed["token_expires_at"] != "2026-03-01T12:00:00Z" {
		t.Errorf("unexpected expiry %v", parsed["token_expires_at"])
	}
}
