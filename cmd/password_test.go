// ABOUTME: Tests for the password reset commands
// ABOUTME: Verifies reset requests and new-password validation

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestPasswordForgot(t *testing.T) {
	b := newFakeBackend(t)

	var buf bytes.Buffer
	if code := runPasswordForgot(context.Background(), &buf, "ann@x.com"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !b.called("POST /auth/request-password-reset") {
		t.Error("expected reset request call")
	}
	if !strings.Contains(buf.String(), "reset link is on its way") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPasswordForgot_MissingEmail(t *testing.T) {
	b := newFakeBackend(t)

	var buf bytes.Buffer
	if code := runPasswordForgot(context.Background(), &buf, " "); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if b.called("POST /auth/request-password-reset") {
		t.Error("expected no backend call")
	}
}

func TestPasswordReset(t *testing.T) {
	b := newFakeBackend(t)

	var buf bytes.Buffer
	if code := runPasswordReset(context.Background(), &buf, "reset-1", "newsecret1"); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !b.called("POST /auth/reset-password") {
		t.Error("expected reset call")
	}
	if !strings.Contains(buf.String(), "Password updated") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPasswordReset_ShortPassword(t *testing.T) {
	b := newFakeBackend(t)

	var buf bytes.Buffer
	if code := runPasswordReset(context.Background(), &buf, "reset-1", "short"); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "at least 8 characters") {
		t.Errorf("unexpected output %q", buf.String())
	}
	if b.called("POST /auth/reset-password") {
		t.Error("expected no backend call")
	}
}

func TestPasswordReset_ExpiredToken(t *testing.T) {
	newFakeBackend(t)

	var buf bytes.Buffer
	if code := runPasswordReset(context.Background(), &buf, "stale", "newsecret1"); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Invalid or expired reset token") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
