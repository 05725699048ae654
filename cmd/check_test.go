// ABOUTME: Tests for the check command
// ABOUTME: Verifies readiness checks, output formatting, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

var checkNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestPerformChecks_AllPass(t *testing.T) {
	r := readiness{
		signedIn:    true,
		email:       "ann@x.com",
		expiry:      checkNow.Add(5 * time.Hour),
		hasExpiry:   true,
		itemCount:   2,
		total:       255,
		minValidity: time.Hour,
		maxTotal:    300,
	}

	results := performChecks(r, checkNow)
	if len(results) != 4 {
		t.Fatalf("expected 4 checks, got %d", len(results))
	}
	for _, res := range results {
		if !res.passed {
			t.Errorf("expected %s to pass: %s", res.name, res.detail)
		}
	}
}

func TestPerformChecks_SignedOutSkipsToken(t *testing.T) {
	results := performChecks(readiness{}, checkNow)

	if len(results) != 2 {
		t.Fatalf("expected sign-in and cart checks only, got %d", len(results))
	}
	if results[0].passed || results[1].passed {
		t.Errorf("expected both checks to fail, got %+v", results)
	}
}

func TestPerformChecks_TokenExpiringSoon(t *testing.T) {
	r := readiness{
		signedIn:    true,
		expiry:      checkNow.Add(30 * time.Minute),
		hasExpiry:   true,
		itemCount:   1,
		minValidity: time.Hour,
	}

	results := performChecks(r, checkNow)
	token := results[1]
	if token.name != "Token" || token.passed {
		t.Errorf("expected failing token check, got %+v", token)
	}
	if !strings.Contains(token.detail, "from now") {
		t.Errorf("expected relative expiry, got %q", token.detail)
	}
}

func TestPerformChecks_OverBudget(t *testing.T) {
	r := readiness{signedIn: true, itemCount: 1, total: 410, maxTotal: 400}

	results := performChecks(r, checkNow)
	last := results[len(results)-1]
	if last.name != "Cart total" || last.passed {
		t.Errorf("expected failing budget check, got %+v", last)
	}
	if last.detail != "$410.00 (limit: $400.00)" {
		t.Errorf("unexpected detail %q", last.detail)
	}
}

func TestFormatCheckHuman(t *testing.T) {
	results := []checkResult{
		{name: "Signed in", detail: "ann@x.com", passed: true},
		{name: "Cart", detail: "0 item(s)", passed: false},
	}

	out := formatCheckHuman(results)
	if !strings.Contains(out, "✓ Signed in: ann@x.com") {
		t.Errorf("expected passing line, got:\n%s", out)
	}
	if !strings.Contains(out, "✗ Cart: 0 item(s)") {
		t.Errorf("expected failing line, got:\n%s", out)
	}
	if !strings.Contains(out, "FAILED: 1 check(s) did not pass") {
		t.Errorf("expected failure summary, got:\n%s", out)
	}

	out = formatCheckHuman(results[:1])
	if !strings.Contains(out, "PASSED: All 1 check(s) passed") {
		t.Errorf("expected pass summary, got:\n%s", out)
	}
}

func TestFormatCheckJSON(t *testing.T) {
	out := formatCheckJSON([]checkResult{{name: "Cart", detail: "0 item(s)", passed: false}})

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["status"] != "failed" {
		t.Errorf("expected failed status, got %v", parsed["status"])
	}
	if checks, ok := parsed["checks"].([]interface{}); !ok || len(checks) != 1 {
		t.Errorf("expected one check, got %v", parsed["checks"])
	}
}

func TestValidateCheckFlags(t *testing.T) {
	if err := validateCheckFlags(0, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateCheckFlags(-1, 1); err == nil {
		t.Error("expected error for negative total")
	}
	if err := validateCheckFlags(0, -1); err == nil {
		t.Error("expected error for negative token hours")
	}
}

func TestCheckCommand_Ready(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")
	b.cart["p1"] = 1
	minTokenHours = 0
	defer func() { minTokenHours = 1 }()

	var buf bytes.Buffer
	if code := runCheck(context.Background(), &buf, time.Now()); code != 0 {
		t.Fatalf("expected exit code 0, got %d:\n%s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "ready for checkout") {
		t.Errorf("expected ready output, got:\n%s", buf.String())
	}
}

func TestCheckCommand_EmptyCart(t *testing.T) {
	b := newFakeBackend(t)
	b.signIn("tok-user")

	var buf bytes.Buffer
	if code := runCheck(context.Background(), &buf, time.Now()); code != 1 {
		t.Errorf("expected exit code 1, got %d:\n%s", code, buf.String())
	}
}

func TestCheckCommand_InvalidFlags(t *testing.T) {
	newFakeBackend(t)
	maxTotal = -5
	defer func() { maxTotal = 0 }()

	var buf bytes.Buffer
	if code := runCheck(context.Background(), &buf, time.Now()); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}
