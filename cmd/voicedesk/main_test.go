package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	pkgauth "github.com/matiasleandrokruk/voicedesk/pkg/auth"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"version"}, {"--version"}} {
		code, out, _ := runCLI(t, args...)
		if code != 0 {
			t.Fatalf("%v: expected exit code 0, got %d", args, code)
		}
		if !strings.Contains(out, "voicedesk version") {
			t.Fatalf("%v: expected version output, got %q", args, out)
		}
	}
}

func TestRun_Help_PrintsUsage(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, "--help")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, sub := range []string{"Usage:", "serve", "migrate", "check", "token", "hash-secret"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing %q", sub)
		}
	}
}

func TestRun_UnknownCommand_Returns1(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, "frobnicate")
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(errOut, "error:") {
		t.Fatalf("expected error on stderr, got %q", errOut)
	}
}

func TestRun_HashSecret(t *testing.T) {
	t.Parallel()

	code, out, _ := runCLI(t, "hash-secret", "vapi-shared")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	hash := strings.TrimSpace(out)
	if !pkgauth.VerifySecret(hash, "vapi-shared") {
		t.Fatalf("printed hash %q does not verify", hash)
	}
}

// Tests below touch process env; no t.Parallel().

func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, k := range []string{
		"VOICEDESK_CONFIG", "VOICEDESK_HOST", "VOICEDESK_PORT", "PORT", "VOICEDESK_ENVELOPE",
		"VOICEDESK_JWT_SECRET", "VOICEDESK_JWT_EXPIRY", "VOICEDESK_WEBHOOK_SECRET_HASH",
	} {
		t.Setenv(k, "")
	}
	dbPath := filepath.Join(t.TempDir(), "voicedesk.db")
	t.Setenv("VOICEDESK_DB_PATH", dbPath)
	return dbPath
}

func TestRun_Token(t *testing.T) {
	isolateEnv(t)

	if code, _, errOut := runCLI(t, "token"); code != 1 || !strings.Contains(errOut, "jwt_secret") {
		t.Fatalf("without secret: code %d, stderr %q", code, errOut)
	}

	t.Setenv("VOICEDESK_JWT_SECRET", "cli-secret")
	code, out, _ := runCLI(t, "token", "--subject", "ops")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	claims, err := pkgauth.ParseJWT([]byte("cli-secret"), strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.Subject != "ops" {
		t.Errorf("Subject = %q; want ops", claims.Subject)
	}
}

func TestRun_MigrateThenCheck(t *testing.T) {
	dbPath := isolateEnv(t)

	if code, _, errOut := runCLI(t, "check"); code != 1 || !strings.Contains(errOut, "not found") {
		t.Fatalf("check before migrate: code %d, stderr %q", code, errOut)
	}

	code, out, errOut := runCLI(t, "migrate")
	if code != 0 {
		t.Fatalf("migrate: code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, dbPath) || !strings.Contains(out, "schema version 2") {
		t.Fatalf("migrate output = %q", out)
	}

	code, out, errOut = runCLI(t, "check")
	if code != 0 {
		t.Fatalf("check: code %d, stderr %q", code, errOut)
	}
	for _, want := range []string{"todos", "reminders", "calendar_events", "tool_call_log", "reminder_text", "up to date"} {
		if !strings.Contains(out, want) {
			t.Errorf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_ServeRejectsInvalidPort(t *testing.T) {
	isolateEnv(t)

	if code, _, _ := runCLI(t, "serve", "--port", "70000"); code != 1 {
		t.Fatalf("expected exit code 1 for out-of-range port, got %d", code)
	}
}
