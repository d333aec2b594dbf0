package commands_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"habitctl/internal/commands"
	"habitctl/internal/config"
	"habitctl/internal/exitcode"
	"habitctl/internal/session"
	"habitctl/internal/testutil"
	"habitctl/internal/token"
)

// runAuthCommand runs a command against a caller-provided config so the test
// can inspect the token file afterwards.
func runAuthCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, cfg *config.Config, args []string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestLoginCommand_StoresTokenAndAuthenticates(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("alice", "secret")
	cfg := &config.Config{Dir: t.TempDir()}

	stdout, stderr, code := runAuthCommand(t, &commands.LoginCmd{}, svc, cfg, []string{"alice", "secret"})

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected output: %q", stdout)
	}

	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		t.Fatalf("token file not written: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != testutil.DefaultToken {
		t.Errorf("expected token %q on disk, got %q", testutil.DefaultToken, got)
	}

	ctl := session.NewController(token.NewStore(cfg.TokenPath()))
	if ctl.State() != session.Authenticated {
		t.Errorf("expected Authenticated after login, got %v", ctl.State())
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddUser("alice", "secret")
	cfg := &config.Config{Dir: t.TempDir()}

	_, stderr, code := runAuthCommand(t, &commands.LoginCmd{}, svc, cfg, []string{"alice", "wrong"})

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "Invalid username or password.") {
		t.Errorf("expected backend message verbatim, got %q", stderr)
	}
	if token.NewStore(cfg.TokenPath()).Has() {
		t.Error("failed login must not leave a token behind")
	}
}

func TestLoginCommand_MissingArgsNeverCallsBackend(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	// svc is nil: reaching the backend would panic.
	_, stderr, code := runAuthCommand(t, &commands.LoginCmd{}, nil, cfg, []string{"alice"})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "username and password required") {
		t.Errorf("unexpected error: %q", stderr)
	}
}

func TestLoginCommand_EmptyFieldsNeverCallBackend(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	_, _, code := runAuthCommand(t, &commands.LoginCmd{}, nil, cfg, []string{"alice", ""})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
}

func TestLogoutCommand_ClearsToken(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	store := token.NewStore(cfg.TokenPath())
	if err := store.Set("abc"); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := runAuthCommand(t, &commands.LogoutCmd{}, nil, cfg, nil)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
	if store.Has() {
		t.Error("expected token cleared after logout")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	stdout, _, code := runAuthCommand(t, &commands.LogoutCmd{}, nil, cfg, nil)

	if code != exitcode.Success {
		t.Errorf("logout while logged out is not an error, got %d", code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestLogoutCommand_Twice(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	if err := token.NewStore(cfg.TokenPath()).Set("abc"); err != nil {
		t.Fatal(err)
	}

	_, _, code := runAuthCommand(t, &commands.LogoutCmd{}, nil, cfg, nil)
	if code != exitcode.Success {
		t.Fatalf("first logout failed: %d", code)
	}
	stdout, _, code := runAuthCommand(t, &commands.LogoutCmd{}, nil, cfg, nil)
	if code != exitcode.Success {
		t.Errorf("second logout must still succeed, got %d", code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}
