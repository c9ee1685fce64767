package config_test

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/goalinstitute/admin-console/internal/platform/config"
)

// os.Exit cannot be intercepted in-process, so the test re-runs itself as a
// subprocess and inspects the exit status.
func TestExitfPrefixesMessageAndExits(t *testing.T) {
	if os.Getenv("GOAL_ADMIN_EXITF_CHILD") == "1" {
		config.Exitf("missing %s", "GOAL_ADMIN_SESSION_SECRET")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfPrefixesMessageAndExits$")
	cmd.Env = append(os.Environ(), "GOAL_ADMIN_EXITF_CHILD=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
	}
	want := "admin: missing GOAL_ADMIN_SESSION_SECRET"
	if !strings.Contains(string(out), want) {
		t.Fatalf("output = %q, want it to contain %q", string(out), want)
	}
}
