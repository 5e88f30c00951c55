package process

// Notes:
// - KillProcessGroup: we only test with an invalid PID to verify the function
//   doesn't panic. Real kill behavior is covered by the runner timeout tests
//   in the root package, which spawn and kill a stub executable.
// - Cannot test with PID 0 (kills current process group) or real PIDs.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import (
	"os/exec"
	"runtime"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestSetProcessGroup - Process attributes
// ---------------------------------------------------------------------------

func TestSetProcessGroup(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("process groups are not configured on Windows")
	}

	cmd := exec.Command("true")
	SetProcessGroup(cmd)
	SetProcessGroup(cmd) // idempotent

	if cmd.SysProcAttr == nil {
		t.Fatal("SysProcAttr not set")
	}
}
