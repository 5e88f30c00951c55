//go:build !windows

package wkhtmltopdf

// Notes:
// - execRunner is exercised against small /bin/sh stubs written to
//   t.TempDir(); they stand in for wkhtmltopdf so no installation is needed
// - Timeout tests use short deadlines (a few hundred ms) against stubs that
//   sleep far longer, and check that the process is gone afterwards
// - Windows is excluded: the stubs rely on a POSIX shell

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// writeStub creates an executable shell script with body and returns its path.
// Inside body, $last holds the final argument (the destination PDF).
func writeStub(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wkhtmltopdf-stub")
	script := "#!/bin/sh\nfor last; do :; done\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil { // #nosec G306 -- test stub must be executable
		t.Fatal(err)
	}
	return path
}

func newTestRunner() *execRunner {
	return &execRunner{logger: slog.New(slog.DiscardHandler)}
}

func processAlive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}

// ---------------------------------------------------------------------------
// TestExecRunner_Run - Completion paths
// ---------------------------------------------------------------------------

func TestExecRunner_Success(t *testing.T) {
	t.Parallel()

	stub := writeStub(t, `echo "Loading pages"; echo "Done" >&2; printf '%%PDF' > "$last"`)
	out := filepath.Join(t.TempDir(), "out.pdf")

	res, err := newTestRunner().Run(context.Background(), Command{Path: stub, Args: []string{"in.html", out}}, 5*time.Second)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if !strings.Contains(string(res.Stdout), "Loading pages") {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if !strings.Contains(string(res.Stderr), "Done") {
		t.Errorf("Stderr = %q", res.Stderr)
	}
	if got, _ := os.ReadFile(out); string(got) != "%PDF" {
		t.Errorf("output = %q, want %%PDF", got)
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	t.Parallel()

	stub := writeStub(t, `echo "Exit with code 1 due to network error: HostNotFoundError" >&2; exit 1`)

	res, err := newTestRunner().Run(context.Background(), Command{Path: stub, Args: []string{"out.pdf"}}, 5*time.Second)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(string(res.Stderr), "HostNotFoundError") {
		t.Errorf("Stderr = %q", res.Stderr)
	}
}

func TestExecRunner_LargeOutputOnBothStreams(t *testing.T) {
	t.Parallel()

	// Far beyond a pipe buffer on both streams; only concurrent draining finishes.
	stub := writeStub(t, `head -c 1048576 /dev/zero; head -c 1048576 /dev/zero >&2; echo end >&2`)

	res, err := newTestRunner().Run(context.Background(), Command{Path: stub}, 10*time.Second)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(res.Stdout) != 1<<20 {
		t.Errorf("Stdout length = %d, want %d", len(res.Stdout), 1<<20)
	}
	if !bytes.HasSuffix(res.Stderr, []byte("end\n")) {
		t.Error("stderr must be drained to the end")
	}
}

func TestExecRunner_Stdin(t *testing.T) {
	t.Parallel()

	stub := writeStub(t, `cat > "$last"`)
	out := filepath.Join(t.TempDir(), "out.pdf")
	payload := []byte("<html><body>from stdin</body></html>")

	cmd := Command{Path: stub, Args: []string{"-", out}, Stdin: payload}
	if _, err := newTestRunner().Run(context.Background(), cmd, 5*time.Second); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if got, _ := os.ReadFile(out); !bytes.Equal(got, payload) {
		t.Errorf("stub received %q, want %q", got, payload)
	}
}

func TestExecRunner_StartFailure(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no-such-binary")
	_, err := newTestRunner().Run(context.Background(), Command{Path: missing}, time.Second)
	if err == nil {
		t.Fatal("expected start error")
	}
	var pe *ProcessError
	if errors.As(err, &pe) {
		t.Errorf("start failure must not be a *ProcessError: %v", err)
	}
}

func TestExecRunner_BareNameNotOnPath(t *testing.T) {
	t.Parallel()

	_, err := newTestRunner().Run(context.Background(), Command{Path: "wkhtmltopdf-not-installed-here"}, time.Second)
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("error = %v, want ErrExecutableNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestExecRunner_Timeout - Deadline and kill
// ---------------------------------------------------------------------------

func TestExecRunner_TimeoutKillsProcess(t *testing.T) {
	t.Parallel()

	pidFile := filepath.Join(t.TempDir(), "pid")
	stub := writeStub(t, `echo $$ > "`+pidFile+`"; exec sleep 30`)

	start := time.Now()
	_, err := newTestRunner().Run(context.Background(), Command{Path: stub}, 300*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrConversionTimeout) {
		t.Fatalf("error = %v, want ErrConversionTimeout", err)
	}
	if errors.Is(err, ErrConversionFailed) {
		t.Error("timeout must not match ErrConversionFailed")
	}
	if elapsed > 10*time.Second {
		t.Errorf("Run() took %v, deadline not enforced", elapsed)
	}

	data, readErr := os.ReadFile(pidFile)
	if readErr != nil {
		t.Fatalf("stub did not record its pid: %v", readErr)
	}
	pid, _ := strconv.Atoi(strings.TrimSpace(string(data)))
	if pid > 0 && processAlive(pid) {
		t.Errorf("process %d still running after timeout", pid)
	}
}

func TestExecRunner_TimeoutWhileDraining(t *testing.T) {
	t.Parallel()

	// The child exits at once but a background descendant keeps stdout open.
	stub := writeStub(t, `sleep 30 & exit 0`)

	_, err := newTestRunner().Run(context.Background(), Command{Path: stub}, 300*time.Millisecond)
	if !errors.Is(err, ErrConversionTimeout) {
		t.Errorf("error = %v, want ErrConversionTimeout", err)
	}
}

func TestExecRunner_ContextCanceled(t *testing.T) {
	t.Parallel()

	stub := writeStub(t, `exec sleep 30`)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	_, err := newTestRunner().Run(ctx, Command{Path: stub}, 30*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
