package wkhtmltopdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/ajsjunior/wkhtmltopdf-1/internal/process"
)

// killGrace bounds how long a killed process is given to be reaped.
const killGrace = 5 * time.Second

// runResult is what a finished process left behind.
type runResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// commandRunner abstracts process execution so conversions can be tested
// without wkhtmltopdf installed.
type commandRunner interface {
	Run(ctx context.Context, cmd Command, timeout time.Duration) (*runResult, error)
}

// execRunner runs commands as OS processes.
type execRunner struct {
	logger *slog.Logger
}

// Run starts cmd and waits for it to exit and for both output streams to
// be drained, all under one deadline. On deadline the process group is
// killed and a *ProcessError of kind ErrConversionTimeout is returned.
// A non-zero exit is not an error here; the caller interprets it.
func (r *execRunner) Run(ctx context.Context, c Command, timeout time.Duration) (*runResult, error) {
	cmd := exec.Command(c.Path, c.Args...) // #nosec G204 -- arguments are built by buildArgs, no shell involved
	process.SetProcessGroup(cmd)

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		closeAll(stdoutR, stdoutW)
		return nil, fmt.Errorf("creating stderr pipe: %w", err)
	}
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	var stdin io.WriteCloser
	if c.Stdin != nil {
		stdin, err = cmd.StdinPipe()
		if err != nil {
			closeAll(stdoutR, stdoutW, stderrR, stderrW)
			return nil, fmt.Errorf("creating stdin pipe: %w", err)
		}
	}

	if err := cmd.Start(); err != nil {
		closeAll(stdoutR, stdoutW, stderrR, stderrW)
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s: %v", ErrExecutableNotFound, c.Path, err)
		}
		return nil, fmt.Errorf("starting %s: %w", c.Path, err)
	}
	// The child holds its own copies of the write ends.
	closeAll(stdoutW, stderrW)

	var stdout, stderr bytes.Buffer
	stdoutDone := drain(stdoutR, &stdout)
	stderrDone := drain(stderrR, &stderr)
	exited := make(chan error, 1)
	reaped := false

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	// abort kills the process, waits for both drains and a bounded reap,
	// then reports cause, or a timeout when cause is nil.
	abort := func(cause error) (*runResult, error) {
		r.kill(cmd)
		// Unblock drains held open by stray descendants.
		closeAll(stdoutR, stderrR)
		<-stdoutDone
		<-stderrDone
		if !reaped {
			select {
			case <-exited:
			case <-time.After(killGrace):
				r.logger.Warn("killed process was not reaped in time", "pid", cmd.Process.Pid)
			}
		}
		if cause != nil {
			return nil, cause
		}
		return nil, &ProcessError{
			Kind:     ErrConversionTimeout,
			Command:  c.String(),
			ExitCode: -1,
			Stderr:   stderr.String(),
			Timeout:  timeout,
		}
	}

	if stdin != nil {
		written := make(chan error, 1)
		go func() {
			_, werr := stdin.Write(c.Stdin)
			written <- errors.Join(werr, stdin.Close())
		}()
		select {
		case werr := <-written:
			if werr != nil {
				// The exit status decides; a tool that stops reading early fails there.
				r.logger.Debug("writing stdin", "error", werr)
			}
		case <-timer.C:
			go func() { exited <- cmd.Wait() }()
			return abort(nil)
		case <-ctx.Done():
			go func() { exited <- cmd.Wait() }()
			return abort(ctx.Err())
		}
	}

	go func() { exited <- cmd.Wait() }()

	// Received channels are set to nil so select stops considering them.
	outC, errC, exitC := stdoutDone, stderrDone, exited
	var waitErr error
	for pending := 3; pending > 0; pending-- {
		select {
		case <-outC:
			outC = nil
		case <-errC:
			errC = nil
		case waitErr = <-exitC:
			exitC = nil
			reaped = true
		case <-timer.C:
			return abort(nil)
		case <-ctx.Done():
			return abort(ctx.Err())
		}
	}

	res := &runResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, fmt.Errorf("waiting for %s: %w", c.Path, waitErr)
	}
	return res, nil
}

// kill terminates the whole process group, then the direct child.
func (r *execRunner) kill(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	process.KillProcessGroup(cmd.Process.Pid)
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		r.logger.Debug("killing process", "pid", cmd.Process.Pid, "error", err)
	}
}

// drain copies r into buf on its own goroutine and closes the returned
// channel when r reaches EOF or fails.
func drain(r io.ReadCloser, buf *bytes.Buffer) chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer r.Close()
		_, _ = io.Copy(buf, r)
	}()
	return done
}

func closeAll(files ...io.Closer) {
	for _, f := range files {
		_ = f.Close()
	}
}
