package wkhtmltopdf

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for library operations.
var (
	// ErrValidation wraps every error raised before a process is started.
	ErrValidation = errors.New("invalid document")

	// Validation details, always wrapped together with ErrValidation.
	ErrNilDocument   = errors.New("document is nil")
	ErrNoUnits       = errors.New("document has no content units")
	ErrNilUnit       = errors.New("content unit is nil")
	ErrEmptyContent  = errors.New("content cannot be empty")
	ErrNoOutput      = errors.New("no output target requested")
	ErrInvalidOption = errors.New("invalid option value")

	ErrExecutableNotFound = errors.New("wkhtmltopdf executable not found")
	ErrConversionFailed   = errors.New("PDF conversion failed")
	ErrConversionTimeout  = errors.New("PDF conversion timed out")
	ErrDeliver            = errors.New("failed to deliver PDF")
)

// maxStderrInError bounds the stderr excerpt embedded in error messages.
// ProcessError.Stderr always holds the full text.
const maxStderrInError = 2048

// ProcessError describes a failed or timed-out run of the external tool.
// Kind is ErrConversionFailed or ErrConversionTimeout; errors.Is matches it.
type ProcessError struct {
	Kind     error
	Command  string
	ExitCode int
	Stderr   string
	Timeout  time.Duration
}

func (e *ProcessError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if errors.Is(e.Kind, ErrConversionTimeout) {
		fmt.Fprintf(&b, " after %s", e.Timeout)
	} else {
		fmt.Fprintf(&b, ": exit code %d", e.ExitCode)
	}
	fmt.Fprintf(&b, "\n  command: %s", e.Command)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		if len(stderr) > maxStderrInError {
			stderr = "..." + stderr[len(stderr)-maxStderrInError:]
		}
		fmt.Fprintf(&b, "\n  stderr: %s", stderr)
	}
	return b.String()
}

func (e *ProcessError) Unwrap() error {
	return e.Kind
}

// invalid wraps detail with ErrValidation and a formatted message.
func invalid(detail error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrValidation, detail, fmt.Sprintf(format, args...))
}
