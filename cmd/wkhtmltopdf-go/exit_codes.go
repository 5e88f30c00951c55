package main

import (
	"errors"
	"os"

	wkhtmltopdf "github.com/ajsjunior/wkhtmltopdf-1"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/config"
)

// Exit codes for the wkhtmltopdf-go CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, job file, or document
	ExitIO      = 3 // Input not found, output not writable
	ExitProcess = 4 // wkhtmltopdf missing, failed, or timed out
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Process errors (exit 4)
	if errors.Is(err, wkhtmltopdf.ErrExecutableNotFound) ||
		errors.Is(err, wkhtmltopdf.ErrConversionFailed) ||
		errors.Is(err, wkhtmltopdf.ErrConversionTimeout) {
		return ExitProcess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, wkhtmltopdf.ErrDeliver) {
		return ExitIO
	}

	// Usage/job/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrJobExists) ||
		errors.Is(err, config.ErrJobNotFound) ||
		errors.Is(err, config.ErrEmptyJobName) ||
		errors.Is(err, config.ErrJobParse) ||
		errors.Is(err, config.ErrInvalidJob) ||
		errors.Is(err, wkhtmltopdf.ErrValidation) {
		return ExitUsage
	}

	return ExitGeneral
}
