// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/ajsjunior/wkhtmltopdf-1/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForExecutableNotFound returns hints for a missing wkhtmltopdf binary.
func ForExecutableNotFound() string {
	var hints []string

	if os.Getenv("WKHTMLTOPDF_DIR") == "" {
		hints = append(hints, "pass --executable or set WKHTMLTOPDF_DIR to the install folder")
	}
	if IsInContainer() {
		hints = append(hints, "install wkhtmltopdf in the image (apt-get install wkhtmltopdf)")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the timeout for slow pages.
func ForTimeout() string {
	return format("for slow pages, raise --timeout or WKHTMLTOPDF_TIMEOUT")
}

// ForConversionFailed inspects wkhtmltopdf's stderr for known causes.
func ForConversionFailed(stderr string) string {
	lower := strings.ToLower(stderr)
	switch {
	case strings.Contains(lower, "network error"),
		strings.Contains(lower, "hostnotfound"),
		strings.Contains(lower, "contentnotfound"):
		return format("check that every URL is reachable, or set loadErrorHandling: ignore in the job file")
	case strings.Contains(lower, "cannot connect to x server"):
		return format("use a wkhtmltopdf build with patched Qt, or run under xvfb-run")
	case strings.Contains(lower, "--enable-local-file-access"):
		return format("set localFileAccess: true in the job file")
	}
	return ""
}

// ForJobNotFound returns hints for job file not found errors.
func ForJobNotFound() string {
	return format("use --config /path/to/job.yaml")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
