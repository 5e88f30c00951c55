package wkhtmltopdf

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ajsjunior/wkhtmltopdf-1/internal/fileutil"
)

// stdinToken tells wkhtmltopdf to read an input object from standard input.
const stdinToken = "-"

// workspace tracks the temp files of a single conversion.
// It is owned by one Convert call and never shared.
type workspace struct {
	tempDir  string
	files    []string
	useStdin bool
	stdin    []byte
}

func newWorkspace(tempDir string, useStdin bool) *workspace {
	return &workspace{tempDir: tempDir, useStdin: useStdin}
}

// track registers path for removal by cleanup.
func (w *workspace) track(path string) {
	w.files = append(w.files, path)
}

// resolve returns the command-line token for a content field.
//
// URLs and absolute paths pass through unchanged unless literal is set.
// Anything else is written to <tempDir>/<uuid>.<ext> and that path is
// returned. An empty value yields "" so the caller can omit the flag.
// With stdin enabled, the first inline page is routed through stdin.
func (w *workspace) resolve(content, ext string, literal, stdinCapable bool) (string, error) {
	if content == "" {
		return "", nil
	}

	if !literal && (fileutil.IsURL(content) || fileutil.IsAbsPath(content)) {
		return content, nil
	}

	if stdinCapable && w.useStdin && w.stdin == nil {
		w.stdin = []byte(content)
		return stdinToken, nil
	}

	path, err := fileutil.WriteTempFile(w.tempDir, content, ext)
	if err != nil {
		return "", fmt.Errorf("materializing inline content: %w", err)
	}
	w.track(path)
	return path, nil
}

// cleanup removes every tracked file. It is safe to call more than once.
// Failures are logged, not returned.
func (w *workspace) cleanup(logger *slog.Logger) {
	for _, path := range w.files {
		err := os.Remove(path)
		switch {
		case err == nil:
			logger.Debug("removed temp file", "path", path)
		case errors.Is(err, fs.ErrNotExist):
		default:
			logger.Warn("failed to remove temp file", "path", path, "error", err)
		}
	}
	w.files = nil
}
