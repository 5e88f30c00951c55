// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// tempFilePermissions keeps inline markup private to the current user.
const tempFilePermissions = 0o600

// urlPattern matches absolute http and https URLs with a host, and file URLs
// with an empty host (file:///abs/path), all without whitespace.
var urlPattern = regexp.MustCompile(`(?i)^(https?://[^\s/$.?#][^\s]*|file:///[^\s]+)$`)

// TempPath returns a fresh, unused path inside dir named <uuid>.<extension>.
// The file is not created.
func TempPath(dir, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	return filepath.Join(dir, uuid.NewString()+"."+extension), nil
}

// WriteTempFile creates a uniquely named file in dir holding content.
// The caller owns the returned path and must remove it.
func WriteTempFile(dir, content, extension string) (string, error) {
	path, err := TempPath(dir, extension)
	if err != nil {
		return "", err
	}

	// #nosec G304 -- path is built from a fresh UUID inside the caller's temp dir
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, tempFilePermissions)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if _, writeErr := f.WriteString(content); writeErr != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := f.Close(); closeErr != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsURL returns true if s is an absolute http(s) or file URL.
func IsURL(s string) bool {
	return urlPattern.MatchString(s)
}

// IsAbsPath returns true if s reads as an absolute local file path rather
// than markup: a single line, no angle brackets, absolute on this platform.
//
// Examples:
//   - "/srv/report.html" -> true
//   - "C:\reports\index.html" -> true (on Windows)
//   - "report.html" -> false (relative)
//   - "<p>/tmp</p>" -> false (markup)
func IsAbsPath(s string) bool {
	if s == "" || strings.ContainsAny(s, "<>\r\n\x00") {
		return false
	}
	return filepath.IsAbs(s)
}
