package wkhtmltopdf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ajsjunior/wkhtmltopdf-1/internal/fileutil"
)

// DefaultTimeout bounds one wkhtmltopdf run when Environment.Timeout is unset.
const DefaultTimeout = 60 * time.Second

// executableName is the bare name used as the last-resort PATH lookup.
const executableName = "wkhtmltopdf"

// Environment describes where and how wkhtmltopdf runs. Zero fields are
// defaulted: TempDir to os.TempDir(), ExecutablePath by searching
// ExecutableDir then the platform install locations then PATH, Timeout
// to DefaultTimeout.
type Environment struct {
	TempDir        string
	ExecutablePath string
	ExecutableDir  string // install folder, e.g. from WKHTMLTOPDF_DIR
	Timeout        time.Duration
	Stdin          bool // route the first inline page through standard input
}

// Resolve returns a copy of e with every default filled in, as Convert
// would use it. ExecutablePath may still be a bare name left for PATH.
func (e Environment) Resolve() (Environment, error) {
	return e.resolve(fileutil.FileExists)
}

// resolve returns a copy of e with every default filled in.
// exists reports whether a regular file is present at a path.
func (e Environment) resolve(exists func(string) bool) (Environment, error) {
	if e.TempDir == "" {
		e.TempDir = os.TempDir()
	}
	if e.Timeout <= 0 {
		e.Timeout = DefaultTimeout
	}

	path, err := locateExecutable(e.ExecutablePath, e.ExecutableDir, exists)
	if err != nil {
		return Environment{}, err
	}
	e.ExecutablePath = path
	return e, nil
}

// locateExecutable applies the search order: the configured path, the
// configured install folder, platform install locations, then the bare
// name left for exec to find on PATH.
//
// A configured absolute path that does not exist is an error rather than
// a reason to keep searching.
func locateExecutable(configured, dir string, exists func(string) bool) (string, error) {
	if configured != "" {
		if filepath.IsAbs(configured) && !exists(configured) {
			return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, configured)
		}
		return configured, nil
	}

	if dir != "" {
		candidate := filepath.Join(dir, binaryName())
		if exists(candidate) {
			return candidate, nil
		}
		candidate = filepath.Join(dir, "bin", binaryName())
		if exists(candidate) {
			return candidate, nil
		}
	}

	for _, candidate := range installLocations() {
		if exists(candidate) {
			return candidate, nil
		}
	}

	return executableName, nil
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return executableName + ".exe"
	}
	return executableName
}

// installLocations lists where the official packages put the binary.
func installLocations() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\wkhtmltopdf\bin\wkhtmltopdf.exe`,
			`C:\Program Files (x86)\wkhtmltopdf\bin\wkhtmltopdf.exe`,
		}
	case "darwin":
		return []string{"/usr/local/bin/wkhtmltopdf", "/opt/homebrew/bin/wkhtmltopdf"}
	default:
		return []string{"/usr/local/bin/wkhtmltopdf", "/usr/bin/wkhtmltopdf"}
	}
}
