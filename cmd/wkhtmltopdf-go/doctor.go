package main

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	wkhtmltopdf "github.com/ajsjunior/wkhtmltopdf-1"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/fileutil"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/pdfinfo"
)

// versionTimeout bounds the "wkhtmltopdf --version" probe.
const versionTimeout = 10 * time.Second

// smokePage is the markup converted by doctor --smoke.
const smokePage = "<html><body><h1>wkhtmltopdf-go doctor</h1></body></html>"

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string         `json:"status"` // "ready", "warnings", "errors"
	Executable executableInfo `json:"executable"`
	Env        envInfo        `json:"environment"`
	System     systemInfo     `json:"system"`
	Warnings   []string       `json:"warnings,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
}

// executableInfo holds wkhtmltopdf detection results.
type executableInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Patched bool   `json:"patched_qt"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	Dir           string `json:"wkhtmltopdf_dir,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
	SmokePages   int    `json:"smoke_pages,omitempty"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json       bool
	smoke      bool
	executable string
	tempDir    string
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var f doctorFlags
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	fs.BoolVar(&f.smoke, "smoke", false, "convert a small page to check the full pipeline")
	fs.StringVar(&f.executable, "executable", "", "wkhtmltopdf binary path")
	fs.StringVar(&f.tempDir, "temp-dir", "", "folder for temporary files")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	var wkEnv wkhtmltopdf.Environment
	applyEnvConfig(loadEnvConfig(newLogger(io.Discard, false, false)), &wkEnv)
	if f.executable != "" {
		wkEnv.ExecutablePath = f.executable
	}
	if f.tempDir != "" {
		wkEnv.TempDir = f.tempDir
	}

	result := runDoctor(ctx, wkEnv, f.smoke)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, wkEnv wkhtmltopdf.Environment, smoke bool) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
			Dir:  os.Getenv("WKHTMLTOPDF_DIR"),
		},
	}

	resolved := checkExecutable(ctx, result, wkEnv)
	checkEnvironment(result)
	checkSystem(result, resolved.TempDir)
	if smoke && result.Executable.Found && result.System.TempWritable {
		checkSmoke(ctx, result, resolved)
	}

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkExecutable locates wkhtmltopdf and reads its version.
// Returns the resolved environment, with TempDir set even on failure.
func checkExecutable(ctx context.Context, result *doctorResult, wkEnv wkhtmltopdf.Environment) wkhtmltopdf.Environment {
	resolved, err := wkEnv.Resolve()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		wkEnv.TempDir = cmp.Or(wkEnv.TempDir, os.TempDir())
		return wkEnv
	}

	path := resolved.ExecutablePath
	if !filepath.IsAbs(path) {
		found, lookErr := exec.LookPath(path)
		if lookErr != nil {
			result.Errors = append(result.Errors,
				"wkhtmltopdf not found. Install it, pass --executable, or set WKHTMLTOPDF_DIR")
			return resolved
		}
		path = found
	}
	resolved.ExecutablePath = path

	result.Executable.Found = true
	result.Executable.Path = path

	vctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(vctx, path, "--version").Output() // #nosec G204 -- path is the configured wkhtmltopdf binary
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get wkhtmltopdf version: %v", err))
		return resolved
	}

	result.Executable.Version = strings.TrimSpace(string(out))
	result.Executable.Patched = strings.Contains(strings.ToLower(result.Executable.Version), "with patched qt")
	if !result.Executable.Patched {
		result.Warnings = append(result.Warnings,
			"wkhtmltopdf is built without patched Qt; headers, footers, outlines and TOC are unavailable")
	}
	return resolved
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Unpatched builds need an X server; containers rarely have one.
	if (result.Env.Container || result.Env.CI) && result.Executable.Found && !result.Executable.Patched &&
		os.Getenv("DISPLAY") == "" {
		result.Warnings = append(result.Warnings,
			"Container/CI without DISPLAY: run under xvfb-run or install a patched Qt build")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("WKHTMLTOPDF_CONTAINER") == "1" {
		return true, "WKHTMLTOPDF_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory accepts new files.
func checkSystem(result *doctorResult, tempDir string) {
	result.System.TempDir = tempDir
	path, err := fileutil.WriteTempFile(tempDir, "doctor", "tmp")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tempDir))
		return
	}
	_ = os.Remove(path)
	result.System.TempWritable = true
}

// checkSmoke converts a one-page document into the temp directory and checks
// the written file parses as a PDF.
func checkSmoke(ctx context.Context, result *doctorResult, wkEnv wkhtmltopdf.Environment) {
	dest, err := fileutil.TempPath(wkEnv.TempDir, "pdf")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Smoke conversion failed: %v", err))
		return
	}
	defer func() { _ = os.Remove(dest) }()

	doc := wkhtmltopdf.NewDocument(&wkhtmltopdf.Page{Content: smokePage})
	if err := wkhtmltopdf.Convert(ctx, doc, &wkEnv, wkhtmltopdf.ToFile(dest)); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Smoke conversion failed: %v", err))
		return
	}

	info, err := pdfinfo.InspectFile(dest)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Smoke conversion produced an unreadable PDF: %v", err))
		return
	}
	result.System.SmokePages = info.Pages
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "wkhtmltopdf-go doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "wkhtmltopdf")
	if r.Executable.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Executable.Path)
		if r.Executable.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Executable.Version)
		}
		if r.Executable.Patched {
			fmt.Fprintln(w, "  [OK] Qt: patched")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Dir != "" {
		fmt.Fprintf(w, "  [OK] WKHTMLTOPDF_DIR: %s\n", r.Env.Dir)
	}
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  [OK] Temp directory: writable (%s)\n", r.System.TempDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Temp directory: not writable (%s)\n", r.System.TempDir)
	}
	if r.System.SmokePages > 0 {
		fmt.Fprintf(w, "  [OK] Smoke conversion: %d page(s)\n", r.System.SmokePages)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
