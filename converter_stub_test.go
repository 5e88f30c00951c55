//go:build !windows

package wkhtmltopdf

// Notes:
// - End-to-end Convert runs against a shell stub standing in for wkhtmltopdf
// - The stub records its arguments, checks that every non-flag input it is
//   given exists, and writes a fake PDF to the destination
// - Uses writeStub from runner_test.go

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// recordingStub writes each argument on its own line to argsFile, fails if
// any .html argument is missing, and writes a PDF to the last argument.
func recordingStub(t *testing.T, argsFile string) string {
	t.Helper()
	return writeStub(t, `for a; do
  echo "$a" >> "`+argsFile+`"
  case "$a" in
    *.html) [ -f "$a" ] || { echo "missing input $a" >&2; exit 3; } ;;
  esac
done
printf '%%PDF-1.4 stub' > "$last"`)
}

func readArgs(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// ---------------------------------------------------------------------------
// TestConvert_EndToEnd
// ---------------------------------------------------------------------------

func TestConvert_EndToEnd_TwoPagesToFile(t *testing.T) {
	t.Parallel()

	argsFile := filepath.Join(t.TempDir(), "args")
	stub := recordingStub(t, argsFile)
	tempDir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "out.pdf")

	doc := NewDocument(
		&Page{Content: "http://example.com"},
		&Page{Content: "<html>inline</html>"},
	)
	env := &Environment{ExecutablePath: stub, TempDir: tempDir, Timeout: 10 * time.Second}

	if err := Convert(context.Background(), doc, env, ToFile(dest)); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil || string(got) != "%PDF-1.4 stub" {
		t.Fatalf("output = %q, %v", got, err)
	}

	args := readArgs(t, argsFile)
	if len(args) != 3 {
		t.Fatalf("args = %v, want [url, temp.html, dest]", args)
	}
	if args[0] != "http://example.com" || args[2] != dest {
		t.Errorf("args = %v", args)
	}
	if filepath.Dir(args[1]) != tempDir || filepath.Ext(args[1]) != ".html" {
		t.Errorf("inline page should be a temp .html file, got %q", args[1])
	}
	assertEmptyDir(t, tempDir)
}

func TestConvert_EndToEnd_WriterSinkRemovesEphemeralOutput(t *testing.T) {
	t.Parallel()

	argsFile := filepath.Join(t.TempDir(), "args")
	stub := recordingStub(t, argsFile)
	tempDir := t.TempDir()

	conv := NewConverter(WithExecutable(stub), WithTempDir(tempDir), WithTimeout(10*time.Second))
	doc := NewDocument(&Cover{Content: "<h1>Cover</h1>"}, &TableOfContents{}, &Page{Content: "<p>body</p>"})

	var buf bytes.Buffer
	if err := conv.Convert(context.Background(), doc, ToWriter(&buf)); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if buf.String() != "%PDF-1.4 stub" {
		t.Errorf("writer got %q", buf.String())
	}

	args := readArgs(t, argsFile)
	if args[0] != "cover" || args[2] != "toc" {
		t.Errorf("args = %v, want cover then toc", args)
	}
	assertEmptyDir(t, tempDir)
}

func TestConvert_EndToEnd_FailureWithoutOutput(t *testing.T) {
	t.Parallel()

	stub := writeStub(t, `echo "Exit with code 1 due to network error: HostNotFoundError" >&2; exit 1`)
	tempDir := t.TempDir()
	conv := NewConverter(WithExecutable(stub), WithTempDir(tempDir))

	err := conv.Convert(context.Background(), NewDocument(&Page{Content: "<p>x</p>"}), ToWriter(&bytes.Buffer{}))

	var pe *ProcessError
	if !errors.As(err, &pe) || !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("Convert() = %v, want ErrConversionFailed", err)
	}
	if pe.ExitCode != 1 || !strings.Contains(pe.Stderr, "HostNotFoundError") {
		t.Errorf("ProcessError = %+v", pe)
	}
	assertEmptyDir(t, tempDir)
}

func TestConvert_EndToEnd_WarningExitWithOutput(t *testing.T) {
	t.Parallel()

	stub := writeStub(t, `printf '%%PDF' > "$last"; echo "Warning: Failed to load" >&2; exit 1`)
	tempDir := t.TempDir()
	conv := NewConverter(WithExecutable(stub), WithTempDir(tempDir))

	var buf bytes.Buffer
	if err := conv.Convert(context.Background(), NewDocument(urlPage()), ToWriter(&buf)); err != nil {
		t.Fatalf("Convert() = %v, want success despite exit code 1", err)
	}
	if buf.String() != "%PDF" {
		t.Errorf("writer got %q", buf.String())
	}
	assertEmptyDir(t, tempDir)
}

func TestConvert_EndToEnd_Timeout(t *testing.T) {
	t.Parallel()

	stub := writeStub(t, `exec sleep 30`)
	tempDir := t.TempDir()
	conv := NewConverter(WithExecutable(stub), WithTempDir(tempDir), WithTimeout(300*time.Millisecond))

	err := conv.Convert(context.Background(), NewDocument(&Page{Content: "<p>slow</p>"}), ToWriter(&bytes.Buffer{}))
	if !errors.Is(err, ErrConversionTimeout) {
		t.Errorf("Convert() = %v, want ErrConversionTimeout", err)
	}
	assertEmptyDir(t, tempDir)
}
