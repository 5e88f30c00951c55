//go:build integration

package wkhtmltopdf

// Notes:
// - Runs against a real wkhtmltopdf; skipped when none can be found
// - Produced PDFs are parsed with internal/pdfinfo to count pages
// - Only features that work on unpatched Qt builds are exercised

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/ajsjunior/wkhtmltopdf-1/internal/pdfinfo"
)

// integrationTimeout bounds every real conversion.
const integrationTimeout = 2 * time.Minute

// integrationEnv is the resolved environment shared by all integration tests.
var integrationEnv Environment

// ---------------------------------------------------------------------------
// TestMain - Locate wkhtmltopdf
// ---------------------------------------------------------------------------

func TestMain(m *testing.M) {
	env, err := Environment{Timeout: integrationTimeout}.Resolve()
	if err == nil {
		_, err = exec.LookPath(env.ExecutablePath)
	}
	if err != nil {
		os.Stderr.WriteString("wkhtmltopdf not found, skipping integration tests\n")
		os.Exit(0)
	}
	integrationEnv = env
	os.Exit(m.Run())
}

func convertReal(t *testing.T, doc *Document) []byte {
	t.Helper()
	env := integrationEnv
	env.TempDir = t.TempDir()

	var buf bytes.Buffer
	if err := Convert(context.Background(), doc, &env, ToWriter(&buf)); err != nil {
		t.Fatalf("Convert() = %v", err)
	}
	if entries, _ := os.ReadDir(env.TempDir); len(entries) != 0 {
		t.Errorf("temp dir not cleaned: %d entries", len(entries))
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// Integration tests
// ---------------------------------------------------------------------------

func TestIntegration_InlinePage(t *testing.T) {
	t.Parallel()

	pdf := convertReal(t, NewDocument(&Page{Content: "<html><body><h1>Hello</h1></body></html>"}))

	info, err := pdfinfo.Inspect(pdf)
	if err != nil {
		t.Fatalf("Inspect() = %v", err)
	}
	if info.Pages != 1 {
		t.Errorf("pages = %d, want 1", info.Pages)
	}
}

func TestIntegration_TwoPagesAndFile(t *testing.T) {
	t.Parallel()

	page := filepath.Join(t.TempDir(), "second.html")
	if err := os.WriteFile(page, []byte("<html><body><p>second</p></body></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	doc := NewDocument(&Page{Content: "<p>first</p>"}, &Page{Content: page})
	doc.Options.PageSize = Size(PageSizeA4)
	doc.Page.LocalFileAccess = Bool(true)

	info, err := pdfinfo.Inspect(convertReal(t, doc))
	if err != nil {
		t.Fatalf("Inspect() = %v", err)
	}
	if info.Pages != 2 {
		t.Errorf("pages = %d, want 2", info.Pages)
	}
}

func TestIntegration_StdinRouting(t *testing.T) {
	t.Parallel()

	env := integrationEnv
	env.TempDir = t.TempDir()
	env.Stdin = true
	dest := filepath.Join(t.TempDir(), "stdin.pdf")

	doc := NewDocument(&Page{Content: "<html><body>piped</body></html>"})
	if err := Convert(context.Background(), doc, &env, ToFile(dest)); err != nil {
		t.Fatalf("Convert() = %v", err)
	}

	info, err := pdfinfo.InspectFile(dest)
	if err != nil {
		t.Fatalf("InspectFile() = %v", err)
	}
	if info.Pages != 1 || info.Size == 0 {
		t.Errorf("info = %+v", info)
	}
}
