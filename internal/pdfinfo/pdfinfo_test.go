package pdfinfo

// Notes:
// - Test PDFs are built in memory by buildPDF with a correct xref table, so
//   no binary fixtures are checked in

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildPDF returns a minimal valid PDF with n empty pages.
func buildPDF(n int) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
	}
	kids := make([]string, n)
	for i := range n {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	for range n {
		objs = append(objs, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// TestInspect
// ---------------------------------------------------------------------------

func TestInspect(t *testing.T) {
	t.Parallel()

	for _, pages := range []int{1, 3} {
		t.Run(fmt.Sprintf("%d pages", pages), func(t *testing.T) {
			t.Parallel()

			data := buildPDF(pages)
			info, err := Inspect(data)
			if err != nil {
				t.Fatalf("Inspect() unexpected error: %v", err)
			}
			if info.Pages != pages {
				t.Errorf("Pages = %d, want %d", info.Pages, pages)
			}
			if info.Size != int64(len(data)) {
				t.Errorf("Size = %d, want %d", info.Size, len(data))
			}
		})
	}
}

func TestInspect_Invalid(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("not a pdf"), []byte("%PDF-1.4\ngarbage")} {
		if _, err := Inspect(data); !errors.Is(err, ErrInvalidPDF) {
			t.Errorf("Inspect(%q) = %v, want ErrInvalidPDF", data, err)
		}
	}
}

func TestInspectFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, buildPDF(2), 0o600); err != nil {
		t.Fatal(err)
	}

	info, err := InspectFile(path)
	if err != nil || info.Pages != 2 {
		t.Errorf("InspectFile() = %+v, %v; want 2 pages", info, err)
	}

	if _, err := InspectFile(filepath.Join(t.TempDir(), "missing.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}
