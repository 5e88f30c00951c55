package main

// Notes:
// - parseConvertFlags: positional arguments and short flags.
// - applyGlobal / applyPage: only flags given on the command line touch the
//   options, so values from a job file survive.
// - headerFooter: unset text stays nil; HTML is copied as is.

import (
	"errors"
	"io"
	"testing"

	wkhtmltopdf "github.com/ajsjunior/wkhtmltopdf-1"
)

func mustParse(t *testing.T, args ...string) (*convertFlags, []string) {
	t.Helper()
	f, rest, err := parseConvertFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseConvertFlags(%v) = %v", args, err)
	}
	return f, rest
}

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Parsing and positional inputs
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	f, rest := mustParse(t, "-o", "out.pdf", "-s", "Letter", "-g", "--toc", "a.html", "https://example.com")

	if f.run.output != "out.pdf" {
		t.Errorf("output = %q", f.run.output)
	}
	if !f.structure.toc {
		t.Error("toc should be set")
	}
	if len(rest) != 2 || rest[0] != "a.html" || rest[1] != "https://example.com" {
		t.Errorf("positional = %v", rest)
	}
	if !f.changed("grayscale") || f.changed("lowquality") {
		t.Error("changed() must report only given flags")
	}
	if f.common.envFile != ".env" {
		t.Errorf("env-file default = %q, want .env", f.common.envFile)
	}
}

func TestParseConvertFlags_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := parseConvertFlags([]string{"--no-such-flag"}, io.Discard); err == nil {
		t.Error("unknown flag should fail")
	}
	if _, _, err := parseConvertFlags([]string{"--dpi", "many"}, io.Discard); err == nil {
		t.Error("non-numeric dpi should fail")
	}
}

// ---------------------------------------------------------------------------
// TestApplyGlobal - Document-wide flags
// ---------------------------------------------------------------------------

func TestApplyGlobal(t *testing.T) {
	t.Parallel()

	t.Run("unset flags keep job values", func(t *testing.T) {
		t.Parallel()

		f, _ := mustParse(t, "-T", "12.5", "--no-outline")
		o := wkhtmltopdf.GlobalOptions{PageSize: wkhtmltopdf.String("Legal"), DPI: wkhtmltopdf.Int(300)}

		if err := f.applyGlobal(&o); err != nil {
			t.Fatal(err)
		}
		if *o.PageSize != "Legal" || *o.DPI != 300 {
			t.Errorf("job values overwritten: size=%q dpi=%d", *o.PageSize, *o.DPI)
		}
		if o.MarginTop == nil || *o.MarginTop != 12.5 {
			t.Errorf("MarginTop = %v, want 12.5", o.MarginTop)
		}
		if o.Outline == nil || *o.Outline {
			t.Error("--no-outline should set Outline to false")
		}
		if o.Grayscale != nil {
			t.Error("Grayscale should stay unset")
		}
	})

	t.Run("orientation", func(t *testing.T) {
		t.Parallel()

		f, _ := mustParse(t, "-O", "Landscape")
		var o wkhtmltopdf.GlobalOptions
		if err := f.applyGlobal(&o); err != nil {
			t.Fatal(err)
		}
		if o.Landscape == nil || !*o.Landscape {
			t.Error("Landscape should be true")
		}
	})

	t.Run("invalid orientation", func(t *testing.T) {
		t.Parallel()

		f, _ := mustParse(t, "--orientation", "sideways")
		var o wkhtmltopdf.GlobalOptions
		if err := f.applyGlobal(&o); !errors.Is(err, ErrUsage) {
			t.Errorf("applyGlobal() = %v, want ErrUsage", err)
		}
	})

	t.Run("explicit zero is applied", func(t *testing.T) {
		t.Parallel()

		f, _ := mustParse(t, "--copies", "0")
		var o wkhtmltopdf.GlobalOptions
		if err := f.applyGlobal(&o); err != nil {
			t.Fatal(err)
		}
		if o.Copies == nil || *o.Copies != 0 {
			t.Error("--copies 0 must reach the document so validation can reject it")
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyPage - Default page flags
// ---------------------------------------------------------------------------

func TestApplyPage(t *testing.T) {
	t.Parallel()

	t.Run("maps and scripts are merged", func(t *testing.T) {
		t.Parallel()

		f, _ := mustParse(t,
			"--cookie", "session=abc",
			"--custom-header", "X-Token=1",
			"--run-script", "a()", "--run-script", "b()",
			"--no-background",
			"--load-error-handling", "IGNORE",
		)
		o := wkhtmltopdf.PageOptions{
			Cookies:   map[string]string{"lang": "en", "session": "old"},
			RunScript: []string{"init()"},
		}

		if err := f.applyPage(&o); err != nil {
			t.Fatal(err)
		}
		if o.Cookies["lang"] != "en" || o.Cookies["session"] != "abc" {
			t.Errorf("Cookies = %v", o.Cookies)
		}
		if o.CustomHeaders["X-Token"] != "1" {
			t.Errorf("CustomHeaders = %v", o.CustomHeaders)
		}
		if len(o.RunScript) != 3 || o.RunScript[0] != "init()" || o.RunScript[2] != "b()" {
			t.Errorf("RunScript = %v", o.RunScript)
		}
		if o.Background == nil || *o.Background {
			t.Error("--no-background should set Background to false")
		}
		if o.LoadErrorHandling == nil || *o.LoadErrorHandling != wkhtmltopdf.ErrorHandlingIgnore {
			t.Errorf("LoadErrorHandling = %v", o.LoadErrorHandling)
		}
	})

	t.Run("nothing given leaves options empty", func(t *testing.T) {
		t.Parallel()

		f, _ := mustParse(t)
		var o wkhtmltopdf.PageOptions
		if err := f.applyPage(&o); err != nil {
			t.Fatal(err)
		}
		if o.Cookies != nil || o.CustomHeaders != nil || o.RunScript != nil || o.Zoom != nil {
			t.Errorf("unexpected options: %+v", o)
		}
	})

	t.Run("invalid load error handling", func(t *testing.T) {
		t.Parallel()

		f, _ := mustParse(t, "--load-error-handling", "retry")
		var o wkhtmltopdf.PageOptions
		if err := f.applyPage(&o); !errors.Is(err, ErrUsage) {
			t.Errorf("applyPage() = %v, want ErrUsage", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestHeaderFooter - Header and footer flags
// ---------------------------------------------------------------------------

func TestHeaderFooter(t *testing.T) {
	t.Parallel()

	f, _ := mustParse(t, "--footer-right", "[page]/[topage]", "--header-line", "--header-html", "https://example.com/h.html")
	header, footer := f.headerFooter()

	if footer.Right == nil || *footer.Right != "[page]/[topage]" {
		t.Errorf("footer.Right = %v", footer.Right)
	}
	if footer.Left != nil || footer.Line != nil {
		t.Error("unset footer fields must stay nil")
	}
	if header.Line == nil || !*header.Line {
		t.Error("header.Line should be true")
	}
	if header.HTML != "https://example.com/h.html" {
		t.Errorf("header.HTML = %q", header.HTML)
	}
}
