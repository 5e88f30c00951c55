// Package wkhtmltopdf converts HTML to PDF by driving the wkhtmltopdf
// command-line tool.
//
// # Quick Start
//
// Build a Document from pages, then convert it:
//
//	doc := wkhtmltopdf.NewDocument(
//	    &wkhtmltopdf.Page{Content: "https://example.com"},
//	    &wkhtmltopdf.Page{Content: "<html><body><h1>Hello</h1></body></html>"},
//	)
//	err := wkhtmltopdf.Convert(ctx, doc, nil, wkhtmltopdf.ToFile("out.pdf"))
//
// Content may be a URL, an absolute file path, or inline markup. Inline
// markup is written to a uniquely named temp file for the duration of the
// call. Set Page.Literal to force inline treatment of text that merely
// looks like a URL or path.
//
// # Document Structure
//
// A Document holds global options (margins, page size, outline, copies),
// default page options, and an ordered list of units: *Page, *Cover and
// *TableOfContents. Options are pointers; nil leaves the wkhtmltopdf
// default untouched:
//
//	doc.Options.PageSize = wkhtmltopdf.Size(wkhtmltopdf.PageSizeA4)
//	doc.Options.Landscape = wkhtmltopdf.Bool(true)
//	doc.Options.MarginLeft = wkhtmltopdf.Float(10)
//
// Boolean options only emit the flag that overrides the tool's default,
// so Background: Bool(false) becomes --no-background and Bool(true)
// emits nothing.
//
// # Output
//
// Output accepts any combination of a file path, an io.Writer and a
// callback. Without a path the PDF is produced in a temp file that is
// removed after the writer and callback have been served.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := wkhtmltopdf.NewConverter(
//	    wkhtmltopdf.WithTimeout(2 * time.Minute),
//	    wkhtmltopdf.WithExecutable("/opt/wkhtmltopdf/bin/wkhtmltopdf"),
//	    wkhtmltopdf.WithLogger(slog.Default()),
//	)
//	err := conv.Convert(ctx, doc, wkhtmltopdf.ToWriter(w))
//
// Without WithExecutable, the binary is searched in the configured install
// folder, then the platform install locations, then PATH.
//
// # Errors
//
// Validation problems wrap ErrValidation and are reported before any
// process starts. A failed run returns a *ProcessError matching
// ErrConversionFailed (with stderr and the command line) or
// ErrConversionTimeout. A non-zero exit code is tolerated when the PDF was
// still produced.
package wkhtmltopdf
