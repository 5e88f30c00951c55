package main

import (
	"fmt"
	"io"
	"maps"
	"strings"

	flag "github.com/spf13/pflag"

	wkhtmltopdf "github.com/ajsjunior/wkhtmltopdf-1"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// runFlags holds where and how wkhtmltopdf runs.
type runFlags struct {
	output        string
	stdout        bool
	timeout       string
	executable    string
	executableDir string
	tempDir       string
	stdin         bool
}

// structureFlags holds flags that add units around the inputs.
type structureFlags struct {
	cover     string
	toc       bool
	tocHeader string
	style     string // chroma style for Markdown code blocks
}

// globalFlags holds document-wide options.
type globalFlags struct {
	pageSize     string
	orientation  string
	title        string
	marginTop    float64
	marginBottom float64
	marginLeft   float64
	marginRight  float64
	grayscale    bool
	lowQuality   bool
	dpi          int
	imageQuality int
	copies       int
	noOutline    bool
}

// pageFlags holds default page options.
type pageFlags struct {
	noBackground      bool
	printMediaType    bool
	localFileAccess   bool
	zoom              float64
	javascriptDelay   int
	loadErrorHandling string
	userStyleSheet    string
	cookies           map[string]string
	customHeaders     map[string]string
	runScripts        []string
}

// headerFooterFlags holds header and footer text for the input pages.
type headerFooterFlags struct {
	headerLeft   string
	headerCenter string
	headerRight  string
	headerHTML   string
	headerLine   bool
	footerLeft   string
	footerCenter string
	footerRight  string
	footerHTML   string
	footerLine   bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	run       runFlags
	structure structureFlags
	global    globalFlags
	page      pageFlags
	hf        headerFooterFlags

	fs *flag.FlagSet
}

// changed reports whether the named flag was given on the command line.
func (f *convertFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "job file name or path")
	fs.StringVar(&f.envFile, "env-file", ".env", "dotenv file with WKHTMLTOPDF_* variables")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors and warnings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs, including the command line")
}

// addRunFlags adds execution flags to a FlagSet.
func addRunFlags(fs *flag.FlagSet, f *runFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output PDF file")
	fs.BoolVar(&f.stdout, "stdout", false, "write the PDF to standard output")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "wkhtmltopdf timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.executable, "executable", "", "wkhtmltopdf binary path")
	fs.StringVar(&f.executableDir, "executable-dir", "", "wkhtmltopdf install folder")
	fs.StringVar(&f.tempDir, "temp-dir", "", "folder for temporary files")
	fs.BoolVar(&f.stdin, "pipe", false, "feed the first inline page to wkhtmltopdf on stdin")
}

// addStructureFlags adds cover and TOC flags to a FlagSet.
func addStructureFlags(fs *flag.FlagSet, f *structureFlags) {
	fs.StringVar(&f.cover, "cover", "", "cover page input")
	fs.BoolVar(&f.toc, "toc", false, "insert a table of contents")
	fs.StringVar(&f.tocHeader, "toc-header", "", "table of contents heading")
	fs.StringVar(&f.style, "code-style", "", "syntax highlighting style for Markdown inputs")
}

// addGlobalFlags adds document-wide flags to a FlagSet.
func addGlobalFlags(fs *flag.FlagSet, f *globalFlags) {
	fs.StringVarP(&f.pageSize, "page-size", "s", "", "page size: A4, Letter, Legal, ...")
	fs.StringVarP(&f.orientation, "orientation", "O", "", "orientation: portrait, landscape")
	fs.StringVar(&f.title, "title", "", "PDF title")
	fs.Float64VarP(&f.marginTop, "margin-top", "T", 0, "top margin in mm")
	fs.Float64VarP(&f.marginBottom, "margin-bottom", "B", 0, "bottom margin in mm")
	fs.Float64VarP(&f.marginLeft, "margin-left", "L", 0, "left margin in mm")
	fs.Float64VarP(&f.marginRight, "margin-right", "R", 0, "right margin in mm")
	fs.BoolVarP(&f.grayscale, "grayscale", "g", false, "render in grayscale")
	fs.BoolVarP(&f.lowQuality, "lowquality", "l", false, "lower quality, smaller file")
	fs.IntVarP(&f.dpi, "dpi", "d", 0, "output DPI")
	fs.IntVar(&f.imageQuality, "image-quality", 0, "JPEG quality (0-100)")
	fs.IntVar(&f.copies, "copies", 0, "number of copies")
	fs.BoolVar(&f.noOutline, "no-outline", false, "do not add a PDF outline")
}

// addPageFlags adds default page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.BoolVar(&f.noBackground, "no-background", false, "do not print backgrounds")
	fs.BoolVar(&f.printMediaType, "print-media-type", false, "use print media CSS")
	fs.BoolVar(&f.localFileAccess, "enable-local-file-access", false, "allow local files to load other files")
	fs.Float64Var(&f.zoom, "zoom", 0, "zoom factor")
	fs.IntVar(&f.javascriptDelay, "javascript-delay", 0, "wait this many ms for JavaScript")
	fs.StringVar(&f.loadErrorHandling, "load-error-handling", "", "on page load errors: abort, ignore, skip")
	fs.StringVar(&f.userStyleSheet, "user-style-sheet", "", "extra CSS file applied to every page")
	fs.StringToStringVar(&f.cookies, "cookie", nil, "cookie name=value (repeatable)")
	fs.StringToStringVar(&f.customHeaders, "custom-header", nil, "HTTP header name=value (repeatable)")
	fs.StringArrayVar(&f.runScripts, "run-script", nil, "JavaScript to run after load (repeatable)")
}

// addHeaderFooterFlags adds header and footer flags to a FlagSet.
func addHeaderFooterFlags(fs *flag.FlagSet, f *headerFooterFlags) {
	fs.StringVar(&f.headerLeft, "header-left", "", "header left text")
	fs.StringVar(&f.headerCenter, "header-center", "", "header center text")
	fs.StringVar(&f.headerRight, "header-right", "", "header right text")
	fs.StringVar(&f.headerHTML, "header-html", "", "header HTML (URL, file or markup)")
	fs.BoolVar(&f.headerLine, "header-line", false, "line below the header")
	fs.StringVar(&f.footerLeft, "footer-left", "", "footer left text")
	fs.StringVar(&f.footerCenter, "footer-center", "", "footer center text")
	fs.StringVar(&f.footerRight, "footer-right", "", "footer right text, e.g. [page]/[topage]")
	fs.StringVar(&f.footerHTML, "footer-html", "", "footer HTML (URL, file or markup)")
	fs.BoolVar(&f.footerLine, "footer-line", false, "line above the footer")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{fs: fs}

	addCommonFlags(fs, &f.common)
	addRunFlags(fs, &f.run)
	addStructureFlags(fs, &f.structure)
	addGlobalFlags(fs, &f.global)
	addPageFlags(fs, &f.page)
	addHeaderFooterFlags(fs, &f.hf)

	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// applyGlobal copies the given global flags onto o. Unset flags leave o
// untouched so job file values survive.
func (f *convertFlags) applyGlobal(o *wkhtmltopdf.GlobalOptions) error {
	g := f.global

	if f.changed("page-size") {
		o.PageSize = wkhtmltopdf.String(g.pageSize)
	}
	if f.changed("orientation") {
		switch strings.ToLower(g.orientation) {
		case "portrait":
			o.Landscape = wkhtmltopdf.Bool(false)
		case "landscape":
			o.Landscape = wkhtmltopdf.Bool(true)
		default:
			return fmt.Errorf("%w: --orientation must be portrait or landscape, got %q", ErrUsage, g.orientation)
		}
	}
	if f.changed("title") {
		o.Title = wkhtmltopdf.String(g.title)
	}
	if f.changed("margin-top") {
		o.MarginTop = wkhtmltopdf.Float(g.marginTop)
	}
	if f.changed("margin-bottom") {
		o.MarginBottom = wkhtmltopdf.Float(g.marginBottom)
	}
	if f.changed("margin-left") {
		o.MarginLeft = wkhtmltopdf.Float(g.marginLeft)
	}
	if f.changed("margin-right") {
		o.MarginRight = wkhtmltopdf.Float(g.marginRight)
	}
	if f.changed("grayscale") {
		o.Grayscale = wkhtmltopdf.Bool(g.grayscale)
	}
	if f.changed("lowquality") {
		o.LowQuality = wkhtmltopdf.Bool(g.lowQuality)
	}
	if f.changed("dpi") {
		o.DPI = wkhtmltopdf.Int(g.dpi)
	}
	if f.changed("image-quality") {
		o.ImageQuality = wkhtmltopdf.Int(g.imageQuality)
	}
	if f.changed("copies") {
		o.Copies = wkhtmltopdf.Int(g.copies)
	}
	if f.changed("no-outline") {
		o.Outline = wkhtmltopdf.Bool(!g.noOutline)
	}
	return nil
}

// applyPage copies the given page flags onto o.
func (f *convertFlags) applyPage(o *wkhtmltopdf.PageOptions) error {
	p := f.page

	if f.changed("no-background") {
		o.Background = wkhtmltopdf.Bool(!p.noBackground)
	}
	if f.changed("print-media-type") {
		o.PrintMediaType = wkhtmltopdf.Bool(p.printMediaType)
	}
	if f.changed("enable-local-file-access") {
		o.LocalFileAccess = wkhtmltopdf.Bool(p.localFileAccess)
	}
	if f.changed("zoom") {
		o.Zoom = wkhtmltopdf.Float(p.zoom)
	}
	if f.changed("javascript-delay") {
		o.JavascriptDelay = wkhtmltopdf.Int(p.javascriptDelay)
	}
	if f.changed("load-error-handling") {
		h := wkhtmltopdf.ErrorHandling(strings.ToLower(p.loadErrorHandling))
		switch h {
		case wkhtmltopdf.ErrorHandlingAbort, wkhtmltopdf.ErrorHandlingIgnore, wkhtmltopdf.ErrorHandlingSkip:
			o.LoadErrorHandling = &h
		default:
			return fmt.Errorf("%w: --load-error-handling must be abort, ignore, or skip, got %q", ErrUsage, p.loadErrorHandling)
		}
	}
	if f.changed("user-style-sheet") {
		o.UserStyleSheet = wkhtmltopdf.String(p.userStyleSheet)
	}
	o.Cookies = mergeMap(o.Cookies, p.cookies)
	o.CustomHeaders = mergeMap(o.CustomHeaders, p.customHeaders)
	o.RunScript = append(o.RunScript, p.runScripts...)
	return nil
}

// headerFooter builds the header and footer applied to input pages.
func (f *convertFlags) headerFooter() (header, footer wkhtmltopdf.HeaderFooterOptions) {
	hf := f.hf
	set := func(name, v string) *string {
		if !f.changed(name) {
			return nil
		}
		return wkhtmltopdf.String(v)
	}
	line := func(name string, v bool) *bool {
		if !f.changed(name) {
			return nil
		}
		return wkhtmltopdf.Bool(v)
	}

	header = wkhtmltopdf.HeaderFooterOptions{
		Left:   set("header-left", hf.headerLeft),
		Center: set("header-center", hf.headerCenter),
		Right:  set("header-right", hf.headerRight),
		HTML:   hf.headerHTML,
		Line:   line("header-line", hf.headerLine),
	}
	footer = wkhtmltopdf.HeaderFooterOptions{
		Left:   set("footer-left", hf.footerLeft),
		Center: set("footer-center", hf.footerCenter),
		Right:  set("footer-right", hf.footerRight),
		HTML:   hf.footerHTML,
		Line:   line("footer-line", hf.footerLine),
	}
	return header, footer
}

// mergeMap returns base with extra layered on top. Nil when both are empty.
func mergeMap(base, extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string]string, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}
