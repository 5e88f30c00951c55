package wkhtmltopdf

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Markers that open cover and table of contents objects on the command line.
const (
	coverMarker = "cover"
	tocMarker   = "toc"
)

// Command is a fully serialized wkhtmltopdf invocation.
type Command struct {
	Path   string   // executable
	Args   []string // arguments, destination last
	Stdin  []byte   // inline content routed through standard input, if any
	Output string   // destination PDF path
}

// String renders the command line for diagnostics, quoting tokens that
// contain whitespace or quotes.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quoteArg(c.Path))
	for _, a := range c.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\r\n\"'") {
		return strconv.Quote(s)
	}
	return s
}

// inlineContent is a table value resolved through the workspace:
// a URL, a path, or markup materialized into a temp file.
type inlineContent struct {
	value string
	ext   string
}

// flagSpec binds one option field to its wkhtmltopdf flag.
//
// For *bool fields, on and off name the flag pair and def is the tool's
// built-in default; only the flag that changes the default is emitted.
// For every other kind, name is the flag.
type flagSpec[T any] struct {
	name    string
	on, off string
	def     bool
	get     func(*T) any
}

func opt[T any](name string, get func(*T) any) flagSpec[T] {
	return flagSpec[T]{name: name, get: get}
}

func toggle[T any](on, off string, def bool, get func(*T) any) flagSpec[T] {
	return flagSpec[T]{on: on, off: off, def: def, get: get}
}

var globalFlags = []flagSpec[GlobalOptions]{
	toggle("collate", "no-collate", true, func(o *GlobalOptions) any { return o.Collate }),
	opt("copies", func(o *GlobalOptions) any { return o.Copies }),
	opt("dpi", func(o *GlobalOptions) any { return o.DPI }),
	toggle("grayscale", "", false, func(o *GlobalOptions) any { return o.Grayscale }),
	opt("image-dpi", func(o *GlobalOptions) any { return o.ImageDPI }),
	opt("image-quality", func(o *GlobalOptions) any { return o.ImageQuality }),
	toggle("lowquality", "", false, func(o *GlobalOptions) any { return o.LowQuality }),
	opt("margin-bottom", func(o *GlobalOptions) any { return o.MarginBottom }),
	opt("margin-left", func(o *GlobalOptions) any { return o.MarginLeft }),
	opt("margin-right", func(o *GlobalOptions) any { return o.MarginRight }),
	opt("margin-top", func(o *GlobalOptions) any { return o.MarginTop }),
	opt("page-size", func(o *GlobalOptions) any { return o.PageSize }),
	opt("page-height", func(o *GlobalOptions) any { return o.PageHeight }),
	opt("page-width", func(o *GlobalOptions) any { return o.PageWidth }),
	opt("orientation", func(o *GlobalOptions) any { return orientation(o.Landscape) }),
	toggle("", "no-pdf-compression", true, func(o *GlobalOptions) any { return o.Compression }),
	opt("title", func(o *GlobalOptions) any { return o.Title }),
	toggle("outline", "no-outline", true, func(o *GlobalOptions) any { return o.Outline }),
	opt("outline-depth", func(o *GlobalOptions) any { return o.OutlineDepth }),
	opt("dump-outline", func(o *GlobalOptions) any { return o.DumpOutline }),
	toggle("quiet", "", false, func(o *GlobalOptions) any { return o.Quiet }),
}

var pageFlags = []flagSpec[PageOptions]{
	opt("allow", func(o *PageOptions) any { return o.Allow }),
	toggle("background", "no-background", true, func(o *PageOptions) any { return o.Background }),
	opt("bypass-proxy-for", func(o *PageOptions) any { return o.BypassProxyFor }),
	opt("cache-dir", func(o *PageOptions) any { return o.CacheDir }),
	opt("cookie", func(o *PageOptions) any { return o.Cookies }),
	opt("custom-header", func(o *PageOptions) any { return o.CustomHeaders }),
	toggle("custom-header-propagation", "no-custom-header-propagation", false,
		func(o *PageOptions) any { return o.CustomHeaderPropagation }),
	toggle("debug-javascript", "no-debug-javascript", false, func(o *PageOptions) any { return o.DebugJavascript }),
	toggle("default-header", "", false, func(o *PageOptions) any { return o.DefaultHeader }),
	opt("encoding", func(o *PageOptions) any { return o.Encoding }),
	toggle("exclude-from-outline", "include-in-outline", false, func(o *PageOptions) any { return o.ExcludeFromOutline }),
	toggle("enable-external-links", "disable-external-links", true, func(o *PageOptions) any { return o.ExternalLinks }),
	toggle("enable-forms", "disable-forms", false, func(o *PageOptions) any { return o.Forms }),
	toggle("images", "no-images", true, func(o *PageOptions) any { return o.Images }),
	toggle("enable-internal-links", "disable-internal-links", true, func(o *PageOptions) any { return o.InternalLinks }),
	toggle("enable-javascript", "disable-javascript", true, func(o *PageOptions) any { return o.Javascript }),
	opt("javascript-delay", func(o *PageOptions) any { return o.JavascriptDelay }),
	toggle("keep-relative-links", "", false, func(o *PageOptions) any { return o.KeepRelativeLinks }),
	opt("load-error-handling", func(o *PageOptions) any { return o.LoadErrorHandling }),
	opt("load-media-error-handling", func(o *PageOptions) any { return o.LoadMediaErrorHandling }),
	toggle("enable-local-file-access", "disable-local-file-access", false, func(o *PageOptions) any { return o.LocalFileAccess }),
	opt("minimum-font-size", func(o *PageOptions) any { return o.MinimumFontSize }),
	opt("page-offset", func(o *PageOptions) any { return o.PageOffset }),
	opt("password", func(o *PageOptions) any { return o.Password }),
	toggle("enable-plugins", "disable-plugins", false, func(o *PageOptions) any { return o.Plugins }),
	opt("post", func(o *PageOptions) any { return o.Post }),
	opt("post-file", func(o *PageOptions) any { return o.PostFile }),
	toggle("print-media-type", "no-print-media-type", false, func(o *PageOptions) any { return o.PrintMediaType }),
	opt("proxy", func(o *PageOptions) any { return o.Proxy }),
	opt("run-script", func(o *PageOptions) any { return o.RunScript }),
	toggle("enable-smart-shrinking", "disable-smart-shrinking", true, func(o *PageOptions) any { return o.SmartShrinking }),
	toggle("stop-slow-scripts", "no-stop-slow-scripts", true, func(o *PageOptions) any { return o.StopSlowScripts }),
	toggle("enable-toc-back-links", "disable-toc-back-links", false, func(o *PageOptions) any { return o.TOCBackLinks }),
	opt("user-style-sheet", func(o *PageOptions) any { return o.UserStyleSheet }),
	opt("username", func(o *PageOptions) any { return o.Username }),
	opt("viewport-size", func(o *PageOptions) any { return o.ViewportSize }),
	opt("window-status", func(o *PageOptions) any { return o.WindowStatus }),
	opt("zoom", func(o *PageOptions) any { return o.Zoom }),
}

var (
	headerFlags = headerFooterFlags("header")
	footerFlags = headerFooterFlags("footer")
)

// headerFooterFlags builds the table for --header-* or --footer-* flags.
// --replace is shared by both and carries no prefix.
func headerFooterFlags(prefix string) []flagSpec[HeaderFooterOptions] {
	p := prefix + "-"
	return []flagSpec[HeaderFooterOptions]{
		opt(p+"center", func(o *HeaderFooterOptions) any { return o.Center }),
		opt(p+"font-name", func(o *HeaderFooterOptions) any { return o.FontName }),
		opt(p+"font-size", func(o *HeaderFooterOptions) any { return o.FontSize }),
		opt(p+"html", func(o *HeaderFooterOptions) any { return inlineContent{value: o.HTML, ext: "html"} }),
		opt(p+"left", func(o *HeaderFooterOptions) any { return o.Left }),
		toggle(p+"line", "no-"+p+"line", false, func(o *HeaderFooterOptions) any { return o.Line }),
		opt(p+"right", func(o *HeaderFooterOptions) any { return o.Right }),
		opt(p+"spacing", func(o *HeaderFooterOptions) any { return o.Spacing }),
		opt("replace", func(o *HeaderFooterOptions) any { return o.Replace }),
	}
}

var tocFlags = []flagSpec[TOCOptions]{
	toggle("", "disable-dotted-lines", true, func(o *TOCOptions) any { return o.DottedLines }),
	opt("toc-header-text", func(o *TOCOptions) any { return o.HeaderText }),
	opt("toc-level-indentation", func(o *TOCOptions) any { return o.LevelIndentation }),
	toggle("", "disable-toc-links", true, func(o *TOCOptions) any { return o.Links }),
	opt("toc-text-size-shrink", func(o *TOCOptions) any { return o.TextSizeShrink }),
	opt("xsl-style-sheet", func(o *TOCOptions) any { return inlineContent{value: o.XSLStyleSheet, ext: "xsl"} }),
}

// orientation derives --orientation from the landscape flag.
func orientation(landscape *bool) *string {
	if landscape == nil {
		return nil
	}
	if *landscape {
		return String(OrientationLandscape)
	}
	return String(OrientationPortrait)
}

// argWriter accumulates tokens and stops at the first resolve error.
type argWriter struct {
	ws   *workspace
	args []string
	err  error
}

func (w *argWriter) add(tokens ...string) {
	w.args = append(w.args, tokens...)
}

// content appends the token for a content field, or nothing when empty.
func (w *argWriter) content(value, ext string, literal, stdinCapable bool) string {
	if w.err != nil {
		return ""
	}
	token, err := w.ws.resolve(value, ext, literal, stdinCapable)
	if err != nil {
		w.err = err
		return ""
	}
	return token
}

// writeFlags serializes opts according to table.
func writeFlags[T any](w *argWriter, table []flagSpec[T], opts *T) {
	for _, f := range table {
		if w.err != nil {
			return
		}
		w.writeValue(f.name, f.on, f.off, f.def, f.get(opts))
	}
}

func (w *argWriter) writeValue(name, on, off string, def bool, value any) {
	flag := "--" + name
	switch v := value.(type) {
	case *bool:
		if v == nil || *v == def {
			return
		}
		chosen := on
		if !*v {
			chosen = off
		}
		if chosen != "" {
			w.add("--" + chosen)
		}
	case *string:
		if v != nil {
			w.add(flag, *v)
		}
	case *ErrorHandling:
		if v != nil {
			w.add(flag, string(*v))
		}
	case *int:
		if v != nil {
			w.add(flag, strconv.Itoa(*v))
		}
	case *float64:
		if v != nil {
			w.add(flag, strconv.FormatFloat(*v, 'f', -1, 64))
		}
	case []string:
		for _, item := range v {
			w.add(flag, item)
		}
	case map[string]string:
		for _, key := range slices.Sorted(maps.Keys(v)) {
			w.add(flag, key, v[key])
		}
	case inlineContent:
		if token := w.content(v.value, v.ext, false, false); token != "" {
			w.add(flag, token)
		}
	default:
		panic(fmt.Sprintf("wkhtmltopdf: unsupported option type %T for %s", value, flag))
	}
}

// writeUnit serializes one content unit with its marker, content and blocks.
func (w *argWriter) writeUnit(u Unit) {
	switch u := u.(type) {
	case *Page:
		if token := w.content(u.Content, "html", u.Literal, true); token != "" {
			w.add(token)
		}
		writeFlags(w, pageFlags, &u.Options)
		writeFlags(w, headerFlags, &u.Header)
		writeFlags(w, footerFlags, &u.Footer)
	case *Cover:
		w.add(coverMarker)
		if token := w.content(u.Content, "html", u.Literal, true); token != "" {
			w.add(token)
		}
		writeFlags(w, pageFlags, &u.Options)
	case *TableOfContents:
		w.add(tocMarker)
		writeFlags(w, tocFlags, &u.Options)
		writeFlags(w, headerFlags, &u.Header)
		writeFlags(w, footerFlags, &u.Footer)
	default:
		w.err = invalid(ErrNilUnit, "unsupported unit %T", u)
	}
}

// buildArgs serializes doc into wkhtmltopdf arguments ending with dest.
// Global options come first, then the default page options, then each
// unit in order. Inline content is materialized through ws.
func buildArgs(doc *Document, ws *workspace, dest string) ([]string, error) {
	w := &argWriter{ws: ws}

	writeFlags(w, globalFlags, &doc.Options)
	writeFlags(w, pageFlags, &doc.Page)
	for _, u := range doc.Units {
		if w.err != nil {
			break
		}
		w.writeUnit(u)
	}
	if w.err != nil {
		return nil, w.err
	}

	w.add(dest)
	return w.args, nil
}
