package wkhtmltopdf

// PageSize names a paper size understood by wkhtmltopdf (--page-size).
type PageSize string

// Common page sizes.
const (
	PageSizeA3     PageSize = "A3"
	PageSizeA4     PageSize = "A4"
	PageSizeA5     PageSize = "A5"
	PageSizeB5     PageSize = "B5"
	PageSizeLetter PageSize = "Letter"
	PageSizeLegal  PageSize = "Legal"
)

// Orientation values emitted for --orientation.
const (
	OrientationPortrait  = "Portrait"
	OrientationLandscape = "Landscape"
)

// ErrorHandling is the policy for pages or media that fail to load.
type ErrorHandling string

// Load error handling policies.
const (
	ErrorHandlingAbort  ErrorHandling = "abort"
	ErrorHandlingIgnore ErrorHandling = "ignore"
	ErrorHandlingSkip   ErrorHandling = "skip"
)

// GlobalOptions holds document-wide settings. Margins are in millimetres.
// A nil field leaves the wkhtmltopdf default in place.
type GlobalOptions struct {
	Collate      *bool    `yaml:"collate,omitempty"`
	Copies       *int     `yaml:"copies,omitempty"`
	DPI          *int     `yaml:"dpi,omitempty"`
	Grayscale    *bool    `yaml:"grayscale,omitempty"`
	ImageDPI     *int     `yaml:"imageDpi,omitempty"`
	ImageQuality *int     `yaml:"imageQuality,omitempty"`
	LowQuality   *bool    `yaml:"lowQuality,omitempty"`
	MarginBottom *float64 `yaml:"marginBottom,omitempty"`
	MarginLeft   *float64 `yaml:"marginLeft,omitempty"`
	MarginRight  *float64 `yaml:"marginRight,omitempty"`
	MarginTop    *float64 `yaml:"marginTop,omitempty"`
	PageSize     *string  `yaml:"pageSize,omitempty"`
	PageHeight   *string  `yaml:"pageHeight,omitempty"`
	PageWidth    *string  `yaml:"pageWidth,omitempty"`
	Landscape    *bool    `yaml:"landscape,omitempty"`
	Compression  *bool    `yaml:"compression,omitempty"`
	Title        *string  `yaml:"title,omitempty"`
	Outline      *bool    `yaml:"outline,omitempty"`
	OutlineDepth *int     `yaml:"outlineDepth,omitempty"`
	DumpOutline  *string  `yaml:"dumpOutline,omitempty"`
	Quiet        *bool    `yaml:"quiet,omitempty"`
}

// PageOptions controls how a page (or cover) is loaded and rendered.
type PageOptions struct {
	Allow                   []string          `yaml:"allow,omitempty"`
	Background              *bool             `yaml:"background,omitempty"`
	BypassProxyFor          []string          `yaml:"bypassProxyFor,omitempty"`
	CacheDir                *string           `yaml:"cacheDir,omitempty"`
	Cookies                 map[string]string `yaml:"cookies,omitempty"`
	CustomHeaders           map[string]string `yaml:"customHeaders,omitempty"`
	CustomHeaderPropagation *bool             `yaml:"customHeaderPropagation,omitempty"`
	DebugJavascript         *bool             `yaml:"debugJavascript,omitempty"`
	DefaultHeader           *bool             `yaml:"defaultHeader,omitempty"`
	Encoding                *string           `yaml:"encoding,omitempty"`
	ExcludeFromOutline      *bool             `yaml:"excludeFromOutline,omitempty"`
	ExternalLinks           *bool             `yaml:"externalLinks,omitempty"`
	Forms                   *bool             `yaml:"forms,omitempty"`
	Images                  *bool             `yaml:"images,omitempty"`
	InternalLinks           *bool             `yaml:"internalLinks,omitempty"`
	Javascript              *bool             `yaml:"javascript,omitempty"`
	JavascriptDelay         *int              `yaml:"javascriptDelay,omitempty"`
	KeepRelativeLinks       *bool             `yaml:"keepRelativeLinks,omitempty"`
	LoadErrorHandling       *ErrorHandling    `yaml:"loadErrorHandling,omitempty"`
	LoadMediaErrorHandling  *ErrorHandling    `yaml:"loadMediaErrorHandling,omitempty"`
	LocalFileAccess         *bool             `yaml:"localFileAccess,omitempty"`
	MinimumFontSize         *int              `yaml:"minimumFontSize,omitempty"`
	PageOffset              *int              `yaml:"pageOffset,omitempty"`
	Password                *string           `yaml:"password,omitempty"`
	Plugins                 *bool             `yaml:"plugins,omitempty"`
	Post                    map[string]string `yaml:"post,omitempty"`
	PostFile                map[string]string `yaml:"postFile,omitempty"`
	PrintMediaType          *bool             `yaml:"printMediaType,omitempty"`
	Proxy                   *string           `yaml:"proxy,omitempty"`
	RunScript               []string          `yaml:"runScript,omitempty"`
	SmartShrinking          *bool             `yaml:"smartShrinking,omitempty"`
	StopSlowScripts         *bool             `yaml:"stopSlowScripts,omitempty"`
	TOCBackLinks            *bool             `yaml:"tocBackLinks,omitempty"`
	UserStyleSheet          *string           `yaml:"userStyleSheet,omitempty"`
	Username                *string           `yaml:"username,omitempty"`
	ViewportSize            *string           `yaml:"viewportSize,omitempty"`
	WindowStatus            *string           `yaml:"windowStatus,omitempty"`
	Zoom                    *float64          `yaml:"zoom,omitempty"`
}

// HeaderFooterOptions configures a page header or footer.
//
// HTML may be a URL, an absolute file path or inline markup; inline markup
// is written to a temp file. Replace maps [name] placeholders to values and
// is evaluated by wkhtmltopdf itself.
type HeaderFooterOptions struct {
	Left     *string           `yaml:"left,omitempty"`
	Center   *string           `yaml:"center,omitempty"`
	Right    *string           `yaml:"right,omitempty"`
	FontName *string           `yaml:"fontName,omitempty"`
	FontSize *int              `yaml:"fontSize,omitempty"`
	HTML     string            `yaml:"html,omitempty"`
	Line     *bool             `yaml:"line,omitempty"`
	Spacing  *float64          `yaml:"spacing,omitempty"`
	Replace  map[string]string `yaml:"replace,omitempty"`
}

// TOCOptions configures the generated table of contents.
// XSLStyleSheet is resolved like HTML content (URL, path or inline XSL).
type TOCOptions struct {
	DottedLines      *bool    `yaml:"dottedLines,omitempty"`
	HeaderText       *string  `yaml:"headerText,omitempty"`
	LevelIndentation *int     `yaml:"levelIndentation,omitempty"`
	Links            *bool    `yaml:"links,omitempty"`
	TextSizeShrink   *float64 `yaml:"textSizeShrink,omitempty"`
	XSLStyleSheet    string   `yaml:"xslStyleSheet,omitempty"`
}

// String returns a pointer to v, for optional fields.
func String(v string) *string { return &v }

// Int returns a pointer to v, for optional fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for optional fields.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for optional fields.
func Bool(v bool) *bool { return &v }

// Size returns a pointer to the page size name, for GlobalOptions.PageSize.
func Size(v PageSize) *string {
	s := string(v)
	return &s
}

// Handling returns a pointer to h, for the load error handling fields.
func Handling(h ErrorHandling) *ErrorHandling { return &h }
