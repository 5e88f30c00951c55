// Package markdown renders Markdown sources into standalone HTML documents
// that wkhtmltopdf can load as inline pages.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates goldmark failed to render the source.
var ErrRender = errors.New("markdown rendering failed")

// DefaultStyle is the chroma style used for fenced code blocks.
const DefaultStyle = "github"

// Highlight placeholders from the Unicode Private Use Area. They survive
// goldmark untouched and become <mark> tags afterwards.
const (
	markStart = "\uE000"
	markEnd   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)
	firstHeading       = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)
)

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; line-height: 1.4; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
pre { padding: 8px; page-break-inside: avoid; }
</style>
</head>
<body>
%s
</body>
</html>`

// Renderer converts Markdown to HTML with GFM extensions and inline-styled
// syntax highlighting. Safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	style string
}

// WithStyle selects the chroma style for code blocks.
func WithStyle(name string) Option {
	return func(c *config) {
		if name != "" {
			c.style = name
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	cfg := config{style: DefaultStyle}
	for _, opt := range opts {
		opt(&cfg)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.style),
				// wkhtmltopdf gets no external stylesheet, so colors are inlined.
				highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)
	return &Renderer{md: md}
}

// Render converts src into a complete HTML document. The title is the first
// level-one heading, or fallbackTitle when there is none.
func (r *Renderer) Render(ctx context.Context, src, fallbackTitle string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src = preprocess(src)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	body := strings.ReplaceAll(strings.ReplaceAll(buf.String(), markStart, "<mark>"), markEnd, "</mark>")
	return fmt.Sprintf(documentTemplate, html.EscapeString(Title(src, fallbackTitle)), body), nil
}

// Title returns the text of the first level-one ATX heading in src, or
// fallback.
func Title(src, fallback string) string {
	if m := firstHeading.FindStringSubmatch(src); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fallback
}

func preprocess(src string) string {
	src = crlfOrCR.ReplaceAllString(src, "\n")
	src = highlightPattern.ReplaceAllString(src, markStart+"$1"+markEnd)
	return multipleBlankLines.ReplaceAllString(src, "\n\n")
}
