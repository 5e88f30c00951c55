package wkhtmltopdf

import (
	"strings"
)

// Document is one conversion job: global options, default page options and
// an ordered list of content units. Convert never modifies it.
type Document struct {
	Options GlobalOptions
	Page    PageOptions
	Units   []Unit
}

// Unit is one section of the output PDF: *Page, *Cover or *TableOfContents.
type Unit interface {
	unit()
}

// Page is an ordinary page object.
//
// Content is a URL, an absolute file path or inline HTML. Literal forces
// inline treatment even when Content looks like a URL or a path.
type Page struct {
	Content string
	Literal bool
	Options PageOptions
	Header  HeaderFooterOptions
	Footer  HeaderFooterOptions
}

// Cover is a cover page. wkhtmltopdf renders covers without header or footer.
type Cover struct {
	Content string
	Literal bool
	Options PageOptions
}

// TableOfContents is a generated table of contents object.
type TableOfContents struct {
	Options TOCOptions
	Header  HeaderFooterOptions
	Footer  HeaderFooterOptions
}

func (*Page) unit()            {}
func (*Cover) unit()           {}
func (*TableOfContents) unit() {}

// NewDocument returns a Document with the given units.
func NewDocument(units ...Unit) *Document {
	return &Document{Units: units}
}

// Validate checks the invariants Convert relies on: at least one unit, no
// nil unit, non-empty content on every page and cover, and sane numeric
// global options. Errors wrap ErrValidation.
func (d *Document) Validate() error {
	if d == nil {
		return invalid(ErrNilDocument, "nothing to convert")
	}
	if len(d.Units) == 0 {
		return invalid(ErrNoUnits, "add at least one page")
	}

	for i, u := range d.Units {
		switch u := u.(type) {
		case *Page:
			if u == nil {
				return invalid(ErrNilUnit, "unit %d", i)
			}
			if isBlank(u.Content) {
				return invalid(ErrEmptyContent, "page at unit %d", i)
			}
			if err := u.Options.validate(); err != nil {
				return err
			}
		case *Cover:
			if u == nil {
				return invalid(ErrNilUnit, "unit %d", i)
			}
			if isBlank(u.Content) {
				return invalid(ErrEmptyContent, "cover at unit %d", i)
			}
			if err := u.Options.validate(); err != nil {
				return err
			}
		case *TableOfContents:
			if u == nil {
				return invalid(ErrNilUnit, "unit %d", i)
			}
		default:
			return invalid(ErrNilUnit, "unit %d", i)
		}
	}

	if err := d.Page.validate(); err != nil {
		return err
	}
	return d.Options.validate()
}

func (o *PageOptions) validate() error {
	if o.Zoom != nil && *o.Zoom <= 0 {
		return invalid(ErrInvalidOption, "zoom must be positive, got %g", *o.Zoom)
	}
	return nil
}

func (o *GlobalOptions) validate() error {
	if o.Copies != nil && *o.Copies < 1 {
		return invalid(ErrInvalidOption, "copies must be at least 1, got %d", *o.Copies)
	}
	if o.DPI != nil && *o.DPI <= 0 {
		return invalid(ErrInvalidOption, "dpi must be positive, got %d", *o.DPI)
	}
	if o.ImageQuality != nil && (*o.ImageQuality < 0 || *o.ImageQuality > 100) {
		return invalid(ErrInvalidOption, "image quality must be between 0 and 100, got %d", *o.ImageQuality)
	}
	if o.OutlineDepth != nil && *o.OutlineDepth < 0 {
		return invalid(ErrInvalidOption, "outline depth cannot be negative, got %d", *o.OutlineDepth)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
