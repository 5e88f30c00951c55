package wkhtmltopdf

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// copyBufferSize is the chunk size used when streaming the PDF to a writer.
const copyBufferSize = 32 * 1024

// Output lists where the PDF goes. Any non-empty combination is allowed.
//
// When Path is set, wkhtmltopdf writes there directly and the file is kept.
// Otherwise the PDF is produced in a temp file that is removed once Writer
// and Callback have been served.
type Output struct {
	Path     string
	Writer   io.Writer
	Callback func(doc *Document, pdf []byte) error
}

// ToFile returns an Output that writes the PDF to path.
func ToFile(path string) Output {
	return Output{Path: path}
}

// ToWriter returns an Output that streams the PDF to w.
func ToWriter(w io.Writer) Output {
	return Output{Writer: w}
}

// ToCallback returns an Output that hands the PDF bytes to fn.
func ToCallback(fn func(doc *Document, pdf []byte) error) Output {
	return Output{Callback: fn}
}

func (o Output) validate() error {
	if o.Path == "" && o.Writer == nil && o.Callback == nil {
		return invalid(ErrNoOutput, "set a path, a writer or a callback")
	}
	return nil
}

// deliver serves the writer and callback sinks from the file at path.
// Each sink is attempted; any failure fails the conversion.
func deliver(doc *Document, path string, out Output) error {
	var errs []error

	if out.Writer != nil {
		if err := copyToWriter(path, out.Writer); err != nil {
			errs = append(errs, err)
		}
	}

	if out.Callback != nil {
		data, err := os.ReadFile(path) // #nosec G304 -- path is the destination chosen by Convert
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: reading %s: %w", ErrDeliver, path, err))
		} else if err := out.Callback(doc, data); err != nil {
			errs = append(errs, fmt.Errorf("%w: callback: %w", ErrDeliver, err))
		}
	}

	return errors.Join(errs...)
}

func copyToWriter(path string, w io.Writer) error {
	f, err := os.Open(path) // #nosec G304 -- path is the destination chosen by Convert
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", ErrDeliver, path, err)
	}
	defer f.Close()

	buf := make([]byte, copyBufferSize)
	// Hide WriterTo so the copy goes through buf in bounded chunks.
	if _, err := io.CopyBuffer(w, struct{ io.Reader }{f}, buf); err != nil {
		return fmt.Errorf("%w: streaming: %w", ErrDeliver, err)
	}
	return nil
}
