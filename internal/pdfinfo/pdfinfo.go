// Package pdfinfo reads basic facts from produced PDF files.
package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// ErrInvalidPDF indicates the data could not be parsed as a PDF.
var ErrInvalidPDF = errors.New("invalid PDF")

// Info summarizes a PDF document.
type Info struct {
	Pages int
	Size  int64
}

// Inspect parses data and returns its page count and size.
func Inspect(data []byte) (info Info, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return Info{Pages: r.NumPage(), Size: int64(len(data))}, nil
}

// InspectFile reads the PDF at path and inspects it.
func InspectFile(path string) (Info, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the conversion output chosen by the caller
	if err != nil {
		return Info{}, err
	}
	return Inspect(data)
}
