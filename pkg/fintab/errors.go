package fintab

import (
	"errors"
	"fmt"

	"github.com/ukaji3/fintab-go/pkg/fintab/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates the input is neither a PDF nor an xlsx file.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ErrNoTable indicates no table-like region was found.
var ErrNoTable = errors.New("no table found")

// ErrPageOutOfRange indicates a PDF page number outside the document.
var ErrPageOutOfRange = parser.ErrPageOutOfRange

// ExtractionError represents an error during one extraction stage.
type ExtractionError struct {
	Source string
	Stage  string // "read", "detect", "build", "clean", "headers", "segment"
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in %q (%s): %v", e.Source, e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(source, stage string, err error) *ExtractionError {
	return &ExtractionError{
		Source: source,
		Stage:  stage,
		Err:    err,
	}
}
