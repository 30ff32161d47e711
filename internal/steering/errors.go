package steering

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for rendering and custom document construction.
var (
	// ErrUnsupportedFormat indicates an output format outside the closed set.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrInvalidInclusion indicates an unknown inclusion mode or a missing or
	// malformed fileMatch pattern.
	ErrInvalidInclusion = errors.New("invalid inclusion policy")
	// ErrUnknownTemplate indicates a template kind outside the catalogue.
	ErrUnknownTemplate = errors.New("unknown steering template")
	// ErrInvalidFilename indicates a custom document name that is empty or
	// would escape the steering directory.
	ErrInvalidFilename = errors.New("invalid steering filename")
)

// UnsupportedFormatError records the rejected format. It matches
// ErrUnsupportedFormat with errors.Is.
type UnsupportedFormatError struct {
	Format string
}

// Error lists the accepted formats alongside the rejected one.
func (e *UnsupportedFormatError) Error() string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f.id))
	}
	return fmt.Sprintf("%s %q (supported: %s)", ErrUnsupportedFormat, e.Format, strings.Join(names, ", "))
}

// Unwrap returns ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}
