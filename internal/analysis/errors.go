package analysis

import (
	"errors"
	"fmt"
)

// ErrPartialParse is wrapped by every PartialParseWarning.
var ErrPartialParse = errors.New("partial parse")

// PartialParseWarning records an input that could not be fully parsed. It
// never aborts an analysis. Only the message of the underlying error is kept,
// so a warning decoded from the cache matches a fresh one.
type PartialParseWarning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func newWarning(path string, err error) *PartialParseWarning {
	return &PartialParseWarning{Path: path, Message: err.Error()}
}

func (w *PartialParseWarning) Error() string {
	return fmt.Sprintf("%s of %s: %s", ErrPartialParse, w.Path, w.Message)
}

func (w *PartialParseWarning) Unwrap() error {
	return ErrPartialParse
}
