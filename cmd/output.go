package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/papapumpkin/steer/internal/steering"
)

// writeDocuments saves docs under dir, creating parent directories. It
// returns the absolute paths written, in order.
func writeDocuments(dir string, docs []steering.Document) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	written := make([]string, 0, len(docs))
	for _, d := range docs {
		text, err := d.Text()
		if err != nil {
			return written, fmt.Errorf("render %s: %w", d.Path, err)
		}
		target := filepath.Join(abs, filepath.FromSlash(d.Path))
		if !strings.HasPrefix(target, abs+string(filepath.Separator)) {
			return written, fmt.Errorf("document path %q escapes %s", d.Path, abs)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fmt.Errorf("create directory for %s: %w", d.Path, err)
		}
		if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", d.Path, err)
		}
		written = append(written, target)
	}
	return written, nil
}

// printDocuments writes docs to w. With more than one document each is
// preceded by a "==> path <==" header.
func printDocuments(w io.Writer, docs []steering.Document) error {
	for i, d := range docs {
		text, err := d.Text()
		if err != nil {
			return fmt.Errorf("render %s: %w", d.Path, err)
		}
		if len(docs) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", d.Path)
		}
		fmt.Fprint(w, text)
	}
	return nil
}

// documentsOutput is the --json shape for rendered documents.
type documentsOutput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func toDocumentsOutput(docs []steering.Document) ([]documentsOutput, error) {
	out := make([]documentsOutput, 0, len(docs))
	for _, d := range docs {
		text, err := d.Text()
		if err != nil {
			return nil, err
		}
		out = append(out, documentsOutput{Path: d.Path, Content: text})
	}
	return out, nil
}
