package steering

import (
	"fmt"
	"strings"
)

// customDir is where custom and template documents are placed.
const customDir = ".kiro/steering/"

// normalizeFilename validates a custom document name and appends .md when
// missing. The name must stay inside the steering directory.
func normalizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "", name == ".", name == "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidFilename, name)
	case strings.Contains(name, ".."):
		return "", fmt.Errorf("%w: %q contains ..", ErrInvalidFilename, name)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".md") {
		name += ".md"
	}
	return name, nil
}

// CreateCustom wraps caller content in inclusion front-matter. No analysis
// runs and the content is passed through verbatim, including any
// #[[file:<path>]] references.
func CreateCustom(filename, content, inclusion, pattern string) (Document, error) {
	name, err := normalizeFilename(filename)
	if err != nil {
		return Document{}, err
	}
	inc, err := ParseInclusion(inclusion, pattern)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Path:        customDir + name,
		Body:        content,
		FrontMatter: NewInclusionFrontMatter(inc),
	}, nil
}
