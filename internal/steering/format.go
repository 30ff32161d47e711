package steering

import "strings"

// Format identifies one output target.
type Format string

// Supported output formats.
const (
	Kiro     Format = "kiro"
	Cursor   Format = "cursor"
	Copilot  Format = "copilot"
	Windsurf Format = "windsurf"
	Cline    Format = "cline"
	Aider    Format = "aider"
	Markdown Format = "markdown"
)

// frontMatterPolicy selects the header written above each document body.
type frontMatterPolicy int

const (
	noFrontMatter frontMatterPolicy = iota
	inclusionFrontMatter
	cursorFrontMatter
)

// formatSpec describes where one format's documents live and how they are
// wrapped.
type formatSpec struct {
	id          Format
	dir         string
	filename    string // empty for multi-file formats
	multiple    bool
	frontMatter frontMatterPolicy
	description string
}

func (s formatSpec) pathPattern() string {
	if s.multiple {
		return s.dir + "*.md"
	}
	return s.dir + s.filename
}

// formats is the closed set of output targets in catalogue order.
var formats = []formatSpec{
	{Kiro, ".kiro/steering/", "", true, inclusionFrontMatter, "Kiro IDE - Multiple .md files in .kiro/steering/"},
	{Cursor, ".cursor/rules/", "project.mdc", false, cursorFrontMatter, "Cursor IDE - .cursor/rules/*.mdc"},
	{Copilot, ".github/", "copilot-instructions.md", false, noFrontMatter, "GitHub Copilot - .github/copilot-instructions.md"},
	{Windsurf, "", ".windsurfrules", false, noFrontMatter, "Windsurf/Codeium - .windsurfrules in root"},
	{Cline, "", ".clinerules", false, noFrontMatter, "Cline - .clinerules in root"},
	{Aider, "", "CONVENTIONS.md", false, noFrontMatter, "Aider - CONVENTIONS.md"},
	{Markdown, "", "STEERING.md", false, noFrontMatter, "Generic markdown - Single STEERING.md file"},
}

func lookupFormat(f Format) (formatSpec, bool) {
	for _, s := range formats {
		if s.id == f {
			return s, true
		}
	}
	return formatSpec{}, false
}

// ParseFormat validates s against the supported formats. Matching ignores
// case and surrounding space.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := lookupFormat(f); !ok {
		return "", &UnsupportedFormatError{Format: s}
	}
	return f, nil
}

// Formats returns every supported format in catalogue order.
func Formats() []Format {
	out := make([]Format, len(formats))
	for i, s := range formats {
		out[i] = s.id
	}
	return out
}

// IDE describes one supported output target for listing.
type IDE struct {
	ID            Format `json:"id"`
	Description   string `json:"description"`
	PathPattern   string `json:"path"`
	MultipleFiles bool   `json:"multipleFiles"`
}

// SupportedIDEs returns the output targets in catalogue order.
func SupportedIDEs() []IDE {
	out := make([]IDE, len(formats))
	for i, s := range formats {
		out[i] = IDE{
			ID:            s.id,
			Description:   s.description,
			PathPattern:   s.pathPattern(),
			MultipleFiles: s.multiple,
		}
	}
	return out
}

// IDEPaths maps each format to the path pattern its documents are written to.
func IDEPaths() map[Format]string {
	out := make(map[Format]string, len(formats))
	for _, s := range formats {
		out[s.id] = s.pathPattern()
	}
	return out
}
