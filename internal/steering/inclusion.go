package steering

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// InclusionMode controls when an assistant loads a steering document.
type InclusionMode string

// Inclusion modes.
const (
	InclusionAlways    InclusionMode = "always"
	InclusionFileMatch InclusionMode = "fileMatch"
	InclusionManual    InclusionMode = "manual"
)

// Inclusion is a validated inclusion policy. The zero value is not valid;
// build one with Always, FileMatch, Manual or ParseInclusion.
type Inclusion struct {
	mode    InclusionMode
	pattern string
}

// Always loads the document into every interaction.
func Always() Inclusion { return Inclusion{mode: InclusionAlways} }

// Manual loads the document only when referenced by name.
func Manual() Inclusion { return Inclusion{mode: InclusionManual} }

// FileMatch loads the document when a file matching pattern is in context.
func FileMatch(pattern string) (Inclusion, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return Inclusion{}, fmt.Errorf("%w: fileMatch requires a pattern", ErrInvalidInclusion)
	}
	if !doublestar.ValidatePattern(pattern) {
		return Inclusion{}, fmt.Errorf("%w: malformed glob %q", ErrInvalidInclusion, pattern)
	}
	return Inclusion{mode: InclusionFileMatch, pattern: pattern}, nil
}

// mustFileMatch is used for the built-in templates, whose patterns are
// constants.
func mustFileMatch(pattern string) Inclusion {
	inc, err := FileMatch(pattern)
	if err != nil {
		panic(err)
	}
	return inc
}

// ParseInclusion builds a policy from caller strings. An empty mode means
// always. The pattern is ignored for modes other than fileMatch.
func ParseInclusion(mode, pattern string) (Inclusion, error) {
	switch m := strings.TrimSpace(mode); {
	case m == "" || strings.EqualFold(m, string(InclusionAlways)):
		return Always(), nil
	case strings.EqualFold(m, string(InclusionManual)):
		return Manual(), nil
	case strings.EqualFold(m, string(InclusionFileMatch)):
		return FileMatch(pattern)
	default:
		return Inclusion{}, fmt.Errorf("%w: unknown mode %q (want always, fileMatch or manual)", ErrInvalidInclusion, mode)
	}
}

// Mode returns the inclusion mode.
func (i Inclusion) Mode() InclusionMode { return i.mode }

// Pattern returns the fileMatch glob, or "" for other modes.
func (i Inclusion) Pattern() string { return i.pattern }

func (i Inclusion) valid() bool {
	switch i.mode {
	case InclusionAlways, InclusionManual:
		return true
	case InclusionFileMatch:
		return i.pattern != ""
	}
	return false
}
