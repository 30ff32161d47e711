package entity

import (
	"regexp"
	"strings"

	"github.com/papapumpkin/steer/internal/scan"
)

// Readme is the product summary extracted from a project README.
type Readme struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// Empty reports whether nothing was extracted.
func (r Readme) Empty() bool {
	return r.Title == "" && r.Description == "" && len(r.Features) == 0
}

var readmeNames = []string{"README.md", "readme.md", "Readme.md", "README.markdown", "README"}

const maxFeatures = 10

var (
	featureHeading = regexp.MustCompile(`(?i)^#{2,3}\s+.*\bfeatures\b`)
	bulletLine     = regexp.MustCompile(`^\s*[-*+]\s+(.+)$`)
	mdLink         = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
)

// ParseReadme extracts the title, first descriptive paragraph and feature
// bullets from the first README found at the project root.
func ParseReadme(res *scan.Result) Readme {
	for _, name := range readmeNames {
		if c := res.Content(name); c != "" {
			return parseReadme(c)
		}
	}
	return Readme{}
}

func parseReadme(src string) Readme {
	var r Readme
	var para []string
	inFence, inFeatures, descDone := false, false, false

	for _, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if len(para) > 0 {
				descDone = true
			}
			if r.Title == "" && strings.HasPrefix(line, "# ") {
				r.Title = cleanMarkdown(strings.TrimPrefix(line, "# "))
				continue
			}
			inFeatures = featureHeading.MatchString(line)
			continue
		}

		if inFeatures {
			if m := bulletLine.FindStringSubmatch(raw); m != nil && len(r.Features) < maxFeatures {
				r.Features = append(r.Features, cleanMarkdown(m[1]))
			}
			continue
		}

		if descDone {
			continue
		}
		switch {
		case line == "":
			if len(para) > 0 {
				descDone = true
			}
		case strings.HasPrefix(line, "![") || strings.HasPrefix(line, "[![") ||
			strings.HasPrefix(line, "<") || strings.HasPrefix(line, ">") ||
			strings.HasPrefix(line, "|") || bulletLine.MatchString(raw):
			if len(para) > 0 {
				descDone = true
			}
		default:
			para = append(para, line)
		}
	}
	r.Description = cleanMarkdown(strings.Join(para, " "))
	return r
}

func cleanMarkdown(s string) string {
	s = mdLink.ReplaceAllString(s, "$1")
	s = strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
	return strings.TrimSpace(s)
}
