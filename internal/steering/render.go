// Package steering renders a project analysis into the steering documents
// each supported assistant reads, and builds custom and template documents.
package steering

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/framework"
)

// combinedSeparator joins documents in single-file formats.
const combinedSeparator = "\n\n---\n\n"

// part is one foundational document. include reports whether it has
// anything to say; nil means always.
type part struct {
	name    string
	render  func(*analysis.ProjectAnalysis) string
	include func(*analysis.ProjectAnalysis) bool
}

var parts = []part{
	{name: "product.md", render: renderProduct},
	{name: "tech.md", render: renderTech},
	{name: "structure.md", render: renderStructure},
	{name: "business-rules.md", render: renderBusinessRules, include: hasBusinessRules},
}

// Render produces the documents for format. It is a pure function of its
// inputs: the same analysis and format always yield identical documents. A
// nil analysis renders as an unrecognized, empty project.
func Render(a *analysis.ProjectAnalysis, format Format) ([]Document, error) {
	spec, ok := lookupFormat(format)
	if !ok {
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
	if a == nil {
		a = &analysis.ProjectAnalysis{}
	}

	type rendered struct{ name, body string }
	var bodies []rendered
	for _, p := range parts {
		if p.include != nil && !p.include(a) {
			continue
		}
		bodies = append(bodies, rendered{p.name, p.render(a)})
	}

	if spec.multiple {
		docs := make([]Document, 0, len(bodies))
		for _, b := range bodies {
			docs = append(docs, Document{
				Path:        spec.dir + b.name,
				Body:        b.body,
				FrontMatter: frontMatterFor(spec, a),
			})
		}
		return docs, nil
	}

	texts := make([]string, len(bodies))
	for i, b := range bodies {
		texts[i] = strings.TrimRight(b.body, "\n")
	}
	return []Document{{
		Path:        spec.dir + spec.filename,
		Body:        strings.Join(texts, combinedSeparator) + "\n",
		FrontMatter: frontMatterFor(spec, a),
	}}, nil
}

func frontMatterFor(spec formatSpec, a *analysis.ProjectAnalysis) *FrontMatter {
	switch spec.frontMatter {
	case inclusionFrontMatter:
		return NewInclusionFrontMatter(Always())
	case cursorFrontMatter:
		return &FrontMatter{
			Description: fmt.Sprintf("Steering rules for %s project", frameworkLabel(a)),
			AlwaysApply: true,
		}
	}
	return nil
}

// frameworkLabel is the display name, derived from the detection result
// when the analysis does not carry one.
func frameworkLabel(a *analysis.ProjectAnalysis) string {
	if a.FrameworkName != "" {
		return a.FrameworkName
	}
	return framework.DisplayName(a.Framework)
}
