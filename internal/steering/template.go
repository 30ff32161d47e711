package steering

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.md
var templateFS embed.FS

// TemplateKind names one built-in steering template.
type TemplateKind string

// Built-in template kinds.
const (
	TemplateAPI        TemplateKind = "api"
	TemplateTesting    TemplateKind = "testing"
	TemplateSecurity   TemplateKind = "security"
	TemplateCodeStyle  TemplateKind = "code-style"
	TemplateDeployment TemplateKind = "deployment"
	TemplateComponents TemplateKind = "components"
)

type templateSpec struct {
	kind      TemplateKind
	inclusion Inclusion
}

var templates = []templateSpec{
	{TemplateAPI, mustFileMatch("**/api/**/*")},
	{TemplateTesting, mustFileMatch("**/*.{test,spec}.*")},
	{TemplateSecurity, Always()},
	{TemplateCodeStyle, Always()},
	{TemplateDeployment, Manual()},
	{TemplateComponents, mustFileMatch("**/components/**/*")},
}

// TemplateKinds returns the built-in kinds in catalogue order.
func TemplateKinds() []TemplateKind {
	out := make([]TemplateKind, len(templates))
	for i, t := range templates {
		out[i] = t.kind
	}
	return out
}

// Template returns the built-in document for kind, placed at
// .kiro/steering/<kind>.md with the kind's inclusion policy.
func Template(kind string) (Document, error) {
	k := TemplateKind(strings.ToLower(strings.TrimSpace(kind)))
	for _, t := range templates {
		if t.kind != k {
			continue
		}
		body, err := templateFS.ReadFile("templates/" + string(k) + ".md")
		if err != nil {
			return Document{}, fmt.Errorf("steering: read template %s: %w", k, err)
		}
		return Document{
			Path:        customDir + string(k) + ".md",
			Body:        string(body),
			FrontMatter: NewInclusionFrontMatter(t.inclusion),
		}, nil
	}
	return Document{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownTemplate, kind, joinKinds())
}

func joinKinds() string {
	kinds := TemplateKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
