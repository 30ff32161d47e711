package steering

import (
	"embed"
	"fmt"
	"strings"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/patterns"
)

//go:embed layouts/*.txt
var layoutFS embed.FS

// maxComponents caps the component list in the structure document.
const maxComponents = 20

// layoutFor returns the conventional directory layout for a framework, or
// the generic placeholder.
func layoutFor(info framework.Info) string {
	name := string(info.Name)
	if info.Name == framework.NextJS && info.Variant == framework.VariantPagesRouter {
		name = "nextjs-pages"
	}
	b, err := layoutFS.ReadFile("layouts/" + name + ".txt")
	if err != nil {
		b, _ = layoutFS.ReadFile("layouts/unknown.txt")
	}
	return string(b)
}

// structureSections are the pattern dimensions rendered under Architecture
// Patterns, with their headings.
var structureSections = []struct {
	dim   patterns.Dimension
	title string
}{
	{patterns.StateManagement, "State Management"},
	{patterns.ComponentPattern, "Component Patterns"},
	{patterns.APIPattern, "API Pattern"},
	{patterns.Styling, "Styling"},
	{patterns.RoutingStyle, "Routing"},
	{patterns.DataFetching, "Data Fetching"},
	{patterns.Authentication, "Authentication"},
	{patterns.NamingConvention, "Naming Conventions"},
}

func renderStructure(a *analysis.ProjectAnalysis) string {
	var sb strings.Builder
	sb.WriteString("# Project Structure\n\n")
	sb.WriteString("```\n")
	sb.WriteString(layoutFor(a.Framework))
	sb.WriteString("```\n\n")

	if a.Tree != "" {
		sb.WriteString("## Directory Layout\n\n")
		sb.WriteString("```\n")
		sb.WriteString(a.Tree)
		sb.WriteString("```\n\n")
	}

	if len(a.Patterns.Known()) > 0 {
		sb.WriteString("## Architecture Patterns\n\n")
		for _, s := range structureSections {
			v := a.Patterns[s.dim]
			if v == "" || v == patterns.UnknownValue {
				continue
			}
			fmt.Fprintf(&sb, "### %s\n- %s\n\n", s.title, v)
		}
	}

	if len(a.Components) > 0 {
		sb.WriteString("## Components\n\n")
		for i, c := range a.Components {
			if i == maxComponents {
				fmt.Fprintf(&sb, "- … and %d more\n", len(a.Components)-maxComponents)
				break
			}
			fmt.Fprintf(&sb, "- `%s`\n", c)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
