package steering

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/steer/internal/analysis"
)

// Document caps.
const (
	maxProductEntities  = 6
	maxBusinessEntities = 5
	maxBusinessFields   = 10
	maxFieldTypeLen     = 30
)

func renderProduct(a *analysis.ProjectAnalysis) string {
	var sb strings.Builder
	sb.WriteString("# Product Overview\n\n")

	r := a.Readme
	// Titles mentioning deploy come from deploy-button badges.
	if r.Title != "" && !strings.Contains(strings.ToLower(r.Title), "deploy") {
		fmt.Fprintf(&sb, "%s\n\n", r.Title)
	}
	if r.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", r.Description)
	}
	if r.Title == "" && r.Description == "" {
		fmt.Fprintf(&sb, "%s\n\n", summaryLine(a))
	}

	if len(r.Features) > 0 {
		sb.WriteString("## Features\n\n")
		for _, f := range r.Features {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
		sb.WriteString("\n")
	}

	if len(a.Entities) > 0 {
		sb.WriteString("## Core Entities\n\n")
		for i, e := range a.Entities {
			if i == maxProductEntities {
				break
			}
			if e.Description != "" {
				fmt.Fprintf(&sb, "- **%s**: %s\n", e.Name, e.Description)
			} else {
				fmt.Fprintf(&sb, "- **%s**\n", e.Name)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func summaryLine(a *analysis.ProjectAnalysis) string {
	name := a.Name
	if name == "" {
		name = "This project"
	}
	if !a.Framework.Known() {
		return name + " is a software project."
	}
	return fmt.Sprintf("%s is a %s project.", name, frameworkLabel(a))
}

// hasBusinessRules reports whether a business rules document has content.
func hasBusinessRules(a *analysis.ProjectAnalysis) bool {
	return len(a.Entities) > 0 || len(a.StatusEnums) > 0
}

func renderBusinessRules(a *analysis.ProjectAnalysis) string {
	var sb strings.Builder
	sb.WriteString("# Business Rules\n\n")

	if len(a.StatusEnums) > 0 {
		sb.WriteString("## Status Values\n\n")
		for _, e := range a.StatusEnums {
			fmt.Fprintf(&sb, "### %s\n", e.Name)
			for _, v := range e.Values {
				fmt.Fprintf(&sb, "- `%s`\n", v)
			}
			sb.WriteString("\n")
		}
	}

	if len(a.Entities) > 0 {
		sb.WriteString("## Data Entities\n\n")
		for i, e := range a.Entities {
			if i == maxBusinessEntities {
				break
			}
			if len(e.Fields) == 0 {
				continue
			}
			fmt.Fprintf(&sb, "### %s\n\n", e.Name)
			sb.WriteString("| Field | Type | Required |\n")
			sb.WriteString("|-------|------|----------|\n")
			for j, f := range e.Fields {
				if j == maxBusinessFields {
					break
				}
				required := "Yes"
				if f.Optional {
					required = "No"
				}
				fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", f.Name, fieldType(f.Type), required)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// fieldType keeps the first line of a type, cut to a table-friendly width.
func fieldType(t string) string {
	t, _, _ = strings.Cut(t, "\n")
	if r := []rune(t); len(r) > maxFieldTypeLen {
		t = string(r[:maxFieldTypeLen])
	}
	return strings.TrimSpace(t)
}
