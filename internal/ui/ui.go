// Package ui prints human-readable summaries for the CLI. Documents and JSON
// go to stdout through other paths; everything here is for people.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/patterns"
	"github.com/papapumpkin/steer/internal/steering"
)

// Printer writes styled output to one writer.
type Printer struct {
	w io.Writer
	s styles
}

// New returns a printer for w. Color is used only when w is a terminal.
func New(w io.Writer) *Printer {
	return &Printer{w: w, s: newStyles(lipgloss.NewRenderer(w))}
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) row(label, value string) {
	p.line("%s%s", p.s.label.Render(label), p.s.value.Render(value))
}

// Framework prints one detection result.
func (p *Printer) Framework(info framework.Info) {
	p.row("Framework", framework.DisplayName(info))
	p.row("Confidence", string(info.Confidence))
	if info.Evidence != "" {
		p.row("Evidence", info.Evidence)
	}
}

// Analysis prints a summary card for a.
func (p *Printer) Analysis(a *analysis.ProjectAnalysis) {
	var card strings.Builder
	fmt.Fprintf(&card, "%s\n", p.s.title.Render(a.Name))
	fmt.Fprintf(&card, "%s", p.s.muted.Render(a.Root))
	p.line("%s", p.s.box.Render(card.String()))

	p.Framework(a.Framework)
	if a.Stats.Strategy != "" {
		p.row("Scan", fmt.Sprintf("%d files (%d loaded, %d skipped) via %s",
			a.Stats.FilesScanned, a.Stats.FilesLoaded, a.Stats.Skipped, a.Stats.Strategy))
	}

	if cats := a.Dependencies.Categories(); len(cats) > 0 {
		p.line("%s", p.s.heading.Render(fmt.Sprintf("Dependencies (%d)", a.Dependencies.Len())))
		for _, c := range cats {
			names := make([]string, 0, len(a.Dependencies[c]))
			for _, d := range a.Dependencies[c] {
				names = append(names, d.Name)
			}
			p.row(string(c), strings.Join(names, ", "))
		}
	}

	if names := a.ScriptNames(); len(names) > 0 {
		p.line("%s", p.s.heading.Render("Scripts"))
		p.line("%s", strings.Join(names, ", "))
	}
	if len(a.EnvVars) > 0 {
		p.line("%s", p.s.heading.Render("Environment"))
		p.line("%s", strings.Join(a.EnvVars, ", "))
	}

	if a.Deep() {
		if known := a.Patterns.Known(); len(known) > 0 {
			p.line("%s", p.s.heading.Render("Patterns"))
			for _, d := range known {
				p.row(patterns.Label(d), a.Patterns[d])
			}
		}
		if len(a.Entities) > 0 || len(a.StatusEnums) > 0 {
			p.line("%s", p.s.heading.Render("Entities"))
			for _, e := range a.Entities {
				p.line("%s %s %s", iconItem, e.Name, p.s.muted.Render(fmt.Sprintf("(%s, %d fields)", e.SourceFile, len(e.Fields))))
			}
			for _, e := range a.StatusEnums {
				p.line("%s %s %s", iconItem, e.Name, p.s.muted.Render(strings.Join(e.Values, " | ")))
			}
		}
	}

	for _, d := range a.Diagnostics {
		p.Warn(d.Error())
	}
}

// Documents lists rendered documents. written marks them as saved under dir.
func (p *Printer) Documents(docs []steering.Document, dir string, written bool) {
	for _, d := range docs {
		if written {
			p.line("%s %s", p.s.success.Render(iconDone), d.Path)
		} else {
			p.line("%s %s", iconItem, d.Path)
		}
	}
	if written {
		p.line("%s", p.s.muted.Render(fmt.Sprintf("%d file(s) written to %s", len(docs), dir)))
	}
}

// Frameworks lists the supported frameworks, then the dependency manifests
// read regardless of framework.
func (p *Printer) Frameworks(list []framework.Descriptor, manifests []string) {
	for _, d := range list {
		p.line("%s %s", p.s.value.Width(10).Render(string(d.ID)), d.Name)
		p.line("%s", p.s.muted.Render("  "+strings.Join(d.Signatures, ", ")))
	}
	if len(manifests) > 0 {
		p.line("%s", p.s.heading.Render("Dependency manifests"))
		p.line("%s", p.s.muted.Render("  "+strings.Join(manifests, ", ")))
	}
}

// IDEs lists the supported output targets.
func (p *Printer) IDEs(list []steering.IDE) {
	for _, ide := range list {
		p.line("%s %s", p.s.value.Width(10).Render(string(ide.ID)), ide.PathPattern)
		p.line("%s", p.s.muted.Render("  "+ide.Description))
	}
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	p.line("%s %s", p.s.warn.Render(iconWarn), msg)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	p.line("%s %s", p.s.danger.Render(iconFail+" error:"), msg)
}
