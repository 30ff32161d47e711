package steering

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/deps"
	"github.com/papapumpkin/steer/internal/framework"
)

// bullets collects list items in insertion order, dropping repeats.
type bullets struct {
	items []string
	seen  map[string]bool
}

func (b *bullets) add(format string, args ...any) {
	item := fmt.Sprintf(format, args...)
	if b.seen == nil {
		b.seen = map[string]bool{}
	}
	if b.seen[item] {
		return
	}
	b.seen[item] = true
	b.items = append(b.items, item)
}

func (b *bullets) writeTo(sb *strings.Builder) {
	for _, it := range b.items {
		fmt.Fprintf(sb, "- %s\n", it)
	}
}

// section writes a level-two heading and its items, or nothing when empty.
func section(sb *strings.Builder, title string, b *bullets) {
	if len(b.items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	b.writeTo(sb)
	sb.WriteString("\n")
}

// runtimeLines lists the language and runtime per framework.
var runtimeLines = map[framework.ID][]string{
	framework.NextJS:  {"**UI Library**: React 19", "**Language**: TypeScript 5", "**Runtime**: Node.js 20+"},
	framework.React:   {"**UI Library**: React 19", "**Language**: TypeScript 5", "**Runtime**: Node.js 20+"},
	framework.Vue:     {"**UI Library**: Vue 3 (Composition API)", "**Language**: TypeScript 5", "**Runtime**: Node.js 20+"},
	framework.Nuxt:    {"**UI Library**: Vue 3 (Composition API)", "**Language**: TypeScript 5", "**Runtime**: Node.js 20+"},
	framework.Laravel: {"**Language**: PHP 8.2+", "**Runtime**: PHP-FPM / Laravel Octane"},
}

// keyLibraries maps well-known package names to their Key Libraries line.
var keyLibraries = []struct {
	name string
	line string
}{
	{"zod", "**Validation**: Zod (schema validation)"},
	{"react-hook-form", "**Forms**: React Hook Form"},
	{"vee-validate", "**Forms**: VeeValidate"},
	{"zustand", "**State Management**: Zustand"},
	{"jotai", "**State Management**: Jotai (atomic)"},
	{"@reduxjs/toolkit", "**State Management**: Redux Toolkit"},
	{"pinia", "**State Management**: Pinia"},
	{"@tanstack/react-query", "**Data Fetching**: TanStack Query"},
	{"@tanstack/vue-query", "**Data Fetching**: TanStack Query"},
	{"swr", "**Data Fetching**: SWR"},
	{"date-fns", "**Date Utilities**: date-fns"},
	{"dayjs", "**Date Utilities**: Day.js"},
}

// devCommands are the conventional scripts described in Development Commands.
var devCommands = []struct {
	name    string
	comment string
}{
	{"dev", "Start development server"},
	{"build", "Build for production"},
	{"start", "Start production server"},
	{"lint", "Run linter"},
	{"test", "Run tests"},
}

func renderTech(a *analysis.ProjectAnalysis) string {
	var sb strings.Builder
	sb.WriteString("# Technology Stack\n\n")
	sb.WriteString("This document defines the technology choices for this project. ")
	sb.WriteString("Use these technologies when generating code and suggestions.\n\n")

	id := a.Framework.Name
	set := a.Dependencies

	var runtime bullets
	runtime.add("**Framework**: %s", frameworkLabel(a))
	for _, l := range runtimeLines[id] {
		runtime.add("%s", l)
	}
	if a.Framework.Version != "" {
		runtime.add("**Version**: %s", a.Framework.Version)
	}
	section(&sb, "Framework & Runtime", &runtime)

	var db bullets
	for _, d := range set[deps.Database] {
		lower := strings.ToLower(d.Name)
		switch {
		case strings.Contains(lower, "supabase"):
			db.add("**Database**: Supabase (PostgreSQL)")
			db.add("**Auth**: Supabase Auth")
			db.add("**Storage**: Supabase Storage")
		case strings.Contains(lower, "prisma"):
			db.add("**ORM**: Prisma")
		case strings.Contains(lower, "drizzle"):
			db.add("**ORM**: Drizzle ORM")
		case d.Purpose != "":
			db.add("%s", d.Purpose)
		default:
			db.add("%s", d.Name)
		}
	}
	section(&sb, "Database & Backend", &db)

	ui, hasTailwind := uiBullets(set)
	section(&sb, "UI & Styling", &ui)

	libs := keyLibraryBullets(set)
	section(&sb, "Key Libraries", &libs)

	if len(a.Scripts) > 0 {
		writeCommands(&sb, a)
	}

	if len(a.EnvVars) > 0 {
		envFile := ".env.local"
		if id == framework.Laravel {
			envFile = ".env"
		}
		sb.WriteString("## Environment Variables\n\n")
		fmt.Fprintf(&sb, "Required environment variables (`%s`):\n\n", envFile)
		sb.WriteString("| Variable | Description |\n")
		sb.WriteString("|----------|-------------|\n")
		for _, v := range a.EnvVars {
			fmt.Fprintf(&sb, "| `%s` | %s |\n", v, deps.DescribeEnvVar(v))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Technical Constraints\n\n")
	sb.WriteString("When generating code, follow these constraints:\n\n")
	constraints := constraintBullets(a, hasTailwind)
	constraints.writeTo(&sb)
	return sb.String()
}

func uiBullets(set deps.Set) (bullets, bool) {
	var b bullets
	hasTailwind, radix := false, 0
	for _, d := range set[deps.UI] {
		if strings.Contains(strings.ToLower(d.Name), "tailwind") {
			hasTailwind = true
		}
		if strings.HasPrefix(d.Name, "@radix-ui/") {
			radix++
		}
	}
	if hasTailwind {
		b.add("**CSS Framework**: Tailwind CSS (utility-first)")
	}
	switch {
	case radix > 5 && hasTailwind:
		b.add("**Component Library**: shadcn/ui (built on Radix UI)")
	case radix > 0:
		b.add("**UI Primitives**: Radix UI")
	}
	for _, d := range set[deps.UI] {
		lower := strings.ToLower(d.Name)
		switch {
		case strings.Contains(lower, "tailwind"), strings.HasPrefix(d.Name, "@radix-ui/"):
		case d.Name == "lucide-react":
			b.add("**Icons**: Lucide React")
		case strings.HasPrefix(d.Name, "@heroicons/"):
			b.add("**Icons**: Heroicons")
		case d.Name == "geist":
			b.add("**Font**: Geist font family")
		case d.Purpose != "":
			b.add("%s", d.Purpose)
		}
	}
	if _, ok := set.Lookup("geist"); ok {
		b.add("**Font**: Geist font family")
	}
	return b, hasTailwind
}

func keyLibraryBullets(set deps.Set) bullets {
	var b bullets
	for _, k := range keyLibraries {
		if _, ok := set.Lookup(k.name); ok {
			b.add("%s", k.line)
		}
	}
	for _, d := range set[deps.Charts] {
		b.add("**Charts**: %s", d.Name)
	}
	for _, d := range set[deps.Notifications] {
		if d.Name == "sonner" {
			b.add("**Notifications**: Sonner (toast)")
		} else {
			b.add("**Notifications**: %s", d.Name)
		}
	}
	for _, d := range set[deps.Theme] {
		if d.Name == "next-themes" {
			b.add("**Theming**: next-themes")
		} else {
			b.add("**Theming**: %s", d.Name)
		}
	}
	for _, c := range []deps.Category{deps.Auth, deps.Payments, deps.AI, deps.Email, deps.Testing} {
		for _, d := range set[c] {
			label := d.Purpose
			if label == "" {
				label = d.Name
			}
			b.add("**%s**: %s", c, label)
		}
	}
	return b
}

func writeCommands(sb *strings.Builder, a *analysis.ProjectAnalysis) {
	runner := "npm run"
	if a.Framework.Name == framework.Laravel && !a.Dependencies.Has(deps.BuildTools, "vite") {
		runner = "composer run"
	}

	sb.WriteString("## Development Commands\n\n")
	sb.WriteString("```bash\n")
	described := map[string]bool{}
	for _, c := range devCommands {
		if _, ok := a.Scripts[c.name]; ok {
			fmt.Fprintf(sb, "%-17s # %s\n", runner+" "+c.name, c.comment)
			described[c.name] = true
		}
	}
	for _, name := range a.ScriptNames() {
		if !described[name] {
			fmt.Fprintf(sb, "%s %s\n", runner, name)
		}
	}
	sb.WriteString("```\n\n")
}

func constraintBullets(a *analysis.ProjectAnalysis, hasTailwind bool) bullets {
	var b bullets
	switch a.Framework.Name {
	case framework.NextJS:
		if a.Framework.Variant == framework.VariantPagesRouter {
			b.add("Use `getServerSideProps`/`getStaticProps` for data loading in pages")
		} else {
			b.add("Use Server Components by default, Client Components only when needed")
			b.add("Prefer Server Actions for mutations")
		}
		b.add("Use `next/image` for images, `next/link` for navigation")
	case framework.Nuxt:
		b.add("Rely on auto-imported components and composables")
		b.add("Put server endpoints under `server/api/`")
	case framework.Vue:
		b.add("Use the Composition API with `<script setup>`")
	case framework.React:
		b.add("Use function components and hooks")
	case framework.Laravel:
		b.add("Use Eloquent models for database access")
		b.add("Validate requests with Form Requests")
		b.add("Follow PSR-12 coding style")
	}
	if hasTailwind {
		b.add("Use Tailwind CSS classes, avoid inline styles")
	}
	if _, ok := a.Dependencies.Lookup("typescript"); ok || (a.Framework.Known() && a.Framework.Name != framework.Laravel) {
		b.add("Follow TypeScript strict mode")
	}
	if len(b.items) == 0 {
		b.add("Follow the conventions already present in the codebase")
	}
	return b
}
