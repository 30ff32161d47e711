package steering

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/entity"
	"github.com/papapumpkin/steer/internal/scan"
)

func nextAnalysis(t *testing.T) *analysis.ProjectAnalysis {
	t.Helper()
	res := scan.FromContents("/work/shop", map[string]string{
		"package.json": `{
			"name": "shop",
			"scripts": {"dev": "next dev", "build": "next build", "typecheck": "tsc --noEmit"},
			"dependencies": {
				"next": "^15.0.0", "react": "19.0.0", "tailwindcss": "4.0.0",
				"@supabase/supabase-js": "2.0.0", "zod": "3.23.0", "zustand": "4.5.0",
				"lucide-react": "0.400.0", "sonner": "1.5.0"
			}
		}`,
		".env.example":        "DATABASE_URL=\nSTRIPE_SECRET_KEY=\n",
		"app/page.tsx":        `export default function Home() { return <div className="p-4" /> }`,
		"components/Cart.tsx": `export function Cart() { return null }`,
		"README.md":           "# Shop\n\nAn online store.\n\n## Features\n\n- Checkout\n- Wishlists\n",
		"lib/types.ts":        "/** A customer account. */\nexport interface User {\n  id: string\n  email?: string\n}\nexport type OrderStatus = 'pending' | 'paid' | 'shipped'\n",
	})
	return analysis.Build(res, analysis.Deep)
}

func TestRenderKiro(t *testing.T) {
	t.Parallel()

	docs, err := Render(nextAnalysis(t), Kiro)
	require.NoError(t, err)

	var paths []string
	for _, d := range docs {
		paths = append(paths, d.Path)
		require.NotNil(t, d.FrontMatter)
		assert.True(t, strings.HasPrefix(d.String(), "---\ninclusion: always\n---\n\n# "), d.Path)
	}
	assert.Equal(t, []string{
		".kiro/steering/product.md",
		".kiro/steering/tech.md",
		".kiro/steering/structure.md",
		".kiro/steering/business-rules.md",
	}, paths)
}

func TestRenderKiroOmitsEmptyBusinessRules(t *testing.T) {
	t.Parallel()

	a := &analysis.ProjectAnalysis{Name: "bare"}
	docs, err := Render(a, Kiro)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for _, d := range docs {
		assert.NotEqual(t, ".kiro/steering/business-rules.md", d.Path)
	}
}

func TestRenderTechContent(t *testing.T) {
	t.Parallel()

	tech := renderTech(nextAnalysis(t))
	for _, want := range []string{
		"- **Framework**: Next.js 15 (App Router)",
		"- **Version**: 15.0.0",
		"## Database & Backend\n\n- **Database**: Supabase (PostgreSQL)\n- **Auth**: Supabase Auth\n- **Storage**: Supabase Storage\n",
		"- **CSS Framework**: Tailwind CSS (utility-first)",
		"- **Icons**: Lucide React",
		"- **Validation**: Zod (schema validation)",
		"- **State Management**: Zustand",
		"- **Notifications**: Sonner (toast)",
		"npm run dev       # Start development server\n",
		"npm run build     # Build for production\n",
		"npm run typecheck\n",
		"| `DATABASE_URL` | Database connection string |",
		"- Prefer Server Actions for mutations",
		"- Use Tailwind CSS classes, avoid inline styles",
		"- Follow TypeScript strict mode",
	} {
		assert.Contains(t, tech, want)
	}
	assert.NotContains(t, tech, "npm run start")
}

func TestRenderProductAndBusinessRules(t *testing.T) {
	t.Parallel()

	a := nextAnalysis(t)
	product := renderProduct(a)
	assert.Contains(t, product, "# Product Overview\n\nShop\n\nAn online store.\n\n## Features\n\n- Checkout\n- Wishlists\n")
	assert.Contains(t, product, "- **User**: A customer account.")

	rules := renderBusinessRules(a)
	assert.Contains(t, rules, "### OrderStatus\n- `pending`\n- `paid`\n- `shipped`\n")
	assert.Contains(t, rules, "| id | `string` | Yes |")
	assert.Contains(t, rules, "| email | `string` | No |")
}

func TestRenderProductSkipsDeployTitle(t *testing.T) {
	t.Parallel()

	a := &analysis.ProjectAnalysis{Readme: entity.Readme{Title: "Deploy to Vercel", Description: "A store."}}
	out := renderProduct(a)
	assert.NotContains(t, out, "Deploy")
	assert.Contains(t, out, "A store.")
}

func TestBusinessRulesCaps(t *testing.T) {
	t.Parallel()

	var ents []entity.Entity
	for i := 0; i < 7; i++ {
		e := entity.Entity{Name: fmt.Sprintf("E%d", i)}
		for j := 0; j < 12; j++ {
			e.Fields = append(e.Fields, entity.Field{Name: fmt.Sprintf("f%d", j), Type: strings.Repeat("x", 40) + "\nmore"})
		}
		ents = append(ents, e)
	}
	out := renderBusinessRules(&analysis.ProjectAnalysis{Entities: ents})

	assert.Equal(t, 5, strings.Count(out, "### E"))
	assert.Equal(t, 50, strings.Count(out, "| Yes |"))
	assert.Contains(t, out, "`"+strings.Repeat("x", 30)+"`")
	assert.NotContains(t, out, "more")

	product := renderProduct(&analysis.ProjectAnalysis{Entities: ents})
	assert.Equal(t, 6, strings.Count(product, "- **E"))
}

func TestRenderStructure(t *testing.T) {
	t.Parallel()

	out := renderStructure(nextAnalysis(t))
	assert.Contains(t, out, "├── app/                    # Next.js App Router")
	assert.Contains(t, out, "## Directory Layout\n\n```\napp/\n")
	assert.Contains(t, out, "### State Management\n- Zustand\n")
	assert.Contains(t, out, "- `Cart`")
	assert.NotContains(t, out, "unknown")
}

func TestRenderSingleFileFormats(t *testing.T) {
	t.Parallel()

	a := nextAnalysis(t)
	tests := []struct {
		format Format
		path   string
	}{
		{Cursor, ".cursor/rules/project.mdc"},
		{Copilot, ".github/copilot-instructions.md"},
		{Windsurf, ".windsurfrules"},
		{Cline, ".clinerules"},
		{Aider, "CONVENTIONS.md"},
		{Markdown, "STEERING.md"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			docs, err := Render(a, tt.format)
			require.NoError(t, err)
			require.Len(t, docs, 1)
			d := docs[0]
			assert.Equal(t, tt.path, d.Path)
			assert.Equal(t, 3, strings.Count(d.Body, combinedSeparator))

			order := []string{"# Product Overview", "# Technology Stack", "# Project Structure", "# Business Rules"}
			last := -1
			for _, h := range order {
				i := strings.Index(d.Body, h)
				require.Greater(t, i, last, h)
				last = i
			}

			if tt.format == Cursor {
				assert.True(t, strings.HasPrefix(d.String(),
					"---\ndescription: Steering rules for Next.js 15 (App Router) project\nalwaysApply: true\n---\n\n# Product Overview"))
			} else {
				assert.Nil(t, d.FrontMatter)
				assert.Equal(t, d.Body, d.String())
			}
		})
	}
}

func TestRenderCoversEveryFormat(t *testing.T) {
	t.Parallel()

	a := nextAnalysis(t)
	for _, f := range Formats() {
		docs, err := Render(a, f)
		require.NoError(t, err, f)
		assert.NotEmpty(t, docs, f)
	}
	assert.Len(t, SupportedIDEs(), len(Formats()))
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		first, err := Render(nextAnalysis(t), f)
		require.NoError(t, err)
		second, err := Render(nextAnalysis(t), f)
		require.NoError(t, err)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].String(), second[i].String())
		}
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	t.Parallel()

	docs, err := Render(nextAnalysis(t), Format("bogus"))
	assert.Nil(t, docs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	var ufe *UnsupportedFormatError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, "bogus", ufe.Format)
	assert.Contains(t, err.Error(), "kiro")

	_, err = ParseFormat("bogus")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	f, err := ParseFormat(" Cursor ")
	require.NoError(t, err)
	assert.Equal(t, Cursor, f)
}

func TestRenderUnknownProject(t *testing.T) {
	t.Parallel()

	for _, a := range []*analysis.ProjectAnalysis{nil, analysis.Build(scan.FromContents("/tmp/empty", nil), analysis.Deep)} {
		docs, err := Render(a, Markdown)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		body := docs[0].Body
		assert.Contains(t, body, "- **Framework**: unknown")
		assert.Contains(t, body, "```\n# Project structure\n```")
		assert.Contains(t, body, "- Follow the conventions already present in the codebase")
	}
}

func TestCreateCustomFileMatch(t *testing.T) {
	t.Parallel()

	d, err := CreateCustom("x.md", "# X", "fileMatch", "app/api/**/*")
	require.NoError(t, err)
	assert.Equal(t, ".kiro/steering/x.md", d.Path)
	assert.Equal(t, "---\ninclusion: fileMatch\nfileMatchPattern: \"app/api/**/*\"\n---\n\n# X", d.String())
}

func TestCreateCustom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filename  string
		inclusion string
		pattern   string
		wantPath  string
		wantErr   error
	}{
		{"appends extension", "api-rules", "always", "", ".kiro/steering/api-rules.md", nil},
		{"empty mode is always", "a.md", "", "", ".kiro/steering/a.md", nil},
		{"manual", "a.md", "manual", "", ".kiro/steering/a.md", nil},
		{"separator", "../x.md", "always", "", "", ErrInvalidFilename},
		{"backslash", `a\b.md`, "always", "", "", ErrInvalidFilename},
		{"empty name", " ", "always", "", "", ErrInvalidFilename},
		{"bad mode", "a.md", "sometimes", "", "", ErrInvalidInclusion},
		{"missing pattern", "a.md", "fileMatch", "", "", ErrInvalidInclusion},
		{"malformed pattern", "a.md", "fileMatch", "app/[", "", ErrInvalidInclusion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := CreateCustom(tt.filename, "# Body\n#[[file:docs/api.md]]\n", tt.inclusion, tt.pattern)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, d.Path)
			assert.Equal(t, "# Body\n#[[file:docs/api.md]]\n", d.Body)
		})
	}
}

func TestParseFrontMatterRoundTrip(t *testing.T) {
	t.Parallel()

	d, err := CreateCustom("x", "# X\n", "fileMatch", "**/*.ts")
	require.NoError(t, err)
	fm, body, err := ParseFrontMatter(d.String())
	require.NoError(t, err)
	require.NotNil(t, fm.Inclusion)
	assert.Equal(t, InclusionFileMatch, fm.Inclusion.Mode())
	assert.Equal(t, "**/*.ts", fm.Inclusion.Pattern())
	assert.Equal(t, "# X\n", body)

	docs, err := Render(nextAnalysis(t), Cursor)
	require.NoError(t, err)
	fm, body, err = ParseFrontMatter(docs[0].String())
	require.NoError(t, err)
	assert.Nil(t, fm.Inclusion)
	assert.True(t, fm.AlwaysApply)
	assert.Equal(t, "Steering rules for Next.js 15 (App Router) project", fm.Description)
	assert.Equal(t, docs[0].Body, body)

	fm, body, err = ParseFrontMatter("# plain")
	require.NoError(t, err)
	assert.Nil(t, fm)
	assert.Equal(t, "# plain", body)

	_, _, err = ParseFrontMatter("---\ninclusion: always\n# never closed")
	assert.Error(t, err)
}

func TestTemplates(t *testing.T) {
	t.Parallel()

	want := map[TemplateKind]InclusionMode{
		TemplateAPI:        InclusionFileMatch,
		TemplateTesting:    InclusionFileMatch,
		TemplateSecurity:   InclusionAlways,
		TemplateCodeStyle:  InclusionAlways,
		TemplateDeployment: InclusionManual,
		TemplateComponents: InclusionFileMatch,
	}
	require.Len(t, TemplateKinds(), len(want))
	for _, k := range TemplateKinds() {
		d, err := Template(string(k))
		require.NoError(t, err, k)
		assert.Equal(t, ".kiro/steering/"+string(k)+".md", d.Path)
		assert.Equal(t, want[k], d.FrontMatter.Inclusion.Mode(), k)
		assert.True(t, strings.HasPrefix(d.Body, "# "), k)
	}

	_, err := Template("networking")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestSupportedIDEs(t *testing.T) {
	t.Parallel()

	ides := SupportedIDEs()
	require.Len(t, ides, 7)
	assert.Equal(t, Kiro, ides[0].ID)
	assert.True(t, ides[0].MultipleFiles)
	assert.Equal(t, ".kiro/steering/*.md", ides[0].PathPattern)

	paths := IDEPaths()
	assert.Equal(t, ".cursor/rules/project.mdc", paths[Cursor])
	assert.Equal(t, ".windsurfrules", paths[Windsurf])
	assert.Equal(t, "CONVENTIONS.md", paths[Aider])
}

func TestEncodeRejectsZeroInclusion(t *testing.T) {
	t.Parallel()

	_, err := (&FrontMatter{Inclusion: &Inclusion{}}).Encode()
	assert.ErrorIs(t, err, ErrInvalidInclusion)

	_, err = (&FrontMatter{Inclusion: &Inclusion{mode: InclusionFileMatch}}).Encode()
	assert.ErrorIs(t, err, ErrInvalidInclusion)

	head, err := NewInclusionFrontMatter(Manual()).Encode()
	require.NoError(t, err)
	assert.Equal(t, "---\ninclusion: manual\n---\n", head)
}
