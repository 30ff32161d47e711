package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/papapumpkin/steer/internal/analysis"
	"github.com/papapumpkin/steer/internal/config"
	"github.com/papapumpkin/steer/internal/logging"
	"github.com/papapumpkin/steer/internal/scan"
	"github.com/papapumpkin/steer/internal/steering"
)

// execute runs rootCmd with args and restores flag state afterwards.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("STEER_CACHE_PATH", "")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// nextProject writes a minimal Next.js app router project.
func nextProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"package.json":       `{"name": "shop", "scripts": {"dev": "next dev"}, "dependencies": {"next": "^15.0.0", "react": "^19.0.0"}}`,
		"app/page.tsx":       "export default function Page() { return null }\n",
		"lib/types.ts":       "export interface Order {\n  id: string\n  total: number\n}\n",
		".env.example":       "DATABASE_URL=\n",
		"README.md":          "# Shop\n\nSells things.\n",
		"components/Nav.tsx": "export function Nav() { return null }\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"detect", "analyze", "generate", "custom", "template", "frameworks", "ides", "serve", "watch"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("expected %q subcommand to be registered on rootCmd", name)
		}
	}
}

func TestGenerateCmd_Flags(t *testing.T) {
	tests := []struct {
		name      string
		flag      string
		shorthand string
	}{
		{"format flag", "format", "f"},
		{"write flag", "write", "w"},
		{"out flag", "out", "o"},
		{"json flag", "json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := generateCmd.Flags().Lookup(tt.flag)
			if f == nil {
				t.Fatalf("expected --%s flag on generate command", tt.flag)
			}
			if f.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand = %q, want %q", tt.flag, f.Shorthand, tt.shorthand)
			}
		})
	}
}

func TestDetectJSON(t *testing.T) {
	dir := nextProject(t)

	out, _, err := execute(t, "detect", dir, "--json")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	var info struct {
		Name       string `json:"name"`
		Confidence string `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if info.Name != "nextjs" {
		t.Errorf("name = %q, want nextjs", info.Name)
	}
}

func TestAnalyzeDeepJSON(t *testing.T) {
	dir := nextProject(t)

	out, _, err := execute(t, "analyze", dir, "--deep", "--json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var got struct {
		Name     string `json:"name"`
		Entities []struct {
			Name string `json:"name"`
		} `json:"entities"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "shop" {
		t.Errorf("name = %q, want shop", got.Name)
	}
	if len(got.Entities) != 1 || got.Entities[0].Name != "Order" {
		t.Errorf("entities = %+v, want [Order]", got.Entities)
	}
}

func TestGeneratePrintsDocuments(t *testing.T) {
	dir := nextProject(t)

	out, _, err := execute(t, "generate", dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{
		"==> .kiro/steering/product.md <==",
		"==> .kiro/steering/tech.md <==",
		"==> .kiro/steering/structure.md <==",
		"# Technology Stack",
		"inclusion: always",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, ".kiro")); !os.IsNotExist(err) {
		t.Error("generate without --write must not touch the project")
	}
}

func TestGenerateWrite(t *testing.T) {
	dir := nextProject(t)

	_, stderr, err := execute(t, "generate", dir, "--format", "cursor", "--write")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, ".cursor", "rules", "project.mdc"))
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\n") {
		t.Errorf("cursor rules should start with front-matter, got %q", string(data)[:20])
	}
	if !strings.Contains(stderr, ".cursor/rules/project.mdc") {
		t.Errorf("stderr should list the written file, got %q", stderr)
	}
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	dir := nextProject(t)

	_, _, err := execute(t, "generate", dir, "--format", "notepad")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("error = %q", err)
	}
}

func TestCustomCmd(t *testing.T) {
	out, _, err := execute(t, "custom", "api", "--inclusion", "fileMatch", "--pattern", "app/api/**/*", "--content", "# API")
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	want := "---\ninclusion: fileMatch\nfileMatchPattern: \"app/api/**/*\"\n---\n\n# API"
	if out != want {
		t.Errorf("custom output = %q, want %q", out, want)
	}
}

func TestCustomCmd_ContentFromStdin(t *testing.T) {
	rootCmd.SetIn(strings.NewReader("# From stdin\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	out, _, err := execute(t, "custom", "notes", "--content-file", "-", "--json")
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	var docs []documentsOutput
	if err := json.Unmarshal([]byte(out), &docs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 1 || docs[0].Path != ".kiro/steering/notes.md" {
		t.Fatalf("docs = %+v", docs)
	}
	if !strings.HasSuffix(docs[0].Content, "# From stdin\n") {
		t.Errorf("content = %q", docs[0].Content)
	}
}

func TestCustomCmd_RejectsBadFilename(t *testing.T) {
	_, _, err := execute(t, "custom", "../escape", "--content", "x")
	if err == nil {
		t.Fatal("expected error for path traversal filename")
	}
}

func TestTemplateCmd(t *testing.T) {
	out, _, err := execute(t, "template", "testing")
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	if !strings.HasPrefix(out, "---\ninclusion: fileMatch\n") {
		t.Errorf("testing template should use fileMatch inclusion, got %q", out)
	}

	if _, _, err := execute(t, "template", "poetry"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestCatalogueCmds(t *testing.T) {
	out, _, err := execute(t, "ides", "--json")
	if err != nil {
		t.Fatalf("ides: %v", err)
	}
	var ides []steering.IDE
	if err := json.Unmarshal([]byte(out), &ides); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ides) != len(steering.Formats()) {
		t.Errorf("ides = %d entries, want %d", len(ides), len(steering.Formats()))
	}

	out, _, err = execute(t, "frameworks")
	if err != nil {
		t.Fatalf("frameworks: %v", err)
	}
	for _, want := range []string{"Next.js", "Laravel", "Dependency manifests", "composer.json", "pyproject.toml"} {
		if !strings.Contains(out, want) {
			t.Errorf("frameworks output missing %q: %q", want, out)
		}
	}
}

func TestWriteDocuments(t *testing.T) {
	dir := t.TempDir()
	docs := []steering.Document{
		{Path: ".kiro/steering/a.md", Body: "# A\n"},
		{Path: "CONVENTIONS.md", Body: "# B\n"},
	}

	written, err := writeDocuments(dir, docs)
	if err != nil {
		t.Fatalf("writeDocuments: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v", written)
	}
	data, err := os.ReadFile(filepath.Join(dir, ".kiro", "steering", "a.md"))
	if err != nil || string(data) != "# A\n" {
		t.Errorf("a.md = %q, %v", data, err)
	}

	if _, err := writeDocuments(dir, []steering.Document{{Path: "../out.md", Body: "x"}}); err == nil {
		t.Error("expected error for a path leaving the output directory")
	}
}

func TestOutputGlobsCoverGeneratedFiles(t *testing.T) {
	rules := scan.DefaultIgnore().With(outputGlobs()...)

	tests := []struct {
		path string
		want bool
	}{
		{".kiro/steering/tech.md", true},
		{".cursor/rules/project.mdc", true},
		{".github/copilot-instructions.md", true},
		{".windsurfrules", true},
		{"CONVENTIONS.md", true},
		{"app/page.tsx", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		if got := rules.Match(tt.path, false); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestProjectRoot(t *testing.T) {
	if got := projectRoot(nil); got != "." {
		t.Errorf("projectRoot(nil) = %q", got)
	}
	if got := projectRoot([]string{"/srv/app"}); got != "/srv/app" {
		t.Errorf("projectRoot = %q", got)
	}
}

func TestOpenCachePrunesStaleEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := analysis.OpenSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	now := time.Now()
	for key, created := range map[string]time.Time{
		"old":   now.Add(-time.Hour),
		"fresh": now,
	} {
		if err := store.Put(ctx, analysis.Entry{Key: key, CreatedAt: created, Value: []byte("{}")}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	cache, err := openCache(ctx, config.CacheConfig{Enabled: true, Size: 4, MaxAge: 10 * time.Minute, Path: path}, logging.Discard())
	if err != nil {
		t.Fatalf("openCache: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = analysis.OpenSQLiteStore(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if _, ok, err := store.Get(ctx, "old"); err != nil || ok {
		t.Errorf("old entry still present (ok=%v, err=%v)", ok, err)
	}
	if _, ok, err := store.Get(ctx, "fresh"); err != nil || !ok {
		t.Errorf("fresh entry missing (ok=%v, err=%v)", ok, err)
	}
}
