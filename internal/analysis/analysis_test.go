package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papapumpkin/steer/internal/deps"
	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/patterns"
	"github.com/papapumpkin/steer/internal/scan"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func nextProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name":"shop","scripts":{"dev":"next dev"},"dependencies":{"next":"15.0.0","react":"19.0.0","zustand":"4.5.0"}}`)
	writeFile(t, dir, "app/page.tsx", "export default function Home() {}")
	writeFile(t, dir, "lib/types.ts", "export interface User { id: string }")
	writeFile(t, dir, "app/admin/types.ts", "export interface User { id: number; role: string }")
	writeFile(t, dir, "README.md", "# Shop\n\nSells things.\n")
	return dir
}

func walkAnalyzer(cache *Cache) *Analyzer {
	return &Analyzer{Scanner: &scan.Scanner{DisableFastSearch: true}, Cache: cache}
}

func TestBuildDepths(t *testing.T) {
	t.Parallel()

	res := scan.FromContents("/work/shop", map[string]string{
		"package.json":  `{"name":"shop","dependencies":{"next":"15.0.0","zustand":"4.5.0"}}`,
		"composer.json": `{"require":`,
		"lib/types.ts":  "export interface User { id: string }",
		"app/page.tsx":  "export default function Home() {}",
	})

	basic := Build(res, Basic)
	assert.Equal(t, "shop", basic.Name)
	assert.Equal(t, framework.NextJS, basic.Framework.Name)
	assert.Equal(t, "Next.js 15 (App Router)", basic.FrameworkName)
	assert.True(t, basic.Dependencies.Has(deps.State, "zustand"))
	assert.False(t, basic.Deep())
	assert.Nil(t, basic.Patterns)
	assert.Empty(t, basic.Entities)

	require.Len(t, basic.Diagnostics, 1)
	assert.Equal(t, "composer.json", basic.Diagnostics[0].Path)
	var ppw *PartialParseWarning
	assert.True(t, errors.As(error(basic.Diagnostics[0]), &ppw))
	assert.ErrorIs(t, basic.Diagnostics[0], ErrPartialParse)

	deep := Build(res, Deep)
	assert.True(t, deep.Deep())
	assert.Equal(t, "Zustand", deep.Patterns[patterns.StateManagement])
	require.Len(t, deep.Entities, 1)
	assert.Equal(t, "User", deep.Entities[0].Name)
}

func TestProjectName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		files map[string]string
		want  string
	}{
		{map[string]string{"composer.json": `{"name":"acme/portal"}`}, "acme/portal"},
		{map[string]string{"go.mod": "module github.com/acme/billing\n"}, "billing"},
		{map[string]string{"package.json": `{"private":true}`}, "demo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, projectName(scan.FromContents("/src/demo", tt.files)))
	}
}

func TestDeepAnalyzeKeepsDuplicateEntities(t *testing.T) {
	t.Parallel()

	a, err := walkAnalyzer(nil).DeepAnalyze(context.Background(), nextProject(t))
	require.NoError(t, err)

	var files []string
	for _, e := range a.Entities {
		if e.Name == "User" {
			files = append(files, e.SourceFile)
		}
	}
	assert.Equal(t, []string{"app/admin/types.ts", "lib/types.ts"}, files)
	assert.Equal(t, "Shop", a.Readme.Title)
	assert.Equal(t, framework.VariantAppRouter, a.Framework.Variant)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	_, err := walkAnalyzer(nil).Analyze(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, scan.ErrProjectAccess)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = walkAnalyzer(nil).DeepAnalyze(ctx, nextProject(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzerUsesCache(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(8, time.Minute, nil, nil)
	require.NoError(t, err)
	an := walkAnalyzer(cache)
	dir := nextProject(t)

	first, err := an.DeepAnalyze(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := an.DeepAnalyze(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len(), "unchanged project hits the cache")
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.Name, second.Name)

	writeFile(t, dir, "lib/types.ts", "export interface User { id: string; email: string }")
	third, err := an.DeepAnalyze(context.Background(), dir)
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint, third.Fingerprint)
	assert.Equal(t, 2, cache.Len(), "a content change produces a new key")

	_, err = an.Analyze(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cache.Len(), "depth is part of the key")
}

func TestCacheStaleness(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(4, time.Minute, nil, nil)
	require.NoError(t, err)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, "k", &ProjectAnalysis{Name: "x"}))

	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "x", got.Name)

	got.Name = "mutated"
	again, _ := cache.Get(ctx, "k")
	assert.Equal(t, "x", again.Name, "hits decode a fresh copy")

	now = now.Add(2 * time.Minute)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok, "entries past max age are misses")
	assert.Equal(t, 0, cache.Len(), "stale entries are evicted")
}

func TestCachedWarningsMatchFresh(t *testing.T) {
	t.Parallel()

	res := scan.FromContents("/p", map[string]string{"composer.json": "{not json"})
	fresh := Build(res, Basic)
	require.Len(t, fresh.Diagnostics, 1)

	cache, err := NewCache(4, time.Minute, nil, nil)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, "k", fresh))
	cached, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	require.Len(t, cached.Diagnostics, 1)

	assert.Equal(t, fresh.Diagnostics[0].Error(), cached.Diagnostics[0].Error())
	assert.ErrorIs(t, fresh.Diagnostics[0], ErrPartialParse)
	assert.ErrorIs(t, cached.Diagnostics[0], ErrPartialParse)
	assert.Equal(t, errors.Unwrap(fresh.Diagnostics[0]), errors.Unwrap(cached.Diagnostics[0]))
}

func TestIsStale(t *testing.T) {
	t.Parallel()

	now := time.Now()
	assert.True(t, IsStale(Entry{}, now, time.Minute))
	assert.False(t, IsStale(Entry{CreatedAt: now.Add(-30 * time.Second)}, now, time.Minute))
	assert.True(t, IsStale(Entry{CreatedAt: now.Add(-2 * time.Minute)}, now, time.Minute))
	assert.False(t, IsStale(Entry{CreatedAt: now.Add(-24 * time.Hour)}, now, 0))
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	k := CacheKey("/a", Deep, "sha256:1")
	assert.Len(t, k, 64)
	assert.Equal(t, k, CacheKey("/a", Deep, "sha256:1"))
	assert.NotEqual(t, k, CacheKey("/a", Basic, "sha256:1"))
	assert.NotEqual(t, k, CacheKey("/b", Deep, "sha256:1"))
	assert.NotEqual(t, k, CacheKey("/a", Deep, "sha256:2"))
}
