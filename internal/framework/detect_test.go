package framework

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/papapumpkin/steer/internal/scan"
)

func TestDetectNextAppRouterScenario(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := `{"name":"shop","dependencies":{"next":"15.0.0","react":"19.0.0"}}`
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "app"), 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := (&scan.Scanner{DisableFastSearch: true}).Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	info := Detect(res)
	if info.Name != NextJS {
		t.Errorf("name = %q, want nextjs", info.Name)
	}
	if info.Variant != VariantAppRouter {
		t.Errorf("variant = %q, want App Router", info.Variant)
	}
	if info.Version != "15.0.0" {
		t.Errorf("version = %q, want 15.0.0", info.Version)
	}
	if info.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %q, want high", info.Confidence)
	}
}

func TestDetectNextSrcLayoutVariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir  string
		want string
	}{
		{"src/app", VariantAppRouter},
		{"src/pages", VariantPagesRouter},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			manifest := `{"dependencies":{"next":"14.2.0"}}`
			if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644); err != nil {
				t.Fatal(err)
			}
			if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(tt.dir)), 0o755); err != nil {
				t.Fatal(err)
			}

			res, err := (&scan.Scanner{DisableFastSearch: true}).Scan(context.Background(), dir)
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if got := Detect(res).Variant; got != tt.want {
				t.Errorf("variant = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		files      map[string]string
		dirs       []string
		want       ID
		variant    string
		confidence Confidence
	}{
		{
			name:       "next pages router",
			files:      map[string]string{"package.json": `{"dependencies":{"next":"^14.2.3","react":"18"}}`, "pages/index.tsx": ""},
			want:       NextJS,
			variant:    VariantPagesRouter,
			confidence: ConfidenceHigh,
		},
		{
			name:       "nuxt beats vue",
			files:      map[string]string{"package.json": `{"dependencies":{"nuxt":"^3.12.0","vue":"^3.4.0"}}`},
			want:       Nuxt,
			confidence: ConfidenceHigh,
		},
		{
			name:       "laravel composer",
			files:      map[string]string{"composer.json": `{"require":{"php":"^8.2","laravel/framework":"^11.0"}}`},
			want:       Laravel,
			confidence: ConfidenceHigh,
		},
		{
			name:       "vue with vite",
			files:      map[string]string{"package.json": `{"dependencies":{"vue":"^3.4.0"},"devDependencies":{"vite":"^5.0.0"}}`},
			want:       Vue,
			variant:    VariantVite,
			confidence: ConfidenceHigh,
		},
		{
			name:       "react cra",
			files:      map[string]string{"package.json": `{"dependencies":{"react":"^18.2.0","react-scripts":"5.0.1"}}`},
			want:       React,
			variant:    VariantCRA,
			confidence: ConfidenceHigh,
		},
		{
			name:       "next config without manifest",
			files:      map[string]string{"next.config.mjs": "export default {}"},
			want:       NextJS,
			confidence: ConfidenceMedium,
		},
		{
			name:       "artisan only",
			files:      map[string]string{"artisan": "#!/usr/bin/env php"},
			want:       Laravel,
			confidence: ConfidenceMedium,
		},
		{
			name:       "laravel directory convention",
			files:      map[string]string{"routes/web.php": "<?php", "app/Http/Kernel.php": "<?php"},
			want:       Laravel,
			confidence: ConfidenceMedium,
		},
		{
			name:       "vite react plugin",
			files:      map[string]string{"vite.config.ts": "import react from '@vitejs/plugin-react'"},
			want:       React,
			variant:    VariantVite,
			confidence: ConfidenceMedium,
		},
		{
			name:       "vue extension plurality",
			files:      map[string]string{"a.vue": "", "b.vue": "", "c.tsx": ""},
			want:       Vue,
			confidence: ConfidenceLow,
		},
		{
			name:       "extension tie is unknown",
			files:      map[string]string{"a.vue": "", "b.tsx": ""},
			want:       Unknown,
			confidence: ConfidenceNone,
		},
		{
			name:       "malformed manifest falls through",
			files:      map[string]string{"package.json": `{"dependencies":`, "README.md": "# hi"},
			want:       Unknown,
			confidence: ConfidenceNone,
		},
		{
			name:       "empty project",
			files:      map[string]string{},
			want:       Unknown,
			confidence: ConfidenceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := Detect(resultFrom(tt.files, tt.dirs...))
			if info.Name != tt.want {
				t.Errorf("name = %q, want %q (evidence %q)", info.Name, tt.want, info.Evidence)
			}
			if info.Variant != tt.variant {
				t.Errorf("variant = %q, want %q", info.Variant, tt.variant)
			}
			if info.Confidence != tt.confidence {
				t.Errorf("confidence = %q, want %q", info.Confidence, tt.confidence)
			}
		})
	}
}

func TestDetectDeterministic(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"package.json":   `{"dependencies":{"react":"18","vue":"3"}}`,
		"src/App.vue":    "",
		"src/main.ts":    "",
		"vite.config.ts": "import vue from '@vitejs/plugin-vue'",
	}
	first := Detect(resultFrom(files))
	for i := 0; i < 20; i++ {
		if got := Detect(resultFrom(files)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: %+v != %+v", i, got, first)
		}
	}
	if first.Name != Vue {
		t.Errorf("vue precedes react in the manifest tier, got %q", first.Name)
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info Info
		want string
	}{
		{Info{Name: NextJS, Version: "15.0.0", Variant: VariantAppRouter}, "Next.js 15 (App Router)"},
		{Info{Name: NextJS, Version: "14.1.0", Variant: VariantPagesRouter}, "Next.js 14 (Pages Router)"},
		{Info{Name: Laravel}, "Laravel 12"},
		{Info{Name: React, Version: "18.2.0", Variant: VariantCRA}, "React 18 (Create React App)"},
		{Info{Name: Unknown}, "unknown"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.info); got != tt.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestCleanVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"^15.0.0":        "15.0.0",
		"~3.4":           "3.4",
		">=8.2 <9":       "8.2",
		"latest":         "",
		"*":              "",
		"^10.0 || ^11.0": "10.0",
	}
	for in, want := range tests {
		if got := cleanVersion(in); got != want {
			t.Errorf("cleanVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSupportedOrderAndParse(t *testing.T) {
	t.Parallel()

	var ids []ID
	for _, d := range Supported() {
		ids = append(ids, d.ID)
	}
	want := []ID{NextJS, Laravel, React, Vue, Nuxt}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Supported() = %v, want %v", ids, want)
	}
	if Parse(" Laravel ") != Laravel {
		t.Error("Parse should be case-insensitive and trim")
	}
	if Parse("django") != Unknown {
		t.Error("Parse of unsupported framework should be Unknown")
	}
}

func resultFrom(files map[string]string, dirs ...string) *scan.Result {
	var fs []scan.File
	for p, c := range files {
		fs = append(fs, scan.File{Path: p, Size: int64(len(c)), Content: []byte(c), Loaded: true})
	}
	return scan.NewResult("/project", fs, scan.Stats{}, dirs...)
}

func TestRuleNamesOrder(t *testing.T) {
	t.Parallel()

	want := []string{
		"package.json dependency next",
		"package.json dependency nuxt",
		"composer.json requires laravel/framework",
		"package.json dependency vue",
		"package.json dependency react",
		"next.config file",
		"nuxt.config file",
		"artisan script",
		"vite.config with vue plugin",
		"vite.config with react plugin",
		"routes/web.php with app/Http",
		"app or pages router files",
		"src/App.vue",
		"src/App.tsx",
		"source extension plurality",
	}
	if got := RuleNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("RuleNames() =\n%q\nwant\n%q", got, want)
	}
}
