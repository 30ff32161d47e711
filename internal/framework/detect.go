package framework

import (
	"encoding/json"
	"strings"

	"github.com/papapumpkin/steer/internal/scan"
)

// project is the evidence the rule chain inspects.
type project struct {
	res      *scan.Result
	npm      map[string]string
	composer map[string]string
}

// rule is one entry in the detection chain.
type rule struct {
	name       string
	id         ID
	confidence Confidence
	match      func(p *project) bool
}

// chain is evaluated top to bottom; the first match wins. Manifest markers
// come first, then config files, then directory conventions. Frameworks
// that embed another (Next.js on React, Nuxt on Vue) precede it within
// each tier.
var chain = []rule{
	{"package.json dependency next", NextJS, ConfidenceHigh, npmDep("next")},
	{"package.json dependency nuxt", Nuxt, ConfidenceHigh, npmDep("nuxt")},
	{"composer.json requires laravel/framework", Laravel, ConfidenceHigh, composerDep("laravel/framework")},
	{"package.json dependency vue", Vue, ConfidenceHigh, npmDep("vue")},
	{"package.json dependency react", React, ConfidenceHigh, npmDep("react")},

	{"next.config file", NextJS, ConfidenceMedium, anyFile("next.config.js", "next.config.mjs", "next.config.ts", "next.config.cjs")},
	{"nuxt.config file", Nuxt, ConfidenceMedium, anyFile("nuxt.config.js", "nuxt.config.ts", "nuxt.config.mjs")},
	{"artisan script", Laravel, ConfidenceMedium, anyFile("artisan")},
	{"vite.config with vue plugin", Vue, ConfidenceMedium, viteConfigContains("@vitejs/plugin-vue")},
	{"vite.config with react plugin", React, ConfidenceMedium, viteConfigContains("@vitejs/plugin-react")},

	{"routes/web.php with app/Http", Laravel, ConfidenceMedium, all(anyFile("routes/web.php"), dir("app/Http"))},
	{"app or pages router files", NextJS, ConfidenceMedium, anyGlob(
		"app/**/page.{tsx,jsx,js}", "src/app/**/page.{tsx,jsx,js}",
		"pages/_app.{tsx,jsx,js}", "src/pages/_app.{tsx,jsx,js}",
	)},
	{"src/App.vue", Vue, ConfidenceMedium, anyFile("src/App.vue")},
	{"src/App.tsx", React, ConfidenceMedium, anyFile("src/App.tsx", "src/App.jsx")},
}

// RuleNames returns the detection chain in evaluation order, ending with the
// extension heuristic.
func RuleNames() []string {
	names := make([]string, 0, len(chain)+1)
	for _, r := range chain {
		names = append(names, r.name)
	}
	return append(names, "source extension plurality")
}

// Detect returns exactly one Info for res. It never fails; a project with no
// matching evidence yields Unknown.
func Detect(res *scan.Result) Info {
	p := &project{
		res:      res,
		npm:      packageJSONDeps(res.Content("package.json")),
		composer: composerDeps(res.Content("composer.json")),
	}

	for _, r := range chain {
		if r.match(p) {
			return p.enrich(Info{Name: r.id, Confidence: r.confidence, Evidence: r.name})
		}
	}
	if id, ok := extensionPlurality(res); ok {
		return p.enrich(Info{Name: id, Confidence: ConfidenceLow, Evidence: "source extension plurality"})
	}
	return Info{Name: Unknown, Confidence: ConfidenceNone}
}

// enrich fills Version and Variant for the detected framework.
func (p *project) enrich(info Info) Info {
	switch info.Name {
	case NextJS:
		info.Version = cleanVersion(p.npm["next"])
		switch {
		case p.res.HasDir("app") || p.res.HasDir("src/app"):
			info.Variant = VariantAppRouter
		case p.res.HasDir("pages") || p.res.HasDir("src/pages"):
			info.Variant = VariantPagesRouter
		}
	case Nuxt:
		info.Version = cleanVersion(p.npm["nuxt"])
	case Laravel:
		info.Version = cleanVersion(p.composer["laravel/framework"])
	case Vue:
		info.Version = cleanVersion(p.npm["vue"])
		if _, ok := p.npm["vite"]; ok || p.res.HasAny(viteConfigs...) {
			info.Variant = VariantVite
		}
	case React:
		info.Version = cleanVersion(p.npm["react"])
		if _, ok := p.npm["react-scripts"]; ok {
			info.Variant = VariantCRA
		} else if _, ok := p.npm["vite"]; ok || p.res.HasAny(viteConfigs...) {
			info.Variant = VariantVite
		}
	}
	return info
}

var viteConfigs = []string{"vite.config.ts", "vite.config.js", "vite.config.mjs"}

func npmDep(name string) func(*project) bool {
	return func(p *project) bool {
		_, ok := p.npm[name]
		return ok
	}
}

func composerDep(name string) func(*project) bool {
	return func(p *project) bool {
		_, ok := p.composer[name]
		return ok
	}
}

func anyFile(paths ...string) func(*project) bool {
	return func(p *project) bool { return p.res.HasAny(paths...) }
}

func dir(d string) func(*project) bool {
	return func(p *project) bool { return p.res.HasDir(d) }
}

func anyGlob(patterns ...string) func(*project) bool {
	return func(p *project) bool {
		for _, g := range patterns {
			if len(p.res.Glob(g)) > 0 {
				return true
			}
		}
		return false
	}
}

func viteConfigContains(needle string) func(*project) bool {
	return func(p *project) bool {
		for _, c := range viteConfigs {
			if strings.Contains(p.res.Content(c), needle) {
				return true
			}
		}
		return false
	}
}

func all(preds ...func(*project) bool) func(*project) bool {
	return func(p *project) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// extensionPlurality picks the framework whose source extension is most
// common. Ties and empty projects yield no match.
func extensionPlurality(res *scan.Result) (ID, bool) {
	counts := map[ID]int{
		Vue:     len(res.WithExt(".vue")),
		React:   len(res.WithExt(".jsx", ".tsx")),
		Laravel: len(res.WithExt(".php")),
	}
	best, bestCount, tied := Unknown, 0, false
	for _, id := range []ID{Vue, React, Laravel} {
		switch n := counts[id]; {
		case n > bestCount:
			best, bestCount, tied = id, n, false
		case n == bestCount && n > 0:
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return Unknown, false
	}
	return best, true
}

// packageJSONDeps returns dependencies and devDependencies merged. Malformed
// content yields nil; the dependency extractor reports the parse failure.
func packageJSONDeps(content string) map[string]string {
	if content == "" {
		return nil
	}
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil
	}
	out := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for k, v := range pkg.DevDependencies {
		out[k] = v
	}
	for k, v := range pkg.Dependencies {
		out[k] = v
	}
	return out
}

func composerDeps(content string) map[string]string {
	if content == "" {
		return nil
	}
	var pkg struct {
		Require    map[string]string `json:"require"`
		RequireDev map[string]string `json:"require-dev"`
	}
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil
	}
	out := make(map[string]string, len(pkg.Require)+len(pkg.RequireDev))
	for k, v := range pkg.RequireDev {
		out[k] = v
	}
	for k, v := range pkg.Require {
		out[k] = v
	}
	return out
}

// cleanVersion strips range operators from a manifest version constraint.
func cleanVersion(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.IndexAny(v, " |,"); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimLeft(v, "^~>=<v")
	switch v {
	case "", "*", "latest", "x":
		return ""
	}
	return v
}
