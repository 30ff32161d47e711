package deps

import (
	"bufio"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
)

type parsed struct {
	deps    []Dependency
	scripts map[string]string
}

type manifest struct {
	path  string
	parse func(content string) (parsed, error)
}

// manifests are parsed in this order; the first manifest to declare a name
// owns it.
var manifests = []manifest{
	{"package.json", parsePackageJSON},
	{"composer.json", parseComposerJSON},
	{"go.mod", parseGoMod},
	{"Cargo.toml", parseCargoTOML},
	{"pyproject.toml", parsePyproject},
	{"requirements.txt", parseRequirements},
	{"Gemfile", parseGemfile},
}

// ManifestNames returns the recognized manifest file names.
func ManifestNames() []string {
	out := make([]string, len(manifests))
	for i, m := range manifests {
		out[i] = m.path
	}
	return out
}

func sortedDeps(m map[string]string, dev bool) []Dependency {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Dependency, 0, len(names))
	for _, n := range names {
		out = append(out, Dependency{Name: n, Version: m[n], Dev: dev})
	}
	return out
}

func parsePackageJSON(content string) (parsed, error) {
	var pkg struct {
		Dependencies         map[string]string `json:"dependencies"`
		DevDependencies      map[string]string `json:"devDependencies"`
		PeerDependencies     map[string]string `json:"peerDependencies"`
		OptionalDependencies map[string]string `json:"optionalDependencies"`
		Scripts              map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return parsed{}, fmt.Errorf("parsing package.json: %w", err)
	}
	p := parsed{scripts: pkg.Scripts}
	p.deps = append(p.deps, sortedDeps(pkg.Dependencies, false)...)
	p.deps = append(p.deps, sortedDeps(pkg.OptionalDependencies, false)...)
	p.deps = append(p.deps, sortedDeps(pkg.PeerDependencies, false)...)
	p.deps = append(p.deps, sortedDeps(pkg.DevDependencies, true)...)
	return p, nil
}

func parseComposerJSON(content string) (parsed, error) {
	var pkg struct {
		Require    map[string]string          `json:"require"`
		RequireDev map[string]string          `json:"require-dev"`
		Scripts    map[string]json.RawMessage `json:"scripts"`
	}
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return parsed{}, fmt.Errorf("parsing composer.json: %w", err)
	}
	platform := func(name string) bool {
		return name == "php" || strings.HasPrefix(name, "ext-") || strings.HasPrefix(name, "lib-")
	}
	p := parsed{scripts: map[string]string{}}
	for _, d := range sortedDeps(pkg.Require, false) {
		if !platform(d.Name) {
			p.deps = append(p.deps, d)
		}
	}
	for _, d := range sortedDeps(pkg.RequireDev, true) {
		if !platform(d.Name) {
			p.deps = append(p.deps, d)
		}
	}
	for name, raw := range pkg.Scripts {
		// Composer scripts are either a command or a list of commands.
		var one string
		if err := json.Unmarshal(raw, &one); err == nil {
			p.scripts[name] = one
			continue
		}
		var many []string
		if err := json.Unmarshal(raw, &many); err == nil {
			p.scripts[name] = strings.Join(many, " && ")
		}
	}
	return p, nil
}

func parseGoMod(content string) (parsed, error) {
	f, err := modfile.Parse("go.mod", []byte(content), nil)
	if err != nil {
		return parsed{}, fmt.Errorf("parsing go.mod: %w", err)
	}
	var p parsed
	for _, r := range f.Require {
		p.deps = append(p.deps, Dependency{Name: r.Mod.Path, Version: r.Mod.Version})
	}
	sort.SliceStable(p.deps, func(i, j int) bool { return p.deps[i].Name < p.deps[j].Name })
	return p, nil
}

// tomlVersion extracts a version from either `name = "1.0"` or
// `name = { version = "1.0", ... }`.
func tomlVersion(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s, ok := t["version"].(string); ok {
			return s
		}
	}
	return ""
}

func tomlDeps(table map[string]any, dev bool, skip ...string) []Dependency {
	m := make(map[string]string, len(table))
	for name, v := range table {
		skipped := false
		for _, s := range skip {
			if strings.EqualFold(name, s) {
				skipped = true
			}
		}
		if !skipped {
			m[name] = tomlVersion(v)
		}
	}
	return sortedDeps(m, dev)
}

func parseCargoTOML(content string) (parsed, error) {
	var cargo struct {
		Dependencies      map[string]any `toml:"dependencies"`
		DevDependencies   map[string]any `toml:"dev-dependencies"`
		BuildDependencies map[string]any `toml:"build-dependencies"`
	}
	if err := toml.Unmarshal([]byte(content), &cargo); err != nil {
		return parsed{}, fmt.Errorf("parsing Cargo.toml: %w", err)
	}
	var p parsed
	p.deps = append(p.deps, tomlDeps(cargo.Dependencies, false)...)
	p.deps = append(p.deps, tomlDeps(cargo.BuildDependencies, true)...)
	p.deps = append(p.deps, tomlDeps(cargo.DevDependencies, true)...)
	return p, nil
}

var pep508Name = regexp.MustCompile(`^\s*([A-Za-z0-9][A-Za-z0-9._-]*)(\[[^\]]*\])?\s*(.*)$`)

// splitRequirement splits a PEP 508 requirement into name and version spec.
func splitRequirement(req string) (string, string) {
	if i := strings.Index(req, ";"); i >= 0 {
		req = req[:i]
	}
	m := pep508Name.FindStringSubmatch(req)
	if m == nil {
		return "", ""
	}
	return strings.ToLower(m[1]), strings.TrimSpace(m[3])
}

func requirementDeps(reqs []string, dev bool) []Dependency {
	m := map[string]string{}
	for _, r := range reqs {
		if name, ver := splitRequirement(r); name != "" {
			m[name] = ver
		}
	}
	return sortedDeps(m, dev)
}

func parsePyproject(content string) (parsed, error) {
	var py struct {
		Project struct {
			Dependencies         []string            `toml:"dependencies"`
			OptionalDependencies map[string][]string `toml:"optional-dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies    map[string]any `toml:"dependencies"`
				DevDependencies map[string]any `toml:"dev-dependencies"`
				Group           map[string]struct {
					Dependencies map[string]any `toml:"dependencies"`
				} `toml:"group"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal([]byte(content), &py); err != nil {
		return parsed{}, fmt.Errorf("parsing pyproject.toml: %w", err)
	}
	var p parsed
	p.deps = append(p.deps, requirementDeps(py.Project.Dependencies, false)...)
	p.deps = append(p.deps, tomlDeps(py.Tool.Poetry.Dependencies, false, "python")...)

	groups := make([]string, 0, len(py.Project.OptionalDependencies))
	for g := range py.Project.OptionalDependencies {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		p.deps = append(p.deps, requirementDeps(py.Project.OptionalDependencies[g], true)...)
	}
	p.deps = append(p.deps, tomlDeps(py.Tool.Poetry.DevDependencies, true)...)

	groups = groups[:0]
	for g := range py.Tool.Poetry.Group {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		p.deps = append(p.deps, tomlDeps(py.Tool.Poetry.Group[g].Dependencies, true)...)
	}
	return p, nil
}

func parseRequirements(content string) (parsed, error) {
	var reqs []string
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, " #"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") || strings.Contains(line, "://") {
			continue
		}
		reqs = append(reqs, line)
	}
	if err := sc.Err(); err != nil {
		return parsed{}, fmt.Errorf("reading requirements.txt: %w", err)
	}
	return parsed{deps: requirementDeps(reqs, false)}, nil
}

var (
	gemLine   = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)
	gemGroup  = regexp.MustCompile(`^\s*group\s+.*:(development|test)\b`)
	gemEndRun = regexp.MustCompile(`^\s*end\b`)
)

func parseGemfile(content string) (parsed, error) {
	var p parsed
	seen := map[string]bool{}
	dev := false
	for _, line := range strings.Split(content, "\n") {
		switch {
		case gemGroup.MatchString(line):
			dev = true
			continue
		case gemEndRun.MatchString(line):
			dev = false
			continue
		}
		m := gemLine.FindStringSubmatch(line)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		p.deps = append(p.deps, Dependency{Name: m[1], Version: m[2], Dev: dev})
	}
	sort.SliceStable(p.deps, func(i, j int) bool { return p.deps[i].Name < p.deps[j].Name })
	return p, nil
}
