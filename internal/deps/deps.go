// Package deps parses project manifests into a categorized dependency set
// and collects the scripts and environment variables a project declares.
package deps

import (
	"fmt"
	"sort"

	"github.com/papapumpkin/steer/internal/scan"
)

// Dependency is one declared package.
type Dependency struct {
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Dev      bool   `json:"dev,omitempty"`
	Manifest string `json:"manifest"`
	Purpose  string `json:"purpose,omitempty"`
}

// Set maps each category to its dependencies, sorted by name. A name appears
// in exactly one category.
type Set map[Category][]Dependency

// Categories returns the non-empty categories in taxonomy order.
func (s Set) Categories() []Category {
	var out []Category
	for _, c := range taxonomy {
		if len(s[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Names returns every dependency name, sorted.
func (s Set) Names() []string {
	var out []string
	for _, list := range s {
		for _, d := range list {
			out = append(out, d.Name)
		}
	}
	sort.Strings(out)
	return out
}

// CategoryOf returns the category holding name.
func (s Set) CategoryOf(name string) (Category, bool) {
	for c, list := range s {
		for _, d := range list {
			if d.Name == name {
				return c, true
			}
		}
	}
	return "", false
}

// Has reports whether name is declared under c.
func (s Set) Has(c Category, name string) bool {
	for _, d := range s[c] {
		if d.Name == name {
			return true
		}
	}
	return false
}

// Lookup finds a dependency by name in any category.
func (s Set) Lookup(name string) (Dependency, bool) {
	for _, list := range s {
		for _, d := range list {
			if d.Name == name {
				return d, true
			}
		}
	}
	return Dependency{}, false
}

// Len returns the number of dependencies.
func (s Set) Len() int {
	n := 0
	for _, list := range s {
		n += len(list)
	}
	return n
}

// Note records a manifest that could not be parsed.
type Note struct {
	Manifest string
	Err      error
}

func (n Note) Error() string {
	return fmt.Sprintf("%s: %v", n.Manifest, n.Err)
}

func (n Note) Unwrap() error { return n.Err }

// Extraction is everything the package pulls out of one scan.
type Extraction struct {
	Dependencies Set
	// Scripts maps script names to commands. package.json wins over
	// composer.json on a name collision.
	Scripts   map[string]string
	EnvVars   []string
	Manifests []string
	Notes     []Note
}

// Extract parses every known manifest present at the project root. A
// malformed manifest yields a Note; the remaining manifests still parse.
func Extract(res *scan.Result) Extraction {
	ex := Extraction{Dependencies: Set{}, Scripts: map[string]string{}}
	seen := map[string]bool{}

	for _, m := range manifests {
		content := res.Content(m.path)
		if content == "" {
			continue
		}
		parsed, err := m.parse(content)
		if err != nil {
			ex.Notes = append(ex.Notes, Note{Manifest: m.path, Err: err})
			continue
		}
		ex.Manifests = append(ex.Manifests, m.path)
		for _, d := range parsed.deps {
			if d.Name == "" || seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			d.Manifest = m.path
			cat, purpose := Categorize(d.Name)
			d.Purpose = purpose
			ex.Dependencies[cat] = append(ex.Dependencies[cat], d)
		}
		for name, cmd := range parsed.scripts {
			if _, ok := ex.Scripts[name]; !ok {
				ex.Scripts[name] = cmd
			}
		}
	}

	for c := range ex.Dependencies {
		list := ex.Dependencies[c]
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	ex.EnvVars = EnvVars(res)
	return ex
}

// ScriptNames returns the script names in sorted order.
func (ex Extraction) ScriptNames() []string {
	names := make([]string, 0, len(ex.Scripts))
	for n := range ex.Scripts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
