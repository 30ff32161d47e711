package scan

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultIgnoreDirs are skipped in every scan: version control, dependency
// installs, build output and framework caches. Entries without a slash match
// a directory of that name at any depth; entries with a slash are anchored at
// the project root.
var defaultIgnoreDirs = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"vendor",
	"dist",
	"build",
	"out",
	".next",
	".nuxt",
	".output",
	".svelte-kit",
	"target",
	"coverage",
	"__pycache__",
	".venv",
	"venv",
	".turbo",
	".cache",
	".idea",
	".vscode",
	"storage/framework",
	"bootstrap/cache",
}

// IgnoreRules decides which paths a scan never lists.
type IgnoreRules struct {
	// Dirs are directory names (any depth) or root-anchored slash paths.
	Dirs []string
	// Globs are doublestar patterns matched against the slash-separated
	// path relative to the project root.
	Globs []string
}

// DefaultIgnore returns the built-in ignore set.
func DefaultIgnore() IgnoreRules {
	dirs := make([]string, len(defaultIgnoreDirs))
	copy(dirs, defaultIgnoreDirs)
	return IgnoreRules{Dirs: dirs}
}

// With returns a copy of r with extra glob patterns appended.
func (r IgnoreRules) With(globs ...string) IgnoreRules {
	out := IgnoreRules{
		Dirs:  append([]string(nil), r.Dirs...),
		Globs: append([]string(nil), r.Globs...),
	}
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g != "" {
			out.Globs = append(out.Globs, g)
		}
	}
	return out
}

// Validate reports the first malformed glob pattern.
func (r IgnoreRules) Validate() error {
	for _, g := range r.Globs {
		if !doublestar.ValidatePattern(g) {
			return fmt.Errorf("invalid ignore pattern %q", g)
		}
	}
	return nil
}

// Match reports whether rel (slash-separated, relative to the root) is
// ignored. For files, every ancestor directory is checked against Dirs; for
// directories the directory itself is checked as well.
func (r IgnoreRules) Match(rel string, isDir bool) bool {
	rel = strings.TrimPrefix(path.Clean(rel), "./")
	if rel == "." || rel == "" {
		return false
	}

	parts := strings.Split(rel, "/")
	last := len(parts) - 1
	if isDir {
		last = len(parts)
	}
	for i := 0; i < last; i++ {
		dirPath := strings.Join(parts[:i+1], "/")
		for _, d := range r.Dirs {
			if strings.Contains(d, "/") {
				if dirPath == d {
					return true
				}
				continue
			}
			if parts[i] == d {
				return true
			}
		}
	}

	for _, g := range r.Globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}

// ripgrepGlobs converts the rules into rg --glob exclusion arguments.
func (r IgnoreRules) ripgrepGlobs() []string {
	args := make([]string, 0, 2*(len(r.Dirs)+len(r.Globs)))
	for _, d := range r.Dirs {
		if strings.Contains(d, "/") {
			args = append(args, "--glob", "!/"+d+"/")
			continue
		}
		args = append(args, "--glob", "!"+d+"/")
	}
	for _, g := range r.Globs {
		args = append(args, "--glob", "!"+g)
	}
	return args
}
