// Package analysis assembles scanner, detector, extractor and analyzer
// output into one immutable ProjectAnalysis, with an optional cache keyed on
// scan fingerprints.
package analysis

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/papapumpkin/steer/internal/deps"
	"github.com/papapumpkin/steer/internal/entity"
	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/patterns"
	"github.com/papapumpkin/steer/internal/scan"
)

// Depth selects how much of the pipeline runs.
type Depth string

const (
	// Basic covers framework, dependencies, scripts, env vars and components.
	Basic Depth = "basic"
	// Deep adds patterns, entities, status enums and the README summary.
	Deep Depth = "deep"
)

// treeDepth renders the top level and one level below it.
const treeDepth = 1

// ProjectAnalysis is the sole input to rendering. It is never modified after
// Build returns it.
type ProjectAnalysis struct {
	Root          string                 `json:"root"`
	Name          string                 `json:"name"`
	Framework     framework.Info         `json:"framework"`
	FrameworkName string                 `json:"frameworkName"`
	Dependencies  deps.Set               `json:"dependencies"`
	Scripts       map[string]string      `json:"scripts"`
	EnvVars       []string               `json:"envVars"`
	Components    []string               `json:"components"`
	Tree          string                 `json:"tree"`
	Readme        entity.Readme          `json:"readme"`
	Patterns      patterns.Patterns      `json:"patterns,omitempty"`
	Entities      []entity.Entity        `json:"entities,omitempty"`
	StatusEnums   []entity.StatusEnum    `json:"statusEnums,omitempty"`
	Stats         scan.Stats             `json:"stats"`
	Fingerprint   string                 `json:"fingerprint"`
	Diagnostics   []*PartialParseWarning `json:"diagnostics,omitempty"`
	Depth         Depth                  `json:"depth"`
}

// Deep reports whether the deep stages ran.
func (a *ProjectAnalysis) Deep() bool {
	return a.Depth == Deep
}

// ScriptNames returns the script names in sorted order.
func (a *ProjectAnalysis) ScriptNames() []string {
	return deps.Extraction{Scripts: a.Scripts}.ScriptNames()
}

// Build runs the analysis stages over one scan. Manifest and parse
// problems are recorded in Diagnostics; Build itself cannot fail.
func Build(res *scan.Result, depth Depth) *ProjectAnalysis {
	info := framework.Detect(res)
	ex := deps.Extract(res)

	a := &ProjectAnalysis{
		Root:          res.Root,
		Name:          projectName(res),
		Framework:     info,
		FrameworkName: framework.DisplayName(info),
		Dependencies:  ex.Dependencies,
		Scripts:       ex.Scripts,
		EnvVars:       ex.EnvVars,
		Components:    entity.Components(res, info.Name),
		Tree:          scan.RenderTree(res.Paths(), treeDepth),
		Stats:         res.Stats,
		Fingerprint:   res.Fingerprint,
		Depth:         Basic,
	}
	for _, n := range ex.Notes {
		a.Diagnostics = append(a.Diagnostics, newWarning(n.Manifest, n.Err))
	}
	if depth != Deep {
		return a
	}

	a.Depth = Deep
	a.Patterns = patterns.Analyze(patterns.Input{
		Scan:         res,
		Framework:    info.Name,
		Dependencies: ex.Dependencies.Names(),
	})
	ents := entity.Extract(res, info.Name)
	a.Entities = ents.Entities
	a.StatusEnums = ents.StatusEnums
	a.Readme = entity.ParseReadme(res)
	return a
}

// projectName prefers the manifest name and falls back to the root
// directory name.
func projectName(res *scan.Result) string {
	for _, p := range []string{"package.json", "composer.json"} {
		var m struct {
			Name string `json:"name"`
		}
		if c := res.Content(p); c != "" && json.Unmarshal([]byte(c), &m) == nil && m.Name != "" {
			return m.Name
		}
	}
	if c := res.Content("go.mod"); c != "" {
		if path := modfile.ModulePath([]byte(c)); path != "" {
			return path[strings.LastIndex(path, "/")+1:]
		}
	}
	return filepath.Base(res.Root)
}
