// Package entity extracts domain models and enum-like status groups from
// source files with lightweight textual matching. It does not parse or
// type-check; results are best effort.
package entity

import (
	"sort"
	"strings"

	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/scan"
)

// Entity kinds.
const (
	KindInterface = "interface"
	KindType      = "type"
	KindModel     = "model"
	KindEloquent  = "eloquent"
	KindStruct    = "struct"
	KindPydantic  = "pydantic"
	KindDataclass = "dataclass"
)

// Field is one declared member of an entity.
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Optional    bool     `json:"optional,omitempty"`
	Constraints []string `json:"constraints,omitempty"`
}

// Entity is one discovered domain type. Entities are unique by
// (Name, SourceFile); equal names from different files are kept apart.
type Entity struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
	SourceFile  string  `json:"sourceFile"`
	Kind        string  `json:"kind"`
}

// StatusEnum is a fixed set of values bound to one symbol.
type StatusEnum struct {
	Name       string   `json:"name"`
	Values     []string `json:"values"`
	SourceFile string   `json:"sourceFile"`
}

// Result holds everything extracted from one scan.
type Result struct {
	Entities    []Entity     `json:"entities"`
	StatusEnums []StatusEnum `json:"statusEnums"`
}

// found pairs an extracted item with its offset so matches from different
// extractors interleave in source order.
type found struct {
	offset int
	entity *Entity
	enum   *StatusEnum
}

type extractor func(path, src string) []found

var extractors = map[string]extractor{
	".ts":     extractTypeScript,
	".tsx":    extractTypeScript,
	".js":     extractTypeScript,
	".jsx":    extractTypeScript,
	".vue":    extractTypeScript,
	".prisma": extractPrisma,
	".php":    extractPHP,
	".go":     extractGo,
	".py":     extractPython,
}

// Extract scans the files whose extensions suit id. Output is ordered by
// source file, then by position within the file.
func Extract(res *scan.Result, id framework.ID) Result {
	var out Result
	seenEntity := map[[2]string]bool{}
	seenEnum := map[[2]string]bool{}

	for _, f := range res.WithExt(framework.Extensions(id)...) {
		if !f.Loaded || skipFile(f.Path) {
			continue
		}
		ex, ok := extractors[f.Ext()]
		if !ok {
			continue
		}
		items := ex(f.Path, string(f.Content))
		sort.SliceStable(items, func(i, j int) bool { return items[i].offset < items[j].offset })
		for _, it := range items {
			switch {
			case it.entity != nil:
				key := [2]string{it.entity.Name, f.Path}
				if seenEntity[key] {
					continue
				}
				seenEntity[key] = true
				it.entity.SourceFile = f.Path
				out.Entities = append(out.Entities, *it.entity)
			case it.enum != nil:
				key := [2]string{it.enum.Name, f.Path}
				if seenEnum[key] || len(it.enum.Values) < 2 {
					continue
				}
				seenEnum[key] = true
				it.enum.SourceFile = f.Path
				out.StatusEnums = append(out.StatusEnums, *it.enum)
			}
		}
	}
	return out
}

// skipFile excludes tests, stories and generated declaration bundles.
func skipFile(p string) bool {
	base := p[strings.LastIndex(p, "/")+1:]
	for _, s := range []string{".test.", ".spec.", ".stories.", ".min."} {
		if strings.Contains(base, s) {
			return true
		}
	}
	return strings.HasSuffix(base, "_test.go") ||
		strings.HasPrefix(base, "test_") ||
		strings.Contains(p, "__tests__/") ||
		strings.Contains(p, "/migrations/") && strings.HasSuffix(base, ".php")
}

// ByName returns the entities called name, in extraction order.
func (r Result) ByName(name string) []Entity {
	var out []Entity
	for _, e := range r.Entities {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
