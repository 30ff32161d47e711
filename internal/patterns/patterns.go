// Package patterns infers architecture conventions from a scanned project by
// evidence voting over a declarative rule table.
package patterns

import (
	"regexp"

	"github.com/papapumpkin/steer/internal/framework"
	"github.com/papapumpkin/steer/internal/scan"
)

// Dimension is one independently inferred architecture property.
type Dimension string

// Dimensions in report order.
const (
	StateManagement  Dimension = "stateManagement"
	RoutingStyle     Dimension = "routingStyle"
	APIPattern       Dimension = "apiPattern"
	ComponentPattern Dimension = "componentPattern"
	Styling          Dimension = "styling"
	Authentication   Dimension = "authentication"
	DataFetching     Dimension = "dataFetching"
	NamingConvention Dimension = "namingConvention"
)

// UnknownValue is reported for a dimension with no evidence or a tie.
const UnknownValue = "unknown"

var dimensions = []Dimension{
	StateManagement, RoutingStyle, APIPattern, ComponentPattern,
	Styling, Authentication, DataFetching, NamingConvention,
}

var labels = map[Dimension]string{
	StateManagement:  "State Management",
	RoutingStyle:     "Routing",
	APIPattern:       "API Pattern",
	ComponentPattern: "Component Patterns",
	Styling:          "Styling",
	Authentication:   "Authentication",
	DataFetching:     "Data Fetching",
	NamingConvention: "Naming Conventions",
}

// Dimensions returns every dimension in report order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	copy(out, dimensions)
	return out
}

// Label returns the section heading for d.
func Label(d Dimension) string {
	if l, ok := labels[d]; ok {
		return l
	}
	return string(d)
}

// Patterns maps every dimension to its inferred value.
type Patterns map[Dimension]string

// Known returns the dimensions with a value other than unknown, in order.
func (p Patterns) Known() []Dimension {
	var out []Dimension
	for _, d := range dimensions {
		if v := p[d]; v != "" && v != UnknownValue {
			out = append(out, d)
		}
	}
	return out
}

// Tally counts votes per candidate value.
type Tally map[string]int

// Input is the evidence available to the analyzer.
type Input struct {
	Scan         *scan.Result
	Framework    framework.ID
	Dependencies []string
}

// contentExts limits content rules to source and stylesheet files.
var contentExts = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true, ".mjs": true,
	".vue": true, ".php": true, ".css": true, ".scss": true, ".py": true, ".go": true,
}

// Evidence returns the vote tallies per dimension. Each rule contributes one
// vote per matching file or dependency name.
func Evidence(in Input) map[Dimension]Tally {
	out := make(map[Dimension]Tally, len(dimensions))
	for _, d := range dimensions {
		out[d] = Tally{}
	}
	for _, r := range rules {
		if !r.appliesTo(in.Framework) {
			continue
		}
		if n := r.votes(in); n > 0 {
			out[r.Dimension][r.Value] += n
		}
	}
	return out
}

// Analyze picks the plurality value per dimension. Ties and dimensions with
// no evidence resolve to unknown.
func Analyze(in Input) Patterns {
	ev := Evidence(in)
	p := make(Patterns, len(dimensions))
	for _, d := range dimensions {
		p[d] = winner(ev[d])
	}
	return p
}

func winner(t Tally) string {
	best, bestVotes, tied := UnknownValue, 0, false
	for v, n := range t {
		switch {
		case n > bestVotes:
			best, bestVotes, tied = v, n, false
		case n == bestVotes:
			tied = true
		}
	}
	if bestVotes == 0 || tied {
		return UnknownValue
	}
	return best
}

func (r Rule) appliesTo(id framework.ID) bool {
	if len(r.Frameworks) == 0 {
		return true
	}
	for _, f := range r.Frameworks {
		if f == id {
			return true
		}
	}
	return false
}

func (r Rule) votes(in Input) int {
	n := 0
	switch r.Source {
	case FromDependency:
		for _, name := range in.Dependencies {
			if r.Pattern.MatchString(name) {
				n++
			}
		}
	case FromPath:
		for _, f := range in.Scan.Files {
			if r.Pattern.MatchString(f.Path) {
				n++
			}
		}
	case FromBasename:
		for _, f := range in.Scan.Files {
			if r.Pattern.MatchString(f.Base()) {
				n++
			}
		}
	case FromContent:
		for _, f := range in.Scan.Files {
			if f.Loaded && contentExts[f.Ext()] && r.Pattern.Match(f.Content) {
				n++
			}
		}
	}
	return n
}

// Source says what a rule's pattern is matched against.
type Source int

// Rule sources.
const (
	FromDependency Source = iota
	FromPath
	FromContent
	FromBasename
)

// Rule is one piece of evidence for a candidate value.
type Rule struct {
	Dimension  Dimension
	Value      string
	Source     Source
	Pattern    *regexp.Regexp
	Frameworks []framework.ID
}
