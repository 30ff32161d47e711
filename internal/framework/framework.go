// Package framework classifies a scanned project into one supported
// framework by evaluating a fixed, prioritized rule chain.
package framework

import (
	"regexp"
	"strings"
)

// ID identifies a supported framework. Unknown is a valid result, not an error.
type ID string

// Supported framework identifiers.
const (
	NextJS  ID = "nextjs"
	Nuxt    ID = "nuxt"
	Laravel ID = "laravel"
	Vue     ID = "vue"
	React   ID = "react"
	Unknown ID = "unknown"
)

// Confidence grades how strong the winning evidence was.
type Confidence string

const (
	// ConfidenceHigh means a framework-unique manifest dependency matched.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium means a config file or directory convention matched.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow means only file-extension counts matched.
	ConfidenceLow Confidence = "low"
	// ConfidenceNone accompanies Unknown.
	ConfidenceNone Confidence = "none"
)

// Variants reported in Info.Variant.
const (
	VariantAppRouter   = "App Router"
	VariantPagesRouter = "Pages Router"
	VariantVite        = "Vite"
	VariantCRA         = "Create React App"
)

// Info is the detection outcome for one project.
type Info struct {
	Name       ID         `json:"name"`
	Confidence Confidence `json:"confidence"`
	Version    string     `json:"version,omitempty"`
	Variant    string     `json:"variant,omitempty"`
	// Evidence names the rule that matched.
	Evidence string `json:"evidence,omitempty"`
}

// Known reports whether a framework was detected.
func (i Info) Known() bool {
	return i.Name != "" && i.Name != Unknown
}

// Descriptor documents one supported framework.
type Descriptor struct {
	ID         ID       `json:"id"`
	Name       string   `json:"name"`
	Signatures []string `json:"signatures"`
}

// descriptors is the ordered catalogue of supported frameworks.
var descriptors = []Descriptor{
	{ID: NextJS, Name: "Next.js", Signatures: []string{"package.json with next", "next.config.js", "next.config.mjs", "next.config.ts"}},
	{ID: Laravel, Name: "Laravel", Signatures: []string{"composer.json with laravel/framework", "artisan"}},
	{ID: React, Name: "React (Vite/CRA)", Signatures: []string{"package.json with react", "vite.config with react plugin"}},
	{ID: Vue, Name: "Vue.js", Signatures: []string{"package.json with vue", "vite.config with vue plugin"}},
	{ID: Nuxt, Name: "Nuxt", Signatures: []string{"package.json with nuxt", "nuxt.config.js", "nuxt.config.ts"}},
}

// Supported returns the supported frameworks in catalogue order.
func Supported() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Parse maps a string to an ID, returning Unknown for anything unrecognized.
func Parse(s string) ID {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range descriptors {
		if d.ID == id {
			return id
		}
	}
	return Unknown
}

// extensions lists the source extensions scanned for entities per framework.
var extensions = map[ID][]string{
	NextJS:  {".ts", ".tsx", ".js", ".jsx", ".prisma"},
	React:   {".ts", ".tsx", ".js", ".jsx", ".prisma"},
	Vue:     {".ts", ".js", ".vue", ".prisma"},
	Nuxt:    {".ts", ".js", ".vue", ".prisma"},
	Laravel: {".php"},
}

// allExtensions is used when the framework is unknown.
var allExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".vue", ".prisma", ".php", ".go", ".py"}

// Extensions returns the source extensions relevant to id.
func Extensions(id ID) []string {
	exts, ok := extensions[id]
	if !ok {
		exts = allExtensions
	}
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

var majorVersion = regexp.MustCompile(`^(\d+)`)

// DisplayName renders a human label such as "Next.js 15 (App Router)".
func DisplayName(i Info) string {
	major := ""
	if m := majorVersion.FindStringSubmatch(i.Version); m != nil {
		major = m[1]
	}
	withMajor := func(name, fallback string) string {
		if major == "" {
			major = fallback
		}
		return name + " " + major
	}

	switch i.Name {
	case NextJS:
		variant := i.Variant
		if variant == "" {
			variant = VariantAppRouter
		}
		return withMajor("Next.js", "15") + " (" + variant + ")"
	case Laravel:
		return withMajor("Laravel", "12")
	case React:
		variant := i.Variant
		if variant == "" {
			variant = VariantVite
		}
		return withMajor("React", "19") + " (" + variant + ")"
	case Vue:
		return withMajor("Vue.js", "3") + " (Vite)"
	case Nuxt:
		return withMajor("Nuxt", "3")
	default:
		return string(Unknown)
	}
}
