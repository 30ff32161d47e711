package entity

import (
	"regexp"
	"strings"
)

var (
	goStruct   = regexp.MustCompile(`(?m)^type\s+([A-Z]\w*)(?:\[[^\]]*\])?\s+struct\s*\{`)
	goTag      = regexp.MustCompile("`([^`]*)`")
	goTagPair  = regexp.MustCompile(`(\w+):"([^"]*)"`)
	goConstBlk = regexp.MustCompile(`(?ms)^const\s*\((.*?)^\)`)
	goConstVal = regexp.MustCompile(`(?m)^\s*(\w+)\s+([A-Z]\w*)\s*=\s*"([^"]*)"`)
	goFieldRe  = regexp.MustCompile(`^([A-Z]\w*(?:\s*,\s*[A-Z]\w*)*)\s+(.+)$`)
)

func extractGo(_ string, src string) []found {
	var out []found
	for _, m := range goStruct.FindAllStringSubmatchIndex(src, -1) {
		body, _, ok := matchBrace(src, m[1]-1)
		if !ok {
			continue
		}
		e := &Entity{
			Name:        src[m[2]:m[3]],
			Description: docComment(src, m[0]),
			Kind:        KindStruct,
			Fields:      []Field{},
		}
		for _, line := range splitTopLevel(stripComments(body), "\n;") {
			e.Fields = append(e.Fields, goFields(line)...)
		}
		out = append(out, found{offset: m[0], entity: e})
	}

	for _, blk := range goConstBlk.FindAllStringSubmatchIndex(src, -1) {
		groups := map[string]*StatusEnum{}
		var order []string
		for _, c := range goConstVal.FindAllStringSubmatch(src[blk[2]:blk[3]], -1) {
			g, ok := groups[c[2]]
			if !ok {
				g = &StatusEnum{Name: c[2]}
				groups[c[2]] = g
				order = append(order, c[2])
			}
			g.Values = append(g.Values, c[3])
		}
		for _, name := range order {
			out = append(out, found{offset: blk[0], enum: groups[name]})
		}
	}
	return out
}

// goFields parses one struct line. Embedded and unexported fields are
// ignored; pointers and omitempty tags mark a field optional.
func goFields(line string) []Field {
	var tag string
	if tm := goTag.FindStringSubmatchIndex(line); tm != nil {
		tag = line[tm[2]:tm[3]]
		line = line[:tm[0]]
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	fm := goFieldRe.FindStringSubmatch(strings.TrimSpace(line))
	if fm == nil {
		return nil
	}
	typ := collapseSpace(fm[2])
	var constraints []string
	optional := strings.HasPrefix(typ, "*")
	for _, p := range goTagPair.FindAllStringSubmatch(tag, -1) {
		constraints = append(constraints, p[1]+`:"`+p[2]+`"`)
		if strings.Contains(p[2], "omitempty") {
			optional = true
		}
	}
	var out []Field
	for _, name := range strings.Split(fm[1], ",") {
		out = append(out, Field{
			Name:        strings.TrimSpace(name),
			Type:        typ,
			Optional:    optional,
			Constraints: constraints,
		})
	}
	return out
}
