package entity

import (
	"regexp"
	"strings"
)

var (
	tsInterface = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:declare\s+)?interface\s+([A-Z]\w*)(?:\s*<[^>{]*>)?(?:\s+extends\s+[^{]+)?\s*\{`)
	tsTypeObj   = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?type\s+([A-Z]\w*)(?:\s*<[^>=]*>)?\s*=\s*\{`)
	tsUnion     = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?type\s+([A-Z]\w*)\s*=\s*((?:\s*\|?\s*(?:'[^'\n]*'|"[^"\n]*"))+)\s*;?`)
	tsEnum      = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:declare\s+)?(?:const\s+)?enum\s+([A-Z]\w*)\s*\{`)
	tsConstArr  = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?const\s+([A-Za-z_]\w*)\s*=\s*\[([^\]]*)\]\s*as\s+const`)
	tsMember    = regexp.MustCompile(`^(readonly\s+)?([A-Za-z_$][\w$]*|'[^']+'|"[^"]+")\s*(\?)?\s*:\s*([\s\S]+)$`)
	tsEnumKey   = regexp.MustCompile(`^([A-Za-z_$][\w$]*)\s*(?:=\s*(.+))?$`)
)

func extractTypeScript(_ string, src string) []found {
	var out []found

	for _, m := range tsInterface.FindAllStringSubmatchIndex(src, -1) {
		if e, ok := tsObject(src, m, KindInterface); ok {
			out = append(out, found{offset: m[0], entity: e})
		}
	}
	for _, m := range tsTypeObj.FindAllStringSubmatchIndex(src, -1) {
		if e, ok := tsObject(src, m, KindType); ok {
			out = append(out, found{offset: m[0], entity: e})
		}
	}
	for _, m := range tsUnion.FindAllStringSubmatchIndex(src, -1) {
		vals := literals(src[m[4]:m[5]])
		out = append(out, found{offset: m[0], enum: &StatusEnum{Name: src[m[2]:m[3]], Values: vals}})
	}
	for _, m := range tsEnum.FindAllStringSubmatchIndex(src, -1) {
		body, _, ok := matchBrace(src, m[1]-1)
		if !ok {
			continue
		}
		var vals []string
		for _, member := range splitTopLevel(stripComments(body), ",") {
			km := tsEnumKey.FindStringSubmatch(strings.TrimSpace(member))
			if km == nil {
				continue
			}
			if lit := literals(km[2]); len(lit) == 1 {
				vals = append(vals, lit[0])
			} else {
				vals = append(vals, km[1])
			}
		}
		out = append(out, found{offset: m[0], enum: &StatusEnum{Name: src[m[2]:m[3]], Values: vals}})
	}
	for _, m := range tsConstArr.FindAllStringSubmatchIndex(src, -1) {
		out = append(out, found{offset: m[0], enum: &StatusEnum{Name: src[m[2]:m[3]], Values: literals(src[m[4]:m[5]])}})
	}
	return out
}

// tsObject builds an entity from an interface or object type match whose
// final byte is the opening brace. Component prop and emit shapes are
// skipped.
func tsObject(src string, m []int, kind string) (*Entity, bool) {
	name := src[m[2]:m[3]]
	if strings.HasSuffix(name, "Props") || strings.HasSuffix(name, "Emits") {
		return nil, false
	}
	body, _, ok := matchBrace(src, m[1]-1)
	if !ok {
		return nil, false
	}
	e := &Entity{
		Name:        name,
		Description: docComment(src, m[0]),
		Kind:        kind,
		Fields:      []Field{},
	}
	for _, member := range splitTopLevel(stripComments(body), ";,\n") {
		member = strings.TrimSpace(member)
		fm := tsMember.FindStringSubmatch(member)
		if fm == nil {
			continue
		}
		f := Field{
			Name:     strings.Trim(fm[2], `'"`),
			Type:     collapseSpace(fm[4]),
			Optional: fm[3] == "?",
		}
		if fm[1] != "" {
			f.Constraints = append(f.Constraints, "readonly")
		}
		if strings.Contains(f.Type, "undefined") {
			f.Optional = true
		}
		e.Fields = append(e.Fields, f)
	}
	return e, true
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(strings.TrimRight(strings.TrimSpace(s), ";,")), " ")
}
