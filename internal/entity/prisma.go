package entity

import (
	"regexp"
	"strings"
)

var (
	prismaModel = regexp.MustCompile(`(?m)^model\s+(\w+)\s*\{`)
	prismaEnum  = regexp.MustCompile(`(?m)^enum\s+(\w+)\s*\{`)
	prismaField = regexp.MustCompile(`^(\w+)\s+(\w+)(\[\])?(\?)?\s*(.*)$`)
	prismaAttrs = []*regexp.Regexp{
		regexp.MustCompile(`@id\b`),
		regexp.MustCompile(`@unique\b`),
		regexp.MustCompile(`@default\((?:[^()]|\([^()]*\))*\)`),
		regexp.MustCompile(`@updatedAt\b`),
		regexp.MustCompile(`@relation\b`),
		regexp.MustCompile(`@db\.\w+(?:\([^)]*\))?`),
	}
)

func extractPrisma(_ string, src string) []found {
	var out []found
	for _, m := range prismaModel.FindAllStringSubmatchIndex(src, -1) {
		body, _, ok := matchBrace(src, m[1]-1)
		if !ok {
			continue
		}
		e := &Entity{
			Name:        src[m[2]:m[3]],
			Description: prismaDoc(src, m[0]),
			Kind:        KindModel,
			Fields:      []Field{},
		}
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if i := strings.Index(line, "//"); i >= 0 {
				line = strings.TrimSpace(line[:i])
			}
			if line == "" || strings.HasPrefix(line, "@@") {
				continue
			}
			fm := prismaField.FindStringSubmatch(line)
			if fm == nil {
				continue
			}
			f := Field{Name: fm[1], Type: fm[2] + fm[3], Optional: fm[4] == "?"}
			for _, a := range prismaAttrs {
				if c := a.FindString(fm[5]); c != "" {
					f.Constraints = append(f.Constraints, c)
				}
			}
			e.Fields = append(e.Fields, f)
		}
		out = append(out, found{offset: m[0], entity: e})
	}

	for _, m := range prismaEnum.FindAllStringSubmatchIndex(src, -1) {
		body, _, ok := matchBrace(src, m[1]-1)
		if !ok {
			continue
		}
		var vals []string
		for _, line := range strings.Split(body, "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 || strings.HasPrefix(fields[0], "//") || strings.HasPrefix(fields[0], "@@") {
				continue
			}
			vals = append(vals, fields[0])
		}
		out = append(out, found{offset: m[0], enum: &StatusEnum{Name: src[m[2]:m[3]], Values: vals}})
	}
	return out
}

// prismaDoc reads the /// lines directly above a declaration.
func prismaDoc(src string, offset int) string {
	lines := strings.Split(strings.TrimRight(src[:offset], " \t\r\n"), "\n")
	var run []string
	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(l, "///") {
			break
		}
		run = append([]string{l}, run...)
	}
	return firstLine(run, "/")
}
