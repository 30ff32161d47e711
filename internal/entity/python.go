package entity

import (
	"regexp"
	"strings"
)

var (
	pyClass     = regexp.MustCompile(`(?m)^class\s+(\w+)\s*(?:\(([^)]*)\))?\s*:`)
	pyField     = regexp.MustCompile(`^(\w+)\s*:\s*([^=#]+?)\s*(?:=\s*([^#]+?))?\s*(?:#.*)?$`)
	pyEnumValue = regexp.MustCompile(`^(\w+)\s*=\s*(?:'([^']*)'|"([^"]*)"|(\S+))`)
	pyModelBase = regexp.MustCompile(`\b(BaseModel|SQLModel|Base|DeclarativeBase|TypedDict)\b`)
	pyEnumBase  = regexp.MustCompile(`\b(Enum|StrEnum|IntEnum)\b`)
)

func extractPython(_ string, src string) []found {
	var out []found
	lines := strings.Split(src, "\n")
	lineStarts := make([]int, len(lines))
	for i, off := 0, 0; i < len(lines); i++ {
		lineStarts[i] = off
		off += len(lines[i]) + 1
	}

	for _, m := range pyClass.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		bases := ""
		if m[4] >= 0 {
			bases = src[m[4]:m[5]]
		}
		first := lineIndex(lineStarts, m[0])
		body := pyBody(lines, first+1)

		switch {
		case pyEnumBase.MatchString(bases):
			out = append(out, found{offset: m[0], enum: &StatusEnum{Name: name, Values: pyEnumValues(body)}})
		case pyModelBase.MatchString(bases):
			out = append(out, found{offset: m[0], entity: pyEntity(name, KindPydantic, body)})
		case first > 0 && strings.HasPrefix(strings.TrimSpace(lines[first-1]), "@dataclass"):
			out = append(out, found{offset: m[0], entity: pyEntity(name, KindDataclass, body)})
		}
	}
	return out
}

func lineIndex(starts []int, offset int) int {
	i := 0
	for i+1 < len(starts) && starts[i+1] <= offset {
		i++
	}
	return i
}

// pyBody returns the dedented top-level statements of the block starting at
// line start. Nested blocks are dropped.
func pyBody(lines []string, start int) []string {
	var body []string
	indent := -1
	for _, l := range lines[start:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 {
			if n == 0 {
				break
			}
			indent = n
		}
		if n < indent {
			break
		}
		if n == indent {
			body = append(body, strings.TrimSpace(l))
		}
	}
	return body
}

func pyEntity(name, kind string, body []string) *Entity {
	e := &Entity{Name: name, Kind: kind, Fields: []Field{}}
	if len(body) > 0 {
		if d := strings.TrimSpace(body[0]); strings.HasPrefix(d, `"""`) || strings.HasPrefix(d, `'''`) {
			e.Description = strings.TrimSpace(strings.Trim(d, `"'`))
		}
	}
	for _, l := range body {
		fm := pyField.FindStringSubmatch(l)
		if fm == nil || strings.HasPrefix(fm[1], "_") || fm[1] == "model_config" || strings.HasPrefix(fm[2], "ClassVar") {
			continue
		}
		typ := strings.TrimSpace(fm[2])
		f := Field{
			Name:     fm[1],
			Type:     typ,
			Optional: strings.HasPrefix(typ, "Optional[") || strings.Contains(typ, "None"),
		}
		if def := strings.TrimSpace(fm[3]); def != "" {
			f.Constraints = append(f.Constraints, "default="+def)
		}
		e.Fields = append(e.Fields, f)
	}
	return e
}

func pyEnumValues(body []string) []string {
	var vals []string
	for _, l := range body {
		m := pyEnumValue.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		switch {
		case m[2] != "":
			vals = append(vals, m[2])
		case m[3] != "":
			vals = append(vals, m[3])
		default:
			vals = append(vals, m[1])
		}
	}
	return vals
}
