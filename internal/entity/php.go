package entity

import "regexp"

var (
	phpModel    = regexp.MustCompile(`(?m)^\s*(?:(?:abstract|final)\s+)?class\s+(\w+)\s+extends\s+\\?(?:[\w\\]*\\)?(Model|Authenticatable|Pivot)\b[^{]*\{`)
	phpFillable = regexp.MustCompile(`\$fillable\s*=\s*\[([^\]]*)\]`)
	phpCasts    = regexp.MustCompile(`(?s)(?:\$casts\s*=\s*\[|function\s+casts\s*\(\s*\)\s*:\s*array\s*\{\s*return\s*\[)(.*?)\]`)
	phpCastPair = regexp.MustCompile(`['"](\w+)['"]\s*=>\s*(?:'([^']+)'|"([^"]+)"|([\w\\]+::class))`)
	phpEnum     = regexp.MustCompile(`(?m)^\s*enum\s+(\w+)\s*(?::\s*(?:string|int))?(?:\s+implements\s+[^{]+)?\s*\{`)
	phpCase     = regexp.MustCompile(`(?m)^\s*case\s+(\w+)\s*(?:=\s*(?:'([^']*)'|"([^"]*)"|(\d+)))?\s*;`)
)

func extractPHP(_ string, src string) []found {
	var out []found

	for _, m := range phpModel.FindAllStringSubmatchIndex(src, -1) {
		body, _, ok := matchBrace(src, m[1]-1)
		if !ok {
			continue
		}
		casts := map[string]string{}
		if cm := phpCasts.FindStringSubmatch(body); cm != nil {
			for _, pair := range phpCastPair.FindAllStringSubmatch(cm[1], -1) {
				casts[pair[1]] = pair[2] + pair[3] + pair[4]
			}
		}
		e := &Entity{
			Name:        src[m[2]:m[3]],
			Description: docComment(src, m[0]),
			Kind:        KindEloquent,
			Fields:      []Field{},
		}
		if fm := phpFillable.FindStringSubmatch(body); fm != nil {
			for _, name := range literals(fm[1]) {
				typ := casts[name]
				if typ == "" {
					typ = "string"
				}
				e.Fields = append(e.Fields, Field{Name: name, Type: typ, Constraints: []string{"fillable"}})
			}
		}
		out = append(out, found{offset: m[0], entity: e})
	}

	for _, m := range phpEnum.FindAllStringSubmatchIndex(src, -1) {
		body, _, ok := matchBrace(src, m[1]-1)
		if !ok {
			continue
		}
		var vals []string
		for _, c := range phpCase.FindAllStringSubmatch(body, -1) {
			switch {
			case c[2] != "":
				vals = append(vals, c[2])
			case c[3] != "":
				vals = append(vals, c[3])
			case c[4] != "":
				vals = append(vals, c[4])
			default:
				vals = append(vals, c[1])
			}
		}
		out = append(out, found{offset: m[0], enum: &StatusEnum{Name: src[m[2]:m[3]], Values: vals}})
	}
	return out
}
