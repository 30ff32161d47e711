package entity

import (
	"strings"
)

// matchBrace returns the text between the brace at open and its partner.
// String literals and comments are skipped while counting.
func matchBrace(src string, open int) (string, int, bool) {
	if open >= len(src) || src[open] != '{' {
		return "", 0, false
	}
	depth := 0
	for i := open; i < len(src); i++ {
		switch c := src[i]; c {
		case '"', '\'', '`':
			i = skipString(src, i)
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				i = skipLine(src, i)
			} else if i+1 < len(src) && src[i+1] == '*' {
				if end := strings.Index(src[i+2:], "*/"); end >= 0 {
					i += end + 3
				} else {
					return "", 0, false
				}
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open+1 : i], i, true
			}
		}
	}
	return "", 0, false
}

// skipString returns the index of the quote closing the literal at i. An
// unterminated single-line literal ends before the newline.
func skipString(src string, i int) int {
	q := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case q:
			return j
		case '\n':
			if q != '`' {
				return j - 1
			}
		}
	}
	return len(src) - 1
}

func skipLine(src string, i int) int {
	if nl := strings.IndexByte(src[i:], '\n'); nl >= 0 {
		return i + nl - 1
	}
	return len(src) - 1
}

// stripComments removes // and /* */ comments outside string literals.
func stripComments(src string) string {
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			end := skipString(src, i)
			b.WriteString(src[i : end+1])
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			i = skipLine(src, i)
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return b.String()
			}
			i += end + 3
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// splitTopLevel splits s at any of seps that occur outside brackets.
func splitTopLevel(s, seps string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			i = skipString(s, i)
		case strings.IndexByte("{([<", c) >= 0:
			depth++
		case c == '>' && i > 0 && s[i-1] == '=':
			// arrow, not a generic close
		case strings.IndexByte("})]>", c) >= 0:
			if depth > 0 {
				depth--
			}
		case depth == 0 && strings.IndexByte(seps, c) >= 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// docComment returns the first line of the doc comment ending right before
// offset: a /** */ block, or a run of //, /// or # lines.
func docComment(src string, offset int) string {
	before := strings.TrimRight(src[:offset], " \t\r\n")
	if strings.HasSuffix(before, "*/") {
		start := strings.LastIndex(before, "/**")
		if start < 0 {
			return ""
		}
		return firstLine(strings.Split(before[start+3:len(before)-2], "\n"), "*")
	}

	lines := strings.Split(before, "\n")
	var run []string
	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(l, "//") {
			break
		}
		run = append([]string{l}, run...)
	}
	return firstLine(run, "/")
}

func firstLine(lines []string, marker string) string {
	for _, l := range lines {
		l = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(l), marker))
		if l == "" || strings.HasPrefix(l, "@") {
			continue
		}
		if len(l) > 160 {
			l = l[:160]
		}
		return l
	}
	return ""
}

// literals returns the quoted string values in s, in order.
func literals(s string) []string {
	var out []string
	for i := 0; i < len(s); i++ {
		if c := s[i]; c == '"' || c == '\'' || c == '`' {
			end := skipString(s, i)
			if end > i {
				out = append(out, s[i+1:end])
			}
			i = end
		}
	}
	return out
}
