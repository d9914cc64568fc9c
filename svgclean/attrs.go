package svgclean

import "strings"

// This file holds the minimal tag and attribute scanner the pipeline is
// built on. It understands just enough markup shape (name="value" and
// name='value' pairs, quote-aware tag closes, comments, CDATA) to rewrite
// fragments without a parse tree.

// tagSpan is one opening tag inside a fragment: its element name and the
// [start:end) span covering '<' through '>'.
type tagSpan struct {
	name       string
	start, end int
}

func (t tagSpan) text(s string) string { return s[t.start:t.end] }

// scanTags lists every opening tag in document order, skipping comments,
// CDATA sections, closing tags and directives.
func scanTags(s string) []tagSpan {
	var tags []tagSpan
	i := 0
	for i < len(s) {
		if s[i] != '<' {
			i++
			continue
		}
		switch {
		case strings.HasPrefix(s[i:], "<![CDATA["):
			stop := strings.Index(s[i+9:], "]]>")
			if stop < 0 {
				return tags
			}
			i += 9 + stop + 3
		case strings.HasPrefix(s[i:], "<!--"):
			stop := strings.Index(s[i+4:], "-->")
			if stop < 0 {
				return tags
			}
			i += 4 + stop + 3
		case strings.HasPrefix(s[i:], "</"), strings.HasPrefix(s[i:], "<!"), strings.HasPrefix(s[i:], "<?"):
			stop := strings.IndexByte(s[i:], '>')
			if stop < 0 {
				return tags
			}
			i += stop + 1
		default:
			name, next := readName(s, i+1)
			if name == "" {
				i++
				continue
			}
			end, ok := tagClose(s, next)
			if !ok {
				return tags
			}
			tags = append(tags, tagSpan{name: name, start: i, end: end})
			i = end
		}
	}
	return tags
}

// tagClose returns the offset just past the '>' ending an opening tag,
// quote-aware so '>' inside an attribute value does not count.
func tagClose(s string, i int) (int, bool) {
	var quote byte
	for ; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '>':
			return i + 1, true
		}
	}
	return 0, false
}

func readName(s string, i int) (string, int) {
	j := i
	for j < len(s) && isNameByte(s[j]) {
		j++
	}
	return s[i:j], j
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_' || c == ':' || c == '.'
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// forEachAttr walks the attributes of one opening tag (the full tag
// text, '<' through '>') and calls fn with each attribute's name, value
// and span within the tag text. The span covers the name through the
// closing quote. Returning false stops the walk.
func forEachAttr(tag string, fn func(name, value string, start, end int) bool) {
	_, i := readName(tag, 1)
	for i < len(tag) {
		for i < len(tag) && isSpaceByte(tag[i]) {
			i++
		}
		if i >= len(tag) || tag[i] == '>' || tag[i] == '/' {
			return
		}
		start := i
		name, j := readName(tag, i)
		if name == "" {
			return
		}
		i = j
		for i < len(tag) && isSpaceByte(tag[i]) {
			i++
		}
		if i >= len(tag) || tag[i] != '=' {
			// boolean attribute
			if !fn(name, "", start, j) {
				return
			}
			continue
		}
		i++
		for i < len(tag) && isSpaceByte(tag[i]) {
			i++
		}
		if i >= len(tag) {
			return
		}
		if q := tag[i]; q == '"' || q == '\'' {
			stop := strings.IndexByte(tag[i+1:], q)
			if stop < 0 {
				return
			}
			value := tag[i+1 : i+1+stop]
			i += stop + 2
			if !fn(name, value, start, i) {
				return
			}
			continue
		}
		// unquoted value, tolerated best-effort
		j = i
		for j < len(tag) && !isSpaceByte(tag[j]) && tag[j] != '>' && tag[j] != '/' {
			j++
		}
		if !fn(name, tag[i:j], start, j) {
			return
		}
		i = j
	}
}

// attrValue returns the value of the named attribute within one opening
// tag, if present.
func attrValue(tag, name string) (string, bool) {
	var value string
	found := false
	forEachAttr(tag, func(n, v string, _, _ int) bool {
		if n == name {
			value, found = v, true
			return false
		}
		return true
	})
	return value, found
}

// insertAfterName splices attrs (each entry already carrying its leading
// space) into the tag starting at tagStart, immediately after the
// element name. Other attributes keep their order.
func insertAfterName(s string, tagStart int, attrs []string) string {
	if len(attrs) == 0 {
		return s
	}
	_, at := readName(s, tagStart+1)
	return s[:at] + strings.Join(attrs, "") + s[at:]
}
