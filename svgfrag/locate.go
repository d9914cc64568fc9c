// Locates inline <svg> elements inside arbitrary text buffers.
// Given a buffer and a cursor offset, Locate resolves the smallest
// enclosing <svg>...</svg> span without building a parse tree,
// so it works on source files where the markup is embedded in
// other content (templates, docs, string literals).
package svgfrag

import "strings"

const (
	openToken  = "<svg"
	closeToken = "</svg>"
)

// Fragment is one located <svg> element instance: the original buffer
// plus the half-open [Start:End) span of the element.
// Text[Start:End] begins with the opening token and ends with the
// closing token. Fragments are values and are never mutated downstream.
type Fragment struct {
	Text  string
	Start int
	End   int
}

// Content returns the element slice of the original buffer.
func (f Fragment) Content() string { return f.Text[f.Start:f.End] }

// Locate finds the smallest enclosing <svg> element for the given cursor
// offset. The second return value is false when there is no element at
// this position: no opening token precedes the offset, the opening tag
// never closes, or the element is left unterminated by the end of the
// buffer. None of these are errors, just "nothing here".
//
// The scan is quote-aware: a '>' or a tag-like token inside a quoted
// attribute value is ignored. Nested <svg> elements are counted so an
// offset inside an inner element resolves to that inner element, while
// an offset between an outer and an inner opening tag resolves to the
// outer element with its own matching end.
func Locate(text string, offset int) (Fragment, bool) {
	if offset < 0 || offset > len(text) {
		return Fragment{}, false
	}
	start := lastOpener(text, offset)
	if start < 0 {
		return Fragment{}, false
	}
	end, ok := matchEnd(text, start)
	if !ok {
		return Fragment{}, false
	}
	return Fragment{Text: text, Start: start, End: end}, true
}

// lastOpener returns the start of the nearest opening token at or before
// offset, or -1. The token must be followed by a delimiter so that
// elements like <svgfoo> are not matched.
func lastOpener(text string, offset int) int {
	from := offset
	if max := len(text) - len(openToken); from > max {
		from = max
	}
	for i := from; i >= 0; i-- {
		if openerAt(text, i) {
			return i
		}
	}
	return -1
}

func openerAt(text string, i int) bool {
	if !strings.HasPrefix(text[i:], openToken) {
		return false
	}
	rest := text[i+len(openToken):]
	if rest == "" {
		return false
	}
	switch rest[0] {
	case ' ', '\t', '\n', '\r', '>', '/':
		return true
	}
	return false
}

// matchEnd scans forward from the opening token at start and returns the
// offset just past the matching closing token. It first closes the root
// opening tag (quote-aware, so '>' inside an attribute value does not
// count), then tracks a nesting depth starting at 1 until the closing
// tag that brings it back to 0.
func matchEnd(text string, start int) (int, bool) {
	i, selfClosing, ok := closeOfTag(text, start+len(openToken))
	if !ok {
		return 0, false
	}
	if selfClosing {
		return i, true
	}

	depth := 1
	inTag := false
	var quote byte
	for i < len(text) {
		c := text[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		if inTag {
			switch c {
			case '"', '\'':
				quote = c
			case '>':
				inTag = false
			}
			i++
			continue
		}
		if strings.HasPrefix(text[i:], "<!--") {
			// comments may contain tag-like text
			stop := strings.Index(text[i+4:], "-->")
			if stop < 0 {
				return 0, false
			}
			i += 4 + stop + 3
			continue
		}
		if strings.HasPrefix(text[i:], "<![CDATA[") {
			stop := strings.Index(text[i+9:], "]]>")
			if stop < 0 {
				return 0, false
			}
			i += 9 + stop + 3
			continue
		}
		if strings.HasPrefix(text[i:], closeToken) {
			depth--
			i += len(closeToken)
			if depth == 0 {
				return i, true
			}
			continue
		}
		if openerAt(text, i) {
			end, selfClosed, ok := closeOfTag(text, i+len(openToken))
			if !ok {
				return 0, false
			}
			if !selfClosed {
				depth++
			}
			i = end
			continue
		}
		if c == '<' {
			inTag = true
		}
		i++
	}
	return 0, false
}

// closeOfTag scans the attribute region of an opening tag, starting just
// past its name, and returns the offset past the terminating '>' plus
// whether the tag is self-closing. Quote handling is best-effort: an
// opening quote is closed only by the same character, no escaping is
// assumed.
func closeOfTag(text string, i int) (end int, selfClosing bool, ok bool) {
	var quote byte
	for ; i < len(text); i++ {
		c := text[i]
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
			return i + 1, text[i-1] == '/', true
		}
	}
	return 0, false, false
}
