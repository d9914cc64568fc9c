// Checks that a located <svg> fragment is structurally coherent before
// it is handed to the normalizer: balanced tag nesting, closed quoting
// and the expected boundary shape. This is not schema validation, any
// element names are accepted; the only question answered is whether the
// span is safe to treat as one renderable unit.
package svgcheck

import "strings"

// Reason identifies one structural defect. The set is closed: callers
// map each value onto a fixed user-facing message.
type Reason uint8

const (
	None Reason = iota
	// BoundaryMismatch: the trimmed fragment does not start with the
	// opening token or does not end with the closing token.
	BoundaryMismatch
	// UnmatchedClosingTag: a closing tag arrived while a different tag,
	// or no tag at all, was still open.
	UnmatchedClosingTag
	// UnbalancedDepth: the scan ended with tags left open.
	UnbalancedDepth
	// UnterminatedQuote: the scan ended inside a quoted attribute value.
	UnterminatedQuote
)

func (r Reason) String() string {
	switch r {
	case None:
		return "none"
	case BoundaryMismatch:
		return "boundary mismatch"
	case UnmatchedClosingTag:
		return "unmatched closing tag"
	case UnbalancedDepth:
		return "unbalanced depth"
	case UnterminatedQuote:
		return "unterminated quote"
	}
	return "unknown"
}

// Verdict is the outcome of one validation pass. At most one Reason is
// reported per call, the first defect in scan order.
type Verdict struct {
	Valid  bool
	Reason Reason
}

func valid() Verdict           { return Verdict{Valid: true} }
func invalid(r Reason) Verdict { return Verdict{Reason: r} }

// Validate performs a single quote-aware scan over the whole fragment.
// The trimmed text must start with "<svg" and end with "</svg>"; inside,
// every closing tag must pair with the most recently opened tag and no
// quote may be left open at the end. Comments and directives are skipped
// wholesale, their content is not inspected.
func Validate(fragmentText string) Verdict {
	s := strings.TrimSpace(fragmentText)
	if !strings.HasPrefix(s, "<svg") || !strings.HasSuffix(s, "</svg>") {
		// a lone self-closing root is still one coherent element
		if ok, v := selfClosedRoot(s); ok {
			return v
		}
		return invalid(BoundaryMismatch)
	}
	return scan(s)
}

// selfClosedRoot reports whether the fragment is exactly one
// self-closing <svg .../> tag, and with what verdict.
func selfClosedRoot(s string) (bool, Verdict) {
	if !strings.HasPrefix(s, "<svg") {
		return false, Verdict{}
	}
	_, next := tagName(s, 1)
	end, selfClosing, v := closeTag(s, next)
	if !v.Valid {
		return false, Verdict{}
	}
	if !selfClosing || end != len(s) {
		return false, Verdict{}
	}
	return true, valid()
}

func scan(s string) Verdict {
	var stack []string
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '<' {
			i++
			continue
		}
		switch {
		case strings.HasPrefix(s[i:], "<![CDATA["):
			stop := strings.Index(s[i+9:], "]]>")
			if stop < 0 {
				return invalid(UnbalancedDepth)
			}
			i += 9 + stop + 3
		case strings.HasPrefix(s[i:], "<!--"):
			stop := strings.Index(s[i+4:], "-->")
			if stop < 0 {
				return invalid(UnbalancedDepth)
			}
			i += 4 + stop + 3
		case strings.HasPrefix(s[i:], "<!") || strings.HasPrefix(s[i:], "<?"):
			stop := strings.IndexByte(s[i:], '>')
			if stop < 0 {
				return invalid(UnbalancedDepth)
			}
			i += stop + 1
		case strings.HasPrefix(s[i:], "</"):
			name, next := tagName(s, i+2)
			stop := strings.IndexByte(s[next:], '>')
			if stop < 0 {
				return invalid(UnbalancedDepth)
			}
			if len(stack) == 0 || stack[len(stack)-1] != name {
				return invalid(UnmatchedClosingTag)
			}
			stack = stack[:len(stack)-1]
			i = next + stop + 1
		default:
			name, next := tagName(s, i+1)
			end, selfClosing, verdict := closeTag(s, next)
			if !verdict.Valid {
				return verdict
			}
			if !selfClosing {
				stack = append(stack, name)
			}
			i = end
		}
	}
	if len(stack) != 0 {
		return invalid(UnbalancedDepth)
	}
	return valid()
}

// tagName reads an element name starting at i and returns it with the
// offset of the first character after it.
func tagName(s string, i int) (string, int) {
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

// closeTag scans an opening tag's attribute region, quote-aware, and
// reports where it ends and whether it self-closes. Running out of input
// inside a quote is UnterminatedQuote; running out elsewhere means the
// tag's close was never seen, reported as UnbalancedDepth.
func closeTag(s string, i int) (end int, selfClosing bool, v Verdict) {
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
			return i + 1, s[i-1] == '/', valid()
		}
	}
	if quote != 0 {
		return 0, false, invalid(UnterminatedQuote)
	}
	return 0, false, invalid(UnbalancedDepth)
}
