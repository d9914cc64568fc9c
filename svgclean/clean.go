// Rewrites a structurally valid <svg> fragment into a self-contained,
// renderable document: missing namespaces and dimensions are injected,
// comments are dropped, dangling url(#id) references are pruned and
// relative image references are resolved to absolute form. Normalization
// never fails; when a rewrite would be ambiguous the content is left
// as it was.
package svgclean

import "strings"

const (
	// Namespaces injected when absent.
	SVGNamespace   = "http://www.w3.org/2000/svg"
	XlinkNamespace = "http://www.w3.org/1999/xlink"

	defaultViewBox = "0 0 100 100"
	defaultLength  = "100"
)

// urlAttrs is the closed list of attribute kinds carrying url(#id)
// references that are pruned when the target id is not declared.
var urlAttrs = map[string]bool{
	"fill":         true,
	"stroke":       true,
	"clip-path":    true,
	"mask":         true,
	"filter":       true,
	"marker-start": true,
	"marker-mid":   true,
	"marker-end":   true,
}

// Normalizer rewrites fragments. The zero value is not usable, call New.
type Normalizer struct {
	// Fallbacks used when the root carries no usable dimensions.
	FallbackViewBox string
	FallbackWidth   string
	FallbackHeight  string

	// Resolver, when set, turns relative image references into absolute
	// ones. It must be fast and side-effect free; a declined or failed
	// resolution leaves the reference untouched.
	Resolver PathResolver
}

// New returns a Normalizer with the default fallback box.
func New() *Normalizer {
	return &Normalizer{
		FallbackViewBox: defaultViewBox,
		FallbackWidth:   defaultLength,
		FallbackHeight:  defaultLength,
	}
}

// Normalize applies the rewrite pipeline in fixed order. It is total:
// it never fails, and running it again on its own output is a no-op.
func (n *Normalizer) Normalize(fragment string) string {
	s := stripComments(fragment)
	s = injectNamespaces(s)
	s = n.resolveDimensions(s)
	s = pruneDanglingRefs(s)
	s = n.resolveImages(s)
	s = propagateNamespace(s)
	return s
}

// rootTag returns the span of the first <svg> opening tag.
func rootTag(s string) (tagSpan, bool) {
	for _, t := range scanTags(s) {
		if t.name == "svg" {
			return t, true
		}
	}
	return tagSpan{}, false
}

// stripComments removes <!-- --> blocks. CDATA sections pass through
// untouched, as does an unterminated comment (left as-is rather than
// guessing where it was meant to end).
func stripComments(s string) string {
	if !strings.Contains(s, "<!--") {
		return s
	}
	var b strings.Builder
	i := 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], "<![CDATA[") {
			stop := strings.Index(s[i+9:], "]]>")
			if stop < 0 {
				b.WriteString(s[i:])
				break
			}
			b.WriteString(s[i : i+9+stop+3])
			i += 9 + stop + 3
			continue
		}
		if strings.HasPrefix(s[i:], "<!--") {
			stop := strings.Index(s[i+4:], "-->")
			if stop < 0 {
				b.WriteString(s[i:])
				break
			}
			i += 4 + stop + 3
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// injectNamespaces adds xmlns when the root has no default namespace
// declaration, and xmlns:xlink when an xlink-prefixed attribute is used
// anywhere without the namespace being declared.
func injectNamespaces(s string) string {
	root, ok := rootTag(s)
	if !ok {
		return s
	}
	tag := root.text(s)
	var add []string
	if _, ok := attrValue(tag, "xmlns"); !ok {
		add = append(add, ` xmlns="`+SVGNamespace+`"`)
	}
	if usesXlink(s) {
		if _, ok := attrValue(tag, "xmlns:xlink"); !ok {
			add = append(add, ` xmlns:xlink="`+XlinkNamespace+`"`)
		}
	}
	return insertAfterName(s, root.start, add)
}

func usesXlink(s string) bool {
	used := false
	for _, t := range scanTags(s) {
		forEachAttr(t.text(s), func(name, _ string, _, _ int) bool {
			if strings.HasPrefix(name, "xlink:") {
				used = true
				return false
			}
			return true
		})
		if used {
			break
		}
	}
	return used
}

// resolveDimensions guarantees the root carries viewBox, width and
// height. Existing values are never overwritten: a missing viewBox is
// synthesized from numeric width/height when both are present, otherwise
// the fallback box is used, and a missing width or height gets the
// fallback length individually.
func (n *Normalizer) resolveDimensions(s string) string {
	root, ok := rootTag(s)
	if !ok {
		return s
	}
	tag := root.text(s)
	_, hasBox := attrValue(tag, "viewBox")
	w, hasW := attrValue(tag, "width")
	h, hasH := attrValue(tag, "height")

	var add []string
	if !hasBox {
		box := n.FallbackViewBox
		if hasW && hasH {
			if wn, hn := numericPart(w), numericPart(h); wn != "" && hn != "" {
				box = "0 0 " + wn + " " + hn
			}
		}
		add = append(add, ` viewBox="`+box+`"`)
	}
	if !hasW {
		add = append(add, ` width="`+n.FallbackWidth+`"`)
	}
	if !hasH {
		add = append(add, ` height="`+n.FallbackHeight+`"`)
	}
	return insertAfterName(s, root.start, add)
}

// numericPart strips a trailing unit from a length value: "10px" gives
// "10". An empty result means the value has no usable leading number.
func numericPart(v string) string {
	v = strings.TrimSpace(v)
	i := 0
	for i < len(v) {
		c := v[i]
		if c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+' {
			i++
			continue
		}
		break
	}
	return v[:i]
}

// pruneDanglingRefs deletes url(#id) reference attributes whose target
// id is not declared anywhere in the fragment. Only the one attribute
// occurrence is removed, the element and its other attributes survive.
func pruneDanglingRefs(s string) string {
	ids := collectIDs(s)
	var b strings.Builder
	last := 0
	for _, t := range scanTags(s) {
		tag := t.text(s)
		pruned := pruneTag(tag, ids)
		if pruned == tag {
			continue
		}
		b.WriteString(s[last:t.start])
		b.WriteString(pruned)
		last = t.end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// collectIDs builds the identifier set: every id attribute value in the
// fragment. Built fresh per call, fragments are not assumed stable
// across edits.
func collectIDs(s string) map[string]bool {
	ids := make(map[string]bool)
	for _, t := range scanTags(s) {
		if id, ok := attrValue(t.text(s), "id"); ok && id != "" {
			ids[id] = true
		}
	}
	return ids
}

func pruneTag(tag string, ids map[string]bool) string {
	type span struct{ start, end int }
	var dead []span
	forEachAttr(tag, func(name, value string, start, end int) bool {
		if !urlAttrs[name] {
			return true
		}
		id, ok := urlRef(value)
		if !ok || ids[id] {
			return true
		}
		// include the whitespace run before the attribute
		for start > 0 && isSpaceByte(tag[start-1]) {
			start--
		}
		dead = append(dead, span{start, end})
		return true
	})
	if len(dead) == 0 {
		return tag
	}
	var b strings.Builder
	last := 0
	for _, d := range dead {
		b.WriteString(tag[last:d.start])
		last = d.end
	}
	b.WriteString(tag[last:])
	return b.String()
}

// urlRef extracts the id from a url(#id) attribute value.
func urlRef(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(#") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	return v[len("url(#") : len(v)-1], true
}

// resolveImages rewrites relative image references to absolute form
// through the resolver. Data URIs and anything the resolver declines are
// left untouched; this step never surfaces an error.
func (n *Normalizer) resolveImages(s string) string {
	if n.Resolver == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, t := range scanTags(s) {
		if t.name != "image" {
			continue
		}
		tag := t.text(s)
		rewritten := n.resolveImageTag(tag)
		if rewritten == tag {
			continue
		}
		b.WriteString(s[last:t.start])
		b.WriteString(rewritten)
		last = t.end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

func (n *Normalizer) resolveImageTag(tag string) string {
	type repl struct {
		start, end int
		value      string
	}
	var r *repl
	forEachAttr(tag, func(name, value string, start, end int) bool {
		if name != "href" && name != "xlink:href" {
			return true
		}
		if value == "" || strings.HasPrefix(value, "data:") {
			return false
		}
		resolved, ok := n.Resolver.Resolve(value)
		if !ok || resolved == value {
			return false
		}
		r = &repl{start: start, end: end, value: name + `="` + resolved + `"`}
		return false
	})
	if r == nil {
		return tag
	}
	return tag[:r.start] + r.value + tag[r.end:]
}

// propagateNamespace mirrors the root xmlns injection into nested <svg>
// sub-elements lacking their own declaration, at any depth.
func propagateNamespace(s string) string {
	tags := scanTags(s)
	seenRoot := false
	var b strings.Builder
	last := 0
	for _, t := range tags {
		if t.name != "svg" {
			continue
		}
		if !seenRoot {
			seenRoot = true
			continue
		}
		tag := t.text(s)
		if _, ok := attrValue(tag, "xmlns"); ok {
			continue
		}
		b.WriteString(s[last:t.start])
		b.WriteString(insertAfterName(tag, 0, []string{` xmlns="` + SVGNamespace + `"`}))
		last = t.end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}
