package svginspect

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document wraps a parsed fragment for XPath queries.
type Document struct {
	root *xmlquery.Node
}

// ParseDocument parses a normalized fragment. Core scanners never see a
// DOM; this one is for consumers that want structured lookups on the
// cleaned output.
func ParseDocument(fragment string) (*Document, error) {
	root, err := xmlquery.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	return &Document{root: root}, nil
}

// Query runs an XPath expression and returns the matching nodes.
func (d *Document) Query(expr string) ([]*xmlquery.Node, error) {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", expr, err)
	}
	return xmlquery.QuerySelectorAll(d.root, compiled), nil
}

// IDs returns every declared id value in document order.
func (d *Document) IDs() []string {
	nodes := xmlquery.Find(d.root, "//*[@id]")
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if v := n.SelectAttr("id"); v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}

// ImageRefs returns the reference of every image element, href or
// xlink:href.
func (d *Document) ImageRefs() []string {
	var refs []string
	for _, n := range xmlquery.Find(d.root, "//image") {
		for _, attr := range n.Attr {
			if attr.Name.Local == "href" {
				refs = append(refs, attr.Value)
			}
		}
	}
	return refs
}
