package svginspect

import (
	"strings"
	"testing"
)

const sample = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 20" width="10" height="20">
	<title>A sample</title>
	<desc>Two shapes</desc>
	<defs><linearGradient id="g"/></defs>
	<rect id="r" fill="url(#g)"/>
	<circle r="2"/>
</svg>`

func TestInspect(t *testing.T) {
	sum, err := Inspect(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if sum.ViewBox != "0 0 10 20" || sum.Width != "10" || sum.Height != "20" {
		t.Errorf("dimensions: %+v", sum)
	}
	if len(sum.IDs) != 2 || sum.IDs[0] != "g" || sum.IDs[1] != "r" {
		t.Errorf("ids: %v", sum.IDs)
	}
	if sum.Elements["rect"] != 1 || sum.Elements["circle"] != 1 || sum.Elements["svg"] != 1 {
		t.Errorf("elements: %v", sum.Elements)
	}
	if len(sum.Titles) != 1 || sum.Titles[0] != "A sample" {
		t.Errorf("titles: %v", sum.Titles)
	}
	if len(sum.Descriptions) != 1 || sum.Descriptions[0] != "Two shapes" {
		t.Errorf("descriptions: %v", sum.Descriptions)
	}
}

func TestInspectEmptyStream(t *testing.T) {
	if _, err := Inspect(strings.NewReader("")); err == nil {
		t.Error("expected an error for an svg-free stream")
	}
}

func TestDocumentQueries(t *testing.T) {
	doc, err := ParseDocument(sample)
	if err != nil {
		t.Fatal(err)
	}
	ids := doc.IDs()
	if len(ids) != 2 || ids[0] != "g" || ids[1] != "r" {
		t.Errorf("ids: %v", ids)
	}
	nodes, err := doc.Query("//rect")
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 {
		t.Errorf("rect query: %d nodes", len(nodes))
	}
	if _, err := doc.Query("//rect["); err == nil {
		t.Error("expected a compile error")
	}
}

func TestDocumentImageRefs(t *testing.T) {
	doc, err := ParseDocument(`<svg><image href="a.png"/><image xlink:href="b.png"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	refs := doc.ImageRefs()
	if len(refs) != 2 || refs[0] != "a.png" || refs[1] != "b.png" {
		t.Errorf("refs: %v", refs)
	}
}
