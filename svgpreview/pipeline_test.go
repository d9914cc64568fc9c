package svgpreview

import (
	"os"
	"strings"
	"testing"

	"github.com/GDGVITM/svg-preview/svgclean"
	"github.com/GDGVITM/svg-preview/svginspect"
)

// End-to-end over a realistic document: a markdown file with an inline
// badge fragment carrying a comment, a declared gradient and a dangling
// reference.
func TestPipelineOnDocument(t *testing.T) {
	data, err := os.ReadFile("testdata/notes.md")
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	p := New(nil)
	res := p.At(text, strings.Index(text, "<text"))
	if !res.OK {
		t.Fatalf("pipeline failed: %+v", res)
	}

	out := res.Content
	if strings.Contains(out, "build badge") {
		t.Error("comment survived normalization")
	}
	if strings.Contains(out, "url(#missing-gradient)") {
		t.Error("dangling reference survived")
	}
	if !strings.Contains(out, `fill="url(#shade)"`) {
		t.Error("declared reference was pruned")
	}
	if !strings.Contains(out, `viewBox="0 0 120 20"`) {
		t.Errorf("viewBox not synthesized: %q", out)
	}
	if !strings.Contains(out, `xmlns="`+svgclean.SVGNamespace+`"`) {
		t.Error("namespace not injected")
	}

	// the cleaned output is well-formed enough for structured lookups
	sum, err := svginspect.Inspect(strings.NewReader(out))
	if err != nil {
		t.Fatalf("inspecting cleaned output: %v", err)
	}
	if sum.Elements["rect"] != 2 || len(sum.IDs) != 1 || sum.IDs[0] != "shade" {
		t.Errorf("summary: %+v", sum)
	}
}
