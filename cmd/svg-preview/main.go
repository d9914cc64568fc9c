// Command svg-preview extracts, checks and cleans inline <svg> fragments
// embedded in text files, and renders the cleaned result to PNG.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/GDGVITM/svg-preview/fileref"
	"github.com/GDGVITM/svg-preview/svgclean"
	"github.com/GDGVITM/svg-preview/svgfrag"
	"github.com/GDGVITM/svg-preview/svginspect"
	"github.com/GDGVITM/svg-preview/svgpreview"
	"github.com/GDGVITM/svg-preview/svgrender"
)

const version = "0.1.0"

// CLI defines the command-line interface for svg-preview.
var CLI struct {
	Locate  LocateCmd  `cmd:"" help:"Print the <svg> fragment span enclosing an offset"`
	Check   CheckCmd   `cmd:"" help:"Validate the fragment at an offset"`
	Clean   CleanCmd   `cmd:"" help:"Print the normalized fragment at an offset"`
	Info    InfoCmd    `cmd:"" help:"Summarize the normalized fragment at an offset"`
	Render  RenderCmd  `cmd:"" help:"Render the fragment at an offset to PNG"`
	IsRef   IsRefCmd   `cmd:"" name:"is-ref" help:"Test whether a token is an SVG file reference"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("svg-preview"),
		kong.Description("Locate, validate and normalize inline SVG fragments."))
	ctx.FatalIfErrorf(ctx.Run())
}

// locateAt reads a file and resolves the fragment at offset. A negative
// offset means the end of the file.
func locateAt(path string, offset int) (svgfrag.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return svgfrag.Fragment{}, err
	}
	text := string(data)
	if offset < 0 {
		offset = len(text)
	}
	frag, ok := svgfrag.Locate(text, offset)
	if !ok {
		return svgfrag.Fragment{}, fmt.Errorf("%s: %s", path, svgpreview.MsgNoFragment)
	}
	return frag, nil
}

func previewer(path string) *svgpreview.Previewer {
	n := svgclean.New()
	n.Resolver = svgclean.DirResolver{Base: filepath.Dir(path)}
	return svgpreview.New(n)
}

// LocateCmd prints the located span and its content.
type LocateCmd struct {
	Path   string `arg:"" help:"Source file" type:"existingfile"`
	Offset int    `arg:"" help:"Byte offset of the cursor"`
}

func (c *LocateCmd) Run() error {
	frag, err := locateAt(c.Path, c.Offset)
	if err != nil {
		return err
	}
	fmt.Printf("[%d:%d]\n%s\n", frag.Start, frag.End, frag.Content())
	return nil
}

// CheckCmd validates the fragment at an offset, or the whole file when
// the offset is omitted.
type CheckCmd struct {
	Path   string `arg:"" help:"Source file" type:"existingfile"`
	Offset int    `arg:"" optional:"" default:"-1" help:"Byte offset of the cursor (default: end of file)"`
}

func (c *CheckCmd) Run() error {
	frag, err := locateAt(c.Path, c.Offset)
	if err != nil {
		return err
	}
	verdict, msg := previewer(c.Path).Check(frag.Content())
	if verdict.Valid {
		fmt.Println("valid")
		return nil
	}
	return fmt.Errorf("invalid (%s): %s", verdict.Reason, msg)
}

// CleanCmd prints the normalized fragment.
type CleanCmd struct {
	Path   string `arg:"" help:"Source file" type:"existingfile"`
	Offset int    `arg:"" optional:"" default:"-1" help:"Byte offset of the cursor (default: end of file)"`
}

func (c *CleanCmd) Run() error {
	res := previewAt(c.Path, c.Offset)
	if res.err != nil {
		return res.err
	}
	fmt.Println(res.content)
	return nil
}

// InfoCmd summarizes the normalized fragment.
type InfoCmd struct {
	Path   string `arg:"" help:"Source file" type:"existingfile"`
	Offset int    `arg:"" optional:"" default:"-1" help:"Byte offset of the cursor (default: end of file)"`
}

func (c *InfoCmd) Run() error {
	res := previewAt(c.Path, c.Offset)
	if res.err != nil {
		return res.err
	}
	doc, err := svginspect.ParseDocument(res.content)
	if err != nil {
		return err
	}
	sum, err := svginspect.Inspect(strings.NewReader(res.content))
	if err != nil {
		return err
	}
	fmt.Printf("viewBox: %s\nwidth:   %s\nheight:  %s\n", sum.ViewBox, sum.Width, sum.Height)
	fmt.Printf("ids:     %v\n", doc.IDs())
	fmt.Printf("images:  %v\n", doc.ImageRefs())
	for name, count := range sum.Elements {
		fmt.Printf("  %s: %d\n", name, count)
	}
	return nil
}

// RenderCmd renders the fragment to a PNG file.
type RenderCmd struct {
	Path    string `arg:"" help:"Source file" type:"existingfile"`
	Offset  int    `arg:"" optional:"" default:"-1" help:"Byte offset of the cursor (default: end of file)"`
	Out     string `short:"o" default:"preview.png" help:"Output PNG path"`
	Width   int    `default:"0" help:"Output width (default: viewBox width)"`
	Height  int    `default:"0" help:"Output height (default: viewBox height)"`
	MaxEdge int    `help:"Scale the result down to this longest edge"`
}

func (c *RenderCmd) Run() error {
	res := previewAt(c.Path, c.Offset)
	if res.err != nil {
		return res.err
	}
	img, err := svgrender.ToImage(strings.NewReader(res.content), c.Width, c.Height)
	if err != nil {
		return err
	}
	out, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	defer out.Close()
	return svgrender.EncodePNG(out, svgrender.Thumbnail(img, c.MaxEdge))
}

// IsRefCmd tests a token against the file-reference shape.
type IsRefCmd struct {
	Token string `arg:"" help:"Token to test"`
}

func (c *IsRefCmd) Run() error {
	if !fileref.IsFileReference(c.Token) {
		return fmt.Errorf("%q is not an SVG file reference", c.Token)
	}
	fmt.Println("yes")
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("svg-preview", version)
	return nil
}

type previewResult struct {
	content string
	err     error
}

func previewAt(path string, offset int) previewResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return previewResult{err: err}
	}
	text := string(data)
	if offset < 0 {
		offset = len(text)
	}
	res := previewer(path).At(text, offset)
	if !res.OK {
		return previewResult{err: fmt.Errorf("%s: %s", path, res.Diagnostic)}
	}
	return previewResult{content: res.Content}
}
