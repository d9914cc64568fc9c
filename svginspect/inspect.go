// Summarizes normalized <svg> fragments. The normalizer's output is
// well-formed, so unlike the core scanners this package can lean on a
// real XML decoder: Inspect token-walks a fragment into a Summary, and
// Document offers XPath lookups over it.
package svginspect

import (
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"
)

// Summary holds what the preview surface reports about a fragment.
type Summary struct {
	ViewBox      string
	Width        string
	Height       string
	IDs          []string
	Elements     map[string]int // element name -> count
	Titles       []string       // Title elements collect here
	Descriptions []string       // Description elements collect here
}

// Inspect decodes a fragment and returns its Summary. The reader may
// carry any charset the decoder recognizes.
func Inspect(stream io.Reader) (*Summary, error) {
	sum := &Summary{Elements: make(map[string]int)}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	seenRoot := false
	var inTitle, inDesc bool
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenRoot {
					return nil, errors.New("no svg element in stream")
				}
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			sum.Elements[se.Name.Local]++
			switch se.Name.Local {
			case "svg":
				if !seenRoot {
					seenRoot = true
					for _, attr := range se.Attr {
						switch attr.Name.Local {
						case "viewBox":
							sum.ViewBox = attr.Value
						case "width":
							sum.Width = attr.Value
						case "height":
							sum.Height = attr.Value
						}
					}
				}
			case "title":
				inTitle = true
				sum.Titles = append(sum.Titles, "")
			case "desc":
				inDesc = true
				sum.Descriptions = append(sum.Descriptions, "")
			}
			for _, attr := range se.Attr {
				if attr.Name.Local == "id" && attr.Name.Space == "" && attr.Value != "" {
					sum.IDs = append(sum.IDs, attr.Value)
				}
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "title":
				inTitle = false
			case "desc":
				inDesc = false
			}
		case xml.CharData:
			if inTitle {
				sum.Titles[len(sum.Titles)-1] += string(se)
			}
			if inDesc {
				sum.Descriptions[len(sum.Descriptions)-1] += string(se)
			}
		}
	}
	return sum, nil
}
