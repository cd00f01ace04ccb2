// Package hocr parses a document's searchable rendition.
//
// The searchable rendition is an hOCR file: HTML whose elements carry
// OCR classes (ocr_page, ocr_line, ocrx_word) and pixel bounding boxes
// in their title attributes. This package extracts per-page text lines
// and normalizes their boxes against each page's own bbox, producing
// the same [model.Line] values as the primary analysis path.
package hocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/blackout/model"
)

// Rendition is the parsed searchable rendition.
type Rendition struct {
	PageCount int
	Lines     []model.Line
}

// pixelBox is a bbox in page pixels as found in hOCR title attributes.
type pixelBox struct {
	x0, y0, x1, y1 int
}

// Parse reads an hOCR document and returns its lines with normalized
// bounding boxes. Pages are numbered in document order starting at 1.
func Parse(r io.Reader) (*Rendition, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	rendition := &Rendition{}
	walkPages(doc, rendition)
	return rendition, nil
}

// walkPages finds ocr_page elements and extracts their lines.
func walkPages(n *html.Node, rendition *Rendition) {
	if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
		rendition.PageCount++
		page := rendition.PageCount

		pageBox, ok := titleBBox(n)
		if !ok || pageBox.x1 <= pageBox.x0 || pageBox.y1 <= pageBox.y0 {
			// Without page dimensions the line boxes cannot be
			// normalized; skip the page's geometry but keep counting.
			return
		}

		collectLines(n, page, pageBox, rendition)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkPages(c, rendition)
	}
}

// collectLines extracts ocr_line elements within a page.
func collectLines(n *html.Node, page int, pageBox pixelBox, rendition *Rendition) {
	if n.Type == html.ElementNode && hasClass(n, "ocr_line") {
		box, ok := titleBBox(n)
		if ok {
			text := strings.Join(strings.Fields(textContent(n)), " ")
			if text != "" {
				rendition.Lines = append(rendition.Lines, model.Line{
					ID:         attr(n, "id"),
					PageNumber: page,
					Text:       text,
					Box:        normalize(box, pageBox),
				})
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLines(c, page, pageBox, rendition)
	}
}

// normalize converts a pixel box to fractions of the page box.
func normalize(box, page pixelBox) model.BoundingBox {
	w := float64(page.x1 - page.x0)
	h := float64(page.y1 - page.y0)
	return model.BoundingBox{
		Left:   float64(box.x0-page.x0) / w,
		Top:    float64(box.y0-page.y0) / h,
		Width:  float64(box.x1-box.x0) / w,
		Height: float64(box.y1-box.y0) / h,
	}
}

// titleBBox extracts the "bbox x0 y0 x1 y1" field from an element's
// title attribute. hOCR title attributes hold semicolon-separated
// properties.
func titleBBox(n *html.Node) (pixelBox, bool) {
	title := attr(n, "title")
	for _, field := range strings.Split(title, ";") {
		parts := strings.Fields(field)
		if len(parts) != 5 || parts[0] != "bbox" {
			continue
		}
		var vals [4]int
		ok := true
		for i, p := range parts[1:] {
			v, err := strconv.Atoi(p)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if ok {
			return pixelBox{vals[0], vals[1], vals[2], vals[3]}, true
		}
	}
	return pixelBox{}, false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent returns the concatenated text of a node's subtree.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
		sb.WriteString(" ")
	}
	return sb.String()
}
