package hocr

import (
	"math"
	"strings"
	"testing"
)

const sampleHOCR = `<!DOCTYPE html>
<html>
<body>
  <div class="ocr_page" id="page_1" title='image "p1.png"; bbox 0 0 800 600; ppageno 0'>
    <div class="ocr_carea">
      <p class="ocr_par">
        <span class="ocr_line" id="line_1_1" title="bbox 80 60 240 120; baseline 0 0">
          <span class="ocrx_word" title="bbox 80 60 150 120">Invoice</span>
          <span class="ocrx_word" title="bbox 160 60 240 120">Number</span>
        </span>
        <span class="ocr_line" id="line_1_2" title="bbox 80 200 120 230">
          <span class="ocrx_word" title="bbox 80 200 120 230">42</span>
        </span>
      </p>
    </div>
  </div>
  <div class="ocr_page" id="page_2" title="bbox 0 0 800 600">
    <span class="ocr_line" id="line_2_1" title="bbox 0 0 400 30">
      <span class="ocrx_word" title="bbox 0 0 400 30">Terms</span>
    </span>
  </div>
</body>
</html>`

func TestParse(t *testing.T) {
	rendition, err := Parse(strings.NewReader(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if rendition.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", rendition.PageCount)
	}
	if len(rendition.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(rendition.Lines))
	}

	first := rendition.Lines[0]
	if first.ID != "line_1_1" || first.PageNumber != 1 {
		t.Errorf("unexpected first line: %+v", first)
	}
	if first.Text != "Invoice Number" {
		t.Errorf("Text = %q, want %q", first.Text, "Invoice Number")
	}
}

func TestParseNormalizesBoxes(t *testing.T) {
	rendition, err := Parse(strings.NewReader(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	// Pixel bbox 80 60 240 120 on an 800x600 page.
	box := rendition.Lines[0].Box
	want := []struct {
		name string
		got  float64
		want float64
	}{
		{"Left", box.Left, 0.1},
		{"Top", box.Top, 0.1},
		{"Width", box.Width, 0.2},
		{"Height", box.Height, 0.1},
	}
	for _, tt := range want {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("Box.%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestParseSecondPage(t *testing.T) {
	rendition, err := Parse(strings.NewReader(sampleHOCR))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	last := rendition.Lines[2]
	if last.PageNumber != 2 || last.Text != "Terms" {
		t.Errorf("unexpected page 2 line: %+v", last)
	}
	if math.Abs(last.Box.Width-0.5) > 1e-9 {
		t.Errorf("Box.Width = %v, want 0.5", last.Box.Width)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	rendition, err := Parse(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if rendition.PageCount != 0 || len(rendition.Lines) != 0 {
		t.Errorf("expected empty rendition, got %+v", rendition)
	}
}

func TestParsePageWithoutBBox(t *testing.T) {
	src := `<div class="ocr_page" id="page_1">
	  <span class="ocr_line" title="bbox 0 0 10 10">hi</span>
	</div>`

	rendition, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	// The page counts but its lines cannot be normalized.
	if rendition.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", rendition.PageCount)
	}
	if len(rendition.Lines) != 0 {
		t.Errorf("expected no lines, got %d", len(rendition.Lines))
	}
}
