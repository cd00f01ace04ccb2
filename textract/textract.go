package textract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/blackout/model"
)

// Block types found in an analysis response.
const (
	blockPage             = "PAGE"
	blockLine             = "LINE"
	blockWord             = "WORD"
	blockKeyValueSet      = "KEY_VALUE_SET"
	blockTable            = "TABLE"
	blockCell             = "CELL"
	blockSelectionElement = "SELECTION_ELEMENT"
)

// Relationship types linking blocks.
const (
	relChild = "CHILD"
	relValue = "VALUE"
)

// boundingBox mirrors the normalized Geometry.BoundingBox of a block.
type boundingBox struct {
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
	Left   float64 `json:"Left"`
	Top    float64 `json:"Top"`
}

func (b boundingBox) toModel() model.BoundingBox {
	return model.BoundingBox{Left: b.Left, Top: b.Top, Width: b.Width, Height: b.Height}
}

type geometry struct {
	BoundingBox boundingBox `json:"BoundingBox"`
}

type relationship struct {
	Type string   `json:"Type"`
	Ids  []string `json:"Ids"`
}

// block is a single element of the analysis response. Fields not used by
// this library (confidence, polygon points) are ignored during decoding.
type block struct {
	ID              string         `json:"Id"`
	BlockType       string         `json:"BlockType"`
	Text            string         `json:"Text"`
	Page            int            `json:"Page"`
	EntityTypes     []string       `json:"EntityTypes"`
	RowIndex        int            `json:"RowIndex"`
	ColumnIndex     int            `json:"ColumnIndex"`
	SelectionStatus string         `json:"SelectionStatus"`
	Geometry        geometry       `json:"Geometry"`
	Relationships   []relationship `json:"Relationships"`
}

type response struct {
	Blocks []block `json:"Blocks"`
}

// Parse decodes a raw analysis response into a model.Analysis. The input
// may be a single response object or a JSON array of response objects (a
// paginated job result is stored as the concatenation of its result
// pages). Empty input yields an empty analysis rather than an error.
//
// Version on the returned analysis is zero; the store assigns versions
// when a fresh analysis is attached to a document.
func Parse(data []byte) (*model.Analysis, error) {
	analysis := &model.Analysis{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return analysis, nil
	}

	var responses []response
	if data[0] == '[' {
		if err := json.Unmarshal(data, &responses); err != nil {
			return nil, fmt.Errorf("decoding analysis response list: %w", err)
		}
	} else {
		var single response
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("decoding analysis response: %w", err)
		}
		responses = []response{single}
	}

	var blocks []block
	for _, r := range responses {
		blocks = append(blocks, r.Blocks...)
	}

	p := &parser{
		byID: make(map[string]block, len(blocks)),
	}
	for _, b := range blocks {
		p.byID[b.ID] = b
	}

	for _, b := range blocks {
		switch b.BlockType {
		case blockPage:
			page := pageOf(b)
			if page > analysis.PageCount {
				analysis.PageCount = page
			}
		case blockLine:
			analysis.Lines = append(analysis.Lines, model.Line{
				ID:         b.ID,
				PageNumber: pageOf(b),
				Text:       b.Text,
				Box:        b.Geometry.BoundingBox.toModel(),
			})
		case blockKeyValueSet:
			if !hasEntityType(b, "KEY") {
				continue
			}
			kv, err := p.keyValuePair(b)
			if err != nil {
				return nil, err
			}
			analysis.KeyValuePairs = append(analysis.KeyValuePairs, kv)
		case blockTable:
			analysis.Tables = append(analysis.Tables, p.table(b))
		}
	}

	// Single-page responses may omit the Page field entirely.
	if analysis.PageCount == 0 && len(blocks) > 0 {
		analysis.PageCount = 1
	}

	return analysis, nil
}

// parser resolves relationships between blocks during a single Parse call.
type parser struct {
	byID map[string]block
}

// keyValuePair assembles a key-value pair from a KEY block and its linked
// VALUE block.
func (p *parser) keyValuePair(key block) (model.KeyValuePair, error) {
	kv := model.KeyValuePair{
		ID:         key.ID,
		PageNumber: pageOf(key),
		Key:        p.childText(key),
		KeyBox:     key.Geometry.BoundingBox.toModel(),
	}

	for _, rel := range key.Relationships {
		if rel.Type != relValue {
			continue
		}
		for _, id := range rel.Ids {
			value, ok := p.byID[id]
			if !ok {
				return kv, fmt.Errorf("key block %s references missing value block %s", key.ID, id)
			}
			kv.Value = p.childText(value)
			kv.ValueBox = value.Geometry.BoundingBox.toModel()
		}
	}

	return kv, nil
}

// table assembles a grid from a TABLE block's CELL children, ordered by
// row and column index. Missing cells leave empty strings in the grid.
func (p *parser) table(tbl block) model.Table {
	type cell struct {
		row, col int
		text     string
	}

	var cells []cell
	rows, cols := 0, 0
	for _, rel := range tbl.Relationships {
		if rel.Type != relChild {
			continue
		}
		for _, id := range rel.Ids {
			c, ok := p.byID[id]
			if !ok || c.BlockType != blockCell {
				continue
			}
			cells = append(cells, cell{row: c.RowIndex, col: c.ColumnIndex, text: p.childText(c)})
			if c.RowIndex > rows {
				rows = c.RowIndex
			}
			if c.ColumnIndex > cols {
				cols = c.ColumnIndex
			}
		}
	}

	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].row != cells[j].row {
			return cells[i].row < cells[j].row
		}
		return cells[i].col < cells[j].col
	})

	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
	}
	for _, c := range cells {
		if c.row >= 1 && c.col >= 1 {
			grid[c.row-1][c.col-1] = c.text
		}
	}

	return model.Table{
		PageNumber: pageOf(tbl),
		Rows:       grid,
		Box:        tbl.Geometry.BoundingBox.toModel(),
	}
}

// childText concatenates the text of a block's child WORD blocks. Selection
// elements render as "X" when selected, matching how checked form fields
// surface in the extraction output.
func (p *parser) childText(b block) string {
	var parts []string
	for _, rel := range b.Relationships {
		if rel.Type != relChild {
			continue
		}
		for _, id := range rel.Ids {
			child, ok := p.byID[id]
			if !ok {
				continue
			}
			switch child.BlockType {
			case blockWord:
				parts = append(parts, child.Text)
			case blockSelectionElement:
				if child.SelectionStatus == "SELECTED" {
					parts = append(parts, "X")
				}
			}
		}
	}
	return strings.Join(parts, " ")
}

func hasEntityType(b block, want string) bool {
	for _, et := range b.EntityTypes {
		if et == want {
			return true
		}
	}
	return false
}

// pageOf returns the block's 1-indexed page, defaulting to 1 when the
// response omits page numbers.
func pageOf(b block) int {
	if b.Page < 1 {
		return 1
	}
	return b.Page
}
