package model

// Document represents a document under review, identified by an opaque ID.
// The Analysis field holds the parsed extraction result and is nil until
// the result has been fetched and parsed.
type Document struct {
	ID              string
	Name            string
	SourceURL       string
	SearchableURL   string // optional searchable rendition (hOCR)
	ResultDirectory string // prefix for per-page result artifacts
	Analysis        *Analysis
}

// Merge overlays non-empty fields from other onto the document. A re-fetch
// replaces the analysis wholesale rather than merging block lists.
func (d *Document) Merge(other Document) {
	if other.Name != "" {
		d.Name = other.Name
	}
	if other.SourceURL != "" {
		d.SourceURL = other.SourceURL
	}
	if other.SearchableURL != "" {
		d.SearchableURL = other.SearchableURL
	}
	if other.ResultDirectory != "" {
		d.ResultDirectory = other.ResultDirectory
	}
	if other.Analysis != nil {
		d.Analysis = other.Analysis
	}
}

// Analysis is the parsed extraction result for a document: every extracted
// line, key-value pair, and table across all pages, plus the page count.
// Version increments each time a fresh result is parsed so that derived
// views can detect staleness without deep comparison.
type Analysis struct {
	Version       int
	PageCount     int
	Lines         []Line
	KeyValuePairs []KeyValuePair
	Tables        []Table
}

// LinesForPage returns the lines on the given 1-indexed page,
// preserving extraction order.
func (a *Analysis) LinesForPage(page int) []Line {
	var lines []Line
	for _, ln := range a.Lines {
		if ln.PageNumber == page {
			lines = append(lines, ln)
		}
	}
	return lines
}

// PairsForPage returns the key-value pairs on the given 1-indexed page,
// preserving extraction order.
func (a *Analysis) PairsForPage(page int) []KeyValuePair {
	var pairs []KeyValuePair
	for _, kv := range a.KeyValuePairs {
		if kv.PageNumber == page {
			pairs = append(pairs, kv)
		}
	}
	return pairs
}

// TablesForPage returns the tables on the given 1-indexed page.
func (a *Analysis) TablesForPage(page int) []Table {
	var tables []Table
	for _, tb := range a.Tables {
		if tb.PageNumber == page {
			tables = append(tables, tb)
		}
	}
	return tables
}

// Line is a unit of extracted raw text with its position on a page.
type Line struct {
	ID         string
	PageNumber int // 1-indexed
	Text       string
	Box        BoundingBox
}

// KeyValuePair is an extracted form field. The key (label) and value are
// independently positioned regions on the same page.
type KeyValuePair struct {
	ID         string
	PageNumber int // 1-indexed
	Key        string
	Value      string
	KeyBox     BoundingBox
	ValueBox   BoundingBox
}

// Table is a structured grid extracted from a page. Beyond counting and
// display the grid content is opaque to this library.
type Table struct {
	PageNumber int // 1-indexed
	Rows       [][]string
	Box        BoundingBox
}

// RowCount returns the number of rows in the table.
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the widest row's cell count.
func (t Table) ColumnCount() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}
