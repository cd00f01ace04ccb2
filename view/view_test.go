package view

import (
	"testing"

	"github.com/tsawler/blackout/model"
)

func testDocument() model.Document {
	return model.Document{
		ID:   "d1",
		Name: "scan.pdf",
		Analysis: &model.Analysis{
			Version:   1,
			PageCount: 2,
			Lines: []model.Line{
				{ID: "l1", PageNumber: 1, Text: "Name: Alice"},
				{ID: "l2", PageNumber: 1, Text: "Account: 12345"},
				{ID: "l3", PageNumber: 2, Text: "Alice signed here"},
			},
			KeyValuePairs: []model.KeyValuePair{
				{ID: "kv1", PageNumber: 1, Key: "Name", Value: "Alice"},
				{ID: "kv2", PageNumber: 2, Key: "Signature", Value: ""},
			},
			Tables: []model.Table{
				{PageNumber: 1},
				{PageNumber: 2},
			},
		},
	}
}

func TestBuildPageLevelSubset(t *testing.T) {
	b := NewBuilder(nil)
	doc := testDocument()

	pv := b.Build(doc, 1, "")

	if pv.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", pv.PageCount)
	}
	if len(pv.DocumentLevel.Lines) != 3 {
		t.Errorf("document-level lines = %d, want 3", len(pv.DocumentLevel.Lines))
	}
	if pv.DocumentLevel.TableCount != 2 {
		t.Errorf("TableCount = %d, want 2", pv.DocumentLevel.TableCount)
	}

	// Every page-level line is a document-level line on that page.
	for _, ln := range pv.PageLevel.Lines {
		if ln.PageNumber != 1 {
			t.Errorf("page-level line %s has page %d", ln.ID, ln.PageNumber)
		}
		found := false
		for _, dl := range pv.DocumentLevel.Lines {
			if dl.ID == ln.ID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("page-level line %s missing from document level", ln.ID)
		}
	}
	if len(pv.PageLevel.Lines) != 2 {
		t.Errorf("page-level lines = %d, want 2", len(pv.PageLevel.Lines))
	}
	if len(pv.PageLevel.KeyValuePairs) != 1 || pv.PageLevel.KeyValuePairs[0].ID != "kv1" {
		t.Errorf("page-level pairs = %+v", pv.PageLevel.KeyValuePairs)
	}
	if len(pv.PageLevel.Tables) != 1 {
		t.Errorf("page-level tables = %d, want 1", len(pv.PageLevel.Tables))
	}
}

func TestBuildSearchMatches(t *testing.T) {
	b := NewBuilder(nil)
	doc := testDocument()

	pv := b.Build(doc, 1, "alice")
	if len(pv.WordsMatchingSearch) != 1 || pv.WordsMatchingSearch[0].ID != "l1" {
		t.Errorf("matches = %+v, want [l1]", pv.WordsMatchingSearch)
	}

	// Matches are scoped to the current page.
	pv = b.Build(doc, 2, "alice")
	if len(pv.WordsMatchingSearch) != 1 || pv.WordsMatchingSearch[0].ID != "l3" {
		t.Errorf("page 2 matches = %+v, want [l3]", pv.WordsMatchingSearch)
	}
}

func TestBuildMemoization(t *testing.T) {
	b := NewBuilder(nil)
	doc := testDocument()

	first := b.Build(doc, 1, "alice")
	second := b.Build(doc, 1, "alice")
	if first != second {
		t.Error("unchanged inputs returned a new view")
	}

	// Query normalization keeps the key stable.
	third := b.Build(doc, 1, "  alice ")
	if third != first {
		t.Error("whitespace-only query change invalidated the cache")
	}

	// Changing any key component recomputes.
	if b.Build(doc, 2, "alice") == first {
		t.Error("page change did not invalidate the cache")
	}

	doc.Analysis.Version = 2
	if b.Build(doc, 2, "alice") == second {
		t.Error("analysis version change did not invalidate the cache")
	}
}

func TestBuildUnfetchedDocument(t *testing.T) {
	b := NewBuilder(nil)

	pv := b.Build(model.Document{ID: "d1"}, 1, "query")

	if pv == nil {
		t.Fatal("expected a view for an unfetched document")
	}
	if pv.PageCount != 0 {
		t.Errorf("PageCount = %d, want 0", pv.PageCount)
	}
	if len(pv.PageLevel.Lines) != 0 || len(pv.WordsMatchingSearch) != 0 {
		t.Error("expected empty collections for unfetched document")
	}
}
