package fetch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/tsawler/blackout/model"
	"github.com/tsawler/blackout/store"
)

// mapRemote is an in-memory remote.Store for tests.
type mapRemote map[string][]byte

func (m mapRemote) Fetch(_ context.Context, name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("artifact %s not found", name)
	}
	return data, nil
}

func (m mapRemote) SignedURL(name string, _ time.Duration) (string, error) {
	return "https://example.test/" + name, nil
}

const testResponse = `{"Blocks": [
  {"Id": "p1", "BlockType": "PAGE", "Page": 1},
  {"Id": "l1", "BlockType": "LINE", "Page": 1, "Text": "hello"}
]}`

func newTestStore() *store.Store {
	st := store.New()
	st.Put(model.Document{
		ID:              "d1",
		Name:            "scan.pdf",
		ResultDirectory: ResultDirectory("scan.pdf", "d1"),
	})
	return st
}

func TestResultDirectory(t *testing.T) {
	got := ResultDirectory("scan.pdf", "d1")
	if got != "scan.pdf-analysis/d1/" {
		t.Errorf("ResultDirectory() = %q", got)
	}
}

func TestFetchSuccess(t *testing.T) {
	st := newTestStore()
	rs := mapRemote{"scan.pdf-analysis/d1/response.json": []byte(testResponse)}
	f := New(st, rs, nil)

	if err := f.Fetch(context.Background(), "d1", nil); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if got := st.Status("d1"); got != store.StatusSuccess {
		t.Errorf("status = %v, want success", got)
	}
	doc, _ := st.Get("d1")
	if doc.Analysis == nil || len(doc.Analysis.Lines) != 1 {
		t.Errorf("analysis not committed: %+v", doc.Analysis)
	}
}

func TestFetchDirectResponseArtifact(t *testing.T) {
	st := store.New()
	st.Put(model.Document{ID: "d1", Name: "scan.pdf", ResultDirectory: "sample.json"})
	rs := mapRemote{"sample.json": []byte(testResponse)}
	f := New(st, rs, nil)

	if err := f.Fetch(context.Background(), "d1", nil); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	doc, _ := st.Get("d1")
	if doc.Analysis == nil || len(doc.Analysis.Lines) != 1 {
		t.Errorf("analysis not committed: %+v", doc.Analysis)
	}
}

const testRendition = `<html><body>
  <div class="ocr_page" title="bbox 0 0 1000 800">
    <span class="ocr_line" id="line1" title="bbox 100 80 300 120">Name: Alice</span>
  </div>
</body></html>`

func TestFetchFallsBackToSearchableRendition(t *testing.T) {
	st := store.New()
	st.Put(model.Document{
		ID:              "d1",
		Name:            "scan.pdf",
		ResultDirectory: ResultDirectory("scan.pdf", "d1"),
		SearchableURL:   "scan.hocr",
	})
	rs := mapRemote{"scan.hocr": []byte(testRendition)}
	f := New(st, rs, nil)

	if err := f.Fetch(context.Background(), "d1", nil); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	if got := st.Status("d1"); got != store.StatusSuccess {
		t.Errorf("status = %v, want success", got)
	}
	doc, _ := st.Get("d1")
	if doc.Analysis == nil {
		t.Fatal("analysis not committed")
	}
	if doc.Analysis.PageCount != 1 || len(doc.Analysis.Lines) != 1 {
		t.Fatalf("recovered analysis = %+v", doc.Analysis)
	}
	if got := doc.Analysis.Lines[0].Text; got != "Name: Alice" {
		t.Errorf("line text = %q", got)
	}
}

func TestFetchSearchableOnlyDocument(t *testing.T) {
	st := store.New()
	st.Put(model.Document{ID: "d1", Name: "scan.pdf", SearchableURL: "scan.hocr"})
	rs := mapRemote{"scan.hocr": []byte(testRendition)}
	f := New(st, rs, nil)

	if err := f.Fetch(context.Background(), "d1", nil); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	doc, _ := st.Get("d1")
	if doc.Analysis == nil || doc.Analysis.PageCount != 1 {
		t.Errorf("rendition not committed: %+v", doc.Analysis)
	}
}

func TestFetchRenditionSuppressedAfterTeardown(t *testing.T) {
	st := store.New()
	st.Put(model.Document{ID: "d1", Name: "scan.pdf", SearchableURL: "scan.hocr"})
	rs := mapRemote{"scan.hocr": []byte(testRendition)}
	f := New(st, rs, nil)

	dead := func() bool { return false }
	if err := f.Fetch(context.Background(), "d1", dead); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	doc, _ := st.Get("d1")
	if doc.Analysis != nil {
		t.Error("stale rendition committed after teardown")
	}
}

func TestFetchMissingArtifact(t *testing.T) {
	st := newTestStore()
	f := New(st, mapRemote{}, nil)

	if err := f.Fetch(context.Background(), "d1", nil); err == nil {
		t.Fatal("expected fetch error")
	}
	if got := st.Status("d1"); got != store.StatusError {
		t.Errorf("status = %v, want error", got)
	}
}

func TestFetchMalformedResponse(t *testing.T) {
	st := newTestStore()
	rs := mapRemote{"scan.pdf-analysis/d1/response.json": []byte("{not json")}
	f := New(st, rs, nil)

	if err := f.Fetch(context.Background(), "d1", nil); err == nil {
		t.Fatal("expected parse error")
	}
	if got := st.Status("d1"); got != store.StatusError {
		t.Errorf("status = %v, want error", got)
	}
}

func TestFetchUnregisteredDocument(t *testing.T) {
	f := New(store.New(), mapRemote{}, nil)

	if err := f.Fetch(context.Background(), "ghost", nil); err == nil {
		t.Fatal("expected error for unregistered document")
	}
}

func TestFetchSuppressedAfterTeardown(t *testing.T) {
	st := newTestStore()
	rs := mapRemote{"scan.pdf-analysis/d1/response.json": []byte(testResponse)}
	f := New(st, rs, nil)

	dead := func() bool { return false }
	if err := f.Fetch(context.Background(), "d1", dead); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	// The resolution after teardown must not commit anything.
	doc, _ := st.Get("d1")
	if doc.Analysis != nil {
		t.Error("stale analysis committed after teardown")
	}
	if got := st.Status("d1"); got != store.StatusPending {
		t.Errorf("status = %v, want pending left as-is", got)
	}
}

func TestFetchErrorSuppressedAfterTeardown(t *testing.T) {
	st := newTestStore()
	f := New(st, mapRemote{}, nil)

	dead := func() bool { return false }
	if err := f.Fetch(context.Background(), "d1", dead); err != nil {
		t.Fatalf("expected suppressed error, got %v", err)
	}
	if got := st.Status("d1"); got == store.StatusError {
		t.Error("error state committed after teardown")
	}
}
