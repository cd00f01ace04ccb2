package remote

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDirFetch(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "results")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "response.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDir(root)

	data, err := d.Fetch(context.Background(), "results/response.json")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Fetch() = %q, want %q", data, "{}")
	}
}

func TestDirFetchMissing(t *testing.T) {
	d := NewDir(t.TempDir())

	if _, err := d.Fetch(context.Background(), "nope.json"); err == nil {
		t.Error("expected error for missing artifact")
	}
}

func TestDirSignedURL(t *testing.T) {
	root := t.TempDir()
	d := NewDir(root)

	url, err := d.SignedURL("results/page-1-forms.csv", 300*time.Second)
	if err != nil {
		t.Fatalf("SignedURL() error: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Errorf("SignedURL() = %q, want file:// prefix", url)
	}
	if !strings.HasSuffix(url, "results/page-1-forms.csv") {
		t.Errorf("SignedURL() = %q, want artifact suffix", url)
	}
}
