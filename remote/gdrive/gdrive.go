// Package gdrive implements remote.Store on top of Google Drive.
package gdrive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Store serves document artifacts from a Google Drive folder. Artifact
// names map to file names within the folder; names containing slashes
// are flattened with "-" since Drive has no real paths inside a folder.
type Store struct {
	service  *drive.Service
	folderID string
}

// New creates a Drive-backed store for the given folder. Client options
// carry credentials (option.WithCredentialsFile and friends).
func New(ctx context.Context, folderID string, opts ...option.ClientOption) (*Store, error) {
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	return &Store{service: service, folderID: folderID}, nil
}

// NewWithService creates a store around an existing Drive service,
// useful when the caller manages authentication itself.
func NewWithService(service *drive.Service, folderID string) *Store {
	return &Store{service: service, folderID: folderID}
}

// Fetch downloads the named artifact from the folder.
func (s *Store) Fetch(ctx context.Context, name string) ([]byte, error) {
	id, _, err := s.lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	resp, err := s.service.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// SignedURL returns the artifact's direct-download link. Drive content
// links are bearer-style and do not honor a caller-chosen expiry, so the
// duration is advisory.
func (s *Store) SignedURL(name string, _ time.Duration) (string, error) {
	_, link, err := s.lookup(context.Background(), name)
	if err != nil {
		return "", err
	}
	if link == "" {
		return "", fmt.Errorf("no download link for %s", name)
	}
	return link, nil
}

// lookup finds the named file in the folder and returns its ID and
// download link.
func (s *Store) lookup(ctx context.Context, name string) (id, link string, err error) {
	flat := strings.ReplaceAll(name, "/", "-")
	query := fmt.Sprintf("name = '%s' and trashed=false", strings.ReplaceAll(flat, "'", `\'`))
	if s.folderID != "" {
		query += fmt.Sprintf(" and '%s' in parents", s.folderID)
	}

	list, err := s.service.Files.List().
		Q(query).
		Fields("files(id, name, webContentLink)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", "", fmt.Errorf("listing %s: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", "", fmt.Errorf("artifact %s not found", name)
	}

	f := list.Files[0]
	return f.Id, f.WebContentLink, nil
}
