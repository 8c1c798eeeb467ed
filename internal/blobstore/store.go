// Package blobstore stores opaque file/voice/video payloads on a filesystem,
// addressed by generated id. Content is sharded into subdirectories by the
// first two characters of the id to bound directory fan-out, and each payload
// has a plain key=value sidecar holding its declared metadata.
package blobstore

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/nfrund/chathub/internal/domain"
)

// Metadata is the declared name, type and size of a stored blob.
type Metadata struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Store writes blobs beneath a single root directory. Identical content
// stored twice yields two independent blobs; there is no deduplication and
// no checksum verification.
type Store struct {
	fs   afero.Fs
	root string
	log  *slog.Logger
}

// New creates a Store rooted at dir on the given filesystem. The root
// directory is created eagerly so a misconfigured path fails at startup
// rather than on the first upload.
func New(fs afero.Fs, dir string, logger *slog.Logger) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %q: %w", dir, err)
	}
	return &Store{fs: fs, root: dir, log: logger.With("component", "blobstore")}, nil
}

// Put decodes the base64 payload and writes it plus its metadata sidecar,
// returning the generated blob id. Failures wrap domain.ErrStorage.
func (s *Store) Put(encoded, name, contentType string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: decode payload: %v", domain.ErrStorage, err)
	}

	id := uuid.NewString()
	dir := filepath.Join(s.root, id[:2])
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create shard dir: %v", domain.ErrStorage, err)
	}

	meta := fmt.Sprintf("fileName=%s\ncontentType=%s\nsize=%d", name, contentType, len(data))
	if err := afero.WriteFile(s.fs, filepath.Join(dir, id+".meta"), []byte(meta), 0o644); err != nil {
		return "", fmt.Errorf("%w: write metadata: %v", domain.ErrStorage, err)
	}
	if err := afero.WriteFile(s.fs, filepath.Join(dir, id), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write payload: %v", domain.ErrStorage, err)
	}

	s.log.Info("Blob stored", "blob_id", id, "name", name, "size", len(data))
	return id, nil
}

// Get returns the raw bytes of a blob, or domain.ErrBlobNotFound if the id
// is unknown. A missing blob is an expected condition, not an I/O failure.
func (s *Store) Get(id string) ([]byte, error) {
	path, ok := s.payloadPath(id)
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, fmt.Errorf("%w: read payload %s: %v", domain.ErrStorage, id, err)
	}
	return data, nil
}

// Metadata parses a blob's sidecar record.
func (s *Store) Metadata(id string) (Metadata, error) {
	path, ok := s.payloadPath(id)
	if !ok {
		return Metadata{}, domain.ErrBlobNotFound
	}
	raw, err := afero.ReadFile(s.fs, path+".meta")
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, domain.ErrBlobNotFound
		}
		return Metadata{}, fmt.Errorf("%w: read metadata %s: %v", domain.ErrStorage, id, err)
	}

	var meta Metadata
	for _, line := range strings.Split(string(raw), "\n") {
		switch {
		case strings.HasPrefix(line, "fileName="):
			meta.FileName = strings.TrimPrefix(line, "fileName=")
		case strings.HasPrefix(line, "contentType="):
			meta.ContentType = strings.TrimPrefix(line, "contentType=")
		case strings.HasPrefix(line, "size="):
			meta.Size, _ = strconv.ParseInt(strings.TrimPrefix(line, "size="), 10, 64)
		}
	}
	return meta, nil
}

// Exists reports whether a payload for the id is present on disk.
func (s *Store) Exists(id string) bool {
	path, ok := s.payloadPath(id)
	if !ok {
		return false
	}
	exists, err := afero.Exists(s.fs, path)
	return err == nil && exists
}

func (s *Store) payloadPath(id string) (string, bool) {
	if len(id) < 2 {
		return "", false
	}
	return filepath.Join(s.root, id[:2], id), true
}
