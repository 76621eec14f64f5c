// Package upload is the local implementation of the upload collaborator: it
// accepts logo bytes and issues the opaque file ids the rest of the engine
// references. Transport, retries and durable storage belong to the real
// collaborator behind the same interface.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Uploader issues an opaque file id for uploaded bytes.
type Uploader interface {
	Store(name string, data []byte) (fileID string, err error)
	Open(fileID string) ([]byte, error)
}

// DiskStore keeps uploads in a flat directory, one file per id.
type DiskStore struct {
	dir    string
	logger *zap.Logger
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string, logger *zap.Logger) (*DiskStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create dir: %w", err)
	}
	return &DiskStore{dir: dir, logger: logger}, nil
}

// Store writes the bytes under a fresh id. The original name contributes
// only its extension; the id is the sole reference callers keep.
func (s *DiskStore) Store(name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".png"
	}
	fileID := uuid.NewString() + ext

	if err := os.WriteFile(filepath.Join(s.dir, fileID), data, 0o644); err != nil {
		return "", fmt.Errorf("upload: write: %w", err)
	}

	s.logger.Debug("stored upload", zap.String("fileId", fileID), zap.Int("bytes", len(data)))
	return fileID, nil
}

// Open reads back a stored file by id. Ids are opaque to callers but are
// path-checked here so a crafted id cannot escape the upload directory.
func (s *DiskStore) Open(fileID string) ([]byte, error) {
	if fileID != filepath.Base(fileID) {
		return nil, fmt.Errorf("upload: invalid file id %q", fileID)
	}
	return os.ReadFile(filepath.Join(s.dir, fileID))
}
