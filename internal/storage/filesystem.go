package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemStore writes blobs to local disk under baseDir and builds
// URLs under staticBase, which the router serves as static files.
type FilesystemStore struct {
	baseDir    string
	staticBase string
}

func NewFilesystemStore(baseDir, staticBase string) *FilesystemStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if staticBase == "" {
		staticBase = "/static"
	}
	return &FilesystemStore{baseDir: baseDir, staticBase: staticBase}
}

func (s *FilesystemStore) Put(ctx context.Context, folder, name, contentType string, data []byte) (string, error) {
	absDir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}

	absPath := filepath.Join(absDir, name)
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return s.staticBase + "/" + folder + "/" + name, nil
}
