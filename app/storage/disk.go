package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore stores files on the local filesystem under a root directory.
// Returned paths are relative to that root, e.g. "uploads/<name>.jpg".
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (d *DiskStore) Put(content io.Reader, filename string, folder string) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)
	relPath := filepath.ToSlash(filepath.Join(folder, name))
	fullPath := filepath.Join(d.root, folder, name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", relPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, content); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file %s: %w", relPath, err)
	}

	return relPath, nil
}

func (d *DiskStore) Delete(path string) bool {
	fullPath := filepath.Join(d.root, filepath.FromSlash(path))

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return false
	}

	if err := os.Remove(fullPath); err != nil {
		log.Printf("DiskStore: failed to delete %s: %v", path, err)
		return false
	}
	return true
}

func (d *DiskStore) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(path)))
	return err == nil
}
