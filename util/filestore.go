package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded bytes and hands back an opaque storage path.
type FileStore interface {
	Save(owner string, fileName string, r io.Reader) (path string, size int64, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// LocalFileStore keeps files under Root, one directory per owner.
type LocalFileStore struct {
	Root string
}

func NewLocalFileStore(root string) *LocalFileStore {
	return &LocalFileStore{Root: root}
}

func (s *LocalFileStore) Save(owner, fileName string, r io.Reader) (string, int64, error) {
	dir := filepath.Join(s.Root, owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}

	// client names are never used as paths
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filepath.Base(fileName)))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", 0, err
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("store %s: %w", fileName, err)
	}
	return path, size, nil
}

func (s *LocalFileStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (s *LocalFileStore) Remove(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
