package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/revelaction/cohmetrix/storage"
)

// AnnotationStore keeps each annotation in root/<kind>/<version>.json.
type AnnotationStore struct {
	root string
}

var _ storage.AnnotationStore = (*AnnotationStore)(nil)

// NewAnnotationStore creates root if it does not exist.
func NewAnnotationStore(root string) (*AnnotationStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &AnnotationStore{root: root}, nil
}

func (s *AnnotationStore) path(key storage.Key) (string, error) {
	for _, part := range []string{key.Kind, key.Version} {
		if part == "" || part == "." || part == ".." || filepath.Base(part) != part {
			return "", fmt.Errorf("invalid annotation key %q/%q", key.Kind, key.Version)
		}
	}
	return filepath.Join(s.root, key.Kind, key.Version+".json"), nil
}

func (s *AnnotationStore) Read(key storage.Key) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	return data, err
}

// Write replaces the file through a rename, so readers never see a
// partial annotation.
func (s *AnnotationStore) Write(key storage.Key, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), p)
}

func (s *AnnotationStore) Delete(key storage.Key) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
