package filestore

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store owns scratch-file lifecycles on behalf of the converters: they
// request a scoped directory, write into it, and remove it when done.
type Store interface {
	CreateDir(prefix string) (string, error)
	WriteFile(dir, name string, data []byte) (string, error)
	RemoveDir(dir string) error
}

var _ Store = &OS{}

type OS struct {
	root string
}

type Option func(*OS)

func WithRoot(root string) Option {
	return func(s *OS) {
		s.root = root
	}
}

func New(options ...Option) *OS {
	s := &OS{
		root: os.TempDir(),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *OS) CreateDir(prefix string) (string, error) {
	dir := filepath.Join(s.root, prefix+"-"+uuid.NewString())

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	return dir, nil
}

func (s *OS) WriteFile(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	return path, nil
}

func (s *OS) RemoveDir(dir string) error {
	return os.RemoveAll(dir)
}
