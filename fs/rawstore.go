package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/lexcrawl"
)

// Ensure RawStore implements lexcrawl.RawStore at compile time.
var _ lexcrawl.RawStore = (*RawStore)(nil)

// RawStore saves raw page bytes as files in a directory. Each file is
// written under a temporary name and renamed into place.
type RawStore struct {
	dir string
}

// NewRawStore creates a RawStore writing to dir. The directory is created
// on first save.
func NewRawStore(dir string) *RawStore {
	return &RawStore{dir: dir}
}

// SaveRaw writes body to dir/name, replacing any existing file, and
// returns the path written. Names must be plain file names.
func (s *RawStore) SaveRaw(ctx context.Context, name string, body []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", lexcrawl.Errorf(lexcrawl.EINVALID, "invalid file name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}
