package credential

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists the token in a single file on local disk, the device
// equivalent of browser local storage. The file is created with 0600 since
// it holds a live bearer token.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to the given path. When path is
// empty the token lives under the user config dir as storefront/auth_token.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("credential: resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "storefront", Key)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Read(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("credential: read %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Write(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("credential: create dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("credential: write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credential: clear %s: %w", s.path, err)
	}
	return nil
}
