package credstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// credentialsFile is the on-disk document layout.
type credentialsFile struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at"`
}

// FileStore persists the token as a YAML file with 0600 permissions.
// Writes replace the whole file, so readers never observe a partial token.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at the given path.
// The parent directory is created on first Set if it does not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the credentials file location.
func (s *FileStore) Path() string {
	return s.path
}

// Get reads the persisted token. A missing file, an unreadable document, or a
// document with an empty token all report ErrNotFound.
func (s *FileStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("credstore: read %s: %w", s.path, err)
	}

	var doc credentialsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// A corrupt credentials file is equivalent to no credentials; the
		// caller will re-authenticate and overwrite it.
		return "", ErrNotFound
	}

	if doc.Token == "" {
		return "", ErrNotFound
	}

	return doc.Token, nil
}

// Set persists the token, overwriting any previous value.
func (s *FileStore) Set(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("credstore: create %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(credentialsFile{
		Token:   token,
		SavedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("credstore: marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("credstore: write %s: %w", s.path, err)
	}

	return nil
}

// Clear removes the credentials file. A missing file is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("credstore: remove %s: %w", s.path, err)
	}

	return nil
}
