package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DocumentStore keeps customer documents (passport and licence scans) on the
// local filesystem. Only the generated filename is recorded on the customer;
// the database never sees file contents.
type DocumentStore interface {
	Save(kind string, originalName string, r io.Reader) (string, error)
	Open(filename string) (io.ReadCloser, error)
	Remove(filename string) error
}

type localDocumentStore struct {
	dir string
}

func NewLocalDocumentStore(dir string) (DocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localDocumentStore{dir: dir}, nil
}

// Save stores the document under a uuid-prefixed name so repeated uploads of
// the same file never collide.
func (s *localDocumentStore) Save(kind string, originalName string, r io.Reader) (string, error) {
	base := filepath.Base(originalName)
	filename := fmt.Sprintf("%s_%s_%s", kind, uuid.New().String(), base)

	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write document file: %w", err)
	}
	return filename, nil
}

func (s *localDocumentStore) Open(filename string) (io.ReadCloser, error) {
	// Reject anything trying to escape the upload directory.
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return nil, fmt.Errorf("invalid document filename")
	}
	return os.Open(filepath.Join(s.dir, filename))
}

func (s *localDocumentStore) Remove(filename string) error {
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("invalid document filename")
	}
	return os.Remove(filepath.Join(s.dir, filename))
}
