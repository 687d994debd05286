// internal/storage/file_store.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileStore is a file-backed DocumentStore. Each document lives at
// <base>/<collection>/<id>.json. Writes go through a temp file and rename
// so a crashed write never leaves a half-written document.
type FileStore struct {
	BaseDir string

	fileLocks sync.Map // path -> *sync.RWMutex
}

// NewFileStore creates the store, ensuring the base directory exists.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileStore{BaseDir: baseDir}, nil
}

func (fs *FileStore) getFileLock(fullPath string) *sync.RWMutex {
	value, _ := fs.fileLocks.LoadOrStore(fullPath, &sync.RWMutex{})
	return value.(*sync.RWMutex)
}

// Create persists doc under a new id with server-assigned timestamps and
// returns the id.
func (fs *FileStore) Create(ctx context.Context, collection string, doc interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}

	// Inject the server-assigned fields into the stored shape without
	// requiring the caller's type to expose setters.
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("document is not a JSON object: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	fields["id"] = id
	fields["created_at"] = now
	fields["updated_at"] = now

	content, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := fs.saveFile(collection, id+".json", content); err != nil {
		return "", err
	}

	return id, nil
}

// Get reads a document into v.
func (fs *FileStore) Get(ctx context.Context, collection, id string, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(fs.BaseDir, collection, id+".json")

	lock := fs.getFileLock(fullPath)
	lock.RLock()
	defer lock.RUnlock()

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
		}
		return fmt.Errorf("failed to read document: %w", err)
	}

	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	return nil
}

// List returns the ids of every document in a collection.
func (fs *FileStore) List(ctx context.Context, collection string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fullPath := filepath.Join(fs.BaseDir, collection)
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}

	return ids, nil
}

func (fs *FileStore) saveFile(dirPath, filename string, content []byte) error {
	fullDirPath := filepath.Join(fs.BaseDir, dirPath)
	fullPath := filepath.Join(fullDirPath, filename)

	lock := fs.getFileLock(fullPath)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(fullDirPath, 0755); err != nil {
		return fmt.Errorf("failed to create collection directory: %w", err)
	}

	tempPath := fullPath + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Printf("warning: failed to clean up temp file %s after rename failure: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}
