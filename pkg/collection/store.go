package collection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/gofrs/flock"
)

// Store is a key/value document store. Each collection is one whole JSON
// document under one key; every mutation rewrites the whole document.
type Store interface {
	// Get returns the document under key, or nil when there is none.
	Get(key string) ([]byte, error)

	// Put replaces the document under key.
	Put(key string, doc []byte) error

	// Delete removes the document under key. Deleting a missing key is not
	// an error.
	Delete(key string) error

	// Update reads the document under key, passes it to fn and writes back
	// what fn returns, holding the store's lock for key throughout. A nil
	// result deletes the document.
	Update(key string, fn func(doc []byte) ([]byte, error)) error
}

var validKey = regexp.MustCompile(`^[a-z0-9_\-]+$`)

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid collection key %q", key)
	}
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneBytes(m.docs[key]), nil
}

func (m *MemoryStore) Put(key string, doc []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = cloneBytes(doc)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func (m *MemoryStore) Update(key string, fn func([]byte) ([]byte, error)) error {
	if err := checkKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(cloneBytes(m.docs[key]))
	if err != nil {
		return err
	}
	if next == nil {
		delete(m.docs, key)
		return nil
	}
	m.docs[key] = cloneBytes(next)
	return nil
}

// FileStore keeps one <key>.json file per document in a directory. Writes
// go through a temp file and rename; Update holds a <key>.json.lock file
// lock across its read and write so concurrent processes serialize.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating collections dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStore) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return f.read(key)
}

func (f *FileStore) Put(key string, doc []byte) error {
	return f.Update(key, func([]byte) ([]byte, error) {
		return doc, nil
	})
}

func (f *FileStore) Delete(key string) error {
	return f.Update(key, func([]byte) ([]byte, error) {
		return nil, nil
	})
}

func (f *FileStore) Update(key string, fn func([]byte) ([]byte, error)) error {
	if err := checkKey(key); err != nil {
		return err
	}

	lock := flock.New(f.path(key) + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", key, err)
	}
	defer func() { _ = lock.Unlock() }()

	current, err := f.read(key)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if next == nil {
		if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", key, err)
		}
		return nil
	}

	return f.write(key, next)
}

func (f *FileStore) read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

func (f *FileStore) write(key string, doc []byte) error {
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", key, err)
	}

	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Ensure both stores implement Store
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)
