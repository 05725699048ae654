// ABOUTME: Persistent key-value storage for client session state
// ABOUTME: Keeps the bearer token and cached user in a JSON file under the config directory

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/juju/errors"
)

// Fixed keys shared by the session and the API client.
const (
	KeyAccessToken = "accessToken"
	KeyUser        = "luxe_user"
)

// Store is a small persistent key-value store.
// Get returns an error satisfying errors.Is(err, errors.NotFound) for absent keys.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore persists values in <dir>/state.json.
// Every call re-reads the file so writes from another process are visible.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates a FileStore rooted at dir
func NewFile(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "luxe")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "luxe")
}

// Dir returns the directory holding the state file
func (fs *FileStore) Dir() string {
	return fs.dir
}

func (fs *FileStore) path() string {
	return filepath.Join(fs.dir, "state.json")
}

// Get returns the value stored under key
func (fs *FileStore) Get(key string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", errors.Trace(err)
	}
	v, ok := values[key]
	if !ok {
		return "", errors.NotFoundf("key %q", key)
	}
	return v, nil
}

// Set stores value under key
func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return errors.Trace(err)
	}
	values[key] = value
	return fs.save(values)
}

// Delete removes key; deleting an absent key is not an error
func (fs *FileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return errors.Trace(err)
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return fs.save(values)
}

// load reads the state file. A missing or corrupt file reads as empty.
func (fs *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.path())
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Annotate(err, "reading client state")
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]string{}, nil
	}
	return values, nil
}

func (fs *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(fs.dir, 0700); err != nil {
		return errors.Annotate(err, "creating config directory")
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}

	// Write then rename so readers never observe a half-written file.
	tmp, err := os.CreateTemp(fs.dir, "state-*.json")
	if err != nil {
		return errors.Annotate(err, "writing client state")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Annotate(err, "writing client state")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Annotate(err, "writing client state")
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		os.Remove(tmp.Name())
		return errors.Trace(err)
	}
	return errors.Annotate(os.Rename(tmp.Name(), fs.path()), "writing client state")
}

// MemoryStore is an in-process Store, used by tests and ephemeral sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty MemoryStore
func NewMemory() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (ms *MemoryStore) Get(key string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	v, ok := ms.values[key]
	if !ok {
		return "", errors.NotFoundf("key %q", key)
	}
	return v, nil
}

func (ms *MemoryStore) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *MemoryStore) Delete(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.values, key)
	return nil
}
