package tokens

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore persists keys as a flat JSON object on disk. It is the gateway's
// stand-in for browser-local storage: one file per origin, written whole on
// every mutation.
type FileStore struct {
	path string
	lock sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store at path. The parent directory is
// created if needed; the file itself is created lazily on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[NewFileStore] os.MkdirAll")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Get(key string) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (fs *FileStore) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	values[key] = value
	return fs.save(values)
}

func (fs *FileStore) Delete(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return fs.save(values)
}

func (fs *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileStore.load] os.ReadFile")
	}
	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "[FileStore.load] json.Unmarshal")
	}
	return values, nil
}

func (fs *FileStore) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileStore.save] json.MarshalIndent")
	}
	// Tokens live in this file, keep it owner-only.
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.save] os.WriteFile")
	}
	return nil
}
