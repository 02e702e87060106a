package tokens

import "sync"

// MemoryStore is an in-process Store used by tests and short-lived commands
// that should not touch the on-disk credential file.
type MemoryStore struct {
	values map[string]string
	lock   sync.RWMutex
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (ms *MemoryStore) Get(key string) (string, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()

	value, ok := ms.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (ms *MemoryStore) Set(key, value string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	ms.values[key] = value
	return nil
}

func (ms *MemoryStore) Delete(key string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()

	delete(ms.values, key)
	return nil
}
