package utils

import (
	"os"
	"sync"
	"time"
)

type cacheItem[V any] struct {
	value   V
	modTime time.Time
	size    int64
}

// FileCache caches values derived from files and drops an entry as soon as
// its file changes on disk.
type FileCache[V any] struct {
	mu    sync.RWMutex
	items map[string]cacheItem[V]
}

// NewFileCache creates an empty cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{items: make(map[string]cacheItem[V])}
}

// Get returns the cached value for path if the file is unchanged
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mu.RLock()
	item, ok := c.items[path]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}

	stat, err := os.Stat(path)
	if err != nil || !stat.ModTime().Equal(item.modTime) || stat.Size() != item.size {
		c.Delete(path)
		return zero, false
	}
	return item.value, true
}

// Put stores value for path along with the file's current size and mtime
func (c *FileCache[V]) Put(path string, value V) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[path] = cacheItem[V]{value: value, modTime: stat.ModTime(), size: stat.Size()}
	return nil
}

// Delete removes path from the cache
func (c *FileCache[V]) Delete(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, path)
}

// Len returns the number of cached entries
func (c *FileCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
