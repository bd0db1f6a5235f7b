package points

import (
	"fmt"
	"os"
	"sync"

	"github.com/james-nesbitt/coding-challenges/internal/geometry"
)

// Cache holds parsed point sets keyed by file path so repeated tool calls on
// the same file skip the disk read.
//
// Cache is safe for concurrent use. Entries stay until Evict or Clear; a
// changed file is not noticed until its entry is evicted.
type Cache struct {
	mu   sync.RWMutex
	sets map[string][]geometry.Point
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		sets: make(map[string][]geometry.Point),
	}
}

// Load returns the point set stored at path, reading and parsing the file
// on first use. The returned slice is a copy owned by the caller.
func (c *Cache) Load(path string) ([]geometry.Point, error) {
	c.mu.RLock()
	if pts, ok := c.sets[path]; ok {
		c.mu.RUnlock()
		return clone(pts), nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open points file: %w", err)
	}
	defer f.Close()

	pts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.mu.Lock()
	c.sets[path] = pts
	c.mu.Unlock()

	return clone(pts), nil
}

// Len returns the number of cached point sets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets)
}

// Evict removes the entry for path. Missing paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.sets, path)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.sets = make(map[string][]geometry.Point)
	c.mu.Unlock()
}

func clone(pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	copy(out, pts)
	return out
}
