// Package assets handles mesh loading and caching.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/carousel/internal/logger"
	"github.com/Faultbox/carousel/pkg/formats"
)

// ErrNotFound is returned when no source contains the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager handles mesh loading from one or more file systems.
type Manager struct {
	sources []fs.FS
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddDir adds a directory on disk as a mesh source.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset dir %s: not a directory", dir)
	}
	m.AddFS(os.DirFS(dir))
	return nil
}

// AddFS adds a file system as a mesh source.
// Sources are searched in reverse order (last added = highest priority).
func (m *Manager) AddFS(fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, fsys)
	m.mu.Unlock()
}

// Read returns the raw bytes of path from the highest-priority source that has it.
func (m *Manager) Read(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i], path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// LoadMesh loads and parses an OBJ mesh, caching the result.
func (m *Manager) LoadMesh(path string) (*formats.OBJ, error) {
	// Check cache first
	if obj, ok := m.cache.Get(path); ok {
		return obj, nil
	}

	data, err := m.Read(path)
	if err != nil {
		return nil, err
	}

	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	logger.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", obj.VertexCount()),
		zap.Int("triangles", obj.TriangleCount()),
	)

	m.cache.Set(path, obj)
	return obj, nil
}

// Stats returns mesh cache hit and miss counts.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all sources and cached meshes.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for parsed meshes.
type Cache struct {
	data map[string]*formats.OBJ
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*formats.OBJ),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*formats.OBJ, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	obj, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return obj, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, obj *formats.OBJ) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = obj
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*formats.OBJ)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
