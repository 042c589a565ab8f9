// Package assets indexes the model and media files a show can place on
// stage. Libraries layer over plain directories; later directories win
// when the same relative path exists in several.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/stagecue/stagecue/internal/stage"
)

var modelExts = map[string]bool{
	".glb":  true,
	".gltf": true,
}

var mediaExts = map[string]stage.TextureType{
	".png":  stage.TextureImage,
	".jpg":  stage.TextureImage,
	".jpeg": stage.TextureImage,
	".webp": stage.TextureImage,
	".mp4":  stage.TextureVideo,
	".webm": stage.TextureVideo,
	".mov":  stage.TextureVideo,
}

// Library resolves asset paths across a stack of directories.
type Library struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		cache: NewCache(),
	}
}

// AddDir adds an asset directory to the library.
// Directories are searched in reverse order (last added = highest priority).
func (l *Library) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding asset dir %s: not a directory", dir)
	}

	l.mu.Lock()
	l.dirs = append(l.dirs, dir)
	l.mu.Unlock()

	return nil
}

// Load reads a file by its library-relative path.
func (l *Library) Load(path string) ([]byte, error) {
	if data, ok := l.cache.Get(path); ok {
		return data, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	// Search directories in reverse order
	for i := len(l.dirs) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(l.dirs[i], path))
		if err == nil {
			l.cache.Set(path, data)
			return data, nil
		}
	}

	return nil, fmt.Errorf("asset not found: %s", path)
}

// Models lists the relative paths of every model file in the library,
// deduplicated and sorted.
func (l *Library) Models() []string {
	return l.scan(func(ext string) bool { return modelExts[ext] })
}

// Media lists the relative paths of every image and video file.
func (l *Library) Media() []string {
	return l.scan(func(ext string) bool { _, ok := mediaExts[ext]; return ok })
}

func (l *Library) scan(keep func(ext string) bool) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]bool)
	for _, dir := range l.dirs {
		root := dir
		_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if !keep(strings.ToLower(filepath.Ext(path))) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			seen[filepath.ToSlash(rel)] = true
			return nil
		})
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// PopulateContent registers every media file in the library with the
// content store, skipping paths already present.
func PopulateContent(l *Library, store *stage.ContentStore) int {
	existing := make(map[string]bool)
	for _, tex := range store.All() {
		existing[tex.FilePath] = true
	}

	added := 0
	for _, path := range l.Media() {
		if existing[path] {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		store.Add(&stage.ContentTexture{
			ID:       stage.NewID(),
			Name:     name,
			FilePath: path,
			Type:     mediaExts[strings.ToLower(filepath.Ext(path))],
		})
		added++
	}
	return added
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
