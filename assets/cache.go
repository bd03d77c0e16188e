// Package assets resolves resource keys to loaded fonts, textures and sprite
// sheets. Loading happens once per key; concurrent requests for the same key
// share one load.
package assets

import (
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/singleflight"

	"github.com/plus3/kite/logging"
)

var (
	// ErrLoad wraps every failure to produce a resource. The loader's own error
	// stays in the chain, so errors.Is matches both.
	ErrLoad = eris.New("load error")
	// ErrUnknownKind is returned for keys whose extension has no loader.
	ErrUnknownKind = eris.New("no loader for resource kind")
	// ErrWrongType is returned by Get when the resource is not of the requested type.
	ErrWrongType = eris.New("resource has a different type")
)

// EmbeddedPrefix marks keys served from memory instead of the source file system.
const EmbeddedPrefix = "embedded://"

// Loader turns the resource stored under key into a value. Loaders may call
// back into the cache to resolve dependencies, such as a sheet's texture.
type Loader func(c *Cache, key string) (any, error)

// Cache is a get-or-load store of resources keyed by path.
type Cache struct {
	src fs.FS

	mu       sync.RWMutex
	items    map[string]any
	failed   map[string]error
	loaders  map[string]Loader
	embedded map[string]Loader

	group singleflight.Group
}

// NewCache creates a cache reading files from src with the default loaders
// registered. src may be nil when only embedded resources are used.
func NewCache(src fs.FS) *Cache {
	c := &Cache{
		src:      src,
		items:    make(map[string]any),
		failed:   make(map[string]error),
		loaders:  make(map[string]Loader),
		embedded: make(map[string]Loader),
	}
	registerDefaults(c)
	return c
}

// Register sets the loader for an extension such as ".ttf".
func (c *Cache) Register(ext string, loader Loader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaders[strings.ToLower(ext)] = loader
	clear(c.failed)
}

// RegisterEmbedded sets the loader for a key under EmbeddedPrefix.
func (c *Cache) RegisterEmbedded(name string, loader Loader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embedded[EmbeddedPrefix+name] = loader
	clear(c.failed)
}

// GetOrLoad returns the resource for key, loading it on first use.
// A failed load is remembered and returned again until the key is unloaded or
// a loader is registered.
func (c *Cache) GetOrLoad(key string) (any, error) {
	if item, ok, err := c.lookup(key); ok {
		return item, err
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if item, ok, err := c.lookup(key); ok {
			return item, err
		}

		item, err := c.load(key)
		if err != nil {
			logging.Logger().Error("resource load failed", slog.String("key", key), slog.Any("error", err))
			err = loadError(key, err)

			c.mu.Lock()
			c.failed[key] = err
			c.mu.Unlock()
			return nil, err
		}

		c.mu.Lock()
		c.items[key] = item
		c.mu.Unlock()

		logging.Logger().Debug("resource loaded", slog.String("key", key))
		return item, nil
	})
	return v, err
}

func (c *Cache) lookup(key string) (any, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if item, ok := c.items[key]; ok {
		return item, true, nil
	}
	if err, ok := c.failed[key]; ok {
		return nil, true, err
	}
	return nil, false, nil
}

func (c *Cache) load(key string) (any, error) {
	loader, err := c.loaderFor(key)
	if err != nil {
		return nil, err
	}
	return loader(c, key)
}

// loadError keeps both ErrLoad and the cause matchable with errors.Is.
func loadError(key string, err error) error {
	return eris.Wrapf(errors.Join(ErrLoad, err), "load %s", key)
}

// Get loads key and asserts the resource type.
func Get[T any](c *Cache, key string) (T, error) {
	var zero T

	item, err := c.GetOrLoad(key)
	if err != nil {
		return zero, err
	}

	typed, ok := item.(T)
	if !ok {
		return zero, eris.Wrapf(ErrWrongType, "%s is %T", key, item)
	}
	return typed, nil
}

// Preload loads every key, stopping at the first failure.
func (c *Cache) Preload(keys ...string) error {
	for _, key := range keys {
		if _, err := c.GetOrLoad(key); err != nil {
			return err
		}
	}
	return nil
}

// Unload forgets a resource or a remembered failure. It reports whether the
// key was loaded.
func (c *Cache) Unload(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.failed, key)
	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	return true
}

// Keys returns the loaded keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// ReadFile reads a file from the cache source.
func (c *Cache) ReadFile(key string) ([]byte, error) {
	if c.src == nil {
		return nil, eris.Errorf("no source file system for %s", key)
	}
	return fs.ReadFile(c.src, key)
}

// Open opens a file from the cache source.
func (c *Cache) Open(key string) (fs.File, error) {
	if c.src == nil {
		return nil, eris.Errorf("no source file system for %s", key)
	}
	return c.src.Open(key)
}

func (c *Cache) loaderFor(key string) (Loader, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if strings.HasPrefix(key, EmbeddedPrefix) {
		if loader, ok := c.embedded[key]; ok {
			return loader, nil
		}
		return nil, eris.Wrapf(ErrUnknownKind, "embedded resource %s", key)
	}

	ext := strings.ToLower(path.Ext(key))
	loader, ok := c.loaders[ext]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownKind, "%s", key)
	}
	return loader, nil
}
