package flipbook

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for FSLoader
	_ "image/png"  // register decoder for FSLoader
	"io/fs"
	"path"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureSource resolves a texture reference to a handle. The reference is
// the atlas Texture attribute with its extension stripped, joined to the
// directory of the atlas file.
type TextureSource interface {
	Texture(path string) (*ebiten.Image, error)
}

// TextureLoaderFunc adapts a function to TextureSource. It performs no
// caching; wrap it in a TextureCache to share handles between atlases.
type TextureLoaderFunc func(path string) (*ebiten.Image, error)

// Texture calls f(path).
func (f TextureLoaderFunc) Texture(path string) (*ebiten.Image, error) {
	return f(path)
}

// TextureCache deduplicates texture handles by resolved path so that atlases
// sharing an image share one loaded texture. Entries live until removed.
// The cache is not safe for concurrent use; load atlases from one goroutine.
type TextureCache struct {
	load    TextureLoaderFunc
	entries map[string]*ebiten.Image
}

// NewTextureCache creates an empty cache that calls load on a miss.
func NewTextureCache(load TextureLoaderFunc) *TextureCache {
	return &TextureCache{
		load:    load,
		entries: make(map[string]*ebiten.Image),
	}
}

// Texture returns the cached handle for path, loading and storing it on a miss.
// Loader errors are returned as-is and nothing is cached.
func (c *TextureCache) Texture(path string) (*ebiten.Image, error) {
	if img, ok := c.entries[path]; ok {
		return img, nil
	}
	img, err := c.load(path)
	if err != nil {
		return nil, err
	}
	c.entries[path] = img
	return img, nil
}

// Put stores img under path, replacing any existing entry.
func (c *TextureCache) Put(path string, img *ebiten.Image) {
	c.entries[path] = img
}

// Contains reports whether path has a cached handle.
func (c *TextureCache) Contains(path string) bool {
	_, ok := c.entries[path]
	return ok
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int { return len(c.entries) }

// Remove evicts path. The handle itself is not disposed, since sheets loaded
// earlier may still reference it.
func (c *TextureCache) Remove(path string) {
	delete(c.entries, path)
}

// Purge evicts every entry.
func (c *TextureCache) Purge() {
	clear(c.entries)
}

// DefaultTextureExtensions are the file extensions FSLoader tries, in order.
var DefaultTextureExtensions = []string{".png", ".jpg", ".jpeg"}

// FSLoader returns a loader that decodes textures from fsys. Since atlas
// texture references carry no extension, each of exts (or
// DefaultTextureExtensions when empty) is tried in turn.
func FSLoader(fsys fs.FS, exts ...string) TextureLoaderFunc {
	if len(exts) == 0 {
		exts = DefaultTextureExtensions
	}
	return func(name string) (*ebiten.Image, error) {
		base := path.Clean(filepath.ToSlash(name))
		for _, ext := range exts {
			f, err := fsys.Open(base + ext)
			if err != nil {
				continue
			}
			img, _, err := image.Decode(f)
			_ = f.Close()
			if err != nil {
				return nil, fmt.Errorf("flipbook: decode texture %s: %w", base+ext, err)
			}
			return ebiten.NewImageFromImage(img), nil
		}
		return nil, fmt.Errorf("flipbook: texture %s not found (tried %v): %w", base, exts, fs.ErrNotExist)
	}
}
