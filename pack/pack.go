// Package pack stores atlases in a single bbolt resource file so a game can
// ship one file instead of a directory of atlas documents.
//
// Atlases are stored gzip-compressed under their name together with the path
// they were packed from, which is kept as the parse origin so texture
// references resolve the same way they did on disk.
package pack

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"time"

	"github.com/phanxgames/flipbook"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketAtlases = []byte("atlases")
	bucketOrigins = []byte("origins")
)

// ErrNotFound is returned when a pack has no atlas with the requested name.
var ErrNotFound = errors.New("pack: atlas not found")

// Pack is an open resource file.
type Pack struct {
	db *bolt.DB
}

// Open opens or creates the pack at path. A read-only pack can be opened by
// several processes at once.
func Open(path string, readOnly bool) (*Pack, error) {
	db, err := bolt.Open(path, 0o666, &bolt.Options{
		Timeout:  time.Second,
		ReadOnly: readOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("pack: open %s: %w", path, err)
	}
	if !readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			if _, err := tx.CreateBucketIfNotExists(bucketAtlases); err != nil {
				return err
			}
			_, err := tx.CreateBucketIfNotExists(bucketOrigins)
			return err
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pack: init %s: %w", path, err)
		}
	}
	return &Pack{db: db}, nil
}

// Close closes the underlying file.
func (p *Pack) Close() error {
	return p.db.Close()
}

// Put compresses an uncompressed atlas document and stores it under name,
// replacing any previous entry. origin is the path the atlas was read from.
func (p *Pack) Put(name, origin string, atlas []byte) error {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(atlas); err != nil {
		return fmt.Errorf("pack: compress %s: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("pack: compress %s: %w", name, err)
	}
	return p.PutCompressed(name, origin, buf.Bytes())
}

// PutCompressed stores an already gzip-compressed atlas under name.
func (p *Pack) PutCompressed(name, origin string, data []byte) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		atlases := tx.Bucket(bucketAtlases)
		origins := tx.Bucket(bucketOrigins)
		if atlases == nil || origins == nil {
			return fmt.Errorf("pack: buckets missing")
		}
		if err := atlases.Put([]byte(name), data); err != nil {
			return err
		}
		return origins.Put([]byte(name), []byte(origin))
	})
}

// Delete removes the atlas stored under name. Deleting a missing name is not
// an error.
func (p *Pack) Delete(name string) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketAtlases, bucketOrigins} {
			if buck := tx.Bucket(b); buck != nil {
				if err := buck.Delete([]byte(name)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Names returns the stored atlas names in key order.
func (p *Pack) Names() ([]string, error) {
	var names []string
	err := p.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(bucketAtlases)
		if buck == nil {
			return nil
		}
		return buck.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// read copies the compressed atlas and its origin out of the pack. Values
// returned by bbolt are only valid inside the transaction.
func (p *Pack) read(name string) (data []byte, origin string, err error) {
	err = p.db.View(func(tx *bolt.Tx) error {
		atlases := tx.Bucket(bucketAtlases)
		if atlases == nil {
			return ErrNotFound
		}
		v := atlases.Get([]byte(name))
		if v == nil {
			return ErrNotFound
		}
		data = bytes.Clone(v)
		if origins := tx.Bucket(bucketOrigins); origins != nil {
			origin = string(origins.Get([]byte(name)))
		}
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("pack: read %q: %w", name, err)
	}
	return data, origin, nil
}

// Load parses the atlas stored under name, resolving its texture through
// textures.
func (p *Pack) Load(name string, textures flipbook.TextureSource) (*flipbook.SpriteSheet, error) {
	data, origin, err := p.read(name)
	if err != nil {
		return nil, err
	}
	return flipbook.ParseCompressed(bytes.NewReader(data), origin, textures)
}

// LoadAll parses every atlas in the pack.
func (p *Pack) LoadAll(textures flipbook.TextureSource) (map[string]*flipbook.SpriteSheet, error) {
	names, err := p.Names()
	if err != nil {
		return nil, err
	}
	sheets := make(map[string]*flipbook.SpriteSheet, len(names))
	for _, name := range names {
		s, err := p.Load(name, textures)
		if err != nil {
			return nil, err
		}
		sheets[name] = s
	}
	return sheets, nil
}
