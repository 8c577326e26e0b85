// Command flipbook-pack validates the atlases listed in a YAML manifest and
// writes them into a single resource pack.
//
//	flipbook-pack -manifest ./atlases.yml -out ./atlases.pack
//
// Atlas paths in the manifest are relative to the manifest's directory and
// are stored as-is, so texture references resolve against the same asset
// root at runtime.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/flipbook"
	"github.com/phanxgames/flipbook/pack"
)

var (
	manifestPath  string
	outPath       string
	checkTextures bool
	verbose       bool
)

func parseFlags() {
	flag.StringVar(&manifestPath, "manifest", "./atlases.yml",
		"Path to the YAML manifest listing the atlases to pack.")
	flag.StringVar(&outPath, "out", "./atlases.pack",
		"Resource file to write the atlases to.")
	flag.BoolVar(&checkTextures, "check-textures", true,
		"Fail if an atlas references a texture file that does not exist.")
	flag.BoolVar(&verbose, "v", false,
		"Log each packed atlas.")

	flag.Parse()
}

func main() {
	parseFlags()

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		log.Fatalf("read manifest: %v", err)
	}
	manifest, err := flipbook.ParseManifest(data)
	if err != nil {
		log.Fatal(err)
	}

	p, err := pack.Open(outPath, false)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	root := filepath.Dir(manifestPath)
	for _, entry := range manifest.Atlases {
		if err := packEntry(p, root, entry); err != nil {
			_ = p.Close()
			log.Fatalf("%s: %v", entry.Name, err)
		}
		if verbose {
			log.Printf("packed %s (%s)", entry.Name, entry.Path)
		}
	}
}

// packEntry parses the atlas to validate it, then stores its bytes.
func packEntry(p *pack.Pack, root string, entry flipbook.ManifestEntry) error {
	raw, err := os.ReadFile(filepath.Join(root, entry.Path))
	if err != nil {
		return err
	}

	textures := flipbook.TextureLoaderFunc(func(path string) (*ebiten.Image, error) {
		if checkTextures {
			return nil, textureExists(filepath.Join(root, path))
		}
		return nil, nil
	})

	var sheet *flipbook.SpriteSheet
	if entry.Compressed {
		sheet, err = flipbook.ParseCompressed(bytes.NewReader(raw), entry.Path, textures)
	} else {
		sheet, err = flipbook.Parse(bytes.NewReader(raw), entry.Path, textures)
	}
	if err != nil {
		return err
	}
	if entry.Default != "" {
		if _, ok := sheet.Animation(entry.Default); !ok {
			return fmt.Errorf("default %q: %w", entry.Default, flipbook.ErrNoAnimation)
		}
	}

	if entry.Compressed {
		return p.PutCompressed(entry.Name, entry.Path, raw)
	}
	return p.Put(entry.Name, entry.Path, raw)
}

// textureExists checks for an extension-less texture reference on disk
// without decoding it.
func textureExists(base string) error {
	for _, ext := range flipbook.DefaultTextureExtensions {
		if _, err := os.Stat(base + ext); err == nil {
			return nil
		}
	}
	return fmt.Errorf("texture %s not found (tried %v)", base, flipbook.DefaultTextureExtensions)
}
