package flipbook

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrNoAnimation is returned when a manifest or pack names a default
// animation that the loaded sheet does not contain.
var ErrNoAnimation = errors.New("flipbook: animation not found")

// Manifest lists atlases to load together.
//
//	atlases:
//	  - name: hero
//	    path: sprites/hero.xml
//	    compressed: false
//	    default: idle
//	    tint: white
type Manifest struct {
	Atlases []ManifestEntry `yaml:"atlases"`
}

// ManifestEntry describes one atlas in a Manifest.
type ManifestEntry struct {
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`
	Compressed bool   `yaml:"compressed"`
	Default    string `yaml:"default"` // animation selected after loading, optional
	Tint       string `yaml:"tint"`    // color name or #rrggbb[aa], optional
}

// ParseManifest decodes and validates a YAML manifest. Entry names must be
// present and unique, paths present, and tints resolvable.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("flipbook: parse manifest: %w", err)
	}
	seen := make(map[string]bool, len(m.Atlases))
	for i, e := range m.Atlases {
		if e.Name == "" {
			return nil, fmt.Errorf("flipbook: manifest entry %d: missing name", i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("flipbook: manifest entry %d: duplicate name %q", i, e.Name)
		}
		seen[e.Name] = true
		if e.Path == "" {
			return nil, fmt.Errorf("flipbook: manifest entry %q: missing path", e.Name)
		}
		if _, err := e.TintColor(); err != nil {
			return nil, fmt.Errorf("flipbook: manifest entry %q: %w", e.Name, err)
		}
	}
	return &m, nil
}

// TintColor resolves Tint. An empty tint is ColorWhite. Names are SVG color
// keywords, case-insensitive; hex values are #rrggbb or #rrggbbaa.
func (e ManifestEntry) TintColor() (Color, error) {
	return parseColor(e.Tint)
}

func parseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ColorWhite, nil
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 && len(hex) != 8 {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		return Color{
			R: float64(v>>24&0xff) / 255,
			G: float64(v>>16&0xff) / 255,
			B: float64(v>>8&0xff) / 255,
			A: float64(v&0xff) / 255,
		}, nil
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	return ColorFrom(c), nil
}

// Library holds the sheets loaded from a manifest, keyed by entry name.
type Library struct {
	sheets map[string]*SpriteSheet
	tints  map[string]Color
}

// LoadManifest loads every atlas of m from fsys through textures, selecting
// each entry's default animation. Loading stops at the first error.
func LoadManifest(fsys fs.FS, m *Manifest, textures TextureSource) (*Library, error) {
	lib := &Library{
		sheets: make(map[string]*SpriteSheet, len(m.Atlases)),
		tints:  make(map[string]Color, len(m.Atlases)),
	}
	for _, e := range m.Atlases {
		tint, err := e.TintColor()
		if err != nil {
			return nil, fmt.Errorf("flipbook: manifest entry %q: %w", e.Name, err)
		}
		sheet, err := LoadFile(fsys, e.Path, e.Compressed, textures)
		if err != nil {
			return nil, err
		}
		if e.Default != "" && !sheet.Select(e.Default) {
			return nil, fmt.Errorf("flipbook: manifest entry %q default %q: %w", e.Name, e.Default, ErrNoAnimation)
		}
		lib.sheets[e.Name] = sheet
		lib.tints[e.Name] = tint
	}
	return lib, nil
}

// Sheet returns the sheet loaded for the named entry.
func (l *Library) Sheet(name string) (*SpriteSheet, bool) {
	s, ok := l.sheets[name]
	return s, ok
}

// Tint returns the entry's tint, or ColorWhite for an unknown entry.
func (l *Library) Tint(name string) Color {
	if c, ok := l.tints[name]; ok {
		return c
	}
	return ColorWhite
}

// Names returns the entry names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.sheets))
	for name := range l.sheets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Update advances every sheet by dt seconds.
func (l *Library) Update(dt float64) {
	for _, s := range l.sheets {
		s.Update(dt)
	}
}
