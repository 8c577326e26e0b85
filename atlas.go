package flipbook

import (
	"bufio"
	"compress/gzip"
	"compress/zlib"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/text/encoding/charmap"
)

// Atlas element and attribute names. These are the wire contract.
const (
	elemSheet     = "SpriteSheet"
	elemAnimation = "Animation"
	elemFrame     = "Frame"
	elemEvent     = "Event"
	elemShape     = "Shape"
)

// FormatError reports a malformed atlas: XML syntax errors, unexpected
// elements, and missing or non-numeric attributes. A parse that returns a
// FormatError produces no sheet.
type FormatError struct {
	Path    string // origin path passed to Parse
	Line    int    // 1-based line of the offending element, 0 if unknown
	Element string // element being read, if any
	Attr    string // attribute at fault, if any
	Msg     string
	Err     error // underlying cause, if any
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("flipbook: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	if e.Element != "" {
		fmt.Fprintf(&b, "<%s", e.Element)
		if e.Attr != "" {
			fmt.Fprintf(&b, " %s", e.Attr)
		}
		b.WriteString(">: ")
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }

// Parse reads an uncompressed atlas from r and returns the sprite sheet it
// describes. originPath is the atlas location; the texture reference is
// resolved relative to its directory and handed to textures. Texture source
// errors are wrapped and returned unchanged in kind.
func Parse(r io.Reader, originPath string, textures TextureSource) (*SpriteSheet, error) {
	p := newAtlasParser(r, originPath)
	doc, err := p.parse()
	if err != nil {
		return nil, err
	}
	texPath := resolveTexturePath(originPath, doc.texture)
	tex, err := textures.Texture(texPath)
	if err != nil {
		return nil, fmt.Errorf("flipbook: load texture %s for %s: %w", texPath, originPath, err)
	}
	return doc.build(tex), nil
}

// ParseCompressed is Parse for atlases stored DEFLATE-compressed. The stream
// must carry a gzip or zlib header; the framing is detected from it. Raw
// DEFLATE without a header is not accepted.
func ParseCompressed(r io.Reader, originPath string, textures TextureSource) (*SpriteSheet, error) {
	zr, err := decompressor(bufio.NewReader(r))
	if err != nil {
		return nil, &FormatError{Path: originPath, Msg: "decompress", Err: err}
	}
	defer zr.Close()
	return Parse(zr, originPath, textures)
}

var errUnknownCompression = errors.New("unrecognized compression header")

// decompressor picks gzip or zlib framing from the first two bytes.
func decompressor(br *bufio.Reader) (io.ReadCloser, error) {
	head, err := br.Peek(2)
	if err != nil {
		return nil, err
	}
	switch {
	case head[0] == 0x1f && head[1] == 0x8b:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case head[0]&0x0f == 8 && (uint16(head[0])<<8|uint16(head[1]))%31 == 0:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr, nil
	}
	return nil, errUnknownCompression
}

// LoadFile opens name in fsys and parses it, decompressing first when
// compressed is set. The file extension is not consulted.
func LoadFile(fsys fs.FS, name string, compressed bool, textures TextureSource) (*SpriteSheet, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("flipbook: open atlas: %w", err)
	}
	defer f.Close()
	if compressed {
		return ParseCompressed(f, name, textures)
	}
	return Parse(f, name, textures)
}

// resolveTexturePath strips the extension from ref and joins it to the
// directory holding the atlas.
func resolveTexturePath(originPath, ref string) string {
	ref = strings.TrimSuffix(ref, filepath.Ext(ref))
	return filepath.Join(filepath.Dir(originPath), ref)
}

// --- document model ---

type atlasDoc struct {
	version    string
	texture    string
	animations []atlasAnimation
}

type atlasAnimation struct {
	name   string
	frames []Frame
}

// build turns the parsed document into a sheet. Later animations with a
// duplicate name replace earlier ones.
func (d *atlasDoc) build(tex *ebiten.Image) *SpriteSheet {
	s := &SpriteSheet{
		Version:    d.version,
		texture:    tex,
		animations: make(map[string]*Animation, len(d.animations)),
	}
	for _, a := range d.animations {
		if _, dup := s.animations[a.name]; dup {
			debugf("duplicate animation %q replaces earlier definition", a.name)
		}
		debugCheckFrames(a.name, a.frames)
		s.animations[a.name] = NewAnimation(tex, a.frames)
	}
	return s
}

// --- parser ---

type atlasParser struct {
	dec    *xml.Decoder
	origin string
}

func newAtlasParser(r io.Reader, origin string) *atlasParser {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	return &atlasParser{dec: dec, origin: origin}
}

// charsetReader accepts the single-byte encodings older atlas exporters
// declare in the XML prolog.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported charset %q", label)
}

func (p *atlasParser) errorf(elem, attr string, cause error, format string, args ...any) *FormatError {
	line, _ := p.dec.InputPos()
	return &FormatError{
		Path:    p.origin,
		Line:    line,
		Element: elem,
		Attr:    attr,
		Msg:     fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// next returns the next start or end element, skipping text, comments and
// processing instructions. It returns io.EOF at the end of input.
func (p *atlasParser) next() (xml.Token, error) {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, p.errorf("", "", err, "malformed XML")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.EndElement:
			return t, nil
		}
	}
}

// nextChild returns the next child start element of parent, or ok=false once
// parent's end tag has been consumed.
func (p *atlasParser) nextChild(parent string) (xml.StartElement, bool, error) {
	tok, err := p.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, false, p.errorf(parent, "", io.ErrUnexpectedEOF, "unterminated element")
		}
		return xml.StartElement{}, false, err
	}
	if start, ok := tok.(xml.StartElement); ok {
		return start, true, nil
	}
	return xml.StartElement{}, false, nil
}

func (p *atlasParser) parse() (*atlasDoc, error) {
	var root xml.StartElement
	for {
		tok, err := p.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, p.errorf("", "", nil, "no <%s> root element", elemSheet)
			}
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			root = start
			break
		}
	}
	if root.Name.Local != elemSheet {
		return nil, p.errorf(root.Name.Local, "", nil, "root element must be <%s>", elemSheet)
	}

	attrs := p.attrs(root)
	doc := &atlasDoc{
		version: attrs.str("Version"),
		texture: attrs.str("Texture"),
	}
	if attrs.err != nil {
		return nil, attrs.err
	}
	if doc.texture == "" {
		return nil, p.errorf(elemSheet, "Texture", nil, "empty texture reference")
	}

	// Every published version shares this layout; Version is kept on the
	// sheet so a future layout can branch here.
	for {
		child, ok, err := p.nextChild(elemSheet)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if child.Name.Local != elemAnimation {
			return nil, p.errorf(child.Name.Local, "", nil, "unexpected element in <%s>", elemSheet)
		}
		anim, err := p.parseAnimation(child)
		if err != nil {
			return nil, err
		}
		doc.animations = append(doc.animations, anim)
	}
	if len(doc.animations) == 0 {
		return nil, p.errorf(elemSheet, "", nil, "no animations")
	}

	for {
		tok, err := p.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return nil, p.errorf(start.Name.Local, "", nil, "content after </%s>", elemSheet)
		}
	}
	return doc, nil
}

func (p *atlasParser) parseAnimation(start xml.StartElement) (atlasAnimation, error) {
	attrs := p.attrs(start)
	anim := atlasAnimation{name: attrs.str("Name")}
	if attrs.err != nil {
		return anim, attrs.err
	}
	for {
		child, ok, err := p.nextChild(elemAnimation)
		if err != nil {
			return anim, err
		}
		if !ok {
			break
		}
		if child.Name.Local != elemFrame {
			return anim, p.errorf(child.Name.Local, "", nil, "unexpected element in <%s Name=%q>", elemAnimation, anim.name)
		}
		frame, err := p.parseFrame(child)
		if err != nil {
			return anim, err
		}
		anim.frames = append(anim.frames, frame)
	}
	if len(anim.frames) == 0 {
		return anim, p.errorf(elemAnimation, "", nil, "animation %q has no frames", anim.name)
	}
	return anim, nil
}

func (p *atlasParser) parseFrame(start xml.StartElement) (Frame, error) {
	attrs := p.attrs(start)
	f := Frame{
		Region: Region{
			X:      attrs.int("X"),
			Y:      attrs.int("Y"),
			Width:  attrs.int("Width"),
			Height: attrs.int("Height"),
		},
		Pivot:    Vec2{X: attrs.float("PivotX"), Y: attrs.float("PivotY")},
		Duration: attrs.float("Time"),
	}
	if attrs.err != nil {
		return f, attrs.err
	}
	for {
		child, ok, err := p.nextChild(elemFrame)
		if err != nil {
			return f, err
		}
		if !ok {
			return f, nil
		}
		switch child.Name.Local {
		case elemEvent:
			a := p.attrs(child)
			name := a.str("Name")
			if a.err != nil {
				return f, a.err
			}
			f.Events = append(f.Events, name)
		case elemShape:
			shape, err := p.parseShape(child)
			if err != nil {
				return f, err
			}
			f.Shapes = append(f.Shapes, shape)
		default:
			return f, p.errorf(child.Name.Local, "", nil, "unexpected element in <%s>", elemFrame)
		}
		if err := p.leaf(child.Name.Local); err != nil {
			return f, err
		}
	}
}

func (p *atlasParser) parseShape(start xml.StartElement) (Shape, error) {
	attrs := p.attrs(start)
	kind := ShapeRectangle
	if v, _ := attrs.lookup("Type"); v == "Ellipse" {
		kind = ShapeEllipse
	}
	s := Shape{
		Kind:   kind,
		Tag:    attrs.str("Tag"),
		X:      float64(attrs.int("X")),
		Y:      float64(attrs.int("Y")),
		Width:  float64(attrs.int("Width")),
		Height: float64(attrs.int("Height")),
		Angle:  float64(attrs.int("Angle")),
	}
	return s, attrs.err
}

// leaf consumes the rest of an element that must not have children.
func (p *atlasParser) leaf(name string) error {
	child, ok, err := p.nextChild(name)
	if err != nil {
		return err
	}
	if ok {
		return p.errorf(child.Name.Local, "", nil, "unexpected element in <%s>", name)
	}
	return nil
}

// --- attributes ---

// attrReader reads typed attributes off one element, keeping the first error
// so call sites can read a whole attribute set and check once.
type attrReader struct {
	p     *atlasParser
	elem  string
	attrs []xml.Attr
	err   error
}

func (p *atlasParser) attrs(start xml.StartElement) *attrReader {
	return &attrReader{p: p, elem: start.Name.Local, attrs: start.Attr}
}

func (r *attrReader) lookup(name string) (string, bool) {
	for _, a := range r.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (r *attrReader) fail(attr string, cause error, format string, args ...any) {
	if r.err == nil {
		r.err = r.p.errorf(r.elem, attr, cause, format, args...)
	}
}

func (r *attrReader) str(name string) string {
	v, ok := r.lookup(name)
	if !ok {
		r.fail(name, nil, "missing required attribute")
	}
	return v
}

func (r *attrReader) int(name string) int {
	v, ok := r.lookup(name)
	if !ok {
		r.fail(name, nil, "missing required attribute")
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.fail(name, err, "invalid integer %q", v)
		return 0
	}
	return n
}

func (r *attrReader) float(name string) float64 {
	v, ok := r.lookup(name)
	if !ok {
		r.fail(name, nil, "missing required attribute")
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		r.fail(name, err, "invalid number %q", v)
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		r.fail(name, nil, "non-finite number %q", v)
		return 0
	}
	return f
}
