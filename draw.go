package flipbook

import "github.com/hajimehoshi/ebiten/v2"

// DrawIntent describes what to draw for the current frame without drawing it.
// Pivot is in source-region coordinates and, when the frame is flipped with
// its effects, has already been mirrored so the anchor stays on the same
// texel.
type DrawIntent struct {
	Texture  *ebiten.Image
	Source   Region
	Pivot    Vec2
	Position Vec2
	Rotation float64 // radians
	Scale    Vec2
	Tint     Color
	FlipH    bool
	FlipV    bool
}

type drawOptions struct {
	rotation   float64
	scale      Vec2
	tint       Color
	flipH      bool
	flipV      bool
	fixedPivot bool
}

// DrawOption configures a draw-intent query. The defaults are no rotation,
// unit scale, white tint, no flipping, pivot mirrored with flips.
type DrawOption func(*drawOptions)

// Rotate rotates the frame around its pivot by radians.
func Rotate(radians float64) DrawOption {
	return func(o *drawOptions) { o.rotation = radians }
}

// ScaleBy scales the frame around its pivot.
func ScaleBy(sx, sy float64) DrawOption {
	return func(o *drawOptions) { o.scale = Vec2{sx, sy} }
}

// Tint multiplies the frame's colors by c.
func Tint(c Color) DrawOption {
	return func(o *drawOptions) { o.tint = c }
}

// FlipH mirrors the frame horizontally.
func FlipH() DrawOption {
	return func(o *drawOptions) { o.flipH = true }
}

// FlipV mirrors the frame vertically.
func FlipV() DrawOption {
	return func(o *drawOptions) { o.flipV = true }
}

// FixedPivot keeps the authored pivot when flipping instead of mirroring it.
func FixedPivot() DrawOption {
	return func(o *drawOptions) { o.fixedPivot = true }
}

// DrawIntent returns the draw intent for the current frame placed at
// position. ok is false if the cursor is outside the frame range, which only
// happens if the invariant was broken.
func (a *Animation) DrawIntent(position Vec2, opts ...DrawOption) (intent DrawIntent, ok bool) {
	if a.index < 0 || a.index >= len(a.frames) {
		return DrawIntent{}, false
	}
	o := drawOptions{scale: Vec2{1, 1}, tint: ColorWhite}
	for _, opt := range opts {
		opt(&o)
	}
	f := &a.frames[a.index]
	pivot := f.Pivot
	if !o.fixedPivot {
		if o.flipH {
			pivot.X = float64(f.Region.Width) - pivot.X
		}
		if o.flipV {
			pivot.Y = float64(f.Region.Height) - pivot.Y
		}
	}
	return DrawIntent{
		Texture:  a.texture,
		Source:   f.Region,
		Pivot:    pivot,
		Position: position,
		Rotation: o.rotation,
		Scale:    o.scale,
		Tint:     o.tint,
		FlipH:    o.flipH,
		FlipV:    o.flipV,
	}, true
}

// DrawIntent returns the active animation's draw intent. ok is false when no
// animation is active.
func (s *SpriteSheet) DrawIntent(position Vec2, opts ...DrawOption) (DrawIntent, bool) {
	if s.active == nil {
		return DrawIntent{}, false
	}
	return s.active.anim.DrawIntent(position, opts...)
}

// GeoM returns the transform from source-region coordinates to destination
// coordinates: mirror within the region, move the pivot to the origin, scale,
// rotate, then translate to Position.
func (d *DrawIntent) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	if d.FlipH {
		m.Scale(-1, 1)
		m.Translate(float64(d.Source.Width), 0)
	}
	if d.FlipV {
		m.Scale(1, -1)
		m.Translate(0, float64(d.Source.Height))
	}
	m.Translate(-d.Pivot.X, -d.Pivot.Y)
	m.Scale(d.Scale.X, d.Scale.Y)
	m.Rotate(d.Rotation)
	m.Translate(d.Position.X, d.Position.Y)
	return m
}

// Options converts the intent into ebiten draw options for the frame's
// sub-image.
func (d *DrawIntent) Options() *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.GeoM = d.GeoM()
	a := float32(d.Tint.A)
	op.ColorScale.Scale(float32(d.Tint.R)*a, float32(d.Tint.G)*a, float32(d.Tint.B)*a, a)
	op.Filter = ebiten.FilterNearest
	return op
}

// Draw draws the intent onto dst. It does nothing without a texture.
func (d *DrawIntent) Draw(dst *ebiten.Image) {
	if d.Texture == nil {
		return
	}
	sub := d.Texture.SubImage(d.Source.Rectangle()).(*ebiten.Image)
	dst.DrawImage(sub, d.Options())
}
