package flipbook

import (
	"image"
	"image/color"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a DrawIntent is converted to ebiten options.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorFrom converts any color.Color into a Color, undoing premultiplication.
func ColorFrom(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	return Color{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: float64(a) / 0xffff,
	}
}

// Vec2 is a 2D vector used for positions, pivots and scales.
type Vec2 struct {
	X, Y float64
}

// Region is an integer rectangle into an atlas texture. The coordinate system
// has its origin at the top-left, with Y increasing downward.
type Region struct {
	X, Y, Width, Height int
}

// Rectangle returns the region as an image.Rectangle, suitable for SubImage.
func (r Region) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// PlayState is the playback state of an Animation.
type PlayState uint8

const (
	Stopped PlayState = iota // initial state; Advance is a no-op
	Playing                  // Advance accumulates time and steps frames
	Paused                   // Advance is a no-op until resumed
)

// String returns the state name.
func (s PlayState) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// ShapeKind selects the geometry of a Shape.
type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota // axis-aligned box before Angle is applied
	ShapeEllipse                    // ellipse inscribed in the shape's box
)

// String returns the kind as it is written in atlas files.
func (k ShapeKind) String() string {
	if k == ShapeEllipse {
		return "Ellipse"
	}
	return "Rectangle"
}

// Shape is a tagged region attached to a frame, used for hit-testing and
// collision authoring. Coordinates are texture-local to the frame.
type Shape struct {
	Kind                ShapeKind
	Tag                 string
	X, Y, Width, Height float64
	Angle               float64 // degrees
}

// Frame is one still image within an animation.
type Frame struct {
	Region   Region
	Pivot    Vec2
	Duration float64 // seconds
	Events   []string
	Shapes   []Shape
}
