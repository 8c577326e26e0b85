package flipbook

import (
	"image"
	"image/color"
	"testing"
)

func TestRegionRectangle(t *testing.T) {
	r := Region{X: 16, Y: 8, Width: 32, Height: 24}
	want := image.Rect(16, 8, 48, 32)
	if got := r.Rectangle(); got != want {
		t.Errorf("Rectangle() = %v, want %v", got, want)
	}
	if !(Region{}).Rectangle().Empty() {
		t.Error("zero Region should be empty")
	}
}

func TestColorFrom(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want Color
	}{
		{"opaque white", color.White, ColorWhite},
		{"transparent", color.Transparent, Color{}},
		{"opaque red", color.RGBA{R: 255, A: 255}, Color{R: 1, A: 1}},
		{"half alpha premultiplied", color.RGBA64{R: 0x8000, A: 0x8000}, Color{R: 1, A: float64(0x8000) / 0xffff}},
		{"nrgba", color.NRGBA{G: 255, A: 255}, Color{G: 1, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorFrom(tt.in); got != tt.want {
				t.Errorf("ColorFrom = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStringers(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Stopped.String(), "stopped"},
		{Playing.String(), "playing"},
		{Paused.String(), "paused"},
		{ShapeRectangle.String(), "Rectangle"},
		{ShapeEllipse.String(), "Ellipse"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
