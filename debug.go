package flipbook

import (
	"fmt"
	"log"
	"os"
)

// debug gates diagnostic output for the whole package. flipbook is
// single-threaded, so a plain bool is enough.
var debug bool

// SetDebug enables or disables debug mode. When enabled, lookup misses in
// SpriteSheet.Select and duplicate animation names are logged, and frames
// with suspicious timing or pivots produce warnings on stderr as atlases load.
func SetDebug(enabled bool) {
	debug = enabled
}

func debugf(format string, args ...any) {
	if debug {
		log.Printf("flipbook: "+format, args...)
	}
}

// debugCheckFrames warns on stderr about frames that will play oddly: a
// non-positive duration advances on every update, and a pivot outside the
// region usually means swapped or mistyped attributes.
func debugCheckFrames(name string, frames []Frame) {
	if !debug {
		return
	}
	for i := range frames {
		f := &frames[i]
		if f.Duration <= 0 {
			_, _ = fmt.Fprintf(os.Stderr, "[flipbook] warning: animation %q frame %d has duration %v\n",
				name, i, f.Duration)
		}
		if f.Pivot.X < 0 || f.Pivot.Y < 0 ||
			f.Pivot.X > float64(f.Region.Width) || f.Pivot.Y > float64(f.Region.Height) {
			_, _ = fmt.Fprintf(os.Stderr, "[flipbook] warning: animation %q frame %d pivot (%v, %v) outside %dx%d region\n",
				name, i, f.Pivot.X, f.Pivot.Y, f.Region.Width, f.Region.Height)
		}
	}
}
